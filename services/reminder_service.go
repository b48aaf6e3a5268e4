// services/reminder_service.go
package services

import (
	"log"
	"time"

	"askyourvet-backend/models"
	"askyourvet-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService runs the time-windowed reminder scans. Each scan is a
// stateless batch: it enumerates candidates, claims the per-appointment
// dedup marker, dispatches, and exits. Overlapping runs are safe because
// the claim is a single conditional update.
type ReminderService struct {
	db      *gorm.DB
	gateway Gateway
}

func NewReminderService(db *gorm.DB, gateway Gateway) *ReminderService {
	return &ReminderService{db: db, gateway: gateway}
}

// ScanSummary reports one scan invocation.
type ScanSummary struct {
	Checked int `json:"candidatesChecked"`
	Sent    int `json:"remindersSent"`
}

// StartScheduler wires the three scan schedules: day-ahead daily at 9 AM,
// hour-ahead every 10 minutes, vaccinations daily at 8 AM.
func (s *ReminderService) StartScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		if _, err := s.RunWindowScan(time.Now(), models.WindowDayAhead); err != nil {
			log.Printf("Day-ahead scan failed: %v", err)
		}
	})
	c.AddFunc("*/10 * * * *", func() {
		if _, err := s.RunWindowScan(time.Now(), models.WindowHourAhead); err != nil {
			log.Printf("Hour-ahead scan failed: %v", err)
		}
	})
	c.AddFunc("0 8 * * *", func() {
		if _, err := s.RunVaccinationScan(time.Now()); err != nil {
			log.Printf("Vaccination scan failed: %v", err)
		}
	})

	c.Start()
	log.Println("Reminder scheduler started")
	return c
}

// RunWindowScan processes all confirmed appointments starting within
// [now, now+lookahead], both ends inclusive. Per-candidate failures never
// abort the batch; only a failed candidate query is fatal.
func (s *ReminderService) RunWindowScan(now time.Time, window models.ReminderWindow) (ScanSummary, error) {
	end := now.Add(window.Lookahead())
	log.Printf("Running %s scan for appointments between %s and %s",
		window, now.Format(time.RFC3339), end.Format(time.RFC3339))

	var appointments []models.Appointment
	if err := s.db.Preload("Owner").Preload("Vet").
		Where("status = ? AND starts_at >= ? AND starts_at <= ?",
			models.StatusConfirmed, now.UTC(), end.UTC()).
		Find(&appointments).Error; err != nil {
		return ScanSummary{}, err
	}

	summary := ScanSummary{Checked: len(appointments)}
	for i := range appointments {
		summary.Sent += s.remindAppointment(&appointments[i], window)
	}

	log.Printf("%s scan completed: %d candidates, %d reminders sent",
		window, summary.Checked, summary.Sent)
	return summary, nil
}

// remindAppointment handles one candidate and returns the number of
// messages sent. The window bit is claimed before dispatch so a
// concurrent scan cannot double-send; a fully failed dispatch releases
// the claim and the next cycle retries.
func (s *ReminderService) remindAppointment(a *models.Appointment, window models.ReminderWindow) int {
	if a.ReminderFired(window) {
		return 0
	}

	won, err := s.claimWindow(a.ID, window)
	if err != nil {
		log.Printf("Appointment %s: failed to claim %s marker: %v", a.ID, window, err)
		return 0
	}
	if !won {
		log.Printf("Appointment %s: %s reminder already sent", a.ID, window)
		return 0
	}

	sent := 0
	for _, intent := range s.windowIntents(a, window) {
		if sendIntent(s.db, s.gateway, intent, &a.ID, nil) {
			sent++
		}
	}

	if sent == 0 {
		// Nothing got through; give the claim back so the next scan retries.
		if err := s.releaseWindow(a.ID, window); err != nil {
			log.Printf("Appointment %s: failed to release %s marker: %v", a.ID, window, err)
		}
	}
	return sent
}

// claimWindow sets the window bit only if it is currently unset, in a
// single statement. Returns whether this call won the claim.
func (s *ReminderService) claimWindow(id uuid.UUID, window models.ReminderWindow) (bool, error) {
	res := s.db.Model(&models.Appointment{}).
		Where("id = ? AND reminder_flags & ? = 0", id, window.Bit()).
		Update("reminder_flags", gorm.Expr("reminder_flags | ?", window.Bit()))
	return res.RowsAffected == 1, res.Error
}

func (s *ReminderService) releaseWindow(id uuid.UUID, window models.ReminderWindow) error {
	return s.db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("reminder_flags", gorm.Expr("reminder_flags & ?", ^window.Bit())).Error
}

// windowIntents builds the reminder intent set: owner per contact
// preference, vet on every channel the vet profile has populated.
func (s *ReminderService) windowIntents(a *models.Appointment, window models.ReminderWindow) []Intent {
	var intents []Intent
	kind := models.NotificationDayAhead
	ownerSMS, vetSMS := DayAheadOwnerSMS(a, vetName(a)), DayAheadVetSMS(a, ownerName(a))
	subject, html := DayAheadEmailSubject(a), DayAheadEmailHTML(a, ownerName(a), vetName(a))
	if window == models.WindowHourAhead {
		kind = models.NotificationHourAhead
		ownerSMS, vetSMS = HourAheadOwnerSMS(a, vetName(a)), HourAheadVetSMS(a, ownerName(a))
		subject, html = HourAheadEmailSubject(a), HourAheadEmailHTML(a, ownerName(a), vetName(a))
	}

	if a.Owner != nil {
		channels := ResolveChannels(a.Owner.PreferredContactMethod)
		if channels.SMS && a.Owner.Phone != "" {
			intents = append(intents, Intent{Recipient: a.Owner, Channel: models.ChannelSMS, Kind: kind, Body: ownerSMS})
		}
		if channels.Email && a.Owner.Email != "" {
			intents = append(intents, Intent{Recipient: a.Owner, Channel: models.ChannelEmail, Kind: kind, Subject: subject, Body: html})
		}
	}
	if a.Vet != nil {
		if a.Vet.Phone != "" {
			intents = append(intents, Intent{Recipient: a.Vet, Channel: models.ChannelSMS, Kind: kind, Body: vetSMS})
		}
		if a.Vet.Email != "" {
			intents = append(intents, Intent{Recipient: a.Vet, Channel: models.ChannelEmail, Kind: kind, Subject: subject, Body: VetEmailHTML(vetName(a), vetSMS)})
		}
	}
	return intents
}

// RunVaccinationScan emails owners about pending vaccinations due within
// the next 7 days. The one-shot reminder flag is claimed before sending
// and released if the email fails, so failed reminders are retried on the
// next cycle rather than silently dropped.
func (s *ReminderService) RunVaccinationScan(now time.Time) (ScanSummary, error) {
	start := utils.BeginningOfDay(now.UTC())
	end := start.AddDate(0, 0, 7)

	var records []models.VaccinationRecord
	if err := s.db.Preload("Owner").
		Where("status = ? AND reminder_sent = ? AND due_date >= ? AND due_date <= ?",
			models.VaccinationPending, false, start, end).
		Find(&records).Error; err != nil {
		return ScanSummary{}, err
	}

	log.Printf("Found %d vaccinations due within 7 days", len(records))

	summary := ScanSummary{Checked: len(records)}
	for i := range records {
		if s.remindVaccination(&records[i]) {
			summary.Sent++
		}
	}
	return summary, nil
}

func (s *ReminderService) remindVaccination(v *models.VaccinationRecord) bool {
	if v.Owner == nil || v.Owner.Email == "" {
		log.Printf("Vaccination %s: owner has no email on file", v.ID)
		return false
	}

	won, err := s.claimVaccination(v.ID)
	if err != nil {
		log.Printf("Vaccination %s: failed to claim reminder flag: %v", v.ID, err)
		return false
	}
	if !won {
		return false
	}

	intent := Intent{
		Recipient: v.Owner,
		Channel:   models.ChannelEmail,
		Kind:      models.NotificationVaccination,
		Subject:   VaccinationEmailSubject(v),
		Body:      VaccinationEmailHTML(v, v.Owner.FullName),
	}
	if !sendIntent(s.db, s.gateway, intent, nil, &v.ID) {
		if err := s.releaseVaccination(v.ID); err != nil {
			log.Printf("Vaccination %s: failed to release reminder flag: %v", v.ID, err)
		}
		return false
	}
	return true
}

func (s *ReminderService) claimVaccination(id uuid.UUID) (bool, error) {
	res := s.db.Model(&models.VaccinationRecord{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		Update("reminder_sent", true)
	return res.RowsAffected == 1, res.Error
}

func (s *ReminderService) releaseVaccination(id uuid.UUID) error {
	return s.db.Model(&models.VaccinationRecord{}).
		Where("id = ?", id).
		Update("reminder_sent", false).Error
}
