// services/appointment_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"askyourvet-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound reports a missing appointment, owner or vet reference.
var ErrNotFound = errors.New("record not found")

// InvalidTransitionError rejects a status change that is not a direct
// successor of the current status. The stored record is left unchanged.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}

// Allowed status graph: pending -> confirmed|cancelled,
// confirmed -> completed|cancelled; completed and cancelled are terminal.
var allowedTransitions = map[string][]string{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Intent is a single (recipient, channel, message) tuple produced by a
// transition or scan, ready for the gateway.
type Intent struct {
	Recipient *models.Profile
	Channel   string
	Kind      string
	Body      string // SMS body, or email HTML
	Subject   string // email only
}

// AppointmentService owns the appointment status lifecycle.
type AppointmentService struct {
	db      *gorm.DB
	gateway Gateway
}

func NewAppointmentService(db *gorm.DB, gateway Gateway) *AppointmentService {
	return &AppointmentService{db: db, gateway: gateway}
}

type CreateAppointmentInput struct {
	OwnerID          uuid.UUID
	VetID            uuid.UUID
	PetName          string
	PetType          string
	Reason           string
	ConsultationType string
	StartsAt         time.Time
	Timezone         string
	DurationMinutes  int
}

// Create books a new appointment in the initial pending status.
func (s *AppointmentService) Create(input CreateAppointmentInput) (*models.Appointment, error) {
	var vet models.Profile
	if err := s.db.First(&vet, "id = ? AND role = ?", input.VetID, models.RoleVet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	appt := models.Appointment{
		OwnerID:          input.OwnerID,
		VetID:            input.VetID,
		PetName:          input.PetName,
		PetType:          input.PetType,
		Reason:           input.Reason,
		ConsultationType: input.ConsultationType,
		StartsAt:         input.StartsAt.UTC(),
		Timezone:         input.Timezone,
		DurationMinutes:  input.DurationMinutes,
		Status:           models.StatusPending,
	}
	if appt.Timezone == "" {
		appt.Timezone = "UTC"
	}
	if appt.DurationMinutes == 0 {
		appt.DurationMinutes = 30
	}

	if err := s.db.Create(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// Transition applies a status change and dispatches the resulting
// notifications. The status write is the primary effect; notification
// failures are logged per recipient and never roll it back.
func (s *AppointmentService) Transition(appointmentID uuid.UUID, newStatus string) (*models.Appointment, error) {
	if _, known := allowedTransitions[newStatus]; !known {
		return nil, &InvalidTransitionError{To: newStatus}
	}

	var appt models.Appointment
	if err := s.db.Preload("Owner").Preload("Vet").
		First(&appt, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !transitionAllowed(appt.Status, newStatus) {
		return nil, &InvalidTransitionError{From: appt.Status, To: newStatus}
	}

	// Conditional update: the status only moves if nobody else moved it
	// first, so concurrent transitions cannot interleave.
	res := s.db.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appt.ID, appt.Status).
		Update("status", newStatus)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &InvalidTransitionError{From: appt.Status, To: newStatus}
	}

	prior := appt.Status
	appt.Status = newStatus
	log.Printf("Appointment %s: %s -> %s", appt.ID, prior, newStatus)

	for _, intent := range s.statusIntents(&appt) {
		s.dispatch(&appt, intent)
	}

	return &appt, nil
}

// statusIntents builds the notification intent set for a transition:
// owner per contact preference, vet on SMS when a phone is on file.
func (s *AppointmentService) statusIntents(a *models.Appointment) []Intent {
	var intents []Intent

	if a.Owner != nil {
		channels := ResolveChannels(a.Owner.PreferredContactMethod)
		if channels.SMS && a.Owner.Phone != "" {
			intents = append(intents, Intent{
				Recipient: a.Owner,
				Channel:   models.ChannelSMS,
				Kind:      models.NotificationStatusChange,
				Body:      StatusSMS(a, vetName(a)),
			})
		}
		if channels.Email && a.Owner.Email != "" {
			intents = append(intents, Intent{
				Recipient: a.Owner,
				Channel:   models.ChannelEmail,
				Kind:      models.NotificationStatusChange,
				Subject:   StatusEmailSubject(a),
				Body:      StatusEmailHTML(a, a.Owner.FullName, vetName(a)),
			})
		}
	}

	if a.Vet != nil && a.Vet.Phone != "" {
		intents = append(intents, Intent{
			Recipient: a.Vet,
			Channel:   models.ChannelSMS,
			Kind:      models.NotificationStatusChange,
			Body:      StatusVetSMS(a, ownerName(a)),
		})
	}

	return intents
}

// dispatch sends one intent and records the attempt. Returns whether the
// provider accepted the message.
func (s *AppointmentService) dispatch(a *models.Appointment, intent Intent) bool {
	return sendIntent(s.db, s.gateway, intent, &a.ID, nil)
}

func vetName(a *models.Appointment) string {
	if a.Vet == nil {
		return ""
	}
	return a.Vet.FullName
}

func ownerName(a *models.Appointment) string {
	if a.Owner == nil {
		return ""
	}
	return a.Owner.FullName
}

// TestNotificationResult reports the diagnostic send outcome per channel.
type TestNotificationResult struct {
	SMSSent   bool `json:"smsSent"`
	EmailSent bool `json:"emailSent"`
}

// SendTestNotification exercises the same gateway and preference
// resolution as production reminders, against the caller's own profile.
func (s *AppointmentService) SendTestNotification(ownerID uuid.UUID) (TestNotificationResult, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TestNotificationResult{}, ErrNotFound
		}
		return TestNotificationResult{}, err
	}

	var result TestNotificationResult
	channels := ResolveChannels(profile.PreferredContactMethod)

	if channels.SMS && profile.Phone != "" {
		result.SMSSent = sendIntent(s.db, s.gateway, Intent{
			Recipient: &profile,
			Channel:   models.ChannelSMS,
			Kind:      models.NotificationTest,
			Body:      TestSMS(profile.FullName),
		}, nil, nil)
	}
	if channels.Email && profile.Email != "" {
		result.EmailSent = sendIntent(s.db, s.gateway, Intent{
			Recipient: &profile,
			Channel:   models.ChannelEmail,
			Kind:      models.NotificationTest,
			Subject:   TestEmailSubject(),
			Body:      TestEmailHTML(profile.FullName, profile.PreferredContactMethod),
		}, nil, nil)
	}

	return result, nil
}

// sendIntent pushes a single intent through the gateway and writes the
// audit row. Failures are logged, never propagated.
func sendIntent(db *gorm.DB, gateway Gateway, intent Intent, appointmentID, vaccinationID *uuid.UUID) bool {
	var (
		providerID  string
		destination string
		err         error
	)

	switch intent.Channel {
	case models.ChannelSMS:
		destination = intent.Recipient.Phone
		providerID, err = gateway.SendSMS(destination, intent.Body)
	case models.ChannelEmail:
		destination = intent.Recipient.Email
		providerID, err = gateway.SendEmail(destination, intent.Subject, intent.Body)
	default:
		return false
	}

	status := "sent"
	errMsg := ""
	if err != nil {
		log.Printf("Failed to send %s %s to %s: %v", intent.Kind, intent.Channel, destination, err)
		status = "failed"
		errMsg = err.Error()
	} else {
		log.Printf("Sent %s %s to %s (provider id %s)", intent.Kind, intent.Channel, destination, providerID)
	}

	entry := models.NotificationLog{
		AppointmentID: appointmentID,
		VaccinationID: vaccinationID,
		RecipientID:   intent.Recipient.ID,
		Kind:          intent.Kind,
		Channel:       intent.Channel,
		Destination:   destination,
		Status:        status,
		ErrorMessage:  errMsg,
		ProviderID:    providerID,
		SentAt:        time.Now(),
	}
	if logErr := db.Create(&entry).Error; logErr != nil {
		log.Printf("Failed to log %s notification for %s: %v", intent.Kind, intent.Recipient.ID, logErr)
	}

	return err == nil
}
