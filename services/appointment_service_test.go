package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"askyourvet-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionGraph(t *testing.T) {
	valid := []struct{ from, to string }{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusPending, models.StatusCancelled},
		{models.StatusConfirmed, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusCancelled},
	}
	statuses := []string{models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled}

	db := newTestDB(t)
	gw := newFakeGateway()
	svc := NewAppointmentService(db, gw)
	owner := createOwner(t, db, models.ContactMethodBoth)
	vet := createVet(t, db)

	for _, from := range statuses {
		for _, to := range statuses {
			isValid := false
			for _, v := range valid {
				if v.from == from && v.to == to {
					isValid = true
				}
			}

			appt := createAppointment(t, db, owner, vet, from, time.Now().Add(48*time.Hour))
			updated, err := svc.Transition(appt.ID, to)

			var stored models.Appointment
			require.NoError(t, db.First(&stored, "id = ?", appt.ID).Error)

			if isValid {
				require.NoError(t, err, "%s -> %s should be allowed", from, to)
				assert.Equal(t, to, updated.Status)
				assert.Equal(t, to, stored.Status)
			} else {
				var invalid *InvalidTransitionError
				require.Error(t, err, "%s -> %s should be rejected", from, to)
				assert.True(t, errors.As(err, &invalid))
				assert.Equal(t, from, stored.Status, "rejected transition must leave status unchanged")
			}
		}
	}
}

func TestTransitionProducesNotifications(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway()
	svc := NewAppointmentService(db, gw)
	owner := createOwner(t, db, models.ContactMethodBoth)
	vet := createVet(t, db)
	appt := createAppointment(t, db, owner, vet, models.StatusPending, time.Now().Add(48*time.Hour))

	_, err := svc.Transition(appt.ID, models.StatusConfirmed)
	require.NoError(t, err)

	// Owner SMS + owner email + vet SMS
	require.Equal(t, 2, gw.smsCount())
	require.Equal(t, 1, gw.emailCount())

	assert.Equal(t, owner.Phone, gw.SMS[0].To)
	assert.Contains(t, gw.SMS[0].Body, "CONFIRMED")
	assert.Contains(t, gw.SMS[0].Body, "Rex")
	assert.Equal(t, vet.Phone, gw.SMS[1].To)
	assert.Contains(t, gw.SMS[1].Body, "CONFIRMED")
	assert.Equal(t, owner.Email, gw.Emails[0].To)
	assert.Contains(t, gw.Emails[0].Subject, "Confirmed")

	var logs []models.NotificationLog
	require.NoError(t, db.Where("appointment_id = ?", appt.ID).Find(&logs).Error)
	assert.Len(t, logs, 3)
	for _, l := range logs {
		assert.Equal(t, models.NotificationStatusChange, l.Kind)
		assert.Equal(t, "sent", l.Status)
	}
}

func TestTransitionSportsTrainingCopy(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway()
	svc := NewAppointmentService(db, gw)
	owner := createOwner(t, db, models.ContactMethodSMS)
	vet := createVet(t, db)
	appt := createAppointment(t, db, owner, vet, models.StatusPending, time.Now().Add(48*time.Hour))
	require.NoError(t, db.Model(appt).Update("consultation_type", "sports_training").Error)

	_, err := svc.Transition(appt.ID, models.StatusConfirmed)
	require.NoError(t, err)

	require.NotEmpty(t, gw.SMS)
	assert.Contains(t, gw.SMS[0].Body, "training equipment")
}

func TestTransitionGatewayFailureDoesNotRollBack(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway()
	gw.FailAll = true
	svc := NewAppointmentService(db, gw)
	owner := createOwner(t, db, models.ContactMethodBoth)
	vet := createVet(t, db)
	appt := createAppointment(t, db, owner, vet, models.StatusPending, time.Now().Add(48*time.Hour))

	updated, err := svc.Transition(appt.ID, models.StatusConfirmed)
	require.NoError(t, err, "notification failure must not fail the transition")
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, "id = ?", appt.ID).Error)
	assert.Equal(t, models.StatusConfirmed, stored.Status)

	var failed int64
	db.Model(&models.NotificationLog{}).
		Where("appointment_id = ? AND status = ?", appt.ID, "failed").Count(&failed)
	assert.Equal(t, int64(3), failed, "every failed attempt must be logged")
}

func TestTransitionUnknownAppointment(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db, newFakeGateway())

	_, err := svc.Transition(uuid.New(), models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAppointmentDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db, newFakeGateway())
	owner := createOwner(t, db, "")
	vet := createVet(t, db)

	appt, err := svc.Create(CreateAppointmentInput{
		OwnerID:  owner.ID,
		VetID:    vet.ID,
		PetName:  "Milo",
		Reason:   "limping",
		StartsAt: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, "UTC", appt.Timezone)
	assert.Equal(t, 30, appt.DurationMinutes)
	assert.Zero(t, appt.ReminderFlags)
}

func TestCreateAppointmentRejectsUnknownVet(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db, newFakeGateway())
	owner := createOwner(t, db, "")

	_, err := svc.Create(CreateAppointmentInput{
		OwnerID:  owner.ID,
		VetID:    uuid.New(),
		PetName:  "Milo",
		Reason:   "limping",
		StartsAt: time.Now().Add(72 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendTestNotification(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway()
	svc := NewAppointmentService(db, gw)

	t.Run("both channels", func(t *testing.T) {
		owner := createOwner(t, db, models.ContactMethodBoth)
		result, err := svc.SendTestNotification(owner.ID)
		require.NoError(t, err)
		assert.True(t, result.SMSSent)
		assert.True(t, result.EmailSent)
	})

	t.Run("default is sms only", func(t *testing.T) {
		before := gw.emailCount()
		owner := createOwner(t, db, "")
		result, err := svc.SendTestNotification(owner.ID)
		require.NoError(t, err)
		assert.True(t, result.SMSSent)
		assert.False(t, result.EmailSent)
		assert.Equal(t, before, gw.emailCount())
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := svc.SendTestNotification(uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStatusMessageRendersLocalTime(t *testing.T) {
	db := newTestDB(t)
	owner := createOwner(t, db, models.ContactMethodSMS)
	vet := createVet(t, db)

	// 18:30 UTC is 13:30 in New York during EST
	startsAt := time.Date(2026, 1, 15, 18, 30, 0, 0, time.UTC)
	appt := createAppointment(t, db, owner, vet, models.StatusConfirmed, startsAt)
	require.NoError(t, db.Model(appt).Update("timezone", "America/New_York").Error)
	appt.Timezone = "America/New_York"

	msg := StatusSMS(appt, vet.FullName)
	assert.True(t, strings.Contains(msg, "13:30"), "message should render the booked local time, got %q", msg)
}
