// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification kinds recorded in the log.
const (
	NotificationStatusChange = "status_change"
	NotificationDayAhead     = "day_ahead"
	NotificationHourAhead    = "hour_ahead"
	NotificationVaccination  = "vaccination"
	NotificationTest         = "test"
)

const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// NotificationLog records every dispatch attempt, success or failure.
// Notification delivery is best-effort by design, so this log is the
// only place failed sends are visible.
type NotificationLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointmentId,omitempty"`
	VaccinationID *uuid.UUID `gorm:"type:uuid;index" json:"vaccinationId,omitempty"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"recipientId"`

	Kind         string    `gorm:"type:varchar(20);not null" json:"kind"`
	Channel      string    `gorm:"type:varchar(10);not null" json:"channel"` // sms, email
	Destination  string    `gorm:"not null" json:"destination"`
	Status       string    `gorm:"type:varchar(10);not null" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	ProviderID   string    `json:"providerId,omitempty"`
	SentAt       time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}
