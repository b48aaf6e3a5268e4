package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. Transitions between them are enforced by
// services.AppointmentService; nothing else writes the status column.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ReminderWindow identifies one of the scheduled reminder lookahead windows.
// Each window owns one bit in Appointment.ReminderFlags.
type ReminderWindow int

const (
	WindowDayAhead ReminderWindow = iota
	WindowHourAhead
)

func (w ReminderWindow) Bit() int {
	return 1 << w
}

func (w ReminderWindow) String() string {
	switch w {
	case WindowDayAhead:
		return "day_ahead"
	case WindowHourAhead:
		return "hour_ahead"
	}
	return "unknown"
}

// Duration of the lookahead window.
func (w ReminderWindow) Lookahead() time.Duration {
	if w == WindowHourAhead {
		return time.Hour
	}
	return 24 * time.Hour
}

type Appointment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`
	VetID   uuid.UUID `gorm:"type:uuid;index;not null" json:"vetId"`

	// StartsAt is the canonical UTC instant used by the window scanners.
	// Timezone keeps the IANA zone the appointment was booked in so
	// messages can render the local date and time.
	StartsAt        time.Time `gorm:"index;not null" json:"startsAt"`
	Timezone        string    `gorm:"type:varchar(64);default:'UTC'" json:"timezone"`
	DurationMinutes int       `gorm:"default:30" json:"durationMinutes"`

	PetName          string `gorm:"not null" json:"petName"`
	PetType          string `json:"petType"`
	Reason           string `gorm:"type:text" json:"reason"`
	ConsultationType string `gorm:"type:varchar(40)" json:"consultationType"` // e.g. "general", "sports_training"

	Status string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	// Bitmask of reminder windows already fired, one bit per window.
	// Written only through the atomic claim in the reminder service.
	ReminderFlags int `gorm:"default:0" json:"-"`

	Owner *Profile `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Vet   *Profile `gorm:"foreignKey:VetID" json:"vet,omitempty"`

	gorm.Model `json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// ReminderFired reports whether the given window already fired for this
// appointment, based on the in-memory copy of the flags.
func (a *Appointment) ReminderFired(w ReminderWindow) bool {
	return a.ReminderFlags&w.Bit() != 0
}

// LocalTime returns StartsAt in the appointment's stored timezone,
// falling back to UTC when the zone name no longer resolves.
func (a *Appointment) LocalTime() time.Time {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return a.StartsAt.UTC()
	}
	return a.StartsAt.In(loc)
}
