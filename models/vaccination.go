package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VaccinationPending   = "pending"
	VaccinationCompleted = "completed"
)

type VaccinationRecord struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`

	PetName     string    `gorm:"not null" json:"petName"`
	VaccineName string    `gorm:"not null" json:"vaccineName"`
	DueDate     time.Time `gorm:"index;not null" json:"dueDate"`

	Status string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// One-shot flag: transitions false -> true exactly once, via the
	// conditional update in the reminder service. Never reset.
	ReminderSent bool `gorm:"default:false" json:"reminderSent"`

	Owner *Profile `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	gorm.Model `json:"-"`
}

func (v *VaccinationRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

// Overdue is derived, not stored: a pending record past its due date.
func (v *VaccinationRecord) Overdue(now time.Time) bool {
	return v.Status == VaccinationPending && v.DueDate.Before(now.Truncate(24*time.Hour))
}
