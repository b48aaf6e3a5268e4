package models

import (
	"askyourvet-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact method values stored on owner profiles.
const (
	ContactMethodSMS   = "sms"
	ContactMethodEmail = "email"
	ContactMethodBoth  = "both"
)

const (
	RoleOwner = "owner"
	RoleVet   = "vet"
)

// Profile is the single party entity for pet owners and veterinarians.
// Appointments and vaccination records hold references only, so updating
// contact info here applies to all future notifications.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Role     string    `gorm:"type:varchar(20);not null;index" json:"role"` // 'owner' or 'vet'
	FullName string    `gorm:"not null" json:"fullName"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string    `json:"phone"`
	Password string    `gorm:"not null" json:"-"`

	// Owners only; empty means the documented default (sms).
	PreferredContactMethod string `gorm:"type:varchar(10)" json:"preferredContactMethod"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash the password before creating
func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(p.Password)
	if err != nil {
		return err
	}
	p.Password = hashed
	return
}
