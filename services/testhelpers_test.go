package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"askyourvet-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Appointment{},
		&models.VaccinationRecord{},
		&models.NotificationLog{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			db.Exec("DELETE FROM notification_logs")
			db.Exec("DELETE FROM vaccination_records")
			db.Exec("DELETE FROM appointments")
			db.Exec("DELETE FROM profiles")
			sqlDB.Close()
		}
	})
	return db
}

type sentMessage struct {
	To      string
	Subject string
	Body    string
}

// fakeGateway records sends and can be told to fail specific destinations
// or whole channels.
type fakeGateway struct {
	mu        sync.Mutex
	SMS       []sentMessage
	Emails    []sentMessage
	FailSMS   map[string]bool
	FailEmail map[string]bool
	FailAll   bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		FailSMS:   map[string]bool{},
		FailEmail: map[string]bool{},
	}
}

func (g *fakeGateway) SendSMS(to, body string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailAll || g.FailSMS[to] {
		return "", &GatewayError{Channel: "sms", Reason: "invalid destination"}
	}
	g.SMS = append(g.SMS, sentMessage{To: to, Body: body})
	return fmt.Sprintf("SM%d", len(g.SMS)), nil
}

func (g *fakeGateway) SendEmail(to, subject, html string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailAll || g.FailEmail[to] {
		return "", &GatewayError{Channel: "email", Reason: "rate limited"}
	}
	g.Emails = append(g.Emails, sentMessage{To: to, Subject: subject, Body: html})
	return fmt.Sprintf("EM%d", len(g.Emails)), nil
}

func (g *fakeGateway) smsCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.SMS)
}

func (g *fakeGateway) emailCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Emails)
}

var profileSeq atomic.Int64

func createOwner(t *testing.T, db *gorm.DB, method string) *models.Profile {
	t.Helper()
	n := profileSeq.Add(1)
	p := &models.Profile{
		Role:                   models.RoleOwner,
		FullName:               "Jordan Blake",
		Email:                  fmt.Sprintf("owner-%d@example.com", n),
		Phone:                  fmt.Sprintf("+1555%07d", n),
		Password:               "test-password",
		PreferredContactMethod: method,
		IsActive:               true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createVet(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()
	n := profileSeq.Add(1)
	p := &models.Profile{
		Role:     models.RoleVet,
		FullName: "Sam Rivera",
		Email:    fmt.Sprintf("vet-%d@example.com", n),
		Phone:    fmt.Sprintf("+1444%07d", n),
		Password: "test-password",
		IsActive: true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createAppointment(t *testing.T, db *gorm.DB, owner, vet *models.Profile, status string, startsAt time.Time) *models.Appointment {
	t.Helper()
	a := &models.Appointment{
		OwnerID:          owner.ID,
		VetID:            vet.ID,
		PetName:          "Rex",
		PetType:          "dog",
		Reason:           "annual checkup",
		ConsultationType: "general",
		StartsAt:         startsAt.UTC(),
		Timezone:         "UTC",
		DurationMinutes:  30,
		Status:           status,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}
