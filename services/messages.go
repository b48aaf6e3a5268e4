// services/messages.go
package services

import (
	"fmt"
	"strings"

	"askyourvet-backend/models"
)

// Message copy for every notification the platform sends. Templates are
// fixed per status / reminder window; sports_training consultations get
// extra equipment content.

func appointmentDate(a *models.Appointment) string {
	return a.LocalTime().Format("January 2, 2006")
}

func appointmentTime(a *models.Appointment) string {
	return a.LocalTime().Format("15:04")
}

func consultationLabel(a *models.Appointment) string {
	if a.ConsultationType == "" {
		return "general"
	}
	return a.ConsultationType
}

// --- status change -----------------------------------------------------

func StatusSMS(a *models.Appointment, vetName string) string {
	switch a.Status {
	case models.StatusConfirmed:
		extra := "Please arrive 10 minutes early."
		if a.ConsultationType == "sports_training" {
			extra = "Please bring any relevant training equipment."
		}
		return fmt.Sprintf("Great news! Your appointment for %s with Dr. %s on %s at %s has been CONFIRMED. %s",
			a.PetName, vetName, appointmentDate(a), appointmentTime(a), extra)
	case models.StatusCancelled:
		return fmt.Sprintf("Your appointment for %s with Dr. %s on %s at %s has been CANCELLED. Please contact us to reschedule if needed.",
			a.PetName, vetName, appointmentDate(a), appointmentTime(a))
	case models.StatusCompleted:
		return fmt.Sprintf("Your appointment for %s with Dr. %s has been marked as COMPLETED. Thank you for visiting! Please follow any prescribed care instructions.",
			a.PetName, vetName)
	}
	return fmt.Sprintf("Your appointment status has been updated to: %s", a.Status)
}

func StatusEmailSubject(a *models.Appointment) string {
	return fmt.Sprintf("Appointment %s - %s", strings.ToUpper(a.Status[:1])+a.Status[1:], a.PetName)
}

func StatusEmailHTML(a *models.Appointment, ownerName, vetName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<div style=\"font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;\">")
	fmt.Fprintf(&b, "<h2>Appointment %s</h2>", strings.ToUpper(a.Status))
	fmt.Fprintf(&b, "<p>Hello %s,</p><p>%s</p>", ownerName, StatusSMS(a, vetName))
	fmt.Fprintf(&b, "<div style=\"background-color: #f5f5f5; padding: 20px; border-radius: 8px;\">")
	fmt.Fprintf(&b, "<p><strong>Pet:</strong> %s</p>", a.PetName)
	fmt.Fprintf(&b, "<p><strong>Veterinarian:</strong> Dr. %s</p>", vetName)
	fmt.Fprintf(&b, "<p><strong>Date:</strong> %s</p>", appointmentDate(a))
	fmt.Fprintf(&b, "<p><strong>Time:</strong> %s</p>", appointmentTime(a))
	fmt.Fprintf(&b, "<p><strong>Type:</strong> %s</p>", consultationLabel(a))
	fmt.Fprintf(&b, "<p><strong>Status:</strong> %s</p></div>", strings.ToUpper(a.Status))
	if a.Status == models.StatusConfirmed && a.ConsultationType == "sports_training" {
		b.WriteString("<div style=\"background-color: #dbeafe; padding: 15px; border-radius: 8px;\">" +
			"<h4>Sports Training Tips</h4><ul>" +
			"<li>Ensure your pet has had a light meal 2-3 hours before training</li>" +
			"<li>Bring plenty of water and treats for motivation</li>" +
			"<li>Wear comfortable clothing as you may need to participate</li>" +
			"<li>Arrive 15 minutes early for warm-up exercises</li></ul></div>")
	}
	b.WriteString("<p>Best regards,<br>Ask Your Vet Team</p></div>")
	return b.String()
}

func StatusVetSMS(a *models.Appointment, ownerName string) string {
	return fmt.Sprintf("Appointment update: the %s appointment on %s at %s with %s's pet %s is now %s.",
		consultationLabel(a), appointmentDate(a), appointmentTime(a), ownerName, a.PetName, strings.ToUpper(a.Status))
}

// --- day-ahead reminder ------------------------------------------------

func DayAheadOwnerSMS(a *models.Appointment, vetName string) string {
	return fmt.Sprintf("Reminder: You have an appointment with Dr. %s tomorrow at %s for %s. Reason: %s",
		vetName, appointmentTime(a), a.PetName, a.Reason)
}

func DayAheadVetSMS(a *models.Appointment, ownerName string) string {
	return fmt.Sprintf("Reminder: You have an appointment tomorrow at %s with %s's pet %s. Consultation type: %s",
		appointmentTime(a), ownerName, a.PetName, consultationLabel(a))
}

func DayAheadEmailSubject(a *models.Appointment) string {
	return fmt.Sprintf("Appointment Reminder - %s", a.PetName)
}

func DayAheadEmailHTML(a *models.Appointment, ownerName, vetName string) string {
	var b strings.Builder
	b.WriteString("<div style=\"font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;\">")
	b.WriteString("<h2>Appointment Reminder</h2>")
	fmt.Fprintf(&b, "<p>Hello %s,</p>", ownerName)
	fmt.Fprintf(&b, "<p>This is a reminder that %s has an appointment with Dr. %s tomorrow.</p>", a.PetName, vetName)
	fmt.Fprintf(&b, "<div style=\"background-color: #f5f5f5; padding: 20px; border-radius: 8px;\">")
	fmt.Fprintf(&b, "<p><strong>Date:</strong> %s</p><p><strong>Time:</strong> %s</p><p><strong>Reason:</strong> %s</p></div>",
		appointmentDate(a), appointmentTime(a), a.Reason)
	b.WriteString("<p>Best regards,<br>Ask Your Vet Team</p></div>")
	return b.String()
}

// --- hour-ahead reminder -----------------------------------------------

func HourAheadOwnerSMS(a *models.Appointment, vetName string) string {
	extra := "Please arrive 10 minutes early."
	if a.ConsultationType == "sports_training" {
		extra = "Remember to bring training equipment!"
	}
	return fmt.Sprintf("⏰ REMINDER: Your appointment with Dr. %s for %s starts in about 1 hour at %s. %s",
		vetName, a.PetName, appointmentTime(a), extra)
}

func HourAheadVetSMS(a *models.Appointment, ownerName string) string {
	return fmt.Sprintf("⏰ REMINDER: Appointment in 1 hour at %s with %s's pet %s. Type: %s",
		appointmentTime(a), ownerName, a.PetName, consultationLabel(a))
}

func HourAheadEmailSubject(a *models.Appointment) string {
	return fmt.Sprintf("⏰ 1 Hour Reminder - Appointment for %s", a.PetName)
}

func HourAheadEmailHTML(a *models.Appointment, ownerName, vetName string) string {
	var b strings.Builder
	b.WriteString("<div style=\"font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;\">")
	b.WriteString("<h2 style=\"color: #f59e0b;\">⏰ Your Appointment Starts Soon!</h2>")
	fmt.Fprintf(&b, "<p>Hello %s,</p>", ownerName)
	b.WriteString("<p>This is a friendly reminder that your appointment is starting in about <strong>1 hour</strong>!</p>")
	b.WriteString("<div style=\"background-color: #fef3c7; padding: 20px; border-radius: 8px; border-left: 4px solid #f59e0b;\">")
	fmt.Fprintf(&b, "<p><strong>Pet:</strong> %s</p>", a.PetName)
	fmt.Fprintf(&b, "<p><strong>Veterinarian:</strong> Dr. %s</p>", vetName)
	fmt.Fprintf(&b, "<p><strong>Time:</strong> %s</p>", appointmentTime(a))
	fmt.Fprintf(&b, "<p><strong>Reason:</strong> %s</p></div>", a.Reason)
	if a.ConsultationType == "sports_training" {
		b.WriteString("<div style=\"background-color: #dbeafe; padding: 15px; border-radius: 8px;\">" +
			"<p><strong>Sports Training Checklist:</strong></p><ul>" +
			"<li>Training equipment ready</li>" +
			"<li>Water bottle for your pet</li>" +
			"<li>Treats for motivation</li>" +
			"<li>Comfortable shoes for you</li></ul></div>")
	} else {
		b.WriteString("<div style=\"background-color: #f0fdf4; padding: 15px; border-radius: 8px;\">" +
			"<p><strong>Quick Checklist:</strong></p><ul>" +
			"<li>Arrive 10 minutes early</li>" +
			"<li>Bring any previous medical records</li>" +
			"<li>Have your questions ready</li>" +
			"<li>Keep your pet secure during travel</li></ul></div>")
	}
	b.WriteString("<p>See you soon!</p><p>Best regards,<br>Ask Your Vet Team</p></div>")
	return b.String()
}

// VetEmailHTML wraps a vet-facing reminder line in the standard shell.
func VetEmailHTML(vetName, body string) string {
	return fmt.Sprintf(
		"<div style=\"font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;\">"+
			"<p>Hello Dr. %s,</p><p>%s</p>"+
			"<p>Ask Your Vet Team</p></div>",
		vetName, body)
}

// --- vaccination reminder ----------------------------------------------

func VaccinationEmailSubject(v *models.VaccinationRecord) string {
	return fmt.Sprintf("Vaccination Reminder - %s", v.PetName)
}

func VaccinationEmailHTML(v *models.VaccinationRecord, ownerName string) string {
	return fmt.Sprintf(
		"<h2>Vaccination Reminder</h2>"+
			"<p>Dear %s,</p>"+
			"<p>This is a reminder that your pet <strong>%s</strong> is due for vaccination:</p>"+
			"<ul><li><strong>Vaccine:</strong> %s</li><li><strong>Due Date:</strong> %s</li></ul>"+
			"<p>Please schedule an appointment with your veterinarian.</p>"+
			"<p>Best regards,<br>Pet Care Team</p>",
		ownerName, v.PetName, v.VaccineName, v.DueDate.Format("January 2, 2006"))
}

// --- test notification -------------------------------------------------

func TestSMS(name string) string {
	return fmt.Sprintf("Hello %s! This is a test notification from Ask Your Vet. Your SMS notifications are working correctly. 🎉", name)
}

func TestEmailSubject() string {
	return "Test Notification - Ask Your Vet"
}

func TestEmailHTML(name, method string) string {
	var via string
	switch method {
	case models.ContactMethodEmail:
		via = "Email only"
	case models.ContactMethodBoth:
		via = "both SMS and Email"
	default:
		via = "SMS only"
	}
	return fmt.Sprintf(
		"<div style=\"font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;\">"+
			"<h2>Test Notification Successful! 🎉</h2>"+
			"<p>Hello %s,</p>"+
			"<p>This is a test notification from Ask Your Vet. Your email notifications are working correctly!</p>"+
			"<p>You will receive appointment reminders and confirmations via %s.</p>"+
			"<p>You can update your notification preferences anytime in your dashboard.</p>"+
			"<p>Best regards,<br>Ask Your Vet Team</p></div>",
		name, via)
}
