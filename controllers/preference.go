package controllers

import (
	"errors"
	"net/http"

	"askyourvet-backend/models"
	"askyourvet-backend/services"
	"askyourvet-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdatePreferenceInput defines the contact preference change
type UpdatePreferenceInput struct {
	PreferredContactMethod string `json:"preferredContactMethod" binding:"required,oneof=sms email both"`
}

// PreferenceController handles notification preferences and the
// diagnostic test-notification path
type PreferenceController struct {
	DB      *gorm.DB
	Service *services.AppointmentService
}

func (pc *PreferenceController) GetPreference(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var profile models.Profile
	if err := pc.DB.First(&profile, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Profile not found")
		return
	}

	method := profile.PreferredContactMethod
	if method == "" {
		method = models.ContactMethodSMS // documented default
	}

	c.JSON(http.StatusOK, gin.H{
		"preferredContactMethod": method,
		"phone":                  profile.Phone,
		"email":                  profile.Email,
	})
}

func (pc *PreferenceController) UpdatePreference(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input UpdatePreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	res := pc.DB.Model(&models.Profile{}).
		Where("id = ?", userID).
		Update("preferred_contact_method", input.PreferredContactMethod)
	if res.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update preference")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferredContactMethod": input.PreferredContactMethod})
}

// SendTestNotification sends a test message over the caller's preferred
// channels so they can verify their settings
func (pc *PreferenceController) SendTestNotification(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	result, err := pc.Service.SendTestNotification(userUUID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send test notification")
		return
	}

	message := "No notifications sent. Please check your contact information."
	switch {
	case result.SMSSent && result.EmailSent:
		message = "Test SMS and email sent successfully!"
	case result.SMSSent:
		message = "Test SMS sent successfully!"
	case result.EmailSent:
		message = "Test email sent successfully!"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   result.SMSSent || result.EmailSent,
		"message":   message,
		"smsSent":   result.SMSSent,
		"emailSent": result.EmailSent,
	})
}
