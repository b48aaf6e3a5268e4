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

// CreateAppointmentInput defines the expected JSON structure for booking
type CreateAppointmentInput struct {
	VetID            string `json:"vetId" binding:"required,uuid"`
	PetName          string `json:"petName" binding:"required"`
	PetType          string `json:"petType"`
	Date             string `json:"date" binding:"required"` // 2006-01-02
	Time             string `json:"time" binding:"required"` // 15:04
	Timezone         string `json:"timezone"`                // IANA name, defaults to UTC
	DurationMinutes  int    `json:"durationMinutes"`
	Reason           string `json:"reason" binding:"required"`
	ConsultationType string `json:"consultationType"`
}

// TransitionInput defines the requested status change
type TransitionInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// AppointmentController handles appointment booking and lifecycle
type AppointmentController struct {
	DB      *gorm.DB
	Service *services.AppointmentService
}

// CreateAppointment books a new appointment with initial status pending
func (ac *AppointmentController) CreateAppointment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	ownerUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	startsAt, err := utils.ParseLocalDateTime(input.Date, input.Time, input.Timezone)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, time or timezone")
		return
	}

	appt, err := ac.Service.Create(services.CreateAppointmentInput{
		OwnerID:          ownerUUID,
		VetID:            uuid.MustParse(input.VetID),
		PetName:          input.PetName,
		PetType:          input.PetType,
		Reason:           input.Reason,
		ConsultationType: input.ConsultationType,
		StartsAt:         startsAt,
		Timezone:         input.Timezone,
		DurationMinutes:  input.DurationMinutes,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vet not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// GetAppointments lists appointments for the authenticated party
func (ac *AppointmentController) GetAppointments(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	role, _ := c.Get("role")

	query := ac.DB.Preload("Owner").Preload("Vet").Order("starts_at")
	if role == models.RoleVet {
		query = query.Where("vet_id = ?", userID)
	} else {
		query = query.Where("owner_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a single appointment by ID
func (ac *AppointmentController) GetAppointment(c *gin.Context) {
	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appt models.Appointment
	if err := ac.DB.Preload("Owner").Preload("Vet").
		First(&appt, "id = ?", apptUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appt)
}

// TransitionAppointment applies a status change through the state machine
func (ac *AppointmentController) TransitionAppointment(c *gin.Context) {
	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := ac.Service.Transition(apptUUID, input.Status)
	if err != nil {
		var invalid *services.InvalidTransitionError
		switch {
		case errors.As(err, &invalid):
			utils.RespondWithError(c, http.StatusUnprocessableEntity, invalid.Error())
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		}
		return
	}

	c.JSON(http.StatusOK, appt)
}
