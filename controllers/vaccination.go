package controllers

import (
	"net/http"
	"time"

	"askyourvet-backend/models"
	"askyourvet-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VaccinationController handles the vaccination schedule records
type VaccinationController struct {
	DB *gorm.DB
}

// CreateVaccinationInput defines the expected JSON structure
type CreateVaccinationInput struct {
	PetName     string `json:"petName" binding:"required"`
	VaccineName string `json:"vaccineName" binding:"required"`
	DueDate     string `json:"dueDate" binding:"required"` // 2006-01-02
}

type vaccinationView struct {
	models.VaccinationRecord
	Overdue bool `json:"overdue"`
}

func (vc *VaccinationController) CreateVaccination(c *gin.Context) {
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

	var input CreateVaccinationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	dueDate, err := time.Parse("2006-01-02", input.DueDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid due date format")
		return
	}

	record := models.VaccinationRecord{
		OwnerID:     ownerUUID,
		PetName:     input.PetName,
		VaccineName: input.VaccineName,
		DueDate:     dueDate,
		Status:      models.VaccinationPending,
	}

	if err := vc.DB.Create(&record).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create vaccination record")
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (vc *VaccinationController) GetVaccinations(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var records []models.VaccinationRecord
	if err := vc.DB.Where("owner_id = ?", userID).
		Order("due_date").Find(&records).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vaccination records")
		return
	}

	now := time.Now()
	views := make([]vaccinationView, 0, len(records))
	for _, r := range records {
		views = append(views, vaccinationView{VaccinationRecord: r, Overdue: r.Overdue(now)})
	}

	c.JSON(http.StatusOK, views)
}

// CompleteVaccination marks a record as completed
func (vc *VaccinationController) CompleteVaccination(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	recordUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vaccination ID format")
		return
	}

	res := vc.DB.Model(&models.VaccinationRecord{}).
		Where("id = ? AND owner_id = ? AND status = ?", recordUUID, userID, models.VaccinationPending).
		Update("status", models.VaccinationCompleted)
	if res.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update vaccination record")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Pending vaccination record not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": models.VaccinationCompleted})
}
