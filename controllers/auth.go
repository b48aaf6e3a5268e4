package controllers

import (
	"errors"
	"net/http"
	"time"

	"askyourvet-backend/models"
	"askyourvet-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	FullName string `json:"fullName" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=owner vet"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthController handles registration and login for owners and vets
type AuthController struct {
	DB *gorm.DB
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput

	// Bind and validate input
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if email already exists
	var existing models.Profile
	result := ac.DB.Where("email = ?", input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	profile := models.Profile{
		Email:    input.Email,
		Phone:    input.Phone,
		FullName: input.FullName,
		Password: input.Password, // Hashed in BeforeCreate hook
		Role:     input.Role,
		IsActive: true,
	}

	if err := ac.DB.Create(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	token, err := utils.GenerateToken(profile.ID.String(), profile.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"profile": profile,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var profile models.Profile
	if err := ac.DB.Where("email = ? AND is_active = ?", input.Email, true).
		First(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(input.Password, profile.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	ac.DB.Model(&profile).Update("last_login", now)

	token, err := utils.GenerateToken(profile.ID.String(), profile.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"profile": profile,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var profile models.Profile
	if err := ac.DB.First(&profile, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Profile not found")
		return
	}

	c.JSON(http.StatusOK, profile)
}
