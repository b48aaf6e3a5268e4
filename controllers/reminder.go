// controllers/reminder.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"askyourvet-backend/models"
	"askyourvet-backend/services"
	"askyourvet-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReminderController exposes the scan jobs over HTTP so an external
// trigger (or an operator) can invoke them outside the cron schedule,
// and surfaces the notification audit log.
type ReminderController struct {
	DB      *gorm.DB
	Service *services.ReminderService
}

func (rc *ReminderController) RunDayAheadScan(c *gin.Context) {
	rc.runWindowScan(c, models.WindowDayAhead)
}

func (rc *ReminderController) RunHourAheadScan(c *gin.Context) {
	rc.runWindowScan(c, models.WindowHourAhead)
}

func (rc *ReminderController) runWindowScan(c *gin.Context, window models.ReminderWindow) {
	summary, err := rc.Service.RunWindowScan(time.Now(), window)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Scan failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"window":            window.String(),
		"candidatesChecked": summary.Checked,
		"remindersSent":     summary.Sent,
	})
}

func (rc *ReminderController) RunVaccinationScan(c *gin.Context) {
	summary, err := rc.Service.RunVaccinationScan(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Scan failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"candidatesChecked": summary.Checked,
		"remindersSent":     summary.Sent,
	})
}

// GetNotificationLogs lists recent dispatch attempts, newest first
func (rc *ReminderController) GetNotificationLogs(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	query := rc.DB.Order("sent_at DESC").Limit(limit)
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var logs []models.NotificationLog
	if err := query.Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notification logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
