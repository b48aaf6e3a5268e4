package routes

import (
	"askyourvet-backend/config"
	"askyourvet-backend/controllers"
	"askyourvet-backend/services"
	"askyourvet-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, appointments *services.AppointmentService, reminders *services.ReminderService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://askyourvet.app",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	authController := &controllers.AuthController{DB: db}
	appointmentController := &controllers.AppointmentController{DB: db, Service: appointments}
	preferenceController := &controllers.PreferenceController{DB: db, Service: appointments}
	vaccinationController := &controllers.VaccinationController{DB: db}
	reminderController := &controllers.ReminderController{DB: db, Service: reminders}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Appointment routes
		appointmentsGroup := api.Group("/appointments")
		{
			appointmentsGroup.POST("", appointmentController.CreateAppointment)
			appointmentsGroup.GET("", appointmentController.GetAppointments)
			appointmentsGroup.GET("/:id", appointmentController.GetAppointment)
			appointmentsGroup.PUT("/:id/status", appointmentController.TransitionAppointment)
		}

		// Contact preference and test notification routes
		preferences := api.Group("/preferences")
		{
			preferences.GET("", preferenceController.GetPreference)
			preferences.PUT("", preferenceController.UpdatePreference)
		}
		api.POST("/notifications/test", preferenceController.SendTestNotification)
		api.GET("/notifications/logs", reminderController.GetNotificationLogs)

		// Vaccination schedule routes
		vaccinations := api.Group("/vaccinations")
		{
			vaccinations.POST("", vaccinationController.CreateVaccination)
			vaccinations.GET("", vaccinationController.GetVaccinations)
			vaccinations.PUT("/:id/complete", vaccinationController.CompleteVaccination)
		}

		// Manual scan triggers for external schedulers
		remindersGroup := api.Group("/reminders")
		{
			remindersGroup.POST("/day-ahead/run", reminderController.RunDayAheadScan)
			remindersGroup.POST("/hour-ahead/run", reminderController.RunHourAheadScan)
			remindersGroup.POST("/vaccinations/run", reminderController.RunVaccinationScan)
		}
	}

	return r
}
