package main

import (
	"fmt"
	"log"
	"os"

	"askyourvet-backend/config"
	"askyourvet-backend/models"
	"askyourvet-backend/routes"
	"askyourvet-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.Connect()

	db.AutoMigrate(
		&models.Profile{},
		&models.Appointment{},
		&models.VaccinationRecord{},
		&models.NotificationLog{},
	)

	gateway := services.NewProviderGateway()
	appointmentService := services.NewAppointmentService(db, gateway)
	reminderService := services.NewReminderService(db, gateway)

	scheduler := reminderService.StartScheduler()
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(db, appointmentService, reminderService)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
