package main

import (
	"fmt"
	"log"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/routes"
	"accel-erp-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if err := config.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := config.DB.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if cfg.SeedDev {
		if err := seedDevData(config.DB); err != nil {
			log.Fatalf("Failed to seed dev data: %v", err)
		}
		log.Println("Seeded dev data")
	}

	// A nil *TwilioMessenger must not become a non-nil Messenger
	var messenger services.Messenger
	if m := services.NewTwilioMessenger(cfg); m != nil {
		messenger = m
	} else {
		log.Println("Twilio not configured, AMC reminders will be logged as skipped")
	}

	reminders := services.NewReminderService(config.DB, messenger, cfg)
	scheduler, err := reminders.StartScheduler(cfg)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	r := routes.SetupRouter(cfg, reminders)
	printRoutes(r)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
