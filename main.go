package main

import (
	"flag"
	"log"

	"supervision_backend/internal/app"
	"supervision_backend/internal/config"
	"supervision_backend/pkg/database"
)

// @title Supervision Backend API
// @version 1.0
// @description Operational supervision dashboard for a multi-area facility: shift-aware goals, validation rounds and incidents.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

// @BasePath /api
func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before starting")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ForceMigrate = *migrate
	cfg.MigrateOnly = *migrateOnly

	if cfg.MigrateOnly {
		if _, err := database.InitDB(&cfg.Database); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration finished")
		return
	}

	application := app.NewApp(cfg)
	application.Run()
}
