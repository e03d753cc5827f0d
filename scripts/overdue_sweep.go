// Manual overdue-incident sweep.
//
// The running server refreshes the overdue gauge every minute on its own.
// This script is for operating without the server up, e.g. during a shift
// handover after maintenance: it prints every deferred incident that is due
// but still pending, grouped by area.
//
// Usage: go run scripts/overdue_sweep.go

package main

import (
	"fmt"
	"log"
	"time"

	"supervision_backend/internal/config"
	"supervision_backend/internal/model"
	"supervision_backend/internal/repository"
	"supervision_backend/internal/shift"
	"supervision_backend/pkg/database"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	loc := shift.LoadLocation(cfg.Facility.Timezone, cfg.Facility.FallbackUTCOffset)
	now := time.Now()

	repo := repository.NewIncidentRepository(db)
	incidents, err := repo.FindAll(nil)
	if err != nil {
		log.Fatalf("Failed to list incidents: %v", err)
	}

	byArea := map[model.Area][]model.Incident{}
	for _, in := range incidents {
		if in.Status != model.IncidentPending || in.ScheduledStart == nil {
			continue
		}
		if now.Before(*in.ScheduledStart) {
			continue
		}
		byArea[in.Area] = append(byArea[in.Area], in)
	}

	fmt.Printf("Overdue sweep at %s (%s shift)\n", now.In(loc).Format(time.RFC3339), shift.Resolve(now, loc))
	if len(byArea) == 0 {
		fmt.Println("No overdue incidents.")
		return
	}
	for _, area := range model.Areas() {
		list := byArea[area]
		if len(list) == 0 {
			continue
		}
		fmt.Printf("\n%s (%d):\n", area, len(list))
		for _, in := range list {
			fmt.Printf("  [%s] %s (scheduled %s)\n", in.ID, in.Title, in.ScheduledStart.In(loc).Format("2006-01-02 15:04"))
		}
	}
}
