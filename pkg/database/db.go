package database

import (
	"fmt"
	"log"

	"supervision_backend/internal/config"
	"supervision_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Goal{},
		&model.ShiftTarget{},
		&model.DailyRecord{},
		&model.ValidationItem{},
		&model.ValidationSubmission{},
		&model.Incident{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedValidationItems(db)

	return db, nil
}

// seedValidationItems installs the static per-area checklists when the table
// is empty. Items are configuration, not runtime data.
func seedValidationItems(db *gorm.DB) {
	var count int64
	db.Model(&model.ValidationItem{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.ValidationItem{
		{Name: "Entrance and lobby floors", Area: model.AreaCleaning, Stage: model.StageEntry, Enabled: true},
		{Name: "Gaming floor carpets and ashtrays", Area: model.AreaCleaning, Stage: model.StageMidExperience, Enabled: true},
		{Name: "Restrooms stocked and clean", Area: model.AreaCleaning, Stage: model.StageBreak, Enabled: true},
		{Name: "Exit area and signage", Area: model.AreaCleaning, Stage: model.StageExit, Enabled: true},

		{Name: "Greeting at reception", Area: model.AreaGuestService, Stage: model.StageEntry, Enabled: true},
		{Name: "Beverage service timing", Area: model.AreaGuestService, Stage: model.StageMidExperience, Enabled: true},
		{Name: "Rest area attention", Area: model.AreaGuestService, Stage: model.StageBreak, Enabled: true},
		{Name: "Farewell and feedback", Area: model.AreaGuestService, Stage: model.StageExit, Enabled: true},

		{Name: "Machines operational on entry row", Area: model.AreaGamingFloor, Stage: model.StageEntry, Enabled: true},
		{Name: "Table staffing and pace", Area: model.AreaGamingFloor, Stage: model.StageMidExperience, Enabled: true},
		{Name: "Break relief coverage", Area: model.AreaGamingFloor, Stage: model.StageBreak, Enabled: true},
		{Name: "Cash-out queue flow", Area: model.AreaGamingFloor, Stage: model.StageExit, Enabled: true},

		{Name: "Access control and badges", Area: model.AreaOperations, Stage: model.StageEntry, Enabled: true},
		{Name: "HVAC and lighting levels", Area: model.AreaOperations, Stage: model.StageMidExperience, Enabled: true},
		{Name: "Back-of-house corridors", Area: model.AreaOperations, Stage: model.StageBreak, Enabled: true},
		{Name: "Closing checklist readiness", Area: model.AreaOperations, Stage: model.StageExit, Enabled: true},
	}
	for i := range defaults {
		db.Create(&defaults[i])
	}
}
