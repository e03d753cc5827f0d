package repository

import (
	"time"

	"supervision_backend/internal/model"

	"gorm.io/gorm"
)

// GoalRepository handles data access for goals and their shift overrides.

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

// Create persists a goal together with any nested shift targets.
func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

// UpdateTarget rewrites only the target columns. The area binding and
// measurement type of a goal are immutable after creation.
func (r *GoalRepository) UpdateTarget(goal *model.Goal) error {
	return r.DB.Model(&model.Goal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"target_percentage": goal.TargetPercentage,
			"target_value":      goal.TargetValue,
			"target_resolution": goal.TargetResolution,
			"updated_at":        time.Now(),
		}).Error
}

func (r *GoalRepository) Deactivate(id uint) error {
	return r.DB.Model(&model.Goal{}).Where("id = ?", id).
		Update("active", false).Error
}

func (r *GoalRepository) FindByID(id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.Preload("ShiftTargets").First(&goal, id).Error
	return &goal, err
}

func (r *GoalRepository) FindAll() ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Preload("ShiftTargets").Where("active = ?", true).
		Order("area, name").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) FindByArea(area model.Area) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Preload("ShiftTargets").
		Where("area = ? AND active = ?", area, true).
		Order("name").Find(&goals).Error
	return goals, err
}
