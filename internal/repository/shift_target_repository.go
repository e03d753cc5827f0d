package repository

import (
	"supervision_backend/internal/model"

	"gorm.io/gorm"
)

type ShiftTargetRepository struct {
	DB *gorm.DB
}

func NewShiftTargetRepository(db *gorm.DB) *ShiftTargetRepository {
	return &ShiftTargetRepository{DB: db}
}

func (r *ShiftTargetRepository) FindByGoal(goalID uint) ([]model.ShiftTarget, error) {
	var targets []model.ShiftTarget
	err := r.DB.Where("goal_id = ?", goalID).Order("shift").Find(&targets).Error
	return targets, err
}

// FindByGoalAndShift returns the override for one shift, or
// gorm.ErrRecordNotFound when the goal has none; callers fall back to the
// global target in that case.
func (r *ShiftTargetRepository) FindByGoalAndShift(goalID uint, shift model.Shift) (*model.ShiftTarget, error) {
	var target model.ShiftTarget
	err := r.DB.Where("goal_id = ? AND shift = ?", goalID, shift).First(&target).Error
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// Upsert writes the override for (goal, shift), replacing an existing row.
func (r *ShiftTargetRepository) Upsert(target *model.ShiftTarget) error {
	var existing model.ShiftTarget
	err := r.DB.Where("goal_id = ? AND shift = ?", target.GoalID, target.Shift).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(target).Error
	}
	if err != nil {
		return err
	}

	return r.DB.Model(&existing).Updates(map[string]interface{}{
		"target_percentage": target.TargetPercentage,
		"target_value":      target.TargetValue,
		"target_resolution": target.TargetResolution,
	}).Error
}
