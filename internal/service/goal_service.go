package service

import (
	"fmt"
	"math"

	"supervision_backend/internal/model"
	"supervision_backend/internal/repository"
	"supervision_backend/internal/util"

	"gorm.io/gorm"
)

// GoalService handles goal authoring. The area binding and measurement type
// are fixed at creation; only targets may be edited afterwards, and goals are
// retired rather than deleted.
type GoalService struct {
	GoalRepo        *repository.GoalRepository
	ShiftTargetRepo *repository.ShiftTargetRepository
}

func NewGoalService(goalRepo *repository.GoalRepository, shiftTargetRepo *repository.ShiftTargetRepository) *GoalService {
	return &GoalService{GoalRepo: goalRepo, ShiftTargetRepo: shiftTargetRepo}
}

// ShiftTargetInput is one per-shift override supplied alongside a goal.
type ShiftTargetInput struct {
	Shift            model.Shift `json:"shift" binding:"required"`
	TargetPercentage *float64    `json:"targetPercentage"`
	TargetValue      *float64    `json:"targetValue"`
	TargetResolution *string     `json:"targetResolution"`
}

type CreateGoalRequest struct {
	Name             string                `json:"name" binding:"required,max=255"`
	Description      string                `json:"description" binding:"max=1000"`
	Area             model.Area            `json:"area" binding:"required"`
	MeasurementType  model.MeasurementType `json:"measurementType" binding:"required"`
	TargetPercentage *float64              `json:"targetPercentage"`
	TargetValue      *float64              `json:"targetValue"`
	TargetResolution *string               `json:"targetResolution"`
	ShiftTargets     []ShiftTargetInput    `json:"shiftTargets"`
}

type UpdateTargetRequest struct {
	TargetPercentage *float64           `json:"targetPercentage"`
	TargetValue      *float64           `json:"targetValue"`
	TargetResolution *string            `json:"targetResolution"`
	ShiftTargets     []ShiftTargetInput `json:"shiftTargets"`
}

// validateTarget enforces the creation-time rule: exactly the column matching
// the measurement type is populated, within its domain.
func validateTarget(mt model.MeasurementType, pct, val *float64, res *string) error {
	switch mt {
	case model.MeasurementPercentage:
		if pct == nil {
			return util.Invalid("targetPercentage", "required for percentage goals")
		}
		if *pct < 0 || *pct > 100 {
			return util.Invalid("targetPercentage", "must be within [0,100]")
		}
		if val != nil || res != nil {
			return util.Invalid("target", "only targetPercentage may be set for percentage goals")
		}
	case model.MeasurementAbsoluteValue:
		if val == nil {
			return util.Invalid("targetValue", "required for absolute_value goals")
		}
		if math.IsNaN(*val) || math.IsInf(*val, 0) {
			return util.Invalid("targetValue", "must be a finite number")
		}
		if pct != nil || res != nil {
			return util.Invalid("target", "only targetValue may be set for absolute_value goals")
		}
	case model.MeasurementResolution:
		if res == nil || *res == "" {
			return util.Invalid("targetResolution", "required for resolution goals")
		}
		if pct != nil || val != nil {
			return util.Invalid("target", "only targetResolution may be set for resolution goals")
		}
	default:
		return util.Invalid("measurementType", "must be percentage, absolute_value or resolution")
	}
	return nil
}

func validateShiftTargets(mt model.MeasurementType, inputs []ShiftTargetInput) error {
	seen := map[model.Shift]bool{}
	for _, in := range inputs {
		if !in.Shift.Valid() {
			return util.Invalid("shiftTargets.shift", "must be morning, afternoon or night")
		}
		if seen[in.Shift] {
			return util.Invalid("shiftTargets", fmt.Sprintf("duplicate override for shift %s", in.Shift))
		}
		seen[in.Shift] = true

		// overrides inherit the parent's measurement type
		if err := validateTarget(mt, in.TargetPercentage, in.TargetValue, in.TargetResolution); err != nil {
			return err
		}
	}
	return nil
}

func (s *GoalService) CreateGoal(actorID uint, req CreateGoalRequest) (*model.Goal, error) {
	if !req.Area.Valid() {
		return nil, util.Invalid("area", "unknown area")
	}
	if err := validateTarget(req.MeasurementType, req.TargetPercentage, req.TargetValue, req.TargetResolution); err != nil {
		return nil, err
	}
	if err := validateShiftTargets(req.MeasurementType, req.ShiftTargets); err != nil {
		return nil, err
	}

	goal := &model.Goal{
		Name:             req.Name,
		Description:      req.Description,
		Area:             req.Area,
		MeasurementType:  req.MeasurementType,
		TargetPercentage: req.TargetPercentage,
		TargetValue:      req.TargetValue,
		TargetResolution: req.TargetResolution,
		Active:           true,
		CreatedBy:        actorID,
	}
	for _, in := range req.ShiftTargets {
		goal.ShiftTargets = append(goal.ShiftTargets, model.ShiftTarget{
			Shift:            in.Shift,
			TargetPercentage: in.TargetPercentage,
			TargetValue:      in.TargetValue,
			TargetResolution: in.TargetResolution,
		})
	}

	if err := s.GoalRepo.Create(goal); err != nil {
		return nil, &util.UpstreamError{Op: "goal create", Err: err}
	}
	return goal, nil
}

// UpdateTarget edits the targets of an existing goal, leaving identity, area
// and measurement type untouched.
func (s *GoalService) UpdateTarget(goalID uint, req UpdateTargetRequest) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(goalID)
	if err == gorm.ErrRecordNotFound {
		return nil, &util.NotFoundError{Entity: "goal", ID: fmt.Sprint(goalID)}
	}
	if err != nil {
		return nil, &util.UpstreamError{Op: "goal lookup", Err: err}
	}

	if err := validateTarget(goal.MeasurementType, req.TargetPercentage, req.TargetValue, req.TargetResolution); err != nil {
		return nil, err
	}
	if err := validateShiftTargets(goal.MeasurementType, req.ShiftTargets); err != nil {
		return nil, err
	}

	goal.TargetPercentage = req.TargetPercentage
	goal.TargetValue = req.TargetValue
	goal.TargetResolution = req.TargetResolution
	if err := s.GoalRepo.UpdateTarget(goal); err != nil {
		return nil, &util.UpstreamError{Op: "goal update", Err: err}
	}

	for _, in := range req.ShiftTargets {
		st := &model.ShiftTarget{
			GoalID:           goal.ID,
			Shift:            in.Shift,
			TargetPercentage: in.TargetPercentage,
			TargetValue:      in.TargetValue,
			TargetResolution: in.TargetResolution,
		}
		if err := s.ShiftTargetRepo.Upsert(st); err != nil {
			return nil, &util.UpstreamError{Op: "shift target upsert", Err: err}
		}
	}

	return s.GoalRepo.FindByID(goalID)
}

func (s *GoalService) GetGoal(goalID uint) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(goalID)
	if err == gorm.ErrRecordNotFound {
		return nil, &util.NotFoundError{Entity: "goal", ID: fmt.Sprint(goalID)}
	}
	if err != nil {
		return nil, &util.UpstreamError{Op: "goal lookup", Err: err}
	}
	return goal, nil
}

func (s *GoalService) ListGoals(area *model.Area) ([]model.Goal, error) {
	var (
		goals []model.Goal
		err   error
	)
	if area != nil {
		if !area.Valid() {
			return nil, util.Invalid("area", "unknown area")
		}
		goals, err = s.GoalRepo.FindByArea(*area)
	} else {
		goals, err = s.GoalRepo.FindAll()
	}
	if err != nil {
		return nil, &util.UpstreamError{Op: "goal list", Err: err}
	}
	return goals, nil
}

func (s *GoalService) ListShiftTargets(goalID uint, shift *model.Shift) ([]model.ShiftTarget, error) {
	if _, err := s.GetGoal(goalID); err != nil {
		return nil, err
	}

	if shift != nil {
		st, err := s.ShiftTargetRepo.FindByGoalAndShift(goalID, *shift)
		if err == gorm.ErrRecordNotFound {
			return []model.ShiftTarget{}, nil
		}
		if err != nil {
			return nil, &util.UpstreamError{Op: "shift target lookup", Err: err}
		}
		return []model.ShiftTarget{*st}, nil
	}

	targets, err := s.ShiftTargetRepo.FindByGoal(goalID)
	if err != nil {
		return nil, &util.UpstreamError{Op: "shift target list", Err: err}
	}
	return targets, nil
}
