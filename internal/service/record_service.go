package service

import (
	"fmt"
	"math"
	"time"

	"supervision_backend/internal/model"
	"supervision_backend/internal/repository"
	"supervision_backend/internal/util"

	"gorm.io/gorm"
)

// RecordService writes achieved-value observations. Upsert semantics: a
// caller holding the record id for a (goal, date, shift) slot supersedes it
// in place; otherwise a new record is appended. Nothing is ever deleted.
type RecordService struct {
	GoalRepo   *repository.GoalRepository
	RecordRepo *repository.DailyRecordRepository
}

func NewRecordService(goalRepo *repository.GoalRepository, recordRepo *repository.DailyRecordRepository) *RecordService {
	return &RecordService{GoalRepo: goalRepo, RecordRepo: recordRepo}
}

type UpsertRecordRequest struct {
	RecordID *uint       `json:"recordId"`
	Date     string      `json:"date" binding:"required"` // YYYY-MM-DD
	Shift    model.Shift `json:"shift" binding:"required"`
	Value    *float64    `json:"value"`
	Achieved *bool       `json:"achieved"`
	Comment  string      `json:"comment" binding:"max=1000"`
}

// validateRecordValue checks the achieved value against the goal's
// measurement type: 0-100 for percentage, any finite number for
// absolute_value, a boolean for resolution.
func validateRecordValue(mt model.MeasurementType, value *float64, achieved *bool) error {
	switch mt {
	case model.MeasurementPercentage:
		if value == nil {
			return util.Invalid("value", "required for percentage goals")
		}
		if *value < 0 || *value > 100 {
			return util.Invalid("value", "must be within [0,100]")
		}
	case model.MeasurementAbsoluteValue:
		if value == nil {
			return util.Invalid("value", "required for absolute_value goals")
		}
		if math.IsNaN(*value) || math.IsInf(*value, 0) {
			return util.Invalid("value", "must be a finite number")
		}
	case model.MeasurementResolution:
		if achieved == nil {
			return util.Invalid("achieved", "required for resolution goals")
		}
		if value != nil {
			return util.Invalid("value", "resolution goals record only achieved")
		}
	}
	return nil
}

func (s *RecordService) Upsert(actorID uint, goalID uint, req UpsertRecordRequest) (*model.DailyRecord, error) {
	goal, err := s.GoalRepo.FindByID(goalID)
	if err == gorm.ErrRecordNotFound {
		return nil, &util.NotFoundError{Entity: "goal", ID: fmt.Sprint(goalID)}
	}
	if err != nil {
		return nil, &util.UpstreamError{Op: "goal lookup", Err: err}
	}

	if !req.Shift.Valid() {
		return nil, util.Invalid("shift", "must be morning, afternoon or night")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, util.Invalid("date", "must be YYYY-MM-DD")
	}
	if err := validateRecordValue(goal.MeasurementType, req.Value, req.Achieved); err != nil {
		return nil, err
	}

	if req.RecordID != nil {
		existing, err := s.RecordRepo.FindByID(*req.RecordID)
		if err == gorm.ErrRecordNotFound {
			return nil, &util.NotFoundError{Entity: "record", ID: fmt.Sprint(*req.RecordID)}
		}
		if err != nil {
			return nil, &util.UpstreamError{Op: "record lookup", Err: err}
		}
		if existing.GoalID != goalID {
			return nil, util.Invalid("recordId", "record belongs to a different goal")
		}

		existing.Value = req.Value
		existing.Achieved = req.Achieved
		existing.Comment = req.Comment
		if err := s.RecordRepo.UpdateValues(existing); err != nil {
			return nil, &util.UpstreamError{Op: "record update", Err: err}
		}
		return existing, nil
	}

	record := &model.DailyRecord{
		GoalID:    goalID,
		Date:      date,
		Shift:     req.Shift,
		Value:     req.Value,
		Achieved:  req.Achieved,
		Comment:   req.Comment,
		CreatedBy: actorID,
	}
	if err := s.RecordRepo.Create(record); err != nil {
		return nil, &util.UpstreamError{Op: "record create", Err: err}
	}
	return record, nil
}

func (s *RecordService) ListWindow(goalID uint, start, end time.Time, shift *model.Shift) ([]model.DailyRecord, error) {
	if _, err := s.GoalRepo.FindByID(goalID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &util.NotFoundError{Entity: "goal", ID: fmt.Sprint(goalID)}
		}
		return nil, &util.UpstreamError{Op: "goal lookup", Err: err}
	}

	records, err := s.RecordRepo.FindInWindow(goalID, start, end, shift)
	if err != nil {
		return nil, &util.UpstreamError{Op: "record query", Err: err}
	}
	return records, nil
}
