package service

import (
	"fmt"
	"sync"
	"time"

	"supervision_backend/internal/model"
	"supervision_backend/internal/repository"
	"supervision_backend/internal/util"

	"gorm.io/gorm"
)

// ProgressService derives progress percentages and shift-to-global
// contribution from raw records and target definitions. All computation is
// read-only over immutable record snapshots.
type ProgressService struct {
	GoalRepo        *repository.GoalRepository
	ShiftTargetRepo *repository.ShiftTargetRepository
	RecordRepo      *repository.DailyRecordRepository
	Loc             *time.Location
}

func NewProgressService(
	goalRepo *repository.GoalRepository,
	shiftTargetRepo *repository.ShiftTargetRepository,
	recordRepo *repository.DailyRecordRepository,
	loc *time.Location,
) *ProgressService {
	return &ProgressService{
		GoalRepo:        goalRepo,
		ShiftTargetRepo: shiftTargetRepo,
		RecordRepo:      recordRepo,
		Loc:             loc,
	}
}

func (s *ProgressService) loadGoal(goalID uint) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(goalID)
	if err == gorm.ErrRecordNotFound {
		return nil, &util.NotFoundError{Entity: "goal", ID: fmt.Sprint(goalID)}
	}
	if err != nil {
		return nil, &util.UpstreamError{Op: "goal lookup", Err: err}
	}
	return goal, nil
}

// resolveTarget applies the effectiveTarget contract: the shift override when
// present and populated, the global target otherwise. A missing override is
// expected, never an error.
func (s *ProgressService) resolveTarget(goal *model.Goal, shift *model.Shift) (model.TargetValue, error) {
	if shift == nil {
		return model.EffectiveTarget(goal, nil), nil
	}

	override, err := s.ShiftTargetRepo.FindByGoalAndShift(goal.ID, *shift)
	if err != nil && err != gorm.ErrRecordNotFound {
		return model.TargetValue{}, &util.UpstreamError{Op: "shift target lookup", Err: err}
	}
	return model.EffectiveTarget(goal, override), nil
}

// Progress computes the progress of one goal over [start, end], globally or
// narrowed to a shift.
func (s *ProgressService) Progress(goalID uint, shift *model.Shift, start, end time.Time) (*ProgressResult, error) {
	goal, err := s.loadGoal(goalID)
	if err != nil {
		return nil, err
	}

	target, err := s.resolveTarget(goal, shift)
	if err != nil {
		return nil, err
	}

	records, err := s.RecordRepo.FindInWindow(goalID, start, end, shift)
	if err != nil {
		return nil, &util.UpstreamError{Op: "record query", Err: err}
	}

	res := computeProgress(target, records)
	return &res, nil
}

// Contribution computes the shift's weighted share of the global target over
// [start, end].
func (s *ProgressService) Contribution(goalID uint, shift model.Shift, start, end time.Time) (*ContributionResult, error) {
	goal, err := s.loadGoal(goalID)
	if err != nil {
		return nil, err
	}

	shiftTarget, err := s.resolveTarget(goal, &shift)
	if err != nil {
		return nil, err
	}
	globalTarget := model.EffectiveTarget(goal, nil)

	records, err := s.RecordRepo.FindInWindow(goalID, start, end, &shift)
	if err != nil {
		return nil, &util.UpstreamError{Op: "record query", Err: err}
	}

	actual := computeProgress(shiftTarget, records).ActualValue
	res := computeContribution(shift, actual, shiftTarget.Numeric(), globalTarget.Numeric())
	return &res, nil
}

// Monthly compares current-month-to-date progress against the full previous
// month. The two windows read independent snapshots, so they are evaluated
// concurrently.
func (s *ProgressService) Monthly(goalID uint, shift *model.Shift, now time.Time) (*MonthlyComparison, error) {
	goal, err := s.loadGoal(goalID)
	if err != nil {
		return nil, err
	}

	target, err := s.resolveTarget(goal, shift)
	if err != nil {
		return nil, err
	}

	curStart, curEnd := monthWindow(now, s.Loc)
	prevStart, prevEnd := previousMonthWindow(now, s.Loc)

	var (
		wg       sync.WaitGroup
		cur, prv ProgressResult
		curErr   error
		prvErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		records, err := s.RecordRepo.FindInWindow(goalID, curStart, curEnd, shift)
		if err != nil {
			curErr = &util.UpstreamError{Op: "record query (current month)", Err: err}
			return
		}
		cur = computeProgress(target, records)
	}()
	go func() {
		defer wg.Done()
		records, err := s.RecordRepo.FindInWindow(goalID, prevStart, prevEnd, shift)
		if err != nil {
			prvErr = &util.UpstreamError{Op: "record query (previous month)", Err: err}
			return
		}
		prv = computeProgress(target, records)
	}()
	wg.Wait()

	if curErr != nil {
		return nil, curErr
	}
	if prvErr != nil {
		return nil, prvErr
	}

	delta, defined := progressDelta(cur.ActualValue, prv.ActualValue)
	return &MonthlyComparison{
		Current:      cur,
		Previous:     prv,
		Delta:        delta,
		DeltaDefined: defined,
	}, nil
}
