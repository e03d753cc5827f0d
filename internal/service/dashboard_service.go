package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"supervision_backend/internal/model"
	"supervision_backend/internal/repository"
	"supervision_backend/internal/shift"
	"supervision_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const dashboardCacheTTL = time.Minute

// DashboardService assembles the supervision overview: the shift active right
// now plus, per goal, global month-over-month progress, the current shift's
// progress and its contribution to the global target. Snapshots are cached
// briefly in redis; cache trouble falls back to recomputation.
type DashboardService struct {
	GoalRepo *repository.GoalRepository
	Progress *ProgressService
	Redis    *redis.Client
	Loc      *time.Location
	Logger   *zap.Logger
}

func NewDashboardService(
	goalRepo *repository.GoalRepository,
	progress *ProgressService,
	rdb *redis.Client,
	loc *time.Location,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		GoalRepo: goalRepo,
		Progress: progress,
		Redis:    rdb,
		Loc:      loc,
		Logger:   logger,
	}
}

type GoalSummary struct {
	Goal          model.Goal         `json:"goal"`
	Global        MonthlyComparison  `json:"global"`
	ShiftProgress ProgressResult     `json:"shiftProgress"`
	Contribution  ContributionResult `json:"contribution"`
}

type Overview struct {
	Shift model.Shift   `json:"shift"`
	Date  string        `json:"date"`
	Area  *model.Area   `json:"area,omitempty"`
	Goals []GoalSummary `json:"goals"`
}

func (s *DashboardService) cacheKey(area *model.Area, sh model.Shift, day string) string {
	scope := "all"
	if area != nil {
		scope = string(*area)
	}
	return fmt.Sprintf("dashboard:%s:%s:%s", scope, sh, day)
}

func (s *DashboardService) GetOverview(ctx context.Context, area *model.Area, now time.Time) (*Overview, error) {
	if area != nil && !area.Valid() {
		return nil, util.Invalid("area", "unknown area")
	}

	currentShift := shift.Resolve(now, s.Loc)
	day := now.In(s.Loc).Format("2006-01-02")
	key := s.cacheKey(area, currentShift, day)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var ov Overview
			if err := json.Unmarshal([]byte(cached), &ov); err == nil {
				return &ov, nil
			}
		}
	}

	var (
		goals []model.Goal
		err   error
	)
	if area != nil {
		goals, err = s.GoalRepo.FindByArea(*area)
	} else {
		goals, err = s.GoalRepo.FindAll()
	}
	if err != nil {
		return nil, &util.UpstreamError{Op: "goal list", Err: err}
	}

	start, end := monthWindow(now, s.Loc)

	ov := &Overview{Shift: currentShift, Date: day, Area: area, Goals: make([]GoalSummary, 0, len(goals))}
	for _, goal := range goals {
		global, err := s.Progress.Monthly(goal.ID, nil, now)
		if err != nil {
			return nil, err
		}
		shiftProgress, err := s.Progress.Progress(goal.ID, &currentShift, start, end)
		if err != nil {
			return nil, err
		}
		contribution, err := s.Progress.Contribution(goal.ID, currentShift, start, end)
		if err != nil {
			return nil, err
		}

		ov.Goals = append(ov.Goals, GoalSummary{
			Goal:          goal,
			Global:        *global,
			ShiftProgress: *shiftProgress,
			Contribution:  *contribution,
		})
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(ov); err == nil {
			if err := s.Redis.Set(ctx, key, payload, dashboardCacheTTL).Err(); err != nil {
				s.Logger.Debug("dashboard cache write failed", zap.Error(err))
			}
		}
	}

	return ov, nil
}

// CurrentShift exposes the resolver to the views; always computed on demand,
// never kept as mutable state.
func (s *DashboardService) CurrentShift(now time.Time) model.Shift {
	return shift.Resolve(now, s.Loc)
}
