package service

import (
	"fmt"
	"time"

	"supervision_backend/internal/model"
	"supervision_backend/internal/repository"
	"supervision_backend/internal/shift"
	"supervision_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IncidentService runs the incident lifecycle: pending -> in_process ->
// resolved -> closed, each step unidirectional and role-gated. Deferred
// incidents carry a scheduled start and surface as overdue once due but still
// pending.
type IncidentService struct {
	Repo        *repository.IncidentRepository
	GoalService *GoalService
	Loc         *time.Location
	Logger      *zap.Logger
}

func NewIncidentService(repo *repository.IncidentRepository, goalService *GoalService, loc *time.Location, logger *zap.Logger) *IncidentService {
	return &IncidentService{Repo: repo, GoalService: goalService, Loc: loc, Logger: logger}
}

// PartialLinkError surfaces the two-phase failure window between goal
// creation and goal-incident linking. The incident and the goal both exist;
// only the association is missing. The orphaned goal has already been
// deactivated as the compensating action.
type PartialLinkError struct {
	IncidentID string
	GoalID     uint
	Err        error
}

func (e *PartialLinkError) Error() string {
	return fmt.Sprintf("incident %s created but goal %d could not be linked: %v", e.IncidentID, e.GoalID, e.Err)
}

func (e *PartialLinkError) Unwrap() error {
	return e.Err
}

type CreateIncidentRequest struct {
	Title          string             `json:"title" binding:"required,max=255"`
	Description    string             `json:"description" binding:"max=2000"`
	Area           model.Area         `json:"area" binding:"required"`
	ScheduledStart *time.Time         `json:"scheduledStart"`
	Goal           *CreateGoalRequest `json:"goal"`
}

// incidentFlow is the only legal successor of each state.
var incidentFlow = map[model.IncidentStatus]model.IncidentStatus{
	model.IncidentPending:   model.IncidentInProcess,
	model.IncidentInProcess: model.IncidentResolved,
	model.IncidentResolved:  model.IncidentClosed,
}

// canTransition gates a transition by state ordering and by role: the
// submitting area works its own incidents, only the senior supervisor closes.
func canTransition(incident *model.Incident, to model.IncidentStatus, role model.UserRole, actorArea *model.Area) error {
	next, ok := incidentFlow[incident.Status]
	if !ok || next != to {
		return &util.StateError{
			Entity: "incident",
			ID:     incident.ID,
			From:   string(incident.Status),
			To:     string(to),
			Reason: "transitions are unidirectional: pending -> in_process -> resolved -> closed",
		}
	}

	if to == model.IncidentClosed {
		if role != model.Supervisor {
			return &util.StateError{
				Entity: "incident",
				ID:     incident.ID,
				From:   string(incident.Status),
				To:     string(to),
				Reason: "only the supervisor closes incidents",
			}
		}
		return nil
	}

	// start/resolve: supervisor anywhere, area roles only within their area
	if role == model.Supervisor {
		return nil
	}
	if actorArea == nil || *actorArea != incident.Area {
		return &util.StateError{
			Entity: "incident",
			ID:     incident.ID,
			From:   string(incident.Status),
			To:     string(to),
			Reason: "incident belongs to another area",
		}
	}
	return nil
}

// Create raises an incident, optionally creating and linking a goal in two
// phases. When the link fails after the goal exists, the failure is surfaced
// as PartialLinkError instead of silently dropping the association; the link
// is retried once and the orphan goal deactivated on final failure.
func (s *IncidentService) Create(actorID uint, req CreateIncidentRequest, now time.Time) (*model.Incident, error) {
	if !req.Area.Valid() {
		return nil, util.Invalid("area", "unknown area")
	}

	incident := &model.Incident{
		Title:          req.Title,
		Description:    req.Description,
		Area:           req.Area,
		Shift:          shift.Resolve(now, s.Loc),
		Status:         model.IncidentPending,
		ScheduledStart: req.ScheduledStart,
		CreatedBy:      actorID,
	}

	var goal *model.Goal
	if req.Goal != nil {
		var err error
		goal, err = s.GoalService.CreateGoal(actorID, *req.Goal)
		if err != nil {
			return nil, err
		}
	}

	if err := s.Repo.Create(incident); err != nil {
		if goal != nil {
			// compensate: the incident never existed, retire the goal
			if derr := s.GoalService.GoalRepo.Deactivate(goal.ID); derr != nil {
				s.Logger.Error("orphan goal could not be deactivated",
					zap.Uint("goalId", goal.ID), zap.Error(derr))
			}
		}
		return nil, &util.UpstreamError{Op: "incident create", Err: err}
	}

	if goal != nil {
		err := s.Repo.AssignGoal(incident.ID, goal.ID)
		if err != nil {
			s.Logger.Warn("goal link failed, retrying once",
				zap.String("incidentId", incident.ID), zap.Uint("goalId", goal.ID), zap.Error(err))
			err = s.Repo.AssignGoal(incident.ID, goal.ID)
		}
		if err != nil {
			if derr := s.GoalService.GoalRepo.Deactivate(goal.ID); derr != nil {
				s.Logger.Error("orphan goal could not be deactivated",
					zap.Uint("goalId", goal.ID), zap.Error(derr))
			}
			return incident, &PartialLinkError{IncidentID: incident.ID, GoalID: goal.ID, Err: err}
		}
		incident.GoalID = &goal.ID
		incident.Goal = goal
	}

	return incident, nil
}

// IncidentView decorates an incident with its bucket and overdue flag.
type IncidentView struct {
	model.Incident
	Scheduled bool `json:"scheduled"`
	Overdue   bool `json:"overdue"`
}

func classify(incident model.Incident, now time.Time) IncidentView {
	v := IncidentView{Incident: incident}
	if incident.ScheduledStart != nil {
		if now.Before(*incident.ScheduledStart) {
			v.Scheduled = true
		} else if incident.Status == model.IncidentPending {
			// due but never started: needs urgent attention
			v.Overdue = true
		}
	}
	return v
}

// List returns incidents, optionally narrowed to one area and to a bucket
// ("current" excludes not-yet-due deferred items, "scheduled" keeps only
// them).
func (s *IncidentService) List(area *model.Area, bucket string, now time.Time) ([]IncidentView, error) {
	if area != nil && !area.Valid() {
		return nil, util.Invalid("area", "unknown area")
	}
	if bucket != "" && bucket != "current" && bucket != "scheduled" {
		return nil, util.Invalid("bucket", "must be current or scheduled")
	}

	incidents, err := s.Repo.FindAll(area)
	if err != nil {
		return nil, &util.UpstreamError{Op: "incident list", Err: err}
	}

	views := make([]IncidentView, 0, len(incidents))
	for _, in := range incidents {
		v := classify(in, now)
		switch bucket {
		case "current":
			if v.Scheduled {
				continue
			}
		case "scheduled":
			if !v.Scheduled {
				continue
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// UpdateStatus advances one incident through its lifecycle on behalf of the
// acting role.
func (s *IncidentService) UpdateStatus(id string, to model.IncidentStatus, role model.UserRole, actorArea *model.Area) (*model.Incident, error) {
	if !to.Valid() {
		return nil, util.Invalid("status", "unknown incident status")
	}

	incident, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, &util.NotFoundError{Entity: "incident", ID: id}
	}
	if err != nil {
		return nil, &util.UpstreamError{Op: "incident lookup", Err: err}
	}

	if err := canTransition(incident, to, role, actorArea); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateStatus(id, to); err != nil {
		return nil, &util.UpstreamError{Op: "incident update", Err: err}
	}
	incident.Status = to
	return incident, nil
}

// CountOverdue feeds the overdue-incidents gauge.
func (s *IncidentService) CountOverdue(now time.Time) (int64, error) {
	return s.Repo.CountOverduePending(now)
}
