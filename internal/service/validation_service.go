package service

import (
	"fmt"
	"strconv"
	"time"

	"supervision_backend/internal/model"
	"supervision_backend/internal/repository"
	"supervision_backend/internal/shift"
	"supervision_backend/internal/util"
	"supervision_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// ValidationService runs the per-area checklist workflow: three sequential
// scoring rounds per shift-day, gated by a cooldown window between
// submissions. Submissions are all-or-nothing per round; approval happens
// item by item afterwards.
type ValidationService struct {
	Repo     *repository.ValidationRepository
	Loc      *time.Location
	Cooldown time.Duration
}

func NewValidationService(repo *repository.ValidationRepository, loc *time.Location, cooldown time.Duration) *ValidationService {
	return &ValidationService{Repo: repo, Loc: loc, Cooldown: cooldown}
}

// GateState tells an area whether it may submit right now, and for which
// round.
type GateState struct {
	Area                     model.Area  `json:"area"`
	Date                     string      `json:"date"`
	Shift                    model.Shift `json:"shift"`
	ItemCount                int         `json:"itemCount"`
	ActiveRound              int         `json:"activeRound"`
	Closed                   bool        `json:"closed"`
	InCooldown               bool        `json:"inCooldown"`
	CooldownRemainingSeconds int64       `json:"cooldownRemainingSeconds"`
}

type SubmissionEntry struct {
	ItemID   uint   `json:"itemId" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	PhotoRef string `json:"photoRef"`
}

type SubmitRoundRequest struct {
	Area    model.Area        `json:"area" binding:"required"`
	Entries []SubmissionEntry `json:"entries" binding:"required"`
}

// activeRound finds the lowest round with fewer submissions than checklist
// items. Closed means all three rounds are fully scored for this shift-day.
func activeRound(counts map[int]int64, itemCount int) (int, bool) {
	if itemCount == 0 {
		return 0, true
	}
	for r := 1; r <= model.MaxValidationRound; r++ {
		if counts[r] < int64(itemCount) {
			return r, false
		}
	}
	return 0, true
}

// cooldownRemaining is how long until the area may submit again. A missing
// last submission means no cooldown at all.
func cooldownRemaining(last *time.Time, now time.Time, window time.Duration) time.Duration {
	if last == nil {
		return 0
	}
	remaining := last.Add(window).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func shiftDay(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// Items returns the area's static checklist. A load failure is reported as
// upstream unavailability so the client renders a waiting state, never an
// empty checklist.
func (s *ValidationService) Items(area model.Area) ([]model.ValidationItem, error) {
	if !area.Valid() {
		return nil, util.Invalid("area", "unknown area")
	}
	items, err := s.Repo.FindItemsByArea(area)
	if err != nil {
		return nil, &util.UpstreamError{Op: "checklist load", Err: err}
	}
	return items, nil
}

// Gate evaluates the submission gate for the area's current shift-day.
func (s *ValidationService) Gate(area model.Area, now time.Time) (*GateState, error) {
	items, err := s.Items(area)
	if err != nil {
		return nil, err
	}

	currentShift := shift.Resolve(now, s.Loc)
	day := shiftDay(now, s.Loc)

	counts, err := s.Repo.CountByRound(area, day, currentShift)
	if err != nil {
		return nil, &util.UpstreamError{Op: "submission count", Err: err}
	}

	var lastAt *time.Time
	last, err := s.Repo.FindLatestSubmission(area, day, currentShift)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, &util.UpstreamError{Op: "last submission lookup", Err: err}
	}
	if err == nil {
		lastAt = &last.CreatedAt
	}

	round, closed := activeRound(counts, len(items))
	remaining := cooldownRemaining(lastAt, now, s.Cooldown)

	return &GateState{
		Area:                     area,
		Date:                     day.Format("2006-01-02"),
		Shift:                    currentShift,
		ItemCount:                len(items),
		ActiveRound:              round,
		Closed:                   closed,
		InCooldown:               remaining > 0,
		CooldownRemainingSeconds: int64(remaining / time.Second),
	}, nil
}

// SubmitRound posts one pending submission per checklist item for the active
// round. The batch is rejected unless exactly every item carries one rating.
func (s *ValidationService) SubmitRound(actorID uint, req SubmitRoundRequest, now time.Time) ([]model.ValidationSubmission, error) {
	items, err := s.Items(req.Area)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, util.Invalid("area", "no checklist configured for this area")
	}

	gate, err := s.Gate(req.Area, now)
	if err != nil {
		return nil, err
	}
	if gate.Closed {
		return nil, &util.StateError{
			Entity: "validation round",
			ID:     string(req.Area),
			Reason: "all rounds scored for this shift; submission reopens next shift",
		}
	}
	if gate.InCooldown {
		return nil, &util.StateError{
			Entity: "validation round",
			ID:     string(req.Area),
			Reason: fmt.Sprintf("cooldown active, retry in %ds", gate.CooldownRemainingSeconds),
		}
	}

	byItem := make(map[uint]SubmissionEntry, len(req.Entries))
	for _, e := range req.Entries {
		if e.Rating < 1 || e.Rating > 5 {
			return nil, util.Invalid("rating", "must be an integer within 1-5")
		}
		if _, dup := byItem[e.ItemID]; dup {
			return nil, util.Invalid("entries", fmt.Sprintf("duplicate rating for item %d", e.ItemID))
		}
		byItem[e.ItemID] = e
	}

	if len(byItem) != len(items) {
		return nil, util.Invalid("entries",
			fmt.Sprintf("round requires exactly %d ratings, got %d", len(items), len(byItem)))
	}

	day := shiftDay(now, s.Loc)
	subs := make([]model.ValidationSubmission, 0, len(items))
	for _, item := range items {
		entry, ok := byItem[item.ID]
		if !ok {
			return nil, util.Invalid("entries", fmt.Sprintf("missing rating for item %d (%s)", item.ID, item.Name))
		}
		subs = append(subs, model.ValidationSubmission{
			ItemID:    item.ID,
			Area:      req.Area,
			Date:      day,
			Shift:     gate.Shift,
			Round:     gate.ActiveRound,
			Rating:    entry.Rating,
			PhotoRef:  entry.PhotoRef,
			Status:    model.SubmissionPending,
			CreatedBy: actorID,
		})
	}

	if err := s.Repo.CreateBatch(subs); err != nil {
		return nil, &util.UpstreamError{Op: "submission create", Err: err}
	}

	monitoring.ValidationSubmissions.WithLabelValues(string(req.Area), strconv.Itoa(gate.ActiveRound)).
		Add(float64(len(subs)))

	return subs, nil
}

// Pending lists the approver's working set for one area shift-day.
func (s *ValidationService) Pending(area model.Area, date time.Time, sh model.Shift) ([]model.ValidationSubmission, error) {
	if !area.Valid() {
		return nil, util.Invalid("area", "unknown area")
	}
	status := model.SubmissionPending
	subs, err := s.Repo.FindSubmissions(area, date, sh, &status)
	if err != nil {
		return nil, &util.UpstreamError{Op: "submission list", Err: err}
	}
	return subs, nil
}

// SetStatus approves or rejects one submission. Approving or rejecting is
// terminal and removes the item from the awaiting-approval set.
func (s *ValidationService) SetStatus(id string, status model.SubmissionStatus) (*model.ValidationSubmission, error) {
	if status != model.SubmissionApproved && status != model.SubmissionRejected {
		return nil, util.Invalid("status", "must be approved or rejected")
	}

	sub, err := s.Repo.FindSubmissionByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, &util.NotFoundError{Entity: "submission", ID: id}
	}
	if err != nil {
		return nil, &util.UpstreamError{Op: "submission lookup", Err: err}
	}

	if sub.Status != model.SubmissionPending {
		return nil, &util.StateError{
			Entity: "submission",
			ID:     id,
			From:   string(sub.Status),
			To:     string(status),
			Reason: "only pending submissions can be reviewed",
		}
	}

	if err := s.Repo.UpdateStatus(id, status); err != nil {
		return nil, &util.UpstreamError{Op: "submission update", Err: err}
	}
	sub.Status = status
	return sub, nil
}
