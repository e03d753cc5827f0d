package service

import (
	"testing"
	"time"

	"supervision_backend/internal/model"
	"supervision_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func areaPtr(a model.Area) *model.Area { return &a }

func pendingIncident(area model.Area) *model.Incident {
	in := &model.Incident{Area: area, Status: model.IncidentPending}
	in.ID = "inc-1"
	return in
}

func TestCanTransitionHappyPath(t *testing.T) {
	in := pendingIncident(model.AreaCleaning)

	assert.NoError(t, canTransition(in, model.IncidentInProcess, model.AreaSupervisor, areaPtr(model.AreaCleaning)))

	in.Status = model.IncidentInProcess
	assert.NoError(t, canTransition(in, model.IncidentResolved, model.Operator, areaPtr(model.AreaCleaning)))

	in.Status = model.IncidentResolved
	assert.NoError(t, canTransition(in, model.IncidentClosed, model.Supervisor, nil))
}

func TestCanTransitionRejectsSkipsAndReversals(t *testing.T) {
	var stateErr *util.StateError

	in := pendingIncident(model.AreaCleaning)
	err := canTransition(in, model.IncidentClosed, model.Supervisor, nil)
	assert.ErrorAs(t, err, &stateErr)

	in.Status = model.IncidentResolved
	err = canTransition(in, model.IncidentInProcess, model.Supervisor, nil)
	assert.ErrorAs(t, err, &stateErr)

	in.Status = model.IncidentClosed
	err = canTransition(in, model.IncidentPending, model.Supervisor, nil)
	assert.ErrorAs(t, err, &stateErr)
}

func TestCanTransitionOnlySupervisorCloses(t *testing.T) {
	in := pendingIncident(model.AreaGamingFloor)
	in.Status = model.IncidentResolved

	var stateErr *util.StateError
	err := canTransition(in, model.IncidentClosed, model.AreaSupervisor, areaPtr(model.AreaGamingFloor))
	assert.ErrorAs(t, err, &stateErr)

	err = canTransition(in, model.IncidentClosed, model.Operator, areaPtr(model.AreaGamingFloor))
	assert.ErrorAs(t, err, &stateErr)
}

func TestCanTransitionCrossAreaBlocked(t *testing.T) {
	in := pendingIncident(model.AreaOperations)

	var stateErr *util.StateError
	err := canTransition(in, model.IncidentInProcess, model.AreaSupervisor, areaPtr(model.AreaCleaning))
	assert.ErrorAs(t, err, &stateErr)

	// the senior supervisor works any area
	assert.NoError(t, canTransition(in, model.IncidentInProcess, model.Supervisor, nil))
}

func TestClassifyBuckets(t *testing.T) {
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	later := now.Add(4 * time.Hour)
	earlier := now.Add(-4 * time.Hour)

	immediate := model.Incident{Status: model.IncidentPending}
	v := classify(immediate, now)
	assert.False(t, v.Scheduled)
	assert.False(t, v.Overdue)

	deferred := model.Incident{Status: model.IncidentPending, ScheduledStart: &later}
	v = classify(deferred, now)
	assert.True(t, v.Scheduled)
	assert.False(t, v.Overdue)

	overdue := model.Incident{Status: model.IncidentPending, ScheduledStart: &earlier}
	v = classify(overdue, now)
	assert.False(t, v.Scheduled)
	assert.True(t, v.Overdue)

	// once started, a due incident is no longer overdue
	started := model.Incident{Status: model.IncidentInProcess, ScheduledStart: &earlier}
	v = classify(started, now)
	assert.False(t, v.Scheduled)
	assert.False(t, v.Overdue)
}

func TestPartialLinkErrorCarriesBothIDs(t *testing.T) {
	err := &PartialLinkError{IncidentID: "inc-9", GoalID: 42, Err: assert.AnError}

	assert.Contains(t, err.Error(), "inc-9")
	assert.Contains(t, err.Error(), "42")
	assert.ErrorIs(t, err, assert.AnError)
}
