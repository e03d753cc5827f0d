package service

import (
	"testing"
	"time"

	"supervision_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestActiveRoundProgression(t *testing.T) {
	const items = 4

	tests := []struct {
		name      string
		counts    map[int]int64
		wantRound int
		wantDone  bool
	}{
		{"nothing submitted", map[int]int64{}, 1, false},
		{"round one partial", map[int]int64{1: 2}, 1, false},
		{"round one complete", map[int]int64{1: 4}, 2, false},
		{"round two complete", map[int]int64{1: 4, 2: 4}, 3, false},
		{"all rounds complete", map[int]int64{1: 4, 2: 4, 3: 4}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			round, done := activeRound(tt.counts, items)
			assert.Equal(t, tt.wantRound, round)
			assert.Equal(t, tt.wantDone, done)
		})
	}
}

func TestActiveRoundNoItemsIsClosed(t *testing.T) {
	round, done := activeRound(map[int]int64{}, 0)
	assert.Equal(t, 0, round)
	assert.True(t, done)
}

func TestCooldownRemaining(t *testing.T) {
	window := 2 * time.Hour
	submitted := time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Duration(0), cooldownRemaining(nil, submitted, window))

	// 1h59m after the submission the gate is still shut
	now := submitted.Add(119 * time.Minute)
	assert.Equal(t, time.Minute, cooldownRemaining(&submitted, now, window))

	// 2h01m after, it is open
	now = submitted.Add(121 * time.Minute)
	assert.Equal(t, time.Duration(0), cooldownRemaining(&submitted, now, window))

	// exactly at the boundary the cooldown has elapsed
	now = submitted.Add(window)
	assert.Equal(t, time.Duration(0), cooldownRemaining(&submitted, now, window))
}

func TestShiftDayUsesFacilityTimezone(t *testing.T) {
	// UTC-3: 01:30 UTC on the 19th is still the evening of the 18th locally
	loc := time.FixedZone("UTC-3", -3*60*60)
	now := time.Date(2026, 3, 19, 1, 30, 0, 0, time.UTC)

	d := shiftDay(now, loc)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 18, d.Day())
}

func TestSubmissionStatusTransitions(t *testing.T) {
	assert.True(t, model.SubmissionPending.Valid())
	assert.True(t, model.SubmissionApproved.Valid())
	assert.True(t, model.SubmissionRejected.Valid())
	assert.False(t, model.SubmissionStatus("escalated").Valid())
}
