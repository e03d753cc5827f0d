package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"supervision_backend/internal/model"
)

func TestResolve_Boundaries(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	cases := []struct {
		hour int
		want model.Shift
	}{
		{0, model.ShiftNight},
		{5, model.ShiftNight},
		{6, model.ShiftMorning},
		{13, model.ShiftMorning},
		{14, model.ShiftAfternoon},
		{21, model.ShiftAfternoon},
		{22, model.ShiftNight},
		{23, model.ShiftNight},
	}

	for _, tc := range cases {
		got := Resolve(day.Add(time.Duration(tc.hour)*time.Hour), loc)
		assert.Equal(t, tc.want, got, "hour %d", tc.hour)
	}
}

// Every hour of the day maps to exactly one shift: no gaps, no overlaps.
func TestResolve_PartitionsTheClock(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	counts := map[model.Shift]int{}

	for h := 0; h < 24; h++ {
		s := Resolve(day.Add(time.Duration(h)*time.Hour), loc)
		assert.True(t, s.Valid(), "hour %d resolved to %q", h, s)
		counts[s]++
	}

	assert.Equal(t, 8, counts[model.ShiftMorning])
	assert.Equal(t, 8, counts[model.ShiftAfternoon])
	assert.Equal(t, 8, counts[model.ShiftNight])
}

func TestResolve_TimezoneAware(t *testing.T) {
	ba, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 16:00 UTC is 13:00 in Buenos Aires (UTC-3): still morning there,
	// already afternoon in UTC.
	instant := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, model.ShiftMorning, Resolve(instant, ba))
	assert.Equal(t, model.ShiftAfternoon, Resolve(instant, time.UTC))
}

func TestResolve_ZeroInstantDefaultsToNow(t *testing.T) {
	got := Resolve(time.Time{}, time.UTC)
	want := Resolve(time.Now(), time.UTC)
	assert.Equal(t, want, got)
}

func TestResolve_NilLocation(t *testing.T) {
	instant := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	assert.Equal(t, model.ShiftMorning, Resolve(instant, nil))
}

func TestLoadLocation_Fallback(t *testing.T) {
	loc := LoadLocation("No/Such_Zone", -3)

	// 16:00 UTC at a fixed -3 offset is 13:00 local.
	instant := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, model.ShiftMorning, Resolve(instant, loc))
}

func TestWindow_NightSpansMidnight(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 23, 0, 0, 0, loc)

	start, end := Window(day, model.ShiftNight, loc)
	assert.Equal(t, 22, start.Hour())
	assert.Equal(t, 6, end.Hour())
	assert.Equal(t, start.Day()+1, end.Day())
}
