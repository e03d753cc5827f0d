// Package shift resolves wall-clock instants to the facility's operational
// shifts. The resolution is pure and total: every instant maps to exactly one
// of morning, afternoon or night, with boundaries at 06:00, 14:00 and 22:00
// facility-local time.
package shift

import (
	"time"

	"supervision_backend/internal/model"
)

const (
	morningStart   = 6
	afternoonStart = 14
	nightStart     = 22
)

// Resolve maps an instant to the shift active at that moment in loc. A zero
// instant defaults to now; a nil location defaults to UTC so the function has
// no failure mode.
func Resolve(t time.Time, loc *time.Location) model.Shift {
	if t.IsZero() {
		t = time.Now()
	}
	if loc == nil {
		loc = time.UTC
	}

	switch h := t.In(loc).Hour(); {
	case h >= morningStart && h < afternoonStart:
		return model.ShiftMorning
	case h >= afternoonStart && h < nightStart:
		return model.ShiftAfternoon
	default:
		return model.ShiftNight
	}
}

// Current is the shift active right now in loc.
func Current(loc *time.Location) model.Shift {
	return Resolve(time.Now(), loc)
}

// LoadLocation resolves the facility timezone. When the tzdata database is
// unavailable it falls back to a fixed UTC offset, which loses DST handling
// but keeps shift boundaries deterministic.
func LoadLocation(name string, fallbackUTCOffset int) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, fallbackUTCOffset*3600)
	}
	return loc
}

// Window returns the start and end of the shift-day window s belongs to on
// the calendar day of t. The night shift spans midnight: its window starts at
// 22:00 and ends at 06:00 the next day.
func Window(t time.Time, s model.Shift, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	day := time.Date(t.In(loc).Year(), t.In(loc).Month(), t.In(loc).Day(), 0, 0, 0, 0, loc)

	switch s {
	case model.ShiftMorning:
		return day.Add(morningStart * time.Hour), day.Add(afternoonStart * time.Hour)
	case model.ShiftAfternoon:
		return day.Add(afternoonStart * time.Hour), day.Add(nightStart * time.Hour)
	default:
		return day.Add(nightStart * time.Hour), day.Add((24 + morningStart) * time.Hour)
	}
}
