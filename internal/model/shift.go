package model

// Shift is one of the three fixed 8-hour operational periods. It is always
// derived from wall-clock time, never stored as free-standing state.
type Shift string

const (
	ShiftMorning   Shift = "morning"   // 06:00 - 14:00
	ShiftAfternoon Shift = "afternoon" // 14:00 - 22:00
	ShiftNight     Shift = "night"     // 22:00 - 06:00
)

func Shifts() []Shift {
	return []Shift{ShiftMorning, ShiftAfternoon, ShiftNight}
}

func (s Shift) Valid() bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftNight:
		return true
	}
	return false
}
