package model

// TargetValue is the resolved target for one (goal, shift) pair, tagged with
// the goal's measurement type so callers dispatch once instead of re-checking
// the three target columns everywhere.
type TargetValue struct {
	Type       MeasurementType `json:"type"`
	Percentage float64         `json:"percentage,omitempty"`
	Value      float64         `json:"value,omitempty"`
	Resolution string          `json:"resolution,omitempty"`
	// Overridden reports whether a shift-level target supplied the value.
	Overridden bool `json:"overridden"`
}

// Numeric is the denominator used by progress computation. Resolution goals
// always measure against 100.
func (t TargetValue) Numeric() float64 {
	switch t.Type {
	case MeasurementPercentage:
		return t.Percentage
	case MeasurementAbsoluteValue:
		return t.Value
	default:
		return 100
	}
}

// EffectiveTarget resolves the target for a goal under an optional shift
// override. The override wins only when it carries a populated value for the
// goal's measurement type; otherwise the global target applies. This is the
// single resolution point: callers must never substitute 0 on their own.
func EffectiveTarget(goal *Goal, override *ShiftTarget) TargetValue {
	tv := TargetValue{Type: goal.MeasurementType}

	switch goal.MeasurementType {
	case MeasurementPercentage:
		if override != nil && override.TargetPercentage != nil {
			tv.Percentage = *override.TargetPercentage
			tv.Overridden = true
		} else if goal.TargetPercentage != nil {
			tv.Percentage = *goal.TargetPercentage
		}
	case MeasurementAbsoluteValue:
		if override != nil && override.TargetValue != nil {
			tv.Value = *override.TargetValue
			tv.Overridden = true
		} else if goal.TargetValue != nil {
			tv.Value = *goal.TargetValue
		}
	case MeasurementResolution:
		if override != nil && override.TargetResolution != nil && *override.TargetResolution != "" {
			tv.Resolution = *override.TargetResolution
			tv.Overridden = true
		} else if goal.TargetResolution != nil {
			tv.Resolution = *goal.TargetResolution
		}
	}

	return tv
}
