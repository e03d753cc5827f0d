package service

import (
	"math"
	"time"

	"supervision_backend/internal/model"
)

// metTolerance absorbs floating-point noise in "goal met" comparisons: a
// value counts as met when actual >= target - metTolerance.
const metTolerance = 0.01

// ProgressResult is the outcome of one progress computation over a record
// window. Pending marks an empty window: zero progress, not an error.
type ProgressResult struct {
	ProgressPercentage float64           `json:"progressPercentage"`
	ActualValue        float64           `json:"actualValue"`
	TargetValue        float64           `json:"targetValue"`
	Met                bool              `json:"met"`
	Pending            bool              `json:"pending"`
	Target             model.TargetValue `json:"target"`
}

// ContributionResult is the weighted share of a shift's attainment toward the
// global target (shift view only).
type ContributionResult struct {
	Shift                   model.Shift `json:"shift"`
	ShiftActual             float64     `json:"shiftActual"`
	ShiftTarget             float64     `json:"shiftTarget"`
	GlobalTarget            float64     `json:"globalTarget"`
	TargetContributionRatio float64     `json:"targetContributionRatio"`
	ShiftAttainment         float64     `json:"shiftAttainment"`
	Contribution            float64     `json:"contribution"`
}

// MonthlyComparison holds current-month-to-date progress against the full
// previous month. DeltaDefined is false when the previous month had nothing
// to compare against (previous = 0 with current > 0).
type MonthlyComparison struct {
	Current      ProgressResult `json:"current"`
	Previous     ProgressResult `json:"previous"`
	Delta        float64        `json:"delta"`
	DeltaDefined bool           `json:"deltaDefined"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ratio guards division by a zero or negative denominator: anything achieved
// against no target counts as full attainment, nothing achieved as none.
func ratio(actual, target float64) float64 {
	if target <= 0 {
		if actual > 0 {
			return 1
		}
		return 0
	}
	return actual / target
}

// computeProgress derives progress for one record window, dispatching once on
// the target's measurement type:
//
//	percentage     is the order-independent mean of all records vs target
//	absolute_value is the chronologically latest record vs target (ties: last write wins)
//	resolution     is 100 if any record is achieved, else 0, vs a fixed 100
func computeProgress(target model.TargetValue, records []model.DailyRecord) ProgressResult {
	res := ProgressResult{Target: target, TargetValue: target.Numeric()}

	switch target.Type {
	case model.MeasurementPercentage:
		sum, n := 0.0, 0
		for _, r := range records {
			if r.Value != nil {
				sum += *r.Value
				n++
			}
		}
		if n == 0 {
			res.Pending = true
			return res
		}
		res.ActualValue = sum / float64(n)

	case model.MeasurementAbsoluteValue:
		var latest *model.DailyRecord
		for i := range records {
			r := &records[i]
			if r.Value == nil {
				continue
			}
			if latest == nil || !r.Date.Before(latest.Date) {
				latest = r
			}
		}
		if latest == nil {
			res.Pending = true
			return res
		}
		res.ActualValue = *latest.Value

	case model.MeasurementResolution:
		if len(records) == 0 {
			res.Pending = true
			return res
		}
		for _, r := range records {
			if r.Achieved != nil && *r.Achieved {
				res.ActualValue = 100
				break
			}
		}
	}

	res.ProgressPercentage = clamp(math.Round(ratio(res.ActualValue, res.TargetValue)*100), 0, 100)
	res.Met = res.ActualValue >= res.TargetValue-metTolerance
	return res
}

// computeContribution applies the two-factor formula: how much of the global
// target the shift's target represents, weighted by the shift's own
// attainment. A shift can fully meet its smaller target and still contribute
// a bounded slice of the global goal; the clamp holds even when the shift
// target exceeds the global one.
func computeContribution(shift model.Shift, shiftActual, shiftTarget, globalTarget float64) ContributionResult {
	attainment := ratio(shiftActual, shiftTarget) * 100
	targetRatio := ratio(shiftTarget, globalTarget) * 100

	return ContributionResult{
		Shift:                   shift,
		ShiftActual:             shiftActual,
		ShiftTarget:             shiftTarget,
		GlobalTarget:            globalTarget,
		TargetContributionRatio: targetRatio,
		ShiftAttainment:         attainment,
		Contribution:            clamp(math.Round(attainment*targetRatio/100), 0, 100),
	}
}

// progressDelta is the signed month-over-month change. Undefined when the
// previous period was zero and the current one is not.
func progressDelta(current, previous float64) (float64, bool) {
	if previous == 0 {
		if current == 0 {
			return 0, true
		}
		return 0, false
	}
	return (current - previous) / previous * 100, true
}

// monthWindow is [first day of t's month, t] at day granularity.
func monthWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, end
}

// previousMonthWindow is the whole calendar month before t's.
func previousMonthWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	firstOfCurrent := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	start := firstOfCurrent.AddDate(0, -1, 0)
	end := firstOfCurrent.AddDate(0, 0, -1)
	return start, end
}
