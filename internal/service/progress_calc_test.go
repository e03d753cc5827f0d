package service

import (
	"testing"
	"time"

	"supervision_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeProgressPercentageMean(t *testing.T) {
	target := model.TargetValue{Type: model.MeasurementPercentage, Percentage: 95}
	records := []model.DailyRecord{
		{Date: day(2026, 3, 1), Value: fptr(90)},
		{Date: day(2026, 3, 2), Value: fptr(95)},
	}

	res := computeProgress(target, records)

	assert.False(t, res.Pending)
	assert.Equal(t, 92.5, res.ActualValue)
	assert.Equal(t, 95.0, res.TargetValue)
	// round(92.5 / 95 * 100) = 97
	assert.Equal(t, 97.0, res.ProgressPercentage)
	assert.False(t, res.Met)
}

func TestComputeProgressPercentageOrderIndependent(t *testing.T) {
	target := model.TargetValue{Type: model.MeasurementPercentage, Percentage: 80}
	forward := []model.DailyRecord{
		{Date: day(2026, 3, 1), Value: fptr(60)},
		{Date: day(2026, 3, 2), Value: fptr(70)},
		{Date: day(2026, 3, 3), Value: fptr(80)},
	}
	backward := []model.DailyRecord{forward[2], forward[0], forward[1]}

	assert.Equal(t, computeProgress(target, forward), computeProgress(target, backward))
}

func TestComputeProgressAbsoluteLatestWins(t *testing.T) {
	target := model.TargetValue{Type: model.MeasurementAbsoluteValue, Value: 500}
	// out of order on purpose: the chronologically latest record decides
	records := []model.DailyRecord{
		{Date: day(2026, 3, 10), Value: fptr(450)},
		{Date: day(2026, 3, 2), Value: fptr(500)},
		{Date: day(2026, 3, 7), Value: fptr(100)},
	}

	res := computeProgress(target, records)

	assert.Equal(t, 450.0, res.ActualValue)
	assert.Equal(t, 90.0, res.ProgressPercentage)
	assert.False(t, res.Met)
}

func TestComputeProgressAbsoluteSameDayLastWriteWins(t *testing.T) {
	target := model.TargetValue{Type: model.MeasurementAbsoluteValue, Value: 100}
	records := []model.DailyRecord{
		{Date: day(2026, 3, 5), Value: fptr(40)},
		{Date: day(2026, 3, 5), Value: fptr(110)},
	}

	res := computeProgress(target, records)

	assert.Equal(t, 110.0, res.ActualValue)
	assert.Equal(t, 100.0, res.ProgressPercentage)
	assert.True(t, res.Met)
}

func TestComputeProgressResolutionAnyTruthy(t *testing.T) {
	target := model.TargetValue{Type: model.MeasurementResolution, Resolution: "fixed"}
	records := []model.DailyRecord{
		{Date: day(2026, 3, 1), Achieved: bptr(false)},
		{Date: day(2026, 3, 2), Achieved: bptr(false)},
		{Date: day(2026, 3, 3), Achieved: bptr(true)},
	}

	res := computeProgress(target, records)

	assert.Equal(t, 100.0, res.ProgressPercentage)
	assert.True(t, res.Met)

	none := computeProgress(target, records[:2])
	assert.Equal(t, 0.0, none.ProgressPercentage)
	assert.False(t, none.Met)
	assert.False(t, none.Pending)
}

func TestComputeProgressEmptyWindowIsPending(t *testing.T) {
	for _, target := range []model.TargetValue{
		{Type: model.MeasurementPercentage, Percentage: 90},
		{Type: model.MeasurementAbsoluteValue, Value: 10},
		{Type: model.MeasurementResolution, Resolution: "fixed"},
	} {
		res := computeProgress(target, nil)
		assert.True(t, res.Pending, "type %s", target.Type)
		assert.Equal(t, 0.0, res.ProgressPercentage, "type %s", target.Type)
		assert.False(t, res.Met, "type %s", target.Type)
	}
}

func TestComputeProgressClampsOverAttainment(t *testing.T) {
	target := model.TargetValue{Type: model.MeasurementAbsoluteValue, Value: 100}
	records := []model.DailyRecord{{Date: day(2026, 3, 1), Value: fptr(250)}}

	res := computeProgress(target, records)

	assert.Equal(t, 100.0, res.ProgressPercentage)
	assert.Equal(t, 250.0, res.ActualValue)
	assert.True(t, res.Met)
}

func TestRatioGuardsZeroTarget(t *testing.T) {
	assert.Equal(t, 1.0, ratio(5, 0))
	assert.Equal(t, 0.0, ratio(0, 0))
	assert.Equal(t, 1.0, ratio(3, -2))
}

func TestComputeContribution(t *testing.T) {
	// shift met 90 of its 100, which is 40% of the global 250
	res := computeContribution(model.ShiftMorning, 90, 100, 250)

	assert.Equal(t, 90.0, res.ShiftAttainment)
	assert.Equal(t, 40.0, res.TargetContributionRatio)
	assert.Equal(t, 36.0, res.Contribution)
}

func TestComputeContributionClampsOversizedShiftTarget(t *testing.T) {
	// a shift target above the global one cannot contribute past 100
	res := computeContribution(model.ShiftNight, 300, 300, 100)

	assert.Equal(t, 100.0, res.Contribution)
	assert.Equal(t, 300.0, res.TargetContributionRatio)
}

func TestProgressDelta(t *testing.T) {
	delta, defined := progressDelta(80, 50)
	assert.True(t, defined)
	assert.InDelta(t, 60.0, delta, 1e-9)

	delta, defined = progressDelta(40, 0)
	assert.False(t, defined)
	assert.Equal(t, 0.0, delta)

	delta, defined = progressDelta(0, 0)
	assert.True(t, defined)
	assert.Equal(t, 0.0, delta)
}

func TestMonthWindows(t *testing.T) {
	now := time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

	start, end := monthWindow(now, time.UTC)
	assert.Equal(t, day(2026, 3, 1), start)
	assert.Equal(t, day(2026, 3, 18), end)

	pStart, pEnd := previousMonthWindow(now, time.UTC)
	assert.Equal(t, day(2026, 2, 1), pStart)
	assert.Equal(t, day(2026, 2, 28), pEnd)
}

func TestPreviousMonthWindowAcrossYear(t *testing.T) {
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	pStart, pEnd := previousMonthWindow(now, time.UTC)
	assert.Equal(t, day(2025, 12, 1), pStart)
	assert.Equal(t, day(2025, 12, 31), pEnd)
}
