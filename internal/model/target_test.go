package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }
func sptr(s string) *string   { return &s }

func TestEffectiveTargetOverrideWins(t *testing.T) {
	goal := &Goal{MeasurementType: MeasurementPercentage, TargetPercentage: fptr(95)}
	override := &ShiftTarget{Shift: ShiftNight, TargetPercentage: fptr(70)}

	tv := EffectiveTarget(goal, override)

	assert.Equal(t, 70.0, tv.Percentage)
	assert.True(t, tv.Overridden)
	assert.Equal(t, 70.0, tv.Numeric())
}

func TestEffectiveTargetFallsBackToGlobal(t *testing.T) {
	goal := &Goal{MeasurementType: MeasurementPercentage, TargetPercentage: fptr(95)}

	// no override at all
	tv := EffectiveTarget(goal, nil)
	assert.Equal(t, 95.0, tv.Percentage)
	assert.False(t, tv.Overridden)

	// an override row without a value for this type must not shadow the
	// global target with zero
	empty := &ShiftTarget{Shift: ShiftMorning}
	tv = EffectiveTarget(goal, empty)
	assert.Equal(t, 95.0, tv.Percentage)
	assert.False(t, tv.Overridden)
}

func TestEffectiveTargetAbsoluteValue(t *testing.T) {
	goal := &Goal{MeasurementType: MeasurementAbsoluteValue, TargetValue: fptr(900)}
	override := &ShiftTarget{Shift: ShiftMorning, TargetValue: fptr(300)}

	tv := EffectiveTarget(goal, override)
	assert.Equal(t, 300.0, tv.Value)
	assert.True(t, tv.Overridden)
	assert.Equal(t, 300.0, tv.Numeric())
}

func TestEffectiveTargetResolutionNumericIsFixed(t *testing.T) {
	goal := &Goal{MeasurementType: MeasurementResolution, TargetResolution: sptr("machine repaired")}

	tv := EffectiveTarget(goal, nil)
	assert.Equal(t, "machine repaired", tv.Resolution)
	assert.Equal(t, 100.0, tv.Numeric())

	blank := &ShiftTarget{Shift: ShiftNight, TargetResolution: sptr("")}
	tv = EffectiveTarget(goal, blank)
	assert.Equal(t, "machine repaired", tv.Resolution)
	assert.False(t, tv.Overridden)
}
