package service

import (
	"testing"

	"supervision_backend/internal/model"
	"supervision_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func sptr(s string) *string { return &s }

func TestValidateTargetPercentage(t *testing.T) {
	assert.NoError(t, validateTarget(model.MeasurementPercentage, fptr(95), nil, nil))

	var invalid *util.ValidationError
	assert.ErrorAs(t, validateTarget(model.MeasurementPercentage, nil, nil, nil), &invalid)
	assert.ErrorAs(t, validateTarget(model.MeasurementPercentage, fptr(120), nil, nil), &invalid)
	assert.ErrorAs(t, validateTarget(model.MeasurementPercentage, fptr(-1), nil, nil), &invalid)
	// extra columns are rejected, not ignored
	assert.ErrorAs(t, validateTarget(model.MeasurementPercentage, fptr(95), fptr(10), nil), &invalid)
}

func TestValidateTargetAbsoluteValue(t *testing.T) {
	assert.NoError(t, validateTarget(model.MeasurementAbsoluteValue, nil, fptr(500), nil))

	var invalid *util.ValidationError
	assert.ErrorAs(t, validateTarget(model.MeasurementAbsoluteValue, nil, nil, nil), &invalid)
	assert.ErrorAs(t, validateTarget(model.MeasurementAbsoluteValue, nil, fptr(500), sptr("fixed")), &invalid)
}

func TestValidateTargetResolution(t *testing.T) {
	assert.NoError(t, validateTarget(model.MeasurementResolution, nil, nil, sptr("machine 14 repaired")))

	var invalid *util.ValidationError
	assert.ErrorAs(t, validateTarget(model.MeasurementResolution, nil, nil, nil), &invalid)
	assert.ErrorAs(t, validateTarget(model.MeasurementResolution, nil, nil, sptr("")), &invalid)
	assert.ErrorAs(t, validateTarget(model.MeasurementResolution, fptr(50), nil, sptr("fixed")), &invalid)
}

func TestValidateTargetUnknownType(t *testing.T) {
	var invalid *util.ValidationError
	assert.ErrorAs(t, validateTarget(model.MeasurementType("ordinal"), fptr(1), nil, nil), &invalid)
}

func TestValidateShiftTargets(t *testing.T) {
	ok := []ShiftTargetInput{
		{Shift: model.ShiftMorning, TargetPercentage: fptr(90)},
		{Shift: model.ShiftNight, TargetPercentage: fptr(70)},
	}
	assert.NoError(t, validateShiftTargets(model.MeasurementPercentage, ok))

	var invalid *util.ValidationError

	dup := []ShiftTargetInput{
		{Shift: model.ShiftMorning, TargetPercentage: fptr(90)},
		{Shift: model.ShiftMorning, TargetPercentage: fptr(80)},
	}
	assert.ErrorAs(t, validateShiftTargets(model.MeasurementPercentage, dup), &invalid)

	badShift := []ShiftTargetInput{{Shift: model.Shift("dawn"), TargetPercentage: fptr(90)}}
	assert.ErrorAs(t, validateShiftTargets(model.MeasurementPercentage, badShift), &invalid)

	// an override must match the parent's measurement type
	wrongType := []ShiftTargetInput{{Shift: model.ShiftMorning, TargetValue: fptr(10)}}
	assert.ErrorAs(t, validateShiftTargets(model.MeasurementPercentage, wrongType), &invalid)
}
