package service

import (
	"math"
	"testing"

	"supervision_backend/internal/model"
	"supervision_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestValidateRecordValue(t *testing.T) {
	var invalid *util.ValidationError

	assert.NoError(t, validateRecordValue(model.MeasurementPercentage, fptr(85), nil))
	assert.ErrorAs(t, validateRecordValue(model.MeasurementPercentage, nil, nil), &invalid)
	assert.ErrorAs(t, validateRecordValue(model.MeasurementPercentage, fptr(101), nil), &invalid)

	assert.NoError(t, validateRecordValue(model.MeasurementAbsoluteValue, fptr(1234.5), nil))
	assert.ErrorAs(t, validateRecordValue(model.MeasurementAbsoluteValue, nil, nil), &invalid)
	assert.ErrorAs(t, validateRecordValue(model.MeasurementAbsoluteValue, fptr(math.NaN()), nil), &invalid)

	assert.NoError(t, validateRecordValue(model.MeasurementResolution, nil, bptr(true)))
	assert.ErrorAs(t, validateRecordValue(model.MeasurementResolution, nil, nil), &invalid)
	assert.ErrorAs(t, validateRecordValue(model.MeasurementResolution, fptr(1), bptr(true)), &invalid)
}
