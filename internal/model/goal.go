package model

// MeasurementType decides how achieved values are aggregated and compared
// against a goal's target.
type MeasurementType string

const (
	// MeasurementPercentage averages all records in the window against a 0-100 target.
	MeasurementPercentage MeasurementType = "percentage"
	// MeasurementAbsoluteValue compares the latest reading against a numeric target.
	MeasurementAbsoluteValue MeasurementType = "absolute_value"
	// MeasurementResolution is boolean completion: any truthy record fulfils the goal.
	MeasurementResolution MeasurementType = "resolution"
)

func (m MeasurementType) Valid() bool {
	switch m {
	case MeasurementPercentage, MeasurementAbsoluteValue, MeasurementResolution:
		return true
	}
	return false
}

// Goal is a measurable objective owned by one area. Exactly one of the three
// target columns is populated, matching MeasurementType. Goals are never
// deleted; Active=false retires them.
type Goal struct {
	BaseModel
	Name             string          `gorm:"size:255;not null" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	Area             Area            `gorm:"type:enum('cleaning','guest_service','gaming_floor','operations');not null;index" json:"area"`
	MeasurementType  MeasurementType `gorm:"type:enum('percentage','absolute_value','resolution');not null" json:"measurementType"`
	TargetPercentage *float64        `json:"targetPercentage,omitempty"`
	TargetValue      *float64        `json:"targetValue,omitempty"`
	TargetResolution *string         `gorm:"size:500" json:"targetResolution,omitempty"`
	Active           bool            `gorm:"default:true" json:"active"`
	CreatedBy        uint            `gorm:"index" json:"createdBy"`

	ShiftTargets []ShiftTarget `gorm:"constraint:OnDelete:CASCADE" json:"shiftTargets,omitempty"`
}

func (Goal) TableName() string {
	return "goals"
}

// ShiftTarget overrides a goal's global target for a single shift. At most
// one per (goal, shift); measurement type is inherited from the parent goal.
type ShiftTarget struct {
	BaseModel
	GoalID           uint     `gorm:"not null;uniqueIndex:idx_goal_shift" json:"goalId"`
	Shift            Shift    `gorm:"type:enum('morning','afternoon','night');not null;uniqueIndex:idx_goal_shift" json:"shift"`
	TargetPercentage *float64 `json:"targetPercentage,omitempty"`
	TargetValue      *float64 `json:"targetValue,omitempty"`
	TargetResolution *string  `gorm:"size:500" json:"targetResolution,omitempty"`
}

func (ShiftTarget) TableName() string {
	return "shift_targets"
}
