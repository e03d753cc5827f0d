package model

import "time"

// DailyRecord is one achieved-value observation for a goal on a given
// shift-day. Value carries percentage/absolute readings, Achieved carries
// resolution outcomes; the one matching the goal's measurement type is set.
// Records are never deleted; superseding happens by updating a known id.
type DailyRecord struct {
	BaseModel
	GoalID    uint      `gorm:"not null;index:idx_record_goal_date" json:"goalId"`
	Date      time.Time `gorm:"type:date;not null;index:idx_record_goal_date" json:"date"`
	Shift     Shift     `gorm:"type:enum('morning','afternoon','night');not null;index" json:"shift"`
	Value     *float64  `json:"value,omitempty"`
	Achieved  *bool     `json:"achieved,omitempty"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedBy uint      `gorm:"index" json:"createdBy"`
}

func (DailyRecord) TableName() string {
	return "daily_records"
}
