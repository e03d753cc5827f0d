package model

import "time"

type IncidentStatus string

const (
	IncidentPending   IncidentStatus = "pending"
	IncidentInProcess IncidentStatus = "in_process"
	IncidentResolved  IncidentStatus = "resolved"
	IncidentClosed    IncidentStatus = "closed"
)

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentPending, IncidentInProcess, IncidentResolved, IncidentClosed:
		return true
	}
	return false
}

// Incident is a free-form issue raised by an area. ScheduledStart defers it:
// until that instant it sits in the scheduled bucket, after it a still-pending
// incident is flagged overdue. GoalID optionally links a goal created
// alongside the incident.
type Incident struct {
	UUIDBase
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Area           Area           `gorm:"type:enum('cleaning','guest_service','gaming_floor','operations');not null;index" json:"area"`
	Shift          Shift          `gorm:"type:enum('morning','afternoon','night');not null" json:"shift"`
	Status         IncidentStatus `gorm:"type:enum('pending','in_process','resolved','closed');default:'pending';index" json:"status"`
	ScheduledStart *time.Time     `json:"scheduledStart,omitempty"`
	GoalID         *uint          `gorm:"index" json:"goalId,omitempty"`
	Goal           *Goal          `gorm:"foreignKey:GoalID" json:"goal,omitempty"`
	CreatedBy      uint           `gorm:"index" json:"createdBy"`
}

func (Incident) TableName() string {
	return "incidents"
}
