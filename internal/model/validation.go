package model

import "time"

// ValidationStage tags a checklist item with the guest-journey stage it
// inspects.
type ValidationStage string

const (
	StageEntry         ValidationStage = "entry"
	StageMidExperience ValidationStage = "mid_experience"
	StageBreak         ValidationStage = "break"
	StageExit          ValidationStage = "exit"
)

func (s ValidationStage) Valid() bool {
	switch s {
	case StageEntry, StageMidExperience, StageBreak, StageExit:
		return true
	}
	return false
}

// ValidationItem is a static checklist entry for one area. Items are seeded
// at migration time, not derived from submissions.
type ValidationItem struct {
	BaseModel
	Name    string          `gorm:"size:255;not null" json:"name"`
	Area    Area            `gorm:"type:enum('cleaning','guest_service','gaming_floor','operations');not null;index" json:"area"`
	Stage   ValidationStage `gorm:"type:enum('entry','mid_experience','break','exit');not null" json:"stage"`
	Enabled bool            `gorm:"default:true" json:"enabled"`
}

func (ValidationItem) TableName() string {
	return "validation_items"
}

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

// Rounds per shift-day. Round 1 must be fully scored before round 2 opens,
// and so on; after round 3 the shift-day is closed.
const MaxValidationRound = 3

// ValidationSubmission is one scored checklist item within a round. PhotoRef
// is an opaque reference supplied by the client; this service never touches
// image bytes.
type ValidationSubmission struct {
	UUIDBase
	ItemID    uint             `gorm:"not null;index" json:"itemId"`
	Item      *ValidationItem  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Area      Area             `gorm:"type:enum('cleaning','guest_service','gaming_floor','operations');not null;index:idx_sub_gate" json:"area"`
	Date      time.Time        `gorm:"type:date;not null;index:idx_sub_gate" json:"date"`
	Shift     Shift            `gorm:"type:enum('morning','afternoon','night');not null;index:idx_sub_gate" json:"shift"`
	Round     int              `gorm:"not null" json:"round"`
	Rating    int              `gorm:"not null" json:"rating"`
	PhotoRef  string           `gorm:"size:500" json:"photoRef,omitempty"`
	Status    SubmissionStatus `gorm:"type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	CreatedBy uint             `gorm:"index" json:"createdBy"`
}

func (ValidationSubmission) TableName() string {
	return "validation_submissions"
}
