package model

import (
	"time"
)

type UserRole string

const (
	// Supervisor is the senior role: creates goals, approves validations,
	// closes incidents.
	Supervisor UserRole = "supervisor"
	// AreaSupervisor runs one area: submits validations and reports records.
	AreaSupervisor UserRole = "area_supervisor"
	// Operator works a shift in one area: raises and works incidents.
	Operator UserRole = "operator"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('supervisor','area_supervisor','operator');default:'operator'" json:"role"`
	Area      *Area     `gorm:"type:enum('cleaning','guest_service','gaming_floor','operations')" json:"area,omitempty"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
