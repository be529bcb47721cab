package model

import "time"

// Seeded role names.
const (
	RoleVisitor       = "Visitor"
	RoleAdministrator = "Administrator"
)

// DefaultRoles lists the seeded roles with the ids the existing data expects.
var DefaultRoles = []Role{
	{ID: 1, Name: RoleVisitor},
	{ID: 2, Name: RoleAdministrator},
}

// Role is a named permission set assigned to users through UserRole.
type Role struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Name       string     `json:"name" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt *time.Time `json:"modified_at,omitempty" gorm:"column:modified_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" gorm:"column:deleted_at"`
}

func (Role) TableName() string {
	return "role"
}
