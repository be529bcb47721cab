package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account that can log into the admin backend.
type User struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Username   string         `json:"username" gorm:"size:100;uniqueIndex;not null"`
	Password   string         `json:"-" gorm:"column:password;size:255;not null"` // bcrypt hash
	FirstName  string         `json:"first_name" gorm:"column:first_name;size:100;not null"`
	LastName   string         `json:"last_name" gorm:"column:last_name;size:100;not null"`
	Telephone  *string        `json:"telephone,omitempty" gorm:"size:32"`
	CreatedAt  time.Time      `json:"created_at"`
	ModifiedAt *time.Time     `json:"modified_at,omitempty" gorm:"column:modified_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`

	UserRoles []UserRole `json:"-" gorm:"foreignKey:UserID"`
}

// TableName pins the table name used by the existing schema.
func (User) TableName() string {
	return "user"
}

// RoleNames returns the names of the roles held by the user.
// UserRoles.Role must be preloaded.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.UserRoles))
	for _, link := range u.UserRoles {
		names = append(names, link.Role.Name)
	}
	return names
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name string) bool {
	for _, link := range u.UserRoles {
		if link.Role.Name == name {
			return true
		}
	}
	return false
}
