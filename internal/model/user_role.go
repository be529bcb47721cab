package model

import "time"

// UserRole links one user to one role. The link only points at Role;
// users reach their links through User.UserRoles.
type UserRole struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_user_role_pair"`
	RoleID     uint       `json:"role_id" gorm:"column:role_id;not null;uniqueIndex:idx_user_role_pair;index"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt *time.Time `json:"modified_at,omitempty" gorm:"column:modified_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" gorm:"column:deleted_at"`

	Role Role `json:"role" gorm:"foreignKey:RoleID"`
}

func (UserRole) TableName() string {
	return "user_role"
}
