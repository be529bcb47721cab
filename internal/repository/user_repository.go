package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/model"
)

// UserRepository defines persistence operations for users and their role links.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByIDWithRoles(ctx context.Context, id uint) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ListByRole(ctx context.Context, roleName string) ([]model.User, error)
	AssignRole(ctx context.Context, userID, roleID uint) error
	DeleteRoleLinks(ctx context.Context, userID uint) (int64, error)
	HardDelete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user. A unique-key violation on username maps to ErrUsernameTaken.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Omit("UserRoles").Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrUsernameTaken
	}
	return err
}

// FindByUsername returns a live user with role links preloaded.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("UserRoles.Role").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) FindByIDWithRoles(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("UserRoles.Role").First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// ExistsByUsername also sees soft-deleted users, so a deleted account keeps its name reserved.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByRole returns live users holding the named role, ordered by id.
func (r *userRepository) ListByRole(ctx context.Context, roleName string) ([]model.User, error) {
	holders := r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Select("user_role.user_id").
		Joins("JOIN role ON role.id = user_role.role_id").
		Where("role.name = ?", roleName)

	var users []model.User
	err := r.db.WithContext(ctx).
		Where("id IN (?)", holders).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) AssignRole(ctx context.Context, userID, roleID uint) error {
	link := &model.UserRole{UserID: userID, RoleID: roleID}
	if err := r.db.WithContext(ctx).Omit("Role").Create(link).Error; err != nil {
		return fmt.Errorf("assign role %d to user %d: %w", roleID, userID, err)
	}
	return nil
}

func (r *userRepository) DeleteRoleLinks(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserRole{})
	return res.RowsAffected, res.Error
}

// HardDelete removes the user row permanently.
func (r *userRepository) HardDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	return err
}
