package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "shopadmin/internal/errors"
)

// CatalogRepository is the persistence contract shared by the catalog entities.
// Reads hide soft-deleted rows unless stated otherwise.
type CatalogRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint) (*T, error)
	// FindByIDUnscoped also returns soft-deleted rows.
	FindByIDUnscoped(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint) error
}

type catalogRepository[T any] struct {
	db *gorm.DB
}

// NewCatalogRepository builds a GORM-backed catalog repository for T.
func NewCatalogRepository[T any](db *gorm.DB) CatalogRepository[T] {
	return &catalogRepository[T]{db: db}
}

func (r *catalogRepository[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *catalogRepository[T]) FindByIDUnscoped(ctx context.Context, id uint) (*T, error) {
	return r.first(r.db.WithContext(ctx).Unscoped(), id)
}

func (r *catalogRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update writes every editable column of item. The soft-delete scope applies,
// so a row deleted after it was read affects nothing and yields ErrConflict.
func (r *catalogRepository[T]) Update(ctx context.Context, item *T) error {
	res := r.db.WithContext(ctx).
		Model(item).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// Delete stamps deleted_at on a live row.
func (r *catalogRepository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *catalogRepository[T]) first(q *gorm.DB, id uint) (*T, error) {
	item := new(T)
	if err := q.First(item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}
