package testutil

import (
	"context"

	"gorm.io/gorm"

	"shopadmin/internal/repository"
)

// VanishingCatalogRepo soft-deletes a row right after the unscoped read that
// precedes an update, so the following write finds nothing to change.
type VanishingCatalogRepo[T any] struct {
	repository.CatalogRepository[T]
	DB *gorm.DB
}

// NewVanishingCatalogRepo wraps the real repository over gdb.
func NewVanishingCatalogRepo[T any](gdb *gorm.DB) VanishingCatalogRepo[T] {
	return VanishingCatalogRepo[T]{CatalogRepository: repository.NewCatalogRepository[T](gdb), DB: gdb}
}

func (r VanishingCatalogRepo[T]) FindByIDUnscoped(ctx context.Context, id uint) (*T, error) {
	item, err := r.CatalogRepository.FindByIDUnscoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Delete(new(T), id).Error; err != nil {
		return nil, err
	}
	return item, nil
}
