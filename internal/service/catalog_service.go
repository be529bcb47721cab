package service

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"shopadmin/internal/cache"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/logging"
	"shopadmin/internal/model"
	"shopadmin/internal/repository"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogService implements list/get/create/update/delete for one catalog
// entity. Single-item reads go through the cache.
type CatalogService[T any, P model.CatalogEntity[T]] struct {
	name   string
	repo   repository.CatalogRepository[T]
	cache  cache.Store
	now    func() time.Time
	logger *log.Logger
}

// NewCatalogService builds a catalog service. name prefixes cache keys and log lines.
func NewCatalogService[T any, P model.CatalogEntity[T]](name string, repo repository.CatalogRepository[T], store cache.Store) *CatalogService[T, P] {
	if store == nil {
		store = (*cache.Client)(nil)
	}
	return &CatalogService[T, P]{
		name:   name,
		repo:   repo,
		cache:  store,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logging.New(name),
	}
}

func (s *CatalogService[T, P]) cacheKey(id uint) string {
	return fmt.Sprintf("%s:%d", s.name, id)
}

// List returns every live entity.
func (s *CatalogService[T, P]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	return items, nil
}

// Get returns a live entity or ErrNotFound.
func (s *CatalogService[T, P]) Get(ctx context.Context, id uint) (*T, error) {
	var cached T
	if cache.GetJSON(ctx, s.cache, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, s.cache, s.cacheKey(id), item, catalogCacheTTL)
	return item, nil
}

// Create stores item as a new entity. Any client-supplied id or lifecycle
// markers are discarded and the store assigns the id.
func (s *CatalogService[T, P]) Create(ctx context.Context, item *T) (*T, error) {
	P(item).PrepareCreate(s.now())
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.name, err)
	}
	s.logger.Infoj(log.JSON{"msg": "created", "id": P(item).EntityID()})
	return item, nil
}

// Update copies the editable fields of body onto entity id.
func (s *CatalogService[T, P]) Update(ctx context.Context, id uint, body *T) error {
	if P(body).EntityID() != id {
		return apperrors.ErrIDMismatch
	}

	current, err := s.repo.FindByIDUnscoped(ctx, id)
	if err != nil {
		return err
	}
	if P(current).IsDeleted() {
		return apperrors.ErrEntityDeleted
	}

	P(current).ApplyUpdate(body, s.now())
	if err := s.repo.Update(ctx, current); err != nil {
		if apperrors.IsDomain(err) {
			s.logger.Warnj(log.JSON{"msg": "concurrent update", "id": id})
			_ = s.cache.Delete(ctx, s.cacheKey(id))
			return err
		}
		return fmt.Errorf("update %s %d: %w", s.name, id, err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// Delete soft-deletes entity id.
func (s *CatalogService[T, P]) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if apperrors.IsDomain(err) {
			return err
		}
		return fmt.Errorf("delete %s %d: %w", s.name, id, err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	s.logger.Infoj(log.JSON{"msg": "deleted", "id": id})
	return nil
}
