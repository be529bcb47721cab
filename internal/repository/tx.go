package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Users UserRepository
	Roles RoleRepository
}

// Transactor runs fn inside a database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor builds a GORM-backed Transactor.
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, Repos{
			Users: NewUserRepository(tx),
			Roles: NewRoleRepository(tx),
		})
	})
}
