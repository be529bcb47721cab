package model

import (
	"time"

	"gorm.io/gorm"
)

// CatalogEntity is the constraint satisfied by pointers to catalog models.
// It lets the catalog repository, service and handler be written once.
type CatalogEntity[T any] interface {
	*T
	EntityID() uint
	PrepareCreate(now time.Time)
	ApplyUpdate(src *T, now time.Time)
	IsDeleted() bool
}

// Lifecycle carries the timestamps shared by catalog models.
type Lifecycle struct {
	CreatedAt  time.Time      `json:"created_at"`
	ModifiedAt *time.Time     `json:"modified_at" gorm:"column:modified_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"column:deleted_at;index" swaggertype:"string"`
}

// IsDeleted reports whether the row carries a soft-delete marker.
func (l *Lifecycle) IsDeleted() bool {
	return l.DeletedAt.Valid
}

func (l *Lifecycle) reset(now time.Time) {
	l.CreatedAt = now
	l.ModifiedAt = nil
	l.DeletedAt = gorm.DeletedAt{}
}

func (l *Lifecycle) touch(now time.Time) {
	l.ModifiedAt = &now
}
