package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shopadmin/internal/model"
)

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.Role{},
		&model.User{},
		&model.UserRole{},
		&model.ProductCategory{},
		&model.ProductDiscount{},
		&model.ProductInventory{},
	}
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table. Used when RESET_DB=true.
func Reset(db *gorm.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}

// SeedRoles makes sure the default roles exist with their expected ids.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	for _, def := range model.DefaultRoles {
		var role model.Role
		err := db.WithContext(ctx).
			Where(model.Role{Name: def.Name}).
			Attrs(model.Role{ID: def.ID}).
			FirstOrCreate(&role).Error
		if err != nil {
			return fmt.Errorf("seed role %s: %w", def.Name, err)
		}
	}
	return nil
}
