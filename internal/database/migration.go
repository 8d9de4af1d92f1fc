package database

import (
	"fmt"

	"github.com/buwaneka1/shop-mapper/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Territory{},
		&models.Lorry{},
		&models.Route{},
		&models.Shop{},
		&models.User{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
