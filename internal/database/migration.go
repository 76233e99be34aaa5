package database

import (
	"fmt"

	"cashflow/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the entries table, its indexes and the
// amount check constraint.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
