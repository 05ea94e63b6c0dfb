package database

import (
	"fmt"

	"github.com/Lewin99/BuddyGet/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Budget{},
		&models.BudgetItem{},
		&models.Goal{},
		&models.Transaction{},
		&models.UserAccount{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
