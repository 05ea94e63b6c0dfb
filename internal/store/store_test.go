package store

import (
	"path/filepath"
	"testing"

	"github.com/Lewin99/BuddyGet/internal/config"
	"github.com/Lewin99/BuddyGet/internal/database"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// setupTestDB opens a migrated SQLite database in a per-test directory.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "store_test.db"),
	})
	if err != nil {
		t.Fatalf("Init test database failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// amount is satisfied by decimal.Decimal and models.Money.
type amount interface {
	Equal(decimal.Decimal) bool
	String() string
}

func assertDecimal(t *testing.T, what string, got amount, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", what, got.String(), want)
	}
}
