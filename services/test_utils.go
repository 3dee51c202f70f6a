package services

import (
	"testing"

	"github.com/UncoreDigital/secure-place-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupSQLiteTestDB creates an in-memory SQLite database for testing
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to SQLite test database: %v", err)
	}

	// Auto-migrate all models
	err = db.AutoMigrate(
		&models.Firm{},
		&models.Profile{},
		&models.UserProfile{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	CleanupTestData(t, db)

	return db
}

// CleanupTestData removes all test data from the database.
// Exported for use in handler tests.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	if err := db.Exec("DELETE FROM user_profiles").Error; err != nil {
		t.Logf("Warning: failed to cleanup user_profiles: %v", err)
	}
	if err := db.Exec("DELETE FROM profiles").Error; err != nil {
		t.Logf("Warning: failed to cleanup profiles: %v", err)
	}
	if err := db.Exec("DELETE FROM firms").Error; err != nil {
		t.Logf("Warning: failed to cleanup firms: %v", err)
	}
}
