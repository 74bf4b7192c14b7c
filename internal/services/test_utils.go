package services

import (
	"os"
	"testing"

	"github.com/web3grant/Slushy/internal/database"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Set test environment variables
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_PORT", "5432")
	os.Setenv("DB_USER", "postgres")
	os.Setenv("DB_PASSWORD", "")
	os.Setenv("DB_NAME", "slushy_test")
	os.Setenv("DB_SSLMODE", "disable")

	config := database.LoadConfig()

	err := database.Connect(config)
	if err != nil {
		t.Skipf("Skipping test - PostgreSQL test database not available: %v", err)
	}

	db := database.DB

	if err := database.Migrate(); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	// Clean up any existing test data
	db.Exec("DELETE FROM referral_points")
	db.Exec("DELETE FROM projects")
	db.Exec("DELETE FROM favorite_apps")
	db.Exec("DELETE FROM social_media_links")
	db.Exec("DELETE FROM users WHERE dynamic_user_id LIKE 'test-%'")

	return db
}
