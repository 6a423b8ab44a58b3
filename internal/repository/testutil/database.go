package testutil

import (
	"database/sql"
	"testing"

	"github.com/opencart-qa/storefront-e2e/internal/database"
)

// TestDatabase is an isolated, migrated in-memory store.
type TestDatabase struct {
	DB *sql.DB
}

// SetupTestDatabase opens a fresh in-memory database with the storefront
// schema. It is closed when the test ends.
func SetupTestDatabase(t testing.TB) *TestDatabase {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return &TestDatabase{DB: db}
}
