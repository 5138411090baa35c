package testutil

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// SetupTestDB creates a connection to the test database and ensures the
// schema exists. The connection string comes from TEST_DATABASE_URL so CI
// and local runs can point at different instances.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		connStr = "host=localhost port=5432 user=clinitrack password=clinitrack dbname=clinitrack_test sslmode=disable"
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS patients (
			id UUID PRIMARY KEY,
			seq BIGSERIAL,
			name TEXT NOT NULL,
			age INTEGER NOT NULL CHECK (age >= 0),
			gender TEXT NOT NULL,
			address TEXT,
			contact_number TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tests (
			id UUID PRIMARY KEY,
			seq BIGSERIAL,
			patient_id UUID NOT NULL REFERENCES patients(id),
			test_type TEXT NOT NULL,
			test_date VARCHAR(10) NOT NULL,
			result TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create test schema: %v", err)
		}
	}

	return db
}

// CleanupTestDB removes all rows written by a test
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec("TRUNCATE tests, patients"); err != nil {
		t.Logf("Warning: failed to truncate test tables: %v", err)
	}
}
