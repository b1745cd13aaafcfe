// Package sqlite_test contains integration tests for the SQLite adapters.
//
// Every test opens its database through db.Open so the bookkeeping schema
// under test is the one the binary creates.
package sqlite_test

import (
	"database/sql"
	"testing"

	"github.com/example/bestiary/internal/db"
)

// setupTestDB creates an in-memory session database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.Open(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}
