// Package db opens the workspace database that backs an editing session.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens (creating if needed) the session database at path and
// initializes the history schema.
func Open(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across calls.
	database.SetMaxOpenConns(1)

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// Reset removes the session database file so the next Open starts empty.
func Reset(path string) error {
	if path == MemoryPath {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove database: %w", err)
	}
	return nil
}
