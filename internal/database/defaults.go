package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// Setup prepares the database at path for use: it creates the parent
// directory, applies the embedded migrations and opens a handle. It is
// idempotent and safe to run on every startup.
func Setup(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := RunEmbeddedMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}
