package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// Seed account created on first start.
const (
	SeedUsername = "admin"
	SeedPassword = "pass1234"
)

const schemaUsers = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY,
    username TEXT,
    password TEXT
);
`

var insertSeedUserSQL = `INSERT INTO users (username, password) VALUES (?, ?)`

// Bootstrap creates the users table and the seed account when no file exists
// at path. An existing file is left untouched, whatever it contains.
// It reports whether the store was created.
func Bootstrap(path string) (bool, error) {
	exists, err := fileExists(path)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return false, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	err = seed(db)
	_ = db.Close()
	if err != nil {
		// a half-created file would be taken as an existing store next start
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return false, errors.Join(err, fmt.Errorf("remove %q: %w", path, rmErr))
		}
		return false, err
	}
	return true, nil
}

// Open opens the shared store handle used by every request for the life of
// the process. The store must already exist (see Bootstrap).
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// one handle, no pool
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %q: %w", path, err)
}

func seed(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin bootstrap transaction: %w", err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(schemaUsers); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := tx.Exec(insertSeedUserSQL, SeedUsername, SeedPassword); err != nil {
		return fmt.Errorf("insert seed user %q: %w", SeedUsername, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bootstrap transaction: %w", err)
	}
	return nil
}
