package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// NewSQLiteConnection opens a SQLite database with foreign keys enforced.
// In-memory databases are bound to one connection so every query sees the
// same data.
func NewSQLiteConnection(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewTestDatabase returns an in-memory SQLite database with the schema
// applied.
func NewTestDatabase() (*sql.DB, error) {
	db, err := NewSQLiteConnection(":memory:")
	if err != nil {
		return nil, err
	}

	if err := ApplySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
