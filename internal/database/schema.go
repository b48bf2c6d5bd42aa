package database

import (
	"database/sql"
	"embed"
	"fmt"
	"inventory/internal/database/migration"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies the migrations from dir, or the embedded set when
// dir is empty.
func RunMigrations(dbURL, dir string, logger *zap.Logger) error {
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	if dir != "" {
		return migration.MigrateFromDir(dbURL, dir, true, logger)
	}

	source, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return migration.MigrateFromFS(dbURL, source, true, logger)
}

// ApplySchema runs every embedded up migration in order. It does not track
// versions and is meant for throwaway SQLite databases.
func ApplySchema(db *sql.DB) error {
	entries, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	sort.Strings(entries)

	for _, name := range entries {
		content, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		for _, statement := range strings.Split(string(content), ";") {
			if strings.TrimSpace(statement) == "" {
				continue
			}
			if _, err := db.Exec(statement); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", name, err)
			}
		}
	}

	return nil
}
