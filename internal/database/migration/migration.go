package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres DB and SQL
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func MigrateFromDir(dbURL string, dir string, verbose bool, log *zap.Logger) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	dbMigrate, err := migrate.New("file://"+absPath, dbURL)
	if err != nil {
		return fmt.Errorf("failed to init migrations from %s: %w", absPath, err)
	}
	log.Info("Running database migration", zap.String("source", absPath))

	return up(dbMigrate, verbose, log)
}

func MigrateFromFS(dbURL string, migrations fs.FS, verbose bool, log *zap.Logger) error {
	source, err := iofs.New(migrations, ".")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	dbMigrate, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return fmt.Errorf("failed to init embedded migrations: %w", err)
	}
	log.Info("Running database migration", zap.String("source", "embedded"))

	return up(dbMigrate, verbose, log)
}

func up(dbMigrate *migrate.Migrate, verbose bool, log *zap.Logger) error {
	defer dbMigrate.Close()
	dbMigrate.Log = NewLogger(log, verbose)

	err := dbMigrate.Up()
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database migration: no change needed")
			return nil
		}
		log.Error("Database migration failed", zap.Error(err))
		return err
	}

	version, dirty, err := dbMigrate.Version()
	if err == nil {
		log.Info("Database migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}

	return nil
}

type Logger struct {
	logger  *zap.Logger
	verbose bool
}

func (l *Logger) Printf(format string, v ...any) {
	l.logger.Sugar().Infof("DB Migration: "+format, v...)
}

func (l *Logger) Verbose() bool {
	return l.verbose
}

func NewLogger(logger *zap.Logger, verbose bool) *Logger {
	return &Logger{
		logger:  logger,
		verbose: verbose,
	}
}
