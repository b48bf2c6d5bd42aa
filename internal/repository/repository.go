package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

type Repository struct {
	DB            *sql.DB
	GoquDBWrapper *goqu.Database
}

func NewRepository(db *sql.DB) *Repository {
	return NewRepositoryWithDialect(db, DialectPostgres)
}

// NewRepositoryWithDialect is used by tests running against SQLite.
func NewRepositoryWithDialect(db *sql.DB, dialect string) *Repository {
	return &Repository{
		DB:            db,
		GoquDBWrapper: goqu.New(dialect, db),
	}
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(tx *goqu.TxDatabase) error) (err error) {
	tx, err := r.GoquDBWrapper.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return
}
