package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

// goose keeps its base FS and dialect in package state.
var migrateMu sync.Mutex

// RunMigrations applies embedded SQL migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB, dialect Dialect) error {
	if database == nil {
		return nil
	}
	dir, gooseDialect, err := migrationTarget(dialect)
	if err != nil {
		return err
	}

	migrateMu.Lock()
	defer migrateMu.Unlock()
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, dir)
}

// MigrationStatus logs the applied state of each migration.
func MigrationStatus(ctx context.Context, database *sql.DB, dialect Dialect) error {
	dir, gooseDialect, err := migrationTarget(dialect)
	if err != nil {
		return err
	}

	migrateMu.Lock()
	defer migrateMu.Unlock()
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	return goose.StatusContext(ctx, database, dir)
}

func migrationTarget(dialect Dialect) (string, string, error) {
	switch dialect {
	case DialectPostgres, "":
		return "migrations/postgres", "postgres", nil
	case DialectSQLite:
		return "migrations/sqlite", "sqlite3", nil
	default:
		return "", "", fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}
