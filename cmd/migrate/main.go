package main

// Run database migrations:
//   go run ./cmd/migrate
//   go run ./cmd/migrate -status

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/storage/db"
)

func main() {
	status := flag.Bool("status", false, "print migration status instead of applying")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("config error: %v", err)
		os.Exit(1)
	}
	ctx := context.Background()

	var (
		sqlDB   *sql.DB
		dialect db.Dialect
	)
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		dialect = db.DialectSQLite
		sqlDB, err = db.OpenSQLite(ctx, cfg.SQLitePath)
	case config.StorePostgres:
		dialect = db.DialectPostgres
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	default:
		log.Printf("STORE_DRIVER=%s has nothing to migrate", cfg.StoreDriver)
		return
	}
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if *status {
		err = db.MigrationStatus(ctx, sqlDB, dialect)
	} else {
		err = db.RunMigrations(ctx, sqlDB, dialect)
	}
	if err != nil {
		log.Printf("migrate: %v", err)
		os.Exit(1)
	}
}
