package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"ms-showcase/internal/database/migrations"
	"ms-showcase/internal/logger"
)

// Migrate brings the schema up to date: versioned migrations on postgres,
// idempotent CREATE TABLE IF NOT EXISTS everywhere else.
func Migrate(ctx context.Context, db *bun.DB, dsn string, log *logger.Logger) error {
	if db.Dialect().Name() != dialect.PG {
		if err := CreateTables(ctx, db); err != nil {
			return err
		}
		log.Info("DATABASE", "Tables ensured")
		return nil
	}

	runner := migrations.NewRunner(dsn)
	defer runner.Close()

	if err := runner.MigrateUp(); err != nil {
		return err
	}
	version, _, err := runner.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	log.Info("DATABASE", fmt.Sprintf("Current schema version: %d", version))
	return nil
}

// Drop removes the schema Migrate created. On postgres the migrations are
// rolled back so the version table stays in step.
func Drop(ctx context.Context, db *bun.DB, dsn string, log *logger.Logger) error {
	if db.Dialect().Name() != dialect.PG {
		if err := DropTables(ctx, db); err != nil {
			return err
		}
		log.Info("DATABASE", "Tables dropped")
		return nil
	}

	runner := migrations.NewRunner(dsn)
	defer runner.Close()

	if err := runner.MigrateDown(); err != nil {
		return err
	}
	log.Info("DATABASE", "Migrations rolled back")
	return nil
}
