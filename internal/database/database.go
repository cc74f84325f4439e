package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"ms-showcase/internal/config"
	"ms-showcase/internal/logger"
	"ms-showcase/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Open returns a bun handle for the configured driver without pinging it.
func Open(cfg config.DatabaseConfig) (*bun.DB, error) {
	var (
		sqldb *sql.DB
		db    *bun.DB
		err   error
	)

	switch cfg.Driver {
	case DriverPostgres:
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	case DriverMySQL:
		sqldb, err = sql.Open("mysql", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		db = bun.NewDB(sqldb, mysqldialect.New())
	case DriverSQLite, "":
		sqldb, err = sql.Open(sqliteshim.ShimName, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// one connection keeps in-memory databases alive and serializes writers
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	if cfg.Driver != DriverSQLite && cfg.Driver != "" {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
		sqldb.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db, nil
}

// Connect opens the database and pings it, retrying a few times while the
// server comes up.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*bun.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to %s (attempt %d/%d)", cfg.Driver, i+1, maxRetries))
		if err = db.PingContext(ctx); err == nil {
			break
		}
		log.Error("DATABASE", fmt.Sprintf("Failed to connect to %s: %v", cfg.Driver, err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s after %d attempts: %w", cfg.Driver, maxRetries, err)
	}

	if db.Dialect().Name() == dialect.SQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}

	log.Info("DATABASE", fmt.Sprintf("✅ %s connection successful", cfg.Driver))
	return db, nil
}

// NewInMemory returns an isolated in-memory SQLite database with every table
// created. Each call gets its own database.
func NewInMemory(ctx context.Context) (*bun.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := Open(config.DatabaseConfig{Driver: DriverSQLite, DSN: dsn})
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := CreateTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func tableModels() []interface{} {
	return []interface{}{
		(*models.Venue)(nil),
		(*models.Artist)(nil),
		(*models.Category)(nil),
		(*models.Question)(nil),
	}
}

// CreateTables creates every table that does not exist yet. It is used for
// sqlite and mysql; postgres goes through the versioned migrations.
func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, m := range tableModels() {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", m, err)
		}
	}

	_, err := db.NewCreateTable().
		Model((*models.Show)(nil)).
		IfNotExists().
		ForeignKey("(artist_id) REFERENCES artists (id) ON DELETE CASCADE").
		ForeignKey("(venue_id) REFERENCES venues (id) ON DELETE CASCADE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create table for shows: %w", err)
	}
	return nil
}

// DropTables drops every table in reverse dependency order.
func DropTables(ctx context.Context, db *bun.DB) error {
	all := append([]interface{}{(*models.Show)(nil)}, tableModels()...)
	for _, m := range all {
		if _, err := db.NewDropTable().Model(m).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("drop table for %T: %w", m, err)
		}
	}
	return nil
}
