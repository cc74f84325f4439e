package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ms-showcase/internal/config"
	"ms-showcase/internal/database"
	"ms-showcase/internal/logger"
)

func main() {
	drop := flag.Bool("drop", false, "drop every table before migrating")
	seed := flag.Bool("seed", false, "insert sample venues, artists, shows and trivia questions")
	flag.Parse()

	cfg, _, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logger.NewLogger(cfg.Log.Dir, "migrate")
	defer logger.Close()

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("DATABASE", err.Error())
	}
	defer db.Close()

	if *drop {
		logger.Info("DATABASE", "Dropping tables...")
		if err := database.Drop(ctx, db, cfg.Database.DSN, logger); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("❌ %v", err))
		}
	}

	logger.Info("DATABASE", "Migrating schema...")
	if err := database.Migrate(ctx, db, cfg.Database.DSN, logger); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("❌ %v", err))
	}

	if *seed {
		logger.Info("DATABASE", "Seeding sample data...")
		if err := database.Seed(ctx, db, time.Now()); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("❌ %v", err))
		}
	}

	logger.Info("DATABASE", "✅ Done.")
}
