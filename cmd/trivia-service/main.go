package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ms-showcase/internal/config"
	"ms-showcase/internal/database"
	"ms-showcase/internal/kafka"
	"ms-showcase/internal/logger"
	triviadb "ms-showcase/internal/trivia/db"
	"ms-showcase/internal/trivia/service"
	"ms-showcase/internal/trivia/trivia_api"
	"ms-showcase/internal/utils"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logger.NewLogger(cfg.Log.Dir, "trivia")
	defer logger.Close()

	logger.Info("APP", "Starting Trivia Service initialization")
	if dotenv {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	} else {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	}

	ctx := context.Background()

	bunDB, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, bunDB, cfg.Database.DSN, logger); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
		}
	}

	events := kafka.NewPublisher(ctx, cfg.Kafka.Enabled, cfg.Kafka.Brokers, cfg.Kafka.Topics.Trivia, logger)
	defer events.Close()

	triviaService := service.NewTriviaService(&triviadb.DB{Bun: bunDB}, events, logger, cfg.Trivia.QuestionsPerPage)
	handler := trivia_api.NewHandler(triviaService, logger)

	logger.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware)
	r.Use(recoverJSON(logger))
	r.Use(middleware.Heartbeat("/ping"))
	handler.Routes(r)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 Trivia Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "✅ Trivia Service shutdown complete")
	}
}

// recoverJSON turns a handler panic into the 500 error body.
func recoverJSON(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("TRIVIA", fmt.Sprintf("panic serving %s %s: %v", r.Method, r.URL.Path, rec))
					utils.WriteError(w, http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
