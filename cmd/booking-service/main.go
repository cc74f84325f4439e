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

	"ms-showcase/internal/booking/booking_api"
	bookingdb "ms-showcase/internal/booking/db"
	"ms-showcase/internal/booking/service"
	"ms-showcase/internal/config"
	"ms-showcase/internal/database"
	"ms-showcase/internal/flash"
	"ms-showcase/internal/kafka"
	"ms-showcase/internal/logger"
	"ms-showcase/internal/qrcode"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logger.NewLogger(cfg.Log.Dir, "booking")
	defer logger.Close()

	logger.Info("APP", "Starting Booking Service initialization")
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

	var store flash.Store = flash.CookieStore{}
	if cfg.Redis.Enabled {
		redisClient, err := flash.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("REDIS", "Falling back to cookie flash messages")
		} else {
			defer redisClient.Close()
			store = flash.NewRedisStore(redisClient, cfg.Redis.FlashTTL)
		}
	}

	events := kafka.NewPublisher(ctx, cfg.Kafka.Enabled, cfg.Kafka.Brokers, cfg.Kafka.Topics.Listings, logger)
	defer events.Close()

	bookingService := service.NewBookingService(&bookingdb.DB{Bun: bunDB}, events, logger)
	handler, err := booking_api.NewHandler(bookingService, store, qrcode.NewGenerator(cfg.Server.BaseURL), logger)
	if err != nil {
		logger.Fatal("HTTP", fmt.Sprintf("Failed to load templates: %v", err))
	}

	logger.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware)
	r.Use(handler.Recoverer)
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
		logger.Info("HTTP", fmt.Sprintf("🚀 Booking Service running on %s", cfg.Server.Port))
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
		logger.Info("HTTP", "✅ Booking Service shutdown complete")
	}
}
