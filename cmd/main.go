package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/app/registry"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/app/server"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/app/worker"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/config"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/services"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/platform/logger"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/platform/telemetry"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/plugins/postgres"
	redisPlugin "github.com/IlyaPlyusnin57/social-media-socket/internal/plugins/redis"
	"github.com/IlyaPlyusnin57/social-media-socket/internal/plugins/webhook"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Config
	cfg := config.Load()

	// Logger
	log := logger.NewLogger(*cfg)
	log.Info("starting application")

	otelShutdown, err := telemetry.InitTelemetry(ctx, *cfg)
	if err != nil {
		log.Error("failed to initialize telemetry", "err", err)
	}
	defer func() {
		log.Info("flushing telemetry...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			log.Error("telemetry shutdown failed", "err", err)
		}
	}()

	// Infra
	var pdb *sql.DB
	if pdb, err = postgres.New(ctx, *cfg.Postgres); err != nil {
		log.Error("postgres connection failed", "DSN", cfg.Postgres.DSN)
		return
	}
	log.Info("postgres connected")
	var rdb *redis.Client
	if rdb, err = redisPlugin.NewRedisClient(ctx, *cfg.Redis); err != nil {
		log.Error("redis connection failed", "url", cfg.Redis.URL)
		return
	}
	log.Info("redis connected")

	// Adapters
	profileRepo := postgres.NewProfileRepository(pdb)
	dirStore := redisPlugin.NewRedisDirectoryStore(rdb)
	eventQueue := redisPlugin.NewRedisEventQueue(rdb, cfg.Worker.Stream)
	webhookClient := webhook.NewClient(*cfg.Webhook)

	// Core Services
	hub := registry.NewRegistry()
	directory := services.NewPresenceDirectory(log, dirStore, hub)
	fallbackPub := services.NewFallbackPublisher(log, eventQueue)
	router := services.NewEventRouter(log, directory, hub, profileRepo, fallbackPub)

	wrkr := worker.NewNotificationWorker(log, eventQueue, webhookClient, cfg.Worker.Group)
	if err := wrkr.Run(ctx); err != nil {
		log.Error("notification worker failed to start", "err", err)
		return
	}

	// Server
	srv := server.NewServer(log, cfg.Service.Name, "8080", directory, router, hub)
	if err := srv.Start(); err != nil {
		log.Error("server stopped", "err", err)
	}
}
