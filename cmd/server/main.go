package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avieira/cardbox/internal/api"
	"github.com/avieira/cardbox/internal/config"
	"github.com/avieira/cardbox/internal/db"
	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/notify"
	"github.com/avieira/cardbox/internal/services"
	"github.com/avieira/cardbox/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Cardbox Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("reset_worker_count=%d", cfg.ResetWorkerCount)
	log.Debug("reset_queue_size=%d", cfg.ResetQueueSize)
	log.Debug("due_batch_limit=%d", cfg.DueBatchLimit)
	log.Debug("webhook_url=%s", cfg.WebhookURL)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	var notifier notify.Notifier = notify.Noop{}
	if cfg.WebhookURL != "" {
		log.Info("review notifications enabled")
		notifier = notify.NewWebhookClient(cfg.WebhookURL)
	}

	resetPool := worker.NewPool(cfg.ResetWorkerCount, cfg.ResetQueueSize)

	groupService := services.NewGroupService(database)
	cardService := services.NewCardService(database)
	studyService := services.NewStudyService(database)
	reviewService := services.NewReviewService(database, notifier)
	statsService := services.NewStatsService(database)

	srv := &api.Server{
		GroupService:  groupService,
		CardService:   cardService,
		StudyService:  studyService,
		ReviewService: reviewService,
		StatsService:  statsService,
		ResetPool:     resetPool,
		DueBatchLimit: cfg.DueBatchLimit,
	}

	ctx, cancel := context.WithCancel(context.Background())
	resetPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	cancel()
	resetPool.Stop()

	log.Info("===========================================")
	log.Info("Cardbox Server Stopped")
	log.Info("===========================================")
}
