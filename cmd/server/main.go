package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"krua/internal/config"
	"krua/internal/infrastructure/logger"
	"krua/internal/infrastructure/mysql"
	"krua/internal/jobs"
	"krua/internal/ledger"
	"krua/internal/order"
	"krua/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	notifier := ledger.NewNotifier(cfg.Ledger.WebhookURL, cfg.Ledger.QueueSize, zapLogger)
	defer notifier.Close()

	orderModule := order.NewModule(db, cfg, notifier, zapLogger)

	summaryJob := jobs.NewSummaryJob(orderModule.Summary, notifier, cfg.Summary.CronSpec, zapLogger)
	if err := summaryJob.Start(); err != nil {
		zapLogger.Fatal("starting summary job", zap.Error(err))
	}
	defer summaryJob.Stop()

	router := server.NewRouter(orderModule.Controller, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
