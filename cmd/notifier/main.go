package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skybook/internal/config"
	"skybook/internal/logger"
	"skybook/internal/notify"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Get()

	log.Info("Starting notifier service...")

	// A dedicated client ID keeps the notifier's durable subscriptions apart
	// from the API's connection.
	cfg.NATS.ClientID = "skybook-notifier"

	service, err := notify.NewService(cfg)
	if err != nil {
		logger.Fatal("Failed to create notifier service", "error", err)
	}

	if err := service.Start(); err != nil {
		logger.Fatal("Failed to start notifier", "error", err)
	}

	log.Info("Notifier service started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down notifier service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := service.Shutdown(ctx); err != nil {
		log.Error("Error during shutdown", "error", err)
	}

	log.Info("Notifier service stopped")
}
