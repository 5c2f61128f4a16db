package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventhorizon/cmd/consumers/jobs"
	"eventhorizon/internal/config"
	"eventhorizon/internal/consumers"
	"eventhorizon/internal/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	logger.Get().Info("Starting consumers service...")

	// Override NATS client ID for consumers
	cfg.NATS.ClientID = "eventhorizon-consumers"

	// Create and start consumers
	consumerService, err := consumers.NewConsumerService(cfg)
	if err != nil {
		logger.Fatal("Failed to create consumer service", "error", err)
	}

	// Start consuming messages
	if err := consumerService.Start(); err != nil {
		logger.Fatal("Failed to start consumers", "error", err)
	}

	// Start the no-show sweep job on the same connections
	sweepJob := jobs.NewNoShowSweepJob(consumerService.Repos().Attendees, cfg.NoShowGrace)
	sweepJob.Start(context.Background())

	logger.Get().Info("Consumers service started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Get().Info("Shutting down consumers service...")

	sweepJob.Stop()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := consumerService.Shutdown(ctx); err != nil {
		logger.Get().Error("Error during shutdown", "error", err)
	}

	logger.Get().Info("Consumers service stopped")
}
