package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"eventhorizon/internal/config"
	"eventhorizon/internal/database"
	"eventhorizon/internal/logger"
	"eventhorizon/internal/repository"
	"eventhorizon/internal/search"
)

func main() {
	var failFast bool
	flag.BoolVar(&failFast, "fail-fast", false, "Stop on the first indexing error")
	flag.Parse()

	logger.Init("info", "text")
	slog.Info("Starting event index synchronization")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	slog.Info("Connecting to database")
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Elasticsearch
	esClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		slog.Error("Failed to connect to Elasticsearch", "error", err)
		os.Exit(1)
	}

	eventRepo := repository.NewEventRepository(db)

	if err := syncEvents(context.Background(), eventRepo, esClient, failFast); err != nil {
		slog.Error("Event synchronization failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Event synchronization completed successfully")
}

// syncEvents pushes every event row into the search index.
func syncEvents(ctx context.Context, eventRepo *repository.EventRepository, esClient *search.ElasticsearchClient, failFast bool) error {
	start := time.Now()

	events, err := eventRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	slog.Info("Indexing events", "count", len(events))

	indexed := 0
	for i := range events {
		if err := esClient.IndexEvent(ctx, &events[i]); err != nil {
			if failFast {
				return fmt.Errorf("failed to index event %s: %w", events[i].ID, err)
			}
			slog.Error("Failed to index event", "event_id", events[i].ID, "error", err)
			continue
		}
		indexed++
	}

	slog.Info("Indexing finished",
		"indexed", indexed,
		"failed", len(events)-indexed,
		"elapsed", time.Since(start).String())

	return nil
}
