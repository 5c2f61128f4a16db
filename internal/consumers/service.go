package consumers

import (
	"context"
	"log/slog"

	"eventhorizon/internal/cache"
	"eventhorizon/internal/config"
	"eventhorizon/internal/database"
	"eventhorizon/internal/messaging"
	"eventhorizon/internal/models"
	"eventhorizon/internal/repository"
	"eventhorizon/internal/search"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	// Connect to NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	// Search and cache are optional here as well
	esClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		slog.Warn("Elasticsearch unavailable, index sync disabled", "error", err)
		esClient = nil
	}

	valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
	if err != nil {
		slog.Warn("Valkey unavailable, cache invalidation disabled", "error", err)
		valkeyClient = nil
	}

	// Create repositories
	repos := repository.NewRepositories(db)

	// Create handlers
	handlers := NewHandlers(repos, esClient, valkeyClient)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	// Subscribe to event lifecycle events
	_, err := cs.nats.SubscribeQueue(models.EventEventCreated, "consumers", cs.handlers.HandleEventCreated)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.EventEventDeleted, "consumers", cs.handlers.HandleEventDeleted)
	if err != nil {
		return err
	}

	// Subscribe to attendee events
	_, err = cs.nats.SubscribeQueue(models.EventAttendeeRegistered, "consumers", cs.handlers.HandleAttendeeRegistered)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.EventAttendeeCancelled, "consumers", cs.handlers.HandleAttendeeCancelled)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.EventAttendeeStatusChanged, "consumers", cs.handlers.HandleAttendeeStatusChanged)
	if err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

// Repos exposes the repositories for background jobs sharing this connection.
func (cs *ConsumerService) Repos() *repository.Repositories {
	return cs.repos
}

// NATS exposes the messaging client for background jobs.
func (cs *ConsumerService) NATS() *messaging.NATSClient {
	return cs.nats
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
