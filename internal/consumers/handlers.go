package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"eventhorizon/internal/cache"
	"eventhorizon/internal/models"
	"eventhorizon/internal/repository"
	"eventhorizon/internal/search"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	repos        *repository.Repositories
	esClient     *search.ElasticsearchClient
	valkeyClient *cache.ValkeyClient
}

func NewHandlers(repos *repository.Repositories, esClient *search.ElasticsearchClient, valkeyClient *cache.ValkeyClient) *Handlers {
	return &Handlers{
		repos:        repos,
		esClient:     esClient,
		valkeyClient: valkeyClient,
	}
}

// HandleEventCreated re-indexes the event from the database. The API indexes
// on write already; this is the retry path for when that write failed.
func (h *Handlers) HandleEventCreated(m *stan.Msg) {
	var event models.EventCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal event created event", "error", err)
		return
	}

	slog.Info("Processing event created event", "event_id", event.EventID)

	ctx := context.Background()
	stored, err := h.repos.Events.GetByID(ctx, event.EventID)
	if err != nil {
		slog.Error("Failed to load event", "event_id", event.EventID, "error", err)
		return
	}

	if stored != nil && h.esClient != nil {
		if err := h.esClient.IndexEvent(ctx, stored); err != nil {
			slog.Error("Failed to index event", "event_id", event.EventID, "error", err)
			return
		}
	}

	h.invalidateActiveCache(ctx)

	m.Ack()
}

func (h *Handlers) HandleEventDeleted(m *stan.Msg) {
	var event models.EventDeletedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal event deleted event", "error", err)
		return
	}

	slog.Info("Processing event deleted event", "event_id", event.EventID)

	ctx := context.Background()
	if h.esClient != nil {
		if err := h.esClient.DeleteEvent(ctx, event.EventID); err != nil {
			slog.Error("Failed to remove event from index", "event_id", event.EventID, "error", err)
		}
	}

	h.invalidateActiveCache(ctx)

	m.Ack()
}

func (h *Handlers) HandleAttendeeRegistered(m *stan.Msg) {
	var event models.AttendeeRegisteredEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal attendee registered event", "error", err)
		return
	}

	slog.Info("Processing attendee registered event",
		"attendee_id", event.AttendeeID,
		"event_id", event.EventID,
		"user_id", event.UserID)

	// Confirmation emails and analytics hook in here.

	m.Ack()
}

func (h *Handlers) HandleAttendeeCancelled(m *stan.Msg) {
	var event models.AttendeeCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal attendee cancelled event", "error", err)
		return
	}

	slog.Info("Processing attendee cancelled event",
		"attendee_id", event.AttendeeID,
		"event_id", event.EventID,
		"restocked", event.Restocked)

	m.Ack()
}

func (h *Handlers) HandleAttendeeStatusChanged(m *stan.Msg) {
	var event models.AttendeeStatusChangedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal attendee status changed event", "error", err)
		return
	}

	slog.Info("Processing attendee status changed event",
		"attendee_id", event.AttendeeID,
		"from", event.From,
		"to", event.To)

	m.Ack()
}

func (h *Handlers) invalidateActiveCache(ctx context.Context) {
	if h.valkeyClient == nil {
		return
	}
	if err := h.valkeyClient.InvalidateActiveEvents(ctx); err != nil {
		slog.Warn("Failed to invalidate active events cache", "error", err)
	}
}
