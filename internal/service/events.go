package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/cache"
	"eventhorizon/internal/logger"
	"eventhorizon/internal/messaging"
	"eventhorizon/internal/middleware"
	"eventhorizon/internal/models"
	"eventhorizon/internal/repository"
	"eventhorizon/internal/search"
)

type EventService struct {
	eventRepo    *repository.EventRepository
	venueRepo    *repository.VenueRepository
	categoryRepo *repository.CategoryRepository
	esClient     *search.ElasticsearchClient
	valkeyClient *cache.ValkeyClient
	natsClient   *messaging.NATSClient
}

func NewEventService(
	eventRepo *repository.EventRepository,
	venueRepo *repository.VenueRepository,
	categoryRepo *repository.CategoryRepository,
	esClient *search.ElasticsearchClient,
	valkeyClient *cache.ValkeyClient,
	natsClient *messaging.NATSClient,
) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		venueRepo:    venueRepo,
		categoryRepo: categoryRepo,
		esClient:     esClient,
		valkeyClient: valkeyClient,
		natsClient:   natsClient,
	}
}

func (s *EventService) validate(req *models.CreateEventRequest) error {
	if !req.EndDate.After(req.StartDate) {
		return apperrors.Validation("end_date", "must be after start_date")
	}
	if req.IsRecurring && (req.RecurrenceRule == nil || *req.RecurrenceRule == "") {
		return apperrors.Validation("recurrence_rule", "required for recurring events")
	}
	if !req.IsRecurring && req.RecurrenceRule != nil {
		return apperrors.Validation("recurrence_rule", "only allowed for recurring events")
	}
	return nil
}

func (s *EventService) checkRefs(ctx context.Context, venueID, categoryID int) error {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return fmt.Errorf("failed to get venue: %w", err)
	}
	if venue == nil {
		return fmt.Errorf("%w: venue %d", apperrors.ErrNotFound, venueID)
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return fmt.Errorf("%w: category %d", apperrors.ErrNotFound, categoryID)
	}

	return nil
}

// Create stores a new event owned by the authenticated user, indexes it for
// search and announces it. Search and messaging failures are logged, never
// returned: the database row is the source of truth.
func (s *EventService) Create(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, req.VenueID, req.CategoryID); err != nil {
		return nil, err
	}

	organizerID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: no authenticated user", apperrors.ErrUnauthorized)
	}

	event := &models.Event{
		Title:          req.Title,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsRecurring:    req.IsRecurring,
		RecurrenceRule: req.RecurrenceRule,
		VenueID:        req.VenueID,
		CategoryID:     req.CategoryID,
		OrganizerID:    organizerID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, apperrors.TranslateDB(err)
	}

	if s.esClient != nil {
		if err := s.esClient.IndexEvent(ctx, event); err != nil {
			logger.WithContext(ctx).Error("Failed to index event",
				"error", err,
				"event_id", event.ID)
		}
	}

	s.invalidateActiveCache(ctx)

	eventData := models.EventCreatedEvent{
		EventID:     event.ID,
		Title:       event.Title,
		OrganizerID: event.OrganizerID,
		Timestamp:   time.Now(),
	}
	if err := s.natsClient.Publish(models.EventEventCreated, eventData); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event created event",
			"error", err,
			"event_id", event.ID,
			"event_type", models.EventEventCreated)
	}

	return event, nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", apperrors.ErrNotFound, id)
	}
	return event, nil
}

// List serves filtered queries from Elasticsearch when a text query is given,
// falling back to the database if search is unavailable.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	if filter.Query != "" && s.esClient != nil {
		events, err := s.esClient.Search(ctx, filter)
		if err == nil {
			return events, nil
		}
		logger.WithContext(ctx).Warn("Search unavailable, falling back to database",
			"error", err)
	}

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// ListActive returns events that have not ended yet, served from the Valkey
// cache when warm.
func (s *EventService) ListActive(ctx context.Context) ([]models.Event, error) {
	if s.valkeyClient != nil {
		if raw, err := s.valkeyClient.GetActiveEventsRaw(ctx); err == nil {
			var events []models.Event
			if err := json.Unmarshal(raw, &events); err == nil {
				return events, nil
			}
		}
	}

	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active events: %w", err)
	}

	if s.valkeyClient != nil {
		if err := s.valkeyClient.SetActiveEvents(ctx, events); err != nil {
			logger.WithContext(ctx).Warn("Failed to cache active events", "error", err)
		}
	}

	return events, nil
}

// Update modifies an event. Only the organizer or an admin may do so.
func (s *EventService) Update(ctx context.Context, id string, req *models.CreateEventRequest) (*models.Event, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(ctx, event); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, req.VenueID, req.CategoryID); err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.Description = req.Description
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.IsRecurring = req.IsRecurring
	event.RecurrenceRule = req.RecurrenceRule
	event.VenueID = req.VenueID
	event.CategoryID = req.CategoryID

	updated, err := s.eventRepo.Update(ctx, event)
	if err != nil {
		return nil, apperrors.TranslateDB(err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: event %s", apperrors.ErrNotFound, id)
	}

	if s.esClient != nil {
		if err := s.esClient.UpdateEvent(ctx, event); err != nil {
			logger.WithContext(ctx).Error("Failed to reindex event",
				"error", err,
				"event_id", event.ID)
		}
	}

	s.invalidateActiveCache(ctx)

	return event, nil
}

// Delete removes an event along with its tickets and attendees (cascade).
// Only the organizer or an admin may do so.
func (s *EventService) Delete(ctx context.Context, id string) error {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, event); err != nil {
		return err
	}

	deleted, err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.TranslateDB(err)
	}
	if !deleted {
		return fmt.Errorf("%w: event %s", apperrors.ErrNotFound, id)
	}

	if s.esClient != nil {
		if err := s.esClient.DeleteEvent(ctx, id); err != nil {
			logger.WithContext(ctx).Error("Failed to remove event from index",
				"error", err,
				"event_id", id)
		}
	}

	s.invalidateActiveCache(ctx)

	eventData := models.EventDeletedEvent{
		EventID:   id,
		Timestamp: time.Now(),
	}
	if err := s.natsClient.Publish(models.EventEventDeleted, eventData); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event deleted event",
			"error", err,
			"event_id", id,
			"event_type", models.EventEventDeleted)
	}

	return nil
}

func (s *EventService) authorizeOwner(ctx context.Context, event *models.Event) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: no authenticated user", apperrors.ErrUnauthorized)
	}
	if userID != event.OrganizerID && !middleware.HasRole(ctx, models.RoleAdmin) {
		return fmt.Errorf("%w: not the organizer", apperrors.ErrForbidden)
	}
	return nil
}

func (s *EventService) invalidateActiveCache(ctx context.Context) {
	if s.valkeyClient == nil {
		return
	}
	if err := s.valkeyClient.InvalidateActiveEvents(ctx); err != nil {
		logger.WithContext(ctx).Warn("Failed to invalidate active events cache", "error", err)
	}
}
