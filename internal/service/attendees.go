package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/logger"
	"eventhorizon/internal/messaging"
	"eventhorizon/internal/metrics"
	"eventhorizon/internal/middleware"
	"eventhorizon/internal/models"
	"eventhorizon/internal/repository"
)

type AttendeeService struct {
	attendeeRepo *repository.AttendeeRepository
	eventRepo    *repository.EventRepository
	ticketRepo   *repository.TicketRepository
	natsClient   *messaging.NATSClient
}

func NewAttendeeService(
	attendeeRepo *repository.AttendeeRepository,
	eventRepo *repository.EventRepository,
	ticketRepo *repository.TicketRepository,
	natsClient *messaging.NATSClient,
) *AttendeeService {
	return &AttendeeService{
		attendeeRepo: attendeeRepo,
		eventRepo:    eventRepo,
		ticketRepo:   ticketRepo,
		natsClient:   natsClient,
	}
}

// Register books a place on an event for a user, optionally taking one unit
// of a ticket type's inventory. Users register themselves; admins may
// register anyone.
func (s *AttendeeService) Register(ctx context.Context, req *models.RegisterAttendeeRequest) (*models.Attendee, error) {
	if err := s.authorizeSelf(ctx, req.UserID); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", apperrors.ErrNotFound, req.EventID)
	}
	if event.HasEnded(time.Now()) {
		return nil, apperrors.Validation("event_id", "event has already ended")
	}

	attendee, err := s.attendeeRepo.Register(ctx, req.EventID, req.UserID, req.TicketID)
	if err != nil {
		metrics.TrackRegistration(registrationOutcome(err))
		return nil, err
	}

	metrics.TrackRegistration("success")
	if attendee.TicketID != nil {
		metrics.TrackTicketReserved()
	}

	eventData := models.AttendeeRegisteredEvent{
		AttendeeID: attendee.ID,
		EventID:    attendee.EventID,
		UserID:     attendee.UserID,
		TicketID:   attendee.TicketID,
		Timestamp:  time.Now(),
	}
	if err := s.natsClient.Publish(models.EventAttendeeRegistered, eventData); err != nil {
		logger.WithContext(ctx).Error("Failed to publish attendee registered event",
			"error", err,
			"attendee_id", attendee.ID,
			"event_type", models.EventAttendeeRegistered)
	}

	return attendee, nil
}

func registrationOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrConflict):
		return "duplicate"
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// UpdateStatus applies a lifecycle transition. Attendees manage their own
// confirmed and cancelled states; attended and no_show are marked by the
// event organizer or an admin.
func (s *AttendeeService) UpdateStatus(ctx context.Context, id string, status models.AttendeeStatus) (*models.Attendee, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("status", "unknown status")
	}
	if status == models.StatusRegistered {
		return nil, fmt.Errorf("%w: cannot transition back to registered", apperrors.ErrInvalidTransition)
	}

	attendee, err := s.attendeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendee: %w", err)
	}
	if attendee == nil {
		return nil, fmt.Errorf("%w: attendee %s", apperrors.ErrNotFound, id)
	}

	switch status {
	case models.StatusAttended, models.StatusNoShow:
		if err := s.authorizeOrganizer(ctx, attendee.EventID); err != nil {
			return nil, err
		}
	default:
		if err := s.authorizeSelf(ctx, attendee.UserID); err != nil {
			return nil, err
		}
	}

	from := attendee.Status
	attendee, restocked, err := s.attendeeRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	metrics.TrackStatusTransition(string(status))
	if restocked {
		metrics.TrackTicketRestocked()
	}

	s.publishStatusChange(ctx, attendee, from, restocked)

	return attendee, nil
}

// Cancel is the self-service path for dropping a registration.
func (s *AttendeeService) Cancel(ctx context.Context, id string) (*models.Attendee, error) {
	return s.UpdateStatus(ctx, id, models.StatusCancelled)
}

func (s *AttendeeService) publishStatusChange(ctx context.Context, attendee *models.Attendee, from models.AttendeeStatus, restocked bool) {
	if attendee.Status == models.StatusCancelled {
		eventData := models.AttendeeCancelledEvent{
			AttendeeID: attendee.ID,
			EventID:    attendee.EventID,
			UserID:     attendee.UserID,
			Restocked:  restocked,
			Timestamp:  time.Now(),
		}
		if err := s.natsClient.Publish(models.EventAttendeeCancelled, eventData); err != nil {
			logger.WithContext(ctx).Error("Failed to publish attendee cancelled event",
				"error", err,
				"attendee_id", attendee.ID,
				"event_type", models.EventAttendeeCancelled)
		}
		return
	}

	eventData := models.AttendeeStatusChangedEvent{
		AttendeeID: attendee.ID,
		EventID:    attendee.EventID,
		From:       from,
		To:         attendee.Status,
		Timestamp:  time.Now(),
	}
	if err := s.natsClient.Publish(models.EventAttendeeStatusChanged, eventData); err != nil {
		logger.WithContext(ctx).Error("Failed to publish attendee status changed event",
			"error", err,
			"attendee_id", attendee.ID,
			"event_type", models.EventAttendeeStatusChanged)
	}
}

func (s *AttendeeService) GetByID(ctx context.Context, id string) (*models.Attendee, error) {
	attendee, err := s.attendeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendee: %w", err)
	}
	if attendee == nil {
		return nil, fmt.Errorf("%w: attendee %s", apperrors.ErrNotFound, id)
	}

	if err := s.authorizeSelf(ctx, attendee.UserID); err != nil {
		// The organizer of the event may also look up its attendees.
		if orgErr := s.authorizeOrganizer(ctx, attendee.EventID); orgErr != nil {
			return nil, err
		}
	}

	return attendee, nil
}

// ListByUser returns a user's registrations. Self or admin only.
func (s *AttendeeService) ListByUser(ctx context.Context, userID string) ([]models.Attendee, error) {
	if err := s.authorizeSelf(ctx, userID); err != nil {
		return nil, err
	}
	return s.attendeeRepo.ListByUser(ctx, userID)
}

// ListByEvent returns an event's attendee list. Organizer or admin only.
func (s *AttendeeService) ListByEvent(ctx context.Context, eventID string) ([]models.Attendee, error) {
	if err := s.authorizeOrganizer(ctx, eventID); err != nil {
		return nil, err
	}
	return s.attendeeRepo.ListByEvent(ctx, eventID)
}

// Stats returns registration counts and revenue for an event. Organizer or
// admin only.
func (s *AttendeeService) Stats(ctx context.Context, eventID string) (*models.AttendeeStatsResponse, error) {
	if err := s.authorizeOrganizer(ctx, eventID); err != nil {
		return nil, err
	}
	return s.attendeeRepo.Stats(ctx, eventID)
}

// SweepNoShows moves stale registrations of long-finished events to no_show.
// Called by the background job, not by request handlers.
func (s *AttendeeService) SweepNoShows(ctx context.Context, grace time.Duration) (int64, error) {
	cutoff := time.Now().Add(-grace)
	moved, err := s.attendeeRepo.MarkNoShows(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to mark no-shows: %w", err)
	}

	if moved > 0 {
		logger.Get().Info("Marked stale registrations as no-show",
			"count", moved,
			"cutoff", cutoff)
	}

	return moved, nil
}

func (s *AttendeeService) authorizeSelf(ctx context.Context, userID string) error {
	actor, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: no authenticated user", apperrors.ErrUnauthorized)
	}
	if actor != userID && !middleware.HasRole(ctx, models.RoleAdmin) {
		return fmt.Errorf("%w: not your registration", apperrors.ErrForbidden)
	}
	return nil
}

func (s *AttendeeService) authorizeOrganizer(ctx context.Context, eventID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return fmt.Errorf("%w: event %s", apperrors.ErrNotFound, eventID)
	}

	actor, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: no authenticated user", apperrors.ErrUnauthorized)
	}
	if actor != event.OrganizerID && !middleware.HasRole(ctx, models.RoleAdmin) {
		return fmt.Errorf("%w: not the organizer", apperrors.ErrForbidden)
	}
	return nil
}
