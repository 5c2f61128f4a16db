package service

import (
	"context"
	"fmt"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/middleware"
	"eventhorizon/internal/models"
	"eventhorizon/internal/repository"

	"github.com/shopspring/decimal"
)

type TicketService struct {
	ticketRepo *repository.TicketRepository
	eventRepo  *repository.EventRepository
}

func NewTicketService(ticketRepo *repository.TicketRepository, eventRepo *repository.EventRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		eventRepo:  eventRepo,
	}
}

func validateTicket(price decimal.Decimal, quantity int) error {
	if price.IsNegative() {
		return apperrors.Validation("price", "must not be negative")
	}
	if quantity < 0 {
		return apperrors.Validation("quantity", "must not be negative")
	}
	return nil
}

// Create adds a ticket type to an event. Only the event's organizer or an
// admin may manage its tickets.
func (s *TicketService) Create(ctx context.Context, req *models.CreateTicketRequest) (*models.Ticket, error) {
	if err := validateTicket(req.Price, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.authorizeEvent(ctx, req.EventID); err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		EventID:  req.EventID,
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, apperrors.TranslateDB(err)
	}

	return ticket, nil
}

func (s *TicketService) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", apperrors.ErrNotFound, id)
	}
	return ticket, nil
}

func (s *TicketService) List(ctx context.Context) ([]models.Ticket, error) {
	return s.ticketRepo.List(ctx)
}

func (s *TicketService) ListByEvent(ctx context.Context, eventID string) ([]models.Ticket, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", apperrors.ErrNotFound, eventID)
	}

	return s.ticketRepo.ListByEvent(ctx, eventID)
}

func (s *TicketService) Update(ctx context.Context, id string, req *models.UpdateTicketRequest) (*models.Ticket, error) {
	if err := validateTicket(req.Price, req.Quantity); err != nil {
		return nil, err
	}

	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEvent(ctx, ticket.EventID); err != nil {
		return nil, err
	}

	ticket.Name = req.Name
	ticket.Price = req.Price
	ticket.Quantity = req.Quantity

	updated, err := s.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return nil, apperrors.TranslateDB(err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: ticket %s", apperrors.ErrNotFound, id)
	}

	return ticket, nil
}

// Delete removes a ticket type. Attendees who held it keep their registration
// with the ticket reference cleared (SET NULL).
func (s *TicketService) Delete(ctx context.Context, id string) error {
	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeEvent(ctx, ticket.EventID); err != nil {
		return err
	}

	deleted, err := s.ticketRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.TranslateDB(err)
	}
	if !deleted {
		return fmt.Errorf("%w: ticket %s", apperrors.ErrNotFound, id)
	}

	return nil
}

func (s *TicketService) authorizeEvent(ctx context.Context, eventID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return fmt.Errorf("%w: event %s", apperrors.ErrNotFound, eventID)
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: no authenticated user", apperrors.ErrUnauthorized)
	}
	if userID != event.OrganizerID && !middleware.HasRole(ctx, models.RoleAdmin) {
		return fmt.Errorf("%w: not the organizer", apperrors.ErrForbidden)
	}

	return nil
}
