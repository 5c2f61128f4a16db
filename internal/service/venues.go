package service

import (
	"context"
	"fmt"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/models"
	"eventhorizon/internal/repository"
)

type VenueService struct {
	venueRepo *repository.VenueRepository
}

func NewVenueService(venueRepo *repository.VenueRepository) *VenueService {
	return &VenueService{venueRepo: venueRepo}
}

func (s *VenueService) Create(ctx context.Context, req *models.CreateVenueRequest) (*models.Venue, error) {
	if req.Capacity < 0 {
		return nil, apperrors.Validation("capacity", "must not be negative")
	}

	venue := &models.Venue{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Capacity:    req.Capacity,
	}

	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, apperrors.TranslateDB(err)
	}

	return venue, nil
}

func (s *VenueService) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	if venue == nil {
		return nil, fmt.Errorf("%w: venue %d", apperrors.ErrNotFound, id)
	}
	return venue, nil
}

func (s *VenueService) List(ctx context.Context) ([]models.Venue, error) {
	return s.venueRepo.List(ctx)
}

func (s *VenueService) Update(ctx context.Context, id int, req *models.CreateVenueRequest) (*models.Venue, error) {
	if req.Capacity < 0 {
		return nil, apperrors.Validation("capacity", "must not be negative")
	}

	venue := &models.Venue{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Capacity:    req.Capacity,
	}

	updated, err := s.venueRepo.Update(ctx, venue)
	if err != nil {
		return nil, apperrors.TranslateDB(err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: venue %d", apperrors.ErrNotFound, id)
	}

	return venue, nil
}

// Delete refuses to remove a venue that still hosts events; the RESTRICT
// foreign key surfaces as a conflict.
func (s *VenueService) Delete(ctx context.Context, id int) error {
	deleted, err := s.venueRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.TranslateDB(err)
	}
	if !deleted {
		return fmt.Errorf("%w: venue %d", apperrors.ErrNotFound, id)
	}
	return nil
}
