package service

import (
	"context"
	"errors"
	"testing"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestVenueCapacityValidation(t *testing.T) {
	s := NewVenueService(nil)

	// Negative capacity is rejected before the store is touched. Zero is a
	// legal venue that simply admits nobody.
	_, err := s.Create(context.Background(), &models.CreateVenueRequest{
		Name:     "Hall",
		Address:  "1 Main Street",
		Capacity: -1,
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = s.Update(context.Background(), 1, &models.CreateVenueRequest{
		Name:     "Hall",
		Address:  "1 Main Street",
		Capacity: -5,
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}
