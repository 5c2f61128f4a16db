package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Validation failures are rejected before any dependency is touched, so a
// zero-value service is enough for these paths.

func TestEventServiceCreateValidation(t *testing.T) {
	s := NewEventService(nil, nil, nil, nil, nil, nil)
	now := time.Now()
	rule := "FREQ=WEEKLY"

	tests := []struct {
		name string
		req  models.CreateEventRequest
	}{
		{
			name: "end before start",
			req: models.CreateEventRequest{
				Title:     "Broken",
				StartDate: now.Add(2 * time.Hour),
				EndDate:   now.Add(time.Hour),
				VenueID:   1, CategoryID: 1,
			},
		},
		{
			name: "end equals start",
			req: models.CreateEventRequest{
				Title:     "Broken",
				StartDate: now,
				EndDate:   now,
				VenueID:   1, CategoryID: 1,
			},
		},
		{
			name: "recurring without rule",
			req: models.CreateEventRequest{
				Title:       "Broken",
				StartDate:   now,
				EndDate:     now.Add(time.Hour),
				IsRecurring: true,
				VenueID:     1, CategoryID: 1,
			},
		},
		{
			name: "rule without recurring",
			req: models.CreateEventRequest{
				Title:          "Broken",
				StartDate:      now,
				EndDate:        now.Add(time.Hour),
				RecurrenceRule: &rule,
				VenueID:        1, CategoryID: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), &tt.req)
			assert.True(t, errors.Is(err, apperrors.ErrValidation), "got %v", err)
		})
	}
}

func TestTicketValidation(t *testing.T) {
	err := validateTicket(decimal.NewFromInt(-1), 10)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	err = validateTicket(decimal.Zero, -1)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	assert.NoError(t, validateTicket(decimal.Zero, 0))
	assert.NoError(t, validateTicket(decimal.NewFromFloat(49.99), 100))
}
