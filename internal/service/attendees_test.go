package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestUpdateStatusRejectsBadStatuses(t *testing.T) {
	s := NewAttendeeService(nil, nil, nil, nil)

	_, err := s.UpdateStatus(context.Background(), "some-id", "pending")
	assert.True(t, errors.Is(err, apperrors.ErrValidation), "got %v", err)

	_, err = s.UpdateStatus(context.Background(), "some-id", models.StatusRegistered)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition), "got %v", err)
}

func TestRegistrationOutcome(t *testing.T) {
	tests := []struct {
		err     error
		outcome string
	}{
		{fmt.Errorf("%w: user already registered", apperrors.ErrConflict), "duplicate"},
		{fmt.Errorf("%w: ticket sold out", apperrors.ErrCapacityExceeded), "capacity_exceeded"},
		{fmt.Errorf("%w: event x", apperrors.ErrNotFound), "not_found"},
		{errors.New("connection refused"), "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.outcome, registrationOutcome(tt.err))
	}
}
