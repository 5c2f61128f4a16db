package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AttendeeStatus
		to      AttendeeStatus
		allowed bool
	}{
		{StatusRegistered, StatusConfirmed, true},
		{StatusRegistered, StatusCancelled, true},
		{StatusRegistered, StatusNoShow, true},
		{StatusRegistered, StatusAttended, false},
		{StatusConfirmed, StatusAttended, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusRegistered, false},
		{StatusAttended, StatusCancelled, false},
		{StatusCancelled, StatusRegistered, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusAttended, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusRegistered.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusAttended.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusNoShow.Terminal())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusRegistered.Valid())
	assert.True(t, StatusNoShow.Valid())
	assert.False(t, AttendeeStatus("pending").Valid())
	assert.False(t, AttendeeStatus("").Valid())
}
