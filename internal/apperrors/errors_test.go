package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateDB(t *testing.T) {
	fkErr := &pq.Error{Code: "23503", Detail: "still referenced by events"}
	translated := TranslateDB(fkErr)
	assert.True(t, errors.Is(translated, ErrConflict))

	uniqueErr := &pq.Error{Code: "23505", Detail: "duplicate email"}
	translated = TranslateDB(uniqueErr)
	assert.True(t, errors.Is(translated, ErrConflict))

	checkErr := &pq.Error{Code: "23514", Constraint: "tickets_quantity_check"}
	translated = TranslateDB(checkErr)
	assert.True(t, errors.Is(translated, ErrValidation))

	// Wrapped pq errors translate too
	wrapped := fmt.Errorf("insert attendee: %w", fkErr)
	assert.True(t, errors.Is(TranslateDB(wrapped), ErrConflict))

	// Unknown errors pass through untouched
	plain := errors.New("connection refused")
	assert.Equal(t, plain, TranslateDB(plain))

	assert.NoError(t, TranslateDB(nil))
}

func TestValidationError(t *testing.T) {
	err := Validation("capacity", "must be positive")
	assert.True(t, errors.Is(err, ErrValidation))

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "must be positive", vErr.Fields["capacity"])
}

func TestCodeAndHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{Validation("x", "y"), "VALIDATION_ERROR", http.StatusBadRequest},
		{fmt.Errorf("%w: event abc", ErrNotFound), "NOT_FOUND", http.StatusNotFound},
		{fmt.Errorf("%w: sold out", ErrCapacityExceeded), "CAPACITY_EXCEEDED", http.StatusConflict},
		{fmt.Errorf("%w: duplicate", ErrConflict), "CONFLICT", http.StatusConflict},
		{fmt.Errorf("%w: attended -> registered", ErrInvalidTransition), "INVALID_TRANSITION", http.StatusUnprocessableEntity},
		{ErrForbidden, "FORBIDDEN", http.StatusForbidden},
		{ErrUnauthorized, "UNAUTHORIZED", http.StatusUnauthorized},
		{errors.New("boom"), "INTERNAL", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, Code(tt.err), tt.err.Error())
		assert.Equal(t, tt.status, HTTPStatus(tt.err), tt.err.Error())
	}
}
