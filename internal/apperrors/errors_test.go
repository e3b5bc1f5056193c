package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
)

func TestVerificationErrors_MatchCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category error
	}{
		{"session not found", apperrors.ErrSessionNotFound, apperrors.ErrNotFound},
		{"item not in session", apperrors.ErrItemNotInSession, apperrors.ErrNotFound},
		{"log not found", apperrors.ErrLogNotFound, apperrors.ErrNotFound},
		{"session not active", apperrors.ErrSessionNotActive, apperrors.ErrConflict},
		{"session locked", apperrors.ErrSessionLocked, apperrors.ErrConflict},
		{"protected log", apperrors.ErrProtectedLog, apperrors.ErrConflict},
		{"already completed", apperrors.ErrAlreadyCompleted, apperrors.ErrConflict},
		{"catalog unavailable", apperrors.ErrCatalogUnavailable, apperrors.ErrDependency},
		{"concurrent update", apperrors.ErrConcurrentUpdate, apperrors.ErrConcurrency},
		{"not initiator", apperrors.ErrNotSessionInitiator, apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service layer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.err)
			assert.ErrorIs(t, wrapped, tt.category)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(500, "failed to update item", cause)

	assert.Equal(t, "failed to update item: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := apperrors.NewAppError(400, "bad token", nil)
	assert.Equal(t, "bad token", bare.Error())
}
