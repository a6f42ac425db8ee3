package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImmutable(t *testing.T) {
	e := New(400, "INVALID_REQUEST", "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	if e.Message == "changed" {
		t.Errorf("Expected immutable error with message not equal to 'changed', got '%s'", e.Message)
	}
	if changedE.Message != "changed" {
		t.Errorf("Expected immutable error with message equal to 'changed', got '%s'", changedE.Message)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: user_itineraries.user_id")
	err := ErrCreationFailed.Msg("failed to create itinerary: %s", cause).Wrap(cause)

	assert.ErrorIs(t, err, ErrCreationFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")

	wrapped := fmt.Errorf("service: %w", err)
	got, ok := From(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeCreationFailed, got.ErrorCode)
}

func TestIsAuthorization(t *testing.T) {
	assert.True(t, IsAuthorization(ErrNotAMember))
	assert.True(t, IsAuthorization(ErrNotCreator.Msg("only the creator can delete this itinerary")))
	assert.False(t, IsAuthorization(ErrNotFound))
	assert.False(t, IsAuthorization(errors.New("boom")))
}
