package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesByKind(t *testing.T) {
	err := notFound("Block not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidInput)

	wrapped := fmt.Errorf("handler: %w", invalidInput("Title is required"))
	assert.ErrorIs(t, wrapped, ErrInvalidInput)
	assert.Equal(t, KindInvalidInput, KindOf(wrapped))
	assert.Equal(t, "Title is required", MessageOf(wrapped))
}

func TestStorageFailureHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := storageFailure(cause)

	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrStorageFailure.Message, MessageOf(err))
	assert.NotContains(t, MessageOf(err), "pq")
}

func TestKindOfPlainError(t *testing.T) {
	plain := errors.New("boom")
	assert.Equal(t, Kind(0), KindOf(plain))
	assert.Equal(t, ErrStorageFailure.Message, MessageOf(plain))
	assert.Equal(t, "not_found", KindNotFound.String())
}

func TestIdentity(t *testing.T) {
	assert.True(t, Identity{}.Anonymous())
	assert.ErrorIs(t, requireIdentity(Identity{}), ErrUnauthorized)
}
