package repositories

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepositoryError(t *testing.T) {
	cause := errors.New("boom")

	err := NewRepositoryError("get", "user", "abc", cause)
	assert.Equal(t, "user get operation failed for ID abc: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	err = NewRepositoryError("put", "user", "", cause)
	assert.Equal(t, "user put operation failed: boom", err.Error())
}

func TestErrorClassification(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	conn := ConnectionError("sqlite", cause)
	assert.True(t, IsConnection(conn))
	assert.ErrorIs(t, conn, cause)
	assert.False(t, IsThrottled(conn))

	validation := ValidationError("user", "", errors.New("id is required"))
	assert.True(t, IsValidation(validation))
	assert.Equal(t, "validation failed for user: id is required", validation.Error())

	throttled := NewRepositoryError("put", "user", "abc", errors.Join(ErrThrottled, cause))
	assert.True(t, IsThrottled(throttled))
	assert.False(t, IsAccessDenied(throttled))
}
