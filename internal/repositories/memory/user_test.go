package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/models"
)

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	user := &models.User{ID: "u1", Email: models.StringPtr("a@b.com")}
	require.NoError(t, repo.Put(ctx, user))

	// Mutating the caller's copy must not leak into the store
	*user.Email = "changed@b.com"

	got, found, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "a@b.com", *got.Email)

	require.NoError(t, repo.Put(ctx, &models.User{ID: "u1"}))
	got, _, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got.Email)
	assert.Equal(t, 1, repo.Len())
}

func TestUserRepository_CanceledContext(t *testing.T) {
	repo := NewUserRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Put(ctx, &models.User{ID: "u1"}), context.Canceled)
}
