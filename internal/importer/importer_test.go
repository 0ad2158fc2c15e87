package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/models"
	"users-api/internal/repositories"
	"users-api/internal/repositories/memory"
)

const knownID = "6f1b7c7e-2d4a-4c1e-9a53-0b9f5f6f2a11"

func fastRetry() *RetryConfig {
	return &RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 1}
}

// flakyRepo throttles the first failures calls to Put
type flakyRepo struct {
	*memory.UserRepository
	failures int
	calls    int
	err      error
}

func (f *flakyRepo) Put(ctx context.Context, user *models.User) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return f.UserRepository.Put(ctx, user)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"`+knownID+`","first_name":"Ada"},{"email":"x@example.com"}]`), 0o644))

	users, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, knownID, users[0].ID)
	assert.Equal(t, "x@example.com", *users[1].Email)

	require.NoError(t, os.WriteFile(path, []byte(`{"id":1}`), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	repo := memory.NewUserRepository()
	imp := NewImporter(repo, nil, fastRetry())

	result, err := imp.Import(context.Background(), []JSONUser{
		{ID: knownID, FirstName: models.StringPtr("Ada")},
		{LastName: models.StringPtr("Hopper")},
		{ID: "not-a-uuid"},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Generated)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, repo.Len())

	user, found, err := repo.Get(context.Background(), knownID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ada", *user.FirstName)

	missing, err := imp.Verify(context.Background(), append(result.IDs, "absent"))
	require.NoError(t, err)
	assert.Equal(t, []string{"absent"}, missing)
}

func TestImport_DryRun(t *testing.T) {
	repo := memory.NewUserRepository()
	result, err := NewImporter(repo, nil, fastRetry()).Import(context.Background(), []JSONUser{{ID: knownID}, {ID: knownID}}, true)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	assert.Len(t, result.IDs, 2)
	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, 0, repo.Len())
}

func TestImport_RetriesThrottledWrites(t *testing.T) {
	repo := &flakyRepo{
		UserRepository: memory.NewUserRepository(),
		failures:       2,
		err:            repositories.NewRepositoryError("put", "user", knownID, repositories.ErrThrottled),
	}

	result, err := NewImporter(repo, nil, fastRetry()).Import(context.Background(), []JSONUser{{ID: knownID}}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, repo.calls)
}

func TestImport_DoesNotRetryPermanentErrors(t *testing.T) {
	repo := &flakyRepo{
		UserRepository: memory.NewUserRepository(),
		failures:       1,
		err:            repositories.NewRepositoryError("put", "user", knownID, repositories.ErrAccessDenied),
	}

	result, err := NewImporter(repo, nil, fastRetry()).Import(context.Background(), []JSONUser{{ID: knownID}}, false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 1, repo.calls)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithRetry(ctx, fastRetry(), func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, called)
}

func TestCalculateDelay(t *testing.T) {
	cfg := &RetryConfig{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, BackoffFactor: 2}

	assert.Equal(t, 100*time.Millisecond, cfg.calculateDelay(1))
	assert.Equal(t, 400*time.Millisecond, cfg.calculateDelay(3))
	assert.Equal(t, time.Second, cfg.calculateDelay(10))
}
