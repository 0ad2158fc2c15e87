package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/models"
	"users-api/internal/repositories"
	"users-api/internal/repositories/memory"
)

// failingRepo fails every call with err
type failingRepo struct {
	err error
}

func (r *failingRepo) Get(ctx context.Context, id string) (*models.User, bool, error) {
	return nil, false, r.err
}

func (r *failingRepo) Put(ctx context.Context, user *models.User) error {
	return r.err
}

func (r *failingRepo) Backend() string { return "failing" }

func (r *failingRepo) Close() error { return nil }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestUserService_CreateThenGet(t *testing.T) {
	svc := NewUserService(memory.NewUserRepository(), quietLogger())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserRequest{
		FirstName: models.StringPtr("A"),
		LastName:  models.StringPtr("B"),
		Email:     models.StringPtr("a@b.com"),
		Address:   models.StringPtr("X"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, found, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, got)
}

func TestUserService_CreateWithEmptyRequest(t *testing.T) {
	svc := NewUserService(memory.NewUserRepository(), quietLogger())

	created, err := svc.CreateUser(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, created.FirstName)
	assert.Nil(t, created.Email)
}

func TestUserService_CreateGeneratesDistinctIDs(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := NewUserService(repo, quietLogger())

	ids := make(map[string]bool)
	for i := 0; i < 50; i++ {
		created, err := svc.CreateUser(context.Background(), &CreateUserRequest{})
		require.NoError(t, err)
		assert.False(t, ids[created.ID], "id %s generated twice", created.ID)
		ids[created.ID] = true
	}
	assert.Equal(t, 50, repo.Len())
}

func TestUserService_GetMissing(t *testing.T) {
	svc := NewUserService(memory.NewUserRepository(), quietLogger())

	got, found, err := svc.GetUser(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestUserService_GetRequiresID(t *testing.T) {
	svc := NewUserService(memory.NewUserRepository(), quietLogger())

	_, _, err := svc.GetUser(context.Background(), "")
	assert.True(t, repositories.IsValidation(err))
}

func TestUserService_RejectsInvalidGeneratedID(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := &userService{
		userRepo: repo,
		logger:   quietLogger(),
		newUser:  func() *models.User { return &models.User{ID: "not-a-uuid"} },
	}

	_, err := svc.CreateUser(context.Background(), &CreateUserRequest{})
	assert.True(t, repositories.IsValidation(err))
	assert.Zero(t, repo.Len())
}

func TestUserService_StoreFaultsPropagate(t *testing.T) {
	cause := errors.New("table unavailable")
	svc := NewUserService(&failingRepo{err: cause}, quietLogger())

	_, found, err := svc.GetUser(context.Background(), "abc")
	assert.ErrorIs(t, err, cause)
	assert.False(t, found)

	_, err = svc.CreateUser(context.Background(), &CreateUserRequest{})
	assert.ErrorIs(t, err, cause)
}

func TestNewServiceContainer(t *testing.T) {
	_, err := NewServiceContainer(nil, quietLogger())
	assert.Error(t, err)

	container, err := NewServiceContainer(memory.NewUserRepository(), quietLogger())
	require.NoError(t, err)
	assert.NotNil(t, container.UserService)
	assert.NoError(t, container.Close())
}
