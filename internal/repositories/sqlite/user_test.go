package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"users-api/internal/database"
	"users-api/internal/models"
)

func setupTestRepository(t *testing.T) *UserRepository {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := database.Open(&database.ConnectionConfig{
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
		Logger:       logger,
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	repo := NewUserRepository(db, logger)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestUserRepository_PutThenGet(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	user := models.NewUser()
	user.FirstName = models.StringPtr("A")
	user.LastName = models.StringPtr("B")
	user.Email = models.StringPtr("a@b.com")
	user.Address = models.StringPtr("X")

	if err := repo.Put(ctx, user); err != nil {
		t.Fatalf("Failed to put user: %v", err)
	}

	got, found, err := repo.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if !found {
		t.Fatal("Expected user to be found")
	}
	if got.ID != user.ID {
		t.Errorf("Expected ID %s, got %s", user.ID, got.ID)
	}
	if got.FirstName == nil || *got.FirstName != "A" {
		t.Errorf("Expected first name A, got %v", got.FirstName)
	}
	if got.Address == nil || *got.Address != "X" {
		t.Errorf("Expected address X, got %v", got.Address)
	}
}

func TestUserRepository_GetNotFound(t *testing.T) {
	repo := setupTestRepository(t)

	got, found, err := repo.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Expected no error for missing user, got %v", err)
	}
	if found || got != nil {
		t.Errorf("Expected not found, got %+v", got)
	}
}

func TestUserRepository_PutReplaces(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	user := &models.User{ID: models.NewUser().ID, Email: models.StringPtr("first@example.com")}
	if err := repo.Put(ctx, user); err != nil {
		t.Fatalf("Failed to put user: %v", err)
	}

	replacement := &models.User{ID: user.ID, FirstName: models.StringPtr("Second")}
	if err := repo.Put(ctx, replacement); err != nil {
		t.Fatalf("Failed to replace user: %v", err)
	}

	got, found, err := repo.Get(ctx, user.ID)
	if err != nil || !found {
		t.Fatalf("Expected replaced user, found=%v err=%v", found, err)
	}
	if got.Email != nil {
		t.Errorf("Expected email to be cleared by replacement, got %s", *got.Email)
	}
	if got.FirstName == nil || *got.FirstName != "Second" {
		t.Errorf("Expected first name Second, got %v", got.FirstName)
	}
}
