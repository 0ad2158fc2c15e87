package repositories

import (
	"context"

	"users-api/internal/models"
)

// UserRepository is the gateway to the users table. Records are keyed by
// their ID only.
type UserRepository interface {
	// Get performs a point read. found is false, with a nil error, when no
	// record is stored under id.
	Get(ctx context.Context, id string) (user *models.User, found bool, err error)

	// Put writes the whole record, replacing any record stored under the
	// same ID.
	Put(ctx context.Context, user *models.User) error

	// Backend names the storage system behind the repository
	Backend() string

	// Close releases resources held by the repository
	Close() error
}
