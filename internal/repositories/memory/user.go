package memory

import (
	"context"
	"sync"

	"users-api/internal/models"
)

// UserRepository keeps users in process memory. It backs tests and the
// local server when no remote table is configured.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]models.User),
	}
}

// Get retrieves a copy of the user stored under id
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, false, nil
	}
	return cloneUser(&user), true, nil
}

// Put stores a copy of user, replacing any user with the same ID
func (r *UserRepository) Put(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = *cloneUser(user)
	return nil
}

// Len returns the number of stored users
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// Backend names the storage system behind the repository
func (r *UserRepository) Backend() string {
	return "memory"
}

// Close is a no-op
func (r *UserRepository) Close() error {
	return nil
}

func cloneUser(u *models.User) *models.User {
	clone := models.User{ID: u.ID}
	clone.Email = cloneString(u.Email)
	clone.FirstName = cloneString(u.FirstName)
	clone.LastName = cloneString(u.LastName)
	clone.Address = cloneString(u.Address)
	return &clone
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
