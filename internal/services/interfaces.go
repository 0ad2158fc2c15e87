package services

import (
	"context"

	"users-api/internal/models"
)

// UserService defines the user operations exposed over HTTP
type UserService interface {
	// GetUser performs a point read. found is false when no user has the ID.
	GetUser(ctx context.Context, id string) (user *models.User, found bool, err error)

	// CreateUser stores a new user under a freshly generated ID
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error)
}

// CreateUserRequest is the body of a create user call. Every field is
// optional; absent fields are stored as absent.
type CreateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
}

// CreateUserResponse is returned after a user has been stored
type CreateUserResponse struct {
	ID string `json:"id"`
}

// GetUserResponse wraps a found user
type GetUserResponse struct {
	Data *models.User `json:"data"`
}
