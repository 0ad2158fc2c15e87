package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"users-api/internal/models"
	"users-api/internal/repositories"
)

// userService implements the UserService interface
type userService struct {
	userRepo repositories.UserRepository
	logger   *logrus.Logger
	newUser  func() *models.User
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.UserRepository, logger *logrus.Logger) UserService {
	if logger == nil {
		logger = logrus.New()
	}
	return &userService{
		userRepo: userRepo,
		logger:   logger,
		newUser:  models.NewUser,
	}
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, bool, error) {
	if err := models.ValidateRequired(id, "id"); err != nil {
		return nil, false, repositories.ValidationError("user", id, err)
	}

	user, found, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	return user, found, nil
}

// CreateUser creates a new user. The write is unconditional: a generated
// ID that already exists would be overwritten.
func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if req == nil {
		req = &CreateUserRequest{}
	}

	user := s.newUser()
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.Address = req.Address

	if err := user.Validate(); err != nil {
		return nil, repositories.ValidationError("user", user.ID, err)
	}

	if err := s.userRepo.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"backend": s.userRepo.Backend(),
	}).Debug("User stored")

	return user, nil
}
