package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"users-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	UserService UserService

	userRepo repositories.UserRepository
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(userRepo repositories.UserRepository, logger *logrus.Logger) (*ServiceContainer, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository cannot be nil")
	}

	return &ServiceContainer{
		UserService: NewUserService(userRepo, logger),
		userRepo:    userRepo,
	}, nil
}

// Close releases the repositories held by the services
func (c *ServiceContainer) Close() error {
	if c.userRepo != nil {
		return c.userRepo.Close()
	}
	return nil
}
