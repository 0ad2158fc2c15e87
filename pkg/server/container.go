package server

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"users-api/internal/config"
	"users-api/internal/database"
	"users-api/internal/repositories"
	"users-api/internal/repositories/dynamodb"
	"users-api/internal/repositories/memory"
	"users-api/internal/repositories/sqlite"
	"users-api/internal/services"
	"users-api/internal/store"
	"users-api/internal/telemetry"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logrus.Logger
	Telemetry   *telemetry.Telemetry
	UserService services.UserService

	// Internal dependencies
	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWithLogger(context.Background(), cfg, config.NewLogger(cfg.Log))
}

// NewContainerWithLogger creates a container that logs through logger
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = config.NewLogger(cfg.Log)
	}

	tel := telemetry.New(cfg.Telemetry)

	userRepo, err := NewUserRepository(ctx, cfg, logger, tel)
	if err != nil {
		return nil, err
	}

	serviceContainer, err := services.NewServiceContainer(userRepo, logger)
	if err != nil {
		_ = userRepo.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"backend":     userRepo.Backend(),
		"environment": cfg.Environment,
	}).Info("Container initialized")

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Telemetry:   tel,
		UserService: serviceContainer.UserService,
		services:    serviceContainer,
	}, nil
}

// NewUserRepository builds the user repository for the configured backend
func NewUserRepository(ctx context.Context, cfg *config.Config, logger *logrus.Logger, tel *telemetry.Telemetry) (repositories.UserRepository, error) {
	switch cfg.Store.Backend {
	case config.BackendDynamoDB:
		awsCfg, err := store.LoadAWSConfig(ctx, cfg.Store.Table.Region)
		if err != nil {
			return nil, repositories.ConnectionError(config.BackendDynamoDB, err)
		}
		client := store.NewDynamoDBClient(awsCfg, cfg.Store.Table.Endpoint)
		schema := store.UsersSchema(cfg.Store.Table.Name, cfg.Store.Table.Region)
		return dynamodb.NewUserRepository(client, schema, logger, tel), nil

	case config.BackendSQLite:
		db, err := database.Open(&database.ConnectionConfig{
			DatabasePath:    cfg.Store.SQLite.Path,
			MaxOpenConns:    cfg.Store.SQLite.MaxOpenConns,
			ConnMaxLifetime: time.Hour,
			Logger:          logger,
		})
		if err != nil {
			return nil, repositories.ConnectionError(config.BackendSQLite, err)
		}
		return sqlite.NewUserRepository(db, logger), nil

	case config.BackendMemory:
		return memory.NewUserRepository(), nil

	default:
		return nil, fmt.Errorf("%w: store backend %q", repositories.ErrUnsupported, cfg.Store.Backend)
	}
}

// Backend reports the store backend in use
func (c *Container) Backend() string {
	return c.Config.Store.Backend
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.services != nil {
		if err := c.services.Close(); err != nil {
			return fmt.Errorf("failed to close services: %w", err)
		}
	}
	return nil
}
