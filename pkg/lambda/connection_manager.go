package lambda

import (
	"sync"
	"sync/atomic"

	"users-api/internal/config"
	"users-api/pkg/server"
)

// ConnectionManager owns the service container of a Lambda execution
// environment. The container is built once, on first use, and reused by
// every later invocation.
type ConnectionManager struct {
	container *server.Container
	initErr   error
	initOnce  sync.Once
	invoked   atomic.Bool
	load      func() (*server.Container, error)
}

// NewConnectionManager creates a manager that builds its container with load
func NewConnectionManager(load func() (*server.Container, error)) *ConnectionManager {
	return &ConnectionManager{load: load}
}

// NewDefaultConnectionManager creates a manager that builds its container
// from the environment configuration
func NewDefaultConnectionManager() *ConnectionManager {
	return NewConnectionManager(func() (*server.Container, error) {
		cfg, err := config.GetOptimizedConfig()
		if err != nil {
			return nil, err
		}
		return server.NewContainer(cfg)
	})
}

// GetContainer returns the service container, initializing it if necessary.
// A failed initialization is remembered and returned on every call.
func (cm *ConnectionManager) GetContainer() (*server.Container, error) {
	cm.initOnce.Do(func() {
		cm.container, cm.initErr = cm.load()
	})
	return cm.container, cm.initErr
}

// ColdStart reports true for the first invocation of the execution
// environment and false afterwards
func (cm *ConnectionManager) ColdStart() bool {
	return cm.invoked.CompareAndSwap(false, true)
}

// Cleanup releases the container's resources
func (cm *ConnectionManager) Cleanup() error {
	if cm.container != nil {
		return cm.container.Close()
	}
	return nil
}
