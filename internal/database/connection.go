package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// ConnectionConfig holds database connection configuration
type ConnectionConfig struct {
	DatabasePath    string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	Logger          *logrus.Logger
}

// DefaultConnectionConfig returns a default configuration
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		DatabasePath:    "./data/users.db",
		MaxOpenConns:    1, // SQLite works best with single connection
		ConnMaxLifetime: time.Hour,
		Logger:          logrus.New(),
	}
}

// Open opens the SQLite database at config.DatabasePath, creating the parent
// directory if needed, and applies pending migrations.
func Open(config *ConnectionConfig) (*sqlx.DB, error) {
	if config == nil {
		config = DefaultConnectionConfig()
	}

	db, err := Connect(config)
	if err != nil {
		return nil, err
	}

	if err := NewMigrationManager(db.DB, config.Logger).RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Connect opens the SQLite database without touching its schema
func Connect(config *ConnectionConfig) (*sqlx.DB, error) {
	if config == nil {
		config = DefaultConnectionConfig()
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	dbPath, err := filepath.Abs(config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen := config.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	config.Logger.WithField("db_path", dbPath).Info("Database connection established")
	return db, nil
}
