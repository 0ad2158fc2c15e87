package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"users-api/internal/config"
	"users-api/internal/database"
)

// Manages the schema of the local SQLite users store. The DynamoDB table
// has no schema to migrate.
func main() {
	var (
		dbPath  = flag.String("db", config.GetEnv("SQLITE_PATH", "./data/users.db"), "Database file path")
		action  = flag.String("action", "up", "Migration action: up, down, status")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absDBPath, err := filepath.Abs(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}

	logger.WithFields(logrus.Fields{
		"db_path": absDBPath,
		"action":  *action,
	}).Info("Starting migration tool")

	db, err := database.Connect(&database.ConnectionConfig{
		DatabasePath: absDBPath,
		MaxOpenConns: 1,
		Logger:       logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := run(db, *action, logger); err != nil {
		logger.WithError(err).Fatalf("Migration %s failed", *action)
	}

	logger.Info("Migration tool completed successfully")
}

func run(db *sqlx.DB, action string, logger *logrus.Logger) error {
	migrationManager := database.NewMigrationManager(db.DB, logger)

	switch action {
	case "up":
		return migrationManager.RunMigrations()
	case "down":
		return migrationManager.RollbackMigration()
	case "status":
		info, err := migrationManager.GetMigrationInfo()
		if err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
		fmt.Printf("Migration Status:\n")
		fmt.Printf("  Version: %d\n", info.Version)
		fmt.Printf("  Dirty: %t\n", info.Dirty)
		return nil
	default:
		return fmt.Errorf("unknown action %q, use: up, down, status", action)
	}
}
