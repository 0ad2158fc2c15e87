package database

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestOpenRunsMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "users.db")

	db, err := Open(&ConnectionConfig{DatabasePath: dbPath, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		t.Fatalf("users table missing after migrations: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty users table, got %d rows", count)
	}

	info, err := NewMigrationManager(db.DB, quietLogger()).GetMigrationInfo()
	if err != nil {
		t.Fatalf("Failed to get migration info: %v", err)
	}
	if info.Version != 1 {
		t.Errorf("Expected migration version 1, got %d", info.Version)
	}
	if info.Dirty {
		t.Error("Expected clean migration state")
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "users.db")

	db, err := Open(&ConnectionConfig{DatabasePath: dbPath, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := NewMigrationManager(db.DB, quietLogger()).RunMigrations(); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
}

func TestRollbackMigration(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "users.db")

	db, err := Open(&ConnectionConfig{DatabasePath: dbPath, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	manager := NewMigrationManager(db.DB, quietLogger())
	if err := manager.RollbackMigration(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err == nil {
		t.Error("Expected users table to be dropped after rollback")
	}

	// Nothing left to roll back
	if err := manager.RollbackMigration(); err != nil {
		t.Fatalf("Second rollback failed: %v", err)
	}
}

func TestConnectSkipsMigrations(t *testing.T) {
	db, err := Connect(&ConnectionConfig{DatabasePath: filepath.Join(t.TempDir(), "users.db"), Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	info, err := NewMigrationManager(db.DB, quietLogger()).GetMigrationInfo()
	if err != nil {
		t.Fatalf("Failed to get migration info: %v", err)
	}
	if info.Version != 0 {
		t.Errorf("Expected no applied migrations, got version %d", info.Version)
	}
}
