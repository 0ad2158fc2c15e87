// Package importer seeds a user store from a JSON export. Records keep the
// IDs they were exported with, so re-running an import overwrites rather
// than duplicates.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"users-api/internal/models"
	"users-api/internal/repositories"
)

// JSONUser represents the JSON structure of an exported user
type JSONUser struct {
	ID        string  `json:"id,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// ImportResult contains the results of an import
type ImportResult struct {
	Processed int
	Imported  int
	Generated int
	Errors    []string
	Warnings  []string
	IDs       []string
}

// Importer writes exported users into a repository
type Importer struct {
	repo   repositories.UserRepository
	logger *logrus.Logger
	retry  *RetryConfig
}

// NewImporter creates a new importer
func NewImporter(repo repositories.UserRepository, logger *logrus.Logger, retry *RetryConfig) *Importer {
	if logger == nil {
		logger = logrus.New()
	}
	if retry == nil {
		retry = DefaultRetryConfig()
	}
	return &Importer{
		repo:   repo,
		logger: logger,
		retry:  retry,
	}
}

// LoadFile reads a JSON array of users
func LoadFile(path string) ([]JSONUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var users []JSONUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return users, nil
}

// Import writes every record to the repository. Records without an ID get
// a generated one; records with an invalid ID are reported and skipped.
// With dryRun set nothing is written.
func (i *Importer) Import(ctx context.Context, records []JSONUser, dryRun bool) (*ImportResult, error) {
	result := &ImportResult{
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}

	seen := make(map[string]int, len(records))
	for n, record := range records {
		result.Processed++

		user, generated := toUser(record)
		if err := user.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", n, err))
			continue
		}
		if generated {
			result.Generated++
		}
		if prev, dup := seen[user.ID]; dup {
			result.Warnings = append(result.Warnings, fmt.Sprintf("record %d: id %s repeats record %d and overwrites it", n, user.ID, prev))
		}
		seen[user.ID] = n

		if dryRun {
			result.IDs = append(result.IDs, user.ID)
			continue
		}

		err := WithRetry(ctx, i.retry, func(ctx context.Context) error {
			return i.repo.Put(ctx, user)
		})
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", n, err))
			continue
		}

		result.Imported++
		result.IDs = append(result.IDs, user.ID)
	}

	i.logger.WithFields(logrus.Fields{
		"processed": result.Processed,
		"imported":  result.Imported,
		"generated": result.Generated,
		"errors":    len(result.Errors),
		"backend":   i.repo.Backend(),
		"dry_run":   dryRun,
	}).Info("User import completed")

	return result, nil
}

// Verify reads every id back and reports the ones the store does not have
func (i *Importer) Verify(ctx context.Context, ids []string) ([]string, error) {
	missing := make([]string, 0)
	for _, id := range ids {
		_, found, err := i.repo.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to verify user %s: %w", id, err)
		}
		if !found {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func toUser(record JSONUser) (*models.User, bool) {
	user := &models.User{
		ID:        record.ID,
		Email:     record.Email,
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Address:   record.Address,
	}
	if user.ID != "" {
		return user, false
	}
	user.ID = models.NewUser().ID
	return user, true
}
