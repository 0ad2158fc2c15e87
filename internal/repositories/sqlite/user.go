package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"users-api/internal/models"
	"users-api/internal/repositories"
	"users-api/internal/store"
)

const backendName = "sqlite"

// UserRepository implements the UserRepository interface for SQLite
type UserRepository struct {
	db     *sqlx.DB
	schema store.Schema
	logger *logrus.Logger
}

// NewUserRepository creates a new SQLite user repository over the users table
func NewUserRepository(db *sqlx.DB, logger *logrus.Logger) *UserRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &UserRepository{
		db:     db,
		schema: store.UsersSchema("users", ""),
		logger: logger,
	}
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, bool, error) {
	query, args, err := sq.Select(r.schema.Columns()...).
		From(r.schema.TableName).
		Where(sq.Eq{r.schema.HashKey: id}).
		ToSql()
	if err != nil {
		return nil, false, repositories.NewRepositoryError("get", "user", id, err)
	}

	start := time.Now()
	user := &models.User{}
	err = r.db.GetContext(ctx, user, query, args...)
	r.logQuery("get", query, time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, repositories.NewRepositoryError("get", "user", id, err)
	}

	return user, true, nil
}

// Put writes the user, replacing any existing row with the same ID
func (r *UserRepository) Put(ctx context.Context, user *models.User) error {
	// REPLACE rewrites the whole row, so unset attributes end up NULL
	values := make(map[string]interface{})
	for name, value := range user.Attributes() {
		values[name] = value
	}

	query, args, err := sq.Insert(r.schema.TableName).
		Options("OR REPLACE").
		SetMap(values).
		ToSql()
	if err != nil {
		return repositories.NewRepositoryError("put", "user", user.ID, err)
	}

	start := time.Now()
	_, err = r.db.ExecContext(ctx, query, args...)
	r.logQuery("put", query, time.Since(start), err)

	if err != nil {
		return repositories.NewRepositoryError("put", "user", user.ID, err)
	}
	return nil
}

// Backend names the storage system behind the repository
func (r *UserRepository) Backend() string {
	return backendName
}

// Close closes the underlying database
func (r *UserRepository) Close() error {
	return r.db.Close()
}

func (r *UserRepository) logQuery(operation, query string, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.schema.TableName,
		"query":     query,
		"duration":  duration,
	}

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}
