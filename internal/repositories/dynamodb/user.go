package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"users-api/internal/models"
	"users-api/internal/repositories"
	"users-api/internal/store"
	"users-api/internal/telemetry"
)

const backendName = "dynamodb"

// UserRepository implements the UserRepository interface for DynamoDB
type UserRepository struct {
	table     *store.Table[models.User]
	logger    *logrus.Logger
	telemetry *telemetry.Telemetry
}

// NewUserRepository creates a new DynamoDB user repository
func NewUserRepository(client store.DynamoDBAPI, schema store.Schema, logger *logrus.Logger, tel *telemetry.Telemetry) *UserRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &UserRepository{
		table:     store.NewTable[models.User](client, schema),
		logger:    logger,
		telemetry: tel,
	}
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, bool, error) {
	ctx, span := r.startSpan(ctx, "GetItem", id)
	start := time.Now()

	user, found, err := r.table.Get(ctx, id)
	r.logCall("get", id, time.Since(start), err)
	if err != nil {
		err = r.wrapError(ctx, "get", id, err)
		telemetry.EndSpan(span, err)
		return nil, false, err
	}

	span.SetAttributes(attribute.Bool("db.item_found", found))
	telemetry.EndSpan(span, nil)
	return user, found, nil
}

// Put writes the user, replacing any existing record with the same ID
func (r *UserRepository) Put(ctx context.Context, user *models.User) error {
	ctx, span := r.startSpan(ctx, "PutItem", user.ID)
	start := time.Now()

	err := r.table.Put(ctx, user)
	r.logCall("put", user.ID, time.Since(start), err)
	if err != nil {
		err = r.wrapError(ctx, "put", user.ID, err)
	}

	telemetry.EndSpan(span, err)
	return err
}

// Backend names the storage system behind the repository
func (r *UserRepository) Backend() string {
	return backendName
}

// Close is a no-op; the SDK client holds no resources that need releasing
func (r *UserRepository) Close() error {
	return nil
}

func (r *UserRepository) startSpan(ctx context.Context, op, id string) (context.Context, trace.Span) {
	schema := r.table.Schema()
	return r.telemetry.StartSpan(ctx, "dynamodb."+op,
		attribute.String("db.system", backendName),
		attribute.String("db.operation", op),
		attribute.String("aws.dynamodb.table_names", schema.TableName),
		attribute.String("user.id", id),
	)
}

// wrapError classifies a failed call so callers can tell throttling and
// permission problems apart from other faults
func (r *UserRepository) wrapError(ctx context.Context, op, id string, err error) error {
	r.telemetry.RecordStoreError(ctx, backendName, op)

	switch {
	case store.IsThrottled(err):
		err = fmt.Errorf("%w: %w", repositories.ErrThrottled, err)
	case store.IsAccessDenied(err):
		err = fmt.Errorf("%w: %w", repositories.ErrAccessDenied, err)
	}
	return repositories.NewRepositoryError(op, "user", id, err)
}

func (r *UserRepository) logCall(op, id string, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": op,
		"table":     r.table.Schema().TableName,
		"user_id":   id,
		"duration":  duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		if code := store.ErrorCode(err); code != "" {
			fields["aws_error_code"] = code
		}
		r.logger.WithFields(fields).Error("DynamoDB call failed")
	} else {
		r.logger.WithFields(fields).Debug("DynamoDB call completed")
	}
}
