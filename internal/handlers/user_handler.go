package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"users-api/internal/middleware"
	"users-api/internal/services"
	"users-api/pkg/lambda"
)

// UserHandler handles user-related HTTP requests for both the gin server
// and the Lambda router
type UserHandler struct {
	userService services.UserService
	logger      *logrus.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService, logger *logrus.Logger) *UserHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// @Summary Get a user
// @Description Fetch a single user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} services.GetUserResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	ctx := WithLogEntry(c.Request.Context(), h.ginEntry(c))

	status, body, err := h.getUser(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(status, body)
}

// @Summary Create a user
// @Description Store a new user under a generated ID. Every field is optional.
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.CreateUserRequest false "User data"
// @Success 200 {object} services.CreateUserResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := WithLogEntry(c.Request.Context(), h.ginEntry(c))

	raw, err := c.GetRawData()
	if err != nil {
		_ = c.Error(fmt.Errorf("failed to read request body: %w", err))
		return
	}

	status, body, err := h.createUser(ctx, raw)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(status, body)
}

// HandleGet serves GET /users/{id} under the Lambda router
func (h *UserHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	status, body, err := h.getUser(ctx, req.PathParam("id"))
	if err != nil {
		return nil, err
	}
	return lambda.JSON(status, body)
}

// HandleCreate serves POST /users under the Lambda router
func (h *UserHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	status, body, err := h.createUser(ctx, req.Body)
	if err != nil {
		return nil, err
	}
	return lambda.JSON(status, body)
}

func (h *UserHandler) getUser(ctx context.Context, id string) (int, interface{}, error) {
	h.log(ctx).WithField("user_id", id).Infof("get user %s", id)

	user, found, err := h.userService.GetUser(ctx, id)
	if err != nil {
		return 0, nil, err
	}
	if !found {
		return http.StatusNotFound, userNotFound(id), nil
	}

	return http.StatusOK, services.GetUserResponse{Data: user}, nil
}

func (h *UserHandler) createUser(ctx context.Context, raw []byte) (int, interface{}, error) {
	req, err := decodeCreateUserRequest(raw)
	if err != nil {
		return 0, nil, err
	}

	user, err := h.userService.CreateUser(ctx, req)
	if err != nil {
		return 0, nil, err
	}

	h.log(ctx).WithField("user_id", user.ID).Info("user saved.")

	return http.StatusOK, services.CreateUserResponse{ID: user.ID}, nil
}

// decodeCreateUserRequest parses a create body. An empty body is an
// empty request; anything that is not a JSON object is a fault.
func decodeCreateUserRequest(raw []byte) (*services.CreateUserRequest, error) {
	req := &services.CreateUserRequest{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return req, nil
	}
	if trimmed[0] != '{' {
		return nil, errors.New("invalid create user body: not a JSON object")
	}
	if err := json.Unmarshal(trimmed, req); err != nil {
		return nil, fmt.Errorf("invalid create user body: %w", err)
	}
	return req, nil
}

func (h *UserHandler) ginEntry(c *gin.Context) *logrus.Entry {
	return h.logger.WithContext(c.Request.Context()).WithFields(logrus.Fields{
		"request_id":     c.GetString(middleware.RequestIDKey),
		"correlation_id": c.GetString(middleware.CorrelationIDKey),
	})
}
