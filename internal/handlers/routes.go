package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"users-api/internal/config"
	"users-api/internal/middleware"
	"users-api/internal/services"
	"users-api/internal/telemetry"
	"users-api/pkg/lambda"
)

// maxBodySize caps create request bodies at API Gateway's payload limit
const maxBodySize = 10 * 1024 * 1024

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	UserService services.UserService
	Logger      *logrus.Logger
	Telemetry   *telemetry.Telemetry
	RateLimit   config.RateLimitConfig
	ServiceName string
}

// SetupRoutes configures all API routes on a gin engine
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	userHandler := NewUserHandler(cfg.UserService, cfg.Logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.ServiceName,
		})
	})

	users := router.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, routeNotFound)
	})
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(gin.Recovery())

	// Request ID and correlation ID
	router.Use(middleware.RequestID())
	router.Use(middleware.CorrelationID())

	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(maxBodySize))
	router.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	router.Use(middleware.StructuredLogger(cfg.Logger))
	router.Use(middleware.Tracing(cfg.Telemetry))

	// Faults attached by handlers become 500s
	router.Use(middleware.ErrorHandler(cfg.Logger))
}

// NewRouter builds a gin engine with middleware and routes installed
func NewRouter(cfg *RouterConfig) *gin.Engine {
	router := gin.New()
	// Match on the escaped path so an id may carry an encoded slash.
	router.UseRawPath = true
	router.UnescapePathValues = true
	SetupMiddleware(router, cfg)
	SetupRoutes(router, cfg)
	return router
}

// NewLambdaRouter builds the route table served by the Lambda function
func NewLambdaRouter(cfg *RouterConfig) *lambda.Router {
	userHandler := NewUserHandler(cfg.UserService, cfg.Logger)

	router := lambda.NewRouter()
	router.GET("/users/{id}", userHandler.HandleGet)
	router.POST("/users", userHandler.HandleCreate)
	return router
}
