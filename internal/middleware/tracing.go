package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"users-api/internal/telemetry"
)

// Tracing runs each request inside a span named after the matched route
// and counts it by route and status
func Tracing(tel *telemetry.Telemetry) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx, span := tel.StartSpan(c.Request.Context(), c.Request.Method+" "+route,
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("request_id", c.GetString(RequestIDKey)),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		var err error
		if last := c.Errors.Last(); last != nil {
			err = last.Err
		}
		telemetry.EndSpan(span, err)
		tel.RecordInvocation(ctx, route, status)
	}
}
