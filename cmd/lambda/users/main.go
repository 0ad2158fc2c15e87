package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"users-api/internal/handlers"
	"users-api/internal/telemetry"
	"users-api/pkg/lambda"
	"users-api/pkg/server"
)

// app serves API Gateway REST proxy events from a warm container
type app struct {
	container *server.Container
	router    *lambda.Router
	coldStart func() bool
}

func newApp(container *server.Container, coldStart func() bool) *app {
	router := handlers.NewLambdaRouter(&handlers.RouterConfig{
		UserService: container.UserService,
		Logger:      container.Logger,
		Telemetry:   container.Telemetry,
	})
	container.Logger.WithField("routes", router.Routes()).Debug("Lambda routes registered")

	return &app{
		container: container,
		router:    router,
		coldStart: coldStart,
	}
}

func (a *app) handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	cold := a.coldStart()

	fields := logrus.Fields{
		"correlation_id": event.RequestContext.RequestID,
		"function_name":  lambdacontext.FunctionName,
		"cold_start":     cold,
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["aws_request_id"] = lc.AwsRequestID
	}
	entry := a.container.Logger.WithContext(ctx).WithFields(fields)
	ctx = handlers.WithLogEntry(ctx, entry)

	tel := a.container.Telemetry
	if cold {
		tel.RecordColdStart(ctx, lambdacontext.FunctionName)
	}

	ctx, span := tel.StartSpan(ctx, event.HTTPMethod+" "+event.Path,
		attribute.String("http.method", event.HTTPMethod),
		attribute.String("correlation_id", event.RequestContext.RequestID),
		attribute.Bool("faas.coldstart", cold),
	)

	resp, route, err := a.resolve(ctx, event)
	if route != "" {
		span.SetName(event.HTTPMethod + " " + route)
	} else {
		route = "unmatched"
	}
	telemetry.EndSpan(span, err)

	if err != nil {
		tel.RecordInvocation(ctx, route, http.StatusInternalServerError)
		entry.WithError(err).Error("Unhandled fault")
		return events.APIGatewayProxyResponse{}, err
	}

	tel.RecordInvocation(ctx, route, resp.StatusCode)
	return resp.ToAPIGatewayProxyResponse(), nil
}

func (a *app) resolve(ctx context.Context, event events.APIGatewayProxyRequest) (*lambda.Response, string, error) {
	req, err := lambda.FromAPIGatewayProxyRequest(event)
	if err != nil {
		return nil, "", err
	}

	resp, err := a.router.Resolve(ctx, req)
	if err != nil {
		return nil, req.Route, err
	}
	if resp == nil {
		return nil, req.Route, fmt.Errorf("route %q produced no response", req.Route)
	}
	return resp, req.Route, nil
}

func main() {
	manager := lambda.NewDefaultConnectionManager()

	container, err := manager.GetContainer()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize container")
	}

	awslambda.StartWithOptions(
		newApp(container, manager.ColdStart).handle,
		awslambda.WithEnableSIGTERM(func() {
			if err := manager.Cleanup(); err != nil {
				container.Logger.WithError(err).Warn("Failed to release container on shutdown")
			}
		}),
	)
}
