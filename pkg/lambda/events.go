package lambda

import (
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// FromAPIGatewayProxyRequest converts an API Gateway REST proxy event to a Request
func FromAPIGatewayProxyRequest(event events.APIGatewayProxyRequest) (*Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 body: %w", err)
		}
		body = decoded
	}

	pathParams := make(map[string]string, len(event.PathParameters))
	for k, v := range event.PathParameters {
		pathParams[k] = v
	}

	return &Request{
		Method:        event.HTTPMethod,
		Path:          event.Path,
		Headers:       event.Headers,
		QueryParams:   event.QueryStringParameters,
		Body:          body,
		PathParams:    pathParams,
		CorrelationID: event.RequestContext.RequestID,
	}, nil
}

// ToAPIGatewayProxyResponse converts a Response to an API Gateway proxy response
func (r *Response) ToAPIGatewayProxyResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}
