package store

import (
	"errors"

	"github.com/aws/smithy-go"
)

// ErrSchemaMismatch is returned when an item does not fit the table schema
var ErrSchemaMismatch = errors.New("item does not match table schema")

// ErrorCode returns the AWS API error code carried by err, or an empty
// string when err did not come from the service
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsThrottled reports whether the service rejected the call for capacity reasons
func IsThrottled(err error) bool {
	switch ErrorCode(err) {
	case "ProvisionedThroughputExceededException", "ThrottlingException", "RequestLimitExceeded":
		return true
	}
	return false
}

// IsAccessDenied reports whether the caller lacks permission on the table
func IsAccessDenied(err error) bool {
	switch ErrorCode(err) {
	case "AccessDeniedException", "UnrecognizedClientException":
		return true
	}
	return false
}
