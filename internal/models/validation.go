package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// Validate checks the invariants of a user before it is stored.
// Only the identifier is constrained; the remaining attributes are opaque.
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return &ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: fmt.Sprintf("user %s failed on the '%s' rule", strings.ToLower(fe.Field()), fe.Tag()),
				Value:   fe.Value(),
			}
		}
		return err
	}
	return nil
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(value, fieldName string) error {
	if err := validate.Var(value, "required"); err != nil {
		return &ValidationError{
			Field:   fieldName,
			Message: fieldName + " is required",
			Value:   value,
		}
	}
	return nil
}
