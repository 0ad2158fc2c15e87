package models

import (
	"github.com/google/uuid"
)

// User represents a user record in the users table
type User struct {
	ID        string  `json:"id" dynamodbav:"id" db:"id" validate:"required,uuid4"`
	Email     *string `json:"email,omitempty" dynamodbav:"email,omitempty" db:"email"`
	FirstName *string `json:"first_name,omitempty" dynamodbav:"first_name,omitempty" db:"first_name"`
	LastName  *string `json:"last_name,omitempty" dynamodbav:"last_name,omitempty" db:"last_name"`
	Address   *string `json:"address,omitempty" dynamodbav:"address,omitempty" db:"address"`
}

// NewUser creates a new user with a generated ID
func NewUser() *User {
	return &User{
		ID: uuid.New().String(),
	}
}

// Attributes returns the stored attributes of the user keyed by attribute
// name. Unset attributes are left out.
func (u *User) Attributes() map[string]string {
	attrs := map[string]string{"id": u.ID}
	set := func(name string, value *string) {
		if value != nil {
			attrs[name] = *value
		}
	}
	set("email", u.Email)
	set("first_name", u.FirstName)
	set("last_name", u.LastName)
	set("address", u.Address)
	return attrs
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
