package handlers

import "fmt"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable outcome, such as a missing user
type MessageResponse struct {
	Message string `json:"message"`
}

func userNotFound(id string) MessageResponse {
	return MessageResponse{Message: fmt.Sprintf("user[%s]: not found", id)}
}

var routeNotFound = MessageResponse{Message: "Not found"}
