// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrVerificationFailed indicates a webhook subscription challenge was rejected.
	ErrVerificationFailed = errors.New("webhook verification failed")

	// ErrNotPageEvent indicates a webhook batch that was not sent for a page subscription.
	ErrNotPageEvent = errors.New("not a page event")

	// ErrInvalidEvent indicates a messaging event that failed validation.
	ErrInvalidEvent = errors.New("invalid messaging event")

	// ErrUnsupportedEvent indicates a messaging event without a handled variant.
	ErrUnsupportedEvent = errors.New("unsupported messaging event")

	// ErrNilPayload indicates a responder produced no response payload.
	ErrNilPayload = errors.New("responder returned no payload")

	// ErrGraphAPI indicates the Graph API answered with a non-success status.
	ErrGraphAPI = errors.New("graph api error")
)

// GraphError represents a non-success response from the Graph API.
type GraphError struct {
	Endpoint   string
	StatusCode int
	Code       int    // Graph error code, 0 when the body carried none
	Type       string // Graph error type, e.g. OAuthException
	Message    string
}

func (e *GraphError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("graph api error (endpoint=%s, status=%d, code=%d): %s", e.Endpoint, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("graph api error (endpoint=%s, status=%d): %s", e.Endpoint, e.StatusCode, e.Message)
}

// Is lets errors.Is match ErrGraphAPI.
func (e *GraphError) Is(target error) bool {
	return target == ErrGraphAPI
}

// NewGraphError creates a new Graph API error.
func NewGraphError(endpoint string, statusCode int, code int, errType, message string) *GraphError {
	return &GraphError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Code:       code,
		Type:       errType,
		Message:    message,
	}
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidEvent.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidEvent
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsGraphError reports whether err carries a Graph API error response.
func IsGraphError(err error) bool {
	return errors.Is(err, ErrGraphAPI)
}

// AsGraphError extracts a *GraphError from err.
func AsGraphError(err error) (*GraphError, bool) {
	var ge *GraphError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
