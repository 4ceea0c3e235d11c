// Package errors provides custom error types for the eventhub client.
// These errors enable programmatic error checking and carry enough context
// to reproduce the message taxonomy the EventHub UI renders: connectivity
// failures, server-reported domain failures, soft "no results" conditions,
// and session expiry.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the eventhub client
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a request the server rejected with 401
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates a request the server rejected with 403
	ErrForbidden = errors.New("forbidden")

	// ErrSessionExpired indicates the stored session token is no longer valid
	ErrSessionExpired = errors.New("session expired")

	// ErrNetwork indicates a request that never received a server reply
	ErrNetwork = errors.New("network failure")

	// ErrNoSearchCriteria indicates a search attempted with every field blank
	ErrNoSearchCriteria = errors.New("no search criteria")

	// ErrNoResults indicates a valid search that matched nothing.
	// It is a soft condition: the (empty) result set is still valid data.
	ErrNoResults = errors.New("no results")

	// ErrServerUnavailable indicates the API is temporarily unavailable
	ErrServerUnavailable = errors.New("server unavailable")
)

// NetworkMessage is the uniform connectivity message surfaced for any request
// that failed before a server reply arrived. Calling code never has to
// distinguish transport failures from API-reported failures.
const NetworkMessage = "Network error - please check your connection and ensure the server is running"

// NetworkError represents a transport-level failure with no server reply.
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s %s: %v", e.Operation, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// Message returns the uniform user-facing connectivity message.
func (e *NetworkError) Message() string {
	return NetworkMessage
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// APIError represents a failure the server reported with an HTTP status and
// an error payload. ServerMessage holds the server's own wording verbatim.
type APIError struct {
	StatusCode    int
	Endpoint      string
	ServerMessage string
	Err           error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.ServerMessage != "" {
		return fmt.Sprintf("API error (status %d) from %s: %s", e.StatusCode, e.Endpoint, e.ServerMessage)
	}
	return fmt.Sprintf("API error (status %d) from %s", e.StatusCode, e.Endpoint)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 403:
		return target == ErrForbidden
	case 404:
		return target == ErrNotFound
	}
	if e.StatusCode >= 500 {
		return target == ErrServerUnavailable
	}
	return false
}

// Message returns the server's message, or the given fallback when the
// server supplied none.
func (e *APIError) Message(fallback string) string {
	if e.ServerMessage != "" {
		return e.ServerMessage
	}
	return fallback
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, serverMessage string) *APIError {
	return &APIError{
		StatusCode:    statusCode,
		Endpoint:      endpoint,
		ServerMessage: serverMessage,
	}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthenticationError represents a credential failure during login, signup,
// or session restore.
type AuthenticationError struct {
	Operation string // "login", "signup", "restore"
	Message   string
	Err       error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrUnauthorized
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(operation, message string, err error) *AuthenticationError {
	return &AuthenticationError{Operation: operation, Message: message, Err: err}
}

// IOError represents an error during local I/O, e.g. the credentials file.
type IOError struct {
	Operation string // "read", "write", "delete"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if an error is an authorization failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNetwork checks if an error is a transport-level failure
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsServerUnavailable checks if an error indicates a 5xx response
func IsServerUnavailable(err error) bool {
	return errors.Is(err, ErrServerUnavailable)
}

// UserMessage extracts the message the UI should render for err: the uniform
// connectivity message for transport failures, the server's wording for API
// failures, and fallback for anything else.
func UserMessage(err error, fallback string) string {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Message()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	return fallback
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapNetwork wraps an error as a NetworkError
func WrapNetwork(operation, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	return NewNetworkError(operation, endpoint, err)
}
