package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrPersistenceDisabled = NewUnavailableError("persistence is disabled")
)

// HTTPStatuser is implemented by errors that map to an HTTP status code.
type HTTPStatuser interface {
	HTTPStatus() int
}

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// TransportError reports a failed call to a remote endpoint: the request could
// not be made, the status was outside 2xx, or the body could not be read.
type TransportError struct {
	Endpoint   string
	StatusCode int // StatusCode is 0 when no response was received
	Err        error
}

// NewTransportError creates a new transport error
func NewTransportError(endpoint string, statusCode int, err error) *TransportError {
	return &TransportError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("request to %s failed with status code %d", e.Endpoint, e.StatusCode)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status code %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

// Unwrap returns the wrapped error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *TransportError) HTTPStatus() int {
	return http.StatusBadGateway
}

// ParseError represents malformed or unexpected response data
type ParseError struct {
	Field   string // Field is empty when the payload as a whole is malformed
	Message string
	Err     error
}

// NewParseError creates a new parse error
func NewParseError(field, message string, err error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to parse response: %s: %v", msg, e.Err)
	}
	return fmt.Sprintf("failed to parse response: %s", msg)
}

// Unwrap returns the wrapped error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *ParseError) HTTPStatus() int {
	return http.StatusBadGateway
}

// PersistenceError represents a failure reported by the user store
type PersistenceError struct {
	Op  string
	Err error
}

// NewPersistenceError creates a new persistence error
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{
		Op:  op,
		Err: err,
	}
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

// Unwrap returns the wrapped error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *PersistenceError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// ConstructionError represents a resource that a generator needs at start-up
// but could not load
type ConstructionError struct {
	Resource string
	Err      error
}

// NewConstructionError creates a new construction error
func NewConstructionError(resource string, err error) *ConstructionError {
	return &ConstructionError{
		Resource: resource,
		Err:      err,
	}
}

// Error implements the error interface
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to load resource %s: %v", e.Resource, e.Err)
}

// Unwrap returns the wrapped error
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *ConstructionError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// GenerationError is the single error type returned by user generators.
// The underlying TransportError, ParseError or PersistenceError is reachable
// through errors.As.
type GenerationError struct {
	Source string // Source names the generator, e.g. "api" or "local"
	Err    error
}

// NewGenerationError creates a new generation error
func NewGenerationError(source string, err error) *GenerationError {
	return &GenerationError{
		Source: source,
		Err:    err,
	}
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate user from %s: %v", e.Source, e.Err)
}

// Unwrap returns the wrapped error
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status of the wrapped error, or 500
func (e *GenerationError) HTTPStatus() int {
	var s HTTPStatuser
	if stderrors.As(e.Err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// UnavailableError represents a feature that is switched off at runtime
type UnavailableError struct {
	Message string
}

// NewUnavailableError creates a new unavailable error
func NewUnavailableError(message string) *UnavailableError {
	return &UnavailableError{Message: message}
}

// Error implements the error interface
func (e *UnavailableError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status for this error
func (e *UnavailableError) HTTPStatus() int {
	return http.StatusServiceUnavailable
}
