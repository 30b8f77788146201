// Package apierror defines the errors observable by API clients.
//
// Only four classes ever leave the process: validation (400), conflict (409),
// authentication (401) and internal (500). Everything else is flattened into
// one of them before it reaches a handler's response.
package apierror

import (
	"fmt"
	"net/http"
)

// APIError is an error with a client-facing status and message.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

const (
	msgInvalidCredentials = "invalid email or password"
	msgUnauthorized       = "unauthorized"
	msgInternal           = "internal server error"
)

// NewErrValidation reports malformed input.
func NewErrValidation(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// NewErrEmailIsTaken reports a duplicate login identifier.
func NewErrEmailIsTaken(email string) *APIError {
	return &APIError{Status: http.StatusConflict, Message: fmt.Sprintf("email %s is already taken", email)}
}

// NewErrAuthentication is the single generic credential failure. The cause is
// kept for logs only.
func NewErrAuthentication(cause error) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: msgInvalidCredentials, Err: cause}
}

// NewErrMissingAuthorizationToken reports an absent bearer token.
func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: msgUnauthorized}
}

// NewErrInvalidAuthorizationToken reports a bearer token that failed validation.
func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: msgUnauthorized}
}

// NewErrInternalServerError hides err behind a generic message.
func NewErrInternalServerError(err error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: msgInternal, Err: err}
}
