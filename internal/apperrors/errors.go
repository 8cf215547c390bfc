package apperrors

import (
	"fmt"
	"net/http"
)

// Error is the application error taxonomy. Every handler failure is one of
// these; the HTTP error handler maps Status to the response code and only
// Fields/Message ever reach the client.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string // per-field detail for validation/conflict errors
	Err     error             // underlying cause, logged server-side only
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports malformed or missing input with per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "validation_error", Message: "Invalid input", Fields: fields}
}

// Auth reports bad credentials or a missing/invalid token.
func Auth(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "auth_error", Message: message}
}

// Forbidden reports an authenticated but unauthorized action.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "forbidden", Message: message}
}

// NotFound reports an absent referenced entity.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Message: message}
}

// Conflict reports a duplicate handle, duplicate like and the like.
func Conflict(field, message string) *Error {
	e := &Error{Status: http.StatusBadRequest, Code: "conflict", Message: message}
	if field != "" {
		e.Fields = map[string]string{field: message}
	}
	return e
}

// BadRequest reports a malformed request outside field validation.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "bad_request", Message: message}
}

// Store wraps an unexpected store or auth-service failure. The cause is kept
// for logging but never serialized to the client.
func Store(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "store_error", Message: "Something went wrong", Err: err}
}
