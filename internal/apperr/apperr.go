// Package apperr defines the typed error every API surface speaks: an HTTP
// status plus a machine-readable code the client can branch on.
package apperr

import "net/http"

// Error is a client-visible failure. Message is safe to surface verbatim.
type Error struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New builds an Error.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// BadRequest is a 400 with a code.
func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

// Forbidden is a 403 with a code.
func Forbidden(code, message string) *Error {
	return New(http.StatusForbidden, code, message)
}

// NotFound is a 404 with a code.
func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

// PaymentRequired is a 402 with a code.
func PaymentRequired(code, message string) *Error {
	return New(http.StatusPaymentRequired, code, message)
}
