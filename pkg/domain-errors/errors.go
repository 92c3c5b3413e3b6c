// Package derrors provides coded domain errors.
//
// Services translate infrastructure sentinels (pkg/platform/sentinel) into
// coded errors at the service boundary; the HTTP layer maps codes to status
// codes without inspecting error strings. Codes classify the caller's retry
// strategy: only CodeConflict on issuance is safely retryable.
package derrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeInvalidInput marks malformed caller input (bad UUID, bad payload shape).
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest marks a structurally valid but unusable request.
	CodeBadRequest Code = "bad_request"
	// CodeValidation marks a record missing required fields at the issuance boundary.
	CodeValidation Code = "validation_failure"
	// CodeNotFound marks an absent entity on an operation that requires presence.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a uniqueness violation (duplicate reference number).
	CodeConflict Code = "conflict"
	// CodeRenderFailed marks a document rendering failure; the issuance attempt
	// is aborted before anything is persisted.
	CodeRenderFailed Code = "render_failed"
	// CodeIntegrityMismatch marks a recomputed content hash or verification code
	// that does not match the stored value.
	CodeIntegrityMismatch Code = "integrity_mismatch"
	// CodeUnauthorized marks a request without an authenticated principal.
	CodeUnauthorized Code = "unauthorized"
	// CodeInvariantViolation marks a domain invariant broken by the caller.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal marks unexpected infrastructure failures. Details are logged,
	// never surfaced to clients.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	code    Code
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification of this error.
func (e *Error) Code() Code { return e.code }

// Message returns the human-readable description, safe to surface for
// non-internal codes.
func (e *Error) Message() string { return e.message }

// New creates a coded domain error.
func New(code Code, message string) error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{code: code, message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain layer.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.code
	}
	return CodeInternal
}
