package errors

import (
	"errors"
	"net/http"
)

// Error kinds. Module sentinels wrap one of these so the HTTP layer can
// classify them with errors.Is.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")
	ErrInternal         = errors.New("internal error")
)

// Error codes returned to clients.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodeValidation       = "VALIDATION_ERROR"
	CodeConflict         = "CONFLICT"
	CodeInternal         = "INTERNAL_ERROR"
	CodeRateLimited      = "RATE_LIMITED"
)

// kindError is a sentinel classified under one of the error kinds.
// Its message is safe to show to clients.
type kindError struct {
	kind    error
	message string
}

func (e *kindError) Error() string { return e.message }
func (e *kindError) Unwrap() error { return e.kind }

// New creates a sentinel error classified under kind.
func New(kind error, message string) error {
	return &kindError{kind: kind, message: message}
}

// PublicMessage returns the client-facing message for err: the message of
// the outermost sentinel in its chain, or of the innermost error when there
// is none. Wrapping context is dropped.
func PublicMessage(err error) string {
	var last error
	for e := err; e != nil; e = errors.Unwrap(e) {
		if v, ok := e.(*kindError); ok {
			return v.message
		}
		last = e
	}
	if last == nil {
		return ""
	}
	return last.Error()
}

// Classify returns the client-facing code and HTTP status for err.
// Unclassified errors are internal.
func Classify(err error) (string, int) {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound, http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized, http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden, http.StatusForbidden
	case errors.Is(err, ErrInvalidOperation):
		return CodeInvalidOperation, http.StatusBadRequest
	case errors.Is(err, ErrValidation):
		return CodeValidation, http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return CodeConflict, http.StatusConflict
	default:
		return CodeInternal, http.StatusInternalServerError
	}
}

// IsClientError reports whether err belongs to the 4xx taxonomy.
func IsClientError(err error) bool {
	_, status := Classify(err)
	return status < http.StatusInternalServerError
}
