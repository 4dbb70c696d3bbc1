package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel error taxonomy. Handlers wrap these with context via fmt.Errorf
// ("%w: ...") and the response writer maps them back to HTTP status codes,
// so callers can distinguish client input errors, not-found conditions and
// infrastructure failures without matching on message strings.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream service error")

	// ErrDatabase deliberately carries no detail: infrastructure failures are
	// logged server-side and surfaced to clients as a generic message.
	ErrDatabase = errors.New("database error")
)

func CheckError(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
