package api

import (
	"errors"
	"net/http"

	"khola-chithi/engine/internal/constants"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// statusForError maps domain sentinel errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, constants.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, constants.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, constants.ErrNotOwner), errors.Is(err, constants.ErrUserSuspended):
		return http.StatusForbidden
	case errors.Is(err, constants.ErrDuplicateEmail), errors.Is(err, constants.ErrAlreadyReviewed):
		return http.StatusConflict
	case errors.Is(err, constants.ErrInvalidRating),
		errors.Is(err, constants.ErrInvalidPeriod),
		errors.Is(err, constants.ErrLetterNotPending),
		errors.Is(err, constants.ErrLetterNotReplied),
		errors.Is(err, constants.ErrPlanInactive):
		return http.StatusBadRequest
	case errors.Is(err, constants.ErrNoActivity):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
