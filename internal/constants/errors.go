package constants

import "errors"

var (
	ErrNotFound          = errors.New("entity not found")
	ErrNoActivity        = errors.New("no activity for period")
	ErrInvalidRating     = errors.New("rating must be between 1 and 10")
	ErrInvalidPeriod     = errors.New("period must be H1 or H2")
	ErrLetterNotPending  = errors.New("letter is not pending")
	ErrLetterNotReplied  = errors.New("letter has not been replied to")
	ErrUserSuspended     = errors.New("user is suspended")
	ErrRateLimited       = errors.New("submission limit reached")
	ErrPlanInactive      = errors.New("subscription plan is not active")
	ErrNotOwner          = errors.New("caller does not own this entity")
	ErrAlreadyReviewed   = errors.New("application already reviewed")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidCollection = errors.New("unknown collection key")
)
