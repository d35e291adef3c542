package user

import "errors"

var (
	// ErrNotFound indicates the referenced user document does not exist.
	ErrNotFound = errors.New("user record not found")
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrInvalidDelta indicates a non-positive point delta.
	ErrInvalidDelta = errors.New("point delta must be positive")
)
