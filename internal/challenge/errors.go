package challenge

import "errors"

var (
	// ErrNotFound indicates the rotation document has not been seeded.
	ErrNotFound = errors.New("daily challenge document not found")
	// ErrNoChallenges indicates a malformed rotation with an empty sequence.
	ErrNoChallenges = errors.New("challenge sequence is empty")
	// ErrMissingChallengeID indicates a required challenge id was absent.
	ErrMissingChallengeID = errors.New("challenge id is required")
)
