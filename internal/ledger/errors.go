package ledger

import "errors"

var (
	// ErrUserNotFound means the referenced user document does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateCompletion means the challenge was already completed by
	// this user. Challenge completions are one-time and never merged.
	ErrDuplicateCompletion = errors.New("challenge already completed")

	// ErrMissingProof means the challenge requires proof text and none was
	// supplied.
	ErrMissingProof = errors.New("proof is required for this challenge")

	// ErrInvalidActivity means a submitted activity payload is malformed
	// (negative counts or points).
	ErrInvalidActivity = errors.New("activity counts and points must be non-negative")

	// ErrConflict means a concurrent writer changed the user's progress
	// between read and save. The ledger retries once before surfacing it.
	ErrConflict = errors.New("user progress was modified concurrently")
)
