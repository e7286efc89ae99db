package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals malformed input from a caller.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidRating signals a rating value that cannot be used.
	ErrInvalidRating = errors.New("invalid rating")
	// ErrUndefinedMean signals a mean-centered profile requested for a user without ratings.
	ErrUndefinedMean = errors.New("mean rating undefined for empty rating list")
	// ErrModelNotReady signals that no model has been built or loaded yet.
	ErrModelNotReady = errors.New("model not ready")
	// ErrUnknownStrategy signals an unsupported profile strategy name.
	ErrUnknownStrategy = errors.New("unknown profile strategy")
	// ErrRebuildInProgress signals a rebuild request while another one runs.
	ErrRebuildInProgress = errors.New("model rebuild already in progress")
)
