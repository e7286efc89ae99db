package tagrec

import "github.com/kailas-cloud/tagrec/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrInvalidRating     = domain.ErrInvalidRating
	ErrUndefinedMean     = domain.ErrUndefinedMean
	ErrModelNotReady     = domain.ErrModelNotReady
	ErrUnknownStrategy   = domain.ErrUnknownStrategy
	ErrRebuildInProgress = domain.ErrRebuildInProgress
)
