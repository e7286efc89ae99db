package profile

import (
	"fmt"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/strategy"
)

// Compile-time checks.
var (
	_ Builder = (*ThresholdBuilder)(nil)
	_ Builder = (*WeightedBuilder)(nil)
)

// New returns the builder for s. threshold is used by strategy.Threshold only;
// a non-positive value selects DefaultThreshold.
func New(s strategy.Strategy, threshold float64) (Builder, error) {
	switch s {
	case strategy.Threshold:
		if threshold <= 0 {
			threshold = DefaultThreshold
		}
		return NewThreshold(threshold), nil
	case strategy.Weighted:
		return NewWeighted(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, s)
	}
}
