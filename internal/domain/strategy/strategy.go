package strategy

import (
	"fmt"

	"github.com/kailas-cloud/tagrec/internal/domain"
)

// Strategy names a user profile construction method.
type Strategy string

// Profile strategies.
const (
	// Threshold sums, unweighted, the vectors of items rated at or above a cutoff.
	Threshold Strategy = "threshold"
	// Weighted sums every rated item's vector scaled by its mean-centered rating.
	Weighted Strategy = "weighted"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Threshold || s == Weighted
}

// Parse converts a configuration value into a Strategy.
func Parse(s string) (Strategy, error) {
	st := Strategy(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, s)
	}
	return st, nil
}
