package profile

import (
	"github.com/kailas-cloud/tagrec/internal/domain/rating"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

// DefaultThreshold is the lowest rating counted as positive on a 0.5-5.0 scale.
const DefaultThreshold = 3.5

// ThresholdBuilder sums, with equal weight, the vectors of items the user
// rated at or above the threshold.
type ThresholdBuilder struct {
	threshold float64
}

// NewThreshold creates a ThresholdBuilder. Pass DefaultThreshold for the standard cutoff.
func NewThreshold(threshold float64) *ThresholdBuilder {
	return &ThresholdBuilder{threshold: threshold}
}

// Threshold returns the configured cutoff.
func (b *ThresholdBuilder) Threshold() float64 { return b.threshold }

// Build never fails; users without qualifying ratings get an empty profile.
func (b *ThresholdBuilder) Build(ratings []rating.Rating, model ItemVectors) (tagvec.Vector, error) {
	profile := tagvec.New(0)
	for _, r := range ratings {
		if r.Value < b.threshold {
			continue
		}
		profile.AddScaled(model.ItemVector(r.ItemID), 1)
	}
	return profile, nil
}
