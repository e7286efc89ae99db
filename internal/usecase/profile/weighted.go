package profile

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/rating"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

// WeightedBuilder adds every rated item's vector scaled by the rating's
// distance from the user's mean rating. Ratings below the mean push tags
// negative; weights are never clamped.
type WeightedBuilder struct{}

// NewWeighted creates a WeightedBuilder.
func NewWeighted() *WeightedBuilder {
	return &WeightedBuilder{}
}

// Build returns domain.ErrUndefinedMean for an empty rating list.
func (b *WeightedBuilder) Build(ratings []rating.Rating, model ItemVectors) (tagvec.Vector, error) {
	if len(ratings) == 0 {
		return nil, fmt.Errorf("weighted profile: %w", domain.ErrUndefinedMean)
	}

	mean := stat.Mean(rating.Values(ratings), nil)

	profile := tagvec.New(0)
	for _, r := range ratings {
		profile.AddScaled(model.ItemVector(r.ItemID), r.Value-mean)
	}
	return profile, nil
}
