package scoring

import (
	"context"

	"github.com/kailas-cloud/tagrec/internal/domain/model"
	"github.com/kailas-cloud/tagrec/internal/domain/rating"
)

// RatingSource returns all ratings of a user. Unknown users yield an empty slice.
type RatingSource interface {
	ForUser(ctx context.Context, user int64) ([]rating.Rating, error)
}

// ModelProvider returns the model currently served.
type ModelProvider interface {
	Current() (*model.Model, error)
}
