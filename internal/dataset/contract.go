package dataset

import (
	"context"

	"github.com/kailas-cloud/tagrec/internal/domain/rating"
)

// ItemWriter registers items and their tag applications.
type ItemWriter interface {
	AddItems(ctx context.Context, items ...int64) error
	ApplyMany(ctx context.Context, apps map[int64][]string) error
}

// RatingWriter stores ratings in bulk.
type RatingWriter interface {
	PutMany(ctx context.Context, ratings []rating.Rating) error
}
