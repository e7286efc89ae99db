package modelbuild

import (
	"context"

	"github.com/kailas-cloud/tagrec/internal/domain/model"
)

// ItemSource lists every item of the corpus, tagged or not.
type ItemSource interface {
	ItemIDs(ctx context.Context) ([]int64, error)
}

// TagSource returns the tag applications of a single item, duplicates included.
type TagSource interface {
	TagApplications(ctx context.Context, item int64) ([]string, error)
}

// Corpus combines the sources the builder reads from.
type Corpus interface {
	ItemSource
	TagSource
}

// SnapshotStore persists built models between restarts.
// Load returns domain.ErrNotFound when no snapshot exists.
type SnapshotStore interface {
	Load(ctx context.Context) (*model.Model, error)
	Save(ctx context.Context, m *model.Model) error
}
