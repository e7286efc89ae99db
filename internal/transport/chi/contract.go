package chi

import (
	"context"

	"github.com/kailas-cloud/tagrec/internal/domain/model"
	"github.com/kailas-cloud/tagrec/internal/domain/strategy"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
	healthuc "github.com/kailas-cloud/tagrec/internal/usecase/health"
	"github.com/kailas-cloud/tagrec/internal/usecase/modelbuild"
)

// Scorer ranks candidate items for a user.
type Scorer interface {
	Score(ctx context.Context, user int64, items []int64) (map[int64]float64, error)
	Profile(ctx context.Context, user int64) (tagvec.Vector, error)
	Strategy() strategy.Strategy
}

// Models exposes the served model and triggers rebuilds.
type Models interface {
	Current() (*model.Model, error)
	Rebuild(ctx context.Context) (model.Metadata, error)
	Status() modelbuild.Status
}

// HealthReporter aggregates component health.
type HealthReporter interface {
	Check(ctx context.Context) healthuc.Report
}
