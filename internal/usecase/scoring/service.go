package scoring

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/rating"
	"github.com/kailas-cloud/tagrec/internal/domain/strategy"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
	"github.com/kailas-cloud/tagrec/internal/logger"
	"github.com/kailas-cloud/tagrec/internal/metrics"
	"github.com/kailas-cloud/tagrec/internal/usecase/profile"
)

// Service scores candidate items against a user's profile.
type Service struct {
	ratings  RatingSource
	models   ModelProvider
	builder  profile.Builder
	strategy strategy.Strategy
}

// New creates a scoring service. strat only labels metrics and logs.
func New(ratings RatingSource, models ModelProvider, builder profile.Builder, strat strategy.Strategy) *Service {
	return &Service{ratings: ratings, models: models, builder: builder, strategy: strat}
}

// Strategy returns the profile strategy the service was built with.
func (s *Service) Strategy() strategy.Strategy { return s.strategy }

// Score returns the cosine similarity between the user's profile and each
// candidate item. Items with a zero vector are left out, and a user without
// ratings gets an empty map.
func (s *Service) Score(ctx context.Context, user int64, items []int64) (map[int64]float64, error) {
	start := time.Now()
	label := string(s.strategy)
	defer func() {
		metrics.ScoringDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	scores, err := s.score(ctx, user, items)
	if err != nil {
		metrics.ScoringRequestsTotal.WithLabelValues(label, "error").Inc()
		return nil, err
	}
	metrics.ScoringRequestsTotal.WithLabelValues(label, "ok").Inc()
	return scores, nil
}

func (s *Service) score(ctx context.Context, user int64, items []int64) (map[int64]float64, error) {
	usage := domain.ScoringUsageFromContext(ctx)

	ratings, err := s.ratings.ForUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("ratings of user %d: %w", user, err)
	}
	if len(ratings) == 0 {
		usage.Record(len(items), 0, 0)
		metrics.ScoredItemsTotal.WithLabelValues("omitted").Add(float64(len(items)))
		return map[int64]float64{}, nil
	}

	m, err := s.models.Current()
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}

	p, err := s.buildProfile(ratings, m)
	if err != nil {
		return nil, err
	}

	scores := make(map[int64]float64, len(items))
	for _, item := range items {
		if sim, ok := tagvec.Cosine(p, m.ItemVector(item)); ok {
			scores[item] = sim
		}
	}

	omitted := len(items) - len(scores)
	usage.Record(len(items), len(scores), m.Version())
	metrics.ScoredItemsTotal.WithLabelValues("scored").Add(float64(len(scores)))
	metrics.ScoredItemsTotal.WithLabelValues("omitted").Add(float64(omitted))

	logger.FromContext(ctx).Debug("items scored",
		zap.Int64("user", user),
		zap.Int("candidates", len(items)),
		zap.Int("scored", len(scores)),
		zap.Int("model_version", m.Version()),
	)
	return scores, nil
}

// Profile returns the user's profile vector under the configured strategy.
// Weighted profiles of users without ratings fail with ErrUndefinedMean.
func (s *Service) Profile(ctx context.Context, user int64) (tagvec.Vector, error) {
	m, err := s.models.Current()
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	ratings, err := s.ratings.ForUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("ratings of user %d: %w", user, err)
	}
	return s.buildProfile(ratings, m)
}

func (s *Service) buildProfile(ratings []rating.Rating, m profile.ItemVectors) (tagvec.Vector, error) {
	start := time.Now()
	p, err := s.builder.Build(ratings, m)
	metrics.ProfileBuildDuration.WithLabelValues(string(s.strategy)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("build %s profile: %w", s.strategy, err)
	}
	return p, nil
}
