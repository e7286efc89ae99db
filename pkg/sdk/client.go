package tagrec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagrec/internal/config"
	"github.com/kailas-cloud/tagrec/internal/domain/model"
	domrating "github.com/kailas-cloud/tagrec/internal/domain/rating"
	"github.com/kailas-cloud/tagrec/internal/domain/strategy"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
	"github.com/kailas-cloud/tagrec/internal/repository/backend"
	snapshotrepo "github.com/kailas-cloud/tagrec/internal/repository/snapshot"
	healthuc "github.com/kailas-cloud/tagrec/internal/usecase/health"
	"github.com/kailas-cloud/tagrec/internal/usecase/modelbuild"
	"github.com/kailas-cloud/tagrec/internal/usecase/profile"
	"github.com/kailas-cloud/tagrec/internal/usecase/scoring"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, substituted in tests.
type scoringUseCase interface {
	Score(ctx context.Context, user int64, items []int64) (map[int64]float64, error)
	Profile(ctx context.Context, user int64) (tagvec.Vector, error)
}

type modelUseCase interface {
	Current() (*model.Model, error)
	Rebuild(ctx context.Context) (model.Metadata, error)
	Warm(ctx context.Context) (model.Metadata, error)
}

// Client is the tagrec SDK entry point.
type Client struct {
	store     *backend.Backend
	scoreSvc  scoringUseCase
	models    modelUseCase
	healthSvc healthUseCase
	obs       *observer
}

// ModelInfo describes a built model.
type ModelInfo struct {
	Version int
	BuiltAt time.Time
	Items   int
	Tags    int
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
// New does not build a model; call LoadModel or BuildModel before scoring.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("tagrec: storage required (use WithRedis or WithSQLite)")
	}
	strat, err := strategy.Parse(defaultString(cfg.strategy, string(strategy.Threshold)))
	if err != nil {
		return nil, fmt.Errorf("tagrec: %w", err)
	}
	profiles, err := profile.New(strat, cfg.threshold)
	if err != nil {
		return nil, fmt.Errorf("tagrec: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := backend.Open(ctx, config.DatabaseConfig{
		Driver:     cfg.driver,
		Addrs:      cfg.addrs,
		Password:   cfg.password,
		SQLitePath: cfg.sqlitePath,
	}, cfg.keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("tagrec: open %s store: %w", cfg.driver, err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("tagrec: database not ready: %w", err)
	}

	return wireClient(store, cfg, strat, profiles, obs), nil
}

func wireClient(
	store *backend.Backend,
	cfg *clientConfig,
	strat strategy.Strategy,
	profiles profile.Builder,
	obs *observer,
) *Client {
	logger := zap.NewNop()

	var snapshots modelbuild.SnapshotStore
	if !cfg.noSnapshots {
		snapshots = snapshotrepo.New(store.KV, cfg.keyPrefix, nil, logger)
	}
	builder := modelbuild.NewBuilder(store.Tags, cfg.buildWorkers, logger)
	manager := modelbuild.NewManager(builder, snapshots, logger)

	return &Client{
		store:     store,
		scoreSvc:  scoring.New(store.Ratings, manager, profiles, strat),
		models:    manager,
		healthSvc: healthuc.New(store, manager),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Tag records tag applications for an item. Repeating a tag raises its weight.
func (c *Client) Tag(ctx context.Context, item int64, tags ...string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("tag", start, err) }()

	if len(tags) == 0 {
		if err = c.store.Tags.AddItems(ctx, item); err != nil {
			return fmt.Errorf("add item %d: %w", item, err)
		}
		return nil
	}
	if err = c.store.Tags.ApplyMany(ctx, map[int64][]string{item: tags}); err != nil {
		return fmt.Errorf("tag item %d: %w", item, err)
	}
	return nil
}

// Rate stores a user's rating of an item, replacing an earlier one.
func (c *Client) Rate(ctx context.Context, user, item int64, value float64) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("rate", start, err) }()

	rt, err := domrating.New(user, item, value)
	if err != nil {
		return err
	}
	if err = c.store.Ratings.PutMany(ctx, []domrating.Rating{rt}); err != nil {
		return fmt.Errorf("rate item %d: %w", item, err)
	}
	return nil
}

// BuildModel recomputes item vectors from all tag applications and serves the result.
func (c *Client) BuildModel(ctx context.Context) (info ModelInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("build_model", start, err) }()

	meta, err := c.models.Rebuild(ctx)
	if err != nil {
		return ModelInfo{}, err
	}
	return modelInfo(meta), nil
}

// LoadModel serves the stored snapshot, building a model when none exists.
func (c *Client) LoadModel(ctx context.Context) (info ModelInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("load_model", start, err) }()

	meta, err := c.models.Warm(ctx)
	if err != nil {
		return ModelInfo{}, err
	}
	return modelInfo(meta), nil
}

// Score returns the similarity of each candidate item to the user's profile.
// Items without a usable vector are absent from the result.
func (c *Client) Score(ctx context.Context, user int64, items []int64) (scores map[int64]float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("score", start, err) }()

	return c.scoreSvc.Score(ctx, user, items)
}

// Profile returns the user's tag profile.
func (c *Client) Profile(ctx context.Context, user int64) (p map[string]float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("profile", start, err) }()

	v, err := c.scoreSvc.Profile(ctx, user)
	if err != nil {
		return nil, err
	}
	return v.Clone(), nil
}

// ItemVector returns a copy of the item's normalized TF-IDF vector.
// Unknown items yield an empty map.
func (c *Client) ItemVector(_ context.Context, item int64) (map[string]float64, error) {
	m, err := c.models.Current()
	if err != nil {
		return nil, err
	}
	return m.ItemVector(item).Clone(), nil
}

func modelInfo(meta model.Metadata) ModelInfo {
	return ModelInfo{
		Version: meta.Version,
		BuiltAt: meta.BuiltAt,
		Items:   meta.ItemCount,
		Tags:    meta.TagCount,
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
