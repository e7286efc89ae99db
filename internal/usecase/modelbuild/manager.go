package modelbuild

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/model"
	"github.com/kailas-cloud/tagrec/internal/metrics"
)

// Status describes the served model and the outcome of the last rebuild.
type Status struct {
	Ready      bool
	Rebuilding bool
	Meta       model.Metadata
	LastError  string
	LastBuild  time.Duration
}

// Manager owns the served model. Readers get the current model without
// blocking; rebuilds run one at a time and swap the model atomically.
type Manager struct {
	builder   *Builder
	snapshots SnapshotStore
	logger    *zap.Logger
	now       func() time.Time

	current atomic.Pointer[model.Model]

	mu         sync.Mutex // serializes rebuilds
	rebuilding atomic.Bool

	statusMu  sync.RWMutex
	lastErr   error
	lastBuild time.Duration
}

// NewManager creates a Manager. snapshots can be nil.
func NewManager(builder *Builder, snapshots SnapshotStore, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		builder:   builder,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

// Current returns the served model or ErrModelNotReady before the first build.
func (m *Manager) Current() (*model.Model, error) {
	if cur := m.current.Load(); cur != nil {
		return cur, nil
	}
	return nil, domain.ErrModelNotReady
}

// Ready reports whether a model is being served.
func (m *Manager) Ready() bool { return m.current.Load() != nil }

// Rebuild computes a new model from the corpus and swaps it in.
// Returns ErrRebuildInProgress if another rebuild is running.
func (m *Manager) Rebuild(ctx context.Context) (model.Metadata, error) {
	if !m.mu.TryLock() {
		return model.Metadata{}, domain.ErrRebuildInProgress
	}
	defer m.mu.Unlock()
	m.rebuilding.Store(true)
	defer m.rebuilding.Store(false)

	start := time.Now()
	vectors, err := m.builder.Build(ctx)
	elapsed := time.Since(start)
	metrics.ModelBuildDuration.Observe(elapsed.Seconds())
	if err != nil {
		metrics.ModelBuildsTotal.WithLabelValues("error").Inc()
		m.setStatus(err, elapsed)
		m.logger.Error("model rebuild failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return model.Metadata{}, fmt.Errorf("rebuild model: %w", err)
	}

	next := model.New(vectors, m.nextVersion(), m.now().UTC())
	m.publish(next)
	metrics.ModelBuildsTotal.WithLabelValues("success").Inc()
	m.setStatus(nil, elapsed)

	meta := next.Metadata()
	m.logger.Info("model rebuilt",
		zap.Int("version", meta.Version),
		zap.Int("items", meta.ItemCount),
		zap.Int("tags", meta.TagCount),
		zap.Duration("elapsed", elapsed),
	)

	if m.snapshots != nil {
		if err := m.snapshots.Save(ctx, next); err != nil {
			// The new model is served regardless; the next restart rebuilds.
			m.logger.Warn("model snapshot save failed", zap.Error(err), zap.Int("version", meta.Version))
		}
	}
	return meta, nil
}

// Warm loads the stored snapshot when one exists, otherwise rebuilds.
func (m *Manager) Warm(ctx context.Context) (model.Metadata, error) {
	if m.snapshots != nil {
		snap, err := m.snapshots.Load(ctx)
		switch {
		case err == nil:
			m.mu.Lock()
			m.publish(snap)
			m.mu.Unlock()
			meta := snap.Metadata()
			m.logger.Info("model loaded from snapshot",
				zap.Int("version", meta.Version),
				zap.Int("items", meta.ItemCount),
			)
			return meta, nil
		case errors.Is(err, domain.ErrNotFound):
			m.logger.Info("no model snapshot, building from corpus")
		default:
			m.logger.Warn("model snapshot load failed, building from corpus", zap.Error(err))
		}
	}
	return m.Rebuild(ctx)
}

// Status reports the served model and last rebuild outcome.
func (m *Manager) Status() Status {
	st := Status{Rebuilding: m.rebuilding.Load()}
	if cur := m.current.Load(); cur != nil {
		st.Ready = true
		st.Meta = cur.Metadata()
	}
	m.statusMu.RLock()
	if m.lastErr != nil {
		st.LastError = m.lastErr.Error()
	}
	st.LastBuild = m.lastBuild
	m.statusMu.RUnlock()
	return st
}

// HealthCheck returns ErrModelNotReady until a model is served.
func (m *Manager) HealthCheck(_ context.Context) error {
	if !m.Ready() {
		return domain.ErrModelNotReady
	}
	return nil
}

func (m *Manager) nextVersion() int {
	if cur := m.current.Load(); cur != nil {
		return cur.Version() + 1
	}
	return 1
}

func (m *Manager) publish(next *model.Model) {
	m.current.Store(next)
	meta := next.Metadata()
	metrics.ModelVersion.Set(float64(meta.Version))
	metrics.ModelItems.Set(float64(meta.ItemCount))
	metrics.ModelTags.Set(float64(meta.TagCount))
}

func (m *Manager) setStatus(err error, elapsed time.Duration) {
	m.statusMu.Lock()
	m.lastErr = err
	m.lastBuild = elapsed
	m.statusMu.Unlock()
}
