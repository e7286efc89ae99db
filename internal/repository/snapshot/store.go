package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tagrec/internal/db"
	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/model"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

// store is the consumer interface for model snapshots (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// payload is the stored JSON form of a model.
type payload struct {
	Meta    model.Metadata          `json:"meta"`
	Vectors map[int64]tagvec.Vector `json:"vectors"`
}

// Store persists the served model as a single JSON document.
type Store struct {
	store      store
	key        string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a snapshot store. An empty prefix selects domain.DefaultKeyPrefix.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, prefix string, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Store {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		store:      s,
		key:        prefix + "model:snapshot",
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Load returns the stored model or domain.ErrNotFound when none exists.
func (s *Store) Load(ctx context.Context) (*model.Model, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			s.incCache("miss")
			return nil, fmt.Errorf("model snapshot: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		s.incCache("miss")
		return nil, fmt.Errorf("decode model snapshot: %w", err)
	}
	for item, v := range p.Vectors {
		if v == nil {
			p.Vectors[item] = tagvec.Vector{}
		}
	}
	s.incCache("hit")
	return model.Reconstruct(p.Vectors, p.Meta), nil
}

// Save replaces the stored snapshot with m.
func (s *Store) Save(ctx context.Context, m *model.Model) error {
	p := payload{Meta: m.Metadata(), Vectors: make(map[int64]tagvec.Vector, m.Len())}
	m.Each(func(item int64, v tagvec.Vector) {
		p.Vectors[item] = v
	})

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode model snapshot: %w", err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	s.logger.Debug("model snapshot saved",
		zap.Int("version", p.Meta.Version),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func (s *Store) incCache(result string) {
	if s.cacheTotal != nil {
		s.cacheTotal.WithLabelValues(result).Inc()
	}
}
