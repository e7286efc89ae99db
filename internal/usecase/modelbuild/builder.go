package modelbuild

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

// Builder computes TF-IDF item vectors from a Corpus using a bounded worker pool.
type Builder struct {
	corpus  Corpus
	workers int
	logger  *zap.Logger
}

// NewBuilder creates a Builder. workers <= 0 means runtime.NumCPU().
func NewBuilder(corpus Corpus, workers int, logger *zap.Logger) *Builder {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{corpus: corpus, workers: workers, logger: logger}
}

// Workers returns the size of the worker pool.
func (b *Builder) Workers() int { return b.workers }

// shard holds the term frequencies and partial document frequencies of one worker.
type shard struct {
	tfs map[int64]tagvec.Vector
	df  map[string]int
}

// Build reads the corpus and returns normalized vectors for every item.
func (b *Builder) Build(ctx context.Context) (map[int64]tagvec.Vector, error) {
	ids, err := b.corpus.ItemIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if len(ids) == 0 {
		return make(map[int64]tagvec.Vector), nil
	}

	workers := min(b.workers, len(ids))
	shards := make([]shard, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		shards[w] = shard{tfs: make(map[int64]tagvec.Vector), df: make(map[string]int)}
		g.Go(func() error {
			return b.countShard(gctx, ids, w, workers, &shards[w])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped per item
	}

	df := make(map[string]int)
	for i := range shards {
		mergeDocFrequencies(df, shards[i].df)
	}
	idf := inverseDocFrequencies(df, len(ids))

	vectors := make(map[int64]tagvec.Vector, len(ids))
	var mu sync.Mutex
	var weighers errgroup.Group
	for i := range shards {
		weighers.Go(func() error {
			local := make(map[int64]tagvec.Vector, len(shards[i].tfs))
			for item, tf := range shards[i].tfs {
				local[item] = weigh(tf, idf)
			}
			mu.Lock()
			for item, v := range local {
				vectors[item] = v
			}
			mu.Unlock()
			return nil
		})
	}
	_ = weighers.Wait()

	b.logger.Debug("model vectors computed",
		zap.Int("items", len(vectors)),
		zap.Int("tags", len(df)),
		zap.Int("workers", workers),
	)
	return vectors, nil
}

// countShard processes every workers-th item starting at offset.
func (b *Builder) countShard(ctx context.Context, ids []int64, offset, workers int, s *shard) error {
	for i := offset; i < len(ids); i += workers {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("build canceled: %w", err)
		}
		item := ids[i]
		tags, err := b.corpus.TagApplications(ctx, item)
		if err != nil {
			return fmt.Errorf("tags of item %d: %w", item, err)
		}
		tf := termFrequencies(tags)
		s.tfs[item] = tf
		addDocFrequencies(s.df, tf)
	}
	return nil
}
