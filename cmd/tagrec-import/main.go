// tagrec-import loads MovieLens-style CSV files into the configured store.
//
// Usage:
//
//	tagrec-import -items movies.csv -tags tags.csv -ratings ratings.csv -rebuild
//
// The database comes from config/<ENV>.yaml, as for the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tagrec/internal/config"
	"github.com/kailas-cloud/tagrec/internal/dataset"
	logpkg "github.com/kailas-cloud/tagrec/internal/logger"
	"github.com/kailas-cloud/tagrec/internal/repository/backend"
	snapshotrepo "github.com/kailas-cloud/tagrec/internal/repository/snapshot"
	"github.com/kailas-cloud/tagrec/internal/usecase/modelbuild"
)

func main() {
	opts := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		cancel()
		log.Fatal(err)
	}
}

type options struct {
	items     string
	tags      string
	ratings   string
	batchSize int
	rebuild   bool
}

func parseFlags() options {
	o := options{}
	flag.StringVar(&o.items, "items", "", "CSV of item ids (itemId,...), e.g. movies.csv")
	flag.StringVar(&o.tags, "tags", "", "CSV of tag applications (itemId,tag or userId,itemId,tag[,timestamp])")
	flag.StringVar(&o.ratings, "ratings", "", "CSV of ratings (userId,itemId,rating[,timestamp])")
	flag.IntVar(&o.batchSize, "batch-size", dataset.DefaultBatchSize, "rows per storage write")
	flag.BoolVar(&o.rebuild, "rebuild", false, "build the model and store a snapshot after import")
	flag.Parse()
	return o
}

func run(ctx context.Context, o options) error {
	if o.items == "" && o.tags == "" && o.ratings == "" {
		return fmt.Errorf("nothing to import: pass -items, -tags or -ratings")
	}
	start := time.Now()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := backend.Open(ctx, cfg.Database, cfg.Storage.KeyPrefix)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	defer store.Close()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	im := dataset.New(store.Tags, store.Ratings, logger).WithBatchSize(o.batchSize)

	stages := []struct {
		name string
		path string
		fn   func(context.Context, io.Reader) (dataset.Stats, error)
	}{
		{"items", o.items, im.ImportItems},
		{"tags", o.tags, im.ImportTags},
		{"ratings", o.ratings, im.ImportRatings},
	}
	for _, st := range stages {
		if st.path == "" {
			continue
		}
		if err := importFile(ctx, st.name, st.path, st.fn); err != nil {
			return err
		}
	}

	if o.rebuild {
		if err := rebuild(ctx, cfg, store, logger); err != nil {
			return err
		}
	}

	log.Printf("done in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

func importFile(
	ctx context.Context,
	name, path string,
	fn func(context.Context, io.Reader) (dataset.Stats, error),
) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open %s file: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	var size uint64
	if fi, err := f.Stat(); err == nil {
		size = uint64(fi.Size())
	}
	log.Printf("=== %s: %s (%s) ===", name, path, humanize.Bytes(size))

	began := time.Now()
	stats, err := fn(ctx, f)
	if err != nil {
		return fmt.Errorf("import %s: %w", name, err)
	}
	log.Printf("%s: %s rows, %s skipped, %s",
		name,
		humanize.Comma(int64(stats.Rows)),
		humanize.Comma(int64(stats.Skipped)),
		time.Since(began).Round(time.Millisecond),
	)
	return nil
}

func rebuild(ctx context.Context, cfg config.Config, store *backend.Backend, logger *zap.Logger) error {
	log.Println("=== model ===")
	snapshots := snapshotrepo.New(store.KV, cfg.Storage.KeyPrefix, nil, logger)
	builder := modelbuild.NewBuilder(store.Tags, cfg.Model.BuildWorkers, logger)
	manager := modelbuild.NewManager(builder, snapshots, logger)

	// Seed with the stored model so the version sequence continues.
	if _, err := snapshots.Load(ctx); err == nil {
		if _, err := manager.Warm(ctx); err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
	}
	meta, err := manager.Rebuild(ctx)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}
	log.Printf("model v%d: %s items, %s distinct tags",
		meta.Version, humanize.Comma(int64(meta.ItemCount)), humanize.Comma(int64(meta.TagCount)))
	return nil
}
