// Package backend opens the configured storage driver and exposes the
// repositories every binary needs: tag applications, ratings and a
// key-value store for model snapshots.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/tagrec/internal/config"
	"github.com/kailas-cloud/tagrec/internal/db"
	dbRedis "github.com/kailas-cloud/tagrec/internal/db/redis"
	domrating "github.com/kailas-cloud/tagrec/internal/domain/rating"
	ratingrepo "github.com/kailas-cloud/tagrec/internal/repository/rating"
	"github.com/kailas-cloud/tagrec/internal/repository/sqlite"
	tagrepo "github.com/kailas-cloud/tagrec/internal/repository/tagapp"
)

// Tags reads and writes the item corpus and its tag applications.
type Tags interface {
	ItemIDs(ctx context.Context) ([]int64, error)
	CountItems(ctx context.Context) (int64, error)
	TagApplications(ctx context.Context, item int64) ([]string, error)
	AddItems(ctx context.Context, items ...int64) error
	ApplyMany(ctx context.Context, apps map[int64][]string) error
}

// Ratings reads and writes explicit user ratings.
type Ratings interface {
	ForUser(ctx context.Context, user int64) ([]domrating.Rating, error)
	PutMany(ctx context.Context, ratings []domrating.Rating) error
}

// KV stores opaque blobs such as model snapshots.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type conn interface {
	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}

// Backend bundles the repositories of one storage driver.
type Backend struct {
	Driver  string
	Tags    Tags
	Ratings Ratings
	KV      KV

	conn conn
}

// Open connects to the driver named in cfg.
func Open(ctx context.Context, cfg config.DatabaseConfig, prefix string) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverRedis, "":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		return FromStore(store, prefix), nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return FromSQLite(store), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// FromStore builds a backend over a key-value store. Keys start with prefix.
func FromStore(store db.Store, prefix string) *Backend {
	return &Backend{
		Driver:  config.DriverRedis,
		Tags:    tagrepo.New(store, prefix),
		Ratings: ratingrepo.New(store, prefix),
		KV:      store,
		conn:    store,
	}
}

// FromSQLite builds a backend over one SQLite database.
func FromSQLite(store *sqlite.Store) *Backend {
	return &Backend{
		Driver:  config.DriverSQLite,
		Tags:    store,
		Ratings: store,
		KV:      store,
		conn:    store,
	}
}

// Ping checks connectivity.
func (b *Backend) Ping(ctx context.Context) error { return b.conn.Ping(ctx) }

// WaitForReady blocks until the database answers or timeout elapses.
func (b *Backend) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return b.conn.WaitForReady(ctx, timeout)
}

// Close releases the connection.
func (b *Backend) Close() { b.conn.Close() }
