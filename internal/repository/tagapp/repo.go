package tagapp

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/tagrec/internal/db"
	"github.com/kailas-cloud/tagrec/internal/domain"
)

// store is the consumer interface for tag applications (ISP).
type store interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
	RPush(ctx context.Context, key string, values ...string) error
	RPushMulti(ctx context.Context, items []db.ListPushItem) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo keeps the item universe in a set and each item's tag applications in a list.
type Repo struct {
	store  store
	prefix string
}

// New creates a tag application repository. An empty prefix selects domain.DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// ItemIDs returns every known item in ascending order, tagged or not.
func (r *Repo) ItemIDs(ctx context.Context) ([]int64, error) {
	members, err := r.store.SMembers(ctx, r.itemsKey())
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", r.itemsKey(), err)
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse item id %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// CountItems returns the size of the item universe.
func (r *Repo) CountItems(ctx context.Context) (int64, error) {
	n, err := r.store.SCard(ctx, r.itemsKey())
	if err != nil {
		return 0, fmt.Errorf("scard %s: %w", r.itemsKey(), err)
	}
	return n, nil
}

// TagApplications returns every application of a tag to item, repeats included.
func (r *Repo) TagApplications(ctx context.Context, item int64) ([]string, error) {
	key := r.tagsKey(item)
	tags, err := r.store.LRange(ctx, key, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}
	return tags, nil
}

// AddItems registers items without tagging them.
func (r *Repo) AddItems(ctx context.Context, items ...int64) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.store.SAdd(ctx, r.itemsKey(), formatIDs(items)...); err != nil {
		return fmt.Errorf("sadd %s: %w", r.itemsKey(), err)
	}
	return nil
}

// Apply records tag applications on item and registers the item.
func (r *Repo) Apply(ctx context.Context, item int64, tags ...string) error {
	if err := r.AddItems(ctx, item); err != nil {
		return err
	}
	key := r.tagsKey(item)
	if err := r.store.RPush(ctx, key, tags...); err != nil {
		return fmt.Errorf("rpush %s: %w", key, err)
	}
	return nil
}

// ApplyMany records tag applications for many items in one pipeline.
func (r *Repo) ApplyMany(ctx context.Context, apps map[int64][]string) error {
	if len(apps) == 0 {
		return nil
	}
	items := make([]int64, 0, len(apps))
	for item := range apps {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })

	if err := r.AddItems(ctx, items...); err != nil {
		return err
	}
	pushes := make([]db.ListPushItem, 0, len(items))
	for _, item := range items {
		pushes = append(pushes, db.ListPushItem{Key: r.tagsKey(item), Values: apps[item]})
	}
	if err := r.store.RPushMulti(ctx, pushes); err != nil {
		return fmt.Errorf("tag %d items: %w", len(items), err)
	}
	return nil
}

func (r *Repo) itemsKey() string { return r.prefix + "items" }

func (r *Repo) tagsKey(item int64) string {
	return r.prefix + "item_tags:" + strconv.FormatInt(item, 10)
}

func formatIDs(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return out
}
