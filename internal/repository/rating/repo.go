package rating

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/tagrec/internal/db"
	"github.com/kailas-cloud/tagrec/internal/domain"
	domrating "github.com/kailas-cloud/tagrec/internal/domain/rating"
)

// store is the consumer interface for ratings (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
}

// Repo stores each user's ratings in one hash: field = item id, value = rating.
type Repo struct {
	store  store
	prefix string
}

// New creates a rating repository. An empty prefix selects domain.DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// ForUser returns the user's ratings ordered by item. Unknown users yield an empty slice.
func (r *Repo) ForUser(ctx context.Context, user int64) ([]domrating.Rating, error) {
	key := r.key(user)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}

	out := make([]domrating.Rating, 0, len(fields))
	for field, raw := range fields {
		item, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse item id %q in %s: %w", field, key, err)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse rating %q in %s: %w", raw, key, err)
		}
		rt, err := domrating.New(user, item, value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

// Put stores a single rating, replacing any previous value for the same item.
func (r *Repo) Put(ctx context.Context, rt domrating.Rating) error {
	key := r.key(rt.UserID)
	if err := r.store.HSet(ctx, key, map[string]string{itemField(rt.ItemID): formatValue(rt.Value)}); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// PutMany stores ratings grouped by user in one pipeline.
func (r *Repo) PutMany(ctx context.Context, ratings []domrating.Rating) error {
	if len(ratings) == 0 {
		return nil
	}
	byUser := make(map[int64]map[string]string)
	order := make([]int64, 0)
	for _, rt := range ratings {
		fields, ok := byUser[rt.UserID]
		if !ok {
			fields = make(map[string]string)
			byUser[rt.UserID] = fields
			order = append(order, rt.UserID)
		}
		fields[itemField(rt.ItemID)] = formatValue(rt.Value)
	}

	items := make([]db.HashSetItem, 0, len(order))
	for _, user := range order {
		items = append(items, db.HashSetItem{Key: r.key(user), Fields: byUser[user]})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("store %d ratings: %w", len(ratings), err)
	}
	return nil
}

// Delete removes the user's rating of item.
func (r *Repo) Delete(ctx context.Context, user, item int64) error {
	key := r.key(user)
	if err := r.store.HDel(ctx, key, itemField(item)); err != nil {
		return fmt.Errorf("hdel %s: %w", key, err)
	}
	return nil
}

func (r *Repo) key(user int64) string {
	return r.prefix + "ratings:" + strconv.FormatInt(user, 10)
}

func itemField(item int64) string { return strconv.FormatInt(item, 10) }

func formatValue(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
