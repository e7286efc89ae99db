package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/tagrec/internal/db"
)

// RPush appends values to a list.
func (s *Store) RPush(ctx context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	cmd := s.b().Rpush().Key(key).Element(values...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpRPush, Err: err}
	}
	return nil
}

// RPushMulti appends to multiple lists in a single DoMulti round-trip.
func (s *Store) RPushMulti(ctx context.Context, items []db.ListPushItem) error {
	cmds := make([]rueidis.Completed, 0, len(items))
	keys := make([]string, 0, len(items))
	for _, item := range items {
		if len(item.Values) == 0 {
			continue
		}
		cmds = append(cmds, s.b().Rpush().Key(item.Key).Element(item.Values...).Build())
		keys = append(keys, item.Key)
	}
	if len(cmds) == 0 {
		return nil
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpRPush, Err: fmt.Errorf("key %s: %w", keys[i], err)}
		}
	}
	return nil
}

// LRange returns list elements between start and stop inclusive; -1 means the last element.
// A missing key yields an empty slice.
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cmd := s.b().Lrange().Key(key).Start(start).Stop(stop).Build()
	values, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	return values, nil
}
