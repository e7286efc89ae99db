package tagapp

import (
	"context"

	"github.com/kailas-cloud/tagrec/internal/db"
)

// mockStore is an in-memory implementation of the consumer interface.
type mockStore struct {
	sets   map[string]map[string]struct{}
	lists  map[string][]string
	err    error
	pushes int
}

func newMockStore() *mockStore {
	return &mockStore{
		sets:  make(map[string]map[string]struct{}),
		lists: make(map[string][]string),
	}
}

func (m *mockStore) SAdd(_ context.Context, key string, members ...string) error {
	if m.err != nil {
		return m.err
	}
	s, ok := m.sets[key]
	if !ok {
		s = make(map[string]struct{})
		m.sets[key] = s
	}
	for _, mem := range members {
		s[mem] = struct{}{}
	}
	return nil
}

func (m *mockStore) SMembers(_ context.Context, key string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]string, 0, len(m.sets[key]))
	for mem := range m.sets[key] {
		out = append(out, mem)
	}
	return out, nil
}

func (m *mockStore) SCard(_ context.Context, key string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.sets[key])), nil
}

func (m *mockStore) RPush(_ context.Context, key string, values ...string) error {
	if m.err != nil {
		return m.err
	}
	m.pushes++
	m.lists[key] = append(m.lists[key], values...)
	return nil
}

func (m *mockStore) RPushMulti(ctx context.Context, items []db.ListPushItem) error {
	for _, item := range items {
		if err := m.RPush(ctx, item.Key, item.Values...); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockStore) LRange(_ context.Context, key string, _, _ int64) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]string(nil), m.lists[key]...), nil
}
