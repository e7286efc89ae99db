package rating

import (
	"context"

	"github.com/kailas-cloud/tagrec/internal/db"
)

// mockHashStore is an in-memory implementation of the consumer interface.
type mockHashStore struct {
	data     map[string]map[string]string
	err      error
	multiLen int
}

func newMockHashStore() *mockHashStore {
	return &mockHashStore{data: make(map[string]map[string]string)}
}

func (m *mockHashStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.err != nil {
		return m.err
	}
	h, ok := m.data[key]
	if !ok {
		h = make(map[string]string)
		m.data[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *mockHashStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	m.multiLen = len(items)
	for _, item := range items {
		if err := m.HSet(ctx, item.Key, item.Fields); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockHashStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]string, len(m.data[key]))
	for k, v := range m.data[key] {
		out[k] = v
	}
	return out, nil
}

func (m *mockHashStore) HDel(_ context.Context, key string, fields ...string) error {
	if m.err != nil {
		return m.err
	}
	for _, f := range fields {
		delete(m.data[key], f)
	}
	return nil
}
