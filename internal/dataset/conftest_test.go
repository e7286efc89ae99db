package dataset

import (
	"context"

	"github.com/kailas-cloud/tagrec/internal/domain/rating"
)

type mockItemWriter struct {
	items      []int64
	apps       map[int64][]string
	addCalls   int
	applyCalls int
	err        error
}

func newMockItemWriter() *mockItemWriter {
	return &mockItemWriter{apps: make(map[int64][]string)}
}

func (m *mockItemWriter) AddItems(_ context.Context, items ...int64) error {
	if m.err != nil {
		return m.err
	}
	m.addCalls++
	m.items = append(m.items, items...)
	return nil
}

func (m *mockItemWriter) ApplyMany(_ context.Context, apps map[int64][]string) error {
	if m.err != nil {
		return m.err
	}
	m.applyCalls++
	for item, tags := range apps {
		m.apps[item] = append(m.apps[item], tags...)
	}
	return nil
}

type mockRatingWriter struct {
	ratings []rating.Rating
	calls   int
	err     error
}

func (m *mockRatingWriter) PutMany(_ context.Context, ratings []rating.Rating) error {
	if m.err != nil {
		return m.err
	}
	m.calls++
	m.ratings = append(m.ratings, ratings...)
	return nil
}
