package modelbuild

import (
	"context"
	"sort"
	"sync"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/model"
)

// --- Corpus mock ---

type mockCorpus struct {
	docs    map[int64][]string
	listErr error
	tagsErr error
	// block, when set, is received from before ItemIDs returns.
	block   chan struct{}
	entered chan struct{}
}

func newCorpus(docs map[int64][]string) *mockCorpus {
	return &mockCorpus{docs: docs}
}

func (m *mockCorpus) ItemIDs(_ context.Context) ([]int64, error) {
	if m.entered != nil {
		m.entered <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	ids := make([]int64, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *mockCorpus) TagApplications(_ context.Context, item int64) ([]string, error) {
	if m.tagsErr != nil {
		return nil, m.tagsErr
	}
	return m.docs[item], nil
}

// --- Snapshot mock ---

type mockSnapshots struct {
	mu      sync.Mutex
	stored  *model.Model
	loadErr error
	saveErr error
	saves   int
}

func (m *mockSnapshots) Load(_ context.Context) (*model.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.stored == nil {
		return nil, domain.ErrNotFound
	}
	return m.stored, nil
}

func (m *mockSnapshots) Save(_ context.Context, mdl *model.Model) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = mdl
	return nil
}

// --- Fixtures ---

const (
	itemA int64 = 1
	itemB int64 = 2
	itemC int64 = 3
)

// twoItemDocs is the corpus A={x,x,y}, B={y}.
func twoItemDocs() map[int64][]string {
	return map[int64][]string{
		itemA: {"x", "x", "y"},
		itemB: {"y"},
	}
}
