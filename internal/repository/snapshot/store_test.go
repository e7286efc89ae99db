package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/model"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "snapshot_test_total"}, []string{"result"})
}

func TestSaveAndLoad(t *testing.T) {
	ms := newMockKVStore()
	counter := newCounter()
	s := New(ms, "", counter, nil)
	ctx := context.Background()

	builtAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := model.New(map[int64]tagvec.Vector{
		1: {"x": 1, "y": 0},
		2: {},
		3: {"z": 0.6, "w": 0.8},
	}, 4, builtAt)

	if err := s.Save(ctx, orig); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := ms.data["tagrec:model:snapshot"]; !ok {
		t.Fatal("expected snapshot under tagrec:model:snapshot")
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	gm, om := got.Metadata(), orig.Metadata()
	if gm.Version != om.Version || gm.ItemCount != om.ItemCount || gm.TagCount != om.TagCount {
		t.Errorf("metadata %+v, want %+v", gm, om)
	}
	if !gm.BuiltAt.Equal(om.BuiltAt) {
		t.Errorf("built_at %v, want %v", gm.BuiltAt, om.BuiltAt)
	}
	if got.Len() != 3 || !got.Has(2) {
		t.Errorf("expected 3 items including the empty one, got %v", got.Items())
	}
	if got.ItemVector(1).Get("x") != 1 || !got.ItemVector(1).Has("y") {
		t.Errorf("item 1 vector %v", got.ItemVector(1))
	}
	if got.ItemVector(3).Get("w") != 0.8 {
		t.Errorf("item 3 vector %v", got.ItemVector(3))
	}
	if got.ItemVector(2) == nil {
		t.Error("empty vector should decode as non-nil")
	}
	if hits := testutil.ToFloat64(counter.WithLabelValues("hit")); hits != 1 {
		t.Errorf("expected 1 hit, got %v", hits)
	}
}

func TestLoad_Missing(t *testing.T) {
	counter := newCounter()
	s := New(newMockKVStore(), "", counter, nil)

	_, err := s.Load(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if misses := testutil.ToFloat64(counter.WithLabelValues("miss")); misses != 1 {
		t.Errorf("expected 1 miss, got %v", misses)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	ms := newMockKVStore()
	ms.data["tagrec:model:snapshot"] = []byte("{not json")
	s := New(ms, "", nil, nil)

	_, err := s.Load(context.Background())
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestLoad_StoreError(t *testing.T) {
	ms := newMockKVStore()
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, context.DeadlineExceeded
	}
	_, err := New(ms, "", nil, nil).Load(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestSave_StoreError(t *testing.T) {
	ms := newMockKVStore()
	ms.setFn = func(_ context.Context, _ string, _ []byte) error {
		return errors.New("readonly replica")
	}
	err := New(ms, "", nil, nil).Save(context.Background(), model.New(nil, 1, time.Now()))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCustomPrefix(t *testing.T) {
	ms := newMockKVStore()
	s := New(ms, "staging:", nil, nil)
	_ = s.Save(context.Background(), model.New(nil, 1, time.Now()))
	if _, ok := ms.data["staging:model:snapshot"]; !ok {
		t.Errorf("expected key with custom prefix, got %v", ms.data)
	}
}
