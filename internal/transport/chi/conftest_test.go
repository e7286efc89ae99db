package chi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/model"
	"github.com/kailas-cloud/tagrec/internal/domain/strategy"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
	healthuc "github.com/kailas-cloud/tagrec/internal/usecase/health"
	"github.com/kailas-cloud/tagrec/internal/usecase/modelbuild"
)

// --- Mocks ---

type mockScorer struct {
	strategy strategy.Strategy
	scores   map[int64]float64
	profile  tagvec.Vector
	err      error

	gotUser  int64
	gotItems []int64
}

func (m *mockScorer) Score(ctx context.Context, user int64, items []int64) (map[int64]float64, error) {
	m.gotUser, m.gotItems = user, items
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[int64]float64)
	for _, id := range items {
		if s, ok := m.scores[id]; ok {
			out[id] = s
		}
	}
	domain.ScoringUsageFromContext(ctx).Record(len(items), len(out), 7)
	return out, nil
}

func (m *mockScorer) Profile(_ context.Context, user int64) (tagvec.Vector, error) {
	m.gotUser = user
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func (m *mockScorer) Strategy() strategy.Strategy {
	if m.strategy == "" {
		return strategy.Threshold
	}
	return m.strategy
}

type mockModels struct {
	current    *model.Model
	status     modelbuild.Status
	rebuildErr error
	rebuilds   int
}

func (m *mockModels) Current() (*model.Model, error) {
	if m.current == nil {
		return nil, domain.ErrModelNotReady
	}
	return m.current, nil
}

func (m *mockModels) Rebuild(_ context.Context) (model.Metadata, error) {
	m.rebuilds++
	if m.rebuildErr != nil {
		return model.Metadata{}, m.rebuildErr
	}
	return m.status.Meta, nil
}

func (m *mockModels) Status() modelbuild.Status { return m.status }

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

// --- Fixtures ---

var builtAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testModel() *model.Model {
	return model.New(map[int64]tagvec.Vector{
		1: {"funny": 0.8, "dark": 0.6},
		2: {},
	}, 7, builtAt)
}

type testEnv struct {
	scorer  *mockScorer
	models  *mockModels
	health  *mockHealth
	handler http.Handler
}

func newTestEnv(apiKeys ...string) *testEnv {
	env := &testEnv{
		scorer: &mockScorer{scores: map[int64]float64{1: 0.9, 3: 0.25}},
		models: &mockModels{current: testModel()},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{
				healthuc.ComponentDatabase: healthuc.CheckOK,
				healthuc.ComponentModel:    healthuc.CheckOK,
			},
		}},
	}
	srv := NewServer(env.scorer, env.models, env.health, zap.NewNop()).WithMaxCandidates(5)
	env.handler = NewRouter(srv, apiKeys, zap.NewNop())
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}
