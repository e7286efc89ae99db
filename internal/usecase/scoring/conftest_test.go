package scoring

import (
	"context"
	"time"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/model"
	"github.com/kailas-cloud/tagrec/internal/domain/rating"
	"github.com/kailas-cloud/tagrec/internal/domain/strategy"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
	"github.com/kailas-cloud/tagrec/internal/usecase/profile"
)

// --- Mocks ---

type mockRatings struct {
	byUser map[int64][]rating.Rating
	err    error
}

func (m *mockRatings) ForUser(_ context.Context, user int64) ([]rating.Rating, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byUser[user], nil
}

type mockModels struct {
	m *model.Model
}

func (m *mockModels) Current() (*model.Model, error) {
	if m.m == nil {
		return nil, domain.ErrModelNotReady
	}
	return m.m, nil
}

// --- Fixtures ---

const (
	itemA int64 = 1
	itemB int64 = 2
	itemC int64 = 3
	itemD int64 = 4

	userAlice int64 = 10
	userBob   int64 = 11
	userNone  int64 = 99
)

// twoItemModel is the normalized model of the corpus A={x,x,y}, B={y}.
func twoItemModel() *model.Model {
	return model.New(map[int64]tagvec.Vector{
		itemA: {"x": 1, "y": 0},
		itemB: {},
	}, 1, time.Unix(1700000000, 0).UTC())
}

func aliceRatings() *mockRatings {
	return &mockRatings{byUser: map[int64][]rating.Rating{
		userAlice: {
			{UserID: userAlice, ItemID: itemA, Value: 5.0},
			{UserID: userAlice, ItemID: itemB, Value: 1.0},
		},
	}}
}

func newService(t interface{ Fatalf(string, ...any) }, r RatingSource, m *model.Model, s strategy.Strategy) *Service {
	b, err := profile.New(s, profile.DefaultThreshold)
	if err != nil {
		t.Fatalf("profile builder: %v", err)
	}
	return New(r, &mockModels{m: m}, b, s)
}
