package scoring

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/model"
	"github.com/kailas-cloud/tagrec/internal/domain/rating"
	"github.com/kailas-cloud/tagrec/internal/domain/strategy"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

const eps = 1e-9

func TestScore_TwoItemScenario(t *testing.T) {
	for _, s := range []strategy.Strategy{strategy.Threshold, strategy.Weighted} {
		t.Run(string(s), func(t *testing.T) {
			svc := newService(t, aliceRatings(), twoItemModel(), s)

			scores, err := svc.Score(context.Background(), userAlice, []int64{itemA, itemB})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(scores) != 1 {
				t.Fatalf("expected only A scored, got %v", scores)
			}
			if math.Abs(scores[itemA]-1) > eps {
				t.Errorf("score(A) = %v, want 1", scores[itemA])
			}
			if _, ok := scores[itemB]; ok {
				t.Error("B has a zero vector and must be omitted")
			}
		})
	}
}

func TestScore_UserWithoutRatings(t *testing.T) {
	for _, s := range []strategy.Strategy{strategy.Threshold, strategy.Weighted} {
		t.Run(string(s), func(t *testing.T) {
			svc := newService(t, aliceRatings(), twoItemModel(), s)

			scores, err := svc.Score(context.Background(), userNone, []int64{itemA, itemB})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if scores == nil || len(scores) != 0 {
				t.Errorf("expected empty non-nil map, got %v", scores)
			}
		})
	}
}

func TestScore_NoQualifyingRatingsIsEmpty(t *testing.T) {
	r := &mockRatings{byUser: map[int64][]rating.Rating{
		userBob: {{UserID: userBob, ItemID: itemA, Value: 2}},
	}}
	svc := newService(t, r, twoItemModel(), strategy.Threshold)

	scores, err := svc.Score(context.Background(), userBob, []int64{itemA, itemB})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("zero profile should omit every item, got %v", scores)
	}
}

func TestScore_WeightedAllowsNegative(t *testing.T) {
	m := model.New(map[int64]tagvec.Vector{
		itemA: {"x": 1},
		itemC: {"z": 1},
		itemD: {"x": 0.6, "z": 0.8},
	}, 3, time.Now())
	r := &mockRatings{byUser: map[int64][]rating.Rating{
		userBob: {
			{UserID: userBob, ItemID: itemA, Value: 5},
			{UserID: userBob, ItemID: itemC, Value: 1},
		},
	}}
	svc := newService(t, r, m, strategy.Weighted)

	scores, err := svc.Score(context.Background(), userBob, []int64{itemA, itemC, itemD})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// profile = {x:2, z:-2}
	want := map[int64]float64{
		itemA: 1 / math.Sqrt2,
		itemC: -1 / math.Sqrt2,
		itemD: (1.2 - 1.6) / (math.Sqrt(8)),
	}
	for item, w := range want {
		if math.Abs(scores[item]-w) > eps {
			t.Errorf("score(%d) = %v, want %v", item, scores[item], w)
		}
		if scores[item] < -1-eps || scores[item] > 1+eps {
			t.Errorf("score(%d) = %v out of [-1,1]", item, scores[item])
		}
	}
}

func TestScore_ThresholdBoundedNonNegative(t *testing.T) {
	m := model.New(map[int64]tagvec.Vector{
		itemA: {"x": 0.6, "y": 0.8},
		itemC: {"y": 1},
		itemD: {"z": 1},
	}, 1, time.Now())
	r := &mockRatings{byUser: map[int64][]rating.Rating{
		userBob: {
			{UserID: userBob, ItemID: itemA, Value: 4},
			{UserID: userBob, ItemID: itemC, Value: 4.5},
		},
	}}
	svc := newService(t, r, m, strategy.Threshold)

	scores, _ := svc.Score(context.Background(), userBob, []int64{itemA, itemC, itemD})
	for item, sc := range scores {
		if sc < 0 || sc > 1+eps {
			t.Errorf("score(%d) = %v out of [0,1]", item, sc)
		}
	}
	if math.Abs(scores[itemD]) > eps {
		t.Errorf("disjoint item should score 0, got %v", scores[itemD])
	}
}

func TestScore_UnknownCandidateOmitted(t *testing.T) {
	svc := newService(t, aliceRatings(), twoItemModel(), strategy.Threshold)

	scores, err := svc.Score(context.Background(), userAlice, []int64{itemA, 404})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := scores[404]; ok {
		t.Error("unknown item must be omitted")
	}
}

func TestScore_RecordsUsage(t *testing.T) {
	svc := newService(t, aliceRatings(), twoItemModel(), strategy.Threshold)
	ctx, usage := domain.NewContextWithScoringUsage(context.Background())

	if _, err := svc.Score(ctx, userAlice, []int64{itemA, itemB, 404}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage.Candidates != 3 || usage.Scored != 1 || usage.Omitted != 2 {
		t.Errorf("unexpected usage %+v", usage)
	}
	if usage.ModelVersion != 1 {
		t.Errorf("expected model version 1, got %d", usage.ModelVersion)
	}
}

func TestScore_ModelNotReady(t *testing.T) {
	svc := newService(t, aliceRatings(), nil, strategy.Threshold)

	_, err := svc.Score(context.Background(), userAlice, []int64{itemA})
	if !errors.Is(err, domain.ErrModelNotReady) {
		t.Fatalf("expected ErrModelNotReady, got %v", err)
	}
}

func TestScore_RatingSourceError(t *testing.T) {
	r := &mockRatings{err: errors.New("connection reset")}
	svc := newService(t, r, twoItemModel(), strategy.Threshold)

	_, err := svc.Score(context.Background(), userAlice, []int64{itemA})
	if !errors.Is(err, r.err) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestProfile_Strategies(t *testing.T) {
	tests := []struct {
		strategy strategy.Strategy
		wantX    float64
	}{
		{strategy.Threshold, 1},
		{strategy.Weighted, 2},
	}
	for _, tc := range tests {
		t.Run(string(tc.strategy), func(t *testing.T) {
			svc := newService(t, aliceRatings(), twoItemModel(), tc.strategy)
			if svc.Strategy() != tc.strategy {
				t.Errorf("strategy = %q, want %q", svc.Strategy(), tc.strategy)
			}

			p, err := svc.Profile(context.Background(), userAlice)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Get("x") != tc.wantX || p.Get("y") != 0 {
				t.Errorf("profile = %v, want x=%v y=0", p, tc.wantX)
			}
		})
	}
}

func TestProfile_WeightedWithoutRatings(t *testing.T) {
	svc := newService(t, aliceRatings(), twoItemModel(), strategy.Weighted)

	_, err := svc.Profile(context.Background(), userNone)
	if !errors.Is(err, domain.ErrUndefinedMean) {
		t.Fatalf("expected ErrUndefinedMean, got %v", err)
	}
}

func TestProfile_ThresholdWithoutRatings(t *testing.T) {
	svc := newService(t, aliceRatings(), twoItemModel(), strategy.Threshold)

	p, err := svc.Profile(context.Background(), userNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("expected empty profile, got %v", p)
	}
}
