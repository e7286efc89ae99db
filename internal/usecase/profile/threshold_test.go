package profile

import (
	"math"
	"testing"

	"github.com/kailas-cloud/tagrec/internal/domain/rating"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

func TestThreshold_OnlyQualifyingRatings(t *testing.T) {
	b := NewThreshold(DefaultThreshold)
	p, err := b.Build([]rating.Rating{rate(itemA, 5.0), rate(itemB, 1.0)}, twoItemModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Get("x") != 1 {
		t.Errorf("x = %v, want 1", p.Get("x"))
	}
	if p.Get("y") != 0 {
		t.Errorf("y = %v, want 0", p.Get("y"))
	}
}

func TestThreshold_BoundaryIsInclusive(t *testing.T) {
	model := mockVectors{itemA: {"x": 1}, itemC: {"z": 1}}
	b := NewThreshold(DefaultThreshold)

	p, _ := b.Build([]rating.Rating{rate(itemA, 3.5), rate(itemC, 3.49)}, model)
	if p.Get("x") != 1 {
		t.Errorf("rating equal to threshold should count, x = %v", p.Get("x"))
	}
	if p.Has("z") {
		t.Errorf("rating below threshold should be ignored, got %v", p)
	}
}

func TestThreshold_EqualWeight(t *testing.T) {
	model := mockVectors{itemA: {"x": 0.6, "y": 0.8}, itemC: {"x": 1}}
	b := NewThreshold(DefaultThreshold)

	// A 5-star and a 4-star rating contribute the same amount.
	p, _ := b.Build([]rating.Rating{rate(itemA, 5), rate(itemC, 4)}, model)
	if math.Abs(p.Get("x")-1.6) > 1e-12 {
		t.Errorf("x = %v, want 1.6", p.Get("x"))
	}
	if math.Abs(p.Get("y")-0.8) > 1e-12 {
		t.Errorf("y = %v, want 0.8", p.Get("y"))
	}
}

func TestThreshold_NoQualifyingRatings(t *testing.T) {
	b := NewThreshold(DefaultThreshold)
	for name, ratings := range map[string][]rating.Rating{
		"none":      nil,
		"all below": {rate(itemA, 1), rate(itemB, 3)},
	} {
		t.Run(name, func(t *testing.T) {
			p, err := b.Build(ratings, twoItemModel())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p == nil || p.Len() != 0 {
				t.Errorf("expected empty profile, got %v", p)
			}
		})
	}
}

func TestThreshold_UnknownItemIsZero(t *testing.T) {
	b := NewThreshold(DefaultThreshold)
	p, err := b.Build([]rating.Rating{rate(99, 5), rate(itemA, 4)}, twoItemModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Get("x") != 1 {
		t.Errorf("x = %v, want 1", p.Get("x"))
	}
}

func TestThreshold_DoesNotMutateModel(t *testing.T) {
	model := twoItemModel()
	b := NewThreshold(DefaultThreshold)
	_, _ = b.Build([]rating.Rating{rate(itemA, 5), rate(itemA, 5)}, model)

	if got := model[itemA].Get("x"); got != 1 {
		t.Errorf("model vector modified: x = %v", got)
	}
}

func TestThreshold_NonNegativeWeights(t *testing.T) {
	model := mockVectors{itemA: {"x": 0.3, "y": 0.95}, itemC: {"y": 0.2, "z": 0.98}}
	p, _ := NewThreshold(DefaultThreshold).Build(
		[]rating.Rating{rate(itemA, 4), rate(itemC, 5), rate(itemB, 0.5)}, model)
	for tag, w := range p {
		if w < 0 {
			t.Errorf("tag %s has negative weight %v", tag, w)
		}
	}
	var _ tagvec.Vector = p
}
