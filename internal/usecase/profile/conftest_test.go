package profile

import (
	"github.com/kailas-cloud/tagrec/internal/domain/rating"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

// mockVectors implements ItemVectors for tests.
type mockVectors map[int64]tagvec.Vector

func (m mockVectors) ItemVector(item int64) tagvec.Vector {
	if v, ok := m[item]; ok {
		return v
	}
	return tagvec.Vector{}
}

const (
	itemA int64 = 1
	itemB int64 = 2
	itemC int64 = 3
)

// twoItemModel is the normalized model of the corpus A={x,x,y}, B={y}.
func twoItemModel() mockVectors {
	return mockVectors{
		itemA: {"x": 1, "y": 0},
		itemB: {},
	}
}

func rate(item int64, value float64) rating.Rating {
	return rating.Rating{UserID: 7, ItemID: item, Value: value}
}
