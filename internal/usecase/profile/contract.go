package profile

import (
	"github.com/kailas-cloud/tagrec/internal/domain/rating"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

// Builder turns a user's rating history into a profile vector.
type Builder interface {
	Build(ratings []rating.Rating, model ItemVectors) (tagvec.Vector, error)
}

// ItemVectors looks up item vectors. Unknown items yield an empty vector.
type ItemVectors interface {
	ItemVector(item int64) tagvec.Vector
}
