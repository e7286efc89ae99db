package rating

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/tagrec/internal/domain"
)

// Rating is one explicit user judgement of an item.
type Rating struct {
	UserID int64   `json:"user_id"`
	ItemID int64   `json:"item_id"`
	Value  float64 `json:"rating"`
}

// New validates and creates a Rating.
func New(userID, itemID int64, value float64) (Rating, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Rating{}, fmt.Errorf("%w: value must be finite, got %v", domain.ErrInvalidRating, value)
	}
	return Rating{UserID: userID, ItemID: itemID, Value: value}, nil
}

// Values returns the rating values in input order.
func Values(ratings []Rating) []float64 {
	vals := make([]float64, len(ratings))
	for i, r := range ratings {
		vals[i] = r.Value
	}
	return vals
}
