// Package tagvec implements the sparse tag vector shared by the model, the
// user profiles and the scorer.
package tagvec

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Vector is a sparse mapping from tag to weight. Missing tags weigh zero.
//
// Vectors owned by a model.Model are shared between concurrent readers and
// must not be mutated; use Clone to get a private copy.
type Vector map[string]float64

// New creates an empty vector with room for n tags.
func New(n int) Vector {
	return make(Vector, n)
}

// Get returns the weight of tag (zero when absent).
func (v Vector) Get(tag string) float64 { return v[tag] }

// Has reports whether tag has an entry, even a zero one.
func (v Vector) Has(tag string) bool {
	_, ok := v[tag]
	return ok
}

// Len returns the number of entries.
func (v Vector) Len() int { return len(v) }

// Add accumulates w into tag, creating the entry when absent.
func (v Vector) Add(tag string, w float64) {
	v[tag] += w
}

// AddScaled accumulates every entry of other multiplied by factor.
func (v Vector) AddScaled(other Vector, factor float64) {
	for tag, w := range other {
		v[tag] += w * factor
	}
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	for tag, w := range v {
		c[tag] = w
	}
	return c
}

// Tags returns the tags in lexical order.
func (v Vector) Tags() []string {
	tags := make([]string, 0, len(v))
	for tag := range v {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Norm returns the Euclidean norm over all entries.
func (v Vector) Norm() float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v.values(), 2)
}

// Normalized returns v scaled to unit length.
// A zero-norm vector normalizes to an empty vector.
func (v Vector) Normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return Vector{}
	}
	out := make(Vector, len(v))
	for tag, w := range v {
		out[tag] = w / n
	}
	return out
}

// Dot sums the products over tags present in both vectors.
func (v Vector) Dot(other Vector) float64 {
	small, large := v, other
	if len(large) < len(small) {
		small, large = large, small
	}
	var sum float64
	for tag, w := range small {
		if ow, ok := large[tag]; ok {
			sum += w * ow
		}
	}
	return sum
}

// IsFinite reports whether every weight is neither NaN nor infinite.
func (v Vector) IsFinite() bool {
	for _, w := range v {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return false
		}
	}
	return true
}

// Cosine returns the cosine similarity of a and b. Both norms are computed
// from the vectors as given. ok is false when either norm is zero, in which
// case the similarity is undefined.
func Cosine(a, b Vector) (sim float64, ok bool) {
	na := a.Norm()
	if na == 0 {
		return 0, false
	}
	nb := b.Norm()
	if nb == 0 {
		return 0, false
	}
	return a.Dot(b) / (na * nb), true
}

func (v Vector) values() []float64 {
	vals := make([]float64, 0, len(v))
	for _, w := range v {
		vals = append(vals, w)
	}
	return vals
}
