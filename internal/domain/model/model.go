package model

import (
	"sort"
	"time"

	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

// Metadata describes how and when a model was built.
type Metadata struct {
	Version   int       `json:"version"`
	BuiltAt   time.Time `json:"built_at"`
	ItemCount int       `json:"item_count"`
	TagCount  int       `json:"tag_count"`
}

// Model maps items to normalized TF-IDF tag vectors.
// A Model is immutable once built and safe for concurrent readers.
type Model struct {
	vectors map[int64]tagvec.Vector
	meta    Metadata
}

// New creates a model that takes ownership of vectors.
// ItemCount and TagCount are derived from the vectors.
func New(vectors map[int64]tagvec.Vector, version int, builtAt time.Time) *Model {
	if vectors == nil {
		vectors = make(map[int64]tagvec.Vector)
	}
	return &Model{
		vectors: vectors,
		meta: Metadata{
			Version:   version,
			BuiltAt:   builtAt,
			ItemCount: len(vectors),
			TagCount:  countTags(vectors),
		},
	}
}

// Reconstruct creates a model from stored data without recomputing metadata.
func Reconstruct(vectors map[int64]tagvec.Vector, meta Metadata) *Model {
	if vectors == nil {
		vectors = make(map[int64]tagvec.Vector)
	}
	return &Model{vectors: vectors, meta: meta}
}

// ItemVector returns the vector for item, or an empty vector for unknown items.
// The returned vector is shared and must not be mutated.
func (m *Model) ItemVector(item int64) tagvec.Vector {
	if v, ok := m.vectors[item]; ok {
		return v
	}
	return tagvec.Vector{}
}

// Has reports whether item belongs to the model's corpus.
func (m *Model) Has(item int64) bool {
	_, ok := m.vectors[item]
	return ok
}

// Len returns the number of items in the model.
func (m *Model) Len() int { return len(m.vectors) }

// Items returns the item identifiers in ascending order.
func (m *Model) Items() []int64 {
	ids := make([]int64, 0, len(m.vectors))
	for id := range m.vectors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Each calls fn for every item vector. Iteration order is unspecified.
func (m *Model) Each(fn func(item int64, v tagvec.Vector)) {
	for id, v := range m.vectors {
		fn(id, v)
	}
}

// Metadata returns the build metadata.
func (m *Model) Metadata() Metadata { return m.meta }

// Version returns the model version.
func (m *Model) Version() int { return m.meta.Version }

// WithVersion returns a model sharing the same vectors under a new version.
func (m *Model) WithVersion(version int, builtAt time.Time) *Model {
	meta := m.meta
	meta.Version = version
	meta.BuiltAt = builtAt
	return &Model{vectors: m.vectors, meta: meta}
}

func countTags(vectors map[int64]tagvec.Vector) int {
	seen := make(map[string]struct{})
	for _, v := range vectors {
		for tag := range v {
			seen[tag] = struct{}{}
		}
	}
	return len(seen)
}
