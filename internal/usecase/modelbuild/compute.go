package modelbuild

import (
	"math"

	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
)

// termFrequencies counts how many times each tag was applied to an item.
func termFrequencies(tags []string) tagvec.Vector {
	tf := tagvec.New(len(tags))
	for _, tag := range tags {
		tf.Add(tag, 1)
	}
	return tf
}

// addDocFrequencies increments df once for every distinct tag in tf.
func addDocFrequencies(df map[string]int, tf tagvec.Vector) {
	for tag := range tf {
		df[tag]++
	}
}

// mergeDocFrequencies folds a worker partial into the total.
func mergeDocFrequencies(total, partial map[string]int) {
	for tag, n := range partial {
		total[tag] += n
	}
}

// inverseDocFrequencies computes ln(n) - ln(df) for every tag.
func inverseDocFrequencies(df map[string]int, n int) map[string]float64 {
	idf := make(map[string]float64, len(df))
	logN := math.Log(float64(n))
	for tag, count := range df {
		idf[tag] = logN - math.Log(float64(count))
	}
	return idf
}

// weigh multiplies term frequencies by idf and L2-normalizes the result.
func weigh(tf tagvec.Vector, idf map[string]float64) tagvec.Vector {
	w := tagvec.New(len(tf))
	for tag, count := range tf {
		w[tag] = count * idf[tag]
	}
	return w.Normalized()
}

// Compute builds normalized TF-IDF vectors for an in-memory corpus.
// Every key of docs counts toward the corpus size, including items with no tags.
func Compute(docs map[int64][]string) map[int64]tagvec.Vector {
	tfs := make(map[int64]tagvec.Vector, len(docs))
	df := make(map[string]int)
	for item, tags := range docs {
		tf := termFrequencies(tags)
		tfs[item] = tf
		addDocFrequencies(df, tf)
	}

	idf := inverseDocFrequencies(df, len(docs))
	vectors := make(map[int64]tagvec.Vector, len(tfs))
	for item, tf := range tfs {
		vectors[item] = weigh(tf, idf)
	}
	return vectors
}
