// Package model holds the TF-IDF model: one normalized tag vector per item
// of a corpus snapshot. Models are passed explicitly so that several
// snapshots can coexist.
package model
