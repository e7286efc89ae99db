package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagrec/internal/domain/rating"
)

// DefaultBatchSize is the number of rows written per storage round-trip.
const DefaultBatchSize = 1000

// Stats summarizes one import.
type Stats struct {
	Rows    int
	Skipped int
}

// Importer loads item, tag and rating CSV files into storage.
type Importer struct {
	items     ItemWriter
	ratings   RatingWriter
	batchSize int
	logger    *zap.Logger
}

// New creates an Importer.
func New(items ItemWriter, ratings RatingWriter, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{items: items, ratings: ratings, batchSize: DefaultBatchSize, logger: logger}
}

// WithBatchSize configures the write batch size.
func (im *Importer) WithBatchSize(size int) *Importer {
	if size > 0 {
		im.batchSize = size
	}
	return im
}

// ImportItems reads rows whose first column is an item id (for example
// movies.csv: movieId,title,genres) and registers every item.
func (im *Importer) ImportItems(ctx context.Context, r io.Reader) (Stats, error) {
	rr := newRowReader(r)
	var st Stats
	batch := make([]int64, 0, im.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := im.items.AddItems(ctx, batch...); err != nil {
			return fmt.Errorf("add items: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for {
		rec, line, err := rr.next(0)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, err
		}
		id, err := parseID(rec[0])
		if err != nil {
			return st, rowError(line, "item id %q", rec[0])
		}
		batch = append(batch, id)
		st.Rows++
		if len(batch) >= im.batchSize {
			if err := flush(); err != nil {
				return st, err
			}
		}
	}
	if err := flush(); err != nil {
		return st, err
	}
	im.logger.Info("items imported", zap.Int("rows", st.Rows))
	return st, nil
}

// ImportTags reads tag applications. Two-column rows are itemId,tag;
// rows with three or more columns are userId,itemId,tag[,timestamp].
// Rows with an empty tag are skipped.
func (im *Importer) ImportTags(ctx context.Context, r io.Reader) (Stats, error) {
	rr := newRowReader(r)
	var st Stats
	batch := make(map[int64][]string)
	pending := 0

	flush := func() error {
		if pending == 0 {
			return nil
		}
		if err := im.items.ApplyMany(ctx, batch); err != nil {
			return fmt.Errorf("apply tags: %w", err)
		}
		batch = make(map[int64][]string)
		pending = 0
		return nil
	}

	for {
		rec, line, err := rr.next(0)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, err
		}

		itemCol, tagCol := 0, 1
		switch {
		case len(rec) < 2:
			return st, rowError(line, "expected at least 2 columns, got %d", len(rec))
		case len(rec) >= 3:
			itemCol, tagCol = 1, 2
		}

		item, err := parseID(rec[itemCol])
		if err != nil {
			return st, rowError(line, "item id %q", rec[itemCol])
		}
		tag := strings.TrimSpace(rec[tagCol])
		if tag == "" {
			st.Skipped++
			continue
		}

		batch[item] = append(batch[item], tag)
		pending++
		st.Rows++
		if pending >= im.batchSize {
			if err := flush(); err != nil {
				return st, err
			}
		}
	}
	if err := flush(); err != nil {
		return st, err
	}
	im.logger.Info("tag applications imported", zap.Int("rows", st.Rows), zap.Int("skipped", st.Skipped))
	return st, nil
}

// ImportRatings reads userId,itemId,rating[,timestamp] rows.
func (im *Importer) ImportRatings(ctx context.Context, r io.Reader) (Stats, error) {
	rr := newRowReader(r)
	var st Stats
	batch := make([]rating.Rating, 0, im.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := im.ratings.PutMany(ctx, batch); err != nil {
			return fmt.Errorf("put ratings: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for {
		rec, line, err := rr.next(0)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, err
		}
		if len(rec) < 3 {
			return st, rowError(line, "expected at least 3 columns, got %d", len(rec))
		}
		user, err := parseID(rec[0])
		if err != nil {
			return st, rowError(line, "user id %q", rec[0])
		}
		item, err := parseID(rec[1])
		if err != nil {
			return st, rowError(line, "item id %q", rec[1])
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return st, rowError(line, "rating %q", rec[2])
		}
		rt, err := rating.New(user, item, value)
		if err != nil {
			return st, fmt.Errorf("line %d: %w", line, err)
		}

		batch = append(batch, rt)
		st.Rows++
		if len(batch) >= im.batchSize {
			if err := flush(); err != nil {
				return st, err
			}
		}
	}
	if err := flush(); err != nil {
		return st, err
	}
	im.logger.Info("ratings imported", zap.Int("rows", st.Rows))
	return st, nil
}
