package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedRow is returned for rows that cannot be parsed.
var ErrMalformedRow = errors.New("malformed row")

// rowReader wraps csv.Reader with header skipping and line-numbered errors.
type rowReader struct {
	r     *csv.Reader
	first bool
}

func newRowReader(r io.Reader) *rowReader {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1 // titles may contain quoted commas
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &rowReader{r: cr, first: true}
}

// next returns the next data row, its line number, or io.EOF.
// A first row whose id column is not numeric is treated as a header.
func (rr *rowReader) next(idCol int) ([]string, int, error) {
	for {
		rec, err := rr.r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, 0, io.EOF
			}
			return nil, 0, fmt.Errorf("read csv: %w", err)
		}
		line, _ := rr.r.FieldPos(0)
		first := rr.first
		rr.first = false

		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if first && len(rec) > idCol {
			if _, err := parseID(rec[idCol]); err != nil {
				continue
			}
		}
		return rec, line, nil
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", s, err)
	}
	return id, nil
}

func rowError(line int, format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", line, fmt.Sprintf(format, args...), ErrMalformedRow)
}
