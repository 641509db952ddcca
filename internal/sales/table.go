package sales

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jask/salesboard/internal/dataset"
)

// Table is the in-memory collection of decoded rows for one dataset. It is
// written once by Load or NewTable and is read-only afterwards, so it may be
// shared between goroutines.
type Table struct {
	rows    []Observation
	hasHour bool
}

// NewTable copies rows into a new Table.
func NewTable(rows []Observation) *Table {
	t := &Table{rows: make([]Observation, len(rows))}
	copy(t.rows, rows)
	for _, r := range t.rows {
		if r.HourBucket != All {
			t.hasHour = true
			break
		}
	}
	return t
}

// LoadResult summarises one load.
type LoadResult struct {
	Loaded  int
	Skipped int
	Errors  []error
}

// Load reads a header-first CSV and decodes every row. Rows with a malformed
// numeric field are skipped and reported in LoadResult.Errors; they never
// reach the Table. A missing required column fails the whole load.
func Load(ctx context.Context, r io.Reader, format dataset.Format) (*Table, LoadResult, error) {
	res := LoadResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err == io.EOF {
		return nil, res, fmt.Errorf("sales csv: empty file")
	}
	if err != nil {
		return nil, res, fmt.Errorf("sales csv header: %w", err)
	}
	dec, err := NewDecoder(header, format.Sales, format.AmountScale)
	if err != nil {
		return nil, res, fmt.Errorf("sales csv: %w", err)
	}

	t := &Table{hasHour: dec.HasHour()}
	for n := 1; ; n++ {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, res, err
			}
		}
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, err)
			continue
		}
		if isBlank(rec) {
			continue
		}
		o, err := dec.Decode(rec)
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.Line, _ = csvr.FieldPos(0)
			}
			res.Skipped++
			res.Errors = append(res.Errors, err)
			continue
		}
		t.rows = append(t.rows, o)
		res.Loaded++
	}
	return t, res, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if f != "" {
			return false
		}
	}
	return true
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// At returns row i.
func (t *Table) At(i int) Observation { return t.rows[i] }

// Each calls fn for every row in load order.
func (t *Table) Each(fn func(Observation)) {
	for _, r := range t.rows {
		fn(r)
	}
}

// HasHour reports whether rows carry an hour bucket.
func (t *Table) HasHour() bool { return t.hasHour }

// TemperatureRange returns the lowest and highest temperature in the table.
func (t *Table) TemperatureRange() (lo, hi int, ok bool) {
	if len(t.rows) == 0 {
		return 0, 0, false
	}
	lo, hi = t.rows[0].Temperature, t.rows[0].Temperature
	for _, r := range t.rows[1:] {
		lo = min(lo, r.Temperature)
		hi = max(hi, r.Temperature)
	}
	return lo, hi, true
}

// Categories lists the distinct categories in first-seen order.
func (t *Table) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range t.rows {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}
