package sales

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jask/salesboard/internal/dataset"
)

// Sex is the customer sex code of a sale. SexAll is the wildcard.
type Sex string

const (
	SexAll    Sex = "ALL"
	SexFemale Sex = "F"
	SexMale   Sex = "M"
)

// IsAll reports whether s imposes no constraint. The zero value counts as ALL.
func (s Sex) IsAll() bool { return s == SexAll || s == "" }

// Bucket is a small ordinal code for a coarse range (age bracket, weekday,
// hour-of-day slot). All (0) is the wildcard; real codes start at 1.
type Bucket int

const All Bucket = 0

// Observation is one decoded row of the point-of-sale table.
type Observation struct {
	Temperature int
	Humidity    int
	Category    string
	Amount      decimal.Decimal // in reporting units (raw / amount scale)
	Sex         Sex
	AgeBracket  Bucket // 1..9
	DayOfWeek   Bucket // 1..7, 1 = Monday
	HourBucket  Bucket // 1..10, 0 when the dataset has no hour column
}

// Equal reports whether two observations carry the same values.
func (o Observation) Equal(other Observation) bool {
	return o.Temperature == other.Temperature &&
		o.Humidity == other.Humidity &&
		o.Category == other.Category &&
		o.Amount.Equal(other.Amount) &&
		o.Sex == other.Sex &&
		o.AgeBracket == other.AgeBracket &&
		o.DayOfWeek == other.DayOfWeek &&
		o.HourBucket == other.HourBucket
}

var errNotNumeric = errors.New("not a number")

// DecodeError marks a row whose numeric field could not be parsed.
type DecodeError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: column %s: %q: %v", e.Line, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("column %s: %q: %v", e.Column, e.Value, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decoder turns raw CSV records into Observations using a resolved header.
type Decoder struct {
	cols  dataset.SalesColumns
	scale decimal.Decimal

	temp, humidity, category, amount, sex, age, day, hour int
}

// NewDecoder resolves the column positions named by cols in header. Every
// column except hour is required.
func NewDecoder(header []string, cols dataset.SalesColumns, amountScale float64) (*Decoder, error) {
	if amountScale <= 0 {
		return nil, fmt.Errorf("amount scale must be positive, got %v", amountScale)
	}
	pos := headerIndex(header)
	d := &Decoder{cols: cols, scale: decimal.NewFromFloat(amountScale), hour: -1}
	required := []struct {
		name string
		dst  *int
	}{
		{cols.Temperature, &d.temp},
		{cols.Humidity, &d.humidity},
		{cols.Category, &d.category},
		{cols.Amount, &d.amount},
		{cols.Sex, &d.sex},
		{cols.Age, &d.age},
		{cols.Day, &d.day},
	}
	for _, r := range required {
		i, ok := pos[r.name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", r.name)
		}
		*r.dst = i
	}
	if i, ok := pos[cols.Hour]; ok && cols.Hour != "" {
		d.hour = i
	}
	return d, nil
}

// HasHour reports whether the dataset carries an hour column.
func (d *Decoder) HasHour() bool { return d.hour >= 0 }

// Decode converts one record. It has no hidden state: the same record always
// yields the same Observation.
func (d *Decoder) Decode(record []string) (Observation, error) {
	var o Observation
	var err error
	if o.Temperature, err = d.roundField(record, d.temp, d.cols.Temperature); err != nil {
		return Observation{}, err
	}
	if o.Humidity, err = d.roundField(record, d.humidity, d.cols.Humidity); err != nil {
		return Observation{}, err
	}
	o.Category = field(record, d.category)
	raw := field(record, d.amount)
	amt, perr := decimal.NewFromString(strings.TrimSpace(raw))
	if perr != nil {
		return Observation{}, &DecodeError{Column: d.cols.Amount, Value: raw, Err: errNotNumeric}
	}
	o.Amount = amt.Div(d.scale)
	o.Sex = Sex(field(record, d.sex))
	if o.AgeBracket, err = d.bucketField(record, d.age, d.cols.Age); err != nil {
		return Observation{}, err
	}
	if o.DayOfWeek, err = d.bucketField(record, d.day, d.cols.Day); err != nil {
		return Observation{}, err
	}
	if d.hour >= 0 {
		if o.HourBucket, err = d.bucketField(record, d.hour, d.cols.Hour); err != nil {
			return Observation{}, err
		}
	}
	return o, nil
}

func (d *Decoder) roundField(record []string, idx int, name string) (int, error) {
	raw := field(record, idx)
	v, ok := parseNumber(raw)
	if !ok {
		return 0, &DecodeError{Column: name, Value: raw, Err: errNotNumeric}
	}
	return roundHalfUp(v), nil
}

func (d *Decoder) bucketField(record []string, idx int, name string) (Bucket, error) {
	raw := field(record, idx)
	v, ok := parseNumber(raw)
	if !ok || v != math.Trunc(v) {
		return 0, &DecodeError{Column: name, Value: raw, Err: errNotNumeric}
	}
	return Bucket(v), nil
}

func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// roundHalfUp rounds halves toward positive infinity (-2.5 -> -2, 2.5 -> 3),
// which is how the source dashboard bucketed its sliders.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func headerIndex(header []string) map[string]int {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	return pos
}
