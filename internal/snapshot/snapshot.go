package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jask/salesboard/internal/sales"
)

const (
	// TopN is how many ranked entries an export carries.
	TopN = 10
	// Title is written into every exported document.
	Title = "Sales ranking simulation data"
	// CreatedAtLayout formats created_at in local time.
	CreatedAtLayout = "2006-01-02 15:04:05"
)

var (
	ErrEmptyResult     = errors.New("snapshot: nothing to export, the current filters match no sales")
	ErrMissingRankings = errors.New("snapshot: document has no top_10_rankings")
	ErrMalformed       = errors.New("snapshot: malformed document")
)

// Label is a display string in the conditions block. Imported documents may
// carry numbers, booleans or anything else where strings are expected; every
// value decodes to its printed form.
type Label string

func (l *Label) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*l = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*l = Label(n.String())
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	*l = Label(fmt.Sprint(v))
	return nil
}

// Conditions is the human-readable rendering of a FilterSelection.
type Conditions struct {
	Temperature Label `json:"temperature"`
	Humidity    Label `json:"humidity"`
	Hour        Label `json:"hour"`
	Day         Label `json:"day"`
	Sex         Label `json:"sex"`
	Age         Label `json:"age"`
}

// Ranking is one exported entry, rank is 1-based.
type Ranking struct {
	Rank     int     `json:"rank"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// UnmarshalJSON accepts numbers written as strings. An unusable rank or
// amount decodes as 0.
func (r *Ranking) UnmarshalJSON(b []byte) error {
	var wire struct {
		Rank     Label `json:"rank"`
		Category Label `json:"category"`
		Amount   Label `json:"amount"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	rank, _ := strconv.Atoi(strings.TrimSpace(string(wire.Rank)))
	amount, _ := strconv.ParseFloat(strings.TrimSpace(string(wire.Amount)), 64)
	*r = Ranking{Rank: rank, Category: string(wire.Category), Amount: amount}
	return nil
}

// Snapshot is the portable export document.
type Snapshot struct {
	Title       string      `json:"title"`
	CreatedAt   string      `json:"created_at"`
	Conditions  *Conditions `json:"conditions,omitempty"`
	TopRankings []Ranking   `json:"top_10_rankings" validate:"required"`
}

// UnmarshalJSON keeps conditions only when they are an object. Rankings
// without a usable rank take their position.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var wire struct {
		Title       Label           `json:"title"`
		CreatedAt   Label           `json:"created_at"`
		Conditions  json.RawMessage `json:"conditions"`
		TopRankings []Ranking       `json:"top_10_rankings"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*s = Snapshot{Title: string(wire.Title), CreatedAt: string(wire.CreatedAt), TopRankings: wire.TopRankings}
	if raw := bytes.TrimSpace(wire.Conditions); len(raw) > 0 && raw[0] == '{' {
		var c Conditions
		if err := json.Unmarshal(raw, &c); err != nil {
			return err
		}
		s.Conditions = &c
	}
	for i := range s.TopRankings {
		if s.TopRankings[i].Rank <= 0 {
			s.TopRankings[i].Rank = i + 1
		}
	}
	return nil
}

// ConditionsOf renders sel with wildcards as "ALL" and codes as labels.
func ConditionsOf(sel sales.FilterSelection) Conditions {
	return Conditions{
		Temperature: Label(sales.TemperatureLabel(sel)),
		Humidity:    Label(sales.HumidityLabel(sel)),
		Hour:        Label(sales.HourLabel(sel.Hour)),
		Day:         Label(sales.DayLabel(sel.Day)),
		Sex:         Label(sales.SexLabel(sel.Sex)),
		Age:         Label(sales.AgeLabel(sel.Age)),
	}
}

// Export captures the first TopN entries of ranked under sel.
func Export(sel sales.FilterSelection, ranked sales.Ranked, now time.Time) (Snapshot, error) {
	if ranked.Empty() {
		return Snapshot{}, ErrEmptyResult
	}
	top := ranked.Top(TopN)
	cond := ConditionsOf(sel)
	snap := Snapshot{
		Title:       Title,
		CreatedAt:   now.Local().Format(CreatedAtLayout),
		Conditions:  &cond,
		TopRankings: make([]Ranking, len(top)),
	}
	for i, e := range top {
		snap.TopRankings[i] = Ranking{Rank: i + 1, Category: e.Category, Amount: e.Total.InexactFloat64()}
	}
	return snap, nil
}

// FileName is the export file name for a given instant.
func FileName(now time.Time) string {
	return "simulation_data_" + strconv.FormatInt(now.UnixMilli(), 10) + ".json"
}

// Encode writes snap as indented JSON.
func Encode(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(snap)
}

// Write saves snap into dir under FileName(now) and returns the full path.
func Write(dir string, snap Snapshot, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(now))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path, nil
}

var validate = validator.New()

// Decode parses any JSON document and accepts it only when it carries a
// top_10_rankings array. Nothing is returned on failure.
func Decode(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validate.Struct(snap); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return Snapshot{}, ErrMissingRankings
		}
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return snap, nil
}

// DecodeFile opens path and decodes it.
func DecodeFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	return Decode(f)
}
