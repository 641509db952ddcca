package weather

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jask/salesboard/internal/dataset"
)

// Record is one daily station reading.
type Record struct {
	Date        string // YYYY-MM-DD as found in the file
	Station     string
	AvgTemp     float64
	Rain        float64  // blank means no rain
	Humidity    *float64 // nil when missing
	Consumption *float64 // nil when the column is absent or the cell is blank
}

// YearMonth returns the YYYY-MM prefix of Date.
func (r Record) YearMonth() string {
	if len(r.Date) < 7 {
		return r.Date
	}
	return r.Date[:7]
}

// Month is one station's aggregate over a calendar month.
type Month struct {
	Station          string   `json:"station"`
	YearMonth        string   `json:"year_month"`
	Days             int      `json:"days"`
	AvgTemp          float64  `json:"avg_temp"`
	TotalRain        *float64 `json:"total_rain"`
	AvgHumidity      *float64 `json:"avg_humidity"`
	TotalConsumption *float64 `json:"total_consumption"`
}

// LoadResult summarises one load.
type LoadResult struct {
	Loaded  int
	Skipped int
}

// Load reads the daily weather CSV. Rows without a date or a numeric average
// temperature are skipped and counted.
func Load(ctx context.Context, r io.Reader, cols dataset.WeatherColumns) ([]Record, LoadResult, error) {
	res := LoadResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err == io.EOF {
		return nil, res, fmt.Errorf("weather csv: empty file")
	}
	if err != nil {
		return nil, res, fmt.Errorf("weather csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, name := range []string{cols.Date, cols.Station, cols.AvgTemp} {
		if _, ok := idx[name]; !ok {
			return nil, res, fmt.Errorf("weather csv: missing column %q", name)
		}
	}
	get := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []Record
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
			continue
		}
		date := get(rec, cols.Date)
		temp, ok := number(get(rec, cols.AvgTemp))
		if date == "" || !ok {
			res.Skipped++
			continue
		}
		r := Record{
			Date:        date,
			Station:     get(rec, cols.Station),
			AvgTemp:     temp,
			Humidity:    optional(get(rec, cols.Humidity)),
			Consumption: optional(get(rec, cols.Consumption)),
		}
		if rain, ok := number(get(rec, cols.Rain)); ok {
			r.Rain = rain
		}
		out = append(out, r)
		res.Loaded++
	}
	return out, res, nil
}

func number(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func optional(s string) *float64 {
	v, ok := number(s)
	if !ok {
		return nil
	}
	return &v
}

type acc struct {
	month               Month
	tempSum, rainSum    float64
	humSum, consSum     float64
	humCount, consCount int
}

// Monthly groups records by station and year-month, keeping the order in
// which each group first appears.
func Monthly(records []Record) []Month {
	index := map[string]int{}
	var groups []*acc
	for _, r := range records {
		key := r.Station + "\x00" + r.YearMonth()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, &acc{month: Month{Station: r.Station, YearMonth: r.YearMonth()}})
		}
		g := groups[i]
		g.month.Days++
		g.tempSum += r.AvgTemp
		g.rainSum += r.Rain
		if r.Humidity != nil {
			g.humSum += *r.Humidity
			g.humCount++
		}
		if r.Consumption != nil {
			g.consSum += *r.Consumption
			g.consCount++
		}
	}

	out := make([]Month, 0, len(groups))
	for _, g := range groups {
		m := g.month
		m.AvgTemp = g.tempSum / float64(m.Days)
		m.TotalRain = ptr(g.rainSum)
		if g.humCount > 0 {
			m.AvgHumidity = ptr(g.humSum / float64(g.humCount))
		}
		if g.consCount > 0 {
			m.TotalConsumption = ptr(g.consSum)
		}
		out = append(out, m)
	}
	return out
}

func ptr(v float64) *float64 { return &v }

// Stations lists the distinct station names in first-seen order.
func Stations(months []Month) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range months {
		if !seen[m.Station] {
			seen[m.Station] = true
			out = append(out, m.Station)
		}
	}
	return out
}
