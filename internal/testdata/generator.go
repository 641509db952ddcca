package testdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jask/salesboard/internal/dataset"
)

// Categories used for synthetic sales, with a base weight and how strongly
// warm weather pushes them up (negative means cold weather does).
var categories = []struct {
	Name   string
	Base   float64
	Warmth float64
}{
	{"한식", 1.0, -0.2},
	{"커피/음료", 0.8, 0.6},
	{"고기요리", 0.7, -0.3},
	{"간이주점", 0.5, 0.3},
	{"일식/수산물", 0.4, 0.1},
	{"제과/제빵/떡/케익", 0.4, 0},
	{"닭/오리요리", 0.6, 0.2},
	{"분식", 0.5, -0.4},
	{"패스트푸드", 0.6, 0.1},
	{"별식/퓨전요리", 0.3, 0},
}

// Options controls generation. Zero values pick defaults.
type Options struct {
	Seed      int64
	SalesRows int
	Stations  []string
	StartYear int
	Years     int
}

func (o Options) withDefaults() Options {
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.SalesRows <= 0 {
		o.SalesRows = 5000
	}
	if len(o.Stations) == 0 {
		o.Stations = []string{"서울", "부산", "대구"}
	}
	if o.StartYear == 0 {
		o.StartYear = 2015
	}
	if o.Years <= 0 {
		o.Years = 3
	}
	return o
}

// WriteSales writes a point-of-sale CSV using the column names in cols.
func WriteSales(w io.Writer, cols dataset.SalesColumns, opts Options) error {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))
	cw := csv.NewWriter(w)
	header := []string{cols.Temperature, cols.Humidity, cols.Category, cols.Amount, cols.Sex, cols.Age, cols.Day}
	if cols.Hour != "" {
		header = append(header, cols.Hour)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < opts.SalesRows; i++ {
		temp := math.Round(rng.NormFloat64()*9+13) + float64(rng.Intn(10))/10
		temp = math.Max(-15, math.Min(35, temp))
		humidity := 30 + rng.Intn(14)*5
		cat := pickCategory(rng, temp)
		amount := int64(10000 + rng.Intn(200)*5000)
		sex := "F"
		if rng.Intn(2) == 1 {
			sex = "M"
		}
		rec := []string{
			strconv.FormatFloat(temp, 'f', 1, 64),
			strconv.Itoa(humidity),
			cat,
			strconv.FormatInt(amount, 10),
			sex,
			strconv.Itoa(1 + rng.Intn(9)),
			strconv.Itoa(1 + rng.Intn(7)),
		}
		if cols.Hour != "" {
			rec = append(rec, strconv.Itoa(1+rng.Intn(10)))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func pickCategory(rng *rand.Rand, temp float64) string {
	warm := (temp - 13) / 20
	weights := make([]float64, len(categories))
	total := 0.0
	for i, c := range categories {
		weights[i] = math.Max(0.05, c.Base+c.Warmth*warm)
		total += weights[i]
	}
	x := rng.Float64() * total
	for i, wt := range weights {
		if x < wt {
			return categories[i].Name
		}
		x -= wt
	}
	return categories[len(categories)-1].Name
}

// WriteWeather writes a daily station weather CSV covering opts.Years years.
func WriteWeather(w io.Writer, cols dataset.WeatherColumns, opts Options) error {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed + 1))
	cw := csv.NewWriter(w)
	header := []string{cols.Date, cols.Station, cols.AvgTemp, cols.Rain, cols.Humidity}
	if cols.Consumption != "" {
		header = append(header, cols.Consumption)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	start := time.Date(opts.StartYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(opts.Years, 0, 0)
	for si, station := range opts.Stations {
		offset := float64(si) * 1.5
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			season := -math.Cos(2 * math.Pi * float64(d.YearDay()-15) / 365)
			temp := 12.5 + offset + 14*season + rng.NormFloat64()*2.5
			rain := ""
			if rng.Float64() < 0.25+0.15*season {
				rain = strconv.FormatFloat(rng.ExpFloat64()*8, 'f', 1, 64)
			}
			humidity := 62 + 12*season + rng.NormFloat64()*8
			rec := []string{
				d.Format("2006-01-02"),
				station,
				strconv.FormatFloat(temp, 'f', 1, 64),
				rain,
				strconv.FormatFloat(math.Max(10, math.Min(100, humidity)), 'f', 1, 64),
			}
			if cols.Consumption != "" {
				spend := 1000 + 40*math.Abs(temp-18) + rng.NormFloat64()*120
				rec = append(rec, strconv.FormatFloat(math.Max(0, spend), 'f', 0, 64))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFiles writes sales.csv and weather.csv into dir.
func WriteFiles(dir string, format dataset.Format, opts Options) (salesPath, weatherPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	salesPath = filepath.Join(dir, "sales.csv")
	weatherPath = filepath.Join(dir, "weather.csv")
	if err := writeFile(salesPath, func(w io.Writer) error { return WriteSales(w, format.Sales, opts) }); err != nil {
		return "", "", fmt.Errorf("write sales: %w", err)
	}
	if err := writeFile(weatherPath, func(w io.Writer) error { return WriteWeather(w, format.Weather, opts) }); err != nil {
		return "", "", fmt.Errorf("write weather: %w", err)
	}
	return salesPath, weatherPath, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
