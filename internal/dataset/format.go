package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ---------------------------------------------------------------------------
// Dataset column contract (TOML-based)
// ---------------------------------------------------------------------------

// SalesColumns names the header columns of the point-of-sale CSV.
type SalesColumns struct {
	Temperature string `toml:"temperature"`
	Humidity    string `toml:"humidity"`
	Category    string `toml:"category"`
	Amount      string `toml:"amount"`
	Sex         string `toml:"sex"`
	Age         string `toml:"age"`
	Day         string `toml:"day"`
	Hour        string `toml:"hour"` // optional; older exports have no hour column
}

// WeatherColumns names the header columns of the daily station weather CSV.
type WeatherColumns struct {
	Date        string `toml:"date"`
	Station     string `toml:"station"`
	AvgTemp     string `toml:"avg_temp"`
	Rain        string `toml:"rain"`
	Humidity    string `toml:"humidity"`
	Consumption string `toml:"consumption"` // optional
}

// Format is the top-level TOML structure of formats.toml.
type Format struct {
	AmountScale float64        `toml:"amount_scale"`
	Sales       SalesColumns   `toml:"sales"`
	Weather     WeatherColumns `toml:"weather"`
}

const defaultFormatTOML = `# salesboard dataset column names
# Header names as they appear in the source CSV files.

# Raw amounts are divided by this before display (10000 = reporting unit).
amount_scale = 10000

[sales]
temperature = "temp"
humidity = "humidity"
category = "card_tpbuz_nm_2"
amount = "amt"
sex = "sex"
age = "age"
day = "day"
hour = "hour"

[weather]
date = "일시"
station = "지점명"
avg_temp = "평균기온(°C)"
rain = "일강수량(mm)"
humidity = "평균 상대습도(%)"
consumption = "소비금액"
`

// Default returns the built-in format matching the source datasets.
func Default() Format {
	return Format{
		AmountScale: 10000,
		Sales: SalesColumns{
			Temperature: "temp",
			Humidity:    "humidity",
			Category:    "card_tpbuz_nm_2",
			Amount:      "amt",
			Sex:         "sex",
			Age:         "age",
			Day:         "day",
			Hour:        "hour",
		},
		Weather: WeatherColumns{
			Date:        "일시",
			Station:     "지점명",
			AvgTemp:     "평균기온(°C)",
			Rain:        "일강수량(mm)",
			Humidity:    "평균 상대습도(%)",
			Consumption: "소비금액",
		},
	}
}

// DefaultTOML returns the text written for a fresh formats.toml.
func DefaultTOML() string { return defaultFormatTOML }

// Load reads the format file at path. If the file doesn't exist it is created
// with the defaults.
func Load(path string) (Format, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return Default(), fmt.Errorf("create format dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultFormatTOML), 0o644); wErr != nil {
			return Default(), fmt.Errorf("write default format: %w", wErr)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read format: %w", err)
	}
	return Parse(data)
}

// Parse parses TOML bytes into a Format. Unset keys fall back to the defaults
// of the source data so a file may override only what differs.
func Parse(data []byte) (Format, error) {
	f := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
	if err != nil {
		return Format{}, fmt.Errorf("parse formats.toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Format{}, fmt.Errorf("parse formats.toml: unknown key %q", undecoded[0].String())
	}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

// Validate checks that every required column is named.
func (f Format) Validate() error {
	if f.AmountScale <= 0 {
		return fmt.Errorf("amount_scale must be positive, got %v", f.AmountScale)
	}
	required := []struct{ key, val string }{
		{"sales.temperature", f.Sales.Temperature},
		{"sales.humidity", f.Sales.Humidity},
		{"sales.category", f.Sales.Category},
		{"sales.amount", f.Sales.Amount},
		{"sales.sex", f.Sales.Sex},
		{"sales.age", f.Sales.Age},
		{"sales.day", f.Sales.Day},
		{"weather.date", f.Weather.Date},
		{"weather.station", f.Weather.Station},
		{"weather.avg_temp", f.Weather.AvgTemp},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			return fmt.Errorf("format: %s is required", r.key)
		}
	}
	return nil
}
