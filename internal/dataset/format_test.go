package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefaultTOMLMatchesDefault(t *testing.T) {
	f, err := Parse([]byte(DefaultTOML()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f != Default() {
		t.Errorf("default TOML decoded to %+v, want %+v", f, Default())
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte(`
amount_scale = 1000

[sales]
category = "merchant"
hour = ""
`)
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.AmountScale != 1000 {
		t.Errorf("amount_scale = %v, want 1000", f.AmountScale)
	}
	if f.Sales.Category != "merchant" {
		t.Errorf("category = %q, want %q", f.Sales.Category, "merchant")
	}
	if f.Sales.Hour != "" {
		t.Errorf("hour = %q, want empty", f.Sales.Hour)
	}
	if f.Sales.Temperature != "temp" {
		t.Errorf("temperature = %q, want default %q", f.Sales.Temperature, "temp")
	}
	if f.Weather.Station != "지점명" {
		t.Errorf("station = %q, want default", f.Weather.Station)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad toml":      `amount_scale = [`,
		"zero scale":    `amount_scale = 0`,
		"unknown key":   "[sales]\ncolour = \"red\"",
		"blank column":  "[sales]\namount = \"  \"",
		"blank weather": "[weather]\ndate = \"\"",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "formats.toml")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f != Default() {
		t.Errorf("Load on missing file = %+v, want defaults", f)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default file not written: %v", err)
	}
	if !strings.Contains(string(data), "card_tpbuz_nm_2") {
		t.Error("written file does not contain default category column")
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	f, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.AmountScale != 10000 {
		t.Errorf("amount_scale = %v, want 10000", f.AmountScale)
	}
}
