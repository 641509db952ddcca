package snapshot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/salesboard/internal/sales"
)

func ranked(n int) sales.Ranked {
	out := make(sales.Ranked, n)
	for i := range out {
		out[i] = sales.Entry{
			Category: fmt.Sprintf("cat-%02d", i+1),
			Total:    decimal.NewFromInt(int64(1000 - i*10)),
		}
	}
	return out
}

func TestExportCarriesTopTenAndLabels(t *testing.T) {
	t.Parallel()
	sel := sales.FilterSelection{Temperature: 3, Humidity: 45, HasHumidity: true, Sex: sales.SexFemale, Day: 1}
	snap, err := Export(sel, ranked(12), time.Unix(1700000000, 0))
	require.NoError(t, err)

	require.Equal(t, Title, snap.Title)
	require.NotEmpty(t, snap.CreatedAt)
	require.Len(t, snap.TopRankings, TopN)
	require.Equal(t, Ranking{Rank: 1, Category: "cat-01", Amount: 1000}, snap.TopRankings[0])
	require.Equal(t, 10, snap.TopRankings[9].Rank)

	require.NotNil(t, snap.Conditions)
	require.Equal(t, Conditions{
		Temperature: "3",
		Humidity:    "45",
		Hour:        "ALL",
		Day:         "Monday",
		Sex:         "Female",
		Age:         "ALL",
	}, *snap.Conditions)
}

func TestExportEmptyResult(t *testing.T) {
	t.Parallel()
	_, err := Export(sales.NewSelection(), nil, time.Now())
	require.ErrorIs(t, err, ErrEmptyResult)
}

func TestFileNameUsesMilliseconds(t *testing.T) {
	t.Parallel()
	require.Equal(t, "simulation_data_1700000000123.json", FileName(time.UnixMilli(1700000000123)))
}

func TestRoundTripPreviewsTopEight(t *testing.T) {
	t.Parallel()
	now := time.UnixMilli(1700000000123)
	snap, err := Export(sales.FilterSelection{TemperatureAll: true, HumidityAll: true, Sex: sales.SexAll}, ranked(10), now)
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := Write(dir, snap, now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, FileName(now)), path)

	got, err := DecodeFile(path)
	require.NoError(t, err)
	require.Equal(t, snap, got)

	p := BuildPreview(got, NewIconResolver(DefaultIcons()))
	require.Len(t, p.Items, PreviewSlots)
	for i, item := range p.Items {
		require.Equal(t, i+1, item.Rank)
		require.Equal(t, snap.TopRankings[i].Category, item.Category)
		require.Equal(t, DefaultIcon, item.Icon)
	}
	require.Equal(t, "cat-01", p.Banner)
	require.Contains(t, p.Conditions, "Temperature: All")
}

func TestDecodeAcceptsForeignDocuments(t *testing.T) {
	t.Parallel()
	doc := `{"extra": true, "conditions": {"temperature": 5, "humidity": "ALL", "sex": "Male"},
		"top_10_rankings": [{"rank": 1, "category": "한식", "amount": 12.5}]}`
	snap, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, Label("5"), snap.Conditions.Temperature)

	p := BuildPreview(snap, NewIconResolver(DefaultIcons()))
	require.Equal(t, "./icons/korean.png", p.Items[0].Icon)
	require.Equal(t, []string{
		"Temperature: 5°C", "Humidity: All", "Hour: All", "Day: All", "Sex: Male", "Age: All",
	}, p.Conditions)

	snap, err = Decode(strings.NewReader(`{"top_10_rankings": []}`))
	require.NoError(t, err)
	p = BuildPreview(snap, nil)
	require.Empty(t, p.Items)
	require.Empty(t, p.Banner)
	require.Nil(t, p.Conditions)

	for name, tc := range map[string]struct {
		doc        string
		conditions []string
	}{
		"boolean label": {
			doc:        `{"top_10_rankings": [{"rank": 1, "category": "한식", "amount": 3}], "conditions": {"sex": true, "age": [2, 3]}}`,
			conditions: []string{"Temperature: All", "Humidity: All", "Hour: All", "Day: All", "Sex: true", "Age: [2 3]"},
		},
		"conditions not an object": {
			doc: `{"top_10_rankings": [{"rank": 1, "category": "한식", "amount": 3}], "conditions": "none"}`,
		},
		"rank as string": {
			doc: `{"top_10_rankings": [{"rank": "1", "category": "한식", "amount": "3"}]}`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			snap, err := Decode(strings.NewReader(tc.doc))
			require.NoError(t, err)
			require.Equal(t, []Ranking{{Rank: 1, Category: "한식", Amount: 3}}, snap.TopRankings)
			p := BuildPreview(snap, NewIconResolver(DefaultIcons()))
			require.Equal(t, tc.conditions, p.Conditions)
		})
	}

	snap, err = Decode(strings.NewReader(`{"top_10_rankings": [{"category": "분식"}, {"rank": "x", "category": "한식"}]}`))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, []int{snap.TopRankings[0].Rank, snap.TopRankings[1].Rank})
}

func TestDecodeRejects(t *testing.T) {
	t.Parallel()
	_, err := Decode(strings.NewReader(`{"title": "x"}`))
	require.ErrorIs(t, err, ErrMissingRankings)

	_, err = Decode(strings.NewReader(`{"top_10_rankings": null}`))
	require.ErrorIs(t, err, ErrMissingRankings)

	_, err = Decode(strings.NewReader(`not json`))
	require.ErrorIs(t, err, ErrMalformed)

	_, err = Decode(strings.NewReader(`[1, 2]`))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestIconResolver(t *testing.T) {
	t.Parallel()
	r := NewIconResolver(DefaultIcons())
	require.Equal(t, "./icons/coffee.png", r.Resolve("커피/음료"))
	require.Equal(t, "./icons/coffee.png", r.Resolve(" 커피 음료"))
	require.Equal(t, "./icons/fusion.png", r.Resolve("별식/퓨전 요리"))
	require.Equal(t, DefaultIcon, r.Resolve("양식"))
	require.Equal(t, DefaultIcon, r.Resolve(""))

	var nilResolver *IconResolver
	require.Equal(t, DefaultIcon, nilResolver.Resolve("한식"))
}

func TestWriteLeavesNoTempFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	snap, err := Export(sales.NewSelection(), ranked(1), time.UnixMilli(1))
	require.NoError(t, err)
	_, err = Write(dir, snap, time.UnixMilli(1))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))
	require.Contains(t, buf.String(), `"top_10_rankings"`)
}
