package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/salesboard/internal/database"
	"github.com/jask/salesboard/internal/database/repository"
	"github.com/jask/salesboard/internal/sales"
	"github.com/jask/salesboard/internal/service"
	"github.com/jask/salesboard/internal/weather"
)

func ptr(v float64) *float64 { return &v }

func testData() *service.Datasets {
	return &service.Datasets{
		Sales: sales.NewTable([]sales.Observation{
			{Temperature: 0, Humidity: 50, Category: "한식", Amount: decimal.NewFromInt(30), Sex: sales.SexFemale, AgeBracket: 2, DayOfWeek: 1, HourBucket: 3},
			{Temperature: 0, Humidity: 50, Category: "분식", Amount: decimal.NewFromInt(20), Sex: sales.SexMale, AgeBracket: 3, DayOfWeek: 2, HourBucket: 4},
			{Temperature: 2, Humidity: 70, Category: "양식", Amount: decimal.NewFromInt(10), Sex: sales.SexFemale, AgeBracket: 2, DayOfWeek: 3, HourBucket: 3},
		}),
		Months: []weather.Month{
			{Station: "서울", YearMonth: "2020-01", AvgTemp: -2, TotalRain: ptr(10), AvgHumidity: ptr(60), TotalConsumption: ptr(100)},
			{Station: "서울", YearMonth: "2020-07", AvgTemp: 26, TotalRain: ptr(300), AvgHumidity: ptr(80), TotalConsumption: ptr(140)},
			{Station: "부산", YearMonth: "2020-04", AvgTemp: 14, TotalRain: ptr(80), TotalConsumption: ptr(95)},
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (*Server, *service.SnapshotService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "api.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(context.Background(), db))

	svc := &service.SnapshotService{
		Snapshots:     repository.NewSnapshotRepo(db),
		Categories:    repository.NewCategoryRepo(db),
		Dir:           t.TempDir(),
		Logger:        quietLogger(),
		Now:           func() time.Time { return time.UnixMilli(1700000000000) },
		LoadOverrides: func() (map[string]string, error) { return nil, nil },
	}
	return NewServer(":0", testData(), svc, quietLogger()), svc
}

func do(t *testing.T, s *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	require.Equal(t, "ok", body["status"])
	require.EqualValues(t, 3, body["sales_rows"])
	require.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestRankingsFollowQuery(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/v1/rankings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[rankingsResponse](t, rec)
	require.Len(t, body.Rankings, 2)
	require.Equal(t, "한식", body.Rankings[0].Category)
	require.Equal(t, 1, body.Rankings[0].Rank)
	require.True(t, body.Total.Equal(decimal.NewFromInt(50)))
	require.Equal(t, []int{50}, body.Humidities)
	require.EqualValues(t, "50", body.Conditions.Humidity)

	rec = do(t, s, http.MethodGet, "/v1/rankings?temp=all&humidity=all&sex=F", nil)
	body = decode[rankingsResponse](t, rec)
	require.Len(t, body.Rankings, 2)
	require.Equal(t, "양식", body.Rankings[1].Category)
	require.EqualValues(t, "ALL", body.Conditions.Temperature)

	rec = do(t, s, http.MethodGet, "/v1/rankings?temp=40", nil)
	body = decode[rankingsResponse](t, rec)
	require.Empty(t, body.Rankings)
	require.EqualValues(t, "N/A", body.Conditions.Humidity)
}

func TestRankingsRejectBadQuery(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/v1/rankings?age=99", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[APIErrorResponse](t, rec)
	require.Equal(t, "invalid_query", body.Error.Code)
	require.NotEmpty(t, body.Error.RequestID)

	rec = do(t, s, http.MethodGet, "/v1/rankings?temp=0&humidity=70", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = decode[APIErrorResponse](t, rec)
	require.Equal(t, "invalid_query", body.Error.Code)
	require.Contains(t, body.Error.Message, "humidity: 70")

	rec = do(t, s, http.MethodPost, "/v1/snapshots?temp=0&humidity=70", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/v1/rankings?day=0", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilters(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/v1/filters?temp=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[filtersResponse](t, rec)
	require.Equal(t, 0, body.Temperature.Min)
	require.Equal(t, 2, body.Temperature.Max)
	require.Equal(t, []int{70}, body.Humidities)
	require.Len(t, body.Sexes, 3)
	require.Len(t, body.Ages, 10)
	require.Len(t, body.Hours, 11)
	require.Equal(t, "ALL", body.Days[0].Value)
}

func TestChartEndpoints(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/v1/rankings/chart.png?w=400&h=300", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(t, s, http.MethodGet, "/v1/rankings/chart.png?temp=40", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "no_data", decode[APIErrorResponse](t, rec).Error.Code)

	rec = do(t, s, http.MethodGet, "/v1/rankings/chart.png?w=5", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	for _, target := range []string{"/v1/weather/scatter.png?axis=totalRain", "/v1/weather/lines.png"} {
		rec = do(t, s, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rec.Code, target)
		require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")), target)
	}
}

func TestWeatherEndpoints(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/v1/weather/monthly?station="+url.QueryEscape("서울"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Stations []string        `json:"stations"`
		Months   []weather.Month `json:"months"`
	}](t, rec)
	require.Equal(t, []string{"서울", "부산"}, body.Stations)
	require.Len(t, body.Months, 2)

	rec = do(t, s, http.MethodGet, "/v1/weather/scatter?axis=avgHumidity", nil)
	scatter := decode[map[string]any](t, rec)
	require.Len(t, scatter["x"], 2, "the month without humidity is dropped")
	require.Equal(t, []any{"#3498db", "#e74c3c"}, scatter["colors"])

	s.data.WeatherErr = errors.New("open weather dataset: no such file")
	rec = do(t, s, http.MethodGet, "/v1/weather/monthly", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "weather_unavailable", decode[APIErrorResponse](t, rec).Error.Code)
}

func TestSnapshotExportAndHistory(t *testing.T) {
	t.Parallel()
	s, svc := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/snapshots?temp=all&humidity=all", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	require.Equal(t, filepath.Join(svc.Dir, "simulation_data_1700000000000.json"), created["path"])

	rec = do(t, s, http.MethodPost, "/v1/snapshots?temp=40", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "empty_result", decode[APIErrorResponse](t, rec).Error.Code)

	rec = do(t, s, http.MethodGet, "/v1/snapshots", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	hist := decode[struct {
		Snapshots []repository.SnapshotRecord `json:"snapshots"`
	}](t, rec)
	require.Len(t, hist.Snapshots, 1)
	require.Equal(t, "한식", hist.Snapshots[0].TopCategory)
	require.Equal(t, 3, hist.Snapshots[0].Entries)

	rec = do(t, s, http.MethodGet, "/v1/snapshots?limit=zero", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnapshotPreview(t *testing.T) {
	t.Parallel()
	s, svc := newTestServer(t)

	doc := `{"title":"t","top_10_rankings":[{"rank":1,"category":"한식","amount":3},{"rank":2,"category":"수상한 카테고리","amount":1}],
		"conditions":{"temperature":5,"humidity":"ALL","hour":"ALL","day":"ALL","sex":"ALL","age":"ALL"}}`
	rec := do(t, s, http.MethodPost, "/v1/snapshots/preview", strings.NewReader(doc))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[struct {
		Preview struct {
			Items []struct {
				Category string `json:"category"`
				Icon     string `json:"icon"`
			} `json:"items"`
			Conditions []string `json:"conditions"`
		} `json:"preview"`
		Banner string `json:"banner"`
	}](t, rec)
	require.Len(t, body.Preview.Items, 2)
	require.Equal(t, "/icons/default_food.png", body.Preview.Items[1].Icon)
	require.Contains(t, body.Preview.Conditions, "Temperature: 5°C")
	require.Contains(t, body.Banner, "한식")

	rec = do(t, s, http.MethodPost, "/v1/snapshots/preview", strings.NewReader(`{"title":"t"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_snapshot", decode[APIErrorResponse](t, rec).Error.Code)

	rec = do(t, s, http.MethodPost, "/v1/snapshots/preview", strings.NewReader(`not json`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	big := `{"top_10_rankings":[],"pad":"` + strings.Repeat("x", maxRequestBodySize) + `"}`
	rec = do(t, s, http.MethodPost, "/v1/snapshots/preview", strings.NewReader(big))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, "body_too_large", decode[APIErrorResponse](t, rec).Error.Code)

	hist, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, hist, "previews are not recorded")
}

func TestSnapshotsUnavailableWithoutService(t *testing.T) {
	t.Parallel()
	s := NewServer(":0", testData(), nil, quietLogger())
	rec := do(t, s, http.MethodGet, "/v1/snapshots", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecovererWritesJSON(t *testing.T) {
	t.Parallel()
	s := NewServer(":0", testData(), nil, quietLogger())
	s.router.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	rec := do(t, s, http.MethodGet, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[APIErrorResponse](t, rec)
	require.Equal(t, "internal", body.Error.Code)
	require.NotContains(t, body.Error.Message, "boom")
}
