package httpapi

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jask/salesboard/internal/chart"
	"github.com/jask/salesboard/internal/sales"
	"github.com/jask/salesboard/internal/snapshot"
	"github.com/jask/salesboard/internal/weather"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"sales_rows":      s.data.Sales.Len(),
		"weather_months":  len(s.data.Months),
		"weather_enabled": s.data.WeatherErr == nil,
	})
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type filtersResponse struct {
	Temperature struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"temperature"`
	Humidities []int    `json:"humidities"`
	Sexes      []option `json:"sexes"`
	Ages       []option `json:"ages"`
	Days       []option `json:"days"`
	Hours      []option `json:"hours,omitempty"`
}

// handleFilters lists the selectable values. The humidity list follows the
// temp query parameter the same way the analysis view does.
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	sel, err := selectionFromRequest(r)
	if err != nil {
		Error(w, r, err)
		return
	}
	table := s.data.Sales
	resp := filtersResponse{Humidities: sales.HumidityDomain(table, sel.Temperature, sel.TemperatureAll)}
	if lo, hi, ok := table.TemperatureRange(); ok {
		resp.Temperature.Min, resp.Temperature.Max = lo, hi
	}
	resp.Sexes = []option{{Value: string(sales.SexAll), Label: sales.SexLabel(sales.SexAll)}}
	for _, sx := range sales.Sexes {
		resp.Sexes = append(resp.Sexes, option{Value: string(sx), Label: sales.SexLabel(sx)})
	}
	resp.Ages = bucketOptions(sales.AgeBrackets, sales.AgeLabel)
	resp.Days = bucketOptions(sales.Days, sales.DayLabel)
	if table.HasHour() {
		resp.Hours = bucketOptions(sales.Hours, sales.HourLabel)
	}
	JSON(w, http.StatusOK, resp)
}

func bucketOptions(codes []sales.Bucket, label func(sales.Bucket) string) []option {
	out := []option{{Value: sales.AllLabel, Label: label(sales.All)}}
	for _, b := range codes {
		out = append(out, option{Value: strconv.Itoa(int(b)), Label: label(b)})
	}
	return out
}

type rankingEntry struct {
	Rank     int             `json:"rank"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type rankingsResponse struct {
	Title      string              `json:"title"`
	Conditions snapshot.Conditions `json:"conditions"`
	Humidities []int               `json:"humidities"`
	Total      decimal.Decimal     `json:"total"`
	Rankings   []rankingEntry      `json:"rankings"`
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	view, err := s.evaluate(r)
	if err != nil {
		Error(w, r, err)
		return
	}
	resp := rankingsResponse{
		Title:      sales.ChartTitle(view.Selection),
		Conditions: snapshot.ConditionsOf(view.Selection),
		Humidities: view.Humidities,
		Total:      view.Ranked.Total(),
		Rankings:   make([]rankingEntry, 0, len(view.Ranked)),
	}
	for i, e := range view.Ranked {
		resp.Rankings = append(resp.Rankings, rankingEntry{Rank: i + 1, Category: e.Category, Amount: e.Total})
	}
	JSON(w, http.StatusOK, resp)
}

func (s *Server) handleRankingChart(w http.ResponseWriter, r *http.Request) {
	view, err := s.evaluate(r)
	if err != nil {
		Error(w, r, err)
		return
	}
	size, err := sizeFromRequest(r)
	if err != nil {
		Error(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderBarPNG(&buf, sales.ChartTitle(view.Selection), chart.Bar(view.Ranked), size); err != nil {
		Error(w, r, err)
		return
	}
	writePNG(w, buf.Bytes())
}

func (s *Server) evaluate(r *http.Request) (sales.View, error) {
	sel, err := selectionFromRequest(r)
	if err != nil {
		return sales.View{}, err
	}
	view, err := sales.EvaluateExplicit(s.data.Sales, sel)
	if err != nil {
		return sales.View{}, badRequest("invalid_query", err.Error())
	}
	return view, nil
}

func (s *Server) requireWeather() error {
	if s.data.WeatherErr != nil {
		return &apiError{Status: http.StatusServiceUnavailable, Code: "weather_unavailable", Message: s.data.WeatherErr.Error()}
	}
	return nil
}

func (s *Server) handleWeatherMonthly(w http.ResponseWriter, r *http.Request) {
	if err := s.requireWeather(); err != nil {
		Error(w, r, err)
		return
	}
	months := s.data.Months
	if st := r.URL.Query().Get("station"); st != "" {
		filtered := make([]weather.Month, 0, len(months))
		for _, m := range months {
			if m.Station == st {
				filtered = append(filtered, m)
			}
		}
		months = filtered
	}
	JSON(w, http.StatusOK, map[string]any{
		"stations": weather.Stations(s.data.Months),
		"months":   months,
	})
}

func (s *Server) handleWeatherScatter(w http.ResponseWriter, r *http.Request) {
	if err := s.requireWeather(); err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, http.StatusOK, chart.Scatter(s.data.Months, chart.ParseAxis(r.URL.Query().Get("axis"))))
}

func (s *Server) handleWeatherScatterPNG(w http.ResponseWriter, r *http.Request) {
	if err := s.requireWeather(); err != nil {
		Error(w, r, err)
		return
	}
	size, err := sizeFromRequest(r)
	if err != nil {
		Error(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderScatterPNG(&buf, chart.Scatter(s.data.Months, chart.ParseAxis(r.URL.Query().Get("axis"))), size); err != nil {
		Error(w, r, err)
		return
	}
	writePNG(w, buf.Bytes())
}

func (s *Server) handleWeatherLinesPNG(w http.ResponseWriter, r *http.Request) {
	if err := s.requireWeather(); err != nil {
		Error(w, r, err)
		return
	}
	size, err := sizeFromRequest(r)
	if err != nil {
		Error(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderLinesPNG(&buf, chart.Lines(s.data.Months), size); err != nil {
		Error(w, r, err)
		return
	}
	writePNG(w, buf.Bytes())
}

func (s *Server) requireSnapshots() error {
	if s.snapshots == nil {
		return &apiError{Status: http.StatusServiceUnavailable, Code: "snapshots_unavailable", Message: "snapshot storage is not configured"}
	}
	return nil
}

func (s *Server) handleSnapshotHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.requireSnapshots(); err != nil {
		Error(w, r, err)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			Error(w, r, badRequest("invalid_query", "limit must be a positive integer"))
			return
		}
		limit = n
	}
	hist, err := s.snapshots.History(r.Context(), limit)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"snapshots": hist})
}

// handleSnapshotExport writes an export file for the query's selection, the
// same as the analysis view's export.
func (s *Server) handleSnapshotExport(w http.ResponseWriter, r *http.Request) {
	if err := s.requireSnapshots(); err != nil {
		Error(w, r, err)
		return
	}
	view, err := s.evaluate(r)
	if err != nil {
		Error(w, r, err)
		return
	}
	res, err := s.snapshots.Export(r.Context(), view.Selection, view.Ranked)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, http.StatusCreated, map[string]any{
		"id":       res.RecordID,
		"path":     res.Path,
		"snapshot": res.Snapshot,
	})
}

// handleSnapshotPreview decodes an uploaded document and returns the ad
// board preview. Uploads are not recorded in the history.
func (s *Server) handleSnapshotPreview(w http.ResponseWriter, r *http.Request) {
	if err := s.requireSnapshots(); err != nil {
		Error(w, r, err)
		return
	}
	snap, err := snapshot.Decode(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		Error(w, r, err)
		return
	}
	icons, err := s.snapshots.Resolver(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	p := snapshot.BuildPreview(snap, icons)
	JSON(w, http.StatusOK, map[string]any{
		"preview": p,
		"banner":  p.BannerText(),
	})
}

func writePNG(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
