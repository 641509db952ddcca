package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jask/salesboard/internal/service"
)

const defaultRequestTimeout = 30 * time.Second

// Server serves the read-mostly JSON and PNG API over the loaded datasets.
type Server struct {
	data      *service.Datasets
	snapshots *service.SnapshotService
	logger    *slog.Logger
	router    *chi.Mux
	http      *http.Server
}

// NewServer wires the router. snapshots may be nil, in which case the
// snapshot endpoints answer 503.
func NewServer(addr string, data *service.Datasets, snapshots *service.SnapshotService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{data: data, snapshots: snapshots, logger: logger, router: chi.NewRouter()}
	s.mountRoutes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) mountRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(RequestLogger(s.logger))
	s.router.Use(s.Recoverer)
	s.router.Use(middleware.Timeout(defaultRequestTimeout))

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/filters", s.handleFilters)
		r.Get("/rankings", s.handleRankings)
		r.Get("/rankings/chart.png", s.handleRankingChart)

		r.Route("/weather", func(r chi.Router) {
			r.Get("/monthly", s.handleWeatherMonthly)
			r.Get("/scatter", s.handleWeatherScatter)
			r.Get("/scatter.png", s.handleWeatherScatterPNG)
			r.Get("/lines.png", s.handleWeatherLinesPNG)
		})

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", s.handleSnapshotHistory)
			r.Post("/", s.handleSnapshotExport)
			r.Post("/preview", s.handleSnapshotPreview)
		})
	})
}

// ListenAndServe blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", s.http.Addr)
		errc <- s.http.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("api shutting down")
		return s.http.Shutdown(shutdownCtx)
	}
}
