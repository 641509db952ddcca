package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jask/salesboard/internal/dataset"
	"github.com/jask/salesboard/internal/sales"
	"github.com/jask/salesboard/internal/weather"
)

// Datasets is everything loaded at startup. The sales table is required;
// the weather side is optional and carries its own error for the weather view.
type Datasets struct {
	Sales       *sales.Table
	SalesResult sales.LoadResult

	Months        []weather.Month
	WeatherResult weather.LoadResult
	WeatherErr    error
}

// DatasetService loads the source CSV files.
type DatasetService struct {
	Format dataset.Format
	Logger *slog.Logger
}

func (s *DatasetService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Load reads both files concurrently. A sales failure fails the load; a
// weather failure is recorded in Datasets.WeatherErr.
func (s *DatasetService) Load(ctx context.Context, salesPath, weatherPath string) (*Datasets, error) {
	out := &Datasets{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		f, err := os.Open(salesPath)
		if err != nil {
			return fmt.Errorf("open sales dataset: %w", err)
		}
		defer f.Close()
		table, res, err := sales.Load(gctx, f, s.Format)
		if err != nil {
			return fmt.Errorf("load %s: %w", salesPath, err)
		}
		out.Sales, out.SalesResult = table, res
		s.logger().Info("sales dataset loaded",
			"path", salesPath, "rows", res.Loaded, "skipped", res.Skipped, "took", time.Since(start))
		for i, e := range res.Errors {
			if i == 5 {
				s.logger().Warn("more invalid sales rows omitted", "count", len(res.Errors)-i)
				break
			}
			s.logger().Warn("invalid sales row", "err", e)
		}
		return nil
	})

	if weatherPath != "" {
		g.Go(func() error {
			months, res, err := s.loadWeather(gctx, weatherPath)
			if err != nil {
				out.WeatherErr = err
				s.logger().Warn("weather dataset unavailable", "path", weatherPath, "err", err)
				return nil
			}
			out.Months, out.WeatherResult = months, res
			s.logger().Info("weather dataset loaded",
				"path", weatherPath, "rows", res.Loaded, "skipped", res.Skipped, "months", len(months))
			return nil
		})
	} else {
		out.WeatherErr = fmt.Errorf("no weather dataset configured")
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DatasetService) loadWeather(ctx context.Context, path string) ([]weather.Month, weather.LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, weather.LoadResult{}, fmt.Errorf("open weather dataset: %w", err)
	}
	defer f.Close()
	recs, res, err := weather.Load(ctx, f, s.Format.Weather)
	if err != nil {
		return nil, res, fmt.Errorf("load %s: %w", path, err)
	}
	return weather.Monthly(recs), res, nil
}
