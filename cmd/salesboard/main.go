package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jask/salesboard/internal/config"
	"github.com/jask/salesboard/internal/database"
	"github.com/jask/salesboard/internal/database/repository"
	"github.com/jask/salesboard/internal/dataset"
	"github.com/jask/salesboard/internal/service"
)

const usage = `usage: salesboard [command] [flags]

commands:
  tui      interactive dashboard (default)
  serve    JSON/PNG API over the loaded datasets
  export   rank sales for the given filters and write a snapshot
  demo     write synthetic sales.csv and weather.csv
  init     write the default config and column format files
  icon     set or clear a category icon override
`

func main() {
	// .env is optional; real env vars win over it
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("salesboard: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	name := "tui"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	switch name {
	case "tui":
		return runTUI(ctx, args, stderr)
	case "serve":
		return runServe(ctx, args, stderr)
	case "export":
		return runExport(ctx, args, stdout, stderr)
	case "demo":
		return runDemo(args, stdout, stderr)
	case "init":
		return runInit(args, stdout, stderr)
	case "icon":
		return runIcon(args, stdout, stderr)
	case "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", name)
	}
}

// app bundles what every data-backed command needs.
type app struct {
	cfg    config.Config
	format dataset.Format
	logger *slog.Logger

	db          *sql.DB
	snapshots   *service.SnapshotService
	maintenance *service.MaintenanceService
}

func loadConfig() (config.Config, dataset.Format, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, dataset.Format{}, fmt.Errorf("load config: %w", err)
	}
	format, err := dataset.Load(cfg.Data.FormatPath)
	if err != nil {
		return config.Config{}, dataset.Format{}, fmt.Errorf("load column format: %w", err)
	}
	return cfg, format, nil
}

// open migrates and opens the history database and builds the services.
func open(ctx context.Context, cfg config.Config, format dataset.Format, logger *slog.Logger) (*app, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	return &app{
		cfg:    cfg,
		format: format,
		logger: logger,
		db:     db,
		snapshots: &service.SnapshotService{
			Snapshots:  repository.NewSnapshotRepo(db),
			Categories: repository.NewCategoryRepo(db),
			Dir:        cfg.Snapshot.Dir,
			Logger:     logger,
		},
		maintenance: &service.MaintenanceService{DB: db},
	}, nil
}

func (a *app) Close() error { return a.db.Close() }

func (a *app) loadData(ctx context.Context) (*service.Datasets, error) {
	ds := &service.DatasetService{Format: a.format, Logger: a.logger}
	return ds.Load(ctx, a.cfg.Data.SalesPath, a.cfg.Data.WeatherPath)
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// fileLogger writes text logs to path, since the TUI owns the terminal.
// An empty path discards logs.
func fileLogger(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f.Close, nil
}
