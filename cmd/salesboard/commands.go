package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jask/salesboard/internal/chart"
	"github.com/jask/salesboard/internal/config"
	"github.com/jask/salesboard/internal/dataset"
	"github.com/jask/salesboard/internal/httpapi"
	"github.com/jask/salesboard/internal/prefs"
	"github.com/jask/salesboard/internal/sales"
	"github.com/jask/salesboard/internal/testdata"
	"github.com/jask/salesboard/internal/tui"
)

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func runTUI(ctx context.Context, args []string, stderr io.Writer) error {
	fs := newFlagSet("tui", stderr)
	guest := fs.Bool("guest", false, "skip the login screen")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, format, err := loadConfig()
	if err != nil {
		return err
	}
	if *guest {
		cfg.UI.SkipLogin = true
	}
	logger, closeLog, err := fileLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	a, err := open(ctx, cfg, format, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.loadData(ctx)
	if err != nil {
		return err
	}

	m := tui.New(ctx, cfg, data, tui.Services{
		Snapshots:   a.snapshots,
		Maintenance: a.maintenance,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, format, err := loadConfig()
	if err != nil {
		return err
	}
	fs := newFlagSet("serve", stderr)
	addr := fs.String("addr", cfg.Server.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))
	slog.SetDefault(logger)

	a, err := open(ctx, cfg, format, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.loadData(ctx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return httpapi.NewServer(*addr, data, a.snapshots, logger).ListenAndServe(ctx)
}

func runExport(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("export", stderr)
	values := make(map[string]*string, len(sales.SelectionParams))
	for _, name := range sales.SelectionParams {
		values[name] = fs.String(name, "", name+" filter, a value or \"all\"")
	}
	pngPath := fs.String("png", "", "also render the ranking chart to this PNG file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sel, err := sales.ParseSelection(func(name string) string { return *values[name] })
	if err != nil {
		return err
	}

	cfg, format, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))

	a, err := open(ctx, cfg, format, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.loadData(ctx)
	if err != nil {
		return err
	}

	view, err := sales.EvaluateExplicit(data.Sales, sel)
	if err != nil {
		return err
	}
	res, err := a.snapshots.Export(ctx, view.Selection, view.Ranked)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s\n", sales.ChartTitle(view.Selection))
	for _, r := range res.Snapshot.TopRankings {
		fmt.Fprintf(stdout, "%2d. %-20s %12.1f\n", r.Rank, r.Category, r.Amount)
	}
	fmt.Fprintf(stdout, "exported %d rankings to %s\n", len(res.Snapshot.TopRankings), res.Path)

	if *pngPath != "" {
		if err := writeBarPNG(*pngPath, sales.ChartTitle(view.Selection), view.Ranked); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "chart saved to %s\n", *pngPath)
	}
	return nil
}

func writeBarPNG(path, title string, ranked sales.Ranked) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := chart.RenderBarPNG(f, title, chart.Bar(ranked), chart.DefaultSize); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

func runDemo(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("demo", stderr)
	dir := fs.String("dir", "data", "output directory")
	rows := fs.Int("rows", 5000, "number of sales rows")
	years := fs.Int("years", 3, "years of daily weather")
	seed := fs.Int64("seed", 0, "random seed (0 picks one)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, format, err := loadConfig()
	if err != nil {
		return err
	}
	salesPath, weatherPath, err := testdata.WriteFiles(*dir, format, testdata.Options{
		Seed:      *seed,
		SalesRows: *rows,
		Years:     *years,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\nwrote %s\n", salesPath, weatherPath)
	return nil
}

func runInit(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("init", stderr)
	force := fs.Bool("force", false, "overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cfgPath := os.Getenv("SALESBOARD_CONFIG")
	if cfgPath == "" {
		cfgPath = filepath.Join(config.Dir(), "config.toml")
	}
	if err := refuseExisting(cfgPath, *force); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", cfgPath)

	if cfg.Data.FormatPath == "" {
		return nil
	}
	if err := refuseExisting(cfg.Data.FormatPath, *force); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Data.FormatPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Data.FormatPath, []byte(dataset.DefaultTOML()), 0o644); err != nil {
		return fmt.Errorf("write column format: %w", err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", cfg.Data.FormatPath)
	return nil
}

func refuseExisting(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func runIcon(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("icon", stderr)
	drop := fs.Bool("clear", false, "remove the override for the category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if (*drop && len(rest) != 1) || (!*drop && len(rest) != 2) {
		return errors.New("usage: salesboard icon <category> <icon-path> | salesboard icon --clear <category>")
	}

	icons, err := prefs.LoadIcons()
	if err != nil {
		return fmt.Errorf("load icon overrides: %w", err)
	}
	if icons == nil {
		icons = map[string]string{}
	}
	category := rest[0]
	if *drop {
		delete(icons, category)
		fmt.Fprintf(stdout, "cleared icon for %s\n", category)
	} else {
		icons[category] = rest[1]
		fmt.Fprintf(stdout, "%s -> %s\n", category, rest[1])
	}
	return prefs.SaveIcons(icons)
}
