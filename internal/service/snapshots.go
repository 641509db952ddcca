package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jask/salesboard/internal/database/repository"
	"github.com/jask/salesboard/internal/prefs"
	"github.com/jask/salesboard/internal/sales"
	"github.com/jask/salesboard/internal/snapshot"
)

// SnapshotService exports the current ranking, imports documents for the
// preview screen and keeps a history of both.
type SnapshotService struct {
	Snapshots  *repository.SnapshotRepo
	Categories *repository.CategoryRepo
	Dir        string
	Logger     *slog.Logger
	Now        func() time.Time

	// LoadOverrides returns user icon overrides; defaults to prefs.LoadIcons.
	LoadOverrides func() (map[string]string, error)
}

// ExportResult describes a written export.
type ExportResult struct {
	Snapshot snapshot.Snapshot
	Path     string
	RecordID string
}

func (s *SnapshotService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SnapshotService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Export writes the top of ranked under sel to the snapshot dir and records it.
// An empty ranking yields snapshot.ErrEmptyResult and writes nothing.
func (s *SnapshotService) Export(ctx context.Context, sel sales.FilterSelection, ranked sales.Ranked) (ExportResult, error) {
	now := s.now()
	snap, err := snapshot.Export(sel, ranked, now)
	if err != nil {
		return ExportResult{}, err
	}
	path, err := snapshot.Write(s.Dir, snap, now)
	if err != nil {
		return ExportResult{}, fmt.Errorf("write snapshot: %w", err)
	}
	id, err := s.record(ctx, repository.KindExport, path, snap, now)
	if err != nil {
		return ExportResult{}, err
	}
	s.logger().Info("snapshot exported", "path", path, "entries", len(snap.TopRankings))
	return ExportResult{Snapshot: snap, Path: path, RecordID: id}, nil
}

// Import decodes the document at path and builds its preview. A rejected
// document leaves no trace in the history.
func (s *SnapshotService) Import(ctx context.Context, path string) (snapshot.Preview, error) {
	snap, err := snapshot.DecodeFile(path)
	if err != nil {
		s.logger().Warn("snapshot import rejected", "path", path, "err", err)
		return snapshot.Preview{}, err
	}
	icons, err := s.Resolver(ctx)
	if err != nil {
		return snapshot.Preview{}, err
	}
	if _, err := s.record(ctx, repository.KindImport, path, snap, s.now()); err != nil {
		return snapshot.Preview{}, err
	}
	return snapshot.BuildPreview(snap, icons), nil
}

// Resolver builds an icon resolver from the category table with user
// overrides applied on top.
func (s *SnapshotService) Resolver(ctx context.Context) (*snapshot.IconResolver, error) {
	icons := snapshot.DefaultIcons()
	if s.Categories != nil {
		stored, err := s.Categories.Icons(ctx)
		if err != nil {
			return nil, fmt.Errorf("load category icons: %w", err)
		}
		if len(stored) > 0 {
			icons = stored
		}
	}
	load := s.LoadOverrides
	if load == nil {
		load = prefs.LoadIcons
	}
	overrides, err := load()
	if err != nil {
		s.logger().Warn("ignoring icon overrides", "err", err)
	}
	for k, v := range overrides {
		icons[k] = v
	}
	return snapshot.NewIconResolver(icons), nil
}

// History lists recorded exports and imports, newest first.
func (s *SnapshotService) History(ctx context.Context, limit int) ([]repository.SnapshotRecord, error) {
	if s.Snapshots == nil {
		return nil, nil
	}
	return s.Snapshots.List(ctx, limit)
}

func (s *SnapshotService) record(ctx context.Context, kind, path string, snap snapshot.Snapshot, at time.Time) (string, error) {
	if s.Snapshots == nil {
		return "", nil
	}
	rec := repository.SnapshotRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		Path:      path,
		Title:     snap.Title,
		Entries:   len(snap.TopRankings),
		CreatedAt: at.UTC().Truncate(time.Second),
	}
	if len(snap.TopRankings) > 0 {
		rec.TopCategory = snap.TopRankings[0].Category
	}
	for _, r := range snap.TopRankings {
		rec.TotalAmount += r.Amount
	}
	if snap.Conditions != nil {
		b, err := json.Marshal(snap.Conditions)
		if err != nil {
			return "", err
		}
		cond := string(b)
		rec.Conditions = &cond
	}
	if err := s.Snapshots.Insert(ctx, rec); err != nil {
		return "", fmt.Errorf("record snapshot: %w", err)
	}
	return rec.ID, nil
}
