package repository

import (
	"context"
	"database/sql"
)

// SnapshotRepo records exported and imported snapshot documents.
type SnapshotRepo struct {
	db DBTX
}

func NewSnapshotRepo(db DBTX) *SnapshotRepo { return &SnapshotRepo{db: db} }

func (r *SnapshotRepo) Insert(ctx context.Context, s SnapshotRecord) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO snapshots(id, kind, path, title, conditions, top_category, entries, total_amount, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, s.ID, s.Kind, s.Path, s.Title, s.Conditions, s.TopCategory, s.Entries, s.TotalAmount, s.CreatedAt)
	return err
}

func (r *SnapshotRepo) Get(ctx context.Context, id string) (*SnapshotRecord, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, kind, path, title, conditions, top_category, entries, total_amount, created_at
	FROM snapshots WHERE id = ?`, id)
	s, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// List returns the newest records first. limit <= 0 means no limit.
func (r *SnapshotRepo) List(ctx context.Context, limit int) ([]SnapshotRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, kind, path, title, conditions, top_category, entries, total_amount, created_at
	FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SnapshotRecord
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SnapshotRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(sc scanner) (*SnapshotRecord, error) {
	var s SnapshotRecord
	if err := sc.Scan(&s.ID, &s.Kind, &s.Path, &s.Title, &s.Conditions, &s.TopCategory, &s.Entries, &s.TotalAmount, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
