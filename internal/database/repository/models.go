package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Category represents a merchant category row and its preview icon.
type Category struct {
	ID        string
	Name      string
	Icon      string
	SortOrder int
}

// Snapshot kinds.
const (
	KindExport = "export"
	KindImport = "import"
)

// SnapshotRecord is one entry of the export/import history.
type SnapshotRecord struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	Conditions  *string   `json:"conditions"` // JSON object, nil when the document had none
	TopCategory string    `json:"top_category"`
	Entries     int       `json:"entries"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}
