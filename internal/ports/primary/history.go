package primary

import (
	"context"
	"time"
)

// HistoryService defines the primary port for session history.
type HistoryService interface {
	// Imports returns recent imports, most recent first.
	Imports(ctx context.Context, limit int) ([]*ImportEntry, error)

	// Runs returns recent randomize runs, most recent first.
	Runs(ctx context.Context, limit int) ([]*RunEntry, error)
}

// ImportEntry is one logged import.
type ImportEntry struct {
	File         string
	Table        string
	RowsInserted int
	RowsFailed   int
	CreatedAt    time.Time
}

// RunEntry is one logged randomize run.
type RunEntry struct {
	ID         string
	Options    string
	Swaps      int
	Reassigned int
	Jittered   int
	Duplicated int
	Deleted    int
	Error      string
	CreatedAt  time.Time
}
