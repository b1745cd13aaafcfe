package secondary

import "context"

// HistoryRepository records what happened to the session database.
type HistoryRepository interface {
	// RecordImport logs one imported file.
	RecordImport(ctx context.Context, record *ImportRecord) error

	// RecordRun logs one randomize invocation.
	RecordRun(ctx context.Context, record *RunRecord) error

	// ListImports returns imports, most recent first.
	ListImports(ctx context.Context, limit int) ([]*ImportRecord, error)

	// ListRuns returns randomize runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]*RunRecord, error)
}

// ImportRecord represents an imported file as stored in persistence.
type ImportRecord struct {
	File         string
	Table        string
	RowsInserted int
	RowsFailed   int
	CreatedAt    string
}

// RunRecord represents a randomize run as stored in persistence.
type RunRecord struct {
	ID         string
	Options    string // JSON-encoded request
	Swaps      int
	Reassigned int
	Jittered   int
	Duplicated int
	Deleted    int
	Error      string // Empty string means null
	CreatedAt  string
}
