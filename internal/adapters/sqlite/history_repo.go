package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/bestiary/internal/ports/secondary"
)

// HistoryRepository implements secondary.HistoryRepository with SQLite.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// RecordImport logs one imported file.
func (r *HistoryRepository) RecordImport(ctx context.Context, rec *secondary.ImportRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO bestiary_imports (file, table_name, rows_inserted, rows_failed) VALUES (?, ?, ?, ?)",
		rec.File, rec.Table, rec.RowsInserted, rec.RowsFailed,
	)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

// RecordRun logs one randomize invocation.
func (r *HistoryRepository) RecordRun(ctx context.Context, rec *secondary.RunRecord) error {
	var runErr sql.NullString
	if rec.Error != "" {
		runErr = sql.NullString{String: rec.Error, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bestiary_runs (id, options, swaps, reassigned, jittered, duplicated, deleted, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Options, rec.Swaps, rec.Reassigned, rec.Jittered, rec.Duplicated, rec.Deleted, runErr,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListImports returns imports, most recent first.
func (r *HistoryRepository) ListImports(ctx context.Context, limit int) ([]*secondary.ImportRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT file, table_name, rows_inserted, rows_failed, created_at FROM bestiary_imports ORDER BY id DESC LIMIT ?",
		limitOrAll(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ImportRecord
	for rows.Next() {
		var createdAt time.Time
		rec := &secondary.ImportRecord{}
		if err := rows.Scan(&rec.File, &rec.Table, &rec.RowsInserted, &rec.RowsFailed, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		rec.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListRuns returns randomize runs, most recent first.
func (r *HistoryRepository) ListRuns(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, options, swaps, reassigned, jittered, duplicated, deleted, error, created_at
		FROM bestiary_runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limitOrAll(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*secondary.RunRecord
	for rows.Next() {
		var (
			runErr    sql.NullString
			createdAt time.Time
		)
		rec := &secondary.RunRecord{}
		err := rows.Scan(&rec.ID, &rec.Options, &rec.Swaps, &rec.Reassigned, &rec.Jittered,
			&rec.Duplicated, &rec.Deleted, &runErr, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.Error = runErr.String
		rec.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func limitOrAll(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// Ensure HistoryRepository implements the interface.
var _ secondary.HistoryRepository = (*HistoryRepository)(nil)
