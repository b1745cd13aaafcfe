// Package sqlite contains the SQLite implementation of the tabular store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/example/bestiary/internal/core/delimited"
	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/db"
	"github.com/example/bestiary/internal/ports/secondary"
)

// Store implements secondary.TabularStore with SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite tabular store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateTable creates a table with the given positional columns.
func (s *Store) CreateTable(ctx context.Context, name string, columns []delimited.ColumnSpec) error {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = fmt.Sprintf("%s %s", quote(c.Name), c.Type)
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(name), strings.Join(defs, ", "))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return errs.Tag(fmt.Errorf("failed to create table %s: %w", name, err), errs.ErrStore)
	}
	return nil
}

// DropTable drops a table if it exists.
func (s *Store) DropTable(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(name)); err != nil {
		return errs.Tag(fmt.Errorf("failed to drop table %s: %w", name, err), errs.ErrStore)
	}
	return nil
}

// CreateIndex creates an index on one column if it does not exist.
func (s *Store) CreateIndex(ctx context.Context, index, table, column string) error {
	stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", quote(index), quote(table), quote(column))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return errs.Tag(fmt.Errorf("failed to create index %s: %w", index, err), errs.ErrStore)
	}
	return nil
}

// Execute runs a parameterized statement. Statements that do not return rows
// yield an empty RowSet.
func (s *Store) Execute(ctx context.Context, stmt string, args ...any) (*secondary.RowSet, error) {
	bound := bindArgs(args)
	if !returnsRows(stmt) {
		if _, err := s.db.ExecContext(ctx, stmt, bound...); err != nil {
			return nil, errs.Tag(fmt.Errorf("failed to execute statement: %w", err), errs.ErrStore)
		}
		return &secondary.RowSet{}, nil
	}

	rows, err := s.db.QueryContext(ctx, stmt, bound...)
	if err != nil {
		return nil, errs.Tag(fmt.Errorf("failed to query: %w", err), errs.ErrStore)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errs.Tag(fmt.Errorf("failed to read columns: %w", err), errs.ErrStore)
	}

	result := &secondary.RowSet{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errs.Tag(fmt.Errorf("failed to scan row: %w", err), errs.ErrStore)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Tag(fmt.Errorf("failed to iterate rows: %w", err), errs.ErrStore)
	}

	return result, nil
}

// QueryScalar returns the first column of the first row, or nil.
func (s *Store) QueryScalar(ctx context.Context, stmt string, args ...any) (any, error) {
	rs, err := s.Execute(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	if rs.Len() == 0 || len(rs.Columns) == 0 {
		return nil, nil
	}
	return rs.Rows[0][0], nil
}

// Tables lists dataset tables ordered by name. Bookkeeping tables are hidden.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rs, err := s.Execute(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, rs.Len())
	for _, r := range rs.Rows {
		name := fmt.Sprint(r[0])
		if strings.HasPrefix(name, db.HistoryTablePrefix) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func returnsRows(stmt string) bool {
	head := strings.ToUpper(strings.TrimSpace(stmt))
	return strings.HasPrefix(head, "SELECT") || strings.HasPrefix(head, "WITH") || strings.HasPrefix(head, "PRAGMA")
}

// bindArgs binds whole floats as integers so text columns store "3", not
// "3.0". REAL columns convert them back on insert.
func bindArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if f, ok := a.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			out[i] = int64(f)
			continue
		}
		out[i] = a
	}
	return out
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Ensure Store implements the interface.
var _ secondary.TabularStore = (*Store)(nil)
