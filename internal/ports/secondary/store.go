// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/bestiary/internal/core/delimited"
	"github.com/example/bestiary/internal/core/planner"
)

// TabularStore is the narrow store capability the application consumes.
// Column identifiers are positional (column1..columnN).
type TabularStore interface {
	// CreateTable creates a table with the given positional columns.
	CreateTable(ctx context.Context, name string, columns []delimited.ColumnSpec) error

	// DropTable drops a table if it exists.
	DropTable(ctx context.Context, name string) error

	// CreateIndex creates an index on one column if it does not exist.
	CreateIndex(ctx context.Context, index, table, column string) error

	// Execute runs a parameterized statement and returns its rows, if any.
	Execute(ctx context.Context, stmt string, args ...any) (*RowSet, error)

	// QueryScalar returns the first column of the first row, or nil when
	// the statement yields no rows.
	QueryScalar(ctx context.Context, stmt string, args ...any) (any, error)

	// Tables lists the tables present in the store.
	Tables(ctx context.Context) ([]string, error)
}

// RowSet is the result of Execute. Values are float64, string, []byte or nil.
type RowSet struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (r *RowSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// PlanStore persists the build planner between invocations.
type PlanStore interface {
	// Load returns the saved plan, or a fresh one when nothing is saved.
	Load(ctx context.Context) (*planner.Plan, error)

	// Save persists the plan.
	Save(ctx context.Context, plan *planner.Plan) error
}
