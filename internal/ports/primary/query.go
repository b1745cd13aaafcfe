// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI drives the services.
package primary

import (
	"context"

	"github.com/example/bestiary/internal/core/query"
)

// QueryService defines the primary port for ad-hoc table queries.
type QueryService interface {
	// Run compiles and executes a query.
	Run(ctx context.Context, req QueryRequest) (*QueryResult, error)

	// Tables lists known and loaded tables.
	Tables(ctx context.Context) ([]*TableInfo, error)
}

// QueryRequest contains parameters for a query.
type QueryRequest struct {
	Table   string
	Columns []string     // logical or physical names
	Where   *query.Group // nil selects every row
	Combine query.Logic  // joins root clauses
}

// QueryResult contains the compiled statement and its rows.
type QueryResult struct {
	Statement string
	Args      []any
	Headers   []string   // friendly names where known
	Rows      [][]any    // raw stored values
	Display   [][]string // formatted values with joins resolved
}

// TableInfo describes one table for listing.
type TableInfo struct {
	Name   string
	Fields []string // logical field names; empty for tables outside the schema
	Known  bool
	Loaded bool
	Rows   int
}
