package primary

import (
	"context"
	"io"

	"github.com/example/bestiary/internal/core/delimited"
)

// ImportService defines the primary port for loading delimited files.
type ImportService interface {
	// ImportFiles imports each file into the table named after it, one file
	// at a time. A failing file does not stop the others.
	ImportFiles(ctx context.Context, paths []string) (*ImportResponse, error)

	// ImportReader imports one document into table.
	ImportReader(ctx context.Context, table string, r io.Reader) (*FileImport, error)
}

// ImportResponse contains one result per file, in input order.
type ImportResponse struct {
	Files []*FileImport
}

// Failed returns the number of files that did not import.
func (r *ImportResponse) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// FileImport is the outcome of importing one file.
type FileImport struct {
	Path         string
	Table        string
	Columns      []delimited.ColumnSpec
	RowsInserted int
	RowFailures  []RowFailure
	Indexes      []string
	Warnings     []error // index failures; the table is still usable
	Err          error   // drop, create or read failure; no rows were inserted
}

// RowFailure is one rejected row.
type RowFailure struct {
	Row int // 1-based position among non-empty rows
	Err error
}
