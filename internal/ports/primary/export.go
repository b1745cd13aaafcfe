package primary

import (
	"context"
	"io"
)

// ExportService defines the primary port for writing tables back to
// delimited text.
type ExportService interface {
	// ExportTable writes every row of table to w and returns the row count.
	ExportTable(ctx context.Context, table string, w io.Writer) (int, error)
}
