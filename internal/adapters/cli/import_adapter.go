package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/bestiary/internal/ports/primary"
)

// maxRowFailures caps the rejected rows listed per file.
const maxRowFailures = 5

// ImportAdapter translates CLI operations to ImportService calls.
type ImportAdapter struct {
	service primary.ImportService
	out     io.Writer
}

// NewImportAdapter creates a new ImportAdapter with the given service.
func NewImportAdapter(service primary.ImportService, out io.Writer) *ImportAdapter {
	return &ImportAdapter{
		service: service,
		out:     out,
	}
}

// Import loads each file and prints a per-file summary. It returns an error
// when any file failed, after every file has been attempted.
func (a *ImportAdapter) Import(ctx context.Context, paths []string) (*primary.ImportResponse, error) {
	resp, err := a.service.ImportFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	for _, f := range resp.Files {
		a.printFile(f)
	}

	if failed := resp.Failed(); failed > 0 {
		return resp, fmt.Errorf("%d of %d files failed to import", failed, len(resp.Files))
	}
	return resp, nil
}

func (a *ImportAdapter) printFile(f *primary.FileImport) {
	if f.Err != nil {
		fmt.Fprintf(a.out, "%s %s: %v\n", color.New(color.FgRed).Sprint("✗"), f.Path, f.Err)
		return
	}

	fmt.Fprintf(a.out, "✓ Imported %s into %s (%s %s, %d columns)\n",
		f.Path, f.Table, humanize.Comma(int64(f.RowsInserted)), plural(f.RowsInserted, "row", "rows"), len(f.Columns))
	for _, idx := range f.Indexes {
		fmt.Fprintf(a.out, "  index %s\n", idx)
	}
	for _, w := range f.Warnings {
		fmt.Fprintf(a.out, "  %s %v\n", color.New(color.FgYellow).Sprint("warning:"), w)
	}
	if n := len(f.RowFailures); n > 0 {
		fmt.Fprintf(a.out, "  %s %d %s rejected\n", color.New(color.FgYellow).Sprint("warning:"), n, plural(n, "row", "rows"))
		for i, rf := range f.RowFailures {
			if i == maxRowFailures {
				fmt.Fprintf(a.out, "    ... and %d more\n", n-maxRowFailures)
				break
			}
			fmt.Fprintf(a.out, "    row %d: %v\n", rf.Row, rf.Err)
		}
	}
}

// ExportAdapter translates CLI operations to ExportService calls.
type ExportAdapter struct {
	service primary.ExportService
	tables  primary.QueryService
	out     io.Writer
}

// NewExportAdapter creates a new ExportAdapter. The query service lists the
// loaded tables for ExportAll.
func NewExportAdapter(service primary.ExportService, tables primary.QueryService, out io.Writer) *ExportAdapter {
	return &ExportAdapter{
		service: service,
		tables:  tables,
		out:     out,
	}
}

// Export writes one table to path, or to the adapter's output when path is
// empty or "-".
func (a *ExportAdapter) Export(ctx context.Context, table, path string) error {
	if path == "" || path == "-" {
		_, err := a.service.ExportTable(ctx, table, a.out)
		if err == nil {
			fmt.Fprintln(a.out)
		}
		return err
	}

	n, err := a.exportFile(ctx, table, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Exported %s to %s (%s %s)\n", table, path, humanize.Comma(int64(n)), plural(n, "row", "rows"))
	return nil
}

// ExportAll writes every loaded table to dir/<table>.csv.
func (a *ExportAdapter) ExportAll(ctx context.Context, dir string) error {
	tables, err := a.tables.Tables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	exported := 0
	for _, t := range tables {
		if !t.Loaded {
			continue
		}
		path := filepath.Join(dir, t.Name+".csv")
		n, err := a.exportFile(ctx, t.Name, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✓ Exported %s to %s (%s %s)\n", t.Name, path, humanize.Comma(int64(n)), plural(n, "row", "rows"))
		exported++
	}
	if exported == 0 {
		fmt.Fprintln(a.out, "No tables loaded. Run 'bestiary import' first.")
	}
	return nil
}

func (a *ExportAdapter) exportFile(ctx context.Context, table, path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	n, err := a.service.ExportTable(ctx, table, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to write %s: %w", path, cerr)
	}
	return n, err
}
