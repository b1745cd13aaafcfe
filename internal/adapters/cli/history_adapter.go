package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/bestiary/internal/ports/primary"
)

// HistoryAdapter translates CLI operations to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// Show prints recent imports and randomize runs.
func (a *HistoryAdapter) Show(ctx context.Context, limit int) error {
	imports, err := a.service.Imports(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list imports: %w", err)
	}
	runs, err := a.service.Runs(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(imports) == 0 && len(runs) == 0 {
		fmt.Fprintln(a.out, "No history yet.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Load your data first:")
		fmt.Fprintln(a.out, "  bestiary import data/*.csv")
		return nil
	}

	if len(imports) > 0 {
		fmt.Fprintln(a.out, "Imports:")
		w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "  WHEN\tTABLE\tROWS\tFAILED\tFILE")
		for _, e := range imports {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%d\t%s\n",
				humanize.Time(e.CreatedAt), e.Table, humanize.Comma(int64(e.RowsInserted)), e.RowsFailed, e.File)
		}
		w.Flush()
		fmt.Fprintln(a.out)
	}

	if len(runs) > 0 {
		fmt.Fprintln(a.out, "Randomize runs:")
		w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "  WHEN\tRUN\tSWAPS\tREASSIGNED\tJITTERED\tSHINIES\tDELETED\tSTATUS")
		for _, r := range runs {
			status := color.New(color.FgGreen).Sprint("ok")
			if r.Error != "" {
				status = color.New(color.FgRed).Sprint(r.Error)
			}
			fmt.Fprintf(w, "  %s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
				humanize.Time(r.CreatedAt), r.ID, r.Swaps, r.Reassigned, r.Jittered, r.Duplicated, r.Deleted, status)
		}
		w.Flush()
	}
	return nil
}
