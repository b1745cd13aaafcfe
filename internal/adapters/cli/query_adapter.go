// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters format output and delegate everything
// else to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/bestiary/internal/ports/primary"
)

// QueryAdapter translates CLI operations to QueryService calls.
type QueryAdapter struct {
	service primary.QueryService
	out     io.Writer
}

// NewQueryAdapter creates a new QueryAdapter with the given service.
func NewQueryAdapter(service primary.QueryService, out io.Writer) *QueryAdapter {
	return &QueryAdapter{
		service: service,
		out:     out,
	}
}

// Run executes a query and prints its rows as a table. With showSQL the
// compiled statement and its arguments are printed first.
func (a *QueryAdapter) Run(ctx context.Context, req primary.QueryRequest, showSQL bool) (*primary.QueryResult, error) {
	result, err := a.service.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	if showSQL {
		fmt.Fprintln(a.out, color.New(color.FgCyan).Sprint(result.Statement))
		if len(result.Args) > 0 {
			fmt.Fprintf(a.out, "  args: %v\n", result.Args)
		}
		fmt.Fprintln(a.out)
	}

	if len(result.Display) == 0 {
		fmt.Fprintln(a.out, "No matching rows.")
		return result, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(upper(result.Headers), "\t"))
	fmt.Fprintln(w, strings.Join(rule(result.Headers), "\t"))
	for _, row := range result.Display {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	fmt.Fprintf(a.out, "\n%s %s\n", humanize.Comma(int64(len(result.Display))), plural(len(result.Display), "row", "rows"))
	return result, nil
}

// Tables prints the known and loaded tables.
func (a *QueryAdapter) Tables(ctx context.Context) error {
	tables, err := a.service.Tables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TABLE\tROWS\tFIELDS")
	fmt.Fprintln(w, "-----\t----\t------")
	for _, t := range tables {
		rows := color.New(color.FgYellow).Sprint("not loaded")
		if t.Loaded {
			rows = humanize.Comma(int64(t.Rows))
		}
		fields := strings.Join(t.Fields, ", ")
		if !t.Known {
			fields = "(positional columns)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, rows, fields)
	}
	w.Flush()
	return nil
}

func upper(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.ToUpper(h)
	}
	return out
}

func rule(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.Repeat("-", len(h))
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
