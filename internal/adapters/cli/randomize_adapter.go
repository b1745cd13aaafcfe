package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/bestiary/internal/core/randomize"
	"github.com/example/bestiary/internal/ports/primary"
)

// RandomizeAdapter translates CLI operations to RandomizeService calls.
type RandomizeAdapter struct {
	service primary.RandomizeService
	out     io.Writer
}

// NewRandomizeAdapter creates a new RandomizeAdapter with the given service.
func NewRandomizeAdapter(service primary.RandomizeService, out io.Writer) *RandomizeAdapter {
	return &RandomizeAdapter{
		service: service,
		out:     out,
	}
}

// Run randomizes the creature table and prints what changed. A run that
// aborts part way still prints the partial report before returning the error.
func (a *RandomizeAdapter) Run(ctx context.Context, req randomize.Request) (*primary.RandomizeResponse, error) {
	resp, err := a.service.Randomize(ctx, req)
	if resp == nil {
		return nil, err
	}

	if err != nil {
		fmt.Fprintf(a.out, "%s Randomize run %s aborted\n", color.New(color.FgRed).Sprint("✗"), resp.RunID)
	} else {
		fmt.Fprintf(a.out, "✓ Randomize run %s complete\n", resp.RunID)
	}
	fmt.Fprintf(a.out, "  Grouping:    %s\n", req.Grouping())
	fmt.Fprintf(a.out, "  Working set: %s creatures", humanize.Comma(int64(resp.WorkingSet)))
	if resp.Blacklisted > 0 {
		fmt.Fprintf(a.out, " (%s blacklisted)", humanize.Comma(int64(resp.Blacklisted)))
	}
	fmt.Fprintln(a.out)

	r := resp.Report
	for _, line := range []struct {
		label string
		n     int
	}{
		{"Deleted", r.Deleted},
		{"Shinies", r.Duplicated},
		{"Swaps", r.Swaps},
		{"Reassigned", r.Reassigned},
		{"Jittered", r.Jittered},
	} {
		if line.n == 0 {
			continue
		}
		fmt.Fprintf(a.out, "  %-12s %s\n", line.label+":", humanize.Comma(int64(line.n)))
	}
	return resp, err
}
