package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/bestiary/internal/ports/primary"
)

// RecordAdapter translates CLI operations to RecordService calls.
type RecordAdapter struct {
	service primary.RecordService
	out     io.Writer
}

// NewRecordAdapter creates a new RecordAdapter with the given service.
func NewRecordAdapter(service primary.RecordService, out io.Writer) *RecordAdapter {
	return &RecordAdapter{
		service: service,
		out:     out,
	}
}

// Show displays one record.
func (a *RecordAdapter) Show(ctx context.Context, table, ref string) (*primary.Record, error) {
	rec, err := a.service.Show(ctx, table, ref)
	if err != nil {
		return nil, err
	}
	a.printRecord(rec)
	return rec, nil
}

// Set applies field changes and displays the updated record.
func (a *RecordAdapter) Set(ctx context.Context, req primary.SetFieldsRequest) (*primary.Record, error) {
	rec, err := a.service.Set(ctx, req)
	if err != nil {
		return nil, err
	}

	name, _ := rec.Get("Name")
	fmt.Fprintf(a.out, "✓ Updated %s %s\n", rec.Table, name)
	for _, c := range req.Changes {
		fmt.Fprintf(a.out, "  %s → %s\n", c.Field, c.Value)
	}
	return rec, nil
}

// Duplicate inserts a shiny copy of a creature.
func (a *RecordAdapter) Duplicate(ctx context.Context, name string) (*primary.DuplicateResponse, error) {
	resp, err := a.service.Duplicate(ctx, name)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Duplicated %s as %s (ID %d)\n", resp.SourceName, resp.NewName, resp.NewID)
	return resp, nil
}

// Delete soft-deletes a creature.
func (a *RecordAdapter) Delete(ctx context.Context, name string) error {
	if err := a.service.Delete(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted %s\n", name)
	fmt.Fprintln(a.out, "  Row kept with minimum stats and a disabled passive")
	return nil
}

func (a *RecordAdapter) printRecord(rec *primary.Record) {
	width := 0
	for _, f := range rec.Fields {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}

	name, _ := rec.Get("Name")
	fmt.Fprintf(a.out, "\n%s: %s\n", capitalize(rec.Table), name)
	for _, f := range rec.Fields {
		value := f.Value
		if f.Joined != "" {
			value = fmt.Sprintf("%s %s", value, color.New(color.FgCyan).Sprintf("(%s)", f.Joined))
		}
		fmt.Fprintf(a.out, "  %-*s  %s\n", width, f.Name, value)
	}
	fmt.Fprintln(a.out)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
