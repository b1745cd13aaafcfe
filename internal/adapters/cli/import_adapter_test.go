package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/bestiary/internal/core/delimited"
	"github.com/example/bestiary/internal/ports/primary"
)

// mockImportService implements primary.ImportService for testing
type mockImportService struct {
	files []*primary.FileImport
}

func (m *mockImportService) ImportFiles(ctx context.Context, paths []string) (*primary.ImportResponse, error) {
	return &primary.ImportResponse{Files: m.files}, nil
}

func (m *mockImportService) ImportReader(ctx context.Context, table string, r io.Reader) (*primary.FileImport, error) {
	return nil, errors.New("not implemented in adapter")
}

func TestImportAdapter_Summary(t *testing.T) {
	failures := make([]primary.RowFailure, 7)
	for i := range failures {
		failures[i] = primary.RowFailure{Row: i + 1, Err: errors.New("constraint failed")}
	}
	mock := &mockImportService{files: []*primary.FileImport{
		{
			Path:         "data/spell.csv",
			Table:        "spell",
			Columns:      make([]delimited.ColumnSpec, 3),
			RowsInserted: 2,
			Indexes:      []string{"idx_spell_id"},
			Warnings:     []error{errors.New("failed to create index idx_spell_name")},
		},
		{Path: "data/creature.csv", Table: "creature", RowsInserted: 1500, RowFailures: failures},
		{Path: "data/missing.csv", Err: errors.New("no such file")},
	}}
	var out bytes.Buffer

	resp, err := NewImportAdapter(mock, &out).Import(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "1 of 3 files") {
		t.Errorf("error = %v, want one failed file", err)
	}
	if resp == nil || len(resp.Files) != 3 {
		t.Fatalf("response = %+v", resp)
	}

	got := out.String()
	for _, want := range []string{
		"✓ Imported data/spell.csv into spell (2 rows, 3 columns)",
		"index idx_spell_id",
		"idx_spell_name",
		"1,500 rows",
		"7 rows rejected",
		"... and 2 more",
		"data/missing.csv: no such file",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

// mockExportService implements primary.ExportService for testing
type mockExportService struct {
	exported []string
}

func (m *mockExportService) ExportTable(ctx context.Context, table string, w io.Writer) (int, error) {
	m.exported = append(m.exported, table)
	_, err := io.WriteString(w, "1{}{}{}"+table)
	return 1, err
}

func TestExportAdapter_ExportAll(t *testing.T) {
	tables := &mockQueryService{
		tablesFn: func(ctx context.Context) ([]*primary.TableInfo, error) {
			return []*primary.TableInfo{
				{Name: "creature", Loaded: true},
				{Name: "spell"},
				{Name: "notes", Loaded: true},
			}, nil
		},
	}
	export := &mockExportService{}
	dir := filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer

	if err := NewExportAdapter(export, tables, &out).ExportAll(context.Background(), dir); err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if strings.Join(export.exported, ",") != "creature,notes" {
		t.Errorf("exported = %v, want only loaded tables", export.exported)
	}

	data, err := os.ReadFile(filepath.Join(dir, "notes.csv"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "1{}{}{}notes" {
		t.Errorf("notes.csv = %q", data)
	}
	if !strings.Contains(out.String(), "✓ Exported creature") {
		t.Errorf("output = %q", out.String())
	}
}

func TestExportAdapter_ToOutput(t *testing.T) {
	var out bytes.Buffer
	adapter := NewExportAdapter(&mockExportService{}, &mockQueryService{}, &out)
	if err := adapter.Export(context.Background(), "spell", "-"); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.String() != "1{}{}{}spell\n" {
		t.Errorf("output = %q", out.String())
	}
}
