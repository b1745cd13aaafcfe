package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/example/bestiary/internal/core/delimited"
	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/ports/primary"
	"github.com/example/bestiary/internal/ports/secondary"
)

// ExportServiceImpl implements the ExportService interface.
type ExportServiceImpl struct {
	store  secondary.TabularStore
	logger *zap.Logger
}

// NewExportService creates a new ExportService with injected dependencies.
func NewExportService(store secondary.TabularStore, logger *zap.Logger) *ExportServiceImpl {
	return &ExportServiceImpl{store: store, logger: logger}
}

// ExportTable writes every row of table, all columns in physical order,
// one record per line.
func (s *ExportServiceImpl) ExportTable(ctx context.Context, table string, w io.Writer) (int, error) {
	tables, err := s.store.Tables(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list tables: %w", err)
	}
	found := false
	for _, t := range tables {
		if t == table {
			found = true
			break
		}
	}
	if !found {
		return 0, &errs.UnknownTableError{Table: table}
	}

	rs, err := s.store.Execute(ctx, "SELECT * FROM "+quoteIdent(table)+";")
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", table, err)
	}

	lines := make([]string, rs.Len())
	for i, row := range rs.Rows {
		lines[i] = delimited.FormatRow(row)
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", table, err)
	}

	s.logger.Info("table exported", zap.String("table", table), zap.Int("rows", rs.Len()))
	return rs.Len(), nil
}

// Ensure ExportServiceImpl implements the interface.
var _ primary.ExportService = (*ExportServiceImpl)(nil)
