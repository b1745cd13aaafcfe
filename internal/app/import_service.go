package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/example/bestiary/internal/core/delimited"
	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/core/schema"
	"github.com/example/bestiary/internal/ports/primary"
	"github.com/example/bestiary/internal/ports/secondary"
)

// ImportServiceImpl implements the ImportService interface.
type ImportServiceImpl struct {
	store       secondary.TabularStore
	historyRepo secondary.HistoryRepository
	logger      *zap.Logger
}

// NewImportService creates a new ImportService with injected dependencies.
func NewImportService(store secondary.TabularStore, historyRepo secondary.HistoryRepository, logger *zap.Logger) *ImportServiceImpl {
	return &ImportServiceImpl{
		store:       store,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// ImportFiles imports files strictly in order. Each file replaces the table
// named after it.
func (s *ImportServiceImpl) ImportFiles(ctx context.Context, paths []string) (*primary.ImportResponse, error) {
	resp := &primary.ImportResponse{}
	for _, path := range paths {
		table := delimited.TableName(path)

		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Error("failed to read import file", zap.String("file", path), zap.Error(err))
			resp.Files = append(resp.Files, &primary.FileImport{
				Path:  path,
				Table: table,
				Err:   fmt.Errorf("failed to read %s: %w", path, err),
			})
			continue
		}

		result := s.importText(ctx, table, string(data))
		result.Path = path
		s.recordImport(ctx, result)
		resp.Files = append(resp.Files, result)
	}
	return resp, nil
}

// ImportReader imports one document into table. The name is sanitized the
// same way file names are.
func (s *ImportServiceImpl) ImportReader(ctx context.Context, table string, r io.Reader) (*primary.FileImport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	result := s.importText(ctx, delimited.TableName(table), string(data))
	result.Path = "-"
	s.recordImport(ctx, result)
	return result, result.Err
}

func (s *ImportServiceImpl) importText(ctx context.Context, table, text string) *primary.FileImport {
	logger := s.logger.With(zap.String("table", table))
	rows := delimited.Parse(text)
	specs := delimited.InferColumns(rows)
	result := &primary.FileImport{Table: table, Columns: specs}

	if err := s.store.DropTable(ctx, table); err != nil {
		result.Err = &errs.StoreOperationError{Op: "drop", Table: table, Err: err}
		logger.Error("import failed", zap.Error(result.Err))
		return result
	}
	if err := s.store.CreateTable(ctx, table, specs); err != nil {
		result.Err = &errs.StoreOperationError{Op: "create", Table: table, Err: err}
		logger.Error("import failed", zap.Error(result.Err))
		return result
	}

	cols := make([]string, len(specs))
	marks := make([]string, len(specs))
	for i, c := range specs {
		cols[i] = c.Name
		marks[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ", "))

	for i, row := range rows {
		if _, err := s.store.Execute(ctx, insert, delimited.Row(row, len(specs))...); err != nil {
			result.RowFailures = append(result.RowFailures, primary.RowFailure{Row: i + 1, Err: err})
			logger.Warn("row rejected", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		result.RowsInserted++
	}

	for _, idx := range indexesFor(table) {
		if err := s.store.CreateIndex(ctx, idx.name, table, idx.column); err != nil {
			opErr := &errs.StoreOperationError{Op: "index", Table: table, Err: err}
			result.Warnings = append(result.Warnings, opErr)
			logger.Warn("index creation failed", zap.String("index", idx.name), zap.Error(err))
			continue
		}
		result.Indexes = append(result.Indexes, idx.name)
	}

	logger.Info("table imported",
		zap.Int("columns", len(specs)),
		zap.Int("rows", result.RowsInserted),
		zap.Int("failed", len(result.RowFailures)),
	)
	return result
}

type indexSpec struct {
	name   string
	column string
}

// indexesFor returns the id index, plus the name index for known tables.
func indexesFor(table string) []indexSpec {
	specs := []indexSpec{{name: fmt.Sprintf("idx_%s_id", table), column: "column1"}}
	if tbl, ok := schema.Lookup(table); ok {
		specs[0].column = tbl.MustColumn(tbl.IDField)
		specs = append(specs, indexSpec{
			name:   fmt.Sprintf("idx_%s_name", table),
			column: tbl.MustColumn(tbl.NameField),
		})
	}
	return specs
}

func (s *ImportServiceImpl) recordImport(ctx context.Context, result *primary.FileImport) {
	rec := &secondary.ImportRecord{
		File:         result.Path,
		Table:        result.Table,
		RowsInserted: result.RowsInserted,
		RowsFailed:   len(result.RowFailures),
	}
	if err := s.historyRepo.RecordImport(ctx, rec); err != nil {
		s.logger.Warn("failed to record import", zap.Error(err))
	}
}

// Ensure ImportServiceImpl implements the interface.
var _ primary.ImportService = (*ImportServiceImpl)(nil)
