package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/bestiary/internal/core/delimited"
	"github.com/example/bestiary/internal/core/query"
	"github.com/example/bestiary/internal/core/schema"
	"github.com/example/bestiary/internal/ports/primary"
	"github.com/example/bestiary/internal/ports/secondary"
)

// QueryServiceImpl implements the QueryService interface.
type QueryServiceImpl struct {
	store   secondary.TabularStore
	builder *query.Builder
	logger  *zap.Logger
}

// NewQueryService creates a new QueryService with injected dependencies.
func NewQueryService(store secondary.TabularStore, builder *query.Builder, logger *zap.Logger) *QueryServiceImpl {
	return &QueryServiceImpl{
		store:   store,
		builder: builder,
		logger:  logger,
	}
}

// Run compiles and executes a query.
func (s *QueryServiceImpl) Run(ctx context.Context, req primary.QueryRequest) (*primary.QueryResult, error) {
	combine := req.Combine
	if combine == "" {
		combine = query.And
	}

	stmt, err := s.builder.Compile(req.Table, req.Columns, req.Where, combine)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("query compiled", zap.String("sql", stmt.Text), zap.Any("args", stmt.Args))

	rs, err := s.store.Execute(ctx, stmt.Text, stmt.Args...)
	if err != nil {
		s.logger.Error("query failed", zap.String("sql", stmt.Text), zap.Error(err))
		return nil, fmt.Errorf("failed to run query: %w", err)
	}

	// Compile already rejected unknown tables.
	tbl, _ := schema.Lookup(req.Table)
	joins := newJoinResolver(s.store, s.logger)

	result := &primary.QueryResult{
		Statement: stmt.Text,
		Args:      stmt.Args,
		Headers:   make([]string, len(rs.Columns)),
		Rows:      rs.Rows,
		Display:   make([][]string, len(rs.Rows)),
	}
	for i, col := range rs.Columns {
		result.Headers[i] = tbl.LogicalName(col)
	}
	for i, row := range rs.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			if join, ok := tbl.JoinFor(rs.Columns[j]); ok {
				cells[j] = joins.resolve(ctx, join, v)
				continue
			}
			cells[j] = delimited.FormatValue(v)
		}
		result.Display[i] = cells
	}

	return result, nil
}

// Tables lists schema tables and any other tables present in the store.
func (s *QueryServiceImpl) Tables(ctx context.Context) ([]*primary.TableInfo, error) {
	loaded, err := s.store.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	present := make(map[string]bool, len(loaded))
	for _, name := range loaded {
		present[name] = true
	}

	var infos []*primary.TableInfo
	for _, name := range schema.Names() {
		tbl, _ := schema.Lookup(name)
		infos = append(infos, &primary.TableInfo{
			Name:   name,
			Fields: tbl.LogicalNames(),
			Known:  true,
			Loaded: present[name],
		})
	}
	for _, name := range loaded {
		if _, ok := schema.Lookup(name); ok {
			continue
		}
		infos = append(infos, &primary.TableInfo{Name: name, Loaded: true})
	}

	for _, info := range infos {
		if !info.Loaded {
			continue
		}
		v, err := s.store.QueryScalar(ctx, "SELECT COUNT(*) FROM "+quoteIdent(info.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", info.Name, err)
		}
		n, _ := schema.Number(v)
		info.Rows = int(n)
	}

	return infos, nil
}

// Ensure QueryServiceImpl implements the interface.
var _ primary.QueryService = (*QueryServiceImpl)(nil)
