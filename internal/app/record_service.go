package app

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/example/bestiary/internal/core/delimited"
	"github.com/example/bestiary/internal/core/schema"
	"github.com/example/bestiary/internal/models"
	"github.com/example/bestiary/internal/ports/primary"
	"github.com/example/bestiary/internal/ports/secondary"
)

// RecordServiceImpl implements the RecordService interface.
type RecordServiceImpl struct {
	store  secondary.TabularStore
	logger *zap.Logger
}

// NewRecordService creates a new RecordService with injected dependencies.
func NewRecordService(store secondary.TabularStore, logger *zap.Logger) *RecordServiceImpl {
	return &RecordServiceImpl{
		store:  store,
		logger: logger,
	}
}

// Show loads a record by reference.
func (s *RecordServiceImpl) Show(ctx context.Context, table, ref string) (*primary.Record, error) {
	h, err := loadRef(ctx, s.store, table, ref)
	if err != nil {
		return nil, err
	}
	return s.toRecord(ctx, h), nil
}

// Set applies field changes in order and commits once.
func (s *RecordServiceImpl) Set(ctx context.Context, req primary.SetFieldsRequest) (*primary.Record, error) {
	if len(req.Changes) == 0 {
		return nil, fmt.Errorf("no fields to set")
	}

	h, err := loadRef(ctx, s.store, req.Table, req.Ref)
	if err != nil {
		return nil, err
	}
	tbl, _ := schema.Lookup(req.Table)

	for _, c := range req.Changes {
		f, ok := tbl.Field(c.Field)
		if !ok {
			return nil, fmt.Errorf("table %s has no field %s (fields: %s)",
				tbl.Name, c.Field, strings.Join(tbl.LogicalNames(), ", "))
		}
		v, err := parseFieldValue(f, c.Value)
		if err != nil {
			return nil, err
		}
		if err := h.Set(f.Logical, v); err != nil {
			return nil, err
		}
	}

	if err := h.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", req.Ref, err)
	}
	s.logger.Info("record updated", zap.String("table", req.Table), zap.String("ref", req.Ref), zap.Int("fields", len(req.Changes)))

	return s.toRecord(ctx, h), nil
}

// Duplicate inserts a shiny copy of a creature.
func (s *RecordServiceImpl) Duplicate(ctx context.Context, name string) (*primary.DuplicateResponse, error) {
	h, err := models.LoadByName(ctx, s.store, schema.Creature, name)
	if err != nil {
		return nil, err
	}

	id, err := h.Duplicate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate %s: %w", name, err)
	}
	newName := models.ShinyPrefix + models.String(h.Get(schema.FieldNickname))
	s.logger.Info("creature duplicated", zap.String("source", name), zap.Float64("id", id))

	return &primary.DuplicateResponse{
		SourceName: name,
		NewID:      int64(id),
		NewName:    newName,
	}, nil
}

// Delete soft-deletes a creature.
func (s *RecordServiceImpl) Delete(ctx context.Context, name string) error {
	h, err := models.LoadByName(ctx, s.store, schema.Creature, name)
	if err != nil {
		return err
	}
	if err := h.SoftDelete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	s.logger.Info("creature deleted", zap.String("name", name))
	return nil
}

func (s *RecordServiceImpl) toRecord(ctx context.Context, h *models.RecordHandle) *primary.Record {
	tbl, _ := schema.Lookup(h.Table())
	joins := newJoinResolver(s.store, s.logger)

	rec := &primary.Record{Table: tbl.Name, Fields: make([]primary.FieldValue, len(tbl.Fields))}
	for i, f := range tbl.Fields {
		v := h.Get(f.Logical)
		fv := primary.FieldValue{Name: f.Logical, Value: delimited.FormatValue(v)}
		if j, ok := tbl.JoinFor(f.Column); ok {
			fv.Joined = joins.resolve(ctx, j, v)
		}
		rec.Fields[i] = fv
	}
	return rec
}

// parseFieldValue converts CLI text for a field: REAL fields must be finite
// numbers, TEXT fields are stored as given.
func parseFieldValue(f schema.Field, text string) (any, error) {
	if f.Type != schema.Real {
		return text, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%s must be a number, got %q", f.Logical, text)
	}
	return n, nil
}

// Ensure RecordServiceImpl implements the interface.
var _ primary.RecordService = (*RecordServiceImpl)(nil)
