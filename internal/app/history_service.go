package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/bestiary/internal/ports/primary"
	"github.com/example/bestiary/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	historyRepo secondary.HistoryRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(historyRepo secondary.HistoryRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{historyRepo: historyRepo}
}

// Imports returns recent imports.
func (s *HistoryServiceImpl) Imports(ctx context.Context, limit int) ([]*primary.ImportEntry, error) {
	records, err := s.historyRepo.ListImports(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	entries := make([]*primary.ImportEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.ImportEntry{
			File:         r.File,
			Table:        r.Table,
			RowsInserted: r.RowsInserted,
			RowsFailed:   r.RowsFailed,
			CreatedAt:    parseTimestamp(r.CreatedAt),
		}
	}
	return entries, nil
}

// Runs returns recent randomize runs.
func (s *HistoryServiceImpl) Runs(ctx context.Context, limit int) ([]*primary.RunEntry, error) {
	records, err := s.historyRepo.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	entries := make([]*primary.RunEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.RunEntry{
			ID:         r.ID,
			Options:    r.Options,
			Swaps:      r.Swaps,
			Reassigned: r.Reassigned,
			Jittered:   r.Jittered,
			Duplicated: r.Duplicated,
			Deleted:    r.Deleted,
			Error:      r.Error,
			CreatedAt:  parseTimestamp(r.CreatedAt),
		}
	}
	return entries, nil
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Ensure HistoryServiceImpl implements the interface.
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
