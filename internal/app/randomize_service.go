package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/core/randomize"
	"github.com/example/bestiary/internal/core/schema"
	"github.com/example/bestiary/internal/models"
	"github.com/example/bestiary/internal/ports/primary"
	"github.com/example/bestiary/internal/ports/secondary"
)

// RandomizeServiceImpl implements the RandomizeService interface.
type RandomizeServiceImpl struct {
	store       secondary.TabularStore
	historyRepo secondary.HistoryRepository
	logger      *zap.Logger
	source      randomize.Source
	iterations  randomize.IterationTable
}

// RandomizeOption configures a RandomizeServiceImpl.
type RandomizeOption func(*RandomizeServiceImpl)

// WithSource replaces the random source.
func WithSource(src randomize.Source) RandomizeOption {
	return func(s *RandomizeServiceImpl) { s.source = src }
}

// WithIterations replaces the swap iteration table.
func WithIterations(t randomize.IterationTable) RandomizeOption {
	return func(s *RandomizeServiceImpl) { s.iterations = t }
}

// NewRandomizeService creates a new RandomizeService with injected dependencies.
func NewRandomizeService(store secondary.TabularStore, historyRepo secondary.HistoryRepository, logger *zap.Logger, opts ...RandomizeOption) *RandomizeServiceImpl {
	s := &RandomizeServiceImpl{
		store:       store,
		historyRepo: historyRepo,
		logger:      logger,
		source:      randomize.NewSource(),
		iterations:  randomize.DefaultIterations(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Randomize loads the working set, runs the mutator and records the run.
func (s *RandomizeServiceImpl) Randomize(ctx context.Context, req randomize.Request) (*primary.RandomizeResponse, error) {
	if check := randomize.CanRandomize(req); !check.Allowed {
		return nil, &errs.ConfigurationError{Reason: check.Reason}
	}

	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	working, err := s.loadCreatures(ctx, req.Blacklist, false)
	if err != nil {
		return nil, err
	}
	var blacklisted []randomize.Creature
	if req.DeleteBlacklisted && len(req.Blacklist) > 0 {
		blacklisted, err = s.loadCreatures(ctx, req.Blacklist, true)
		if err != nil {
			return nil, err
		}
	}
	logger.Info("randomize started",
		zap.Int("working_set", len(working)),
		zap.Int("blacklisted", len(blacklisted)),
		zap.Strings("blacklist", req.Blacklist),
	)

	mutator := randomize.NewMutator(s.source, logger)
	mutator.Iterations = s.iterations
	report, runErr := mutator.Run(ctx, req, working, blacklisted)

	s.recordRun(ctx, logger, runID, req, report, runErr)

	resp := &primary.RandomizeResponse{
		RunID:       runID,
		WorkingSet:  len(working),
		Blacklisted: len(blacklisted),
		Report:      report,
	}
	if runErr != nil {
		logger.Error("randomize aborted", zap.Error(runErr))
		return resp, runErr
	}
	logger.Info("randomize finished", zap.Any("report", report))
	return resp, nil
}

// loadCreatures selects creatures whose race is outside the blacklist, or
// inside it when inBlacklist is set.
func (s *RandomizeServiceImpl) loadCreatures(ctx context.Context, blacklist []string, inBlacklist bool) ([]randomize.Creature, error) {
	tbl, _ := schema.Lookup(schema.Creature)

	stmt := fmt.Sprintf("SELECT %s FROM %s", strings.Join(tbl.Columns(), ", "), tbl.Name)
	args := make([]any, len(blacklist))
	if len(blacklist) > 0 {
		marks := make([]string, len(blacklist))
		for i, race := range blacklist {
			marks[i] = "?"
			args[i] = race
		}
		op := "NOT IN"
		if inBlacklist {
			op = "IN"
		}
		stmt += fmt.Sprintf(" WHERE %s %s (%s)", tbl.MustColumn(schema.FieldRace), op, strings.Join(marks, ", "))
	}

	rs, err := s.store.Execute(ctx, stmt+";", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load creatures: %w", err)
	}

	creatures := make([]randomize.Creature, rs.Len())
	for i, row := range rs.Rows {
		creatures[i] = models.FromRow(s.store, tbl, row)
	}
	return creatures, nil
}

func (s *RandomizeServiceImpl) recordRun(ctx context.Context, logger *zap.Logger, runID string, req randomize.Request, report randomize.Report, runErr error) {
	options, err := json.Marshal(req)
	if err != nil {
		logger.Warn("failed to encode run options", zap.Error(err))
		options = []byte("{}")
	}
	rec := &secondary.RunRecord{
		ID:         runID,
		Options:    string(options),
		Swaps:      report.Swaps,
		Reassigned: report.Reassigned,
		Jittered:   report.Jittered,
		Duplicated: report.Duplicated,
		Deleted:    report.Deleted,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	if err := s.historyRepo.RecordRun(ctx, rec); err != nil {
		logger.Warn("failed to record run", zap.Error(err))
	}
}

// Ensure RandomizeServiceImpl implements the interface.
var _ primary.RandomizeService = (*RandomizeServiceImpl)(nil)
