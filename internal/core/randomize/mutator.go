package randomize

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/core/schema"
)

// Creature is the record capability the mutator needs.
type Creature interface {
	Get(field string) any
	Set(field string, value any) error
	Commit(ctx context.Context) error
	Duplicate(ctx context.Context) (float64, error)
	SoftDelete(ctx context.Context) error
}

// Report counts what a run changed.
type Report struct {
	Deleted    int
	Duplicated int
	Swaps      int
	Reassigned int
	Jittered   int
}

// Mutator runs randomization passes over an in-memory working set.
type Mutator struct {
	Source     Source
	Iterations IterationTable
	Logger     *zap.Logger
}

// NewMutator creates a mutator with the default iteration table.
// A nil source uses NewSource, a nil logger discards output.
func NewMutator(src Source, logger *zap.Logger) *Mutator {
	if src == nil {
		src = NewSource()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mutator{Source: src, Iterations: DefaultIterations(), Logger: logger}
}

// Run executes the passes selected by req in fixed order: blacklist deletion,
// duplication, passive swap, race swap, class reassignment, stat jitter.
// working holds the non-blacklisted creatures, blacklisted the creatures whose
// race is blacklisted. The first failing commit aborts the remaining passes;
// earlier commits stay applied.
func (m *Mutator) Run(ctx context.Context, req Request, working, blacklisted []Creature) (Report, error) {
	var report Report

	if check := CanRandomize(req); !check.Allowed {
		return report, &errs.ConfigurationError{Reason: check.Reason}
	}
	grouping := req.Grouping()

	if req.DeleteBlacklisted {
		if err := m.deleteBlacklisted(ctx, blacklisted, &report); err != nil {
			return report, err
		}
	}

	if req.AddShinies {
		if err := m.addShinies(ctx, working, req.Shinies(), &report); err != nil {
			return report, err
		}
	}

	if req.RandomizePassives {
		if err := m.swap(ctx, working, grouping, PassPassiveSwap, schema.FieldPassive, &report); err != nil {
			return report, err
		}
	}

	if req.RandomizeRaces {
		if grouping == GroupClass {
			if err := m.swap(ctx, working, grouping, PassRaceSwap, schema.FieldRace, &report); err != nil {
				return report, err
			}
		} else {
			m.Logger.Debug("race swap skipped", zap.String("grouping", string(grouping)))
		}
	}

	if req.RandomizeClasses {
		if err := m.reassignClasses(ctx, working, grouping, &report); err != nil {
			return report, err
		}
	}

	if req.RandomizeStats {
		if err := m.jitterStats(ctx, working, req.Stats, &report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (m *Mutator) deleteBlacklisted(ctx context.Context, blacklisted []Creature, report *Report) error {
	for _, c := range blacklisted {
		if err := c.SoftDelete(ctx); err != nil {
			return fmt.Errorf("failed to delete blacklisted creature %v: %w", c.Get(schema.FieldName), err)
		}
		report.Deleted++
	}
	m.Logger.Info("blacklisted creatures deleted", zap.Int("count", report.Deleted))
	return nil
}

// addShinies duplicates n uniformly drawn creatures. Duplicates are not
// added to the working set.
func (m *Mutator) addShinies(ctx context.Context, working []Creature, n int, report *Report) error {
	if len(working) == 0 {
		m.Logger.Warn("no creatures to duplicate")
		return nil
	}
	for i := 0; i < n; i++ {
		c := working[index(m.Source, len(working))]
		id, err := c.Duplicate(ctx)
		if errors.Is(err, errs.ErrNoIdentifiers) {
			m.Logger.Warn("duplication skipped", zap.Error(err))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to duplicate %v: %w", c.Get(schema.FieldName), err)
		}
		report.Duplicated++
		m.Logger.Debug("shiny created", zap.Any("source", c.Get(schema.FieldName)), zap.Float64("id", id))
	}
	m.Logger.Info("shinies added", zap.Int("count", report.Duplicated))
	return nil
}

// swap exchanges field between random pairs within each partition. A draw
// of two equal indices is a no-op. Both records are committed after every
// exchange.
func (m *Mutator) swap(ctx context.Context, working []Creature, g Grouping, pass, field string, report *Report) error {
	iterations := m.Iterations.For(pass, g)
	before := report.Swaps

	for _, p := range Partition(working, g) {
		n := len(p.Members)
		if n < 2 {
			continue
		}
		for i := 0; i < iterations; i++ {
			i1 := index(m.Source, n)
			i2 := index(m.Source, n)
			if i1 == i2 {
				continue
			}
			a, b := p.Members[i1], p.Members[i2]
			av, bv := a.Get(field), b.Get(field)
			if err := a.Set(field, bv); err != nil {
				return err
			}
			if err := b.Set(field, av); err != nil {
				return err
			}
			if err := a.Commit(ctx); err != nil {
				return fmt.Errorf("%s: %w", pass, err)
			}
			if err := b.Commit(ctx); err != nil {
				return fmt.Errorf("%s: %w", pass, err)
			}
			report.Swaps++
		}
	}

	m.Logger.Info("swap pass complete",
		zap.String("pass", pass),
		zap.String("grouping", string(g)),
		zap.Int("iterations", iterations),
		zap.Int("swaps", report.Swaps-before),
	)
	return nil
}

// reassignClasses draws one class per race partition under race grouping,
// and one class per record otherwise.
func (m *Mutator) reassignClasses(ctx context.Context, working []Creature, g Grouping, report *Report) error {
	assign := func(c Creature, class string) error {
		if err := c.Set(schema.FieldClass, class); err != nil {
			return err
		}
		if err := c.Commit(ctx); err != nil {
			return fmt.Errorf("class reassignment: %w", err)
		}
		report.Reassigned++
		return nil
	}

	if g == GroupRace {
		for _, p := range Partition(working, g) {
			class := Classes[index(m.Source, len(Classes))]
			for _, c := range p.Members {
				if err := assign(c, class); err != nil {
					return err
				}
			}
		}
	} else {
		for _, c := range working {
			if err := assign(c, Classes[index(m.Source, len(Classes))]); err != nil {
				return err
			}
		}
	}

	m.Logger.Info("classes reassigned", zap.String("grouping", string(g)), zap.Int("count", report.Reassigned))
	return nil
}

type statMax struct {
	field string
	max   int
}

func statMaxima(j StatJitter) []statMax {
	return []statMax{
		{schema.FieldHealth, j.Health},
		{schema.FieldAttack, j.Attack},
		{schema.FieldDefense, j.Defense},
		{schema.FieldIntelligence, j.Intelligence},
		{schema.FieldSpeed, j.Speed},
	}
}

// jitterStats adds floor(max*u) to each configured stat of every record.
// Stats with a zero maximum consume no draws. Each record is committed once.
func (m *Mutator) jitterStats(ctx context.Context, working []Creature, j StatJitter, report *Report) error {
	maxima := statMaxima(j)
	for _, c := range working {
		changed := false
		for _, s := range maxima {
			if s.max == 0 {
				continue
			}
			delta := math.Floor(float64(s.max) * m.Source.Float64())
			v, ok := schema.Number(c.Get(s.field))
			if !ok {
				m.Logger.Debug("non-numeric stat skipped",
					zap.Any("creature", c.Get(schema.FieldName)), zap.String("stat", s.field))
				continue
			}
			if err := c.Set(s.field, math.Floor(v+delta)); err != nil {
				return err
			}
			changed = true
		}
		if !changed {
			continue
		}
		if err := c.Commit(ctx); err != nil {
			return fmt.Errorf("stat jitter: %w", err)
		}
		report.Jittered++
	}
	m.Logger.Info("stats jittered", zap.Int("count", report.Jittered))
	return nil
}
