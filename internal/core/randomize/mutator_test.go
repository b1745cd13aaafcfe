package randomize

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/core/schema"
)

// scriptedSource replays values and counts draws. It wraps around when the
// script runs out.
type scriptedSource struct {
	values []float64
	draws  int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.values) == 0 {
		s.draws++
		return 0
	}
	v := s.values[s.draws%len(s.values)]
	s.draws++
	return v
}

type fakeCreature struct {
	fields     map[string]any
	commits    int
	duplicates int
	deleted    bool
	commitErr  error
	dupErr     error
}

func newCreature(name, race, class string, passive float64) *fakeCreature {
	return &fakeCreature{fields: map[string]any{
		schema.FieldName:         name,
		schema.FieldRace:         race,
		schema.FieldClass:        class,
		schema.FieldPassive:      passive,
		schema.FieldHealth:       100.0,
		schema.FieldAttack:       20.0,
		schema.FieldDefense:      30.0,
		schema.FieldIntelligence: 40.0,
		schema.FieldSpeed:        50.0,
	}}
}

func (c *fakeCreature) Get(field string) any { return c.fields[field] }

func (c *fakeCreature) Set(field string, value any) error {
	c.fields[field] = value
	return nil
}

func (c *fakeCreature) Commit(ctx context.Context) error {
	if c.commitErr != nil {
		return c.commitErr
	}
	c.commits++
	return nil
}

func (c *fakeCreature) Duplicate(ctx context.Context) (float64, error) {
	if c.dupErr != nil {
		return 0, c.dupErr
	}
	c.duplicates++
	return float64(100 + c.duplicates), nil
}

func (c *fakeCreature) SoftDelete(ctx context.Context) error {
	c.deleted = true
	return nil
}

func asCreatures(cs ...*fakeCreature) []Creature {
	out := make([]Creature, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func TestPartition_FirstSeenOrder(t *testing.T) {
	a := newCreature("a", "Golem", "Chaos", 1)
	b := newCreature("b", "Dragon", "Life", 2)
	c := newCreature("c", "Golem", "Life", 3)

	groups := Partition(asCreatures(a, b, c), GroupRace)
	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	if diff := cmp.Diff([]string{"Golem", "Dragon"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if len(groups[0].Members) != 2 || groups[0].Members[1] != Creature(c) {
		t.Errorf("Golem members = %v", groups[0].Members)
	}

	byClass := Partition(asCreatures(a, b, c), GroupClass)
	if len(byClass) != 2 || byClass[1].Key != "Life" || len(byClass[1].Members) != 2 {
		t.Errorf("class partition = %+v", byClass)
	}
}

func TestRun_RejectsBadGroupingBeforeMutation(t *testing.T) {
	src := &scriptedSource{}
	m := NewMutator(src, nil)
	bad := newCreature("x", "Dragon", "Chaos", 1)

	_, err := m.Run(context.Background(),
		Request{GroupByRace: true, GroupByClass: true, DeleteBlacklisted: true, AddShinies: true},
		asCreatures(newCreature("a", "Golem", "Life", 1)), asCreatures(bad))

	var cfg *errs.ConfigurationError
	if !errors.As(err, &cfg) {
		t.Fatalf("Run error = %v, want ConfigurationError", err)
	}
	if bad.deleted || src.draws != 0 {
		t.Errorf("mutation happened before validation: deleted=%v draws=%d", bad.deleted, src.draws)
	}
}

func TestRun_SingletonPartitionsNeverSwap(t *testing.T) {
	src := &scriptedSource{values: []float64{0, 0.9}}
	m := NewMutator(src, nil)
	working := asCreatures(
		newCreature("a", "Golem", "Chaos", 1),
		newCreature("b", "Dragon", "Life", 2),
		newCreature("c", "Bird", "Death", 3),
	)

	report, err := m.Run(context.Background(), Request{GroupByRace: true, RandomizePassives: true}, working, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Swaps != 0 || src.draws != 0 {
		t.Errorf("swaps = %d, draws = %d; want 0, 0", report.Swaps, src.draws)
	}
	for _, c := range working {
		if c.(*fakeCreature).commits != 0 {
			t.Errorf("%v committed without a swap", c.Get(schema.FieldName))
		}
	}
}

func TestRun_PassiveSwapWithinRace(t *testing.T) {
	// Draws per iteration: (0, 0.5) -> indices 0,1 swap; (0.5, 0.5) -> equal, skipped.
	src := &scriptedSource{values: []float64{0, 0.5, 0.5, 0.5}}
	m := NewMutator(src, nil)
	m.Iterations = IterationTable{IterationKey(PassPassiveSwap, GroupRace): 2}

	a := newCreature("a", "Golem", "Chaos", 1)
	b := newCreature("b", "Golem", "Life", 2)
	loner := newCreature("c", "Dragon", "Life", 3)

	report, err := m.Run(context.Background(), Request{GroupByRace: true, RandomizePassives: true}, asCreatures(a, b, loner), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Swaps != 1 {
		t.Errorf("swaps = %d, want 1", report.Swaps)
	}
	if a.fields[schema.FieldPassive] != 2.0 || b.fields[schema.FieldPassive] != 1.0 {
		t.Errorf("passives = %v, %v; want 2, 1", a.fields[schema.FieldPassive], b.fields[schema.FieldPassive])
	}
	if a.commits != 1 || b.commits != 1 || loner.commits != 0 {
		t.Errorf("commits = %d, %d, %d; want 1, 1, 0", a.commits, b.commits, loner.commits)
	}
	if src.draws != 4 {
		t.Errorf("draws = %d, want 4", src.draws)
	}
}

func TestRun_RaceSwapOnlyUnderClassGrouping(t *testing.T) {
	src := &scriptedSource{values: []float64{0, 0.5}}
	m := NewMutator(src, nil)
	m.Iterations = IterationTable{IterationKey(PassRaceSwap, GroupClass): 1}

	a := newCreature("a", "Golem", "Life", 1)
	b := newCreature("b", "Dragon", "Life", 2)

	if _, err := m.Run(context.Background(), Request{GroupByRace: true, RandomizeRaces: true}, asCreatures(a, b), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.fields[schema.FieldRace] != "Golem" || src.draws != 0 {
		t.Errorf("race swap ran under race grouping")
	}

	report, err := m.Run(context.Background(), Request{GroupByClass: true, RandomizeRaces: true}, asCreatures(a, b), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Swaps != 1 || a.fields[schema.FieldRace] != "Dragon" || b.fields[schema.FieldRace] != "Golem" {
		t.Errorf("swaps = %d, races = %v, %v", report.Swaps, a.fields[schema.FieldRace], b.fields[schema.FieldRace])
	}
}

func TestRun_ClassReassignment(t *testing.T) {
	t.Run("one class per race", func(t *testing.T) {
		// Golem draws index 1 (Sorcery), Dragon draws index 4 (Life).
		src := &scriptedSource{values: []float64{0.2, 0.99}}
		m := NewMutator(src, nil)
		a := newCreature("a", "Golem", "Chaos", 1)
		b := newCreature("b", "Dragon", "Chaos", 2)
		c := newCreature("c", "Golem", "Death", 3)

		report, err := m.Run(context.Background(), Request{GroupByRace: true, RandomizeClasses: true}, asCreatures(a, b, c), nil)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		got := []any{a.fields[schema.FieldClass], b.fields[schema.FieldClass], c.fields[schema.FieldClass]}
		if diff := cmp.Diff([]any{"Sorcery", "Life", "Sorcery"}, got); diff != "" {
			t.Errorf("classes mismatch (-want +got):\n%s", diff)
		}
		if report.Reassigned != 3 || src.draws != 2 {
			t.Errorf("reassigned = %d, draws = %d; want 3, 2", report.Reassigned, src.draws)
		}
	})

	t.Run("one class per record", func(t *testing.T) {
		src := &scriptedSource{values: []float64{0, 0.4, 0.6}}
		m := NewMutator(src, nil)
		a := newCreature("a", "Golem", "Life", 1)
		b := newCreature("b", "Golem", "Life", 2)
		c := newCreature("c", "Golem", "Life", 3)

		if _, err := m.Run(context.Background(), Request{GroupByClass: true, RandomizeClasses: true}, asCreatures(a, b, c), nil); err != nil {
			t.Fatalf("Run: %v", err)
		}
		got := []any{a.fields[schema.FieldClass], b.fields[schema.FieldClass], c.fields[schema.FieldClass]}
		if diff := cmp.Diff([]any{"Chaos", "Nature", "Death"}, got); diff != "" {
			t.Errorf("classes mismatch (-want +got):\n%s", diff)
		}
		if a.commits != 1 || b.commits != 1 || c.commits != 1 {
			t.Errorf("expected one commit per record")
		}
	})
}

func TestRun_StatJitter(t *testing.T) {
	src := &scriptedSource{values: []float64{0.55, 0.99}}
	m := NewMutator(src, nil)
	a := newCreature("a", "Golem", "Life", 1)

	req := Request{GroupByRace: true, RandomizeStats: true, Stats: StatJitter{Health: 10, Speed: 4}}
	report, err := m.Run(context.Background(), req, asCreatures(a), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[string]any{
		schema.FieldHealth:       105.0,
		schema.FieldAttack:       20.0,
		schema.FieldDefense:      30.0,
		schema.FieldIntelligence: 40.0,
		schema.FieldSpeed:        53.0,
	}
	for field, w := range want {
		if diff := cmp.Diff(w, a.fields[field]); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", field, diff)
		}
	}
	if src.draws != 2 {
		t.Errorf("draws = %d, want 2 (zero-max stats draw nothing)", src.draws)
	}
	if a.commits != 1 || report.Jittered != 1 {
		t.Errorf("commits = %d, jittered = %d; want 1, 1", a.commits, report.Jittered)
	}
}

func TestRun_ShiniesAndBlacklist(t *testing.T) {
	src := &scriptedSource{values: []float64{0, 0.7}}
	m := NewMutator(src, nil)
	a := newCreature("a", "Golem", "Life", 1)
	b := newCreature("b", "Bird", "Life", 2)
	dragon := newCreature("d", "Dragon", "Chaos", 3)

	req := Request{GroupByRace: true, DeleteBlacklisted: true, Blacklist: []string{"Dragon"}, AddShinies: true, ShinyCount: 3}
	report, err := m.Run(context.Background(), req, asCreatures(a, b), asCreatures(dragon))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !dragon.deleted || report.Deleted != 1 {
		t.Errorf("dragon deleted = %v, report.Deleted = %d", dragon.deleted, report.Deleted)
	}
	if a.duplicates != 2 || b.duplicates != 1 || report.Duplicated != 3 {
		t.Errorf("duplicates = %d, %d, report = %d; want 2, 1, 3", a.duplicates, b.duplicates, report.Duplicated)
	}
	if dragon.duplicates != 0 {
		t.Error("blacklisted creature was duplicated")
	}
}

func TestRun_ShiniesOnTableWithoutIdentifiers(t *testing.T) {
	src := &scriptedSource{}
	m := NewMutator(src, nil)
	a := newCreature("a", "Golem", "Life", 1)
	a.dupErr = errs.ErrNoIdentifiers

	report, err := m.Run(context.Background(), Request{GroupByRace: true, AddShinies: true, RandomizeClasses: true}, asCreatures(a), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Duplicated != 0 || report.Reassigned != 1 {
		t.Errorf("report = %+v, want no duplicates and later passes still run", report)
	}
}

func TestRun_CommitFailureAbortsLaterPasses(t *testing.T) {
	src := &scriptedSource{values: []float64{0, 0.5}}
	m := NewMutator(src, nil)
	m.Iterations = IterationTable{IterationKey(PassPassiveSwap, GroupRace): 1}

	storeErr := errors.New("disk I/O error")
	a := newCreature("a", "Golem", "Life", 1)
	b := newCreature("b", "Golem", "Life", 2)
	b.commitErr = storeErr

	req := Request{GroupByRace: true, RandomizePassives: true, RandomizeClasses: true}
	report, err := m.Run(context.Background(), req, asCreatures(a, b), nil)
	if !errors.Is(err, storeErr) {
		t.Fatalf("Run error = %v, want %v", err, storeErr)
	}
	if a.commits != 1 {
		t.Errorf("earlier commit should stay applied, commits = %d", a.commits)
	}
	if report.Reassigned != 0 || a.fields[schema.FieldClass] != "Life" {
		t.Errorf("class pass ran after failure: %+v", report)
	}
}
