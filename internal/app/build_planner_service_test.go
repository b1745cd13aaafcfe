package app

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/bestiary/internal/adapters/filesystem"
	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/core/planner"
	"github.com/example/bestiary/internal/ports/primary"
)

func setupPlanner(t *testing.T) (*BuildPlannerServiceImpl, *testEnv) {
	t.Helper()
	env := setupTestEnv(t)
	seedBestiary(t, env)
	env.seed(t, "spell",
		"1{}{}{}Fire{}{}{}Burns{}{}{}3{}{}{}Bolt{}{}{}none",
		"2{}{}{}Ice{}{}{}Freezes{}{}{}1{}{}{}Zap{}{}{}none",
	)
	env.seed(t, "mat", "7{}{}{}Iron{}{}{}x{}{}{}y{}{}{}12")

	store := filesystem.NewPlanStore(filepath.Join(t.TempDir(), "plan.json"))
	return NewBuildPlannerService(env.store, store, env.logger), env
}

func TestBuildPlanner_AssignAndShow(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()

	assignments := []primary.AssignRequest{
		{Slot: "creature2", Kind: planner.KindCreature1, Ref: "Ember"},
		{Slot: "creature2", Kind: planner.KindCreature2, Ref: "2"},
		{Slot: "creature2", Kind: planner.KindArtifactSpell, Ref: "Zap"},
		{Slot: "creature2", Kind: planner.KindSpell, Ref: "Bolt"},
		{Slot: "creature2", Kind: planner.KindSpell, Ref: "2"},
		{Slot: "creature2", Kind: planner.KindArtifactMaterial, Ref: "Iron"},
		{Slot: "creature2", Kind: planner.KindArtifactTrait, Ref: "Thorns"},
	}
	for _, a := range assignments {
		if _, err := svc.Assign(ctx, a); err != nil {
			t.Fatalf("Assign(%+v) failed: %v", a, err)
		}
	}

	view, err := svc.Show(ctx)
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if len(view.Slots) != planner.SlotCount {
		t.Fatalf("slots = %d", len(view.Slots))
	}
	if view.Slots[0].Creature1 != nil {
		t.Errorf("creature1 slot should be empty: %+v", view.Slots[0])
	}

	s := view.Slots[1]
	if s.Name != "creature2" {
		t.Fatalf("second slot = %s", s.Name)
	}
	want := &primary.SlotView{
		Name:          "creature2",
		Creature1:     &primary.RecordRef{Table: "creature", ID: 1, Name: "Ember", Detail: "Dragon Chaos", Found: true},
		Creature2:     &primary.RecordRef{Table: "creature", ID: 2, Name: "Frost", Detail: "Golem Nature", Found: true},
		ArtifactSpell: &primary.RecordRef{Table: "spell", ID: 2, Name: "Zap", Detail: "Ice", Found: true},
		Spells: []*primary.RecordRef{
			{Table: "spell", ID: 1, Name: "Bolt", Detail: "Fire", Found: true},
			{Table: "spell", ID: 2, Name: "Zap", Detail: "Ice", Found: true},
		},
		ArtifactMaterials: []*primary.RecordRef{{Table: "mat", ID: 7, Name: "Iron", Found: true}},
		ArtifactTraits:    []*primary.RecordRef{{Table: "passive", ID: 13, Name: "Thorns", Detail: "Reflects damage", Found: true}},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("slot mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPlanner_AssignErrors(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()

	if _, err := svc.Assign(ctx, primary.AssignRequest{Slot: "creature1", Kind: planner.KindCreature1, Ref: "Nobody"}); !errs.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
	if _, err := svc.Assign(ctx, primary.AssignRequest{Slot: "creature9", Kind: planner.KindCreature1, Ref: "Ember"}); err == nil {
		t.Error("expected error for unknown slot")
	}
	if _, err := svc.Assign(ctx, primary.AssignRequest{Slot: "creature1", Kind: "weapon", Ref: "Ember"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBuildPlanner_PopResetAndStaleReferences(t *testing.T) {
	svc, env := setupPlanner(t)
	ctx := context.Background()

	for _, ref := range []string{"Bolt", "Zap"} {
		if _, err := svc.Assign(ctx, primary.AssignRequest{Slot: "creature1", Kind: planner.KindSpell, Ref: ref}); err != nil {
			t.Fatalf("Assign failed: %v", err)
		}
	}
	if _, err := svc.Assign(ctx, primary.AssignRequest{Slot: "creature1", Kind: planner.KindCreature1, Ref: "Gale"}); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if err := svc.Pop(ctx, "creature1", planner.KindSpell); err != nil {
		t.Fatalf("Pop failed: %v", err)
	}

	// Re-importing the creature table without Gale leaves a stale reference.
	env.seed(t, "creature", creatureLines(creature{id: 1, name: "Ember", nick: "Emby", race: "Dragon", class: "Chaos", passive: 12})...)

	view, err := svc.Show(ctx)
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	s := view.Slots[0]
	if len(s.Spells) != 1 || s.Spells[0].Name != "Bolt" {
		t.Errorf("spells after pop = %+v", s.Spells)
	}
	if s.Creature1 == nil || s.Creature1.Found || s.Creature1.ID != 5 {
		t.Errorf("stale creature = %+v, want ID 5 not found", s.Creature1)
	}

	if err := svc.Reset(ctx, "creature1"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	view, _ = svc.Show(ctx)
	if s := view.Slots[0]; s.Creature1 != nil || len(s.Spells) != 0 {
		t.Errorf("slot after reset = %+v", s)
	}
}

func TestBuildPlanner_ExportImport(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()

	if _, err := svc.Assign(ctx, primary.AssignRequest{Slot: "creature3", Kind: planner.KindCreature1, Ref: "Frost"}); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	doc := `{"creature3": {"creature2ID": 5, "spells": [1]}, "creature7": {"creature1ID": 1}}`
	if err := svc.Import(ctx, strings.NewReader(doc)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	var exported map[string]*planner.Slot
	if err := json.Unmarshal(buf.Bytes(), &exported); err != nil {
		t.Fatalf("export is not a slot document: %v", err)
	}
	if len(exported) != planner.SlotCount {
		t.Errorf("exported %d slots, unknown keys must be ignored", len(exported))
	}

	got := exported["creature3"]
	want := &planner.Slot{
		Creature1ID:       2,
		Creature2ID:       5,
		ArtifactMaterials: []int64{},
		ArtifactTraits:    []int64{},
		ArtifactSpell:     planner.Unset,
		Spells:            []int64{1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("creature3 mismatch (-want +got):\n%s", diff)
	}

	if err := svc.Import(ctx, strings.NewReader("not json")); err == nil {
		t.Error("expected error for invalid document")
	}
}
