package app

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/ports/primary"
)

func TestRecordService_Show(t *testing.T) {
	env := setupTestEnv(t)
	seedBestiary(t, env)
	svc := NewRecordService(env.store, env.logger)
	ctx := context.Background()

	byName, err := svc.Show(ctx, "creature", "Ember")
	if err != nil {
		t.Fatalf("Show by name failed: %v", err)
	}
	byID, err := svc.Show(ctx, "creature", "1")
	if err != nil {
		t.Fatalf("Show by id failed: %v", err)
	}
	if diff := cmp.Diff(byName, byID); diff != "" {
		t.Errorf("name and id lookups differ (-name +id):\n%s", diff)
	}

	if v, _ := byName.Get("Race"); v != "Dragon" {
		t.Errorf("Race = %q, want Dragon", v)
	}
	for _, f := range byName.Fields {
		if f.Name == "Passive" && (f.Value != "12" || f.Joined != "Regen: Heals each turn") {
			t.Errorf("Passive = %+v", f)
		}
	}
	if len(byName.Fields) != 16 || byName.Fields[0].Name != "ID" {
		t.Errorf("fields not in descriptor order: %+v", byName.Fields)
	}

	_, err = svc.Show(ctx, "creature", "Nobody")
	if !errs.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestRecordService_Set(t *testing.T) {
	env := setupTestEnv(t)
	seedBestiary(t, env)
	svc := NewRecordService(env.store, env.logger)
	ctx := context.Background()

	rec, err := svc.Set(ctx, primary.SetFieldsRequest{
		Table: "creature",
		Ref:   "Frost",
		Changes: []primary.FieldChange{
			{Field: "Class", Value: "Death"},
			{Field: "Health", Value: "250"},
		},
	})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := rec.Get("Health"); v != "250" {
		t.Errorf("returned Health = %q", v)
	}

	reloaded, err := svc.Show(ctx, "creature", "2")
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	for field, want := range map[string]string{"Class": "Death", "Health": "250", "Race": "Golem"} {
		if got, _ := reloaded.Get(field); got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}
}

func TestRecordService_SetRejectsBadInput(t *testing.T) {
	env := setupTestEnv(t)
	seedBestiary(t, env)
	svc := NewRecordService(env.store, env.logger)
	ctx := context.Background()

	tests := []struct {
		name    string
		changes []primary.FieldChange
	}{
		{"no changes", nil},
		{"unknown field", []primary.FieldChange{{Field: "Colour", Value: "red"}}},
		{"non-numeric stat", []primary.FieldChange{{Field: "Speed", Value: "fast"}}},
		{"identifier", []primary.FieldChange{{Field: "ID", Value: "9"}}},
		{"commit key", []primary.FieldChange{{Field: "Name", Value: "Glacier"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Set(ctx, primary.SetFieldsRequest{Table: "creature", Ref: "Frost", Changes: tt.changes})
			if err == nil {
				t.Error("expected error")
			}
		})
	}

	rec, _ := svc.Show(ctx, "creature", "Frost")
	if v, _ := rec.Get("Speed"); v != "50" {
		t.Errorf("Speed changed to %q after rejected set", v)
	}
}

func TestRecordService_DuplicateAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	seedBestiary(t, env)
	svc := NewRecordService(env.store, env.logger)
	ctx := context.Background()

	dup, err := svc.Duplicate(ctx, "Frost")
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	want := &primary.DuplicateResponse{SourceName: "Frost", NewID: 6, NewName: "Shiny Frosty"}
	if diff := cmp.Diff(want, dup); diff != "" {
		t.Errorf("duplicate mismatch (-want +got):\n%s", diff)
	}

	shiny, err := svc.Show(ctx, "creature", "Shiny Frosty")
	if err != nil {
		t.Fatalf("Show duplicate failed: %v", err)
	}
	for field, want := range map[string]string{"ID": "6", "Attack": "25", "Health": "110", "Speed": "60", "Mana": "0", "Tags": "CUSTOM SHINY CREATURE"} {
		if got, _ := shiny.Get(field); got != want {
			t.Errorf("duplicate %s = %q, want %q", field, got, want)
		}
	}

	if err := svc.Delete(ctx, "Ember"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	deleted, _ := svc.Show(ctx, "creature", "Ember")
	for field, want := range map[string]string{"Passive": "919", "Attack": "1", "Defense": "1", "Health": "1", "Intelligence": "1", "Speed": "1", "Tags": "DELETED CREATURE"} {
		if got, _ := deleted.Get(field); got != want {
			t.Errorf("deleted %s = %q, want %q", field, got, want)
		}
	}

	if _, err := svc.Duplicate(ctx, "Nobody"); !errs.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}
