package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookup_KnownTables(t *testing.T) {
	want := []string{Creature, Mat, Passive, RDB, Spell}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	for _, name := range want {
		tbl, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", name)
		}
		if tbl.MustColumn(tbl.IDField) != "column1" {
			t.Errorf("%s: ID column = %q, want column1", name, tbl.MustColumn(tbl.IDField))
		}
		if _, ok := tbl.Field(tbl.NameField); !ok {
			t.Errorf("%s: missing name field", name)
		}
		if _, ok := tbl.Field(tbl.CommitKey); !ok {
			t.Errorf("%s: commit key %q is not a field", name, tbl.CommitKey)
		}
	}

	if _, ok := Lookup("weapons"); ok {
		t.Error("expected weapons to be unknown")
	}
}

func TestTable_Column(t *testing.T) {
	tbl, _ := Lookup(Creature)

	tests := []struct {
		in   string
		want string
	}{
		{FieldName, "column9"},
		{FieldHealth, "column6"},
		{FieldRace, "column13"},
		{"column6", "column6"},
		{"Unknown", "Unknown"},
	}
	for _, tt := range tests {
		if got := tbl.Column(tt.in); got != tt.want {
			t.Errorf("Column(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTable_LogicalName(t *testing.T) {
	tbl, _ := Lookup(Spell)

	if got := tbl.LogicalName("column5"); got != FieldName {
		t.Errorf("LogicalName(column5) = %q, want Name", got)
	}
	if got := tbl.LogicalName("column99"); got != "column99" {
		t.Errorf("LogicalName(column99) = %q, want passthrough", got)
	}
}

func TestTable_Joins(t *testing.T) {
	creature, _ := Lookup(Creature)
	j, ok := creature.JoinFor("column12")
	if !ok {
		t.Fatal("expected creature passive join")
	}
	if j.Target != Passive || j.TargetColumn != "column1" {
		t.Errorf("join = %+v", j)
	}
	if _, ok := creature.JoinFor("column9"); ok {
		t.Error("expected no join on name column")
	}
}
