package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/example/bestiary/internal/ports/primary"
)

// mockPlannerService implements primary.BuildPlannerService for testing
type mockPlannerService struct {
	view       *primary.PlanView
	lastAssign primary.AssignRequest
}

func (m *mockPlannerService) Show(ctx context.Context) (*primary.PlanView, error) {
	return m.view, nil
}

func (m *mockPlannerService) Assign(ctx context.Context, req primary.AssignRequest) (*primary.RecordRef, error) {
	m.lastAssign = req
	return &primary.RecordRef{Table: "creature", ID: 1, Name: "Ember", Detail: "Dragon Chaos", Found: true}, nil
}

func (m *mockPlannerService) Pop(ctx context.Context, slot, kind string) error { return nil }

func (m *mockPlannerService) Reset(ctx context.Context, slot string) error { return nil }

func (m *mockPlannerService) Export(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "{}\n")
	return err
}

func (m *mockPlannerService) Import(ctx context.Context, r io.Reader) error { return nil }

func TestPlanAdapter_Show(t *testing.T) {
	mock := &mockPlannerService{view: &primary.PlanView{Slots: []*primary.SlotView{
		{
			Name:      "creature1",
			Creature1: &primary.RecordRef{Table: "creature", ID: 1, Name: "Ember", Detail: "Dragon Chaos", Found: true},
			Spells: []*primary.RecordRef{
				{Table: "spell", ID: 4, Name: "Bolt", Found: true},
				{Table: "spell", ID: 9, Found: false},
			},
		},
		{Name: "creature2"},
	}}}
	var out bytes.Buffer

	if err := NewPlanAdapter(mock, &out).Show(context.Background(), false); err != nil {
		t.Fatalf("Show failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"creature1:",
		"Ember #1 [Dragon Chaos]",
		"- Bolt #4",
		"#9 (missing from spell)",
		"creature2: (empty)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPlanAdapter_Assign(t *testing.T) {
	mock := &mockPlannerService{}
	var out bytes.Buffer

	req := primary.AssignRequest{Slot: "creature1", Kind: "creature1", Ref: "Ember"}
	if err := NewPlanAdapter(mock, &out).Assign(context.Background(), req); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if mock.lastAssign != req {
		t.Errorf("request = %+v", mock.lastAssign)
	}
	if !strings.Contains(out.String(), "✓ creature1 creature1 → Ember #1") {
		t.Errorf("output = %q", out.String())
	}
}
