package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/example/bestiary/internal/ports/primary"
)

// PlanAdapter translates CLI operations to BuildPlannerService calls.
type PlanAdapter struct {
	service primary.BuildPlannerService
	out     io.Writer
}

// NewPlanAdapter creates a new PlanAdapter with the given service.
func NewPlanAdapter(service primary.BuildPlannerService, out io.Writer) *PlanAdapter {
	return &PlanAdapter{
		service: service,
		out:     out,
	}
}

// Show prints every slot. Empty slots are listed by name only unless all is set.
func (a *PlanAdapter) Show(ctx context.Context, all bool) error {
	view, err := a.service.Show(ctx)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}

	for _, s := range view.Slots {
		if isEmptySlot(s) && !all {
			fmt.Fprintf(a.out, "%s: (empty)\n", s.Name)
			continue
		}
		fmt.Fprintf(a.out, "%s:\n", s.Name)
		a.printOne("creature 1", s.Creature1)
		a.printOne("creature 2", s.Creature2)
		a.printOne("artifact spell", s.ArtifactSpell)
		a.printList("spells", s.Spells)
		a.printList("materials", s.ArtifactMaterials)
		a.printList("traits", s.ArtifactTraits)
	}
	return nil
}

// Assign sets or appends a reference.
func (a *PlanAdapter) Assign(ctx context.Context, req primary.AssignRequest) error {
	ref, err := a.service.Assign(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s %s → %s\n", req.Slot, req.Kind, formatRef(ref))
	return nil
}

// Pop removes the last entry of a list kind.
func (a *PlanAdapter) Pop(ctx context.Context, slot, kind string) error {
	if err := a.service.Pop(ctx, slot, kind); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Removed last %s from %s\n", kind, slot)
	return nil
}

// Reset clears a slot.
func (a *PlanAdapter) Reset(ctx context.Context, slot string) error {
	if err := a.service.Reset(ctx, slot); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Cleared %s\n", slot)
	return nil
}

// Export writes the plan document to path, or to the output when path is
// empty or "-".
func (a *PlanAdapter) Export(ctx context.Context, path string) error {
	if path == "" || path == "-" {
		return a.service.Export(ctx, a.out)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := a.service.Export(ctx, f); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Exported plan to %s\n", path)
	return nil
}

// Import merges the document at path into the saved plan.
func (a *PlanAdapter) Import(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	if err := a.service.Import(ctx, f); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Imported plan from %s\n", path)
	return nil
}

func (a *PlanAdapter) printOne(label string, ref *primary.RecordRef) {
	if ref == nil {
		return
	}
	fmt.Fprintf(a.out, "  %-15s %s\n", label+":", formatRef(ref))
}

func (a *PlanAdapter) printList(label string, refs []*primary.RecordRef) {
	if len(refs) == 0 {
		return
	}
	fmt.Fprintf(a.out, "  %s:\n", label)
	for _, r := range refs {
		fmt.Fprintf(a.out, "    - %s\n", formatRef(r))
	}
}

func formatRef(ref *primary.RecordRef) string {
	if !ref.Found {
		return color.New(color.FgYellow).Sprintf("#%d (missing from %s)", ref.ID, ref.Table)
	}
	if ref.Detail == "" {
		return fmt.Sprintf("%s #%d", ref.Name, ref.ID)
	}
	return fmt.Sprintf("%s #%d [%s]", ref.Name, ref.ID, ref.Detail)
}

func isEmptySlot(s *primary.SlotView) bool {
	return s.Creature1 == nil && s.Creature2 == nil && s.ArtifactSpell == nil &&
		len(s.Spells) == 0 && len(s.ArtifactMaterials) == 0 && len(s.ArtifactTraits) == 0
}
