package primary

import (
	"context"
	"io"
)

// BuildPlannerService defines the primary port for the build planner.
type BuildPlannerService interface {
	// Show returns every slot with references resolved.
	Show(ctx context.Context) (*PlanView, error)

	// Assign sets a single-valued kind or appends to a list kind.
	Assign(ctx context.Context, req AssignRequest) (*RecordRef, error)

	// Pop removes the last entry of a list kind.
	Pop(ctx context.Context, slot, kind string) error

	// Reset clears a slot.
	Reset(ctx context.Context, slot string) error

	// Export writes the plan document.
	Export(ctx context.Context, w io.Writer) error

	// Import merges a plan document into the saved plan.
	Import(ctx context.Context, r io.Reader) error
}

// AssignRequest contains parameters for a slot assignment.
type AssignRequest struct {
	Slot string // creature1..creature6
	Kind string // creature1, creature2, artifact-spell, spell, artifact-material, artifact-trait
	Ref  string // integer text is an ID, anything else a name
}

// PlanView is the resolved plan.
type PlanView struct {
	Slots []*SlotView
}

// SlotView is one resolved slot. Unset single references are nil.
type SlotView struct {
	Name              string
	Creature1         *RecordRef
	Creature2         *RecordRef
	ArtifactSpell     *RecordRef
	Spells            []*RecordRef
	ArtifactMaterials []*RecordRef
	ArtifactTraits    []*RecordRef
}

// RecordRef is a resolved reference. Found is false when the ID no longer
// matches a row.
type RecordRef struct {
	Table  string
	ID     int64
	Name   string
	Detail string
	Found  bool
}
