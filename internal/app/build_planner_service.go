package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/core/planner"
	"github.com/example/bestiary/internal/core/schema"
	"github.com/example/bestiary/internal/models"
	"github.com/example/bestiary/internal/ports/primary"
	"github.com/example/bestiary/internal/ports/secondary"
)

// BuildPlannerServiceImpl implements the BuildPlannerService interface.
type BuildPlannerServiceImpl struct {
	store     secondary.TabularStore
	planStore secondary.PlanStore
	logger    *zap.Logger
}

// NewBuildPlannerService creates a new BuildPlannerService with injected dependencies.
func NewBuildPlannerService(store secondary.TabularStore, planStore secondary.PlanStore, logger *zap.Logger) *BuildPlannerServiceImpl {
	return &BuildPlannerServiceImpl{
		store:     store,
		planStore: planStore,
		logger:    logger,
	}
}

// Show returns every slot with references resolved.
func (s *BuildPlannerServiceImpl) Show(ctx context.Context) (*primary.PlanView, error) {
	plan, err := s.planStore.Load(ctx)
	if err != nil {
		return nil, err
	}

	view := &primary.PlanView{}
	for _, name := range plan.Names() {
		view.Slots = append(view.Slots, s.resolveSlot(ctx, name, plan.Slots[name]))
	}
	return view, nil
}

// Assign resolves the reference in the kind's table and stores its ID.
func (s *BuildPlannerServiceImpl) Assign(ctx context.Context, req primary.AssignRequest) (*primary.RecordRef, error) {
	table, err := planner.TableFor(req.Kind)
	if err != nil {
		return nil, err
	}

	plan, err := s.planStore.Load(ctx)
	if err != nil {
		return nil, err
	}
	slot, err := plan.Slot(req.Slot)
	if err != nil {
		return nil, err
	}

	h, err := loadRef(ctx, s.store, table, req.Ref)
	if err != nil {
		return nil, err
	}
	ref := toRef(table, h)

	if err := slot.Set(req.Kind, ref.ID); err != nil {
		return nil, err
	}
	if err := s.planStore.Save(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("build slot updated",
		zap.String("slot", req.Slot), zap.String("kind", req.Kind), zap.Int64("id", ref.ID))
	return ref, nil
}

// Pop removes the last entry of a list kind.
func (s *BuildPlannerServiceImpl) Pop(ctx context.Context, slotName, kind string) error {
	return s.update(ctx, slotName, func(slot *planner.Slot) error {
		return slot.Pop(kind)
	})
}

// Reset clears a slot.
func (s *BuildPlannerServiceImpl) Reset(ctx context.Context, slotName string) error {
	return s.update(ctx, slotName, func(slot *planner.Slot) error {
		slot.Reset()
		return nil
	})
}

// Export writes the plan document.
func (s *BuildPlannerServiceImpl) Export(ctx context.Context, w io.Writer) error {
	plan, err := s.planStore.Load(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

// Import merges a document into the saved plan. Present fields overwrite,
// absent fields and unknown slots are left alone.
func (s *BuildPlannerServiceImpl) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}

	plan, err := s.planStore.Load(ctx)
	if err != nil {
		return err
	}
	if err := plan.Merge(data); err != nil {
		return err
	}
	return s.planStore.Save(ctx, plan)
}

func (s *BuildPlannerServiceImpl) update(ctx context.Context, slotName string, fn func(*planner.Slot) error) error {
	plan, err := s.planStore.Load(ctx)
	if err != nil {
		return err
	}
	slot, err := plan.Slot(slotName)
	if err != nil {
		return err
	}
	if err := fn(slot); err != nil {
		return err
	}
	return s.planStore.Save(ctx, plan)
}

func (s *BuildPlannerServiceImpl) resolveSlot(ctx context.Context, name string, slot *planner.Slot) *primary.SlotView {
	return &primary.SlotView{
		Name:              name,
		Creature1:         s.resolveOne(ctx, schema.Creature, slot.Creature1ID),
		Creature2:         s.resolveOne(ctx, schema.Creature, slot.Creature2ID),
		ArtifactSpell:     s.resolveOne(ctx, schema.Spell, slot.ArtifactSpell),
		Spells:            s.resolveList(ctx, schema.Spell, slot.Spells),
		ArtifactMaterials: s.resolveList(ctx, schema.Mat, slot.ArtifactMaterials),
		ArtifactTraits:    s.resolveList(ctx, schema.Passive, slot.ArtifactTraits),
	}
}

// resolveOne loads one referenced record. Unset references are nil; stale
// IDs and unloaded tables come back with Found false.
func (s *BuildPlannerServiceImpl) resolveOne(ctx context.Context, table string, id int64) *primary.RecordRef {
	if id == planner.Unset {
		return nil
	}
	h, err := models.LoadByID(ctx, s.store, table, id)
	if err != nil {
		if !errs.IsNotFound(err) {
			s.logger.Debug("plan reference unresolved", zap.String("table", table), zap.Int64("id", id), zap.Error(err))
		}
		return &primary.RecordRef{Table: table, ID: id}
	}
	return toRef(table, h)
}

func (s *BuildPlannerServiceImpl) resolveList(ctx context.Context, table string, ids []int64) []*primary.RecordRef {
	refs := make([]*primary.RecordRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, s.resolveOne(ctx, table, id))
	}
	return refs
}

// toRef summarizes a record: creatures show race and class, spells their
// class, traits their description.
func toRef(table string, h *models.RecordHandle) *primary.RecordRef {
	id, _ := schema.Number(h.Get(schema.FieldID))
	ref := &primary.RecordRef{
		Table: table,
		ID:    int64(id),
		Name:  models.String(h.Get(schema.FieldName)),
		Found: true,
	}
	switch table {
	case schema.Creature:
		ref.Detail = fmt.Sprintf("%s %s", models.String(h.Get(schema.FieldRace)), models.String(h.Get(schema.FieldClass)))
	case schema.Spell:
		ref.Detail = models.String(h.Get(schema.FieldClass))
	case schema.Passive:
		ref.Detail = models.String(h.Get(schema.FieldDescription))
	}
	return ref
}

// Ensure BuildPlannerServiceImpl implements the interface.
var _ primary.BuildPlannerService = (*BuildPlannerServiceImpl)(nil)
