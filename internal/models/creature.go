package models

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/core/randomize"
	"github.com/example/bestiary/internal/core/schema"
)

const (
	// ShinyPrefix is prepended to the nickname of a duplicated creature.
	ShinyPrefix = "Shiny "
	// ShinyTag marks duplicated creatures.
	ShinyTag = "CUSTOM SHINY CREATURE"
	// DeletedTag marks soft-deleted creatures.
	DeletedTag = "DELETED CREATURE"
	// DisabledPassive is the passive assigned on soft delete.
	DisabledPassive = 919
	// MinStat is the lowest valid stat value.
	MinStat = 1
)

// StatFields are the jitterable creature stats, in jitter order.
var StatFields = []string{
	schema.FieldHealth,
	schema.FieldAttack,
	schema.FieldDefense,
	schema.FieldIntelligence,
	schema.FieldSpeed,
}

// ShinyBonus is added to each stat of a duplicate.
var ShinyBonus = map[string]float64{
	schema.FieldAttack:       5,
	schema.FieldDefense:      5,
	schema.FieldHealth:       10,
	schema.FieldIntelligence: 5,
	schema.FieldSpeed:        10,
}

// NextID returns MAX(ID)+1 for the handle's table. ErrNoIdentifiers is
// returned when the table has no identifiers.
func (h *RecordHandle) NextID(ctx context.Context) (float64, error) {
	idCol := h.table.MustColumn(h.table.IDField)
	v, err := h.store.QueryScalar(ctx, fmt.Sprintf("SELECT MAX(%s) FROM %s;", idCol, h.table.Name))
	if err != nil {
		return 0, fmt.Errorf("failed to read max id: %w", err)
	}
	maxID, ok := schema.Number(v)
	if !ok {
		return 0, fmt.Errorf("%s: %w", h.table.Name, errs.ErrNoIdentifiers)
	}
	return math.Trunc(maxID) + 1, nil
}

// Duplicate inserts a "shiny" copy of the creature and returns its new ID.
// The copy gets boosted stats, zero mana and tier, and the shiny tag.
func (h *RecordHandle) Duplicate(ctx context.Context) (float64, error) {
	if h.table.Name != schema.Creature {
		return 0, fmt.Errorf("duplicate %s: %w", h.table.Name, errs.ErrUnsupported)
	}

	nextID, err := h.NextID(ctx)
	if err != nil {
		return 0, err
	}

	values := h.Fields()
	values[schema.FieldID] = nextID
	values[schema.FieldName] = ShinyPrefix + String(h.fields[schema.FieldNickname])
	for field, bonus := range ShinyBonus {
		if n, ok := schema.Number(values[field]); ok {
			values[field] = n + bonus
		}
	}
	values[schema.FieldMana] = float64(0)
	values[schema.FieldTier] = float64(0)
	values[schema.FieldTags] = ShinyTag

	cols := h.table.Columns()
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, f := range h.table.Fields {
		placeholders[i] = "?"
		args[i] = values[f.Logical]
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		h.table.Name, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if _, err := h.store.Execute(ctx, stmt, args...); err != nil {
		return 0, &errs.StoreOperationError{Op: "insert", Table: h.table.Name, Err: err}
	}
	return nextID, nil
}

// SoftDelete disables the creature in place: disabled passive, every stat at
// the minimum and the deleted tag. The row is never removed.
func (h *RecordHandle) SoftDelete(ctx context.Context) error {
	if h.table.Name != schema.Creature {
		return fmt.Errorf("delete %s: %w", h.table.Name, errs.ErrUnsupported)
	}

	h.fields[schema.FieldPassive] = float64(DisabledPassive)
	for _, f := range StatFields {
		h.fields[f] = float64(MinStat)
	}
	h.fields[schema.FieldTags] = DeletedTag
	h.dirty = true

	return h.Commit(ctx)
}

// Ensure RecordHandle satisfies the mutator's record capability.
var _ randomize.Creature = (*RecordHandle)(nil)
