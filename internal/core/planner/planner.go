// Package planner holds the build planner model: six named build slots, each
// referencing creatures, materials, traits and spells by identifier only.
// Resolution into full records happens in the app layer.
package planner

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/example/bestiary/internal/core/schema"
)

// Unset marks an empty single-valued reference.
const Unset int64 = -1

// SlotCount is the number of build slots in a plan.
const SlotCount = 6

// Slot kinds accepted by the set/add/pop operations.
const (
	KindCreature1        = "creature1"
	KindCreature2        = "creature2"
	KindArtifactSpell    = "artifact-spell"
	KindSpell            = "spell"
	KindArtifactMaterial = "artifact-material"
	KindArtifactTrait    = "artifact-trait"
)

// Slot is one build. Field names match the exported JSON document.
type Slot struct {
	Creature1ID       int64   `json:"creature1ID"`
	Creature2ID       int64   `json:"creature2ID"`
	ArtifactMaterials []int64 `json:"artifactMaterials"`
	ArtifactTraits    []int64 `json:"artifactTraits"`
	ArtifactSpell     int64   `json:"artifactSpell"`
	Spells            []int64 `json:"spells"`
}

// NewSlot returns an empty slot.
func NewSlot() *Slot {
	s := &Slot{}
	s.Reset()
	return s
}

// Reset clears every reference.
func (s *Slot) Reset() {
	s.Creature1ID = Unset
	s.Creature2ID = Unset
	s.ArtifactMaterials = []int64{}
	s.ArtifactTraits = []int64{}
	s.ArtifactSpell = Unset
	s.Spells = []int64{}
}

// Set stores id under kind. Single-valued kinds are overwritten, list kinds
// are appended to.
func (s *Slot) Set(kind string, id int64) error {
	switch kind {
	case KindCreature1:
		s.Creature1ID = id
	case KindCreature2:
		s.Creature2ID = id
	case KindArtifactSpell:
		s.ArtifactSpell = id
	case KindSpell:
		s.Spells = append(s.Spells, id)
	case KindArtifactMaterial:
		s.ArtifactMaterials = append(s.ArtifactMaterials, id)
	case KindArtifactTrait:
		s.ArtifactTraits = append(s.ArtifactTraits, id)
	default:
		return fmt.Errorf("unknown slot field %q", kind)
	}
	return nil
}

// Pop removes the last entry of a list kind. Popping an empty list is a no-op.
func (s *Slot) Pop(kind string) error {
	switch kind {
	case KindSpell:
		s.Spells = pop(s.Spells)
	case KindArtifactMaterial:
		s.ArtifactMaterials = pop(s.ArtifactMaterials)
	case KindArtifactTrait:
		s.ArtifactTraits = pop(s.ArtifactTraits)
	default:
		return fmt.Errorf("cannot pop %q (want spell, artifact-material or artifact-trait)", kind)
	}
	return nil
}

func pop(ids []int64) []int64 {
	if len(ids) == 0 {
		return ids
	}
	return ids[:len(ids)-1]
}

// IsEmpty reports whether the slot references nothing.
func (s *Slot) IsEmpty() bool {
	return s.Creature1ID == Unset && s.Creature2ID == Unset && s.ArtifactSpell == Unset &&
		len(s.Spells) == 0 && len(s.ArtifactMaterials) == 0 && len(s.ArtifactTraits) == 0
}

// TableFor returns the table a kind references.
func TableFor(kind string) (string, error) {
	switch kind {
	case KindCreature1, KindCreature2:
		return schema.Creature, nil
	case KindArtifactSpell, KindSpell:
		return schema.Spell, nil
	case KindArtifactMaterial:
		return schema.Mat, nil
	case KindArtifactTrait:
		return schema.Passive, nil
	}
	return "", fmt.Errorf("unknown slot field %q", kind)
}

// Plan is the set of named slots.
type Plan struct {
	Slots map[string]*Slot
}

// New returns a plan with slots creature1..creature6, all empty.
func New() *Plan {
	p := &Plan{Slots: make(map[string]*Slot, SlotCount)}
	for i := 1; i <= SlotCount; i++ {
		p.Slots[SlotName(i)] = NewSlot()
	}
	return p
}

// SlotName returns the document key of slot n (1-based).
func SlotName(n int) string {
	return fmt.Sprintf("creature%d", n)
}

// Slot returns a slot by name.
func (p *Plan) Slot(name string) (*Slot, error) {
	s, ok := p.Slots[name]
	if !ok {
		return nil, fmt.Errorf("unknown build slot %q (want creature1..creature%d)", name, SlotCount)
	}
	return s, nil
}

// Names returns slot names in numeric order.
func (p *Plan) Names() []string {
	names := make([]string, 0, len(p.Slots))
	for name := range p.Slots {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// MarshalJSON writes the plan as a plain slot-name to slot document.
func (p *Plan) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Slots)
}

// UnmarshalJSON replaces the plan with a fresh one and merges data into it.
func (p *Plan) UnmarshalJSON(data []byte) error {
	*p = *New()
	return p.Merge(data)
}

// Merge shallow-merges a document into existing slots: fields present in the
// document overwrite, absent fields are kept, unknown slot names are ignored.
func (p *Plan) Merge(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid build data: %w", err)
	}
	for name, raw := range doc {
		slot, ok := p.Slots[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, slot); err != nil {
			return fmt.Errorf("invalid build data for %s: %w", name, err)
		}
	}
	return nil
}
