package randomize

import (
	"fmt"

	"github.com/example/bestiary/internal/core/schema"
)

// Group is one partition of the working set.
type Group struct {
	Key     string
	Members []Creature
}

// Partition groups creatures by race or class, keeping first-seen key order.
// Creatures keep their working-set order inside a group.
func Partition(creatures []Creature, g Grouping) []Group {
	field := schema.FieldRace
	if g == GroupClass {
		field = schema.FieldClass
	}

	var groups []Group
	pos := make(map[string]int)
	for _, c := range creatures {
		key := keyOf(c.Get(field))
		i, ok := pos[key]
		if !ok {
			i = len(groups)
			pos[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Members = append(groups[i].Members, c)
	}
	return groups
}

func keyOf(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
