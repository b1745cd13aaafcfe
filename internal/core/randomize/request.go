// Package randomize contains the grouped randomization engine for the
// creature table. It mutates records only through the Creature interface and
// never talks to the store directly.
package randomize

import "fmt"

// Grouping is the attribute records are partitioned by.
type Grouping string

const (
	GroupNone  Grouping = ""
	GroupRace  Grouping = "race"
	GroupClass Grouping = "class"
)

// DefaultShinyCount is the number of duplicates drawn when ShinyCount is zero.
const DefaultShinyCount = 100

// Classes is the class enumeration used by class reassignment.
var Classes = []string{"Chaos", "Sorcery", "Nature", "Death", "Life"}

// StatJitter holds the per-stat maximum increase. Zero leaves a stat alone.
type StatJitter struct {
	Health       int `yaml:"health" json:"health"`
	Attack       int `yaml:"attack" json:"attack"`
	Defense      int `yaml:"defense" json:"defense"`
	Intelligence int `yaml:"intelligence" json:"intelligence"`
	Speed        int `yaml:"speed" json:"speed"`
}

// Request selects the passes of one randomize run.
type Request struct {
	GroupByRace       bool       `yaml:"group_by_race" json:"group_by_race"`
	GroupByClass      bool       `yaml:"group_by_class" json:"group_by_class"`
	Blacklist         []string   `yaml:"blacklist" json:"blacklist"`
	DeleteBlacklisted bool       `yaml:"delete_blacklisted" json:"delete_blacklisted"`
	AddShinies        bool       `yaml:"add_shinies" json:"add_shinies"`
	ShinyCount        int        `yaml:"shiny_count" json:"shiny_count"`
	RandomizePassives bool       `yaml:"randomize_passives" json:"randomize_passives"`
	RandomizeClasses  bool       `yaml:"randomize_classes" json:"randomize_classes"`
	RandomizeRaces    bool       `yaml:"randomize_races" json:"randomize_races"`
	RandomizeStats    bool       `yaml:"randomize_stats" json:"randomize_stats"`
	Stats             StatJitter `yaml:"stats" json:"stats"`
}

// Grouping returns the selected grouping, or GroupNone when zero or both
// flags are set.
func (r Request) Grouping() Grouping {
	switch {
	case r.GroupByRace && !r.GroupByClass:
		return GroupRace
	case r.GroupByClass && !r.GroupByRace:
		return GroupClass
	}
	return GroupNone
}

// Shinies returns the number of duplicates to draw.
func (r Request) Shinies() int {
	if r.ShinyCount == 0 {
		return DefaultShinyCount
	}
	return r.ShinyCount
}

// IterationTable maps "<pass>/<grouping>" to the number of swap attempts
// per partition.
type IterationTable map[string]int

// Swap passes.
const (
	PassPassiveSwap = "passive-swap"
	PassRaceSwap    = "race-swap"
)

// DefaultIterations returns the stock iteration counts.
func DefaultIterations() IterationTable {
	return IterationTable{
		IterationKey(PassPassiveSwap, GroupRace):  20,
		IterationKey(PassPassiveSwap, GroupClass): 500,
		IterationKey(PassRaceSwap, GroupClass):    1000,
	}
}

// IterationKey builds an IterationTable key.
func IterationKey(pass string, g Grouping) string {
	return fmt.Sprintf("%s/%s", pass, g)
}

// For returns the iteration count of a pass, or 0 when none is configured.
func (t IterationTable) For(pass string, g Grouping) int {
	return t[IterationKey(pass, g)]
}
