// Package schema describes the known tables of the creature dataset.
// Descriptors are static and resolved once at init; queries and record
// handles translate logical field names to physical columns through them.
package schema

import (
	"fmt"
	"sort"
)

// ColumnType is the declared storage type of a column.
type ColumnType string

const (
	// Text columns hold strings.
	Text ColumnType = "TEXT"
	// Real columns hold numbers.
	Real ColumnType = "REAL"
)

// Table names.
const (
	Creature = "creature"
	Passive  = "passive"
	Spell    = "spell"
	Mat      = "mat"
	RDB      = "rdb"
)

// Creature field names used by the record and randomize layers.
const (
	FieldID              = "ID"
	FieldName            = "Name"
	FieldClass           = "Class"
	FieldNickname        = "Nickname"
	FieldRace            = "Race"
	FieldPassive         = "Passive"
	FieldHealth          = "Health"
	FieldAttack          = "Attack"
	FieldIntelligence    = "Intelligence"
	FieldDefense         = "Defense"
	FieldSpeed           = "Speed"
	FieldOverworldSprite = "OverworldSprite"
	FieldBattleSprite    = "BattleSprite"
	FieldMana            = "Mana"
	FieldTier            = "Tier"
	FieldTags            = "Tags"
	FieldDescription     = "Description"
	FieldCharges         = "Charges"
	FieldFlags           = "Flags"
)

// Field maps a logical field name to its physical column.
type Field struct {
	Logical string
	Column  string
	Type    ColumnType
}

// Join describes a display-time lookup from a column of this table into
// another table. Returns are joined with ": ".
type Join struct {
	Column       string
	Target       string
	TargetColumn string
	Returns      []string
}

// Table is the descriptor of one table.
type Table struct {
	Name      string
	Fields    []Field
	IDField   string
	NameField string
	// CommitKey is the logical field used in the WHERE clause of updates.
	CommitKey string
	Joins     []Join

	byLogical map[string]int
	byColumn  map[string]int
}

func newTable(name, commitKey string, fields []Field, joins ...Join) *Table {
	t := &Table{
		Name:      name,
		Fields:    fields,
		IDField:   FieldID,
		NameField: FieldName,
		CommitKey: commitKey,
		Joins:     joins,
		byLogical: make(map[string]int, len(fields)),
		byColumn:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		t.byLogical[f.Logical] = i
		t.byColumn[f.Column] = i
	}
	return t
}

// Field returns the descriptor for a logical field name.
func (t *Table) Field(logical string) (Field, bool) {
	i, ok := t.byLogical[logical]
	if !ok {
		return Field{}, false
	}
	return t.Fields[i], true
}

// Column returns the physical column for a logical name. Names that are not
// logical fields pass through unchanged so pre-resolved columns keep working.
func (t *Table) Column(name string) string {
	if f, ok := t.Field(name); ok {
		return f.Column
	}
	return name
}

// MustColumn returns the physical column of a logical field and panics if
// the field is not part of the table.
func (t *Table) MustColumn(logical string) string {
	f, ok := t.Field(logical)
	if !ok {
		panic(fmt.Sprintf("schema: table %s has no field %s", t.Name, logical))
	}
	return f.Column
}

// LogicalName returns the friendly name for a physical column, or the column
// itself when unknown.
func (t *Table) LogicalName(column string) string {
	if i, ok := t.byColumn[column]; ok {
		return t.Fields[i].Logical
	}
	return column
}

// Columns returns the physical columns in descriptor order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = f.Column
	}
	return cols
}

// LogicalNames returns the logical field names in descriptor order.
func (t *Table) LogicalNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Logical
	}
	return names
}

// JoinFor returns the join declared on column, if any.
func (t *Table) JoinFor(column string) (Join, bool) {
	for _, j := range t.Joins {
		if j.Column == column {
			return j, true
		}
	}
	return Join{}, false
}

var passiveJoin = func(column string) Join {
	return Join{Column: column, Target: Passive, TargetColumn: "column1", Returns: []string{"column2", "column3"}}
}

var registry = map[string]*Table{
	Creature: newTable(Creature, FieldName, []Field{
		{FieldID, "column1", Real},
		{FieldClass, "column4", Text},
		{FieldName, "column9", Text},
		{FieldNickname, "column10", Text},
		{FieldRace, "column13", Text},
		{FieldPassive, "column12", Real},
		{FieldHealth, "column6", Real},
		{FieldAttack, "column2", Real},
		{FieldIntelligence, "column7", Real},
		{FieldDefense, "column5", Real},
		{FieldSpeed, "column14", Real},
		{FieldOverworldSprite, "column11", Text},
		{FieldBattleSprite, "column3", Text},
		{FieldMana, "column8", Real},
		{FieldTier, "column15", Real},
		{FieldTags, "column16", Text},
	}, passiveJoin("column12")),
	Passive: newTable(Passive, FieldID, []Field{
		{FieldID, "column1", Real},
		{FieldName, "column2", Text},
		{FieldDescription, "column3", Text},
	}),
	Spell: newTable(Spell, FieldID, []Field{
		{FieldID, "column1", Real},
		{FieldName, "column5", Text},
		{FieldClass, "column2", Text},
		{FieldDescription, "column3", Text},
		{FieldCharges, "column4", Real},
		{FieldFlags, "column6", Text},
	}),
	Mat: newTable(Mat, FieldID, []Field{
		{FieldID, "column1", Real},
		{FieldName, "column2", Text},
		{FieldPassive, "column5", Real},
	}, passiveJoin("column5")),
	RDB: newTable(RDB, FieldID, []Field{
		{FieldID, "column1", Real},
		{FieldName, "column2", Text},
		{FieldDescription, "column3", Text},
	}),
}

// Lookup returns the descriptor for a table name.
func Lookup(name string) (*Table, bool) {
	t, ok := registry[name]
	return t, ok
}

// Names returns the known table names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
