package primary

import "context"

// RecordService defines the primary port for single-record edits.
type RecordService interface {
	// Show loads a record by reference (integer text is an ID, anything else a name).
	Show(ctx context.Context, table, ref string) (*Record, error)

	// Set updates fields of a record and commits it.
	Set(ctx context.Context, req SetFieldsRequest) (*Record, error)

	// Duplicate inserts a shiny copy of a creature.
	Duplicate(ctx context.Context, name string) (*DuplicateResponse, error)

	// Delete soft-deletes a creature.
	Delete(ctx context.Context, name string) error
}

// Record is a loaded row in descriptor order.
type Record struct {
	Table  string
	Fields []FieldValue
}

// Get returns the display value of a field.
func (r *Record) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// FieldValue is one formatted field. Joined holds the resolved join text
// for reference fields.
type FieldValue struct {
	Name   string
	Value  string
	Joined string
}

// SetFieldsRequest contains parameters for a field update.
type SetFieldsRequest struct {
	Table   string
	Ref     string
	Changes []FieldChange // applied in order
}

// FieldChange is one field=value assignment.
type FieldChange struct {
	Field string
	Value string
}

// DuplicateResponse contains the result of a duplication.
type DuplicateResponse struct {
	SourceName string
	NewID      int64
	NewName    string
}
