// Package models provides RecordHandle, a row accessor bound to one table
// descriptor and a tabular store. Handles carry no identity map: two handles
// on the same row are independent and the last Commit wins.
package models

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/core/schema"
	"github.com/example/bestiary/internal/ports/secondary"
)

// RecordHandle is a snapshot of one row plus a dirty flag.
type RecordHandle struct {
	store  secondary.TabularStore
	table  *schema.Table
	fields map[string]any
	// key is the commit-key value captured at load time.
	key   any
	dirty bool
}

// Load fetches the first row where keyField = keyValue. keyField is a
// logical field name of the table.
func Load(ctx context.Context, store secondary.TabularStore, table, keyField string, keyValue any) (*RecordHandle, error) {
	tbl, ok := schema.Lookup(table)
	if !ok {
		return nil, &errs.UnknownTableError{Table: table}
	}
	kf, ok := tbl.Field(keyField)
	if !ok {
		return nil, fmt.Errorf("table %s has no field %s", table, keyField)
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? LIMIT 1;",
		strings.Join(tbl.Columns(), ", "), tbl.Name, kf.Column)
	rs, err := store.Execute(ctx, stmt, keyValue)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table, err)
	}
	if rs.Len() == 0 {
		return nil, &errs.NotFoundError{Table: table, Field: keyField, Value: keyValue}
	}

	return FromRow(store, tbl, rs.Rows[0]), nil
}

// LoadByName loads a row by its name field.
func LoadByName(ctx context.Context, store secondary.TabularStore, table, name string) (*RecordHandle, error) {
	tbl, ok := schema.Lookup(table)
	if !ok {
		return nil, &errs.UnknownTableError{Table: table}
	}
	return Load(ctx, store, table, tbl.NameField, name)
}

// LoadByID loads a row by its identifier field.
func LoadByID(ctx context.Context, store secondary.TabularStore, table string, id int64) (*RecordHandle, error) {
	tbl, ok := schema.Lookup(table)
	if !ok {
		return nil, &errs.UnknownTableError{Table: table}
	}
	return Load(ctx, store, table, tbl.IDField, id)
}

// FromRow builds a handle from values in descriptor column order.
func FromRow(store secondary.TabularStore, tbl *schema.Table, row []any) *RecordHandle {
	h := &RecordHandle{
		store:  store,
		table:  tbl,
		fields: make(map[string]any, len(tbl.Fields)),
	}
	for i, f := range tbl.Fields {
		if i < len(row) {
			h.fields[f.Logical] = row[i]
		}
	}
	h.key = h.fields[tbl.CommitKey]
	return h
}

// Table returns the table name.
func (h *RecordHandle) Table() string { return h.table.Name }

// Get returns the in-memory value of a field.
func (h *RecordHandle) Get(field string) any {
	return h.fields[field]
}

// Set stages a field change in memory. The identifier and commit-key
// fields are rejected with errs.ErrKeyField.
func (h *RecordHandle) Set(field string, value any) error {
	if _, ok := h.table.Field(field); !ok {
		return fmt.Errorf("table %s has no field %s", h.table.Name, field)
	}
	if h.isKey(field) {
		return fmt.Errorf("%s.%s: %w", h.table.Name, field, errs.ErrKeyField)
	}
	h.fields[field] = value
	h.dirty = true
	return nil
}

// Dirty reports whether there are staged changes.
func (h *RecordHandle) Dirty() bool { return h.dirty }

// Fields returns a copy of the in-memory values keyed by logical name.
func (h *RecordHandle) Fields() map[string]any {
	out := make(map[string]any, len(h.fields))
	for k, v := range h.fields {
		out[k] = v
	}
	return out
}

func (h *RecordHandle) isKey(field string) bool {
	return field == h.table.IDField || field == h.table.CommitKey
}

// Commit writes every non-key field in one UPDATE keyed by the commit-key
// value captured at load. The identifier and commit-key columns are never
// written, so rows sharing a key cannot overwrite each other's identifier.
// It is a no-op when nothing was staged.
func (h *RecordHandle) Commit(ctx context.Context) error {
	if !h.dirty {
		return nil
	}

	sets := make([]string, 0, len(h.table.Fields))
	args := make([]any, 0, len(h.table.Fields)+1)
	for _, f := range h.table.Fields {
		if h.isKey(f.Logical) {
			continue
		}
		sets = append(sets, f.Column+" = ?")
		args = append(args, h.fields[f.Logical])
	}
	args = append(args, h.key)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?;",
		h.table.Name, strings.Join(sets, ", "), h.table.MustColumn(h.table.CommitKey))
	if _, err := h.store.Execute(ctx, stmt, args...); err != nil {
		return &errs.StoreOperationError{Op: "update", Table: h.table.Name, Err: err}
	}

	h.dirty = false
	return nil
}

// String renders a stored value as text; nil is the empty string.
func String(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
