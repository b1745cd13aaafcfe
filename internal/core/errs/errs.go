// Package errs defines the error taxonomy shared by the core, the services and
// the adapters. Callers classify failures with errors.Is / errors.As.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNoColumnsSelected is returned when a query has no output columns.
	ErrNoColumnsSelected = errors.New("no columns selected")

	// ErrStore marks any failure reported by the tabular store.
	ErrStore = errors.New("store operation failed")

	// ErrUnsupported is returned for record operations a table does not support.
	ErrUnsupported = errors.New("operation not supported for table")

	// ErrNoIdentifiers is returned when a table has no identifier to derive a new one from.
	ErrNoIdentifiers = errors.New("table has no identifiers")

	// ErrKeyField is returned when a record edit targets an identifier or commit-key field.
	ErrKeyField = errors.New("key fields cannot be edited")
)

// NotFoundError reports a lookup that matched no row.
type NotFoundError struct {
	Table string
	Field string
	Value any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s %v not found", e.Table, e.Field, e.Value)
}

// UnknownTableError reports a table name missing from the schema registry.
type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q", e.Table)
}

// StoreOperationError wraps a failed create/drop/insert/update/index operation.
type StoreOperationError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreOperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreOperationError) Unwrap() error { return e.Err }

// Is lets StoreOperationError match ErrStore regardless of the wrapped cause.
func (e *StoreOperationError) Is(target error) bool { return target == ErrStore }

// ConfigurationError reports invalid or conflicting options. Nothing has run
// when it is returned.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// InvalidClauseError reports a clause that cannot be built, such as a BETWEEN
// without an upper bound or an operator outside the supported set.
type InvalidClauseError struct {
	Field  string
	Reason string
}

func (e *InvalidClauseError) Error() string {
	return fmt.Sprintf("invalid clause on %q: %s", e.Field, e.Reason)
}

// Tag marks err as a kind of tag without changing its message.
// errors.Is and errors.As consult the tag first, then the original error.
func Tag(err, tag error) error {
	if err == nil {
		return nil
	}
	return tagged{err: err, tag: tag}
}

type tagged struct {
	err error
	tag error
}

func (t tagged) Error() string { return t.err.Error() }

func (t tagged) Unwrap() error { return t.err }

func (t tagged) Is(target error) bool {
	if errors.Is(t.tag, target) {
		return true
	}
	return errors.Is(t.err, target)
}

func (t tagged) As(target any) bool {
	if errors.As(t.tag, target) {
		return true
	}
	return errors.As(t.err, target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
