package errs

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestTag(t *testing.T) {
	base := fmt.Errorf("failed to open: %w", os.ErrNotExist)
	err := Tag(base, ErrStore)

	if err.Error() != base.Error() {
		t.Errorf("message changed: %q", err.Error())
	}
	if !errors.Is(err, ErrStore) {
		t.Error("tag not matched")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("wrapped cause not matched")
	}
	if Tag(nil, ErrStore) != nil {
		t.Error("Tag(nil) should be nil")
	}
}

func TestStoreOperationError(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("import: %w", &StoreOperationError{Op: "create", Table: "spell", Err: cause})

	if !errors.Is(err, ErrStore) {
		t.Error("StoreOperationError should match ErrStore")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable")
	}
	var op *StoreOperationError
	if !errors.As(err, &op) || op.Op != "create" {
		t.Errorf("As = %+v", op)
	}
}

func TestIsNotFound(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &NotFoundError{Table: "creature", Field: "Name", Value: "Ember"})
	if !IsNotFound(err) {
		t.Error("expected NotFoundError")
	}
	if err.Error() != "lookup: creature with Name Ember not found" {
		t.Errorf("message = %q", err.Error())
	}
	if IsNotFound(ErrStore) {
		t.Error("ErrStore is not a NotFoundError")
	}
}
