// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/bestiary/internal/core/planner"
	"github.com/example/bestiary/internal/ports/secondary"
)

// PlanStore implements secondary.PlanStore as a JSON document on disk.
type PlanStore struct {
	path string
}

// NewPlanStore creates a plan store writing to path.
func NewPlanStore(path string) *PlanStore {
	return &PlanStore{path: path}
}

// Load returns the saved plan, or a fresh one when the file does not exist.
func (s *PlanStore) Load(ctx context.Context) (*planner.Plan, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return planner.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	plan := planner.New()
	if err := plan.Merge(data); err != nil {
		return nil, fmt.Errorf("failed to parse plan %s: %w", s.path, err)
	}
	return plan, nil
}

// Save writes the plan, creating the parent directory if needed. The file
// is replaced atomically.
func (s *PlanStore) Save(ctx context.Context, plan *planner.Plan) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create plan directory: %w", err)
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace plan: %w", err)
	}
	return nil
}

// Ensure PlanStore implements the interface.
var _ secondary.PlanStore = (*PlanStore)(nil)
