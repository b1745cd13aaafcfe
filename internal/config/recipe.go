package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/bestiary/internal/core/randomize"
)

// LoadRecipe reads a randomize recipe. Unknown keys are rejected so typos
// do not silently disable a pass.
func LoadRecipe(path string) (*randomize.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}
	return ParseRecipe(data)
}

// ParseRecipe decodes a YAML recipe.
func ParseRecipe(data []byte) (*randomize.Request, error) {
	var req randomize.Request
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}
	return &req, nil
}
