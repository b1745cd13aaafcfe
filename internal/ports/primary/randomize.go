package primary

import (
	"context"

	"github.com/example/bestiary/internal/core/randomize"
)

// RandomizeService defines the primary port for bulk randomization.
type RandomizeService interface {
	// Randomize runs the passes selected by req over the creature table.
	Randomize(ctx context.Context, req randomize.Request) (*RandomizeResponse, error)
}

// RandomizeResponse contains the result of a run. It is returned alongside
// the error when a pass fails part way.
type RandomizeResponse struct {
	RunID       string
	WorkingSet  int
	Blacklisted int
	Report      randomize.Report
}
