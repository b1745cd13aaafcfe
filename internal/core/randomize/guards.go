package randomize

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanRandomize evaluates whether a request can run.
// Rules:
// - Exactly one grouping must be selected
// - Shiny count must not be negative
// - Stat jitter maxima must not be negative
// - Blacklist entries must not be blank
func CanRandomize(req Request) GuardResult {
	if req.GroupByRace && req.GroupByClass {
		return GuardResult{Allowed: false, Reason: "select only one grouping method"}
	}
	if !req.GroupByRace && !req.GroupByClass {
		return GuardResult{Allowed: false, Reason: "select a grouping method (race or class)"}
	}

	if req.ShinyCount < 0 {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("shiny count must not be negative (got %d)", req.ShinyCount)}
	}

	for _, s := range statMaxima(req.Stats) {
		if s.max < 0 {
			return GuardResult{Allowed: false, Reason: fmt.Sprintf("%s jitter must not be negative (got %d)", s.field, s.max)}
		}
	}

	for _, race := range req.Blacklist {
		if strings.TrimSpace(race) == "" {
			return GuardResult{Allowed: false, Reason: "blacklist contains an empty race"}
		}
	}

	return GuardResult{Allowed: true}
}
