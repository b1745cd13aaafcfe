package app

import (
	"context"
	"testing"

	"github.com/example/bestiary/internal/core/randomize"
)

func TestHistoryService(t *testing.T) {
	env := setupTestEnv(t)
	seedRoster(t, env)
	env.seed(t, "passive", "12{}{}{}Regen{}{}{}Heals")

	rnd := NewRandomizeService(env.store, env.history, env.logger, WithSource(&scriptedSource{}))
	resp, err := rnd.Randomize(context.Background(), randomize.Request{GroupByClass: true, RandomizeClasses: true})
	if err != nil {
		t.Fatalf("Randomize failed: %v", err)
	}

	svc := NewHistoryService(env.history)

	imports, err := svc.Imports(context.Background(), 0)
	if err != nil {
		t.Fatalf("Imports failed: %v", err)
	}
	if len(imports) != 2 || imports[0].Table != "passive" || imports[1].Table != "creature" {
		t.Errorf("imports = %+v, want passive then creature", imports)
	}
	if imports[0].CreatedAt.IsZero() {
		t.Error("import timestamp not parsed")
	}

	runs, err := svc.Runs(context.Background(), 5)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != resp.RunID || runs[0].Reassigned != 5 {
		t.Errorf("runs = %+v", runs)
	}
}
