package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/bestiary/internal/config"
	"github.com/example/bestiary/internal/core/randomize"
	"github.com/example/bestiary/internal/wire"
)

// RandomizeCmd returns the randomize command
func RandomizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "randomize",
		Short: "Randomize the creature table",
		Long: `Run grouped randomization passes over the creature table. Exactly one of
--by-race and --by-class selects how creatures are partitioned.

Passes run in order: blacklist deletion, shinies, passive swap, race swap
(class grouping only), class reassignment, stat jitter. Every change is
committed as it happens; a failure stops the remaining passes.

A YAML recipe supplies defaults; flags given on the command line override it.

Examples:
  bestiary randomize --by-class --passives --races
  bestiary randomize --by-race --blacklist Dragon --delete-blacklisted --classes
  bestiary randomize --recipe chaos.yaml --shiny-count 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ready(); err != nil {
				return err
			}
			req, err := buildRandomizeRequest(cmd)
			if err != nil {
				return err
			}
			_, err = wire.RandomizeAdapter().Run(NewContext(), req)
			return err
		},
	}

	f := cmd.Flags()
	f.String("recipe", "", "YAML recipe with default options")
	f.Bool("by-race", false, "Partition creatures by race")
	f.Bool("by-class", false, "Partition creatures by class")
	f.StringSlice("blacklist", nil, "Races excluded from every pass")
	f.Bool("delete-blacklisted", false, "Soft-delete creatures of blacklisted races")
	f.Bool("shinies", false, "Add shiny duplicates of random creatures")
	f.Int("shiny-count", 0, "Number of shinies, at least 1 (default 100)")
	f.Bool("passives", false, "Swap passives within partitions")
	f.Bool("races", false, "Swap races within class partitions")
	f.Bool("classes", false, "Assign one random class per partition")
	f.Bool("stats", false, "Add random increases to stats")
	f.Int("health", 0, "Maximum Health increase")
	f.Int("attack", 0, "Maximum Attack increase")
	f.Int("defense", 0, "Maximum Defense increase")
	f.Int("intelligence", 0, "Maximum Intelligence increase")
	f.Int("speed", 0, "Maximum Speed increase")
	return cmd
}

func buildRandomizeRequest(cmd *cobra.Command) (randomize.Request, error) {
	f := cmd.Flags()
	req := randomize.Request{}
	if path, _ := f.GetString("recipe"); path != "" {
		recipe, err := config.LoadRecipe(path)
		if err != nil {
			return req, err
		}
		req = *recipe
	}

	bools := map[string]*bool{
		"by-race":            &req.GroupByRace,
		"by-class":           &req.GroupByClass,
		"delete-blacklisted": &req.DeleteBlacklisted,
		"shinies":            &req.AddShinies,
		"passives":           &req.RandomizePassives,
		"races":              &req.RandomizeRaces,
		"classes":            &req.RandomizeClasses,
		"stats":              &req.RandomizeStats,
	}
	for name, dst := range bools {
		if f.Changed(name) {
			*dst, _ = f.GetBool(name)
		}
	}

	ints := map[string]*int{
		"shiny-count":  &req.ShinyCount,
		"health":       &req.Stats.Health,
		"attack":       &req.Stats.Attack,
		"defense":      &req.Stats.Defense,
		"intelligence": &req.Stats.Intelligence,
		"speed":        &req.Stats.Speed,
	}
	for name, dst := range ints {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}

	if f.Changed("blacklist") {
		req.Blacklist, _ = f.GetStringSlice("blacklist")
	}
	if f.Changed("shiny-count") {
		if req.ShinyCount < 1 {
			return req, fmt.Errorf("--shiny-count must be at least 1 (got %d); use --shinies=false to skip duplication", req.ShinyCount)
		}
		// A count on the command line implies the pass unless --shinies says otherwise.
		if !f.Changed("shinies") {
			req.AddShinies = true
		}
	}
	return req, nil
}
