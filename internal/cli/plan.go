package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/bestiary/internal/ports/primary"
	"github.com/example/bestiary/internal/wire"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage the build planner",
	Long: `Manage six build slots (creature1..creature6). Each slot holds two
creatures, an artifact spell, and lists of spells, artifact materials and
artifact traits. References are IDs or names.`,
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every build slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ready(); err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")
		return wire.PlanAdapter().Show(NewContext(), all)
	},
}

var planSetCmd = &cobra.Command{
	Use:   "set <slot> <kind> <name-or-id>",
	Short: "Set or append a reference",
	Long: `Set a single reference or append to a list.

Kinds: creature1, creature2, artifact-spell (set); spell, artifact-material,
artifact-trait (append).

Examples:
  bestiary plan set creature1 creature1 Ember
  bestiary plan set creature1 spell 4`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ready(); err != nil {
			return err
		}
		return wire.PlanAdapter().Assign(NewContext(), primary.AssignRequest{
			Slot: args[0],
			Kind: args[1],
			Ref:  args[2],
		})
	},
}

var planPopCmd = &cobra.Command{
	Use:   "pop <slot> <kind>",
	Short: "Remove the last spell, artifact-material or artifact-trait",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ready(); err != nil {
			return err
		}
		return wire.PlanAdapter().Pop(NewContext(), args[0], args[1])
	},
}

var planResetCmd = &cobra.Command{
	Use:   "reset <slot>",
	Short: "Clear a build slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ready(); err != nil {
			return err
		}
		return wire.PlanAdapter().Reset(NewContext(), args[0])
	},
}

var planExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the plan as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ready(); err != nil {
			return err
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return wire.PlanAdapter().Export(NewContext(), path)
	},
}

var planImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge a JSON plan into the saved plan",
	Long:  "Merge a plan document. Fields present in the file overwrite, absent fields are kept and unknown slots are ignored.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ready(); err != nil {
			return err
		}
		return wire.PlanAdapter().Import(NewContext(), args[0])
	},
}

func init() {
	planShowCmd.Flags().Bool("all", false, "Expand empty slots")

	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planSetCmd)
	planCmd.AddCommand(planPopCmd)
	planCmd.AddCommand(planResetCmd)
	planCmd.AddCommand(planExportCmd)
	planCmd.AddCommand(planImportCmd)
}

// PlanCmd returns the plan command
func PlanCmd() *cobra.Command {
	return planCmd
}
