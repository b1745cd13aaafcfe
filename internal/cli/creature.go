package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/bestiary/internal/core/schema"
	"github.com/example/bestiary/internal/ports/primary"
	"github.com/example/bestiary/internal/wire"
)

var creatureCmd = &cobra.Command{
	Use:   "creature",
	Short: "Show and edit single records",
	Long:  "Show, edit, duplicate and delete creatures. show and set also work on other tables with --table.",
}

var creatureShowCmd = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "Show a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ready(); err != nil {
			return err
		}
		table, _ := cmd.Flags().GetString("table")
		_, err := wire.RecordAdapter().Show(NewContext(), table, args[0])
		return err
	},
}

var creatureSetCmd = &cobra.Command{
	Use:   "set <name-or-id> <Field=value>...",
	Short: "Update fields of a record",
	Long: `Update fields and commit the whole row.

Examples:
  bestiary creature set Ember Health=120 Speed=60
  bestiary creature set 12 Description="Heals each turn" --table passive`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ready(); err != nil {
			return err
		}
		table, _ := cmd.Flags().GetString("table")
		changes, err := parseAssignments(args[1:])
		if err != nil {
			return err
		}
		_, err = wire.RecordAdapter().Set(NewContext(), primary.SetFieldsRequest{
			Table:   table,
			Ref:     args[0],
			Changes: changes,
		})
		return err
	},
}

var creatureDuplicateCmd = &cobra.Command{
	Use:   "duplicate <name>",
	Short: "Insert a shiny copy of a creature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ready(); err != nil {
			return err
		}
		_, err := wire.RecordAdapter().Duplicate(NewContext(), args[0])
		return err
	},
}

var creatureDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Soft-delete a creature",
	Long:  "Mark a creature deleted: stats drop to the minimum and its passive is disabled. The row stays in the table.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ready(); err != nil {
			return err
		}
		return wire.RecordAdapter().Delete(NewContext(), args[0])
	},
}

func parseAssignments(args []string) ([]primary.FieldChange, error) {
	changes := make([]primary.FieldChange, 0, len(args))
	for _, a := range args {
		field, value, ok := strings.Cut(a, "=")
		if !ok || strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("invalid assignment %q (want Field=value)", a)
		}
		changes = append(changes, primary.FieldChange{Field: strings.TrimSpace(field), Value: value})
	}
	return changes, nil
}

func init() {
	creatureShowCmd.Flags().StringP("table", "t", schema.Creature, "Table to look in")
	creatureSetCmd.Flags().StringP("table", "t", schema.Creature, "Table to look in")

	creatureCmd.AddCommand(creatureShowCmd)
	creatureCmd.AddCommand(creatureSetCmd)
	creatureCmd.AddCommand(creatureDuplicateCmd)
	creatureCmd.AddCommand(creatureDeleteCmd)
}

// CreatureCmd returns the creature command
func CreatureCmd() *cobra.Command {
	return creatureCmd
}
