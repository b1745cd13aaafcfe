package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/bestiary/internal/wire"
)

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Load delimited files into the session database",
		Long: `Load {}{}{}-delimited files. Each file replaces the table named after it
(creature.csv loads into creature). Files are imported one at a time; a
failing file is reported and the rest still load.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ready(); err != nil {
				return err
			}
			_, err := wire.ImportAdapter().Import(NewContext(), args)
			return err
		},
	}
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [table]",
		Short: "Write tables back to delimited files",
		Long: `Write a table back to {}{}{}-delimited text, one row per line.

Examples:
  bestiary export creature -o creature.csv
  bestiary export spell            # to stdout
  bestiary export --all --dir out/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ready(); err != nil {
				return err
			}
			all, _ := cmd.Flags().GetBool("all")
			output, _ := cmd.Flags().GetString("output")
			dir, _ := cmd.Flags().GetString("dir")

			adapter := wire.ExportAdapter()
			if all {
				if len(args) > 0 {
					return fmt.Errorf("--all cannot be combined with a table name")
				}
				return adapter.ExportAll(NewContext(), dir)
			}
			if len(args) == 0 {
				return fmt.Errorf("table name required (or use --all)")
			}
			return adapter.Export(NewContext(), args[0], output)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().Bool("all", false, "Export every loaded table")
	cmd.Flags().String("dir", ".", "Directory for --all")
	return cmd
}
