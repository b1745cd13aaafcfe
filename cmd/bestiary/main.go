package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/bestiary/internal/cli"
	"github.com/example/bestiary/internal/version"
	"github.com/example/bestiary/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "bestiary",
		Short:   "bestiary - editor and randomizer for creature datasets",
		Version: version.String(),
		Long: `bestiary loads {}{}{}-delimited game data into a session database, runs
filtered queries, edits single records, randomizes the creature table and
writes everything back to flat files. A build planner keeps six creature
builds alongside the session.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.Bootstrap(cmd)
		},
	}
	cli.AddGlobalFlags(rootCmd)

	// Session
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.TablesCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	// Data
	rootCmd.AddCommand(cli.QueryCmd())
	rootCmd.AddCommand(cli.CreatureCmd())
	rootCmd.AddCommand(cli.RandomizeCmd())
	rootCmd.AddCommand(cli.PlanCmd())

	err := rootCmd.Execute()
	wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
