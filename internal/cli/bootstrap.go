// Package cli provides CLI commands for the bestiary application.
package cli

import (
	gocontext "context"

	"github.com/spf13/cobra"

	"github.com/example/bestiary/internal/wire"
)

// Bootstrap hands the global flags to the wiring layer. Called once at CLI
// startup in PersistentPreRunE.
func Bootstrap(cmd *cobra.Command) error {
	workspace, _ := cmd.Flags().GetString("workspace")
	verbose, _ := cmd.Flags().GetBool("verbose")
	wire.Configure(wire.Options{Dir: workspace, Verbose: verbose})
	return nil
}

// AddGlobalFlags registers the flags Bootstrap reads.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringP("workspace", "w", "", "Workspace directory (default: current directory)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
}

// NewContext creates the context for one command.
func NewContext() gocontext.Context {
	return gocontext.Background()
}

// ready reports a failure to open the workspace.
func ready() error {
	return wire.Err()
}
