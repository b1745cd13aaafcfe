package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/bestiary/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent imports and randomize runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ready(); err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			return wire.HistoryAdapter().Show(NewContext(), limit)
		},
	}
	cmd.Flags().IntP("limit", "n", 10, "Entries per list (0 for all)")
	return cmd
}
