package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/bestiary/internal/config"
	"github.com/example/bestiary/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a bestiary workspace",
		Long: `Initialize a workspace in the current directory: writes .bestiary/config.json
and creates the session database. With --force an existing session database
is discarded first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("workspace")
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
				dir = wd
			}
			force, _ := cmd.Flags().GetBool("force")

			cfg, err := config.LoadConfig(dir)
			switch {
			case errors.Is(err, os.ErrNotExist):
				cfg = config.DefaultConfig()
				if err := config.SaveConfig(dir, cfg); err != nil {
					return err
				}
				fmt.Println("✓ Config written to .bestiary/config.json")
			case err != nil:
				return err
			default:
				fmt.Println("✓ Existing config kept")
			}

			dbPath := cfg.DatabaseFile(dir)
			if force {
				if err := db.Reset(dbPath); err != nil {
					return err
				}
				fmt.Println("✓ Previous session discarded")
			}

			database, err := db.Open(dbPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			database.Close()

			fmt.Printf("✓ Session database ready at %s\n", dbPath)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  bestiary import data/*.csv")
			fmt.Println("  bestiary tables")
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Discard the existing session database")
	return cmd
}
