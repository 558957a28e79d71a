package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/unitutor/internal/config"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local database (profiles, credits and history)",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		if !force {
			return fmt.Errorf("this deletes every profile in %s; re-run with --force", dbPath)
		}

		removed := 0
		for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			err := os.Remove(p)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("remove %s: %w", p, err)
			}
			removed++
		}

		if removed == 0 {
			fmt.Println("Nothing to reset.")
			return nil
		}
		fmt.Println("Removed", dbPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Confirm deletion")
}
