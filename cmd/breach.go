package cmd

import (
	"github.com/spf13/cobra"
)

var breachCmd = &cobra.Command{
	Use:   "breach",
	Short: "Jump straight into a breach protocol puzzle",
	Long: `Launch the TUI with a breach protocol puzzle already open. Finish or
leave it to return to the home menu.

Tune the puzzle with UNITUTOR_BREACH_GRID_SIZE, UNITUTOR_BREACH_BUFFER_SIZE,
UNITUTOR_BREACH_TIME_LIMIT and UNITUTOR_BREACH_PAYOUT_DELAY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

func init() {
	breachCmd.Flags().Uint64("seed", 0, "Seed the puzzle for a reproducible grid")
}
