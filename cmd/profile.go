package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/unitutor/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or manage the local guest profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.identity().Current(cmd.Context())
		if err != nil {
			return err
		}
		showKey, _ := cmd.Flags().GetBool("show-key")
		printProfile(os.Stdout, p, showKey)
		return nil
	},
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <username>",
	Short: "Change the username of the signed-in profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.identity().Rename(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		e.logger.Info("profile renamed")
		fmt.Println("Signed in as", p.ID)
		return nil
	},
}

var profileRecoverCmd = &cobra.Command{
	Use:   "recover <key>",
	Short: "Sign in with a recovery key (word-word-word-word)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.identity().Recover(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println("Recovered", p.ID)
		return nil
	},
}

var profileLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out; the next run starts a new guest profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.identity().Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

func printProfile(w io.Writer, p *store.Profile, showKey bool) {
	key := "****-****-****-****"
	if showKey {
		key = p.RecoveryKey
	}
	fmt.Fprintf(w, "Username:      %s\n", p.ID)
	fmt.Fprintf(w, "Credits:       %d\n", p.TotalScore)
	fmt.Fprintf(w, "Quizzes:       %d\n", p.QuizzesCompleted)
	fmt.Fprintf(w, "Recovery key:  %s\n", key)
	fmt.Fprintf(w, "Created:       %s\n", p.CreatedAt.Local().Format("2006-01-02"))
}

func init() {
	profileCmd.Flags().Bool("show-key", false, "Print the recovery key")

	profileCmd.AddCommand(profileRenameCmd)
	profileCmd.AddCommand(profileRecoverCmd)
	profileCmd.AddCommand(profileLogoutCmd)
}
