package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/unitutor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz and game statistics for the signed-in profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		p, err := e.identity().Current(ctx)
		if err != nil {
			return err
		}
		st, err := e.store.EventRepo().ProfileStats(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("profile stats: %w", err)
		}

		printStats(os.Stdout, p, st)
		return nil
	},
}

func printStats(w io.Writer, p *store.Profile, st store.Stats) {
	fmt.Fprintf(w, "Profile:    %s\n", p.ID)
	fmt.Fprintf(w, "Credits:    %d\n", p.TotalScore)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Quizzes:    %d completed, %d/%d correct (%s), +%d credits\n",
		st.Quizzes, st.QuestionsRight, st.QuestionsTotal,
		percent(st.QuestionsRight, st.QuestionsTotal), st.QuizCredits)
	fmt.Fprintf(w, "Breach:     %d runs, %d won, +%d credits\n",
		st.Breaches, st.BreachesWon, st.BreachCredits)
	fmt.Fprintf(w, "Blackjack:  %d hands, %d won, net %+d\n",
		st.Hands, st.HandsWon, st.BlackjackNet)
}

func percent(n, d int) string {
	if d == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", n*100/d)
}
