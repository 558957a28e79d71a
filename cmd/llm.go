package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/unitutor/internal/llm"
	"github.com/abhisek/unitutor/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls and token usage",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		// The purpose filter runs after the query, so fetch everything
		// when one is set and apply the limit afterwards.
		opts := store.QueryOpts{Limit: limit}
		if purpose != "" {
			opts.Limit = 0
		}
		events, err := e.store.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		printLLMEvents(os.Stdout, filterPurpose(events, purpose, limit))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}

		printLLMEvent(os.Stdout, ev)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		repo := e.store.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		printLLMUsage(os.Stdout, byPurpose, byModel)
		return nil
	},
}

func filterPurpose(events []store.LLMRequestEvent, purpose string, limit int) []store.LLMRequestEvent {
	if purpose == "" {
		return events
	}
	var out []store.LLMRequestEvent
	for _, ev := range events {
		if ev.Purpose != purpose {
			continue
		}
		out = append(out, ev)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func printLLMEvents(w io.Writer, events []store.LLMRequestEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM calls recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-16s  %-10s  %-28s  %7s  %7s  %6s  %s\n",
		"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, rule(100))
	for _, ev := range events {
		ok := "✓"
		if !ev.Success {
			ok = "✗"
		}
		fmt.Fprintf(w, "%-5d  %-16s  %-10s  %-28s  %7d  %7d  %6d  %s\n",
			ev.ID, ev.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(ev.Purpose, 10), truncate(ev.Model, 28),
			ev.InputTokens, ev.OutputTokens, ev.LatencyMs, ok)
	}
}

func printLLMEvent(w io.Writer, ev *store.LLMRequestEvent) {
	fmt.Fprintf(w, "ID:        %d\n", ev.ID)
	fmt.Fprintf(w, "Time:      %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Model:     %s (%s)\n", ev.Model, ev.Provider)
	fmt.Fprintf(w, "Purpose:   %s\n", ev.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", ev.LatencyMs)
	if ev.Success {
		fmt.Fprintln(w, "Status:    ok")
	} else {
		fmt.Fprintf(w, "Status:    failed: %s\n", ev.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"REQUEST", ev.RequestBody},
		{"RESPONSE", ev.ResponseBody},
	} {
		fmt.Fprintf(w, "\n── %s %s\n", part.title, rule(56-len(part.title)))
		if part.body == "" {
			fmt.Fprintln(w, "(not captured)")
			continue
		}
		fmt.Fprintln(w, part.body)
	}
}

func printLLMUsage(w io.Writer, byPurpose, byModel []store.LLMUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	fmt.Fprintln(w, "Usage by purpose")
	fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg ms")
	fmt.Fprintln(w, rule(58))
	var calls, in, out int
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %8d\n",
			truncate(u.Purpose, 16), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	fmt.Fprintln(w, rule(58))
	fmt.Fprintf(w, "%-16s  %6d  %10d  %10d\n", "TOTAL", calls, in, out)

	if len(byModel) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated cost (USD)")
	fmt.Fprintf(w, "%-32s  %6s  %10s\n", "Model", "Calls", "Cost")
	fmt.Fprintln(w, rule(52))
	var total float64
	var unpriced []string
	for _, u := range byModel {
		price := llm.LookupCost(u.Model)
		if price == nil {
			unpriced = append(unpriced, u.Model)
			fmt.Fprintf(w, "%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, "?")
			continue
		}
		c := price.Cost(u.InputTokens, u.OutputTokens)
		total += c
		fmt.Fprintf(w, "%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, formatCost(c))
	}
	fmt.Fprintln(w, rule(52))

	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s\n", label, "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func rule(n int) string {
	return strings.Repeat("─", n)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose (e.g. quiz-gen)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
