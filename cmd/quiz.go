package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/unitutor/internal/llm"
	"github.com/abhisek/unitutor/internal/logging"
	"github.com/abhisek/unitutor/internal/quiz"
	"github.com/abhisek/unitutor/internal/quizgen"
	"github.com/abhisek/unitutor/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate, validate and preview quizzes outside the TUI",
}

var quizGenerateCmd = &cobra.Command{
	Use:   "generate <document>",
	Short: "Generate a quiz JSON file from a PDF, text or markdown document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		q, err := generateQuiz(cmd.Context(), args[0], e.store.EventRepo(), e.logger)
		if err != nil {
			return err
		}
		data, err := quiz.Marshal(q)
		if err != nil {
			return err
		}

		if out == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write quiz: %w", err)
		}
		fmt.Printf("Wrote %q (%d questions) to %s\n", q.Title, len(q.Questions), out)
		return nil
	},
}

var quizCheckCmd = &cobra.Command{
	Use:   "check <file.json>",
	Short: "Validate a quiz JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := quiz.Load(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Printf("%s: ok, %q with %d questions (version %s)\n",
			args[0], q.Title, len(q.Questions), q.Version)
		return nil
	},
}

// generateQuiz loads path and turns it into a quiz. JSON quizzes are
// parsed directly; anything else needs an LLM provider.
func generateQuiz(ctx context.Context, path string, events store.EventRepo, logger *zap.Logger) (*quiz.Quiz, error) {
	doc, err := quizgen.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	if doc.IsQuiz() {
		return quiz.Parse(doc.Data)
	}

	provider, err := llm.NewProviderFromEnv(ctx, events, logger)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Generating quiz from %s with %s...\n", doc.Name, provider.ModelID())
	return quizgen.New(provider, quizgen.DefaultConfig()).Generate(ctx, doc)
}

func init() {
	quizGenerateCmd.Flags().StringP("output", "o", "", "Write the quiz to this file instead of stdout")

	quizCmd.AddCommand(quizGenerateCmd)
	quizCmd.AddCommand(quizCheckCmd)
	quizCmd.AddCommand(quizPreviewCmd)
}

// previewLogger is used by commands that run without a database.
func previewLogger(cmd *cobra.Command) *zap.Logger {
	path, _ := cmd.Flags().GetString("log-file")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := logging.New(path, "info", verbose)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
