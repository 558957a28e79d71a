package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/unitutor/internal/app"
	"github.com/abhisek/unitutor/internal/llm"
	"github.com/abhisek/unitutor/internal/quizgen"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startBreach bool) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	puzzle, err := e.cfg.Breach.Puzzle()
	if err != nil {
		return fmt.Errorf("breach config: %w", err)
	}
	seed, _ := cmd.Flags().GetUint64("seed")
	skipIntro, _ := cmd.Flags().GetBool("skip-intro")

	eventRepo := e.store.EventRepo()
	opts := app.Options{
		EventRepo:   eventRepo,
		Identity:    e.identity(),
		Breach:      puzzle,
		Logger:      e.logger,
		Seed:        seed,
		SkipWelcome: skipIntro,
		StartBreach: startBreach,
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo, e.logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Only .json quiz files can be loaded.")
		e.logger.Warn("no LLM provider", zap.Error(err))
	} else {
		opts.Generator = quizgen.New(provider, quizgen.DefaultConfig())
		e.logger.Info("LLM provider ready", zap.String("model", provider.ModelID()))
	}

	e.logger.Info("starting", zap.String("version", version), zap.String("db", e.dbPath))
	return app.Run(opts)
}
