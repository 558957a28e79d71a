package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/unitutor/internal/config"
	"github.com/abhisek/unitutor/internal/identity"
	"github.com/abhisek/unitutor/internal/logging"
	"github.com/abhisek/unitutor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "unitutor",
	Short: "Turn study notes into quizzes, then spend the credits",
	Long: `UniTutor is a terminal study companion. Upload a PDF or notes file and it
generates a multiple choice quiz with an LLM. Correct answers earn credits
that can be risked on a breach protocol puzzle or a game of blackjack.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides UNITUTOR_DB env var)")
	rootCmd.PersistentFlags().String("log-file", "", "Path to the log file (overrides UNITUTOR_LOG_FILE env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")
	rootCmd.Flags().Uint64("seed", 0, "Seed puzzles and card shuffles for a reproducible run")
	rootCmd.Flags().Bool("skip-intro", false, "Start on the home screen")

	rootCmd.AddCommand(breachCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what every database-backed command needs.
type env struct {
	cfg    config.Config
	dbPath string
	store  *store.Store
	logger *zap.Logger
}

func (e *env) identity() *identity.Service {
	return identity.New(e.store.ProfileRepo())
}

func (e *env) Close() error {
	_ = e.logger.Sync()
	return e.store.Close()
}

// openEnv loads configuration, applies the persistent flags on top, and
// opens the store and the log file.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		cfg.LogFile = p
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logging.DefaultPath(dbPath)
	}
	logger, err := logging.New(logPath, cfg.LogLevel, verbose)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))
	return &env{cfg: cfg, dbPath: dbPath, store: st, logger: logger}, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then UNITUTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
