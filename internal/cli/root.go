package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"
	"github.com/vietddude/triage/config"
)

var (
	cfgPath string
	logDir  string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "triagectl",
	Short: "Inspect triage diagnostic logs",
	Long: `triagectl is a support tool for the on-disk artifacts of the triage
error-handling subsystem: tail, export, scrub, and aggregate its
rotated diagnostic logs.`,
	PersistentPreRun: setup,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "log directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

func setup(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	slogLevel := slog.LevelInfo
	if isDebug {
		slogLevel = slog.LevelDebug
	}
	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})
}

// loadConfig resolves the effective configuration from the --config
// and --log-dir flags.
func loadConfig() config.Config {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			slog.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = *loaded
	}
	if logDir != "" {
		cfg.Log.Dir = logDir
	}
	return cfg
}
