package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel string
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "psychofit [nsims nreps b0 b1]",
	Short: "Sampling variability of fitted logistic psychometric functions",
	Long: `psychofit simulates binary responses from a logistic psychometric function,
refits each simulated experiment by maximum likelihood with a Nelder-Mead simplex,
and prints the recovered parameters with threshold, slope, and acuity.

Called without a subcommand it behaves like "psychofit run".`,
	Args: validateRunArgs,
	// main reports the returned error.
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Arguments are valid from here on, so later failures skip the usage text.
		cmd.SilenceUsage = true
		setupLogger(logLevel, os.Stderr)
	},
	RunE: runSimulation,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	addRunFlags(rootCmd)
}

// setupLogger installs a JSON slog handler. Logs go to stderr so that stdout
// carries only results.
func setupLogger(level string, out io.Writer) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	handler := slog.NewJSONHandler(out, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}
