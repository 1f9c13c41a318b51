package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fieldprofiler/fieldprofiler/config"
)

var (
	logLevel string
	log      *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "fieldprofiler",
	Short: "Per-field statistics for tabular data",
	Long: `fieldprofiler computes a per-field statistical profile of tabular
data: null and conversion counts, distribution statistics, string shape
and frequency analysis, and date component breakdowns. Sources are
delimited files (optionally gzip/lz4/zip compressed) or database
tables.`,
	PersistentPreRunE: initLogger,
}

func initLogger(cmd *cobra.Command, args []string) error {
	level := logLevel
	if level == "" {
		level = config.GetConfig().LogLevel
	}
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	log = logger.Sugar()
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
