// Command exporter turns resolved session patches into per-player patcher
// data.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configsDir string
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "exporter",
	Short:         "Export randomizer sessions into patcher data",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configsDir, "configs", "./configs", "directory holding one catalog directory per game")
	rootCmd.PersistentFlags().StringVar(&configPath, "export-config", "./configs/export.yaml", "export.yaml path (empty uses built-in defaults)")

	rootCmd.AddCommand(exportCmd, creditsCmd, checkConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
