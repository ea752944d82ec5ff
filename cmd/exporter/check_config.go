package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate export.yaml against the catalogs of its game",
	Args:  cobra.NoArgs,
	RunE:  runCheckConfig,
}

func runCheckConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := loadDatabase(cfg.Game)
	if err != nil {
		return err
	}
	if err := cfg.ValidateAgainst(db); err != nil {
		return err
	}
	logger.Info("config ok", zap.String("game", cfg.Game), zap.String("path", configPath))
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", cfg.Game)
	return nil
}
