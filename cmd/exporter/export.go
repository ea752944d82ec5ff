package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"randoexport.ai/internal/export/pipeline"
	"randoexport.ai/internal/persistence/exportlog"
	"randoexport.ai/internal/persistence/indexdb"
)

var (
	sessionPath string
	player      int
	seed        int64
	logDir      string
	indexPath   string
	quiet       bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one player, or every player, of a session",
	Long: `Reads a session document, resolves pickups, hints, guaranteed hints,
credits and starting items, and prints one JSON document per player.

Example:
  exporter export --session configs/session.json --player 1 --seed 1234`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&sessionPath, "session", "", "session document (JSON)")
	exportCmd.Flags().IntVar(&player, "player", -1, "player index; -1 exports every player")
	exportCmd.Flags().Int64Var(&seed, "seed", 0, "seed for decoy models and joke order")
	exportCmd.Flags().StringVar(&logDir, "log-dir", "", "append exports to daily .jsonl.zst files here")
	exportCmd.Flags().StringVar(&indexPath, "index", "", "record exports in this SQLite index")
	exportCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print exports")
	_ = exportCmd.MarkFlagRequired("session")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, dbs, err := loadSession(sessionPath)
	if err != nil {
		return err
	}
	in := pipeline.Input{Session: session, Databases: dbs, Config: cfg, Seed: seed, Logger: logger}

	var exports []pipeline.PlayerExport
	if player < 0 {
		exports, err = pipeline.ExportSession(in)
	} else {
		var e pipeline.PlayerExport
		e, err = pipeline.ExportPlayer(in, player)
		exports = []pipeline.PlayerExport{e}
	}
	if err != nil {
		return err
	}

	if logDir != "" {
		l := exportlog.Open(logDir)
		if err := l.Append(exports...); err != nil {
			_ = l.Close()
			return err
		}
		if err := l.Close(); err != nil {
			return fmt.Errorf("export log: %w", err)
		}
		logger.Info("appended export log", zap.String("dir", logDir), zap.Int("records", len(exports)))
	}

	if indexPath != "" {
		idx, err := indexdb.OpenSQLite(indexPath)
		if err != nil {
			return fmt.Errorf("index: %w", err)
		}
		defer idx.Close()
		for game, db := range dbs {
			if err := idx.UpsertCatalogs(ctx, filepath.Join(configsDir, game), db); err != nil {
				return fmt.Errorf("index catalogs: %w", err)
			}
		}
		for _, e := range exports {
			if err := idx.RecordExport(ctx, e); err != nil {
				return fmt.Errorf("index: %w", err)
			}
		}
		logger.Info("recorded exports", zap.String("index", indexPath), zap.Int("players", len(exports)))
	}

	if quiet {
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	for _, e := range exports {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
