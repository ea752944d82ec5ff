package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"randoexport.ai/internal/export/config"
	"randoexport.ai/internal/game/catalogs"
	"randoexport.ai/internal/game/patches"
)

func loadDatabase(game string) (*catalogs.Database, error) {
	db, err := catalogs.Load(game, filepath.Join(configsDir, game))
	if err != nil {
		return nil, fmt.Errorf("catalogs %s: %w", game, err)
	}
	logger.Debug("loaded catalogs",
		zap.String("game", game),
		zap.Int("resources", len(db.Resources.Names)),
		zap.Int("pickups", len(db.Pickups.Names)),
		zap.String("world_digest", db.WorldDigest))
	return db, nil
}

// loadSession reads a session document and the catalogs of every game it uses.
func loadSession(path string) (patches.Session, map[string]*catalogs.Database, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return patches.Session{}, nil, err
	}
	if err := patches.Validate(raw); err != nil {
		return patches.Session{}, nil, err
	}
	var doc patches.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return patches.Session{}, nil, fmt.Errorf("patches: %w", err)
	}

	games := map[string]bool{}
	for _, p := range doc.Players {
		games[p.Game] = true
	}
	names := make([]string, 0, len(games))
	for g := range games {
		names = append(names, g)
	}
	sort.Strings(names)

	dbs := make(map[string]*catalogs.Database, len(names))
	for _, g := range names {
		db, err := loadDatabase(g)
		if err != nil {
			return patches.Session{}, nil, err
		}
		dbs[g] = db
	}
	s, err := patches.Decode(raw, dbs)
	if err != nil {
		return patches.Session{}, nil, err
	}
	return s, dbs, nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	logger.Debug("loaded export config",
		zap.String("path", configPath),
		zap.String("game", cfg.Game),
		zap.String("model_style", cfg.ModelStyle),
		zap.String("model_data_source", cfg.ModelDataSource))
	return cfg, nil
}
