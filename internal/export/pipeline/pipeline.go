// Package pipeline runs every export step for one player of a session.
package pipeline

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"randoexport.ai/internal/export/config"
	"randoexport.ai/internal/export/hinting"
	"randoexport.ai/internal/export/naming"
	"randoexport.ai/internal/export/pickups"
	"randoexport.ai/internal/export/spoiler"
	"randoexport.ai/internal/game/catalogs"
	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/resources"
	"randoexport.ai/internal/game/rng"
)

type Input struct {
	Session   patches.Session
	Databases map[string]*catalogs.Database
	Config    config.Config
	Seed      int64
	Logger    *zap.Logger
}

// PlayerExport is everything the patcher of one player consumes.
type PlayerExport struct {
	Player          int                    `json:"player"`
	PlayerName      string                 `json:"player_name"`
	Game            string                 `json:"game"`
	SessionID       string                 `json:"session_id,omitempty"`
	Seed            int64                  `json:"seed"`
	Pickups         []pickups.Details      `json:"pickups"`
	Hints           []hinting.ExportedHint `json:"hints"`
	GuaranteedHints []spoiler.ResourceHint `json:"guaranteed_hints"`
	Credits         spoiler.Credits        `json:"credits"`
	StartingItems   pickups.StartingItems  `json:"starting_items"`
}

// ExportSession exports every player in ascending player order.
func ExportSession(in Input) ([]PlayerExport, error) {
	players := in.Session.Patches.Players()
	out := make([]PlayerExport, 0, len(players))
	for _, p := range players {
		e, err := ExportPlayer(in, p)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func ExportPlayer(in Input, player int) (PlayerExport, error) {
	log := in.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := in.Config
	all := in.Session.Patches

	own, ok := all[player]
	if !ok {
		return PlayerExport{}, fmt.Errorf("no patches for player %d", player)
	}
	db, ok := in.Databases[own.Game]
	if !ok {
		return PlayerExport{}, fmt.Errorf("player %d: no database for game %q", player, own.Game)
	}
	if err := cfg.ValidateAgainst(db); err != nil {
		return PlayerExport{}, fmt.Errorf("player %d: config: %w", player, err)
	}
	players := in.Session.PlayersConfiguration(player)

	s, err := newSteps(cfg, db, all, players, in.Seed)
	if err != nil {
		return PlayerExport{}, fmt.Errorf("player %d: %w", player, err)
	}

	out := PlayerExport{
		Player:     player,
		PlayerName: players.Name(player),
		Game:       own.Game,
		Seed:       in.Seed,
	}
	if players.SessionID != uuid.Nil {
		out.SessionID = players.SessionID.String()
	}

	out.Pickups, err = pickups.ExportAllIndices(own, s.useless, s.modelRNG, s.style, s.source, s.exporter, s.useless.Pickup)
	if err != nil {
		return PlayerExport{}, fmt.Errorf("player %d: pickups: %w", player, err)
	}
	out.Hints, err = s.hints.ExportHints(all, players, cfg.WithColor)
	if err != nil {
		return PlayerExport{}, fmt.Errorf("player %d: hints: %w", player, err)
	}
	out.GuaranteedHints, err = spoiler.GuaranteedHintsForResources(all, players, s.namer, s.guaranteed, cfg.HideGuaranteedArea, cfg.WithColor)
	if err != nil {
		return PlayerExport{}, fmt.Errorf("player %d: guaranteed hints: %w", player, err)
	}
	out.Credits, err = spoiler.BuildCredits(all, players, s.namer, cfg.CreditsOrder, "")
	if err != nil {
		return PlayerExport{}, fmt.Errorf("player %d: credits: %w", player, err)
	}
	out.StartingItems = pickups.StartingItemsFor(own, log)

	log.Info("exported player",
		zap.Int("player", player),
		zap.String("game", own.Game),
		zap.Bool("multiworld", players.IsMultiworld()),
		zap.Int("pickups", len(out.Pickups)),
		zap.Int("hints", len(out.Hints)),
		zap.Int("credits", len(out.Credits)))
	return out, nil
}

// steps holds the per-player collaborators built from config.
type steps struct {
	namer      *naming.Namer
	style      pickups.ModelStyle
	source     pickups.DataSource
	useless    pickup.Target
	exporter   pickups.Exporter
	hints      *hinting.HintExporter
	guaranteed []resources.ResourceInfo
	modelRNG   *rand.Rand
}

func newSteps(cfg config.Config, db *catalogs.Database, all patches.AllPatches, players patches.PlayersConfiguration, seed int64) (*steps, error) {
	colors, err := naming.ColorizerFor(cfg.Colors)
	if err != nil {
		return nil, err
	}
	style, err := cfg.Style()
	if err != nil {
		return nil, err
	}
	source, err := cfg.DataSource()
	if err != nil {
		return nil, err
	}
	useless, err := db.Pickup(cfg.UselessPickup)
	if err != nil {
		return nil, err
	}

	var exp pickups.Exporter = pickups.NewSoloExporter(cfg.MemoText)
	if players.IsMultiworld() {
		mw, err := db.Resource(cfg.MultiworldResource)
		if err != nil {
			return nil, err
		}
		exp = pickups.NewMultiExporter(exp, mw, players)
	}

	temples := make(map[string][]resources.ResourceInfo, len(cfg.Temples))
	for _, t := range cfg.Temples {
		keys, err := resolveResources(db, t.Keys)
		if err != nil {
			return nil, fmt.Errorf("temple %s: %w", t.Name, err)
		}
		temples[t.Name] = keys
	}
	guaranteed, err := resolveResources(db, cfg.GuaranteedItems)
	if err != nil {
		return nil, err
	}

	namer := naming.NamerFor(all, colors)
	salt := cfg.SeedSalt + ":" + strconv.Itoa(players.PlayerIndex)
	hx := hinting.NewHintExporter(namer, rng.New(seed, salt+":hints"), hinting.Options{
		JokeHints:   cfg.JokeHints,
		Determiners: naming.NewDeterminers(cfg.Determiners.None, cfg.Determiners.An),
		Guardians:   cfg.GuardianIndices(),
		Temples:     temples,
		Useless:     useless,
	})

	return &steps{
		namer:      namer,
		style:      style,
		source:     source,
		useless:    pickup.Target{Pickup: useless, Player: players.PlayerIndex},
		exporter:   exp,
		hints:      hx,
		guaranteed: guaranteed,
		modelRNG:   rng.New(seed, salt+":models"),
	}, nil
}

func resolveResources(db *catalogs.Database, names []string) ([]resources.ResourceInfo, error) {
	out := make([]resources.ResourceInfo, 0, len(names))
	for _, n := range names {
		r, err := db.Resource(n)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
