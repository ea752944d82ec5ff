// Package indexdb keeps a queryable SQLite index of exports next to the
// compressed export log.
package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"randoexport.ai/internal/export/pipeline"
	"randoexport.ai/internal/export/spoiler"
	"randoexport.ai/internal/game/catalogs"
)

const schemaVersion = "1"

type SQLiteIndex struct {
	db  *sql.DB
	now func() time.Time
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS catalogs (
			game TEXT NOT NULL,
			name TEXT NOT NULL,
			digest TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (game, name)
		);`,
		`CREATE TABLE IF NOT EXISTS exports (
			session_id TEXT NOT NULL,
			player INTEGER NOT NULL,
			player_name TEXT NOT NULL,
			game TEXT NOT NULL,
			seed INTEGER NOT NULL,
			recorded_at TEXT NOT NULL,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (session_id, player)
		);`,
		`CREATE TABLE IF NOT EXISTS pickups (
			session_id TEXT NOT NULL,
			player INTEGER NOT NULL,
			pickup_index INTEGER NOT NULL,
			name TEXT NOT NULL,
			original TEXT NOT NULL,
			other_player INTEGER NOT NULL,
			model TEXT NOT NULL,
			PRIMARY KEY (session_id, player, pickup_index),
			FOREIGN KEY (session_id, player) REFERENCES exports(session_id, player) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_pickups_original ON pickups(original);`,
		`CREATE TABLE IF NOT EXISTS hints (
			session_id TEXT NOT NULL,
			player INTEGER NOT NULL,
			node TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (session_id, player, node),
			FOREIGN KEY (session_id, player) REFERENCES exports(session_id, player) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS credits (
			session_id TEXT NOT NULL,
			player INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			pickup TEXT NOT NULL,
			locations TEXT NOT NULL,
			PRIMARY KEY (session_id, player, seq),
			FOREIGN KEY (session_id, player) REFERENCES exports(session_id, player) ON DELETE CASCADE
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// UpsertCatalogs stores the raw catalog files of db with their digests.
func (s *SQLiteIndex) UpsertCatalogs(ctx context.Context, configDir string, db *catalogs.Database) error {
	if s == nil {
		return nil
	}
	now := s.now().UTC().Format(time.RFC3339Nano)

	type kv struct {
		name   string
		digest string
		json   []byte
	}
	var rows []kv
	read := func(name, digest string) error {
		b, err := os.ReadFile(filepath.Join(configDir, name))
		if err != nil {
			return err
		}
		rows = append(rows, kv{name: name, digest: digest, json: b})
		return nil
	}
	if err := read("resources.json", db.Resources.Digest); err != nil {
		return err
	}
	if err := read("pickups.json", db.Pickups.Digest); err != nil {
		return err
	}
	if err := read("world.json", db.WorldDigest); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version',?)`, schemaVersion); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO catalogs(game,name,digest,json,updated_at) VALUES(?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if r.digest == "" || len(r.json) == 0 {
			continue
		}
		if _, err := stmt.ExecContext(ctx, db.Game, r.name, r.digest, string(r.json), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecordExport replaces everything stored for e's session and player.
func (s *SQLiteIndex) RecordExport(ctx context.Context, e pipeline.PlayerExport) error {
	if s == nil {
		return nil
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exports WHERE session_id=? AND player=?`, e.SessionID, e.Player); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO exports(session_id,player,player_name,game,seed,recorded_at,raw_json) VALUES(?,?,?,?,?,?,?)`,
		e.SessionID, e.Player, e.PlayerName, e.Game, e.Seed, s.now().UTC().Format(time.RFC3339Nano), string(raw),
	); err != nil {
		return err
	}

	insertPickup, err := tx.PrepareContext(ctx, `INSERT INTO pickups(session_id,player,pickup_index,name,original,other_player,model) VALUES(?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer insertPickup.Close()
	for _, d := range e.Pickups {
		other := 0
		if d.OtherPlayer {
			other = 1
		}
		model := d.Model.Game + "/" + d.Model.Name
		if _, err := insertPickup.ExecContext(ctx, e.SessionID, e.Player, int(d.Index), d.Name, d.OriginalPickup.Name, other, model); err != nil {
			return err
		}
	}

	insertHint, err := tx.PrepareContext(ctx, `INSERT INTO hints(session_id,player,node,text) VALUES(?,?,?,?)`)
	if err != nil {
		return err
	}
	defer insertHint.Close()
	for _, h := range e.Hints {
		if _, err := insertHint.ExecContext(ctx, e.SessionID, e.Player, h.Node.String(), h.Text); err != nil {
			return err
		}
	}

	insertCredit, err := tx.PrepareContext(ctx, `INSERT INTO credits(session_id,player,seq,pickup,locations) VALUES(?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer insertCredit.Close()
	for i, c := range e.Credits {
		if _, err := insertCredit.ExecContext(ctx, e.SessionID, e.Player, i, c.Pickup, c.Locations); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Credits returns the stored credits of one player in their original order.
func (s *SQLiteIndex) Credits(ctx context.Context, sessionID string, player int) (spoiler.Credits, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pickup,locations FROM credits WHERE session_id=? AND player=? ORDER BY seq`, sessionID, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out spoiler.Credits
	for rows.Next() {
		var c spoiler.CreditsEntry
		if err := rows.Scan(&c.Pickup, &c.Locations); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Export loads the full stored export of one player.
func (s *SQLiteIndex) Export(ctx context.Context, sessionID string, player int) (pipeline.PlayerExport, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT raw_json FROM exports WHERE session_id=? AND player=?`, sessionID, player).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return pipeline.PlayerExport{}, false, nil
	}
	if err != nil {
		return pipeline.PlayerExport{}, false, err
	}
	var e pipeline.PlayerExport
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return pipeline.PlayerExport{}, false, err
	}
	return e, true, nil
}

// PlayersHolding lists the (session, player) pairs whose world holds a
// pickup named original.
func (s *SQLiteIndex) PlayersHolding(ctx context.Context, original string) ([]Holding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id,player,pickup_index FROM pickups WHERE original=? ORDER BY session_id,player,pickup_index`, original)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Holding
	for rows.Next() {
		var h Holding
		if err := rows.Scan(&h.SessionID, &h.Player, &h.Index); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type Holding struct {
	SessionID string
	Player    int
	Index     int
}
