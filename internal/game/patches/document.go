package patches

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"randoexport.ai/internal/game/catalogs"
	"randoexport.ai/internal/game/hints"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/resources"
	"randoexport.ai/internal/game/worldgraph"
)

//go:embed schema/patches.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("patches.schema.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("patches.schema.json")
	})
	return schema, schemaErr
}

type Document struct {
	SessionID   string      `json:"session_id,omitempty"`
	PlayerNames []string    `json:"player_names"`
	Players     []PlayerDoc `json:"players"`
}

type PlayerDoc struct {
	Game                string             `json:"game"`
	Pickups             []PlacementDoc     `json:"pickups"`
	StartingItems       map[string]int     `json:"starting_items,omitempty"`
	StartingLocation    *worldgraph.AreaID `json:"starting_location,omitempty"`
	DockConnections     []ConnectionDoc    `json:"dock_connections,omitempty"`
	ElevatorConnections []ConnectionDoc    `json:"elevator_connections,omitempty"`
	Hints               []HintDoc          `json:"hints,omitempty"`
}

type PlacementDoc struct {
	Index  pickup.Index `json:"index"`
	Pickup string       `json:"pickup"`
	Player int          `json:"player"`
}

type ConnectionDoc struct {
	Source worldgraph.NodeID `json:"source"`
	Target worldgraph.NodeID `json:"target"`
}

type HintDoc struct {
	Node       worldgraph.NodeID `json:"node"`
	Type       hints.HintType    `json:"hint_type"`
	Target     *pickup.Index     `json:"target,omitempty"`
	DarkTemple string            `json:"dark_temple,omitempty"`
	Precision  *PrecisionDoc     `json:"precision,omitempty"`
}

type PrecisionDoc struct {
	Location     hints.LocationPrecision `json:"location"`
	Item         hints.ItemPrecision     `json:"item"`
	IncludeOwner bool                    `json:"include_owner,omitempty"`
	Relative     *RelativeDoc            `json:"relative,omitempty"`
}

type RelativeDoc struct {
	Kind           string                 `json:"kind"`
	DistanceOffset *int                   `json:"distance_offset,omitempty"`
	Area           *worldgraph.AreaID     `json:"area,omitempty"`
	AreaPrecision  hints.RelativeAreaName `json:"area_precision,omitempty"`
	OtherIndex     *pickup.Index          `json:"other_index,omitempty"`
	ItemPrecision  hints.ItemPrecision    `json:"item_precision,omitempty"`
}

// Session is a decoded document: every player's patches plus the name table.
type Session struct {
	Patches     AllPatches
	PlayerNames map[int]string
	SessionID   uuid.UUID
}

func (s Session) PlayersConfiguration(player int) PlayersConfiguration {
	return NewPlayersConfiguration(player, s.PlayerNames, s.SessionID)
}

// Validate checks raw against the embedded JSON schema.
func Validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("patches schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("patches: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("patches: %w", err)
	}
	return nil
}

// Decode validates raw and resolves names against the per-game databases.
func Decode(raw []byte, dbs map[string]*catalogs.Database) (Session, error) {
	var out Session
	if err := Validate(raw); err != nil {
		return out, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return out, fmt.Errorf("patches: %w", err)
	}
	if len(doc.PlayerNames) != len(doc.Players) {
		return out, fmt.Errorf("patches: %d player names for %d players", len(doc.PlayerNames), len(doc.Players))
	}
	if id := strings.TrimSpace(doc.SessionID); id != "" {
		sid, err := uuid.Parse(id)
		if err != nil {
			return out, fmt.Errorf("patches: session_id: %w", err)
		}
		out.SessionID = sid
	}
	out.PlayerNames = map[int]string{}
	for i, n := range doc.PlayerNames {
		out.PlayerNames[i] = n
	}
	// A multiworld document without an id is named by its content.
	if out.SessionID == uuid.Nil && len(out.PlayerNames) > 1 {
		out.SessionID = uuid.NewSHA1(uuid.NameSpaceOID, raw)
	}

	playerDB := make([]*catalogs.Database, len(doc.Players))
	for i, p := range doc.Players {
		db, ok := dbs[p.Game]
		if !ok {
			return out, fmt.Errorf("patches: player %d: no database for game %q", i, p.Game)
		}
		playerDB[i] = db
	}

	out.Patches = AllPatches{}
	for i, p := range doc.Players {
		gp, err := decodePlayer(i, p, playerDB)
		if err != nil {
			return out, fmt.Errorf("patches: player %d: %w", i, err)
		}
		out.Patches[i] = gp
	}
	return out, nil
}

func decodePlayer(player int, p PlayerDoc, dbs []*catalogs.Database) (GamePatches, error) {
	db := dbs[player]
	gp := GamePatches{
		Player:              player,
		Game:                p.Game,
		Graph:               db.Graph,
		PickupAssignment:    pickup.Assignment{},
		Hints:               map[worldgraph.NodeID]hints.Hint{},
		DockConnections:     worldgraph.Connections{},
		ElevatorConnections: worldgraph.Connections{},
	}

	for _, pl := range p.Pickups {
		if _, err := db.Graph.NodeFromPickupIndex(pl.Index); err != nil {
			return gp, err
		}
		if pl.Player >= len(dbs) {
			return gp, fmt.Errorf("pickup %d: unknown owner %d", pl.Index, pl.Player)
		}
		if _, dup := gp.PickupAssignment[pl.Index]; dup {
			return gp, fmt.Errorf("pickup %d assigned twice", pl.Index)
		}
		entry, err := dbs[pl.Player].Pickup(pl.Pickup)
		if err != nil {
			return gp, err
		}
		gp.PickupAssignment[pl.Index] = pickup.Target{Pickup: entry, Player: pl.Player}
	}

	names := make([]string, 0, len(p.StartingItems))
	for n := range p.StartingItems {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		r, err := db.Resource(n)
		if err != nil {
			return gp, err
		}
		gp.StartingResources = append(gp.StartingResources, resources.ResourceQuantity{Resource: r, Quantity: p.StartingItems[n]})
	}
	if p.StartingLocation != nil {
		if _, ok := db.Graph.Area(*p.StartingLocation); !ok {
			return gp, fmt.Errorf("starting location: %w: %s", worldgraph.ErrUnknownArea, *p.StartingLocation)
		}
		gp.StartingLocation = *p.StartingLocation
	}

	for _, c := range p.DockConnections {
		if err := checkConnection(db.Graph, c); err != nil {
			return gp, fmt.Errorf("dock: %w", err)
		}
		gp.DockConnections[c.Source] = c.Target
	}
	for _, c := range p.ElevatorConnections {
		if err := checkConnection(db.Graph, c); err != nil {
			return gp, fmt.Errorf("elevator: %w", err)
		}
		gp.ElevatorConnections[c.Source] = c.Target
	}

	for _, hd := range p.Hints {
		h, err := hd.hint()
		if err != nil {
			return gp, fmt.Errorf("hint %s: %w", hd.Node, err)
		}
		if _, dup := gp.Hints[hd.Node]; dup {
			return gp, fmt.Errorf("hint %s declared twice", hd.Node)
		}
		gp.Hints[hd.Node] = h
	}
	return gp, nil
}

func checkConnection(g *worldgraph.Graph, c ConnectionDoc) error {
	if _, ok := g.Node(c.Source); !ok {
		return fmt.Errorf("unknown node %s", c.Source)
	}
	if _, ok := g.Node(c.Target); !ok {
		return fmt.Errorf("unknown node %s", c.Target)
	}
	return nil
}

func (hd HintDoc) hint() (hints.Hint, error) {
	h := hints.Hint{Type: hd.Type, Target: hd.Target, DarkTemple: hd.DarkTemple}
	if hd.Precision != nil {
		pp := &hints.PrecisionPair{
			Location:     hd.Precision.Location,
			Item:         hd.Precision.Item,
			IncludeOwner: hd.Precision.IncludeOwner,
		}
		if r := hd.Precision.Relative; r != nil {
			switch r.Kind {
			case "area":
				if r.Area == nil {
					return h, fmt.Errorf("relative area without area")
				}
				prec := r.AreaPrecision
				if prec == "" {
					prec = hints.RelativeAreaByName
				}
				pp.Relative = &hints.RelativeDataArea{DistanceOffset: r.DistanceOffset, Area: *r.Area, Precision: prec}
			case "item":
				if r.OtherIndex == nil {
					return h, fmt.Errorf("relative item without other_index")
				}
				prec := r.ItemPrecision
				if prec == "" {
					prec = hints.ItemDetailed
				}
				pp.Relative = &hints.RelativeDataItem{DistanceOffset: r.DistanceOffset, OtherIndex: *r.OtherIndex, Precision: prec}
			default:
				return h, fmt.Errorf("unknown relative kind %q", r.Kind)
			}
		}
		h.Precision = pp
	}
	return h, h.Validate()
}
