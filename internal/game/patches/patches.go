package patches

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"randoexport.ai/internal/game/hints"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/resources"
	"randoexport.ai/internal/game/worldgraph"
)

// PickupLocation addresses a pickup across the games of a multiworld session.
type PickupLocation struct {
	Game  string       `json:"game"`
	Index pickup.Index `json:"index"`
}

type PlayersConfiguration struct {
	PlayerIndex int
	PlayerNames map[int]string
	// SessionID is uuid.Nil outside multiworld.
	SessionID uuid.UUID
}

func NewPlayersConfiguration(index int, names map[int]string, sessionID uuid.UUID) PlayersConfiguration {
	pc := PlayersConfiguration{PlayerIndex: index, PlayerNames: names}
	if pc.IsMultiworld() {
		pc.SessionID = sessionID
	}
	return pc
}

func (pc PlayersConfiguration) IsMultiworld() bool { return len(pc.PlayerNames) > 1 }

func (pc PlayersConfiguration) Name(player int) string {
	if n, ok := pc.PlayerNames[player]; ok {
		return n
	}
	return fmt.Sprintf("Player %d", player+1)
}

// GamePatches is the solver's output for one player. Exports only read it.
type GamePatches struct {
	Player int
	Game   string
	Graph  *worldgraph.Graph

	PickupAssignment  pickup.Assignment
	StartingResources resources.ResourceGain
	StartingLocation  worldgraph.AreaID
	Hints             map[worldgraph.NodeID]hints.Hint

	DockConnections     worldgraph.Connections
	ElevatorConnections worldgraph.Connections
}

// Connections merges dock and elevator overrides. Elevators win on conflict.
func (p GamePatches) Connections() worldgraph.Connections {
	out := make(worldgraph.Connections, len(p.DockConnections)+len(p.ElevatorConnections))
	for k, v := range p.DockConnections {
		out[k] = v
	}
	for k, v := range p.ElevatorConnections {
		out[k] = v
	}
	return out
}

func (p GamePatches) StartingCollection() resources.Collection {
	return resources.NewCollection(p.StartingResources)
}

// HintIDs returns the hint keys in a stable order.
func (p GamePatches) HintIDs() []worldgraph.NodeID {
	out := make([]worldgraph.NodeID, 0, len(p.Hints))
	for id := range p.Hints {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// AllPatches is keyed by player index.
type AllPatches map[int]GamePatches

func (a AllPatches) Players() []int {
	out := make([]int, 0, len(a))
	for p := range a {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
