package worldgraph

import (
	"errors"
	"fmt"
	"sort"

	"randoexport.ai/internal/game/pickup"
)

var (
	ErrUnknownPickupIndex = errors.New("unknown pickup index")
	ErrUnknownArea        = errors.New("unknown area")
	ErrUnreachable        = errors.New("area unreachable")
)

type NodeKind string

const (
	KindGeneric    NodeKind = "generic"
	KindPickup     NodeKind = "pickup"
	KindDock       NodeKind = "dock"
	KindTeleporter NodeKind = "teleporter"
)

type AreaID struct {
	World string `json:"world"`
	Area  string `json:"area"`
}

func (a AreaID) String() string { return a.World + "/" + a.Area }

type NodeID struct {
	World string `json:"world"`
	Area  string `json:"area"`
	Node  string `json:"node"`
}

func (n NodeID) AreaID() AreaID { return AreaID{World: n.World, Area: n.Area} }

func (n NodeID) String() string { return n.World + "/" + n.Area + "/" + n.Node }

type Node struct {
	Name        string       `json:"name"`
	Kind        NodeKind     `json:"kind"`
	PickupIndex pickup.Index `json:"pickup_index,omitempty"`
	// Destination is the vanilla connection of a dock or teleporter.
	Destination  *NodeID  `json:"destination,omitempty"`
	HintFeatures []string `json:"hint_features,omitempty"`
}

type Area struct {
	Name         string   `json:"name"`
	Nodes        []Node   `json:"nodes"`
	HintFeatures []string `json:"hint_features,omitempty"`
}

type World struct {
	Name  string `json:"name"`
	Areas []Area `json:"areas"`
}

// Connections overrides node destinations after randomization (docks and
// elevators).
type Connections map[NodeID]NodeID

// Graph is an indexed, read-only view over the worlds of one game.
type Graph struct {
	worlds   []World
	areas    map[AreaID]*Area
	nodes    map[NodeID]*Node
	byPickup map[pickup.Index]NodeID
	indices  []pickup.Index
}

func New(worlds []World) (*Graph, error) {
	g := &Graph{
		worlds:   worlds,
		areas:    map[AreaID]*Area{},
		nodes:    map[NodeID]*Node{},
		byPickup: map[pickup.Index]NodeID{},
	}
	for wi := range worlds {
		w := &worlds[wi]
		if w.Name == "" {
			return nil, fmt.Errorf("world %d: empty name", wi)
		}
		for ai := range w.Areas {
			a := &w.Areas[ai]
			aid := AreaID{World: w.Name, Area: a.Name}
			if _, dup := g.areas[aid]; dup {
				return nil, fmt.Errorf("duplicate area: %s", aid)
			}
			g.areas[aid] = a
			for ni := range a.Nodes {
				n := &a.Nodes[ni]
				nid := NodeID{World: w.Name, Area: a.Name, Node: n.Name}
				if _, dup := g.nodes[nid]; dup {
					return nil, fmt.Errorf("duplicate node: %s", nid)
				}
				g.nodes[nid] = n
				if n.Kind == KindPickup {
					if prev, dup := g.byPickup[n.PickupIndex]; dup {
						return nil, fmt.Errorf("pickup index %d used by %s and %s", n.PickupIndex, prev, nid)
					}
					g.byPickup[n.PickupIndex] = nid
					g.indices = append(g.indices, n.PickupIndex)
				}
			}
		}
	}
	for id, n := range g.nodes {
		if n.Destination == nil {
			continue
		}
		if _, ok := g.nodes[*n.Destination]; !ok {
			return nil, fmt.Errorf("node %s: unknown destination %s", id, *n.Destination)
		}
	}
	sort.Slice(g.indices, func(i, j int) bool { return g.indices[i] < g.indices[j] })
	return g, nil
}

func (g *Graph) Worlds() []World { return g.worlds }

// PickupIndices returns every pickup index in ascending order.
func (g *Graph) PickupIndices() []pickup.Index {
	out := make([]pickup.Index, len(g.indices))
	copy(out, g.indices)
	return out
}

func (g *Graph) NumPickupNodes() int { return len(g.indices) }

func (g *Graph) NodeFromPickupIndex(i pickup.Index) (NodeID, error) {
	id, ok := g.byPickup[i]
	if !ok {
		return NodeID{}, fmt.Errorf("%w: %d", ErrUnknownPickupIndex, i)
	}
	return id, nil
}

func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

func (g *Graph) Area(id AreaID) (Area, bool) {
	a, ok := g.areas[id]
	if !ok {
		return Area{}, false
	}
	return *a, true
}

func (g *Graph) AreaForNode(id NodeID) AreaID { return id.AreaID() }

// AreaForPickup is NodeFromPickupIndex followed by AreaForNode.
func (g *Graph) AreaForPickup(i pickup.Index) (AreaID, error) {
	nid, err := g.NodeFromPickupIndex(i)
	if err != nil {
		return AreaID{}, err
	}
	return g.AreaForNode(nid), nil
}

func (g *Graph) destination(id NodeID, n *Node, conn Connections) (NodeID, bool) {
	if to, ok := conn[id]; ok {
		return to, true
	}
	if n.Destination != nil {
		return *n.Destination, true
	}
	return NodeID{}, false
}

// Neighbors lists the areas reachable from a in one dock or teleporter hop,
// honoring conn. Order follows the area's node order, without duplicates.
func (g *Graph) Neighbors(a AreaID, conn Connections) []AreaID {
	area, ok := g.areas[a]
	if !ok {
		return nil
	}
	var out []AreaID
	seen := map[AreaID]bool{a: true}
	for ni := range area.Nodes {
		n := &area.Nodes[ni]
		if n.Kind != KindDock && n.Kind != KindTeleporter {
			continue
		}
		to, ok := g.destination(NodeID{World: a.World, Area: a.Area, Node: n.Name}, n, conn)
		if !ok {
			continue
		}
		next := to.AreaID()
		if seen[next] {
			continue
		}
		if _, known := g.areas[next]; !known {
			continue
		}
		seen[next] = true
		out = append(out, next)
	}
	return out
}
