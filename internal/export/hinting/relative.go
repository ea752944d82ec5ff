package hinting

import (
	"fmt"

	"randoexport.ai/internal/export/naming"
	"randoexport.ai/internal/game/hints"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/worldgraph"
)

// RenderDistance renders raw+offset rooms. A nil offset means the distance is
// an upper bound.
func RenderDistance(raw int, offset *int) string {
	d := raw
	if offset != nil {
		d += *offset
	}
	if d == 1 {
		return "one room"
	}
	precise := "up to "
	if offset != nil {
		precise = "exactly "
	}
	return fmt.Sprintf("%s%d rooms", precise, d)
}

// relativeFormatter measures distances over the graph as patched.
type relativeFormatter struct {
	graph *worldgraph.Graph
	conn  worldgraph.Connections
	namer Namer
}

func (r relativeFormatter) distance(source pickup.Index, target worldgraph.AreaID) (int, error) {
	from, err := r.graph.AreaForPickup(source)
	if err != nil {
		return 0, err
	}
	return r.graph.DistanceBetween(from, target, r.conn)
}

func (r relativeFormatter) format(ph PickupHint, h hints.Hint, otherArea worldgraph.AreaID, otherName string, withColor bool) (string, error) {
	if h.Target == nil {
		return "", fmt.Errorf("hint has no target")
	}
	d, err := r.distance(*h.Target, otherArea)
	if err != nil {
		return "", err
	}
	msg := RenderDistance(d, h.Precision.Relative.Offset())
	return fmt.Sprintf("%s%s can be found %s away from %s.",
		ph.Determiner.Title(), colorPickup(r.namer, ph, withColor),
		r.namer.Colorize(msg, naming.ColorLocation, withColor), otherName), nil
}

type RelativeAreaFormatter struct {
	relativeFormatter
}

func NewRelativeAreaFormatter(g *worldgraph.Graph, conn worldgraph.Connections, namer Namer) *RelativeAreaFormatter {
	return &RelativeAreaFormatter{relativeFormatter{graph: g, conn: conn, namer: namer}}
}

func (f *RelativeAreaFormatter) Format(ph PickupHint, h hints.Hint, withColor bool) (string, error) {
	rel, ok := h.Precision.Relative.(*hints.RelativeDataArea)
	if !ok {
		return "", fmt.Errorf("relative-to-area hint without area data")
	}
	var otherName string
	switch rel.Precision {
	case hints.RelativeAreaByName:
		otherName = f.namer.FormatArea(rel.Area, true, withColor)
	case hints.RelativeAreaByFeature:
		return "", fmt.Errorf("relative area naming %s: %w", rel.Precision, ErrNotImplemented)
	default:
		return "", fmt.Errorf("unknown relative area naming %q", rel.Precision)
	}
	return f.format(ph, h, rel.Area, otherName, withColor)
}

// PickupResolver names the item at another index; relative-to-item hints use
// it so the other location is named by the usual item rules.
type PickupResolver interface {
	Hint(index pickup.Index, precision hints.ItemPrecision, includeOwner bool) (PickupHint, error)
}

type RelativeItemFormatter struct {
	relativeFormatter
	pickups PickupResolver
}

func NewRelativeItemFormatter(g *worldgraph.Graph, conn worldgraph.Connections, namer Namer, pickups PickupResolver) *RelativeItemFormatter {
	return &RelativeItemFormatter{relativeFormatter: relativeFormatter{graph: g, conn: conn, namer: namer}, pickups: pickups}
}

func (f *RelativeItemFormatter) Format(ph PickupHint, h hints.Hint, withColor bool) (string, error) {
	rel, ok := h.Precision.Relative.(*hints.RelativeDataItem)
	if !ok {
		return "", fmt.Errorf("relative-to-index hint without item data")
	}
	otherArea, err := f.graph.AreaForPickup(rel.OtherIndex)
	if err != nil {
		return "", err
	}
	other, err := f.pickups.Hint(rel.OtherIndex, rel.Precision, h.Precision.IncludeOwner)
	if err != nil {
		return "", err
	}
	otherName := other.Determiner.String() + colorPickup(f.namer, other, withColor)
	return f.format(ph, h, otherArea, otherName, withColor)
}
