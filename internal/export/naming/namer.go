package naming

import (
	"fmt"

	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/resources"
	"randoexport.ai/internal/game/worldgraph"
)

// Namer renders locations, areas and resources for player-facing text.
type Namer struct {
	graphs map[string]*worldgraph.Graph
	colors Colorizer
}

// NewNamer takes one graph per game of the session.
func NewNamer(graphs map[string]*worldgraph.Graph, colors Colorizer) *Namer {
	if colors == nil {
		colors = Plain
	}
	return &Namer{graphs: graphs, colors: colors}
}

// NamerFor builds a Namer over every game present in all.
func NamerFor(all patches.AllPatches, colors Colorizer) *Namer {
	graphs := map[string]*worldgraph.Graph{}
	for _, p := range all {
		graphs[p.Game] = p.Graph
	}
	return NewNamer(graphs, colors)
}

func (n *Namer) Colorize(text string, color TextColor, withColor bool) string {
	if !withColor {
		return text
	}
	return n.colors.Colorize(text, color)
}

func (n *Namer) FormatArea(a worldgraph.AreaID, withWorld, withColor bool) string {
	text := a.Area
	if withWorld {
		text = a.World + " - " + a.Area
	}
	return n.Colorize(text, ColorLocation, withColor)
}

func (n *Namer) area(loc patches.PickupLocation) (worldgraph.AreaID, error) {
	g, ok := n.graphs[loc.Game]
	if !ok {
		return worldgraph.AreaID{}, fmt.Errorf("no graph for game %q", loc.Game)
	}
	return g.AreaForPickup(loc.Index)
}

// FormatLocation names a pickup location by world, and area when withArea is set.
func (n *Namer) FormatLocation(loc patches.PickupLocation, withArea, withColor bool) (string, error) {
	a, err := n.area(loc)
	if err != nil {
		return "", err
	}
	if !withArea {
		return n.Colorize(a.World, ColorLocation, withColor), nil
	}
	return n.FormatArea(a, true, withColor), nil
}

func (n *Namer) FormatWorld(loc patches.PickupLocation, withColor bool) (string, error) {
	return n.FormatLocation(loc, false, withColor)
}

func (n *Namer) FormatPlayer(name string, withColor bool) string {
	return n.Colorize(name, ColorPlayer, withColor)
}

func (n *Namer) FormatResourceIsStarting(r resources.ResourceInfo, withColor bool) string {
	return fmt.Sprintf("%s has no need to be located.", n.Colorize(r.LongName, ColorItem, withColor))
}

// FormatGuaranteedResource renders where r was placed. playerName is empty
// outside multiworld.
func (n *Namer) FormatGuaranteedResource(r resources.ResourceInfo, playerName string, loc patches.PickupLocation, hideArea, withColor bool) (string, error) {
	where, err := n.FormatLocation(loc, !hideArea, withColor)
	if err != nil {
		return "", err
	}
	if playerName != "" {
		where = n.FormatPlayer(playerName, withColor) + "'s " + where
	}
	return fmt.Sprintf("%s is located in %s.", n.Colorize(r.LongName, ColorItem, withColor), where), nil
}

func (n *Namer) FormatGuardian(name string, withColor bool) string {
	return n.Colorize(name, ColorGuardian, withColor)
}

func (n *Namer) FormatTempleName(name string, withColor bool) string {
	return n.Colorize(name, ColorLocation, withColor)
}
