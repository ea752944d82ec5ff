package hinting

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"randoexport.ai/internal/export/naming"
	"randoexport.ai/internal/game/hints"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/worldgraph"
)

var ErrNotImplemented = errors.New("not implemented")

// Namer is the naming capability formatters use.
type Namer interface {
	Colorize(text string, color naming.TextColor, withColor bool) string
	FormatArea(a worldgraph.AreaID, withWorld, withColor bool) string
	FormatGuardian(name string, withColor bool) string
}

// LocationFormatter renders a LOCATION hint for one location precision.
type LocationFormatter interface {
	Format(ph PickupHint, h hints.Hint, withColor bool) (string, error)
}

func colorPickup(n Namer, ph PickupHint, withColor bool) string {
	return n.Colorize(ph.Name(), naming.ColorItem, withColor)
}

func targetArea(g *worldgraph.Graph, h hints.Hint) (worldgraph.AreaID, error) {
	if h.Target == nil {
		return worldgraph.AreaID{}, fmt.Errorf("hint has no target")
	}
	return g.AreaForPickup(*h.Target)
}

// NodeStyle selects how much of the location a templated hint names.
type NodeStyle int

const (
	NodeWorldAndArea NodeStyle = iota
	NodeWorldOnly
	NodeAreaOnly
)

type TemplatedFormatter struct {
	template string
	style    NodeStyle
	graph    *worldgraph.Graph
	namer    Namer
}

// NewTemplatedFormatter fills {determiner}, {determiner.title}, {pickup} and
// {node} in template.
func NewTemplatedFormatter(template string, style NodeStyle, g *worldgraph.Graph, namer Namer) *TemplatedFormatter {
	return &TemplatedFormatter{template: template, style: style, graph: g, namer: namer}
}

func (f *TemplatedFormatter) Format(ph PickupHint, h hints.Hint, withColor bool) (string, error) {
	a, err := targetArea(f.graph, h)
	if err != nil {
		return "", err
	}
	var node string
	switch f.style {
	case NodeWorldOnly:
		node = f.namer.Colorize(a.World, naming.ColorLocation, withColor)
	case NodeAreaOnly:
		node = f.namer.FormatArea(a, false, withColor)
	default:
		node = f.namer.FormatArea(a, true, withColor)
	}
	r := strings.NewReplacer(
		"{determiner.title}", ph.Determiner.Title(),
		"{determiner}", ph.Determiner.String(),
		"{pickup}", colorPickup(f.namer, ph, withColor),
		"{node}", node,
	)
	return r.Replace(f.template), nil
}

// FeaturalFormatter describes the target location by its hint features
// instead of its name.
type FeaturalFormatter struct {
	graph *worldgraph.Graph
	namer Namer
}

func NewFeaturalFormatter(g *worldgraph.Graph, namer Namer) *FeaturalFormatter {
	return &FeaturalFormatter{graph: g, namer: namer}
}

func (f *FeaturalFormatter) features(index pickup.Index) ([]string, worldgraph.AreaID, error) {
	nid, err := f.graph.NodeFromPickupIndex(index)
	if err != nil {
		return nil, worldgraph.AreaID{}, err
	}
	aid := f.graph.AreaForNode(nid)
	seen := map[string]bool{}
	var out []string
	add := func(fs []string) {
		for _, s := range fs {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	if n, ok := f.graph.Node(nid); ok {
		add(n.HintFeatures)
	}
	if a, ok := f.graph.Area(aid); ok {
		add(a.HintFeatures)
	}
	sort.Strings(out)
	return out, aid, nil
}

func (f *FeaturalFormatter) Format(ph PickupHint, h hints.Hint, withColor bool) (string, error) {
	if h.Target == nil {
		return "", fmt.Errorf("hint has no target")
	}
	feats, aid, err := f.features(*h.Target)
	if err != nil {
		return "", err
	}
	pickupText := ph.Determiner.Title() + colorPickup(f.namer, ph, withColor)
	if len(feats) == 0 {
		world := f.namer.Colorize(aid.World, naming.ColorLocation, withColor)
		return fmt.Sprintf("%s can be found somewhere in %s.", pickupText, world), nil
	}
	where := f.namer.Colorize(JoinAnd(feats), naming.ColorLocation, withColor)
	return fmt.Sprintf("%s can be found in a room with %s.", pickupText, where), nil
}

type GuardianFormatter struct {
	guardians map[pickup.Index]string
	namer     Namer
}

func NewGuardianFormatter(guardians map[pickup.Index]string, namer Namer) *GuardianFormatter {
	return &GuardianFormatter{guardians: guardians, namer: namer}
}

func (f *GuardianFormatter) Format(ph PickupHint, h hints.Hint, withColor bool) (string, error) {
	if h.Target == nil {
		return "", fmt.Errorf("hint has no target")
	}
	name, ok := f.guardians[*h.Target]
	if !ok {
		return "", fmt.Errorf("no guardian guards pickup %d", *h.Target)
	}
	return fmt.Sprintf("%s is guarding %s%s.",
		f.namer.FormatGuardian(name, withColor), ph.Determiner, colorPickup(f.namer, ph, withColor)), nil
}

// JoinAnd joins items as "a, b and c".
func JoinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
