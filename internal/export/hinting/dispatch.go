package hinting

import (
	"randoexport.ai/internal/game/hints"
	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/pickup"
)

// Formatters holds one formatter per location precision for one player's
// patches.
type Formatters struct {
	detailed   LocationFormatter
	regionOnly LocationFormatter
	keybearer  LocationFormatter
	guardian   LocationFormatter
	lightSuit  LocationFormatter
	relArea    LocationFormatter
	relItem    LocationFormatter
	featural   LocationFormatter
}

func NewFormatters(p patches.GamePatches, namer Namer, pickups PickupResolver, guardians map[pickup.Index]string) *Formatters {
	g := p.Graph
	conn := p.Connections()
	return &Formatters{
		detailed:   NewTemplatedFormatter("{determiner.title}{pickup} can be found in {node}.", NodeWorldAndArea, g, namer),
		regionOnly: NewTemplatedFormatter("{determiner.title}{pickup} can be found in {node}.", NodeWorldOnly, g, namer),
		keybearer:  NewTemplatedFormatter("The Flying Ing Cache in {node} contains {determiner}{pickup}.", NodeAreaOnly, g, namer),
		guardian:   NewGuardianFormatter(guardians, namer),
		lightSuit:  NewTemplatedFormatter("U-Mos's reward for returning the Sanctuary energy is {determiner}{pickup}.", NodeWorldAndArea, g, namer),
		relArea:    NewRelativeAreaFormatter(g, conn, namer),
		relItem:    NewRelativeItemFormatter(g, conn, namer, pickups),
		featural:   NewFeaturalFormatter(g, namer),
	}
}

// For returns the formatter of p. Precisions without a dedicated formatter
// use the featural one.
func (f *Formatters) For(p hints.LocationPrecision) LocationFormatter {
	switch p {
	case hints.LocationDetailed:
		return f.detailed
	case hints.LocationRegionOnly:
		return f.regionOnly
	case hints.LocationKeybearer:
		return f.keybearer
	case hints.LocationGuardian:
		return f.guardian
	case hints.LocationLightSuitLocation:
		return f.lightSuit
	case hints.LocationRelativeToArea:
		return f.relArea
	case hints.LocationRelativeToIndex:
		return f.relItem
	case hints.LocationFeatural:
		return f.featural
	default:
		return f.featural
	}
}
