package pickups

import (
	"fmt"
	"math/rand/v2"

	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/pickup"
)

// ExportPickup applies the model style to one location and delegates to exp.
func ExportPickup(exp Exporter, index pickup.Index, target pickup.Target, visual pickup.Entry, style ModelStyle) (Details, error) {
	model := visual.Model
	if style == StyleAllVisible {
		model = target.Pickup.Model
	}

	var name, description string
	switch style {
	case StyleAllVisible, StyleHideModel:
		name = target.Pickup.Name
		description = Description(target.Pickup)
	case StyleHideScan, StyleHideAll:
		name = visual.Name
	default:
		return Details{}, fmt.Errorf("unknown model style %q", style)
	}
	return exp.CreateDetails(index, target, visual, style, name, description, model)
}

// ExportAllIndices exports every pickup location of p's graph in ascending
// index order. Empty locations receive useless.
func ExportAllIndices(p patches.GamePatches, useless pickup.Target, rng *rand.Rand, style ModelStyle,
	source DataSource, exp Exporter, visualNothing pickup.Entry) ([]Details, error) {
	if source == SourceLocation {
		return nil, fmt.Errorf("model data source %s: %w", source, ErrNotImplemented)
	}

	indices := p.Graph.PickupIndices()

	// The decoy pool is a shuffled copy of what was placed, so a decoy never
	// reveals what is at its own location.
	pool := make([]pickup.Target, 0, len(p.PickupAssignment))
	for _, i := range indices {
		if t, ok := p.PickupAssignment[i]; ok {
			pool = append(pool, t)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	out := make([]Details, 0, len(indices))
	for _, i := range indices {
		target, ok := p.PickupAssignment[i]
		if !ok {
			target = useless
		}

		visual := target.Pickup
		switch source {
		case SourceETM:
			visual = visualNothing
		case SourceRandom:
			if len(pool) > 0 {
				visual = pool[int(i)%len(pool)].Pickup
			}
		default:
			return nil, fmt.Errorf("unknown model data source %q", source)
		}

		d, err := ExportPickup(exp, i, target, visual, style)
		if err != nil {
			return nil, fmt.Errorf("pickup %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}
