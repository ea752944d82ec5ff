package spoiler

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"randoexport.ai/internal/game/patches"
)

const Nowhere = "Nowhere"

type CreditsEntry struct {
	Pickup    string `json:"pickup"`
	Locations string `json:"locations"`
}

type Credits []CreditsEntry

func (c Credits) Map() map[string]string {
	out := make(map[string]string, len(c))
	for _, e := range c {
		out[e.Pickup] = e.Locations
	}
	return out
}

// LocationsForMajorPickupsAndKeys groups, by pickup name, every location
// holding a major or key pickup owned by player.
func LocationsForMajorPickupsAndKeys(all patches.AllPatches, player int) map[string][]Placement {
	out := map[string][]Placement{}
	for _, world := range all.Players() {
		p := all[world]
		for _, idx := range sortedIndices(p.PickupAssignment) {
			t := p.PickupAssignment[idx]
			if t.Player != player || !t.Pickup.IsMajorOrKey() {
				continue
			}
			out[t.Pickup.Name] = append(out[t.Pickup.Name], Placement{
				Player:   world,
				Location: patches.PickupLocation{Game: p.Game, Index: idx},
			})
		}
	}
	return out
}

// BuildCredits lists where each major or key pickup ended up. Pickups follow
// order; unknown ones sort last by name. Names in order that were never placed
// read Nowhere. nameFormat is a fmt verb string applied to each pickup name.
func BuildCredits(all patches.AllPatches, players patches.PlayersConfiguration, namer Namer, order []string, nameFormat string) (Credits, error) {
	if nameFormat == "" {
		nameFormat = "%s"
	}
	rank := make(map[string]int, len(order))
	for i, n := range order {
		if _, dup := rank[n]; !dup {
			rank[n] = i
		}
	}
	details := LocationsForMajorPickupsAndKeys(all, players.PlayerIndex)

	names := make([]string, 0, len(details)+len(order))
	for n := range details {
		names = append(names, n)
	}
	for n := range rank {
		if _, ok := details[n]; !ok {
			names = append(names, n)
		}
	}
	key := func(n string) float64 {
		if r, ok := rank[n]; ok {
			return float64(r)
		}
		return math.Inf(1)
	}
	sort.Slice(names, func(i, j int) bool {
		ki, kj := key(names[i]), key(names[j])
		if ki != kj {
			return ki < kj
		}
		return names[i] < names[j]
	})

	out := make(Credits, 0, len(names))
	for _, n := range names {
		placements := details[n]
		if len(placements) == 0 {
			out = append(out, CreditsEntry{Pickup: fmt.Sprintf(nameFormat, n), Locations: Nowhere})
			continue
		}
		lines := make([]string, 0, len(placements))
		for _, pl := range placements {
			text, err := namer.FormatLocation(pl.Location, true, false)
			if err != nil {
				return nil, err
			}
			if players.IsMultiworld() {
				text = players.Name(pl.Player) + "'s " + text
			}
			lines = append(lines, text)
		}
		out = append(out, CreditsEntry{Pickup: fmt.Sprintf(nameFormat, n), Locations: strings.Join(lines, "\n")})
	}
	return out, nil
}
