package spoiler

import (
	"errors"
	"fmt"
	"sort"

	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/resources"
)

var ErrGuaranteedHintMismatch = errors.New("guaranteed hint count mismatch")

// Placement is a location in the world of Player.
type Placement struct {
	Player   int                    `json:"player"`
	Location patches.PickupLocation `json:"location"`
}

// Namer is the naming capability the aggregator needs.
type Namer interface {
	FormatResourceIsStarting(r resources.ResourceInfo, withColor bool) string
	FormatGuaranteedResource(r resources.ResourceInfo, playerName string, loc patches.PickupLocation, hideArea, withColor bool) (string, error)
	FormatLocation(loc patches.PickupLocation, withArea, withColor bool) (string, error)
}

func sortedIndices(a pickup.Assignment) []pickup.Index {
	out := make([]pickup.Index, 0, len(a))
	for i := range a {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FindLocationsThatGiveItems scans every player's world for pickups owned by
// player that grant one of targets. Results are keyed by resource short name
// and ordered by world player, then pickup index.
func FindLocationsThatGiveItems(targets []resources.ResourceInfo, all patches.AllPatches, player int) map[string][]Placement {
	out := make(map[string][]Placement, len(targets))
	for _, r := range targets {
		out[r.ShortName] = nil
	}
	for _, world := range all.Players() {
		p := all[world]
		for _, idx := range sortedIndices(p.PickupAssignment) {
			t := p.PickupAssignment[idx]
			if t.Player != player {
				continue
			}
			for _, r := range targets {
				if t.Pickup.Grants(r) {
					out[r.ShortName] = append(out[r.ShortName], Placement{
						Player:   world,
						Location: patches.PickupLocation{Game: p.Game, Index: idx},
					})
				}
			}
		}
	}
	return out
}

type ResourceHint struct {
	Resource resources.ResourceInfo `json:"resource"`
	Text     string                 `json:"text"`
}

// GuaranteedHintsForResources resolves one hint per item, in items order. Two
// items never share a location. Items the player starts with get a "no need to
// be located" message instead.
func GuaranteedHintsForResources(all patches.AllPatches, players patches.PlayersConfiguration, namer Namer,
	items []resources.ResourceInfo, hideArea, withColor bool) ([]ResourceHint, error) {
	own, ok := all[players.PlayerIndex]
	if !ok {
		return nil, fmt.Errorf("no patches for player %d", players.PlayerIndex)
	}
	starting := own.StartingCollection()
	found := FindLocationsThatGiveItems(items, all, players.PlayerIndex)

	used := map[Placement]bool{}
	out := make([]ResourceHint, 0, len(items))
	for _, item := range items {
		if starting.Has(item) {
			out = append(out, ResourceHint{Resource: item, Text: namer.FormatResourceIsStarting(item, withColor)})
			continue
		}
		for _, pl := range found[item.ShortName] {
			if used[pl] {
				continue
			}
			used[pl] = true
			owner := ""
			if players.IsMultiworld() {
				owner = players.Name(pl.Player)
			}
			text, err := namer.FormatGuaranteedResource(item, owner, pl.Location, hideArea, withColor)
			if err != nil {
				return nil, err
			}
			out = append(out, ResourceHint{Resource: item, Text: text})
			break
		}
	}
	if len(out) != len(items) {
		return nil, fmt.Errorf("%w: resolved %d of %d", ErrGuaranteedHintMismatch, len(out), len(items))
	}
	return out, nil
}
