package hinting

import (
	"fmt"

	"randoexport.ai/internal/export/naming"
	"randoexport.ai/internal/game/hints"
	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/pickup"
)

// PickupHint is how a hint refers to an item.
type PickupHint struct {
	Determiner naming.Determiner
	PlayerName string
	Item       string
}

// Name includes the owner when the hint names one.
func (p PickupHint) Name() string {
	if p.PlayerName != "" {
		return p.PlayerName + "'s " + p.Item
	}
	return p.Item
}

// PickupNamer resolves what is at a pickup index into a PickupHint.
type PickupNamer struct {
	assignment pickup.Assignment
	counts     map[string]int
	dets       naming.Determiners
	useless    pickup.Entry
	players    patches.PlayersConfiguration
}

func NewPickupNamer(p patches.GamePatches, dets naming.Determiners, useless pickup.Entry, players patches.PlayersConfiguration) *PickupNamer {
	return &PickupNamer{
		assignment: p.PickupAssignment,
		counts:     naming.CountNames(p.Graph.PickupIndices(), p.PickupAssignment, useless.Name),
		dets:       dets,
		useless:    useless,
		players:    players,
	}
}

func (n *PickupNamer) Hint(index pickup.Index, precision hints.ItemPrecision, includeOwner bool) (PickupHint, error) {
	target, ok := n.assignment[index]
	if !ok {
		target = pickup.Target{Pickup: n.useless, Player: n.players.PlayerIndex}
	}
	e := target.Pickup

	var ph PickupHint
	switch precision {
	case hints.ItemDetailed:
		ph = PickupHint{Determiner: n.dets.For(e.Name, n.counts[e.Name]), Item: e.Name}
	case hints.ItemPreciseCategory:
		ph = PickupHint{Determiner: naming.Determiner(e.Category.HintDetails.Determiner), Item: e.Category.HintDetails.Text}
	case hints.ItemGeneralCategory:
		ph = PickupHint{Determiner: naming.Determiner(e.Category.GeneralDetails.Determiner), Item: e.Category.GeneralDetails.Text}
	case hints.ItemBroadCategory:
		ph = PickupHint{Determiner: naming.Determiner(e.BroadCategory.HintDetails.Determiner), Item: e.BroadCategory.HintDetails.Text}
	case hints.ItemNothing:
		ph = PickupHint{Determiner: naming.DetAn, Item: "item"}
	default:
		return PickupHint{}, fmt.Errorf("unknown item precision %q", precision)
	}

	if includeOwner && n.players.IsMultiworld() {
		ph.PlayerName = n.players.Name(target.Player)
		ph.Determiner = naming.DetNone
	}
	return ph, nil
}
