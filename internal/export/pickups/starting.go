package pickups

import (
	"fmt"

	"go.uber.org/zap"

	"randoexport.ai/internal/game/patches"
)

type StartingItems struct {
	// ByGameID maps patcher item ids to quantities.
	ByGameID map[int]int `json:"by_game_id"`
	Lines    []string    `json:"lines"`
}

// StartingItemsFor lists p's starting inventory. Resources the game has no id
// for are skipped and logged.
func StartingItemsFor(p patches.GamePatches, log *zap.Logger) StartingItems {
	if log == nil {
		log = zap.NewNop()
	}
	out := StartingItems{ByGameID: map[int]int{}}
	for _, q := range p.StartingCollection().Gain() {
		if q.Quantity <= 0 {
			continue
		}
		if !q.Resource.HasGameID() {
			log.Warn("starting resource has no game id, skipping",
				zap.String("game", p.Game),
				zap.String("resource", q.Resource.ShortName),
				zap.Int("quantity", q.Quantity))
			continue
		}
		out.ByGameID[q.Resource.GameID] += q.Quantity
		if q.Quantity == 1 {
			out.Lines = append(out.Lines, q.Resource.LongName)
		} else {
			out.Lines = append(out.Lines, fmt.Sprintf("%d %s", q.Quantity, q.Resource.LongName))
		}
	}
	return out
}
