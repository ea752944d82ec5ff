package hinting

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"randoexport.ai/internal/export/naming"
	"randoexport.ai/internal/export/spoiler"
	"randoexport.ai/internal/game/hints"
	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/resources"
	"randoexport.ai/internal/game/worldgraph"
)

// ExporterNamer is everything the hint exporter renders through.
type ExporterNamer interface {
	Namer
	FormatWorld(loc patches.PickupLocation, withColor bool) (string, error)
	FormatPlayer(name string, withColor bool) string
	FormatTempleName(name string, withColor bool) string
}

type Options struct {
	JokeHints   []string
	Determiners naming.Determiners
	Guardians   map[pickup.Index]string
	// Temples maps a temple name to its key resources.
	Temples map[string][]resources.ResourceInfo
	// Useless stands in for unassigned indices.
	Useless pickup.Entry
}

// HintExporter renders hints for one export pass. The joke pool is its only
// mutable state.
type HintExporter struct {
	namer ExporterNamer
	rng   *rand.Rand
	opts  Options
	jokes []string
}

func NewHintExporter(namer ExporterNamer, rng *rand.Rand, opts Options) *HintExporter {
	return &HintExporter{namer: namer, rng: rng, opts: opts}
}

// JokeHint pops from a shuffled pool, refilling only once it is empty, so no
// joke repeats within a cycle.
func (e *HintExporter) JokeHint() string {
	if len(e.jokes) == 0 {
		seen := map[string]bool{}
		for _, j := range e.opts.JokeHints {
			if !seen[j] {
				seen[j] = true
				e.jokes = append(e.jokes, j)
			}
		}
		sort.Strings(e.jokes)
		e.rng.Shuffle(len(e.jokes), func(i, j int) { e.jokes[i], e.jokes[j] = e.jokes[j], e.jokes[i] })
	}
	if len(e.jokes) == 0 {
		return ""
	}
	last := len(e.jokes) - 1
	j := e.jokes[last]
	e.jokes = e.jokes[:last]
	return j
}

// playerContext caches what LOCATION hints of one player share.
type playerContext struct {
	pickups    *PickupNamer
	formatters *Formatters
}

func (e *HintExporter) contextFor(p patches.GamePatches, players patches.PlayersConfiguration) playerContext {
	pn := NewPickupNamer(p, e.opts.Determiners, e.opts.Useless, players)
	return playerContext{pickups: pn, formatters: NewFormatters(p, e.namer, pn, e.opts.Guardians)}
}

// CreateMessageForHint renders h as seen by players.PlayerIndex.
func (e *HintExporter) CreateMessageForHint(h hints.Hint, all patches.AllPatches, players patches.PlayersConfiguration, withColor bool) (string, error) {
	own, ok := all[players.PlayerIndex]
	if !ok {
		return "", fmt.Errorf("no patches for player %d", players.PlayerIndex)
	}
	return e.message(h, all, players, e.contextFor(own, players), withColor)
}

func (e *HintExporter) message(h hints.Hint, all patches.AllPatches, players patches.PlayersConfiguration, ctx playerContext, withColor bool) (string, error) {
	if err := h.Validate(); err != nil {
		return "", err
	}
	switch h.Type {
	case hints.TypeJoke:
		return e.namer.Colorize(e.JokeHint(), naming.ColorJoke, withColor), nil
	case hints.TypeRedTempleKeySet:
		keys, ok := e.opts.Temples[h.DarkTemple]
		if !ok {
			return "", fmt.Errorf("unknown temple %q", h.DarkTemple)
		}
		return TempleKeyHint(all, players, e.namer, h.DarkTemple, keys, withColor)
	case hints.TypeLocation:
		ph, err := ctx.pickups.Hint(*h.Target, h.Precision.Item, h.Precision.IncludeOwner)
		if err != nil {
			return "", err
		}
		return ctx.formatters.For(h.Precision.Location).Format(ph, h, withColor)
	}
	return "", fmt.Errorf("unknown hint type %q", h.Type)
}

type ExportedHint struct {
	Node worldgraph.NodeID `json:"node"`
	Text string            `json:"text"`
}

// ExportHints renders every hint of the active player, ordered by hint node.
func (e *HintExporter) ExportHints(all patches.AllPatches, players patches.PlayersConfiguration, withColor bool) ([]ExportedHint, error) {
	own, ok := all[players.PlayerIndex]
	if !ok {
		return nil, fmt.Errorf("no patches for player %d", players.PlayerIndex)
	}
	ctx := e.contextFor(own, players)
	ids := own.HintIDs()
	out := make([]ExportedHint, 0, len(ids))
	for _, id := range ids {
		text, err := e.message(own.Hints[id], all, players, ctx, withColor)
		if err != nil {
			return nil, fmt.Errorf("hint %s: %w", id, err)
		}
		out = append(out, ExportedHint{Node: id, Text: text})
	}
	return out, nil
}

// TempleKeyHint names the worlds holding a temple's keys.
func TempleKeyHint(all patches.AllPatches, players patches.PlayersConfiguration, namer ExporterNamer,
	temple string, keys []resources.ResourceInfo, withColor bool) (string, error) {
	found := spoiler.FindLocationsThatGiveItems(keys, all, players.PlayerIndex)

	set := map[string]bool{}
	for _, k := range keys {
		for _, pl := range found[k.ShortName] {
			world, err := namer.FormatWorld(pl.Location, withColor)
			if err != nil {
				return "", err
			}
			if players.IsMultiworld() {
				world = namer.FormatPlayer(players.Name(pl.Player), withColor) + "'s " + world
			}
			set[world] = true
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)

	templeName := namer.FormatTempleName(temple, withColor)
	switch len(names) {
	case 0:
		return fmt.Sprintf("The keys to %s are nowhere to be found.", templeName), nil
	case 1:
		return fmt.Sprintf("The keys to %s can all be found in %s.", templeName, names[0]), nil
	}
	front := strings.Join(names[:len(names)-1], ", ")
	return fmt.Sprintf("The keys to %s can be found in %s and %s.", templeName, front, names[len(names)-1]), nil
}
