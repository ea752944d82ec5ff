package hinting_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randoexport.ai/internal/export/hinting"
	"randoexport.ai/internal/export/naming"
	"randoexport.ai/internal/game/catalogs"
	"randoexport.ai/internal/game/gametest"
	"randoexport.ai/internal/game/hints"
	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/resources"
	"randoexport.ai/internal/game/rng"
)

var jokes = []string{"Joke A", "Joke B", "Joke C", "Joke B"}

type fixture struct {
	db      *catalogs.Database
	all     patches.AllPatches
	players patches.PlayersConfiguration
	exp     *hinting.HintExporter
}

// newFixture places Missile Launcher at Landing, Dark Beam at Storage,
// Missile Expansions at Hive and Plaza, Light Beam at the guardian and an
// Energy Tank at Central Station.
func newFixture(t *testing.T, names map[int]string, colors naming.Colorizer) *fixture {
	t.Helper()
	db := gametest.Database(t)
	all := patches.AllPatches{}
	for i := range names {
		all[i] = gametest.Patches(db, i)
	}
	p := all[0]
	gametest.Place(t, db, p, gametest.IndexLanding, "Missile Launcher", 0)
	gametest.Place(t, db, p, gametest.IndexHive, "Missile Expansion", 0)
	gametest.Place(t, db, p, gametest.IndexStorage, "Dark Beam", 0)
	gametest.Place(t, db, p, gametest.IndexPlaza, "Missile Expansion", 0)
	gametest.Place(t, db, p, gametest.IndexGuardian, "Light Beam", 0)
	gametest.Place(t, db, p, gametest.IndexStation, "Energy Tank", len(names)-1)

	keys := make([]resources.ResourceInfo, 0, 3)
	for _, k := range []string{"Dark Agon Key 1", "Dark Agon Key 2", "Dark Agon Key 3"} {
		keys = append(keys, gametest.Resource(t, db, k))
	}
	opts := hinting.Options{
		JokeHints:   jokes,
		Determiners: naming.NewDeterminers([]string{"Dark Agon Key 1", "Dark Agon Key 2", "Dark Agon Key 3"}, []string{"Energy Tank", "Energy Transfer Module"}),
		Guardians:   map[pickup.Index]string{gametest.IndexGuardian: gametest.GuardianName},
		Temples:     map[string][]resources.ResourceInfo{"Dark Agon Temple": keys},
		Useless:     gametest.Pickup(t, db, "Energy Transfer Module"),
	}
	return &fixture{
		db:      db,
		all:     all,
		players: patches.NewPlayersConfiguration(0, names, gametest.SessionID),
		exp:     hinting.NewHintExporter(naming.NamerFor(all, colors), rng.New(5, "jokes"), opts),
	}
}

func solo(t *testing.T) *fixture {
	return newFixture(t, map[int]string{0: "Alice"}, naming.Plain)
}

func location(target pickup.Index, loc hints.LocationPrecision, item hints.ItemPrecision, rel hints.RelativeData) hints.Hint {
	return hints.Hint{
		Type:      hints.TypeLocation,
		Target:    gametest.Index(target),
		Precision: &hints.PrecisionPair{Location: loc, Item: item, Relative: rel},
	}
}

func (f *fixture) message(t *testing.T, h hints.Hint) string {
	t.Helper()
	msg, err := f.exp.CreateMessageForHint(h, f.all, f.players, false)
	require.NoError(t, err)
	return msg
}

func TestRenderDistance(t *testing.T) {
	assert.Equal(t, "one room", hinting.RenderDistance(1, nil))
	assert.Equal(t, "up to 2 rooms", hinting.RenderDistance(2, nil))
	assert.Equal(t, "exactly 2 rooms", hinting.RenderDistance(2, hints.Offset(0)))
	assert.Equal(t, "exactly 2 rooms", hinting.RenderDistance(1, hints.Offset(1)))
	assert.Equal(t, "one room", hinting.RenderDistance(2, hints.Offset(-1)))
	assert.Equal(t, "exactly 0 rooms", hinting.RenderDistance(0, hints.Offset(0)))
}

func TestJoinAnd(t *testing.T) {
	assert.Equal(t, "", hinting.JoinAnd(nil))
	assert.Equal(t, "a", hinting.JoinAnd([]string{"a"}))
	assert.Equal(t, "a and b", hinting.JoinAnd([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", hinting.JoinAnd([]string{"a", "b", "c"}))
}

func TestPickupNamer(t *testing.T) {
	f := solo(t)
	pn := hinting.NewPickupNamer(f.all[0], naming.NewDeterminers(nil, []string{"Energy Transfer Module"}),
		gametest.Pickup(t, f.db, "Energy Transfer Module"), f.players)

	cases := []struct {
		index     pickup.Index
		precision hints.ItemPrecision
		want      string
	}{
		{gametest.IndexStorage, hints.ItemDetailed, "the Dark Beam"},
		{gametest.IndexHive, hints.ItemDetailed, "a Missile Expansion"},
		{gametest.IndexStorage, hints.ItemPreciseCategory, "a beam"},
		{gametest.IndexStorage, hints.ItemGeneralCategory, "a major upgrade"},
		{gametest.IndexStorage, hints.ItemNothing, "an item"},
	}
	for _, c := range cases {
		ph, err := pn.Hint(c.index, c.precision, false)
		require.NoError(t, err)
		assert.Equal(t, c.want, ph.Determiner.String()+ph.Name())
	}

	_, err := pn.Hint(gametest.IndexStorage, hints.ItemPrecision("VAGUE"), false)
	assert.Error(t, err)
}

func TestPickupNamer_UnassignedIsUseless(t *testing.T) {
	db := gametest.Database(t)
	p := gametest.Patches(db, 0)
	gametest.Place(t, db, p, 0, "Dark Beam", 0)
	players := patches.NewPlayersConfiguration(0, map[int]string{0: "Alice"}, gametest.SessionID)
	pn := hinting.NewPickupNamer(p, naming.NewDeterminers(nil, []string{"Energy Transfer Module"}),
		gametest.Pickup(t, db, "Energy Transfer Module"), players)

	ph, err := pn.Hint(3, hints.ItemDetailed, true)
	require.NoError(t, err)
	assert.Equal(t, naming.DetAn, ph.Determiner)
	assert.Equal(t, "Energy Transfer Module", ph.Name())
}

func TestPickupNamer_IncludeOwner(t *testing.T) {
	f := newFixture(t, map[int]string{0: "Alice", 1: "Bob"}, naming.Plain)
	pn := hinting.NewPickupNamer(f.all[0], naming.Determiners{}, gametest.Pickup(t, f.db, "Energy Transfer Module"), f.players)

	ph, err := pn.Hint(gametest.IndexStation, hints.ItemDetailed, true)
	require.NoError(t, err)
	assert.Equal(t, naming.DetNone, ph.Determiner)
	assert.Equal(t, "Bob's Energy Tank", ph.Name())

	ph, err = pn.Hint(gametest.IndexStation, hints.ItemDetailed, false)
	require.NoError(t, err)
	assert.Equal(t, "Energy Tank", ph.Name())
}

func TestLocationHints(t *testing.T) {
	f := solo(t)
	cases := map[string]struct {
		hint hints.Hint
		want string
	}{
		"detailed": {
			location(gametest.IndexStorage, hints.LocationDetailed, hints.ItemDetailed, nil),
			"The Dark Beam can be found in Temple Grounds - Storage.",
		},
		"region only": {
			location(gametest.IndexStorage, hints.LocationRegionOnly, hints.ItemDetailed, nil),
			"The Dark Beam can be found in Temple Grounds.",
		},
		"keybearer": {
			location(gametest.IndexStorage, hints.LocationKeybearer, hints.ItemPreciseCategory, nil),
			"The Flying Ing Cache in Storage contains a beam.",
		},
		"light suit": {
			location(gametest.IndexLanding, hints.LocationLightSuitLocation, hints.ItemDetailed, nil),
			"U-Mos's reward for returning the Sanctuary energy is the Missile Launcher.",
		},
		"guardian": {
			location(gametest.IndexGuardian, hints.LocationGuardian, hints.ItemDetailed, nil),
			"Amorbis is guarding the Light Beam.",
		},
		"featural": {
			location(gametest.IndexPlaza, hints.LocationFeatural, hints.ItemDetailed, nil),
			"A Missile Expansion can be found in a room with Bomb Slot and Morph Ball Tunnel.",
		},
		"featural without features": {
			location(gametest.IndexStorage, hints.LocationFeatural, hints.ItemDetailed, nil),
			"The Dark Beam can be found somewhere in Temple Grounds.",
		},
		"unmapped precision": {
			location(gametest.IndexPlaza, hints.LocationPrecision("ZONE"), hints.ItemNothing, nil),
			"An item can be found in a room with Bomb Slot and Morph Ball Tunnel.",
		},
		"relative to area": {
			location(gametest.IndexStorage, hints.LocationRelativeToArea, hints.ItemDetailed,
				&hints.RelativeDataArea{Area: gametest.LandingSite, Precision: hints.RelativeAreaByName}),
			"The Dark Beam can be found up to 2 rooms away from Temple Grounds - Landing Site.",
		},
		"relative to index": {
			location(gametest.IndexPlaza, hints.LocationRelativeToIndex, hints.ItemDetailed,
				&hints.RelativeDataItem{DistanceOffset: hints.Offset(1), OtherIndex: gametest.IndexLanding, Precision: hints.ItemPreciseCategory}),
			"A Missile Expansion can be found exactly 3 rooms away from a missile system.",
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, f.message(t, c.hint))
		})
	}
}

func TestRelativeHint_UsesPatchedConnections(t *testing.T) {
	f := solo(t)
	f.all[0].ElevatorConnections[gametest.ElevatorToAgon] = gametest.StationLift
	f.all[0].ElevatorConnections[gametest.StationLift] = gametest.ElevatorToAgon

	h := location(gametest.IndexStation, hints.LocationRelativeToArea, hints.ItemDetailed,
		&hints.RelativeDataArea{Area: gametest.LandingSite, Precision: hints.RelativeAreaByName})
	assert.Equal(t, "The Energy Tank can be found one room away from Temple Grounds - Landing Site.", f.message(t, h))
}

func TestRelativeHint_Errors(t *testing.T) {
	f := solo(t)

	h := location(gametest.IndexStorage, hints.LocationRelativeToArea, hints.ItemDetailed,
		&hints.RelativeDataArea{Area: gametest.LandingSite, Precision: hints.RelativeAreaByFeature})
	_, err := f.exp.CreateMessageForHint(h, f.all, f.players, false)
	assert.ErrorIs(t, err, hinting.ErrNotImplemented)

	h = location(gametest.IndexStation, hints.LocationRelativeToArea, hints.ItemDetailed,
		&hints.RelativeDataArea{Area: gametest.LandingSite, Precision: hints.RelativeAreaByName})
	_, err = f.exp.CreateMessageForHint(h, f.all, f.players, false)
	assert.Error(t, err, "Central Station is unreachable without the elevator patch")

	h = location(gametest.IndexStorage, hints.LocationRelativeToIndex, hints.ItemDetailed, nil)
	_, err = f.exp.CreateMessageForHint(h, f.all, f.players, false)
	assert.ErrorIs(t, err, hints.ErrInvalidHint)
}

func TestJokeHint_CyclesWithoutRepeats(t *testing.T) {
	f := solo(t)
	unique := []string{"Joke A", "Joke B", "Joke C"}

	for cycle := 0; cycle < 3; cycle++ {
		got := make([]string, 0, len(unique))
		for range unique {
			got = append(got, f.exp.JokeHint())
		}
		sort.Strings(got)
		assert.Equal(t, unique, got, "cycle %d", cycle)
	}
}

func TestJokeHint_Colored(t *testing.T) {
	f := newFixture(t, map[int]string{0: "Alice"}, naming.Prime2)

	msg, err := f.exp.CreateMessageForHint(hints.Hint{Type: hints.TypeJoke}, f.all, f.players, true)
	require.NoError(t, err)
	assert.Contains(t, msg, "&main-color=#45F731;Joke ")
}

func placeKeys(t *testing.T, f *fixture, at map[pickup.Index]string) {
	t.Helper()
	p := f.all[0]
	for i, k := range at {
		gametest.Place(t, f.db, p, i, k, 0)
	}
}

func templeHint() hints.Hint {
	return hints.Hint{Type: hints.TypeRedTempleKeySet, Target: gametest.Index(0), DarkTemple: "Dark Agon Temple"}
}

func TestTempleKeyHint(t *testing.T) {
	f := solo(t)
	assert.Equal(t, "The keys to Dark Agon Temple are nowhere to be found.", f.message(t, templeHint()))

	placeKeys(t, f, map[pickup.Index]string{
		gametest.IndexHive:    "Dark Agon Key 1",
		gametest.IndexStorage: "Dark Agon Key 2",
	})
	assert.Equal(t, "The keys to Dark Agon Temple can all be found in Temple Grounds.", f.message(t, templeHint()))

	placeKeys(t, f, map[pickup.Index]string{gametest.IndexPlaza: "Dark Agon Key 3"})
	assert.Equal(t, "The keys to Dark Agon Temple can be found in Agon Wastes and Temple Grounds.", f.message(t, templeHint()))
}

func TestTempleKeyHint_Multiworld(t *testing.T) {
	f := newFixture(t, map[int]string{0: "Alice", 1: "Bob"}, naming.Plain)
	placeKeys(t, f, map[pickup.Index]string{gametest.IndexHive: "Dark Agon Key 1"})
	gametest.Place(t, f.db, f.all[1], gametest.IndexPlaza, "Dark Agon Key 2", 0)
	gametest.Place(t, f.db, f.all[1], gametest.IndexLanding, "Dark Agon Key 3", 1)

	assert.Equal(t, "The keys to Dark Agon Temple can be found in Alice's Temple Grounds and Bob's Agon Wastes.",
		f.message(t, templeHint()))

	_, err := f.exp.CreateMessageForHint(hints.Hint{Type: hints.TypeRedTempleKeySet, Target: gametest.Index(0), DarkTemple: "Hive Temple"},
		f.all, f.players, false)
	assert.Error(t, err)
}

func TestExportHints_OrderedByNode(t *testing.T) {
	f := solo(t)
	own := f.all[0]
	own.Hints[gametest.LoreScan] = location(gametest.IndexStorage, hints.LocationDetailed, hints.ItemDetailed, nil)
	own.Hints[gametest.PlazaLore] = hints.Hint{Type: hints.TypeJoke}

	out, err := f.exp.ExportHints(f.all, f.players, false)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, gametest.PlazaLore, out[0].Node)
	assert.Contains(t, jokes, out[0].Text)
	assert.Equal(t, gametest.LoreScan, out[1].Node)
	assert.Equal(t, "The Dark Beam can be found in Temple Grounds - Storage.", out[1].Text)
}
