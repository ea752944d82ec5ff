package spoiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randoexport.ai/internal/export/naming"
	"randoexport.ai/internal/export/spoiler"
	"randoexport.ai/internal/game/catalogs"
	"randoexport.ai/internal/game/gametest"
	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/resources"
)

func twoPlayers(t *testing.T) (*catalogs.Database, patches.AllPatches) {
	t.Helper()
	db := gametest.Database(t)
	all := patches.AllPatches{0: gametest.Patches(db, 0), 1: gametest.Patches(db, 1)}
	return db, all
}

var names = map[int]string{0: "Alice", 1: "Bob"}

func TestFindLocationsThatGiveItems(t *testing.T) {
	db, all := twoPlayers(t)
	gametest.Place(t, db, all[1], 3, "Missile Launcher", 0)
	gametest.Place(t, db, all[0], 2, "Missile Expansion", 0)
	gametest.Place(t, db, all[0], 4, "Missile Expansion", 1)
	missile := gametest.Resource(t, db, "Missile")
	beam := gametest.Resource(t, db, "DarkBeam")

	got := spoiler.FindLocationsThatGiveItems([]resources.ResourceInfo{missile, beam}, all, 0)

	assert.Equal(t, []spoiler.Placement{
		{Player: 0, Location: patches.PickupLocation{Game: gametest.Game, Index: 2}},
		{Player: 1, Location: patches.PickupLocation{Game: gametest.Game, Index: 3}},
	}, got["Missile"])
	assert.Contains(t, got, "DarkBeam")
	assert.Empty(t, got["DarkBeam"])
}

func TestGuaranteedHints_Multiworld(t *testing.T) {
	db, all := twoPlayers(t)
	gametest.Place(t, db, all[0], gametest.IndexHive, "Dark Agon Key 1", 0)
	gametest.Place(t, db, all[1], gametest.IndexPlaza, "Dark Agon Key 2", 0)
	p := all[0]
	p.StartingResources = resources.ResourceGain{{Resource: gametest.Resource(t, db, "Dark Agon Key 3"), Quantity: 1}}
	all[0] = p

	keys := []resources.ResourceInfo{
		gametest.Resource(t, db, "Dark Agon Key 1"),
		gametest.Resource(t, db, "Dark Agon Key 2"),
		gametest.Resource(t, db, "Dark Agon Key 3"),
	}
	players := patches.NewPlayersConfiguration(0, names, gametest.SessionID)
	got, err := spoiler.GuaranteedHintsForResources(all, players, naming.NamerFor(all, naming.Plain), keys, false, false)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "Dark Agon Key 1 is located in Alice's Temple Grounds - Hive Chamber.", got[0].Text)
	assert.Equal(t, "Dark Agon Key 2 is located in Bob's Agon Wastes - Mining Plaza.", got[1].Text)
	assert.Equal(t, "Dark Agon Key 3 has no need to be located.", got[2].Text)
}

func TestGuaranteedHints_DistinctLocations(t *testing.T) {
	db := gametest.Database(t)
	all := patches.AllPatches{0: gametest.Patches(db, 0)}
	gametest.Place(t, db, all[0], gametest.IndexStorage, "Missile Expansion", 0)
	gametest.Place(t, db, all[0], gametest.IndexGuardian, "Missile Expansion", 0)
	missile := gametest.Resource(t, db, "Missile")

	players := patches.NewPlayersConfiguration(0, map[int]string{0: "Alice"}, gametest.SessionID)
	got, err := spoiler.GuaranteedHintsForResources(all, players, naming.NamerFor(all, naming.Plain),
		[]resources.ResourceInfo{missile, missile}, true, false)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Missile is located in Temple Grounds.", got[0].Text)
	assert.Equal(t, "Missile is located in Agon Wastes.", got[1].Text)
}

func TestGuaranteedHints_Mismatch(t *testing.T) {
	db := gametest.Database(t)
	all := patches.AllPatches{0: gametest.Patches(db, 0)}
	players := patches.NewPlayersConfiguration(0, map[int]string{0: "Alice"}, gametest.SessionID)

	_, err := spoiler.GuaranteedHintsForResources(all, players, naming.NamerFor(all, naming.Plain),
		[]resources.ResourceInfo{gametest.Resource(t, db, "LightBeam")}, false, false)
	assert.ErrorIs(t, err, spoiler.ErrGuaranteedHintMismatch)
}

func TestBuildCredits_Solo(t *testing.T) {
	db := gametest.Database(t)
	all := patches.AllPatches{0: gametest.Patches(db, 0)}
	gametest.Place(t, db, all[0], gametest.IndexLanding, "Dark Beam", 0)
	gametest.Place(t, db, all[0], gametest.IndexHive, "Dark Agon Key 1", 0)
	gametest.Place(t, db, all[0], gametest.IndexStorage, "Progressive Suit", 0)
	gametest.Place(t, db, all[0], gametest.IndexPlaza, "Missile Launcher", 0)
	gametest.Place(t, db, all[0], gametest.IndexGuardian, "Energy Tank", 0)
	players := patches.NewPlayersConfiguration(0, map[int]string{0: "Alice"}, gametest.SessionID)

	got, err := spoiler.BuildCredits(all, players, naming.NamerFor(all, naming.Prime2),
		[]string{"Missile Launcher", "Dark Beam", "Light Beam"}, "")
	require.NoError(t, err)

	assert.Equal(t, spoiler.Credits{
		{Pickup: "Missile Launcher", Locations: "Agon Wastes - Mining Plaza"},
		{Pickup: "Dark Beam", Locations: "Temple Grounds - Landing Site"},
		{Pickup: "Light Beam", Locations: spoiler.Nowhere},
		{Pickup: "Dark Agon Key 1", Locations: "Temple Grounds - Hive Chamber"},
		{Pickup: "Progressive Suit", Locations: "Temple Grounds - Storage"},
	}, got)
}

func TestBuildCredits_Multiworld(t *testing.T) {
	db, all := twoPlayers(t)
	gametest.Place(t, db, all[0], gametest.IndexLanding, "Dark Beam", 1)
	gametest.Place(t, db, all[1], gametest.IndexStation, "Dark Beam", 1)
	gametest.Place(t, db, all[1], gametest.IndexHive, "Light Beam", 0)
	players := patches.NewPlayersConfiguration(1, names, gametest.SessionID)

	got, err := spoiler.BuildCredits(all, players, naming.NamerFor(all, naming.Plain), nil, "__%s__")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"__Dark Beam__": "Alice's Temple Grounds - Landing Site\nBob's Agon Wastes - Central Station",
	}, got.Map())
}
