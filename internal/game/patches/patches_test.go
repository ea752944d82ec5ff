package patches_test

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randoexport.ai/internal/game/catalogs"
	"randoexport.ai/internal/game/gametest"
	"randoexport.ai/internal/game/hints"
	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/worldgraph"
)

func TestPlayersConfiguration(t *testing.T) {
	solo := patches.NewPlayersConfiguration(0, map[int]string{0: "Alice"}, gametest.SessionID)
	assert.False(t, solo.IsMultiworld())
	assert.Equal(t, uuid.Nil, solo.SessionID)

	multi := patches.NewPlayersConfiguration(1, map[int]string{0: "Alice", 1: "Bob"}, gametest.SessionID)
	assert.True(t, multi.IsMultiworld())
	assert.Equal(t, gametest.SessionID, multi.SessionID)
	assert.Equal(t, "Bob", multi.Name(1))
	assert.Equal(t, "Player 3", multi.Name(2))
}

func TestGamePatches_ConnectionsPreferElevators(t *testing.T) {
	db := gametest.Database(t)
	p := gametest.Patches(db, 0)
	other := worldgraph.NodeID{World: "X", Area: "Y", Node: "Z"}
	p.DockConnections[gametest.ElevatorToAgon] = other
	p.ElevatorConnections[gametest.ElevatorToAgon] = gametest.StationLift

	assert.Equal(t, gametest.StationLift, p.Connections()[gametest.ElevatorToAgon])
}

func TestGamePatches_HintIDsSorted(t *testing.T) {
	db := gametest.Database(t)
	p := gametest.Patches(db, 0)
	p.Hints[gametest.LoreScan] = hints.Hint{Type: hints.TypeJoke}
	p.Hints[gametest.PlazaLore] = hints.Hint{Type: hints.TypeJoke}

	assert.Equal(t, []worldgraph.NodeID{gametest.PlazaLore, gametest.LoreScan}, p.HintIDs())
}

func loadSession(t *testing.T) patches.Session {
	t.Helper()
	raw, err := os.ReadFile("../../../configs/session.json")
	require.NoError(t, err)
	db, err := catalogs.Load("prime2", "../../../configs/prime2")
	require.NoError(t, err)
	s, err := patches.Decode(raw, map[string]*catalogs.Database{"prime2": db})
	require.NoError(t, err)
	return s
}

func TestDecode_SampleSession(t *testing.T) {
	s := loadSession(t)

	assert.Equal(t, "6f1c2a52-8f43-4c59-9d0e-2b3f4f7f1a10", s.SessionID.String())
	assert.Equal(t, []int{0, 1}, s.Patches.Players())

	alice := s.Patches[0]
	require.Len(t, alice.PickupAssignment, 6)
	assert.Equal(t, "Energy Tank", alice.PickupAssignment[gametest.IndexStation].Pickup.Name)
	assert.Equal(t, 1, alice.PickupAssignment[gametest.IndexStation].Player)
	assert.Equal(t, gametest.StationLift, alice.ElevatorConnections[gametest.ElevatorToAgon])
	assert.Len(t, alice.StartingResources, 3)

	h := alice.Hints[gametest.LoreScan]
	assert.Equal(t, hints.TypeLocation, h.Type)
	rel, ok := h.Precision.Relative.(*hints.RelativeDataArea)
	require.True(t, ok)
	assert.Nil(t, rel.DistanceOffset)
	assert.Equal(t, hints.RelativeAreaByName, rel.Precision)

	bob := s.Patches[1]
	assert.Equal(t, "Dark Agon Temple", bob.Hints[gametest.LoreScan].DarkTemple)

	pc := s.PlayersConfiguration(1)
	assert.Equal(t, s.SessionID, pc.SessionID)
	assert.Equal(t, "Bob", pc.Name(1))
}

func TestDecode_SchemaRejectsBadDocument(t *testing.T) {
	db := gametest.Database(t)
	dbs := map[string]*catalogs.Database{gametest.Game: db}

	_, err := patches.Decode([]byte(`{"player_names":["A"],"players":[{"game":"prime2"}]}`), dbs)
	assert.Error(t, err, "pickups is required")

	_, err = patches.Decode([]byte(`{"player_names":["A"],"players":[{"game":"prime2","pickups":[],"extra":1}]}`), dbs)
	assert.Error(t, err, "unknown property")
}

func TestDecode_ResolutionErrors(t *testing.T) {
	db := gametest.Database(t)
	dbs := map[string]*catalogs.Database{gametest.Game: db}

	cases := map[string]string{
		"unknown pickup":  `{"player_names":["A"],"players":[{"game":"prime2","pickups":[{"index":0,"pickup":"Nope","player":0}]}]}`,
		"unknown index":   `{"player_names":["A"],"players":[{"game":"prime2","pickups":[{"index":40,"pickup":"Energy Tank","player":0}]}]}`,
		"unknown owner":   `{"player_names":["A"],"players":[{"game":"prime2","pickups":[{"index":0,"pickup":"Energy Tank","player":3}]}]}`,
		"unknown game":    `{"player_names":["A"],"players":[{"game":"prime3","pickups":[]}]}`,
		"name mismatch":   `{"player_names":["A","B"],"players":[{"game":"prime2","pickups":[]}]}`,
		"joke target":     `{"player_names":["A"],"players":[{"game":"prime2","pickups":[],"hints":[{"node":{"world":"W","area":"A","node":"N"},"hint_type":"JOKE","target":1}]}]}`,
		"bad session id":  `{"session_id":"nope","player_names":["A"],"players":[{"game":"prime2","pickups":[]}]}`,
		"unknown element": `{"player_names":["A"],"players":[{"game":"prime2","pickups":[],"starting_items":{"Bomb":1}}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := patches.Decode([]byte(doc), dbs)
			assert.Error(t, err)
		})
	}
}

func TestDecode_SessionIDFromContent(t *testing.T) {
	db := gametest.Database(t)
	dbs := map[string]*catalogs.Database{gametest.Game: db}
	doc := []byte(`{"player_names":["A","B"],"players":[{"game":"prime2","pickups":[]},{"game":"prime2","pickups":[]}]}`)

	first, err := patches.Decode(doc, dbs)
	require.NoError(t, err)
	again, err := patches.Decode(doc, dbs)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, first.SessionID)
	assert.Equal(t, first.SessionID, again.SessionID)
	assert.Equal(t, first.SessionID, first.PlayersConfiguration(0).SessionID)
	assert.Equal(t, first.SessionID, first.PlayersConfiguration(1).SessionID)

	solo, err := patches.Decode([]byte(`{"player_names":["A"],"players":[{"game":"prime2","pickups":[]}]}`), dbs)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, solo.SessionID)
}
