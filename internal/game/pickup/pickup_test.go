package pickup_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randoexport.ai/internal/game/gametest"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/resources"
)

func TestConditionalResources_SingleStepWithoutLock(t *testing.T) {
	db := gametest.Database(t)
	for _, name := range db.Pickups.Names {
		e := gametest.Pickup(t, db, name)
		if len(e.Progression) > 1 || e.ResourceLock != nil {
			continue
		}
		stages, err := pickup.ConditionalResourcesFor(e)
		require.NoError(t, err, name)
		require.Len(t, stages, 1, name)
		assert.Equal(t, name, stages[0].Name)
		assert.Nil(t, stages[0].Item)
	}
}

func TestConditionalResources_LockedExpansion(t *testing.T) {
	db := gametest.Database(t)
	e := gametest.Pickup(t, db, "Missile Expansion")
	missile := gametest.Resource(t, db, "Missile")
	temp := gametest.Resource(t, db, "TemporaryMissile")
	launcher := gametest.Resource(t, db, "MissileLauncher")

	stages, err := pickup.ConditionalResourcesFor(e)
	require.NoError(t, err)

	want := []pickup.ConditionalResources{
		{Name: "Locked Missile Expansion", Resources: resources.ResourceGain{{Resource: temp, Quantity: 5}}},
		{Name: "Missile Expansion", Item: &launcher, Resources: resources.ResourceGain{{Resource: missile, Quantity: 5}}},
	}
	if diff := cmp.Diff(want, stages); diff != "" {
		t.Fatalf("stages mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, pickup.ConversionsFor(e))
}

func TestConditionalResources_IgnoredLockIsSingleStage(t *testing.T) {
	db := gametest.Database(t)
	e := gametest.Pickup(t, db, "Missile Expansion")
	e.IgnoreLock = true

	stages, err := pickup.ConditionalResourcesFor(e)
	require.NoError(t, err)
	require.Len(t, stages, 1)
	assert.Equal(t, "Missile Expansion", stages[0].Name)
	assert.Empty(t, pickup.ConversionsFor(e))
}

func TestConditionalResources_UnlockingItem(t *testing.T) {
	db := gametest.Database(t)
	e := gametest.Pickup(t, db, "Missile Launcher")

	stages, err := pickup.ConditionalResourcesFor(e)
	require.NoError(t, err)
	require.Len(t, stages, 1)
	require.Len(t, stages[0].Resources, 2)
	assert.Equal(t, "Missile", stages[0].Resources[0].Resource.ShortName)
	assert.Equal(t, "MissileLauncher", stages[0].Resources[1].Resource.ShortName)

	conv := pickup.ConversionsFor(e)
	require.Len(t, conv, 1)
	assert.Equal(t, gametest.Resource(t, db, "TemporaryMissile"), conv[0].Source)
	assert.Equal(t, gametest.Resource(t, db, "Missile"), conv[0].Target)

	e.ResourceLock = nil
	assert.Empty(t, pickup.ConversionsFor(e))
}

func TestConditionalResources_IdenticalLockItemsAreNoLock(t *testing.T) {
	db := gametest.Database(t)
	e := gametest.Pickup(t, db, "Missile Expansion")
	lock := *e.ResourceLock
	lock.TemporaryItem = lock.ItemToLock
	e.ResourceLock = &lock

	stages, err := pickup.ConditionalResourcesFor(e)
	require.NoError(t, err)
	require.Len(t, stages, 1)
	assert.Equal(t, "Missile Expansion", stages[0].Name)
	assert.Equal(t, "Missile", stages[0].Resources[0].Resource.ShortName)
}

func TestConditionalResources_Progressive(t *testing.T) {
	db := gametest.Database(t)
	e := gametest.Pickup(t, db, "Progressive Suit")

	stages, err := pickup.ConditionalResourcesFor(e)
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Equal(t, "Dark Suit", stages[0].Name)
	assert.Nil(t, stages[0].Item)
	assert.Equal(t, "Light Suit", stages[1].Name)
	require.NotNil(t, stages[1].Item)
	assert.Equal(t, "DarkSuit", stages[1].Item.ShortName)
}

func TestConditionalResources_ProgressiveWithLockIsFatal(t *testing.T) {
	db := gametest.Database(t)
	e := gametest.Pickup(t, db, "Progressive Suit")
	e.ResourceLock = gametest.Pickup(t, db, "Missile Expansion").ResourceLock

	_, err := pickup.ConditionalResourcesFor(e)
	assert.ErrorIs(t, err, pickup.ErrLockedProgression)
}

func TestEntryGrants(t *testing.T) {
	db := gametest.Database(t)
	launcher := gametest.Pickup(t, db, "Missile Launcher")
	assert.True(t, launcher.Grants(gametest.Resource(t, db, "Missile")))
	assert.True(t, launcher.Grants(gametest.Resource(t, db, "MissileLauncher")))
	assert.False(t, launcher.Grants(gametest.Resource(t, db, "EnergyTank")))

	suit := gametest.Pickup(t, db, "Progressive Suit")
	assert.True(t, suit.Grants(gametest.Resource(t, db, "LightSuit")))
}
