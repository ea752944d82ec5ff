// Package gametest builds a small two-world game database and patches for
// tests.
package gametest

import (
	"testing"

	"github.com/google/uuid"

	"randoexport.ai/internal/game/catalogs"
	"randoexport.ai/internal/game/hints"
	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/resources"
	"randoexport.ai/internal/game/worldgraph"
)

const Game = "prime2"

var SessionID = uuid.MustParse("0b6c7a8e-3d21-4f0a-9c55-7e1d2f4a6b90")

const (
	TempleGrounds = "Temple Grounds"
	AgonWastes    = "Agon Wastes"
)

var (
	LandingSite    = worldgraph.AreaID{World: TempleGrounds, Area: "Landing Site"}
	HiveChamber    = worldgraph.AreaID{World: TempleGrounds, Area: "Hive Chamber"}
	Storage        = worldgraph.AreaID{World: TempleGrounds, Area: "Storage"}
	Transport      = worldgraph.AreaID{World: AgonWastes, Area: "Transport to Temple Grounds"}
	MiningPlaza    = worldgraph.AreaID{World: AgonWastes, Area: "Mining Plaza"}
	AgonTemple     = worldgraph.AreaID{World: AgonWastes, Area: "Agon Temple"}
	CentralStation = worldgraph.AreaID{World: AgonWastes, Area: "Central Station"}

	LoreScan       = worldgraph.NodeID{World: TempleGrounds, Area: "Landing Site", Node: "Lore Scan"}
	PlazaLore      = worldgraph.NodeID{World: AgonWastes, Area: "Mining Plaza", Node: "Lore Scan"}
	ElevatorToAgon = worldgraph.NodeID{World: TempleGrounds, Area: "Landing Site", Node: "Elevator to Agon"}
	StationLift    = worldgraph.NodeID{World: AgonWastes, Area: "Central Station", Node: "Elevator to Temple Grounds"}
)

// Pickup indices, one per pickup node.
const (
	IndexLanding pickup.Index = iota
	IndexHive
	IndexStorage
	IndexPlaza
	IndexGuardian
	IndexStation
)

const GuardianName = "Amorbis"

func Resources() []resources.ResourceInfo {
	item := func(short, long string, id int) resources.ResourceInfo {
		return resources.ResourceInfo{ShortName: short, LongName: long, Type: resources.TypeItem, GameID: id}
	}
	return []resources.ResourceInfo{
		item("Missile", "Missile", 44),
		item("MissileLauncher", "Missile Launcher", 73),
		item("TemporaryMissile", "Temporary Missile", 71),
		item("EnergyTank", "Energy Tank", 42),
		item("DarkBeam", "Dark Beam", 1),
		item("LightBeam", "Light Beam", 2),
		item("DarkSuit", "Dark Suit", 13),
		item("LightSuit", "Light Suit", 14),
		item("Dark Agon Key 1", "Dark Agon Key 1", 29),
		item("Dark Agon Key 2", "Dark Agon Key 2", 30),
		item("Dark Agon Key 3", "Dark Agon Key 3", 31),
		item("Dark Torvus Key 1", "Dark Torvus Key 1", 32),
		item("Dark Torvus Key 2", "Dark Torvus Key 2", 33),
		item("Dark Torvus Key 3", "Dark Torvus Key 3", 34),
		item("Multiworld", "Multiworld", 74),
		{ShortName: "ItemPercentage", LongName: "Item Percentage", Type: resources.TypeItem},
	}
}

func Categories() []pickup.Category {
	return []pickup.Category{
		{Name: "expansion", LongName: "Expansion",
			HintDetails:    pickup.CategoryDetails{Determiner: "an ", Text: "expansion"},
			GeneralDetails: pickup.CategoryDetails{Determiner: "an ", Text: "item"}},
		{Name: "missile", LongName: "Missile System",
			HintDetails:    pickup.CategoryDetails{Determiner: "a ", Text: "missile system"},
			GeneralDetails: pickup.CategoryDetails{Determiner: "a ", Text: "major upgrade"},
			HintedAsMajor:  true},
		{Name: "beam", LongName: "Beam",
			HintDetails:    pickup.CategoryDetails{Determiner: "a ", Text: "beam"},
			GeneralDetails: pickup.CategoryDetails{Determiner: "a ", Text: "major upgrade"},
			HintedAsMajor:  true},
		{Name: "suit", LongName: "Suit",
			HintDetails:    pickup.CategoryDetails{Determiner: "a ", Text: "suit"},
			GeneralDetails: pickup.CategoryDetails{Determiner: "a ", Text: "major upgrade"},
			HintedAsMajor:  true},
		{Name: "temple_key", LongName: "Temple Key",
			HintDetails:    pickup.CategoryDetails{Determiner: "a ", Text: "red temple key"},
			GeneralDetails: pickup.CategoryDetails{Determiner: "a ", Text: "key"},
			IsKey:          true},
		{Name: "etm", LongName: "Nothing",
			HintDetails:    pickup.CategoryDetails{Determiner: "an ", Text: "Energy Transfer Module"},
			GeneralDetails: pickup.CategoryDetails{Determiner: "an ", Text: "item"}},
	}
}

func q(name string, n int) catalogs.QuantityDef { return catalogs.QuantityDef{Resource: name, Quantity: n} }

func PickupDefs() []catalogs.PickupDef {
	missileLock := &catalogs.LockDef{LockedBy: "MissileLauncher", ItemToLock: "Missile", TemporaryItem: "TemporaryMissile"}
	key := func(name string) catalogs.PickupDef {
		return catalogs.PickupDef{Name: name, Category: "temple_key", Model: pickup.Model{Game: Game, Name: "TempleKey"},
			Progression: []catalogs.QuantityDef{q(name, 1)}}
	}
	return []catalogs.PickupDef{
		{Name: "Missile Expansion", Category: "expansion", Model: pickup.Model{Game: Game, Name: "MissileExpansion"},
			Progression: []catalogs.QuantityDef{q("Missile", 5)}, ResourceLock: missileLock},
		{Name: "Missile Launcher", Category: "missile", Model: pickup.Model{Game: Game, Name: "MissileLauncher"},
			Progression: []catalogs.QuantityDef{q("MissileLauncher", 1)}, ExtraResources: []catalogs.QuantityDef{q("Missile", 5)},
			ResourceLock: missileLock, Unlocks: true},
		{Name: "Energy Tank", Category: "expansion", Model: pickup.Model{Game: Game, Name: "EnergyTank"},
			Progression: []catalogs.QuantityDef{q("EnergyTank", 1)}},
		{Name: "Dark Beam", Category: "beam", Model: pickup.Model{Game: Game, Name: "DarkBeam"},
			Progression: []catalogs.QuantityDef{q("DarkBeam", 1)}},
		{Name: "Light Beam", Category: "beam", Model: pickup.Model{Game: Game, Name: "LightBeam"},
			Progression: []catalogs.QuantityDef{q("LightBeam", 1)}},
		{Name: "Progressive Suit", Category: "suit", Model: pickup.Model{Game: Game, Name: "DarkSuit"},
			Progression: []catalogs.QuantityDef{q("DarkSuit", 1), q("LightSuit", 1)}},
		key("Dark Agon Key 1"), key("Dark Agon Key 2"), key("Dark Agon Key 3"),
		key("Dark Torvus Key 1"), key("Dark Torvus Key 2"), key("Dark Torvus Key 3"),
		{Name: "Energy Transfer Module", Category: "etm", Model: pickup.Model{Game: Game, Name: "EnergyTransferModule"}},
	}
}

func dock(name string, to worldgraph.NodeID) worldgraph.Node {
	return worldgraph.Node{Name: name, Kind: worldgraph.KindDock, Destination: &to}
}

func pickupNode(name string, i pickup.Index, features ...string) worldgraph.Node {
	return worldgraph.Node{Name: name, Kind: worldgraph.KindPickup, PickupIndex: i, HintFeatures: features}
}

func node(a worldgraph.AreaID, name string) worldgraph.NodeID {
	return worldgraph.NodeID{World: a.World, Area: a.Area, Node: name}
}

// Worlds is a chain Storage - Hive Chamber - Landing Site - Transport - Mining
// Plaza - Agon Temple. Central Station has no vanilla connection.
func Worlds() []worldgraph.World {
	lift := ElevatorToAgon
	back := node(Transport, "Elevator to Temple Grounds")
	return []worldgraph.World{
		{Name: TempleGrounds, Areas: []worldgraph.Area{
			{Name: LandingSite.Area, Nodes: []worldgraph.Node{
				pickupNode("Pickup (Landing)", IndexLanding),
				dock("Door to Hive Chamber", node(HiveChamber, "Door to Landing Site")),
				{Name: lift.Node, Kind: worldgraph.KindTeleporter, Destination: &back},
				{Name: LoreScan.Node, Kind: worldgraph.KindGeneric},
			}},
			{Name: HiveChamber.Area, Nodes: []worldgraph.Node{
				pickupNode("Pickup (Hive)", IndexHive),
				dock("Door to Landing Site", node(LandingSite, "Door to Hive Chamber")),
				dock("Door to Storage", node(Storage, "Door to Hive Chamber")),
			}},
			{Name: Storage.Area, Nodes: []worldgraph.Node{
				pickupNode("Pickup (Storage)", IndexStorage),
				dock("Door to Hive Chamber", node(HiveChamber, "Door to Storage")),
			}},
		}},
		{Name: AgonWastes, Areas: []worldgraph.Area{
			{Name: Transport.Area, Nodes: []worldgraph.Node{
				{Name: back.Node, Kind: worldgraph.KindTeleporter, Destination: &lift},
				dock("Door to Mining Plaza", node(MiningPlaza, "Door to Transport")),
			}},
			{Name: MiningPlaza.Area, HintFeatures: []string{"Bomb Slot"}, Nodes: []worldgraph.Node{
				pickupNode("Pickup (Plaza)", IndexPlaza, "Morph Ball Tunnel"),
				dock("Door to Transport", node(Transport, "Door to Mining Plaza")),
				dock("Door to Agon Temple", node(AgonTemple, "Door to Mining Plaza")),
				{Name: PlazaLore.Node, Kind: worldgraph.KindGeneric},
			}},
			{Name: AgonTemple.Area, Nodes: []worldgraph.Node{
				pickupNode("Pickup (Guardian)", IndexGuardian),
				dock("Door to Mining Plaza", node(MiningPlaza, "Door to Agon Temple")),
			}},
			{Name: CentralStation.Area, Nodes: []worldgraph.Node{
				pickupNode("Pickup (Station)", IndexStation),
				{Name: StationLift.Node, Kind: worldgraph.KindTeleporter},
			}},
		}},
	}
}

func Database(tb testing.TB) *catalogs.Database {
	tb.Helper()
	db, err := catalogs.New(Game, Resources(), Categories(), PickupDefs(), Worlds())
	if err != nil {
		tb.Fatalf("build database: %v", err)
	}
	return db
}

func Pickup(tb testing.TB, db *catalogs.Database, name string) pickup.Entry {
	tb.Helper()
	e, err := db.Pickup(name)
	if err != nil {
		tb.Fatalf("%v", err)
	}
	return e
}

func Resource(tb testing.TB, db *catalogs.Database, name string) resources.ResourceInfo {
	tb.Helper()
	r, err := db.Resource(name)
	if err != nil {
		tb.Fatalf("%v", err)
	}
	return r
}

// Patches returns empty patches for player over db.
func Patches(db *catalogs.Database, player int) patches.GamePatches {
	return patches.GamePatches{
		Player:              player,
		Game:                db.Game,
		Graph:               db.Graph,
		PickupAssignment:    pickup.Assignment{},
		StartingLocation:    LandingSite,
		Hints:               map[worldgraph.NodeID]hints.Hint{},
		DockConnections:     worldgraph.Connections{},
		ElevatorConnections: worldgraph.Connections{},
	}
}

// Place puts the named pickup, owned by owner, at index.
func Place(tb testing.TB, db *catalogs.Database, p patches.GamePatches, index pickup.Index, name string, owner int) {
	tb.Helper()
	p.PickupAssignment[index] = pickup.Target{Pickup: Pickup(tb, db, name), Player: owner}
}

func Index(i pickup.Index) *pickup.Index { return &i }
