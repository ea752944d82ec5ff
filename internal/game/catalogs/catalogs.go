package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/resources"
	"randoexport.ai/internal/game/worldgraph"
)

// Database is the static data of one game: resources, pickup definitions and
// the region graph.
type Database struct {
	Game string

	Resources ResourceCatalog
	Pickups   PickupCatalog
	Graph     *worldgraph.Graph

	WorldDigest string
}

type ResourceCatalog struct {
	Names  []string
	ByName map[string]resources.ResourceInfo
	Digest string
}

type PickupCatalog struct {
	Names      []string
	ByName     map[string]pickup.Entry
	Categories map[string]pickup.Category
	Digest     string
}

type QuantityDef struct {
	Resource string `json:"resource"`
	Quantity int    `json:"quantity"`
}

type LockDef struct {
	LockedBy      string `json:"locked_by"`
	ItemToLock    string `json:"item_to_lock"`
	TemporaryItem string `json:"temporary_item"`
}

type PickupDef struct {
	Name           string        `json:"name"`
	Category       string        `json:"category"`
	BroadCategory  string        `json:"broad_category,omitempty"`
	Model          pickup.Model  `json:"model"`
	Description    string        `json:"description,omitempty"`
	Progression    []QuantityDef `json:"progression,omitempty"`
	ExtraResources []QuantityDef `json:"extra_resources,omitempty"`
	ResourceLock   *LockDef      `json:"resource_lock,omitempty"`
	Unlocks        bool          `json:"unlocks_resource,omitempty"`
}

type pickupsFile struct {
	Categories []pickup.Category `json:"categories"`
	Pickups    []PickupDef       `json:"pickups"`
}

func Load(game, configDir string) (*Database, error) {
	db := &Database{Game: game}

	if err := loadResources(filepath.Join(configDir, "resources.json"), &db.Resources); err != nil {
		return nil, err
	}
	if err := loadPickups(filepath.Join(configDir, "pickups.json"), db.Resources, &db.Pickups); err != nil {
		return nil, err
	}
	g, digest, err := loadWorld(filepath.Join(configDir, "world.json"))
	if err != nil {
		return nil, err
	}
	db.Graph = g
	db.WorldDigest = digest
	return db, nil
}

// New assembles a database from already-decoded parts.
func New(game string, res []resources.ResourceInfo, cats []pickup.Category, defs []PickupDef, worlds []worldgraph.World) (*Database, error) {
	db := &Database{Game: game}
	if err := indexResources(res, &db.Resources); err != nil {
		return nil, err
	}
	if err := indexPickups(pickupsFile{Categories: cats, Pickups: defs}, db.Resources, &db.Pickups); err != nil {
		return nil, err
	}
	g, err := worldgraph.New(worlds)
	if err != nil {
		return nil, err
	}
	db.Graph = g
	return db, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func (db *Database) Resource(name string) (resources.ResourceInfo, error) {
	r, ok := db.Resources.ByName[name]
	if !ok {
		return resources.ResourceInfo{}, fmt.Errorf("%s: unknown resource %q", db.Game, name)
	}
	return r, nil
}

func (db *Database) Pickup(name string) (pickup.Entry, error) {
	p, ok := db.Pickups.ByName[name]
	if !ok {
		return pickup.Entry{}, fmt.Errorf("%s: unknown pickup %q", db.Game, name)
	}
	return p, nil
}

func loadResources(path string, out *ResourceCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var defs []resources.ResourceInfo
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("resources.json: %w", err)
	}
	if err := indexResources(defs, out); err != nil {
		return fmt.Errorf("resources.json: %w", err)
	}
	out.Digest = sha256Hex(raw)
	return nil
}

func indexResources(defs []resources.ResourceInfo, out *ResourceCatalog) error {
	out.ByName = map[string]resources.ResourceInfo{}
	for _, d := range defs {
		if d.ShortName == "" {
			return fmt.Errorf("empty short_name")
		}
		if _, dup := out.ByName[d.ShortName]; dup {
			return fmt.Errorf("duplicate resource %q", d.ShortName)
		}
		if d.LongName == "" {
			d.LongName = d.ShortName
		}
		if d.Type == "" {
			d.Type = resources.TypeItem
		}
		out.ByName[d.ShortName] = d
	}
	out.Names = sortedKeys(out.ByName)
	return nil
}

func loadPickups(path string, res ResourceCatalog, out *PickupCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f pickupsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("pickups.json: %w", err)
	}
	if err := indexPickups(f, res, out); err != nil {
		return fmt.Errorf("pickups.json: %w", err)
	}
	out.Digest = sha256Hex(raw)
	return nil
}

func indexPickups(f pickupsFile, res ResourceCatalog, out *PickupCatalog) error {
	out.Categories = map[string]pickup.Category{}
	for _, c := range f.Categories {
		if c.Name == "" {
			return fmt.Errorf("empty category name")
		}
		out.Categories[c.Name] = c
	}

	gain := func(owner string, qs []QuantityDef) (resources.ResourceGain, error) {
		var g resources.ResourceGain
		for _, q := range qs {
			r, ok := res.ByName[q.Resource]
			if !ok {
				return nil, fmt.Errorf("pickup %q: unknown resource %q", owner, q.Resource)
			}
			g = append(g, resources.ResourceQuantity{Resource: r, Quantity: q.Quantity})
		}
		return g, nil
	}
	lookup := func(owner, name string) (resources.ResourceInfo, error) {
		r, ok := res.ByName[name]
		if !ok {
			return r, fmt.Errorf("pickup %q: unknown lock resource %q", owner, name)
		}
		return r, nil
	}

	out.ByName = map[string]pickup.Entry{}
	for _, d := range f.Pickups {
		if d.Name == "" {
			return fmt.Errorf("empty pickup name")
		}
		if _, dup := out.ByName[d.Name]; dup {
			return fmt.Errorf("duplicate pickup %q", d.Name)
		}
		cat, ok := out.Categories[d.Category]
		if !ok {
			return fmt.Errorf("pickup %q: unknown category %q", d.Name, d.Category)
		}
		broad := cat
		if d.BroadCategory != "" {
			if broad, ok = out.Categories[d.BroadCategory]; !ok {
				return fmt.Errorf("pickup %q: unknown broad category %q", d.Name, d.BroadCategory)
			}
		}
		e := pickup.Entry{
			Name:          d.Name,
			Category:      cat,
			BroadCategory: broad,
			Model:         d.Model,
			Description:   d.Description,
			Unlocks:       d.Unlocks,
		}
		var err error
		if e.Progression, err = gain(d.Name, d.Progression); err != nil {
			return err
		}
		if e.ExtraResources, err = gain(d.Name, d.ExtraResources); err != nil {
			return err
		}
		if d.ResourceLock != nil {
			var lock pickup.ResourceLock
			if lock.LockedBy, err = lookup(d.Name, d.ResourceLock.LockedBy); err != nil {
				return err
			}
			if lock.ItemToLock, err = lookup(d.Name, d.ResourceLock.ItemToLock); err != nil {
				return err
			}
			if lock.TemporaryItem, err = lookup(d.Name, d.ResourceLock.TemporaryItem); err != nil {
				return err
			}
			e.ResourceLock = &lock
		}
		out.ByName[d.Name] = e
	}
	out.Names = sortedKeys(out.ByName)
	return nil
}

func loadWorld(path string) (*worldgraph.Graph, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	var worlds []worldgraph.World
	if err := json.Unmarshal(raw, &worlds); err != nil {
		return nil, "", fmt.Errorf("world.json: %w", err)
	}
	g, err := worldgraph.New(worlds)
	if err != nil {
		return nil, "", fmt.Errorf("world.json: %w", err)
	}
	return g, sha256Hex(raw), nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
