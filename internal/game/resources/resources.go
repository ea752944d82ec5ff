package resources

import "sort"

type ResourceType string

const (
	TypeItem    ResourceType = "ITEM"
	TypeEvent   ResourceType = "EVENT"
	TypeTrick   ResourceType = "TRICK"
	TypeDamage  ResourceType = "DAMAGE"
	TypeVersion ResourceType = "VERSION"
	TypeMisc    ResourceType = "MISC"
)

// ResourceInfo identifies something a player can own. ShortName is the stable key;
// LongName is what players read.
type ResourceInfo struct {
	ShortName   string       `json:"short_name"`
	LongName    string       `json:"long_name"`
	Type        ResourceType `json:"type"`
	MaxCapacity int          `json:"max_capacity,omitempty"`
	// GameID is the patcher-facing identifier. Zero means the game has no slot for it.
	GameID int `json:"game_id,omitempty"`
}

func (r ResourceInfo) HasGameID() bool { return r.GameID > 0 }

func (r ResourceInfo) String() string { return r.LongName }

type ResourceQuantity struct {
	Resource ResourceInfo `json:"resource"`
	Quantity int          `json:"quantity"`
}

// ResourceGain is an ordered list of grants. Order matters for patch writers.
type ResourceGain []ResourceQuantity

func (g ResourceGain) Clone() ResourceGain {
	if g == nil {
		return nil
	}
	out := make(ResourceGain, len(g))
	copy(out, g)
	return out
}

// Collection is an owned-resources map keyed by short name.
type Collection struct {
	byName map[string]ResourceQuantity
}

func NewCollection(gains ...ResourceGain) Collection {
	c := Collection{byName: map[string]ResourceQuantity{}}
	for _, g := range gains {
		for _, q := range g {
			cur := c.byName[q.Resource.ShortName]
			cur.Resource = q.Resource
			cur.Quantity += q.Quantity
			c.byName[q.Resource.ShortName] = cur
		}
	}
	return c
}

func (c Collection) Get(r ResourceInfo) int {
	if c.byName == nil {
		return 0
	}
	return c.byName[r.ShortName].Quantity
}

func (c Collection) Has(r ResourceInfo) bool { return c.Get(r) > 0 }

func (c Collection) Len() int { return len(c.byName) }

// Gain returns the collection sorted by short name.
func (c Collection) Gain() ResourceGain {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make(ResourceGain, 0, len(names))
	for _, n := range names {
		out = append(out, c.byName[n])
	}
	return out
}
