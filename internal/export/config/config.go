package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"randoexport.ai/internal/export/pickups"
	"randoexport.ai/internal/game/catalogs"
	"randoexport.ai/internal/game/pickup"
)

type Config struct {
	Game      string `yaml:"game"`
	Colors    string `yaml:"colors"`
	WithColor bool   `yaml:"with_color"`
	SeedSalt  string `yaml:"seed_salt,omitempty"`

	JokeHints   []string          `yaml:"joke_hints"`
	Determiners DeterminerSpec    `yaml:"determiners"`
	Guardians   map[int]string    `yaml:"guardians"`
	Temples     []TempleSpec      `yaml:"temples"`
	MemoText    map[string]string `yaml:"memo_text,omitempty"`

	// CreditsOrder lists pickup names in the order the credits show them.
	CreditsOrder []string `yaml:"credits_order"`
	// GuaranteedItems are resources that always get a location hint.
	GuaranteedItems []string `yaml:"guaranteed_items,omitempty"`
	// HideGuaranteedArea names only the world in guaranteed hints.
	HideGuaranteedArea bool `yaml:"hide_guaranteed_area,omitempty"`

	MultiworldResource string `yaml:"multiworld_resource"`
	UselessPickup      string `yaml:"useless_pickup"`
	ModelStyle         string `yaml:"model_style"`
	ModelDataSource    string `yaml:"model_data_source"`
}

type DeterminerSpec struct {
	None []string `yaml:"none"`
	An   []string `yaml:"an"`
}

type TempleSpec struct {
	Name string   `yaml:"name"`
	Keys []string `yaml:"keys"`
}

const TempleKeyCount = 3

func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("export.yaml: %w", err)
	}
	// yaml.v3 merges into existing maps; a guardians mapping in the file
	// replaces the defaults instead.
	var maps struct {
		Guardians map[int]string `yaml:"guardians"`
	}
	if err := yaml.Unmarshal(b, &maps); err != nil {
		return cfg, fmt.Errorf("export.yaml: %w", err)
	}
	if maps.Guardians != nil {
		cfg.Guardians = maps.Guardians
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("export.yaml: %w", err)
	}
	return cfg, nil
}

func Defaults() Config {
	return Config{
		Game:      "prime2",
		Colors:    "prime2",
		WithColor: true,
		JokeHints: []string{
			"By this point in your run, you should have consumed at least 200 mg of caffeine.",
			"Did you know that Samus is a girl?",
			"This hint is just a placeholder for a better hint you will never read.",
			"Someone already collected this hint. Please try again later.",
			"Check your map. No, the other one.",
			"The real treasure was the missiles we collected along the way.",
		},
		Determiners: DeterminerSpec{
			None: []string{
				"Dark Agon Key 1", "Dark Agon Key 2", "Dark Agon Key 3",
				"Dark Torvus Key 1", "Dark Torvus Key 2", "Dark Torvus Key 3",
				"Ing Hive Key 1", "Ing Hive Key 2", "Ing Hive Key 3",
				"Sky Temple Key 1", "Sky Temple Key 2", "Sky Temple Key 3",
				"Sky Temple Key 4", "Sky Temple Key 5", "Sky Temple Key 6",
				"Sky Temple Key 7", "Sky Temple Key 8", "Sky Temple Key 9",
			},
			An: []string{
				"Annihilator Beam", "Amber Translator", "Echo Visor", "Emerald Translator",
				"Energy Tank", "Energy Transfer Module",
			},
		},
		Guardians: map[int]string{4: "Amorbis"},
		Temples: []TempleSpec{
			{Name: "Dark Agon Temple", Keys: []string{"Dark Agon Key 1", "Dark Agon Key 2", "Dark Agon Key 3"}},
			{Name: "Dark Torvus Temple", Keys: []string{"Dark Torvus Key 1", "Dark Torvus Key 2", "Dark Torvus Key 3"}},
			{Name: "Hive Temple", Keys: []string{"Ing Hive Key 1", "Ing Hive Key 2", "Ing Hive Key 3"}},
		},
		CreditsOrder: []string{
			"Missile Launcher", "Dark Beam", "Light Beam", "Progressive Suit", "Energy Tank",
		},
		MultiworldResource: "Multiworld",
		UselessPickup:      "Energy Transfer Module",
		ModelStyle:         string(pickups.StyleAllVisible),
		ModelDataSource:    string(pickups.SourceETM),
	}
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.Game = strings.TrimSpace(c.Game)
	c.Colors = strings.ToLower(strings.TrimSpace(c.Colors))
	if c.Colors == "" {
		c.Colors = "plain"
	}
	c.ModelStyle = strings.ToUpper(strings.TrimSpace(c.ModelStyle))
	if c.ModelStyle == "" {
		c.ModelStyle = string(pickups.StyleAllVisible)
	}
	c.ModelDataSource = strings.ToUpper(strings.TrimSpace(c.ModelDataSource))
	if c.ModelDataSource == "" {
		c.ModelDataSource = string(pickups.SourceETM)
	}
	if c.SeedSalt == "" {
		c.SeedSalt = c.Game
	}
}

var knownColors = map[string]bool{"plain": true, "prime1": true, "prime2": true}

func (c Config) Validate() error {
	c.Normalize()
	if c.Game == "" {
		return fmt.Errorf("game must not be empty")
	}
	if !knownColors[c.Colors] {
		return fmt.Errorf("unknown colors %q", c.Colors)
	}
	if len(c.JokeHints) == 0 {
		return fmt.Errorf("joke_hints must not be empty")
	}
	for idx, name := range c.Guardians {
		if idx < 0 {
			return fmt.Errorf("guardian %q has negative pickup index", name)
		}
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("guardian at %d has empty name", idx)
		}
	}
	seen := map[string]bool{}
	for _, t := range c.Temples {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("temple name must not be empty")
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate temple: %s", t.Name)
		}
		seen[t.Name] = true
		if len(t.Keys) != TempleKeyCount {
			return fmt.Errorf("temple %s must list %d keys, got %d", t.Name, TempleKeyCount, len(t.Keys))
		}
	}
	if _, err := c.Style(); err != nil {
		return err
	}
	if _, err := c.DataSource(); err != nil {
		return err
	}
	if strings.TrimSpace(c.MultiworldResource) == "" {
		return fmt.Errorf("multiworld_resource must not be empty")
	}
	if strings.TrimSpace(c.UselessPickup) == "" {
		return fmt.Errorf("useless_pickup must not be empty")
	}
	return nil
}

func (c Config) Style() (pickups.ModelStyle, error) {
	s := pickups.ModelStyle(strings.ToUpper(c.ModelStyle))
	switch s {
	case pickups.StyleAllVisible, pickups.StyleHideModel, pickups.StyleHideScan, pickups.StyleHideAll:
		return s, nil
	}
	return "", fmt.Errorf("unknown model_style %q", c.ModelStyle)
}

func (c Config) DataSource() (pickups.DataSource, error) {
	s := pickups.DataSource(strings.ToUpper(c.ModelDataSource))
	switch s {
	case pickups.SourceETM, pickups.SourceRandom, pickups.SourceLocation:
		return s, nil
	}
	return "", fmt.Errorf("unknown model_data_source %q", c.ModelDataSource)
}

func (c Config) Temple(name string) (TempleSpec, bool) {
	for _, t := range c.Temples {
		if t.Name == name {
			return t, true
		}
	}
	return TempleSpec{}, false
}

// GuardianIndices maps pickup indices to guardian names.
func (c Config) GuardianIndices() map[pickup.Index]string {
	out := make(map[pickup.Index]string, len(c.Guardians))
	for i, n := range c.Guardians {
		out[pickup.Index(i)] = n
	}
	return out
}

// ValidateAgainst checks that every name the config references exists in db.
func (c Config) ValidateAgainst(db *catalogs.Database) error {
	res := db.Resources.Names
	picks := db.Pickups.Names
	if err := mustContain("multiworld_resource", c.MultiworldResource, res); err != nil {
		return err
	}
	if err := mustContain("useless_pickup", c.UselessPickup, picks); err != nil {
		return err
	}
	for _, t := range c.Temples {
		for _, k := range t.Keys {
			if err := mustContain("temple "+t.Name, k, res); err != nil {
				return err
			}
		}
	}
	for _, n := range c.GuaranteedItems {
		if err := mustContain("guaranteed_items", n, res); err != nil {
			return err
		}
	}
	for _, n := range c.CreditsOrder {
		if err := mustContain("credits_order", n, picks); err != nil {
			return err
		}
	}
	for _, n := range sortedKeys(c.MemoText) {
		if err := mustContain("memo_text", n, picks); err != nil {
			return err
		}
	}
	for idx := range c.Guardians {
		if _, err := db.Graph.NodeFromPickupIndex(pickup.Index(idx)); err != nil {
			return fmt.Errorf("guardians: %w", err)
		}
	}
	return nil
}

func mustContain(field, name string, sorted []string) error {
	i := sort.SearchStrings(sorted, name)
	if i < len(sorted) && sorted[i] == name {
		return nil
	}
	if s := Suggest(name, sorted); s != "" {
		return fmt.Errorf("%s: unknown name %q (did you mean %q?)", field, name, s)
	}
	return fmt.Errorf("%s: unknown name %q", field, name)
}

// Suggest returns the candidate closest to name, or "" when nothing is close.
func Suggest(name string, candidates []string) string {
	best := ""
	bestDist := -1
	lname := strings.ToLower(name)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lname, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > len(name)/2 {
		return ""
	}
	return best
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
