package naming

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"randoexport.ai/internal/game/pickup"
)

// Determiner is the article put before an item name, trailing space included.
type Determiner string

const (
	DetNone Determiner = ""
	DetThe  Determiner = "the "
	DetA    Determiner = "a "
	DetAn   Determiner = "an "
)

func (d Determiner) String() string { return string(d) }

// Title capitalizes the determiner for sentence starts.
func (d Determiner) Title() string {
	if d == DetNone {
		return ""
	}
	return cases.Title(language.English).String(string(d))
}

type Determiners struct {
	none map[string]bool
	an   map[string]bool
}

func NewDeterminers(none, an []string) Determiners {
	d := Determiners{none: map[string]bool{}, an: map[string]bool{}}
	for _, n := range none {
		d.none[n] = true
	}
	for _, n := range an {
		d.an[n] = true
	}
	return d
}

// For picks the article for name, where count is how often the name occurs
// across the whole assignment.
func (d Determiners) For(name string, count int) Determiner {
	switch {
	case d.none[name]:
		return DetNone
	case count == 1:
		return DetThe
	case d.an[name]:
		return DetAn
	default:
		return DetA
	}
}

// CountNames counts pickup names over every index, treating unassigned
// indices as the useless pickup.
func CountNames(indices []pickup.Index, a pickup.Assignment, useless string) map[string]int {
	counts := make(map[string]int, len(indices))
	for _, i := range indices {
		if t, ok := a[i]; ok {
			counts[t.Pickup.Name]++
		} else {
			counts[useless]++
		}
	}
	return counts
}
