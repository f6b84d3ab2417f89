package sim

import (
	"github.com/vovakirdan/skyhop/internal/config"
)

// Prefab is one catalog entry: a platform shape with a spawn weight and the
// difficulty range in which it may appear.
type Prefab struct {
	Name          string
	Category      Category
	Weight        float64
	Width         float64
	MinDifficulty float64
	MaxDifficulty float64
}

// ValidAt reports whether the prefab may spawn at difficulty d.
func (p Prefab) ValidAt(d float64) bool {
	return d >= p.MinDifficulty && d <= p.MaxDifficulty
}

// DefaultPrefab is the hard-coded last resort of the fallback chain.
var DefaultPrefab = Prefab{
	Name:          "default",
	Category:      CategoryBasic,
	Weight:        1,
	Width:         2,
	MinDifficulty: 0,
	MaxDifficulty: 1,
}

// Catalog is the static platform metadata, read-only after construction.
type Catalog struct {
	entries []Prefab
}

// NewCatalog builds a catalog from configuration entries. Entries with an
// unknown category are skipped; a zero max difficulty means no upper bound.
func NewCatalog(entries []config.PrefabConfig) *Catalog {
	c := &Catalog{entries: make([]Prefab, 0, len(entries))}
	for _, e := range entries {
		cat, ok := ParseCategory(e.Category)
		if !ok {
			continue
		}
		maxD := e.MaxDifficulty
		if maxD <= 0 {
			maxD = 1
		}
		c.entries = append(c.entries, Prefab{
			Name:          e.Name,
			Category:      cat,
			Weight:        e.Weight,
			Width:         e.Width,
			MinDifficulty: e.MinDifficulty,
			MaxDifficulty: maxD,
		})
	}
	return c
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// All returns a copy of every entry in catalog order.
func (c *Catalog) All() []Prefab {
	out := make([]Prefab, len(c.entries))
	copy(out, c.entries)
	return out
}

// Candidates returns the entries of the given categories that are valid at
// difficulty d, in catalog order.
func (c *Catalog) Candidates(d float64, cats ...Category) []Prefab {
	var out []Prefab
	for _, e := range c.entries {
		if !e.ValidAt(d) {
			continue
		}
		for _, cat := range cats {
			if e.Category == cat {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// ValidAt returns every entry valid at difficulty d, in catalog order.
func (c *Catalog) ValidAt(d float64) []Prefab {
	var out []Prefab
	for _, e := range c.entries {
		if e.ValidAt(d) {
			out = append(out, e)
		}
	}
	return out
}

// PickWeighted selects an entry by weight using a roll in [0, 1). A zero or
// negative weight sum yields the first entry. It returns false only for an
// empty list.
func PickWeighted(entries []Prefab, roll float64) (Prefab, bool) {
	if len(entries) == 0 {
		return Prefab{}, false
	}
	total := 0.0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return entries[0], true
	}

	target := roll * total
	cumulative := 0.0
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight
		if target < cumulative {
			return e, true
		}
	}
	return entries[len(entries)-1], true
}
