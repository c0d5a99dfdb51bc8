// Package catalog derives read-only views over the in-memory gift list.
// Derivation is pure: filters and sorting never touch the store.
package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vieduardo/presentes/internal/model"
)

// Availability filter values.
const (
	AvailabilityAll       = "all"
	AvailabilityAvailable = "available"
	AvailabilityReserved  = "reserved"
)

// CategoryAll disables the category dimension.
const CategoryAll = "todas"

// Filter selects gifts along three independent dimensions. Active dimensions
// apply conjunctively; zero values leave a dimension inactive.
type Filter struct {
	Text         string // case-insensitive substring on name or description
	Availability string // all | available | reserved
	Category     string // exact category, or "todas"
}

// Counts summarizes the catalog for display.
type Counts struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
}

// Matches reports whether a gift satisfies every active filter dimension.
func (f Filter) Matches(g *model.Gift) bool {
	if text := strings.ToLower(f.Text); text != "" {
		name := strings.ToLower(g.Name)
		description := strings.ToLower(g.Description)
		if !strings.Contains(name, text) && !strings.Contains(description, text) {
			return false
		}
	}

	switch f.Availability {
	case AvailabilityAvailable:
		if g.Reserved {
			return false
		}
	case AvailabilityReserved:
		if !g.Reserved {
			return false
		}
	}

	if f.Category != "" && f.Category != CategoryAll {
		if model.NormalizeCategory(g.Category) != model.NormalizeCategory(f.Category) {
			return false
		}
	}

	return true
}

// View returns the filtered catalog sorted for display: available gifts
// before reserved ones, then alphabetically by trimmed name under the
// Brazilian Portuguese collation, case-insensitively.
func View(gifts []model.Gift, f Filter) []model.Gift {
	view := make([]model.Gift, 0, len(gifts))
	for i := range gifts {
		if f.Matches(&gifts[i]) {
			view = append(view, gifts[i])
		}
	}

	// Collators buffer internally, so build one per call rather than
	// sharing across requests.
	collator := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	slices.SortStableFunc(view, func(a, b model.Gift) int {
		if a.Reserved != b.Reserved {
			if a.Reserved {
				return 1
			}
			return -1
		}
		return collator.CompareString(strings.TrimSpace(a.Name), strings.TrimSpace(b.Name))
	})

	return view
}

// Count tallies the full catalog, ignoring filters.
func Count(gifts []model.Gift) Counts {
	c := Counts{Total: len(gifts)}
	for i := range gifts {
		if gifts[i].Reserved {
			c.Reserved++
		}
	}
	c.Available = c.Total - c.Reserved
	return c
}
