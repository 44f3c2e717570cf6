package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/GTDGit/gtd_storefront/internal/models"
)

// CategoryAll is the category control value that disables category filtering.
const CategoryAll = "all"

// SortKey selects the ordering applied by a Sort command.
type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	SortRating    SortKey = "rating"
)

// ParseSortKey accepts the canonical keys and the legacy select values
// ("Name", "a-z", "z-a", "rate").
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case string(SortName), "Name":
		return SortName, nil
	case string(SortPriceAsc), "a-z":
		return SortPriceAsc, nil
	case string(SortPriceDesc), "z-a":
		return SortPriceDesc, nil
	case string(SortRating), "rate":
		return SortRating, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// FilterState mirrors the listing controls. Only the most recent command
// shapes the displayed list; the other fields keep what the user last chose.
type FilterState struct {
	SearchText  string   `json:"searchText"`
	Category    string   `json:"category"`
	SortKey     SortKey  `json:"sortKey"`
	MinPrice    *float64 `json:"minPrice"`
	MaxPrice    *float64 `json:"maxPrice"`
	URLCategory *string  `json:"urlCategory,omitempty"`
}

func defaultFilterState() FilterState {
	return FilterState{Category: CategoryAll, SortKey: SortName}
}

// Command is a filter event. Each command derives the displayed list from
// the full list on its own; commands never compose.
type Command interface {
	// update records the command in the control state.
	update(f *FilterState)
	// derive returns the displayed list for full. It must not modify full.
	derive(full []models.Product) []models.Product
	// identity reports whether derive returns full unchanged.
	identity() bool
}

// Search keeps products whose title contains Text, case-insensitively.
// It starts from the full list and ignores the selected category.
type Search struct {
	Text string
}

func (c Search) update(f *FilterState) { f.SearchText = c.Text }

func (c Search) derive(full []models.Product) []models.Product {
	needle := strings.ToLower(c.Text)
	return filter(full, func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Title), needle)
	})
}

func (c Search) identity() bool { return c.Text == "" }

// SelectCategory keeps products of Category, or everything for CategoryAll.
type SelectCategory struct {
	Category string
}

func (c SelectCategory) value() string {
	if c.Category == "" {
		return CategoryAll
	}
	return c.Category
}

func (c SelectCategory) update(f *FilterState) { f.Category = c.value() }

func (c SelectCategory) derive(full []models.Product) []models.Product {
	if c.identity() {
		return clone(full)
	}
	return byCategory(full, c.value())
}

func (c SelectCategory) identity() bool { return c.value() == CategoryAll }

// Sort reorders a copy of the full list. Ties keep catalog order.
type Sort struct {
	Key SortKey
}

func (c Sort) update(f *FilterState) { f.SortKey = c.Key }

func (c Sort) derive(full []models.Product) []models.Product {
	out := clone(full)
	slices.SortStableFunc(out, c.compare)
	return out
}

func (c Sort) compare(a, b models.Product) int {
	switch c.Key {
	case SortPriceAsc:
		return cmp.Compare(a.Price, b.Price)
	case SortPriceDesc:
		return cmp.Compare(b.Price, a.Price)
	case SortRating:
		return cmp.Compare(b.Rating.Rate, a.Rating.Rate)
	default:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	}
}

func (c Sort) identity() bool { return false }

// PriceRange keeps products priced within [Min, Max]. A nil bound is open.
type PriceRange struct {
	Min *float64
	Max *float64
}

func (c PriceRange) update(f *FilterState) {
	f.MinPrice = c.Min
	f.MaxPrice = c.Max
}

func (c PriceRange) derive(full []models.Product) []models.Product {
	return filter(full, func(p models.Product) bool {
		if c.Min != nil && p.Price < *c.Min {
			return false
		}
		if c.Max != nil && p.Price > *c.Max {
			return false
		}
		return true
	})
}

func (c PriceRange) identity() bool { return c.Min == nil && c.Max == nil }

// ClearFilters restores the full list and empties the price bounds. Search
// text, category and sort controls keep their values.
type ClearFilters struct{}

func (ClearFilters) update(f *FilterState) {
	f.MinPrice = nil
	f.MaxPrice = nil
}

func (ClearFilters) derive(full []models.Product) []models.Product { return clone(full) }

func (ClearFilters) identity() bool { return true }

func byCategory(full []models.Product, category string) []models.Product {
	return filter(full, func(p models.Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

func filter(in []models.Product, keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(in))
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func clone(in []models.Product) []models.Product {
	out := make([]models.Product, len(in))
	copy(out, in)
	return out
}
