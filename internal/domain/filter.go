package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilterState captures the catalog filter sidebar. Facet slices are OR-ed
// within themselves and AND-ed across facets. An empty facet matches
// everything. The price range only applies when both bounds are set.
type FilterState struct {
	Subcategories []string         `json:"subcategories,omitempty"`
	AgeGroups     []string         `json:"age_groups,omitempty"`
	Materials     []string         `json:"materials,omitempty"`
	UseCases      []string         `json:"use_cases,omitempty"`
	PriceMin      *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax      *decimal.Decimal `json:"price_max,omitempty"`
}

// IsEmpty reports whether no facet and no complete price range is active.
func (f *FilterState) IsEmpty() bool {
	return len(f.Subcategories) == 0 &&
		len(f.AgeGroups) == 0 &&
		len(f.Materials) == 0 &&
		len(f.UseCases) == 0 &&
		!f.hasPriceRange()
}

func (f *FilterState) hasPriceRange() bool {
	return f.PriceMin != nil && f.PriceMax != nil
}

// Normalize swaps an inverted price range so min <= max.
func (f *FilterState) Normalize() {
	if f.hasPriceRange() && f.PriceMin.GreaterThan(*f.PriceMax) {
		f.PriceMin, f.PriceMax = f.PriceMax, f.PriceMin
	}
}

// normalizeFacet lowercases and trims a facet value for comparison.
func normalizeFacet(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func facetMatches(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	normalized := normalizeFacet(value)
	for _, s := range selected {
		if normalizeFacet(s) == normalized {
			return true
		}
	}
	return false
}

func optionalFacetMatches(selected []string, value *string) bool {
	if len(selected) == 0 {
		return true
	}
	if value == nil {
		return false
	}
	return facetMatches(selected, *value)
}

// Matches reports whether p satisfies every active facet and the price range.
// Subcategory matching uses the Other bucket for products without one, and
// the price range is evaluated against the effective price.
func (f *FilterState) Matches(p *Product) bool {
	if !facetMatches(f.Subcategories, p.SubcategoryOrOther()) {
		return false
	}
	if !optionalFacetMatches(f.AgeGroups, p.AgeGroup) {
		return false
	}
	if !optionalFacetMatches(f.Materials, p.Material) {
		return false
	}
	if !optionalFacetMatches(f.UseCases, p.UseCase) {
		return false
	}

	if f.hasPriceRange() {
		price := p.EffectivePrice()
		if price.LessThan(*f.PriceMin) || price.GreaterThan(*f.PriceMax) {
			return false
		}
	}

	return true
}

// Apply returns the products matching the filter, preserving input order.
func (f *FilterState) Apply(products []Product) []Product {
	matched := make([]Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			matched = append(matched, products[i])
		}
	}
	return matched
}
