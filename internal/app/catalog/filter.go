package catalog

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sentinel values accepted by Criteria fields.
const (
	// FilterAll bypasses the price or category filter.
	FilterAll = "all"

	// SortNone preserves the input order.
	SortNone = "none"
	// SortPrice orders by display price ascending.
	SortPrice = "price"
	// SortPriceDesc orders by display price descending.
	SortPriceDesc = "-price"
	// SortTitle orders by title A→Z using locale-aware collation.
	SortTitle = "title"
	// SortTitleDesc orders by title Z→A.
	SortTitleDesc = "-title"
)

// Criteria is the full set of filter/sort inputs.
//
// Price accepts three shapes against the display price in minor units:
// "under-N" (price < N), "over-N" (price > N), and "N-M" (N ≤ price ≤ M).
// "all" or empty disables price filtering, as does an unparseable value.
type Criteria struct {
	Query    string
	Category string
	Price    string
	Sort     string
}

// titleCollator performs locale-aware title comparison, matching the
// behavior of the UI's collation-based sort.
var titleCollator = collate.New(language.English, collate.Loose)

// Filter derives the filtered, ordered subset of products described by the
// criteria. It is a pure function: the input slice is never mutated, the sort
// is stable, and identical inputs yield identical output.
func Filter(products []Product, c Criteria) []Product {
	out := make([]Product, 0, len(products))

	priceMatch, priceActive := pricePredicate(c.Price)

	for _, p := range products {
		if !matchesQuery(p, c.Query) {
			continue
		}
		if !matchesCategory(p, c.Category) {
			continue
		}
		if priceActive {
			price, ok := p.ListedPrice()
			if !ok || !priceMatch(price) {
				continue
			}
		}
		out = append(out, p)
	}

	sortProducts(out, c.Sort)

	return out
}

// matchesQuery reports whether the product matches the free-text query:
// a case-insensitive substring of the title or of any category handle/name.
func matchesQuery(p Product, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}

	for _, cat := range p.Categories {
		if strings.Contains(strings.ToLower(cat.Handle), query) ||
			strings.Contains(strings.ToLower(cat.Name), query) {
			return true
		}
	}

	return false
}

// matchesCategory reports whether the product belongs to the given category.
// The "all" sentinel and the empty string bypass the filter.
func matchesCategory(p Product, category string) bool {
	if category == "" || category == FilterAll {
		return true
	}

	for _, cat := range p.Categories {
		if cat.Handle == category || cat.ID == category {
			return true
		}
	}

	return false
}

// pricePredicate parses the price filter value. active is false when the
// filter is "all", empty, or unparseable; products lacking a price are
// excluded only while a predicate is active.
func pricePredicate(filter string) (match func(int64) bool, active bool) {
	if filter == "" || filter == FilterAll {
		return nil, false
	}

	if after, ok := strings.CutPrefix(filter, "under-"); ok {
		limit, err := strconv.ParseInt(after, 10, 64)
		if err != nil {
			return nil, false
		}
		return func(price int64) bool { return price < limit }, true
	}

	if after, ok := strings.CutPrefix(filter, "over-"); ok {
		limit, err := strconv.ParseInt(after, 10, 64)
		if err != nil {
			return nil, false
		}
		return func(price int64) bool { return price > limit }, true
	}

	if minStr, maxStr, ok := strings.Cut(filter, "-"); ok {
		min, errMin := strconv.ParseInt(minStr, 10, 64)
		max, errMax := strconv.ParseInt(maxStr, 10, 64)
		if errMin != nil || errMax != nil {
			return nil, false
		}
		return func(price int64) bool { return price >= min && price <= max }, true
	}

	return nil, false
}

// sortProducts orders the slice in place by the given sort key.
// The sort is stable, so equal keys keep their input order. Products without
// a price sort as if priced 0.
func sortProducts(products []Product, sortKey string) {
	if sortKey == "" || sortKey == SortNone {
		return
	}

	priceOf := func(p Product) int64 {
		price, _ := p.ListedPrice()
		return price
	}

	switch sortKey {
	case SortPrice:
		sort.SliceStable(products, func(i, j int) bool {
			return priceOf(products[i]) < priceOf(products[j])
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return priceOf(products[i]) > priceOf(products[j])
		})
	case SortTitle:
		sort.SliceStable(products, func(i, j int) bool {
			return titleCollator.CompareString(products[i].Title, products[j].Title) < 0
		})
	case SortTitleDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return titleCollator.CompareString(products[i].Title, products[j].Title) > 0
		})
	}
}
