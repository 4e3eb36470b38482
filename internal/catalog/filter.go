// Package catalog derives the rendered product list: a pure filter/sort pass
// over the raw fetched list plus the current selection, and a growing render
// window for incremental display.
package catalog

import (
	"sort"
	"strings"

	"kitstore/internal/domain"
)

type Sort int

const (
	SortDefault Sort = iota
	SortPriceAsc
	SortPriceDesc
	SortNameAsc
)

// Selection is the full set of filter dimensions. Empty (or "all") values
// match everything on that dimension.
type Selection struct {
	CategorySlug string
	Size         string
	Brand        string
	League       string
	Club         string
	Sort         Sort
}

const matchAll = "all"

// Apply filters products with an AND-chain over all selected dimensions and
// sorts the result. The input slice is never mutated.
func Apply(products []domain.Product, sel Selection) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matches(p, sel) {
			continue
		}
		out = append(out, p)
	}

	switch sel.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

func matches(p domain.Product, sel Selection) bool {
	if active(sel.CategorySlug) {
		if p.Category == nil || !strings.EqualFold(p.Category.Slug, sel.CategorySlug) {
			return false
		}
	}
	if active(sel.Size) && CanonicalSize(p.Size) != CanonicalSize(sel.Size) {
		return false
	}
	if active(sel.Brand) && !strings.EqualFold(strings.TrimSpace(p.Brand), strings.TrimSpace(sel.Brand)) {
		return false
	}
	if active(sel.League) && !strings.EqualFold(strings.TrimSpace(p.League), strings.TrimSpace(sel.League)) {
		return false
	}
	if active(sel.Club) && !strings.Contains(strings.ToLower(p.Team), strings.ToLower(strings.TrimSpace(sel.Club))) {
		return false
	}
	return true
}

func active(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && !strings.EqualFold(v, matchAll)
}
