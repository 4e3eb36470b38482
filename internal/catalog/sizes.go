package catalog

import (
	"sort"
	"strings"

	"kitstore/internal/domain"
)

// The size field is free text in the source data, so matching and ordering
// go through a canonical form.

var sizeOrder = map[string]int{
	"XS":   0,
	"S":    1,
	"M":    2,
	"L":    3,
	"XL":   4,
	"XXL":  5,
	"XXXL": 6,
}

// CanonicalSize trims and uppercases a size value.
func CanonicalSize(size string) string {
	return strings.ToUpper(strings.TrimSpace(size))
}

// sizeRank orders known sizes XS..XXXL; unknown sizes rank after all known
// ones.
func sizeRank(size string) int {
	if rank, ok := sizeOrder[CanonicalSize(size)]; ok {
		return rank
	}
	return len(sizeOrder)
}

// SortSizes orders canonical sizes for display: known sizes first in garment
// order, unknown sizes after them alphabetically.
func SortSizes(sizes []string) {
	sort.SliceStable(sizes, func(i, j int) bool {
		ri, rj := sizeRank(sizes[i]), sizeRank(sizes[j])
		if ri != rj {
			return ri < rj
		}
		return CanonicalSize(sizes[i]) < CanonicalSize(sizes[j])
	})
}

// DistinctSizes returns the canonical sizes present in the list, ordered for
// display. Used to build the size filter chips.
func DistinctSizes(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		size := CanonicalSize(p.Size)
		if size == "" {
			continue
		}
		if _, ok := seen[size]; ok {
			continue
		}
		seen[size] = struct{}{}
		out = append(out, size)
	}
	SortSizes(out)
	return out
}
