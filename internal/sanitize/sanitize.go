// Package sanitize cleans a fetched list before it is shown: nameless
// entries are dropped and the rest are ordered by group, then id.
package sanitize

import (
	"cmp"
	"slices"

	"github.com/idilsaglam/fetchlist/internal/model"
)

// Sanitize filters then sorts. The input slice is never modified and the
// result is never nil.
func Sanitize(items []model.ListableItem) []model.ListableItem {
	return Sort(Filter(items))
}

// Filter returns the items whose name is present and non-empty, in input order.
func Filter(items []model.ListableItem) []model.ListableItem {
	out := make([]model.ListableItem, 0, len(items))
	for _, it := range items {
		if it.HasName() {
			out = append(out, it)
		}
	}
	return out
}

// Sort returns a copy ordered by ListID, then ID.
//
// Names are not used as the second key: they carry the same number as the
// id, and a lexical compare would put "Item 123" before "Item 2".
func Sort(items []model.ListableItem) []model.ListableItem {
	out := make([]model.ListableItem, len(items))
	copy(out, items)
	slices.SortStableFunc(out, compare)
	return out
}

func compare(a, b model.ListableItem) int {
	if c := cmp.Compare(a.ListID, b.ListID); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
