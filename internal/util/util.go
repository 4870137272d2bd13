// Package util has small generic helpers shared across the module.
package util

import "sort"

// SortBy returns a copy of sl sorted with the given less function. The
// original slice is not modified.
func SortBy[T any](sl []T, less func(l, r T) bool) []T {
	sorted := make([]T, len(sl))
	copy(sorted, sl)

	sort.Slice(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	return sorted
}

// InSlice returns whether item is present in sl.
func InSlice[T comparable](item T, sl []T) bool {
	for i := range sl {
		if sl[i] == item {
			return true
		}
	}
	return false
}

// SliceRemove returns a copy of sl with the first occurrence of item
// removed. If item is not present the copy is identical.
func SliceRemove[T comparable](item T, sl []T) []T {
	updated := make([]T, 0, len(sl))
	removed := false

	for i := range sl {
		if !removed && sl[i] == item {
			removed = true
			continue
		}
		updated = append(updated, sl[i])
	}

	return updated
}
