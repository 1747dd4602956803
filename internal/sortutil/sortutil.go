// Package sortutil holds the path ordering used for every listing the tool
// emits: plain byte-wise string order, no case folding or path-aware rules.
package sortutil

import "slices"

// SortPaths returns a new slice containing the input paths sorted
// lexicographically. The original slice is not modified.
func SortPaths(paths []string) []string {
	out := slices.Clone(paths)
	slices.Sort(out)
	return out
}

// IsSorted reports whether every adjacent pair a, b in paths has a <= b.
func IsSorted(paths []string) bool {
	return slices.IsSorted(paths)
}
