package common

import (
	"maps"
	"slices"
)

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}

// Invert swaps keys and values. When two keys share a value, the key
// that sorts last wins.
func Invert[M ~map[string]string](m M) map[string]string {
	out := make(map[string]string, len(m))

	for _, k := range SortedKeys(m) {
		out[m[k]] = k
	}

	return out
}
