package service

import "sort"

// sortedKeys iterates maps in the store's lexicographic node order, keeping
// view output deterministic across recomputations.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
