package common

import "sort"

// UnknownStr is the fallback rendering for values outside an enumeration.
const UnknownStr = "unknown"

// SortedKeys returns the keys of m in ascending order. Map iteration is
// randomized; every user-facing listing goes through this instead.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
