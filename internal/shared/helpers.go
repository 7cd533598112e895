// Package shared provides small pure utility functions used across
// multiple packages: deterministic ordering and glob matching for the
// index's search operations.
package shared

import (
	"sort"

	"github.com/gobwas/glob"

	"modulemd/internal/types"
)

// SortedKeys returns a map's string keys in ascending lexicographic
// order, used throughout the codec and index to make map iteration
// order deterministic on emit and on search.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CompareStreamIdentity orders two identities the way search_streams
// must return its results: module name ascending, then stream name
// ascending, then version descending, then context ascending, then
// arch ascending.
func CompareStreamIdentity(a, b types.StreamIdentity) int {
	if a.Name != b.Name {
		return compareString(a.Name, b.Name)
	}
	if a.Stream != b.Stream {
		return compareString(a.Stream, b.Stream)
	}
	if a.Version != b.Version {
		if a.Version > b.Version {
			return -1
		}
		return 1
	}
	if a.Context != b.Context {
		return compareString(a.Context, b.Context)
	}
	return compareString(a.Arch, b.Arch)
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MatchGlob compiles and evaluates a shell-style glob pattern ('*' and
// '?' wildcards) against a value, used by search_streams_by_nsvca_glob
// and search_rpms' NEVRA glob matching. An empty pattern matches
// everything (the "no filter" case).
func MatchGlob(pattern, value string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	compiled, err := glob.Compile(pattern)
	if err != nil {
		return false, err
	}
	return compiled.Match(value), nil
}
