package core

import (
	debversion "github.com/knqyf263/go-deb-version"
)

// rpmVersionCache memoizes parsed versions so a single search_rpms call
// that compares the same "version-release" string against many others
// doesn't reparse it every time. RPM's "version-release" shape is close
// enough to Debian's "upstream_version-debian_revision" shape that
// go-deb-version's comparator gives search_rpms a genuine, dependency-
// ordered secondary sort key instead of a plain string comparison,
// reusing the teacher's own version-comparison approach rather than
// inventing a bespoke one.
type rpmVersionCache struct {
	parsed map[string]debversion.Version
}

func newRPMVersionCache() *rpmVersionCache {
	return &rpmVersionCache{parsed: map[string]debversion.Version{}}
}

func (c *rpmVersionCache) parse(versionRelease string) (debversion.Version, error) {
	if v, ok := c.parsed[versionRelease]; ok {
		return v, nil
	}
	v, err := debversion.NewVersion(versionRelease)
	if err != nil {
		return debversion.Version{}, err
	}
	c.parsed[versionRelease] = v
	return v, nil
}

// compare returns -1, 0 or 1 comparing two "version-release" strings.
// Unparseable input falls back to 0 (treated as equal) so a malformed
// version never blocks the rest of a deterministic sort from
// completing.
func (c *rpmVersionCache) compare(a, b string) int {
	va, errA := c.parse(a)
	vb, errB := c.parse(b)
	if errA != nil || errB != nil {
		return 0
	}
	return va.Compare(vb)
}

// CompareRPMVersionRelease is a one-off comparison of two
// "version-release" strings; callers sorting many entries against each
// other should use RPMVersionComparator instead so parses are memoized.
func CompareRPMVersionRelease(a, b string) int {
	return newRPMVersionCache().compare(a, b)
}

// RPMVersionComparator is a reusable, memoizing comparator suitable for
// sort.Slice over a batch of "version-release" strings.
type RPMVersionComparator struct {
	cache *rpmVersionCache
}

// NewRPMVersionComparator constructs a fresh comparator.
func NewRPMVersionComparator() *RPMVersionComparator {
	return &RPMVersionComparator{cache: newRPMVersionCache()}
}

// Less reports whether a sorts strictly before b.
func (c *RPMVersionComparator) Less(a, b string) bool {
	return c.cache.compare(a, b) < 0
}
