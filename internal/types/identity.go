package types

import "fmt"

// StreamIdentity is the NSVCA tuple shared by all three ModuleStream
// variants. It is factored out of the sum type so identity logic
// (NSVCA/NSVC string formatting, lookups) lives in one place instead of
// being duplicated per version.
type StreamIdentity struct {
	Name    string
	Stream  string
	Version uint64
	Context string
	Arch    string
}

// Copy returns a value copy; StreamIdentity has no reference fields so
// this is trivial, but it exists for uniformity with the rest of the
// "new/copy/equals" leaf API.
func (id StreamIdentity) Copy() StreamIdentity { return id }

// Equals reports whether two identities are the full NSVCA tuple match.
func (id StreamIdentity) Equals(other StreamIdentity) bool {
	return id.Name == other.Name &&
		id.Stream == other.Stream &&
		id.Version == other.Version &&
		id.Context == other.Context &&
		id.Arch == other.Arch
}

// NSVCA returns the canonical "name:stream:version:context:arch" string,
// or false if name or stream is unset.
func (id StreamIdentity) NSVCA() (string, bool) {
	if id.Name == "" || id.Stream == "" {
		return "", false
	}
	return fmt.Sprintf("%s:%s:%d:%s:%s", id.Name, id.Stream, id.Version, id.Context, id.Arch), true
}

// NSVC returns the canonical identifier without the arch component.
func (id StreamIdentity) NSVC() (string, bool) {
	if id.Name == "" || id.Stream == "" {
		return "", false
	}
	return fmt.Sprintf("%s:%s:%d:%s", id.Name, id.Stream, id.Version, id.Context), true
}
