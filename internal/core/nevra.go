package core

import (
	"modulemd/internal/types"
)

// CheckNevraConsistency verifies that a parsed RpmMapEntry's nevra
// field equals the assembled "name-epoch:version-release.arch" form,
// returning an INCONSISTENT error on mismatch.
func CheckNevraConsistency(entry types.RpmMapEntry, parsedNevra string) error {
	assembled := entry.Nevra()
	if assembled != parsedNevra {
		return NewError(types.ErrorYAMLInconsistent,
			"rpm-map nevra \""+parsedNevra+"\" does not match assembled form \""+assembled+"\"")
	}
	return nil
}
