// Package ports declares the interfaces that separate the document
// model and codec (internal/types, internal/core, internal/adapters)
// from their external collaborators: input sources, readers/writers,
// and compression adapters that this module deliberately does not
// implement.
package ports

import "modulemd/internal/types"

// Document is one parsed subdocument: it reports its kind, validates
// itself, and exposes the raw YAML it came from.
type Document interface {
	Kind() types.DocumentKind
	Validate() error
	// RawSource returns the raw YAML bytes this document was parsed
	// from, or nil if it was constructed programmatically. Subdocument
	// diagnostics keep this around for failed documents so callers can
	// inspect what didn't parse.
	RawSource() []byte
}
