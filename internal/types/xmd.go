package types

// XMDKind tags the variant held by an XMDValue.
type XMDKind int

const (
	XMDNull XMDKind = iota
	XMDBool
	XMDString
	XMDMap
	XMDSeq
)

// XMDValue is the recursive dynamic value used to round-trip arbitrary
// user metadata (the "xmd:" subtree) without the codec having any
// opinion about its shape. Scalars are heuristically typed: a YAML null
// becomes XMDNull, a bare "TRUE"/"FALSE" literal becomes a bool, and
// everything else stays a string.
//
// Map preserves insertion order on parse (needed so Equals can compare
// two trees built from differently-ordered YAML) but the emitter always
// sorts keys lexicographically before writing.
type XMDValue struct {
	Kind XMDKind
	Bool bool
	Str  string
	Map  []XMDMapEntry
	Seq  []XMDValue
}

// XMDMapEntry is one key/value pair of an XMDValue in Map mode.
type XMDMapEntry struct {
	Key   string
	Value XMDValue
}

// NewXMDNull returns the null variant.
func NewXMDNull() XMDValue { return XMDValue{Kind: XMDNull} }

// NewXMDBool returns the bool variant.
func NewXMDBool(b bool) XMDValue { return XMDValue{Kind: XMDBool, Bool: b} }

// NewXMDString returns the string variant.
func NewXMDString(s string) XMDValue { return XMDValue{Kind: XMDString, Str: s} }

// NewXMDSeq returns a sequence variant wrapping the given elements.
func NewXMDSeq(values ...XMDValue) XMDValue {
	return XMDValue{Kind: XMDSeq, Seq: append([]XMDValue{}, values...)}
}

// NewXMDMap returns an empty map variant.
func NewXMDMap() XMDValue {
	return XMDValue{Kind: XMDMap}
}

// Set inserts or replaces a key in a Map-variant value. It is a no-op on
// non-map variants.
func (v *XMDValue) Set(key string, value XMDValue) {
	if v.Kind != XMDMap {
		return
	}
	for i := range v.Map {
		if v.Map[i].Key == key {
			v.Map[i].Value = value
			return
		}
	}
	v.Map = append(v.Map, XMDMapEntry{Key: key, Value: value})
}

// Get looks up a key in a Map-variant value.
func (v XMDValue) Get(key string) (XMDValue, bool) {
	if v.Kind != XMDMap {
		return XMDValue{}, false
	}
	for _, entry := range v.Map {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return XMDValue{}, false
}

// IsEmpty reports whether the value carries no content: null, empty
// string, an empty map, or an empty sequence.
func (v XMDValue) IsEmpty() bool {
	switch v.Kind {
	case XMDNull:
		return true
	case XMDString:
		return v.Str == ""
	case XMDMap:
		return len(v.Map) == 0
	case XMDSeq:
		return len(v.Seq) == 0
	default:
		return false
	}
}

// Copy deep-copies the value tree.
func (v XMDValue) Copy() XMDValue {
	out := XMDValue{Kind: v.Kind, Bool: v.Bool, Str: v.Str}
	if v.Map != nil {
		out.Map = make([]XMDMapEntry, len(v.Map))
		for i, entry := range v.Map {
			out.Map[i] = XMDMapEntry{Key: entry.Key, Value: entry.Value.Copy()}
		}
	}
	if v.Seq != nil {
		out.Seq = make([]XMDValue, len(v.Seq))
		for i, elem := range v.Seq {
			out.Seq[i] = elem.Copy()
		}
	}
	return out
}

// Equals reports structural equality, ignoring map key order.
func (v XMDValue) Equals(other XMDValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case XMDNull:
		return true
	case XMDBool:
		return v.Bool == other.Bool
	case XMDString:
		return v.Str == other.Str
	case XMDSeq:
		if len(v.Seq) != len(other.Seq) {
			return false
		}
		for i := range v.Seq {
			if !v.Seq[i].Equals(other.Seq[i]) {
				return false
			}
		}
		return true
	case XMDMap:
		if len(v.Map) != len(other.Map) {
			return false
		}
		for _, entry := range v.Map {
			match, ok := other.Get(entry.Key)
			if !ok || !entry.Value.Equals(match) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SortedKeys returns the map's keys in lexicographic order, the order
// the emitter must write them in to produce deterministic round-trips.
func (v XMDValue) SortedKeys() []string {
	if v.Kind != XMDMap {
		return nil
	}
	keys := make([]string, len(v.Map))
	for i, entry := range v.Map {
		keys[i] = entry.Key
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
