package types

// IntentDefaults is the per-intent overlay carried by DefaultsV1: an
// independent {default_stream, profile_defaults} pair selected when a
// caller asks for defaults under a named intent (e.g. "server",
// "desktop") instead of the unqualified fallback.
type IntentDefaults struct {
	DefaultStream  string
	Poisoned       bool
	ProfileDefaults map[string]StringSet
}

func newIntentDefaults() IntentDefaults {
	return IntentDefaults{ProfileDefaults: map[string]StringSet{}}
}

func (d IntentDefaults) Copy() IntentDefaults {
	out := IntentDefaults{DefaultStream: d.DefaultStream, Poisoned: d.Poisoned}
	out.ProfileDefaults = make(map[string]StringSet, len(d.ProfileDefaults))
	for k, v := range d.ProfileDefaults {
		out.ProfileDefaults[k] = v.Copy()
	}
	return out
}

func (d IntentDefaults) Equals(other IntentDefaults) bool {
	if d.DefaultStream != other.DefaultStream || d.Poisoned != other.Poisoned {
		return false
	}
	if len(d.ProfileDefaults) != len(other.ProfileDefaults) {
		return false
	}
	for k, v := range d.ProfileDefaults {
		match, ok := other.ProfileDefaults[k]
		if !ok || !v.Equals(match) {
			return false
		}
	}
	return true
}

// DefaultsV1 is the sole defaults schema version: a module's default
// stream, the default profile set per stream, and per-intent overlays.
// Modified exists solely to break merge ties; it is not a wall-clock
// timestamp.
//
// DefaultStream is empty both when no default stream was ever set and
// when a merge conflict poisoned it; Poisoned distinguishes the two so
// the merger and the default-stream lookups can tell "never configured"
// apart from "conflicting configurations were discarded".
type DefaultsV1 struct {
	ModuleName string
	Modified   int64

	DefaultStream string
	Poisoned      bool

	ProfileDefaults map[string]StringSet

	Intents map[string]IntentDefaults
}

// NewDefaultsV1 constructs an empty defaults document for a module.
func NewDefaultsV1(moduleName string) *DefaultsV1 {
	return &DefaultsV1{
		ModuleName:      moduleName,
		ProfileDefaults: map[string]StringSet{},
		Intents:         map[string]IntentDefaults{},
	}
}

// SetIntentDefaultStream sets (or clears, via empty string) the
// default stream for a named intent overlay.
func (d *DefaultsV1) SetIntentDefaultStream(intent, stream string) {
	entry := d.Intents[intent]
	if entry.ProfileDefaults == nil {
		entry = newIntentDefaults()
	}
	entry.DefaultStream = stream
	entry.Poisoned = false
	d.Intents[intent] = entry
}

// ClearIntentDefaultStream removes the intent-specific default stream.
func (d *DefaultsV1) ClearIntentDefaultStream(intent string) {
	entry, ok := d.Intents[intent]
	if !ok {
		return
	}
	entry.DefaultStream = ""
	entry.Poisoned = false
	d.Intents[intent] = entry
}

// GetIntentDefaultStream returns the default stream configured under
// an intent, or ("", false) if unset or poisoned.
func (d *DefaultsV1) GetIntentDefaultStream(intent string) (string, bool) {
	entry, ok := d.Intents[intent]
	if !ok || entry.Poisoned || entry.DefaultStream == "" {
		return "", false
	}
	return entry.DefaultStream, true
}

func (d *DefaultsV1) Copy() *DefaultsV1 {
	out := NewDefaultsV1(d.ModuleName)
	out.Modified = d.Modified
	out.DefaultStream = d.DefaultStream
	out.Poisoned = d.Poisoned
	for k, v := range d.ProfileDefaults {
		out.ProfileDefaults[k] = v.Copy()
	}
	for k, v := range d.Intents {
		out.Intents[k] = v.Copy()
	}
	return out
}

func (d *DefaultsV1) Equals(other *DefaultsV1) bool {
	if d.ModuleName != other.ModuleName || d.Modified != other.Modified {
		return false
	}
	if d.DefaultStream != other.DefaultStream || d.Poisoned != other.Poisoned {
		return false
	}
	if len(d.ProfileDefaults) != len(other.ProfileDefaults) {
		return false
	}
	for k, v := range d.ProfileDefaults {
		match, ok := other.ProfileDefaults[k]
		if !ok || !v.Equals(match) {
			return false
		}
	}
	if len(d.Intents) != len(other.Intents) {
		return false
	}
	for k, v := range d.Intents {
		match, ok := other.Intents[k]
		if !ok || !v.Equals(match) {
			return false
		}
	}
	return true
}

func (d *DefaultsV1) Validate() error {
	if d.ModuleName == "" {
		return ValidationError("defaults document must name a module")
	}
	return nil
}
