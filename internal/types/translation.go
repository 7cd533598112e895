package types

// Translation carries every locale's TranslationEntry for one
// (module_name, module_stream) pair. Modified breaks merge ties between
// translation documents from different repositories.
type Translation struct {
	ModuleName   string
	ModuleStream string
	Modified     int64

	Entries map[string]TranslationEntry // keyed by locale
}

// NewTranslation constructs an empty translation document.
func NewTranslation(moduleName, moduleStream string) *Translation {
	return &Translation{
		ModuleName:   moduleName,
		ModuleStream: moduleStream,
		Entries:      map[string]TranslationEntry{},
	}
}

// AddEntry inserts or replaces a locale's entry.
func (t *Translation) AddEntry(entry TranslationEntry) {
	t.Entries[entry.Locale] = entry
}

func (t *Translation) Copy() *Translation {
	out := NewTranslation(t.ModuleName, t.ModuleStream)
	out.Modified = t.Modified
	for k, v := range t.Entries {
		out.Entries[k] = v.Copy()
	}
	return out
}

func (t *Translation) Equals(other *Translation) bool {
	if t.ModuleName != other.ModuleName || t.ModuleStream != other.ModuleStream || t.Modified != other.Modified {
		return false
	}
	if len(t.Entries) != len(other.Entries) {
		return false
	}
	for k, v := range t.Entries {
		match, ok := other.Entries[k]
		if !ok || !v.Equals(match) {
			return false
		}
	}
	return true
}

func (t *Translation) Validate() error {
	if t.ModuleName == "" || t.ModuleStream == "" {
		return ValidationError("translation document must name a module and a stream")
	}
	for locale, entry := range t.Entries {
		if locale != entry.Locale {
			return ValidationError("translation entry map key does not match locale")
		}
		if err := entry.Validate(); err != nil {
			return err
		}
	}
	return nil
}
