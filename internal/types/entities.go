package types

import "fmt"

// ServiceLevel names a lifecycle phase (rawhide, security, ...) with an
// optional end-of-life date.
type ServiceLevel struct {
	Name string
	EOL  *CalendarDate
}

// NewServiceLevel constructs a ServiceLevel with no EOL set.
func NewServiceLevel(name string) ServiceLevel {
	return ServiceLevel{Name: name}
}

// Copy deep-copies the EOL pointer.
func (s ServiceLevel) Copy() ServiceLevel {
	out := ServiceLevel{Name: s.Name}
	if s.EOL != nil {
		eol := *s.EOL
		out.EOL = &eol
	}
	return out
}

// Equals reports equality: names match and both EOLs are either both
// absent or both present and equal.
func (s ServiceLevel) Equals(other ServiceLevel) bool {
	if s.Name != other.Name {
		return false
	}
	if (s.EOL == nil) != (other.EOL == nil) {
		return false
	}
	if s.EOL != nil && !s.EOL.Equals(*other.EOL) {
		return false
	}
	return true
}

// Validate enforces that a service level has a name.
func (s ServiceLevel) Validate() error {
	if s.Name == "" {
		return ValidationError("service level name must not be empty")
	}
	return nil
}

// Profile is a named RPM install-set, optionally translatable and
// optionally marked as a v3 per-profile default.
type Profile struct {
	Name        string
	Description string
	RPMs        StringSet
	Default     bool
}

// NewProfile constructs a Profile with an empty RPM set.
func NewProfile(name string) Profile {
	return Profile{Name: name}
}

func (p Profile) Copy() Profile {
	return Profile{Name: p.Name, Description: p.Description, RPMs: p.RPMs.Copy(), Default: p.Default}
}

func (p Profile) Equals(other Profile) bool {
	return p.Name == other.Name &&
		p.Description == other.Description &&
		p.RPMs.Equals(other.RPMs) &&
		p.Default == other.Default
}

func (p Profile) Validate() error {
	if p.Name == "" {
		return ValidationError("profile name must not be empty")
	}
	return nil
}

// Buildopts carries build-time RPM configuration: free-form macros, a
// package whitelist, and an arch restriction (empty means "all").
type Buildopts struct {
	RPMMacros     string
	RPMWhitelist  StringSet
	Arches        StringSet
}

func (b Buildopts) Copy() Buildopts {
	return Buildopts{RPMMacros: b.RPMMacros, RPMWhitelist: b.RPMWhitelist.Copy(), Arches: b.Arches.Copy()}
}

func (b Buildopts) Equals(other Buildopts) bool {
	return b.RPMMacros == other.RPMMacros &&
		b.RPMWhitelist.Equals(other.RPMWhitelist) &&
		b.Arches.Equals(other.Arches)
}

func (b Buildopts) IsEmpty() bool {
	return b.RPMMacros == "" && len(b.RPMWhitelist) == 0 && len(b.Arches) == 0
}

// RpmComponent is the RPM variant of a module's build component.
type RpmComponent struct {
	Key             string
	Rationale       string
	Repository      string
	Ref             string
	Cache           string
	Buildorder      int64
	Arches          StringSet
	MultilibArches  StringSet
	Buildroot       bool
	SRPMBuildroot   bool
}

func NewRpmComponent(key string) RpmComponent {
	return RpmComponent{Key: key}
}

func (c RpmComponent) Copy() RpmComponent {
	out := c
	out.Arches = c.Arches.Copy()
	out.MultilibArches = c.MultilibArches.Copy()
	return out
}

func (c RpmComponent) Equals(other RpmComponent) bool {
	return c.Key == other.Key &&
		c.Rationale == other.Rationale &&
		c.Repository == other.Repository &&
		c.Ref == other.Ref &&
		c.Cache == other.Cache &&
		c.Buildorder == other.Buildorder &&
		c.Arches.Equals(other.Arches) &&
		c.MultilibArches.Equals(other.MultilibArches) &&
		c.Buildroot == other.Buildroot &&
		c.SRPMBuildroot == other.SRPMBuildroot
}

func (c RpmComponent) Validate() error {
	if c.Key == "" {
		return ValidationError("rpm component key must not be empty")
	}
	return nil
}

// ModuleComponent is the module variant of a build component: another
// module stream built as a dependency of this one.
type ModuleComponent struct {
	Key        string
	Rationale  string
	Repository string
	Ref        string
	Buildorder int64
}

func NewModuleComponent(key string) ModuleComponent {
	return ModuleComponent{Key: key}
}

func (c ModuleComponent) Copy() ModuleComponent { return c }

func (c ModuleComponent) Equals(other ModuleComponent) bool {
	return c.Key == other.Key &&
		c.Rationale == other.Rationale &&
		c.Repository == other.Repository &&
		c.Ref == other.Ref &&
		c.Buildorder == other.Buildorder
}

func (c ModuleComponent) Validate() error {
	if c.Key == "" {
		return ValidationError("module component key must not be empty")
	}
	return nil
}

// TranslationEntry carries one locale's translated strings for a
// (module, stream) pair.
type TranslationEntry struct {
	Locale              string
	Summary             string
	Description         string
	ProfileDescriptions map[string]string
}

func NewTranslationEntry(locale string) TranslationEntry {
	return TranslationEntry{Locale: locale, ProfileDescriptions: map[string]string{}}
}

func (t TranslationEntry) Copy() TranslationEntry {
	out := TranslationEntry{Locale: t.Locale, Summary: t.Summary, Description: t.Description}
	if t.ProfileDescriptions != nil {
		out.ProfileDescriptions = make(map[string]string, len(t.ProfileDescriptions))
		for k, v := range t.ProfileDescriptions {
			out.ProfileDescriptions[k] = v
		}
	}
	return out
}

func (t TranslationEntry) Equals(other TranslationEntry) bool {
	if t.Locale != other.Locale || t.Summary != other.Summary || t.Description != other.Description {
		return false
	}
	if len(t.ProfileDescriptions) != len(other.ProfileDescriptions) {
		return false
	}
	for k, v := range t.ProfileDescriptions {
		if other.ProfileDescriptions[k] != v {
			return false
		}
	}
	return true
}

func (t TranslationEntry) Validate() error {
	if t.Locale == "" {
		return ValidationError("translation entry locale must not be empty")
	}
	return nil
}

// RpmMapEntry identifies one binary RPM by its NEVRA components. Nevra
// is a derived field; the parser must verify it equals the assembled
// form, raising an INCONSISTENT error on mismatch.
type RpmMapEntry struct {
	Name    string
	Epoch   uint64
	Version string
	Release string
	Arch    string
}

// Nevra assembles the canonical "name-epoch:version-release.arch" form.
func (e RpmMapEntry) Nevra() string {
	return fmt.Sprintf("%s-%d:%s-%s.%s", e.Name, e.Epoch, e.Version, e.Release, e.Arch)
}

func (e RpmMapEntry) Copy() RpmMapEntry { return e }

func (e RpmMapEntry) Equals(other RpmMapEntry) bool {
	return e.Name == other.Name &&
		e.Epoch == other.Epoch &&
		e.Version == other.Version &&
		e.Release == other.Release &&
		e.Arch == other.Arch
}

func (e RpmMapEntry) Validate() error {
	if e.Name == "" || e.Version == "" || e.Release == "" || e.Arch == "" {
		return ValidationError("rpm map entry is missing a required field")
	}
	return nil
}

// Dependencies is one buildtime/runtime dependency block. In V1 and V3
// each module maps to exactly one acceptable stream; V2 allows several.
// The map value is always a StringSet so the same type serves every
// version; validation enforces the per-version stream-count rule.
type Dependencies struct {
	Buildtime map[string]StringSet
	Runtime   map[string]StringSet
}

func NewDependencies() Dependencies {
	return Dependencies{Buildtime: map[string]StringSet{}, Runtime: map[string]StringSet{}}
}

func (d Dependencies) Copy() Dependencies {
	out := Dependencies{Buildtime: map[string]StringSet{}, Runtime: map[string]StringSet{}}
	for k, v := range d.Buildtime {
		out.Buildtime[k] = v.Copy()
	}
	for k, v := range d.Runtime {
		out.Runtime[k] = v.Copy()
	}
	return out
}

func (d Dependencies) Equals(other Dependencies) bool {
	return stringSetMapEquals(d.Buildtime, other.Buildtime) && stringSetMapEquals(d.Runtime, other.Runtime)
}

func (d Dependencies) IsEmpty() bool {
	return len(d.Buildtime) == 0 && len(d.Runtime) == 0
}

func stringSetMapEquals(a, b map[string]StringSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		other, ok := b[k]
		if !ok || !v.Equals(other) {
			return false
		}
	}
	return true
}

// ValidationError is the sentinel Go error used by leaf-entity Validate
// methods before they are wrapped into an errbuilder VALIDATE_ERROR by
// the caller in internal/core. Keeping leaf entities free of the
// errbuilder dependency means internal/types has no ambient-stack
// imports of its own; internal/core is the seam where raw errors become
// the library's public error type.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
