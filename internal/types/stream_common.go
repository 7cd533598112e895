package types

// ModuleStream is the sum-type interface dispatched over by the three
// concrete stream versions. Shared identity fields live in
// StreamIdentity (embedded by every variant via StreamCommon); each
// variant adds the fields unique to its mdversion.
type ModuleStream interface {
	StreamVersion() StreamVersion
	StreamIdentity() StreamIdentity
	SetStreamIdentity(StreamIdentity)
	Copy() ModuleStream
	Equals(ModuleStream) bool
	Validate() error

	// Common query surface.
	Summary() string
	Description() string
	ModuleLicenses() StringSet
	ContentLicenses() StringSet
	Profiles() map[string]Profile
	ServiceLevels() map[string]ServiceLevel
	RpmComponents() map[string]RpmComponent
	ModuleComponents() map[string]ModuleComponent
	RpmArtifacts() StringSet
	RpmFilters() StringSet
	XMD() XMDValue
}

// StreamCommon holds the fields shared by all three stream versions.
// Each concrete version embeds it and adds its own dependency
// representation (flat maps for V1, []Dependencies for V2, one
// Dependencies plus Platform for V3).
type StreamCommon struct {
	Identity StreamIdentity

	SummaryText     string
	DescriptionText string
	Community       string
	Documentation   string
	Tracker         string

	ModuleLicenseSet  StringSet
	ContentLicenseSet StringSet

	ProfileMap map[string]Profile

	RpmAPISet       StringSet
	RpmArtifactSet  StringSet
	RpmArtifactMap  map[string]RpmMapEntry
	RpmFilterSet    StringSet

	ServiceLevelMap map[string]ServiceLevel

	ModuleComponentMap map[string]ModuleComponent
	RpmComponentMap    map[string]RpmComponent

	Build Buildopts

	Metadata XMDValue
}

func newStreamCommon(identity StreamIdentity) StreamCommon {
	return StreamCommon{
		Identity:           identity,
		ModuleLicenseSet:   StringSet{},
		ContentLicenseSet:  StringSet{},
		ProfileMap:         map[string]Profile{},
		RpmAPISet:          StringSet{},
		RpmArtifactSet:     StringSet{},
		RpmArtifactMap:     map[string]RpmMapEntry{},
		RpmFilterSet:       StringSet{},
		ServiceLevelMap:    map[string]ServiceLevel{},
		ModuleComponentMap: map[string]ModuleComponent{},
		RpmComponentMap:    map[string]RpmComponent{},
		Metadata:           NewXMDMap(),
	}
}

func (c StreamCommon) copy() StreamCommon {
	out := StreamCommon{
		Identity:          c.Identity.Copy(),
		SummaryText:       c.SummaryText,
		DescriptionText:   c.DescriptionText,
		Community:         c.Community,
		Documentation:     c.Documentation,
		Tracker:           c.Tracker,
		ModuleLicenseSet:  c.ModuleLicenseSet.Copy(),
		ContentLicenseSet: c.ContentLicenseSet.Copy(),
		RpmAPISet:         c.RpmAPISet.Copy(),
		RpmArtifactSet:    c.RpmArtifactSet.Copy(),
		RpmFilterSet:      c.RpmFilterSet.Copy(),
		Build:             c.Build.Copy(),
		Metadata:          c.Metadata.Copy(),
	}
	out.ProfileMap = make(map[string]Profile, len(c.ProfileMap))
	for k, v := range c.ProfileMap {
		out.ProfileMap[k] = v.Copy()
	}
	out.RpmArtifactMap = make(map[string]RpmMapEntry, len(c.RpmArtifactMap))
	for k, v := range c.RpmArtifactMap {
		out.RpmArtifactMap[k] = v.Copy()
	}
	out.ServiceLevelMap = make(map[string]ServiceLevel, len(c.ServiceLevelMap))
	for k, v := range c.ServiceLevelMap {
		out.ServiceLevelMap[k] = v.Copy()
	}
	out.ModuleComponentMap = make(map[string]ModuleComponent, len(c.ModuleComponentMap))
	for k, v := range c.ModuleComponentMap {
		out.ModuleComponentMap[k] = v.Copy()
	}
	out.RpmComponentMap = make(map[string]RpmComponent, len(c.RpmComponentMap))
	for k, v := range c.RpmComponentMap {
		out.RpmComponentMap[k] = v.Copy()
	}
	return out
}

func (c StreamCommon) equals(other StreamCommon) bool {
	if !c.Identity.Equals(other.Identity) {
		return false
	}
	if c.SummaryText != other.SummaryText || c.DescriptionText != other.DescriptionText ||
		c.Community != other.Community || c.Documentation != other.Documentation ||
		c.Tracker != other.Tracker {
		return false
	}
	if !c.ModuleLicenseSet.Equals(other.ModuleLicenseSet) || !c.ContentLicenseSet.Equals(other.ContentLicenseSet) {
		return false
	}
	if !c.RpmAPISet.Equals(other.RpmAPISet) || !c.RpmArtifactSet.Equals(other.RpmArtifactSet) || !c.RpmFilterSet.Equals(other.RpmFilterSet) {
		return false
	}
	if !c.Build.Equals(other.Build) || !c.Metadata.Equals(other.Metadata) {
		return false
	}
	if len(c.ProfileMap) != len(other.ProfileMap) {
		return false
	}
	for k, v := range c.ProfileMap {
		if match, ok := other.ProfileMap[k]; !ok || !v.Equals(match) {
			return false
		}
	}
	if len(c.RpmArtifactMap) != len(other.RpmArtifactMap) {
		return false
	}
	for k, v := range c.RpmArtifactMap {
		if match, ok := other.RpmArtifactMap[k]; !ok || !v.Equals(match) {
			return false
		}
	}
	if len(c.ServiceLevelMap) != len(other.ServiceLevelMap) {
		return false
	}
	for k, v := range c.ServiceLevelMap {
		if match, ok := other.ServiceLevelMap[k]; !ok || !v.Equals(match) {
			return false
		}
	}
	if len(c.ModuleComponentMap) != len(other.ModuleComponentMap) {
		return false
	}
	for k, v := range c.ModuleComponentMap {
		if match, ok := other.ModuleComponentMap[k]; !ok || !v.Equals(match) {
			return false
		}
	}
	if len(c.RpmComponentMap) != len(other.RpmComponentMap) {
		return false
	}
	for k, v := range c.RpmComponentMap {
		if match, ok := other.RpmComponentMap[k]; !ok || !v.Equals(match) {
			return false
		}
	}
	return true
}
