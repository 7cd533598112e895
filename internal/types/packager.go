package types

// BuildConfig is one per-context build recipe within a PackagerV3
// document: the platform to build against, plus the dependency block
// assembled for that build.
type BuildConfig struct {
	Context    string
	Platform   string
	Dependency Dependencies
	Build      Buildopts
}

func NewBuildConfig(context, platform string) BuildConfig {
	return BuildConfig{Context: context, Platform: platform, Dependency: NewDependencies()}
}

func (b BuildConfig) Copy() BuildConfig {
	return BuildConfig{Context: b.Context, Platform: b.Platform, Dependency: b.Dependency.Copy(), Build: b.Build.Copy()}
}

func (b BuildConfig) Equals(other BuildConfig) bool {
	return b.Context == other.Context &&
		b.Platform == other.Platform &&
		b.Dependency.Equals(other.Dependency) &&
		b.Build.Equals(other.Build)
}

func (b BuildConfig) Validate() error {
	if b.Context == "" {
		return ValidationError("build config must have a context")
	}
	if len(b.Context) > 10 {
		return ValidationError("build config context must be at most 10 characters")
	}
	if b.Platform == "" {
		return ValidationError("build config must name a platform")
	}
	return nil
}

// PackagerV3 is the build-time authoring dialect introduced alongside
// V3 streams: one document describing every BuildConfig (one per
// context) that a module maintainer wants built, plus the module's
// general metadata. It fans out into one StreamV2 or StreamV3 per
// BuildConfig via the upgrade ladder.
type PackagerV3 struct {
	ModuleName string
	StreamName string

	SummaryText     string
	DescriptionText string
	Community       string
	Documentation   string
	Tracker         string

	ModuleLicenseSet StringSet
	RpmAPISet        StringSet
	RpmFilterSet     StringSet

	ProfileMap         map[string]Profile
	ModuleComponentMap map[string]ModuleComponent
	RpmComponentMap    map[string]RpmComponent

	BuildConfigs map[string]BuildConfig

	Metadata XMDValue
}

// NewPackagerV3 constructs an empty packager document.
func NewPackagerV3(moduleName, streamName string) *PackagerV3 {
	return &PackagerV3{
		ModuleName:         moduleName,
		StreamName:         streamName,
		ModuleLicenseSet:   StringSet{},
		RpmAPISet:          StringSet{},
		RpmFilterSet:       StringSet{},
		ProfileMap:         map[string]Profile{},
		ModuleComponentMap: map[string]ModuleComponent{},
		RpmComponentMap:    map[string]RpmComponent{},
		BuildConfigs:       map[string]BuildConfig{},
		Metadata:           NewXMDMap(),
	}
}

// AddBuildConfig registers a BuildConfig keyed by its context.
func (p *PackagerV3) AddBuildConfig(cfg BuildConfig) {
	p.BuildConfigs[cfg.Context] = cfg
}

func (p *PackagerV3) Copy() *PackagerV3 {
	out := NewPackagerV3(p.ModuleName, p.StreamName)
	out.SummaryText = p.SummaryText
	out.DescriptionText = p.DescriptionText
	out.Community = p.Community
	out.Documentation = p.Documentation
	out.Tracker = p.Tracker
	out.ModuleLicenseSet = p.ModuleLicenseSet.Copy()
	out.RpmAPISet = p.RpmAPISet.Copy()
	out.RpmFilterSet = p.RpmFilterSet.Copy()
	out.Metadata = p.Metadata.Copy()
	for k, v := range p.ProfileMap {
		out.ProfileMap[k] = v.Copy()
	}
	for k, v := range p.ModuleComponentMap {
		out.ModuleComponentMap[k] = v.Copy()
	}
	for k, v := range p.RpmComponentMap {
		out.RpmComponentMap[k] = v.Copy()
	}
	for k, v := range p.BuildConfigs {
		out.BuildConfigs[k] = v.Copy()
	}
	return out
}

func (p *PackagerV3) Equals(other *PackagerV3) bool {
	if p.ModuleName != other.ModuleName || p.StreamName != other.StreamName {
		return false
	}
	if p.SummaryText != other.SummaryText || p.DescriptionText != other.DescriptionText {
		return false
	}
	if !p.ModuleLicenseSet.Equals(other.ModuleLicenseSet) {
		return false
	}
	if len(p.BuildConfigs) != len(other.BuildConfigs) {
		return false
	}
	for k, v := range p.BuildConfigs {
		match, ok := other.BuildConfigs[k]
		if !ok || !v.Equals(match) {
			return false
		}
	}
	return true
}

func (p *PackagerV3) Validate() error {
	if p.ModuleName == "" || p.StreamName == "" {
		return ValidationError("packager document must name a module and a stream")
	}
	if len(p.BuildConfigs) == 0 {
		return ValidationError("packager document must declare at least one build config")
	}
	for _, cfg := range p.BuildConfigs {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	return nil
}
