package types

// ModuleStreamV3 is the mdversion-3 stream document. Platform is a
// first-class field (rather than a buildtime dependency entry), each
// module dependency accepts exactly one stream, and StaticContext marks
// that Context is informative rather than a uniqueness component during
// solving.
type ModuleStreamV3 struct {
	StreamCommon

	Platform      string
	StaticContext bool
	Dependency    Dependencies
}

// NewModuleStreamV3 constructs an empty V3 stream for the given identity.
func NewModuleStreamV3(identity StreamIdentity) *ModuleStreamV3 {
	return &ModuleStreamV3{
		StreamCommon: newStreamCommon(identity),
		Dependency:   NewDependencies(),
	}
}

func (s *ModuleStreamV3) StreamVersion() StreamVersion       { return StreamVersionV3 }
func (s *ModuleStreamV3) StreamIdentity() StreamIdentity     { return s.Identity }
func (s *ModuleStreamV3) SetStreamIdentity(id StreamIdentity) { s.Identity = id }

func (s *ModuleStreamV3) Summary() string             { return s.SummaryText }
func (s *ModuleStreamV3) Description() string          { return s.DescriptionText }
func (s *ModuleStreamV3) ModuleLicenses() StringSet    { return s.ModuleLicenseSet }
func (s *ModuleStreamV3) ContentLicenses() StringSet   { return s.ContentLicenseSet }
func (s *ModuleStreamV3) Profiles() map[string]Profile { return s.ProfileMap }
func (s *ModuleStreamV3) ServiceLevels() map[string]ServiceLevel {
	return s.ServiceLevelMap
}
func (s *ModuleStreamV3) RpmComponents() map[string]RpmComponent {
	return s.RpmComponentMap
}
func (s *ModuleStreamV3) ModuleComponents() map[string]ModuleComponent {
	return s.ModuleComponentMap
}
func (s *ModuleStreamV3) RpmArtifacts() StringSet { return s.RpmArtifactSet }
func (s *ModuleStreamV3) RpmFilters() StringSet   { return s.RpmFilterSet }
func (s *ModuleStreamV3) XMD() XMDValue           { return s.Metadata }

func (s *ModuleStreamV3) Copy() ModuleStream {
	return &ModuleStreamV3{
		StreamCommon:  s.StreamCommon.copy(),
		Platform:      s.Platform,
		StaticContext: s.StaticContext,
		Dependency:    s.Dependency.Copy(),
	}
}

func (s *ModuleStreamV3) Equals(other ModuleStream) bool {
	o, ok := other.(*ModuleStreamV3)
	if !ok {
		return false
	}
	if !s.StreamCommon.equals(o.StreamCommon) {
		return false
	}
	return s.Platform == o.Platform &&
		s.StaticContext == o.StaticContext &&
		s.Dependency.Equals(o.Dependency)
}

func (s *ModuleStreamV3) Validate() error {
	if s.Identity.Name == "" || s.Identity.Stream == "" {
		return ValidationError("module stream must have a name and a stream")
	}
	if len(s.Identity.Context) > 10 {
		return ValidationError("module stream context must be at most 10 characters in v3")
	}
	for module, streams := range s.Dependency.Buildtime {
		if len(streams) != 1 {
			return ValidationError("v3 dependency on " + module + " must name exactly one stream")
		}
	}
	for module, streams := range s.Dependency.Runtime {
		if len(streams) != 1 {
			return ValidationError("v3 dependency on " + module + " must name exactly one stream")
		}
	}
	for name, profile := range s.ProfileMap {
		if name != profile.Name {
			return ValidationError("profile map key does not match profile name")
		}
		if err := profile.Validate(); err != nil {
			return err
		}
	}
	return nil
}
