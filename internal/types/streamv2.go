package types

// ModuleStreamV2 is the mdversion-2 stream document, the canonical
// "stable" form and the target of most upgrades. Its dependencies are
// an array of Dependencies blocks, each allowing multiple acceptable
// streams per module.
type ModuleStreamV2 struct {
	StreamCommon

	DependenciesList []Dependencies
}

// NewModuleStreamV2 constructs an empty V2 stream for the given identity.
func NewModuleStreamV2(identity StreamIdentity) *ModuleStreamV2 {
	return &ModuleStreamV2{StreamCommon: newStreamCommon(identity)}
}

func (s *ModuleStreamV2) StreamVersion() StreamVersion      { return StreamVersionV2 }
func (s *ModuleStreamV2) StreamIdentity() StreamIdentity    { return s.Identity }
func (s *ModuleStreamV2) SetStreamIdentity(id StreamIdentity) { s.Identity = id }

func (s *ModuleStreamV2) Summary() string             { return s.SummaryText }
func (s *ModuleStreamV2) Description() string          { return s.DescriptionText }
func (s *ModuleStreamV2) ModuleLicenses() StringSet    { return s.ModuleLicenseSet }
func (s *ModuleStreamV2) ContentLicenses() StringSet   { return s.ContentLicenseSet }
func (s *ModuleStreamV2) Profiles() map[string]Profile { return s.ProfileMap }
func (s *ModuleStreamV2) ServiceLevels() map[string]ServiceLevel {
	return s.ServiceLevelMap
}
func (s *ModuleStreamV2) RpmComponents() map[string]RpmComponent {
	return s.RpmComponentMap
}
func (s *ModuleStreamV2) ModuleComponents() map[string]ModuleComponent {
	return s.ModuleComponentMap
}
func (s *ModuleStreamV2) RpmArtifacts() StringSet { return s.RpmArtifactSet }
func (s *ModuleStreamV2) RpmFilters() StringSet   { return s.RpmFilterSet }
func (s *ModuleStreamV2) XMD() XMDValue           { return s.Metadata }

// AddDependencies appends a Dependencies block.
func (s *ModuleStreamV2) AddDependencies(dep Dependencies) {
	s.DependenciesList = append(s.DependenciesList, dep)
}

func (s *ModuleStreamV2) Copy() ModuleStream {
	out := &ModuleStreamV2{StreamCommon: s.StreamCommon.copy()}
	out.DependenciesList = make([]Dependencies, len(s.DependenciesList))
	for i, d := range s.DependenciesList {
		out.DependenciesList[i] = d.Copy()
	}
	return out
}

func (s *ModuleStreamV2) Equals(other ModuleStream) bool {
	o, ok := other.(*ModuleStreamV2)
	if !ok {
		return false
	}
	if !s.StreamCommon.equals(o.StreamCommon) {
		return false
	}
	if len(s.DependenciesList) != len(o.DependenciesList) {
		return false
	}
	for i := range s.DependenciesList {
		if !s.DependenciesList[i].Equals(o.DependenciesList[i]) {
			return false
		}
	}
	return true
}

func (s *ModuleStreamV2) Validate() error {
	if s.Identity.Name == "" || s.Identity.Stream == "" {
		return ValidationError("module stream must have a name and a stream")
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
