package types

// ModuleStreamV1 is the mdversion-1 stream document. Dependencies are a
// flat module-name -> single-stream-name mapping; only one stream is
// ever accepted per module.
type ModuleStreamV1 struct {
	StreamCommon

	Requires      map[string]string
	BuildRequires map[string]string
}

// NewModuleStreamV1 constructs an empty V1 stream for the given identity.
func NewModuleStreamV1(identity StreamIdentity) *ModuleStreamV1 {
	identity.Version = identity.Version // no-op, keeps signature symmetric with V2/V3
	return &ModuleStreamV1{
		StreamCommon:  newStreamCommon(identity),
		Requires:      map[string]string{},
		BuildRequires: map[string]string{},
	}
}

func (s *ModuleStreamV1) StreamVersion() StreamVersion { return StreamVersionV1 }

func (s *ModuleStreamV1) StreamIdentity() StreamIdentity { return s.Identity }

func (s *ModuleStreamV1) SetStreamIdentity(id StreamIdentity) { s.Identity = id }

func (s *ModuleStreamV1) Summary() string             { return s.SummaryText }
func (s *ModuleStreamV1) Description() string          { return s.DescriptionText }
func (s *ModuleStreamV1) ModuleLicenses() StringSet    { return s.ModuleLicenseSet }
func (s *ModuleStreamV1) ContentLicenses() StringSet   { return s.ContentLicenseSet }
func (s *ModuleStreamV1) Profiles() map[string]Profile { return s.ProfileMap }
func (s *ModuleStreamV1) ServiceLevels() map[string]ServiceLevel {
	return s.ServiceLevelMap
}
func (s *ModuleStreamV1) RpmComponents() map[string]RpmComponent {
	return s.RpmComponentMap
}
func (s *ModuleStreamV1) ModuleComponents() map[string]ModuleComponent {
	return s.ModuleComponentMap
}
func (s *ModuleStreamV1) RpmArtifacts() StringSet { return s.RpmArtifactSet }
func (s *ModuleStreamV1) RpmFilters() StringSet   { return s.RpmFilterSet }
func (s *ModuleStreamV1) XMD() XMDValue           { return s.Metadata }

func (s *ModuleStreamV1) Copy() ModuleStream {
	out := &ModuleStreamV1{
		StreamCommon:  s.StreamCommon.copy(),
		Requires:      make(map[string]string, len(s.Requires)),
		BuildRequires: make(map[string]string, len(s.BuildRequires)),
	}
	for k, v := range s.Requires {
		out.Requires[k] = v
	}
	for k, v := range s.BuildRequires {
		out.BuildRequires[k] = v
	}
	return out
}

func (s *ModuleStreamV1) Equals(other ModuleStream) bool {
	o, ok := other.(*ModuleStreamV1)
	if !ok {
		return false
	}
	if !s.StreamCommon.equals(o.StreamCommon) {
		return false
	}
	if len(s.Requires) != len(o.Requires) || len(s.BuildRequires) != len(o.BuildRequires) {
		return false
	}
	for k, v := range s.Requires {
		if o.Requires[k] != v {
			return false
		}
	}
	for k, v := range s.BuildRequires {
		if o.BuildRequires[k] != v {
			return false
		}
	}
	return true
}

func (s *ModuleStreamV1) Validate() error {
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
