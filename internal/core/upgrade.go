package core

import (
	"modulemd/internal/types"
)

// UpgradeV1ToV2 collapses a V1 stream's flat requires/buildrequires
// tables into a single Dependencies block with singleton stream sets,
// carrying every other field over verbatim. Upgrades always produce a
// new document; the original is untouched.
func UpgradeV1ToV2(v1 *types.ModuleStreamV1) *types.ModuleStreamV2 {
	out := types.NewModuleStreamV2(v1.Identity.Copy())
	out.StreamCommon = v1.StreamCommon.copy()

	dep := types.NewDependencies()
	for module, stream := range v1.Requires {
		dep.Runtime[module] = types.NewStringSet(stream)
	}
	for module, stream := range v1.BuildRequires {
		dep.Buildtime[module] = types.NewStringSet(stream)
	}
	if !dep.IsEmpty() {
		out.AddDependencies(dep)
	}
	return out
}

// UpgradeV2ToV3 upgrades a V2 stream to V3. It is legal only when there
// is exactly one Dependencies block, that block's buildtime set
// contains exactly one "platform" dependency with exactly one stream,
// and every other buildtime/runtime dependency names exactly one
// stream. Context is preserved. Any violation returns UPGRADE_ERROR.
func UpgradeV2ToV3(v2 *types.ModuleStreamV2) (*types.ModuleStreamV3, error) {
	if len(v2.DependenciesList) != 1 {
		return nil, NewError(types.ErrorUpgrade, "v2 stream must have exactly one dependencies block to upgrade to v3")
	}

	out := types.NewModuleStreamV3(v2.Identity.Copy())
	out.StreamCommon = v2.StreamCommon.copy()

	dep := v2.DependenciesList[0]
	platformStreams, hasPlatform := dep.Buildtime["platform"]
	if !hasPlatform || len(platformStreams) != 1 {
		return nil, NewError(types.ErrorUpgrade, "v2 stream must have exactly one platform buildtime dependency with exactly one stream to upgrade to v3")
	}
	out.Platform = platformStreams.Sorted()[0]

	upgraded := types.NewDependencies()
	for module, streams := range dep.Buildtime {
		if module == "platform" {
			continue
		}
		if len(streams) != 1 {
			return nil, NewError(types.ErrorUpgrade, "v2 buildtime dependency on "+module+" has more than one stream, cannot upgrade to v3")
		}
		upgraded.Buildtime[module] = streams.Copy()
	}
	for module, streams := range dep.Runtime {
		if len(streams) != 1 {
			return nil, NewError(types.ErrorUpgrade, "v2 runtime dependency on "+module+" has more than one stream, cannot upgrade to v3")
		}
		upgraded.Runtime[module] = streams.Copy()
	}
	out.Dependency = upgraded
	return out, nil
}

// PackagerToStreamV2 fans a PackagerV3 document out into one V2 stream
// per BuildConfig. Because V2 has no first-class platform field, each
// config's platform is folded into the assembled Dependencies block as
// a "platform" buildtime entry.
func PackagerToStreamV2(p *types.PackagerV3) []*types.ModuleStreamV2 {
	out := make([]*types.ModuleStreamV2, 0, len(p.BuildConfigs))
	for _, cfg := range p.BuildConfigs {
		identity := types.StreamIdentity{Name: p.ModuleName, Stream: p.StreamName, Context: cfg.Context}
		stream := types.NewModuleStreamV2(identity)
		applyPackagerCommon(p, &stream.StreamCommon)
		stream.Build = cfg.Build.Copy()

		dep := cfg.Dependency.Copy()
		if dep.Buildtime == nil {
			dep.Buildtime = map[string]types.StringSet{}
		}
		dep.Buildtime["platform"] = types.NewStringSet(cfg.Platform)
		stream.AddDependencies(dep)
		out = append(out, stream)
	}
	return out
}

// PackagerToStreamV3 fans a PackagerV3 document out into one V3 stream
// per BuildConfig, with the config's platform kept first-class.
func PackagerToStreamV3(p *types.PackagerV3) []*types.ModuleStreamV3 {
	out := make([]*types.ModuleStreamV3, 0, len(p.BuildConfigs))
	for _, cfg := range p.BuildConfigs {
		identity := types.StreamIdentity{Name: p.ModuleName, Stream: p.StreamName, Context: cfg.Context}
		stream := types.NewModuleStreamV3(identity)
		applyPackagerCommon(p, &stream.StreamCommon)
		stream.Build = cfg.Build.Copy()
		stream.Platform = cfg.Platform
		stream.Dependency = cfg.Dependency.Copy()
		out = append(out, stream)
	}
	return out
}

func applyPackagerCommon(p *types.PackagerV3, common *types.StreamCommon) {
	common.SummaryText = p.SummaryText
	common.DescriptionText = p.DescriptionText
	common.Community = p.Community
	common.Documentation = p.Documentation
	common.Tracker = p.Tracker
	common.ModuleLicenseSet = p.ModuleLicenseSet.Copy()
	common.RpmAPISet = p.RpmAPISet.Copy()
	common.RpmFilterSet = p.RpmFilterSet.Copy()
	common.Metadata = p.Metadata.Copy()
	for k, v := range p.ProfileMap {
		common.ProfileMap[k] = v.Copy()
	}
	for k, v := range p.ModuleComponentMap {
		common.ModuleComponentMap[k] = v.Copy()
	}
	for k, v := range p.RpmComponentMap {
		common.RpmComponentMap[k] = v.Copy()
	}
}

// UpgradeDefaultsV1 is the identity upgrade: DefaultsV1 is the only
// defined defaults version, so "upgrading" it is a deep copy.
func UpgradeDefaultsV1(d *types.DefaultsV1) *types.DefaultsV1 {
	return d.Copy()
}

// UpgradeStream upgrades a ModuleStream to the requested target
// version. Downgrades and same-version "upgrades" to anything other
// than identity are rejected with UPGRADE_ERROR.
func UpgradeStream(stream types.ModuleStream, target types.StreamVersion) (types.ModuleStream, error) {
	current := stream.StreamVersion()
	if target < current {
		return nil, NewError(types.ErrorUpgrade, "cannot downgrade a module stream")
	}
	switch current {
	case types.StreamVersionV1:
		v1 := stream.(*types.ModuleStreamV1)
		if target == types.StreamVersionV1 {
			return v1.Copy(), nil
		}
		v2 := UpgradeV1ToV2(v1)
		if target == types.StreamVersionV2 {
			return v2, nil
		}
		return UpgradeV2ToV3(v2)
	case types.StreamVersionV2:
		v2 := stream.(*types.ModuleStreamV2)
		if target == types.StreamVersionV2 {
			return v2.Copy(), nil
		}
		return UpgradeV2ToV3(v2)
	case types.StreamVersionV3:
		if target != types.StreamVersionV3 {
			return nil, NewError(types.ErrorUpgrade, "cannot downgrade a module stream")
		}
		return stream.Copy(), nil
	default:
		return nil, NewError(types.ErrorUpgrade, "unknown module stream version")
	}
}
