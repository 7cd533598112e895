package adapters

import (
	"gopkg.in/yaml.v3"

	"modulemd/internal/core"
	"modulemd/internal/shared"
	"modulemd/internal/types"
)

// commonStreamKeys are the mapping keys shared by all three stream
// versions, used by every version's strict-mode unknown-key check in
// addition to its own version-specific keys.
var commonStreamKeys = []string{
	"name", "stream", "version", "context", "arch",
	"summary", "description", "servicelevels", "license", "references",
	"profiles", "api", "filter", "buildopts", "components", "artifacts", "xmd",
}

func addKnown(known map[string]struct{}, keys ...string) {
	for _, k := range keys {
		known[k] = struct{}{}
	}
}

func parseStreamIdentity(fields map[string]*yaml.Node) (types.StreamIdentity, error) {
	var id types.StreamIdentity
	var err error
	if n, ok := fields["name"]; ok {
		if id.Name, err = scalarString(n); err != nil {
			return id, err
		}
	}
	if n, ok := fields["stream"]; ok {
		if id.Stream, err = scalarString(n); err != nil {
			return id, err
		}
	}
	if n, ok := fields["version"]; ok {
		if id.Version, err = scalarUint64(n, false); err != nil {
			return id, err
		}
	}
	if n, ok := fields["context"]; ok {
		if id.Context, err = scalarString(n); err != nil {
			return id, err
		}
	}
	if n, ok := fields["arch"]; ok {
		if id.Arch, err = scalarString(n); err != nil {
			return id, err
		}
	}
	return id, nil
}

func emitStreamIdentityFields(m *yaml.Node, id types.StreamIdentity) {
	putField(m, "name", scalarNode(id.Name))
	putField(m, "stream", scalarNode(id.Stream))
	putField(m, "version", uintNode(id.Version))
	if id.Context != "" {
		putField(m, "context", scalarNode(id.Context))
	}
	if id.Arch != "" {
		putField(m, "arch", scalarNode(id.Arch))
	}
}

func fillStreamCommon(common *types.StreamCommon, fields map[string]*yaml.Node, strict bool) error {
	var err error
	if n, ok := fields["summary"]; ok {
		if common.SummaryText, err = scalarString(n); err != nil {
			return err
		}
	}
	if n, ok := fields["description"]; ok {
		if common.DescriptionText, err = scalarString(n); err != nil {
			return err
		}
	}
	if n, ok := fields["servicelevels"]; ok {
		if common.ServiceLevelMap, err = parseServiceLevels(n, strict); err != nil {
			return err
		}
	}
	if n, ok := fields["license"]; ok {
		lkeys, lfields, err := mappingFields(n)
		if err != nil {
			return err
		}
		if err := checkUnknownKeys(strict, lkeys, map[string]struct{}{"module": {}, "content": {}}); err != nil {
			return err
		}
		if mn, ok := lfields["module"]; ok {
			if common.ModuleLicenseSet, err = stringSet(mn); err != nil {
				return err
			}
		}
		if cn, ok := lfields["content"]; ok {
			if common.ContentLicenseSet, err = stringSet(cn); err != nil {
				return err
			}
		}
	}
	if n, ok := fields["references"]; ok {
		rkeys, rfields, err := mappingFields(n)
		if err != nil {
			return err
		}
		known := map[string]struct{}{"community": {}, "documentation": {}, "tracker": {}}
		if err := checkUnknownKeys(strict, rkeys, known); err != nil {
			return err
		}
		if rn, ok := rfields["community"]; ok {
			if common.Community, err = scalarString(rn); err != nil {
				return err
			}
		}
		if rn, ok := rfields["documentation"]; ok {
			if common.Documentation, err = scalarString(rn); err != nil {
				return err
			}
		}
		if rn, ok := rfields["tracker"]; ok {
			if common.Tracker, err = scalarString(rn); err != nil {
				return err
			}
		}
	}
	if n, ok := fields["profiles"]; ok {
		if common.ProfileMap, err = parseProfiles(n, strict); err != nil {
			return err
		}
	}
	if n, ok := fields["api"]; ok {
		akeys, afields, err := mappingFields(n)
		if err != nil {
			return err
		}
		if err := checkUnknownKeys(strict, akeys, map[string]struct{}{"rpms": {}}); err != nil {
			return err
		}
		if an, ok := afields["rpms"]; ok {
			if common.RpmAPISet, err = stringSet(an); err != nil {
				return err
			}
		}
	}
	if n, ok := fields["filter"]; ok {
		fkeys, ffields, err := mappingFields(n)
		if err != nil {
			return err
		}
		if err := checkUnknownKeys(strict, fkeys, map[string]struct{}{"rpms": {}}); err != nil {
			return err
		}
		if fn, ok := ffields["rpms"]; ok {
			if common.RpmFilterSet, err = stringSet(fn); err != nil {
				return err
			}
		}
	}
	if n, ok := fields["buildopts"]; ok {
		if common.Build, err = parseBuildopts(n, strict); err != nil {
			return err
		}
	}
	if n, ok := fields["components"]; ok {
		ckeys, cfields, err := mappingFields(n)
		if err != nil {
			return err
		}
		if err := checkUnknownKeys(strict, ckeys, map[string]struct{}{"rpms": {}, "modules": {}}); err != nil {
			return err
		}
		if cn, ok := cfields["rpms"]; ok {
			if common.RpmComponentMap, err = parseRpmComponents(cn, strict); err != nil {
				return err
			}
		}
		if cn, ok := cfields["modules"]; ok {
			if common.ModuleComponentMap, err = parseModuleComponents(cn, strict); err != nil {
				return err
			}
		}
	}
	if n, ok := fields["artifacts"]; ok {
		akeys, afields, err := mappingFields(n)
		if err != nil {
			return err
		}
		if err := checkUnknownKeys(strict, akeys, map[string]struct{}{"rpms": {}, "rpm-map": {}}); err != nil {
			return err
		}
		if an, ok := afields["rpms"]; ok {
			if common.RpmArtifactSet, err = stringSet(an); err != nil {
				return err
			}
		}
		if an, ok := afields["rpm-map"]; ok {
			if common.RpmArtifactMap, err = parseRpmArtifactMap(an, strict); err != nil {
				return err
			}
		}
	}
	if n, ok := fields["xmd"]; ok {
		if common.Metadata, err = xmdFromNode(n); err != nil {
			return err
		}
	}
	return nil
}

// emitStreamCommonFields appends the shared stream fields to m in
// canonical order, skipping empty ones.
func emitStreamCommonFields(m *yaml.Node, common types.StreamCommon) {
	if common.SummaryText != "" {
		putField(m, "summary", scalarNode(common.SummaryText))
	}
	if common.DescriptionText != "" {
		putField(m, "description", scalarNode(common.DescriptionText))
	}
	putField(m, "servicelevels", emitServiceLevels(common.ServiceLevelMap))

	if len(common.ModuleLicenseSet) > 0 || len(common.ContentLicenseSet) > 0 {
		license := newMappingNode()
		if len(common.ModuleLicenseSet) > 0 {
			putField(license, "module", flowStringSeqNode(common.ModuleLicenseSet.Sorted()))
		}
		if len(common.ContentLicenseSet) > 0 {
			putField(license, "content", flowStringSeqNode(common.ContentLicenseSet.Sorted()))
		}
		putField(m, "license", license)
	}

	if common.Community != "" || common.Documentation != "" || common.Tracker != "" {
		references := newMappingNode()
		if common.Community != "" {
			putField(references, "community", scalarNode(common.Community))
		}
		if common.Documentation != "" {
			putField(references, "documentation", scalarNode(common.Documentation))
		}
		if common.Tracker != "" {
			putField(references, "tracker", scalarNode(common.Tracker))
		}
		putField(m, "references", references)
	}

	putField(m, "profiles", emitProfiles(common.ProfileMap))

	if len(common.RpmAPISet) > 0 {
		api := newMappingNode()
		putField(api, "rpms", flowStringSeqNode(common.RpmAPISet.Sorted()))
		putField(m, "api", api)
	}
	if len(common.RpmFilterSet) > 0 {
		filter := newMappingNode()
		putField(filter, "rpms", flowStringSeqNode(common.RpmFilterSet.Sorted()))
		putField(m, "filter", filter)
	}
	putField(m, "buildopts", emitBuildopts(common.Build))

	if len(common.RpmComponentMap) > 0 || len(common.ModuleComponentMap) > 0 {
		components := newMappingNode()
		putField(components, "rpms", emitRpmComponents(common.RpmComponentMap))
		putField(components, "modules", emitModuleComponents(common.ModuleComponentMap))
		putField(m, "components", components)
	}

	if len(common.RpmArtifactSet) > 0 || len(common.RpmArtifactMap) > 0 {
		artifacts := newMappingNode()
		if len(common.RpmArtifactSet) > 0 {
			putField(artifacts, "rpms", flowStringSeqNode(common.RpmArtifactSet.Sorted()))
		}
		putField(artifacts, "rpm-map", emitRpmArtifactMap(common.RpmArtifactMap))
		putField(m, "artifacts", artifacts)
	}

	if !common.Metadata.IsEmpty() {
		putField(m, "xmd", xmdToNode(common.Metadata))
	}
}

func parseModuleStreamV1(fields map[string]*yaml.Node, keys []string, strict bool) (*types.ModuleStreamV1, error) {
	known := map[string]struct{}{}
	addKnown(known, commonStreamKeys...)
	addKnown(known, "requires", "buildrequires")
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return nil, err
	}
	identity, err := parseStreamIdentity(fields)
	if err != nil {
		return nil, err
	}
	out := types.NewModuleStreamV1(identity)
	if err := fillStreamCommon(&out.StreamCommon, fields, strict); err != nil {
		return nil, err
	}
	if n, ok := fields["requires"]; ok {
		rkeys, rfields, err := mappingFields(n)
		if err != nil {
			return nil, err
		}
		for _, k := range rkeys {
			v, err := scalarString(rfields[k])
			if err != nil {
				return nil, err
			}
			out.Requires[k] = v
		}
	}
	if n, ok := fields["buildrequires"]; ok {
		bkeys, bfields, err := mappingFields(n)
		if err != nil {
			return nil, err
		}
		for _, k := range bkeys {
			v, err := scalarString(bfields[k])
			if err != nil {
				return nil, err
			}
			out.BuildRequires[k] = v
		}
	}
	return out, nil
}

func emitModuleStreamV1(s *types.ModuleStreamV1) (*yaml.Node, error) {
	if err := core.ValidateStream(noopCtx(), s); err != nil {
		return nil, err
	}
	m := newMappingNode()
	emitStreamIdentityFields(m, s.Identity)
	emitStreamCommonFields(m, s.StreamCommon)
	if len(s.Requires) > 0 {
		req := newMappingNode()
		for _, k := range shared.SortedKeys(s.Requires) {
			req.Content = append(req.Content, scalarNode(k), scalarNode(s.Requires[k]))
		}
		putField(m, "requires", req)
	}
	if len(s.BuildRequires) > 0 {
		breq := newMappingNode()
		for _, k := range shared.SortedKeys(s.BuildRequires) {
			breq.Content = append(breq.Content, scalarNode(k), scalarNode(s.BuildRequires[k]))
		}
		putField(m, "buildrequires", breq)
	}
	return m, nil
}

func parseModuleStreamV2(fields map[string]*yaml.Node, keys []string, strict bool) (*types.ModuleStreamV2, error) {
	known := map[string]struct{}{}
	addKnown(known, commonStreamKeys...)
	addKnown(known, "dependencies")
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return nil, err
	}
	identity, err := parseStreamIdentity(fields)
	if err != nil {
		return nil, err
	}
	out := types.NewModuleStreamV2(identity)
	if err := fillStreamCommon(&out.StreamCommon, fields, strict); err != nil {
		return nil, err
	}
	if n, ok := fields["dependencies"]; ok {
		if n.Kind != yaml.SequenceNode {
			return nil, core.NewError(types.ErrorYAMLParse, "v2 dependencies must be a sequence of dependency blocks")
		}
		for _, item := range n.Content {
			dep, err := parseDependencies(item, strict)
			if err != nil {
				return nil, err
			}
			out.AddDependencies(dep)
		}
	}
	return out, nil
}

func emitModuleStreamV2(s *types.ModuleStreamV2) (*yaml.Node, error) {
	if err := core.ValidateStream(noopCtx(), s); err != nil {
		return nil, err
	}
	m := newMappingNode()
	emitStreamIdentityFields(m, s.Identity)
	emitStreamCommonFields(m, s.StreamCommon)
	if len(s.DependenciesList) > 0 {
		seqItems := make([]*yaml.Node, 0, len(s.DependenciesList))
		for _, dep := range s.DependenciesList {
			seqItems = append(seqItems, emitDependencies(dep))
		}
		putField(m, "dependencies", blockSeqNode(seqItems...))
	}
	return m, nil
}

func parseModuleStreamV3(fields map[string]*yaml.Node, keys []string, strict bool) (*types.ModuleStreamV3, error) {
	known := map[string]struct{}{}
	addKnown(known, commonStreamKeys...)
	addKnown(known, "dependencies", "static_context")
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return nil, err
	}
	identity, err := parseStreamIdentity(fields)
	if err != nil {
		return nil, err
	}
	out := types.NewModuleStreamV3(identity)
	if err := fillStreamCommon(&out.StreamCommon, fields, strict); err != nil {
		return nil, err
	}
	if n, ok := fields["static_context"]; ok {
		if out.StaticContext, err = scalarBool(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["dependencies"]; ok {
		dkeys, dfields, err := mappingFields(n)
		if err != nil {
			return nil, err
		}
		depKnown := map[string]struct{}{"buildtime": {}, "runtime": {}, "platform": {}}
		if err := checkUnknownKeys(strict, dkeys, depKnown); err != nil {
			return nil, err
		}
		// Keys were already checked against depKnown above, which
		// includes "platform".
		dep, err := parseDependencies(n, false)
		if err != nil {
			return nil, err
		}
		out.Dependency = dep
		if pn, ok := dfields["platform"]; ok {
			if out.Platform, err = scalarString(pn); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func emitModuleStreamV3(s *types.ModuleStreamV3) (*yaml.Node, error) {
	if err := core.ValidateStream(noopCtx(), s); err != nil {
		return nil, err
	}
	m := newMappingNode()
	emitStreamIdentityFields(m, s.Identity)
	emitStreamCommonFields(m, s.StreamCommon)
	if s.Platform != "" || !s.Dependency.IsEmpty() {
		dep := emitDependencies(s.Dependency)
		if s.Platform != "" {
			dep.Content = append([]*yaml.Node{scalarNode("platform"), scalarNode(s.Platform)}, dep.Content...)
		}
		putField(m, "dependencies", dep)
	}
	if s.StaticContext {
		putField(m, "static_context", boolNode(true))
	}
	return m, nil
}
