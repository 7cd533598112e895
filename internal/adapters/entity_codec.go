package adapters

import (
	"gopkg.in/yaml.v3"

	"modulemd/internal/core"
	"modulemd/internal/shared"
	"modulemd/internal/types"
)

func parseServiceLevel(name string, node *yaml.Node, strict bool) (types.ServiceLevel, error) {
	sl := types.NewServiceLevel(name)
	if node == nil {
		return sl, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return sl, err
	}
	if err := checkUnknownKeys(strict, keys, map[string]struct{}{"eol": {}}); err != nil {
		return sl, err
	}
	if eolNode, ok := fields["eol"]; ok {
		raw, err := scalarString(eolNode)
		if err != nil {
			return sl, err
		}
		date, err := types.ParseCalendarDate(raw)
		if err != nil {
			return sl, core.WrapError(types.ErrorYAMLParse, "invalid servicelevel eol date", err)
		}
		sl.EOL = &date
	}
	return sl, nil
}

func emitServiceLevel(sl types.ServiceLevel) *yaml.Node {
	m := newMappingNode()
	if sl.EOL != nil {
		putField(m, "eol", scalarNode(sl.EOL.String()))
	}
	return m
}

func parseServiceLevels(node *yaml.Node, strict bool) (map[string]types.ServiceLevel, error) {
	out := map[string]types.ServiceLevel{}
	if node == nil {
		return out, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		sl, err := parseServiceLevel(k, fields[k], strict)
		if err != nil {
			return nil, err
		}
		out[k] = sl
	}
	return out, nil
}

func emitServiceLevels(m map[string]types.ServiceLevel) *yaml.Node {
	if len(m) == 0 {
		return nil
	}
	out := newMappingNode()
	for _, name := range shared.SortedKeys(m) {
		out.Content = append(out.Content, scalarNode(name), emitServiceLevel(m[name]))
	}
	return out
}

func parseProfile(name string, node *yaml.Node, strict bool) (types.Profile, error) {
	p := types.NewProfile(name)
	if node == nil {
		return p, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return p, err
	}
	known := map[string]struct{}{"description": {}, "rpms": {}, "default": {}}
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return p, err
	}
	if n, ok := fields["description"]; ok {
		if p.Description, err = scalarString(n); err != nil {
			return p, err
		}
	}
	if n, ok := fields["rpms"]; ok {
		if p.RPMs, err = stringSet(n); err != nil {
			return p, err
		}
	}
	if n, ok := fields["default"]; ok {
		if p.Default, err = scalarBool(n); err != nil {
			return p, err
		}
	}
	return p, nil
}

func emitProfile(p types.Profile) *yaml.Node {
	m := newMappingNode()
	if p.Description != "" {
		putField(m, "description", scalarNode(p.Description))
	}
	if len(p.RPMs) > 0 {
		putField(m, "rpms", flowStringSeqNode(p.RPMs.Sorted()))
	}
	if p.Default {
		putField(m, "default", boolNode(true))
	}
	return m
}

func parseProfiles(node *yaml.Node, strict bool) (map[string]types.Profile, error) {
	out := map[string]types.Profile{}
	if node == nil {
		return out, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		p, err := parseProfile(k, fields[k], strict)
		if err != nil {
			return nil, err
		}
		out[k] = p
	}
	return out, nil
}

func emitProfiles(m map[string]types.Profile) *yaml.Node {
	if len(m) == 0 {
		return nil
	}
	out := newMappingNode()
	for _, name := range shared.SortedKeys(m) {
		out.Content = append(out.Content, scalarNode(name), emitProfile(m[name]))
	}
	return out
}

func parseBuildopts(node *yaml.Node, strict bool) (types.Buildopts, error) {
	var b types.Buildopts
	if node == nil {
		return b, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return b, err
	}
	known := map[string]struct{}{"rpm_macros": {}, "rpm_whitelist": {}, "arches": {}}
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return b, err
	}
	if n, ok := fields["rpm_macros"]; ok {
		if b.RPMMacros, err = scalarString(n); err != nil {
			return b, err
		}
	}
	if n, ok := fields["rpm_whitelist"]; ok {
		if b.RPMWhitelist, err = stringSet(n); err != nil {
			return b, err
		}
	}
	if n, ok := fields["arches"]; ok {
		if b.Arches, err = stringSet(n); err != nil {
			return b, err
		}
	}
	return b, nil
}

func emitBuildopts(b types.Buildopts) *yaml.Node {
	if b.IsEmpty() {
		return nil
	}
	m := newMappingNode()
	if b.RPMMacros != "" {
		putField(m, "rpm_macros", scalarNode(b.RPMMacros))
	}
	if len(b.RPMWhitelist) > 0 {
		putField(m, "rpm_whitelist", flowStringSeqNode(b.RPMWhitelist.Sorted()))
	}
	if len(b.Arches) > 0 {
		putField(m, "arches", flowStringSeqNode(b.Arches.Sorted()))
	}
	return m
}

func parseRpmComponent(key string, node *yaml.Node, strict bool) (types.RpmComponent, error) {
	c := types.NewRpmComponent(key)
	if node == nil {
		return c, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return c, err
	}
	known := map[string]struct{}{
		"rationale": {}, "repository": {}, "ref": {}, "cache": {}, "buildorder": {},
		"arches": {}, "multilib_arches": {}, "buildroot": {}, "srpm_buildroot": {},
	}
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return c, err
	}
	if n, ok := fields["rationale"]; ok {
		if c.Rationale, err = scalarString(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["repository"]; ok {
		if c.Repository, err = scalarString(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["ref"]; ok {
		if c.Ref, err = scalarString(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["cache"]; ok {
		if c.Cache, err = scalarString(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["buildorder"]; ok {
		if c.Buildorder, err = scalarInt64(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["arches"]; ok {
		if c.Arches, err = stringSet(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["multilib_arches"]; ok {
		if c.MultilibArches, err = stringSet(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["buildroot"]; ok {
		if c.Buildroot, err = scalarBool(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["srpm_buildroot"]; ok {
		if c.SRPMBuildroot, err = scalarBool(n); err != nil {
			return c, err
		}
	}
	return c, nil
}

func emitRpmComponent(c types.RpmComponent) *yaml.Node {
	m := newMappingNode()
	if c.Rationale != "" {
		putField(m, "rationale", scalarNode(c.Rationale))
	}
	if c.Repository != "" {
		putField(m, "repository", scalarNode(c.Repository))
	}
	if c.Ref != "" {
		putField(m, "ref", scalarNode(c.Ref))
	}
	if c.Cache != "" {
		putField(m, "cache", scalarNode(c.Cache))
	}
	if c.Buildorder != 0 {
		putField(m, "buildorder", intNode(c.Buildorder))
	}
	if len(c.Arches) > 0 {
		putField(m, "arches", flowStringSeqNode(c.Arches.Sorted()))
	}
	if len(c.MultilibArches) > 0 {
		putField(m, "multilib_arches", flowStringSeqNode(c.MultilibArches.Sorted()))
	}
	if c.Buildroot {
		putField(m, "buildroot", boolNode(true))
	}
	if c.SRPMBuildroot {
		putField(m, "srpm_buildroot", boolNode(true))
	}
	return m
}

func parseRpmComponents(node *yaml.Node, strict bool) (map[string]types.RpmComponent, error) {
	out := map[string]types.RpmComponent{}
	if node == nil {
		return out, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		c, err := parseRpmComponent(k, fields[k], strict)
		if err != nil {
			return nil, err
		}
		out[k] = c
	}
	return out, nil
}

func emitRpmComponents(m map[string]types.RpmComponent) *yaml.Node {
	if len(m) == 0 {
		return nil
	}
	out := newMappingNode()
	for _, key := range shared.SortedKeys(m) {
		out.Content = append(out.Content, scalarNode(key), emitRpmComponent(m[key]))
	}
	return out
}

func parseModuleComponent(key string, node *yaml.Node, strict bool) (types.ModuleComponent, error) {
	c := types.NewModuleComponent(key)
	if node == nil {
		return c, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return c, err
	}
	known := map[string]struct{}{"rationale": {}, "repository": {}, "ref": {}, "buildorder": {}}
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return c, err
	}
	if n, ok := fields["rationale"]; ok {
		if c.Rationale, err = scalarString(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["repository"]; ok {
		if c.Repository, err = scalarString(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["ref"]; ok {
		if c.Ref, err = scalarString(n); err != nil {
			return c, err
		}
	}
	if n, ok := fields["buildorder"]; ok {
		if c.Buildorder, err = scalarInt64(n); err != nil {
			return c, err
		}
	}
	return c, nil
}

func emitModuleComponent(c types.ModuleComponent) *yaml.Node {
	m := newMappingNode()
	if c.Rationale != "" {
		putField(m, "rationale", scalarNode(c.Rationale))
	}
	if c.Repository != "" {
		putField(m, "repository", scalarNode(c.Repository))
	}
	if c.Ref != "" {
		putField(m, "ref", scalarNode(c.Ref))
	}
	if c.Buildorder != 0 {
		putField(m, "buildorder", intNode(c.Buildorder))
	}
	return m
}

func parseModuleComponents(node *yaml.Node, strict bool) (map[string]types.ModuleComponent, error) {
	out := map[string]types.ModuleComponent{}
	if node == nil {
		return out, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		c, err := parseModuleComponent(k, fields[k], strict)
		if err != nil {
			return nil, err
		}
		out[k] = c
	}
	return out, nil
}

func emitModuleComponents(m map[string]types.ModuleComponent) *yaml.Node {
	if len(m) == 0 {
		return nil
	}
	out := newMappingNode()
	for _, key := range shared.SortedKeys(m) {
		out.Content = append(out.Content, scalarNode(key), emitModuleComponent(m[key]))
	}
	return out
}

func parseTranslationEntry(locale string, node *yaml.Node, strict bool) (types.TranslationEntry, error) {
	e := types.NewTranslationEntry(locale)
	if node == nil {
		return e, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return e, err
	}
	known := map[string]struct{}{"summary": {}, "description": {}, "profiles": {}}
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return e, err
	}
	if n, ok := fields["summary"]; ok {
		if e.Summary, err = scalarString(n); err != nil {
			return e, err
		}
	}
	if n, ok := fields["description"]; ok {
		if e.Description, err = scalarString(n); err != nil {
			return e, err
		}
	}
	if n, ok := fields["profiles"]; ok {
		pkeys, pfields, err := mappingFields(n)
		if err != nil {
			return e, err
		}
		for _, pk := range pkeys {
			v, err := scalarString(pfields[pk])
			if err != nil {
				return e, err
			}
			e.ProfileDescriptions[pk] = v
		}
	}
	return e, nil
}

func emitTranslationEntry(e types.TranslationEntry) *yaml.Node {
	m := newMappingNode()
	if e.Summary != "" {
		putField(m, "summary", scalarNode(e.Summary))
	}
	if e.Description != "" {
		putField(m, "description", scalarNode(e.Description))
	}
	if len(e.ProfileDescriptions) > 0 {
		profiles := newMappingNode()
		for _, pk := range shared.SortedKeys(e.ProfileDescriptions) {
			profiles.Content = append(profiles.Content, scalarNode(pk), scalarNode(e.ProfileDescriptions[pk]))
		}
		putField(m, "profiles", profiles)
	}
	return m
}

func parseRpmMapEntry(node *yaml.Node, strict bool) (types.RpmMapEntry, error) {
	var e types.RpmMapEntry
	keys, fields, err := mappingFields(node)
	if err != nil {
		return e, err
	}
	known := map[string]struct{}{"name": {}, "epoch": {}, "version": {}, "release": {}, "arch": {}, "nevra": {}}
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return e, err
	}
	if n, ok := fields["name"]; ok {
		if e.Name, err = scalarString(n); err != nil {
			return e, err
		}
	}
	if n, ok := fields["epoch"]; ok {
		if e.Epoch, err = scalarUint64(n, false); err != nil {
			return e, err
		}
	}
	if n, ok := fields["version"]; ok {
		if e.Version, err = scalarString(n); err != nil {
			return e, err
		}
	}
	if n, ok := fields["release"]; ok {
		if e.Release, err = scalarString(n); err != nil {
			return e, err
		}
	}
	if n, ok := fields["arch"]; ok {
		if e.Arch, err = scalarString(n); err != nil {
			return e, err
		}
	}
	nevraNode, ok := fields["nevra"]
	if !ok {
		return e, core.NewError(types.ErrorYAMLMissingRequired, "rpm-map entry missing nevra")
	}
	parsedNevra, err := scalarString(nevraNode)
	if err != nil {
		return e, err
	}
	if err := core.CheckNevraConsistency(e, parsedNevra); err != nil {
		return e, err
	}
	return e, nil
}

func emitRpmMapEntry(e types.RpmMapEntry) *yaml.Node {
	m := newMappingNode()
	putField(m, "name", scalarNode(e.Name))
	putField(m, "epoch", uintNode(e.Epoch))
	putField(m, "version", scalarNode(e.Version))
	putField(m, "release", scalarNode(e.Release))
	putField(m, "arch", scalarNode(e.Arch))
	putField(m, "nevra", scalarNode(e.Nevra()))
	return m
}

func parseRpmArtifactMap(node *yaml.Node, strict bool) (map[string]types.RpmMapEntry, error) {
	out := map[string]types.RpmMapEntry{}
	if node == nil {
		return out, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		e, err := parseRpmMapEntry(fields[k], strict)
		if err != nil {
			return nil, err
		}
		out[k] = e
	}
	return out, nil
}

func emitRpmArtifactMap(m map[string]types.RpmMapEntry) *yaml.Node {
	if len(m) == 0 {
		return nil
	}
	out := newMappingNode()
	for _, key := range shared.SortedKeys(m) {
		out.Content = append(out.Content, scalarNode(key), emitRpmMapEntry(m[key]))
	}
	return out
}

// parseDependencyMap parses a buildtime/runtime mapping, accepting
// either a flow sequence of streams (v2, multi-stream) or a single
// scalar stream (v1/v3, single-stream) for each module.
func parseDependencyMap(node *yaml.Node) (map[string]types.StringSet, error) {
	out := map[string]types.StringSet{}
	if node == nil {
		return out, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return nil, err
	}
	for _, module := range keys {
		value := fields[module]
		switch value.Kind {
		case yaml.ScalarNode:
			stream, err := scalarString(value)
			if err != nil {
				return nil, err
			}
			out[module] = types.NewStringSet(stream)
		case yaml.SequenceNode:
			set, err := stringSet(value)
			if err != nil {
				return nil, err
			}
			out[module] = set
		default:
			return nil, core.NewError(types.ErrorYAMLParse, "dependency entry for "+module+" must be a scalar or a sequence of streams")
		}
	}
	return out, nil
}

func emitDependencyMap(m map[string]types.StringSet) *yaml.Node {
	if len(m) == 0 {
		return nil
	}
	out := newMappingNode()
	for _, module := range shared.SortedKeys(m) {
		streams := m[module].Sorted()
		var value *yaml.Node
		if len(streams) == 1 {
			value = scalarNode(streams[0])
		} else {
			value = flowStringSeqNode(streams)
		}
		out.Content = append(out.Content, scalarNode(module), value)
	}
	return out
}

func parseDependencies(node *yaml.Node, strict bool) (types.Dependencies, error) {
	dep := types.NewDependencies()
	if node == nil {
		return dep, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return dep, err
	}
	known := map[string]struct{}{"buildtime": {}, "runtime": {}}
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return dep, err
	}
	if n, ok := fields["buildtime"]; ok {
		if dep.Buildtime, err = parseDependencyMap(n); err != nil {
			return dep, err
		}
	}
	if n, ok := fields["runtime"]; ok {
		if dep.Runtime, err = parseDependencyMap(n); err != nil {
			return dep, err
		}
	}
	return dep, nil
}

func emitDependencies(d types.Dependencies) *yaml.Node {
	m := newMappingNode()
	putField(m, "buildtime", emitDependencyMap(d.Buildtime))
	putField(m, "runtime", emitDependencyMap(d.Runtime))
	return m
}
