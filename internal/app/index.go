package app

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"modulemd/internal/adapters"
	"modulemd/internal/core"
	"modulemd/internal/shared"
	"modulemd/internal/types"
)

// ModuleIndex is the in-memory collection of every module known to one
// parse: it owns a Module per module name and enforces that every
// stream it holds shares one uniform StreamVersion.
type ModuleIndex struct {
	modules map[string]*Module
	version types.StreamVersion
}

// NewModuleIndex constructs an empty index.
func NewModuleIndex() *ModuleIndex {
	return &ModuleIndex{modules: map[string]*Module{}}
}

func (idx *ModuleIndex) module(name string) *Module {
	m, ok := idx.modules[name]
	if !ok {
		m = NewModule(name)
		idx.modules[name] = m
	}
	return m
}

// AddModuleStream inserts a stream, auto-upgrading the whole index to
// the stream's version first if it is newer than the index's current
// effective version, and upgrading the incoming stream to match
// otherwise, so merges always operate on streams of one uniform
// version.
func (idx *ModuleIndex) AddModuleStream(ctx context.Context, s types.ModuleStream) error {
	if s == nil {
		return errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("cannot add a nil stream")
	}
	incoming := s
	switch {
	case s.StreamVersion() > idx.version:
		if err := idx.UpgradeStreams(ctx, s.StreamVersion()); err != nil {
			return err
		}
	case s.StreamVersion() < idx.version:
		upgraded, err := core.UpgradeStream(s, idx.version)
		if err != nil {
			return err
		}
		incoming = upgraded
	}
	if idx.version == types.StreamVersionUnset {
		idx.version = s.StreamVersion()
	}
	return idx.module(incoming.StreamIdentity().Name).addStream(incoming)
}

// UpgradeStreams upgrades every module stream in the index to target.
// A target below the index's current version is an UPGRADE_ERROR:
// downgrades are rejected outright.
func (idx *ModuleIndex) UpgradeStreams(ctx context.Context, target types.StreamVersion) error {
	if target < idx.version {
		return core.NewError(types.ErrorUpgrade, "cannot downgrade a module index")
	}
	for _, m := range idx.modules {
		if err := m.upgradeTo(target); err != nil {
			return err
		}
	}
	idx.version = target
	return nil
}

// UpgradeDefaults is the identity upgrade described in internal/core;
// DefaultsV1 is the only defined version, so this just deep-copies
// every module's defaults document in place.
func (idx *ModuleIndex) UpgradeDefaults(ctx context.Context) {
	for _, m := range idx.modules {
		if m.defaults != nil {
			m.defaults = core.UpgradeDefaultsV1(m.defaults)
		}
	}
}

// AddDefaults attaches a defaults document to its module, replacing
// any defaults previously attached to that module.
func (idx *ModuleIndex) AddDefaults(ctx context.Context, d *types.DefaultsV1) error {
	if err := core.ValidateDefaults(ctx, d); err != nil {
		return err
	}
	idx.module(d.ModuleName).defaults = d
	return nil
}

// AddTranslation attaches a translation document, keyed by its stream
// name, replacing any translation previously attached for that stream.
func (idx *ModuleIndex) AddTranslation(ctx context.Context, t *types.Translation) error {
	if err := core.ValidateTranslation(ctx, t); err != nil {
		return err
	}
	idx.module(t.ModuleName).translations[t.ModuleStream] = t
	return nil
}

// AddObsoletes attaches an obsoletes record, keyed by
// (stream, context, modified); a later add with the same key replaces
// the earlier one.
func (idx *ModuleIndex) AddObsoletes(ctx context.Context, o *types.Obsoletes) error {
	if err := core.ValidateObsoletes(ctx, o); err != nil {
		return err
	}
	idx.module(o.ModuleName).obsoletes[obsoletesKey(o)] = o
	return nil
}

// RemoveModule deletes a module and everything it owns from the index.
func (idx *ModuleIndex) RemoveModule(name string) {
	delete(idx.modules, name)
}

// GetModule returns a module aggregate by name.
func (idx *ModuleIndex) GetModule(name string) (*Module, bool) {
	m, ok := idx.modules[name]
	return m, ok
}

// GetModuleNames returns every module name present, sorted ascending.
func (idx *ModuleIndex) GetModuleNames() []string {
	return shared.SortedKeys(idx.modules)
}

// GetDefaultStreamsByModule resolves the default stream of every
// module that has one configured under the given intent (empty string
// for the unqualified default), keyed by module name.
func (idx *ModuleIndex) GetDefaultStreamsByModule(intent string) map[string]string {
	out := map[string]string{}
	for name, m := range idx.modules {
		if stream, ok := m.DefaultStream(intent); ok {
			out[name] = stream
		}
	}
	return out
}

// SearchStreams returns every stream matching the given filters, each
// of which is a wildcard when left at its zero value; results are
// returned in module-name order, matching GetModuleNames.
func (idx *ModuleIndex) SearchStreams(module, stream string, version uint64, context, arch string) []types.ModuleStream {
	var out []types.ModuleStream
	for _, name := range idx.GetModuleNames() {
		if module != "" && module != name {
			continue
		}
		for _, s := range idx.modules[name].Streams() {
			id := s.StreamIdentity()
			if stream != "" && stream != id.Stream {
				continue
			}
			if version != 0 && version != id.Version {
				continue
			}
			if context != "" && context != id.Context {
				continue
			}
			if arch != "" && arch != id.Arch {
				continue
			}
			out = append(out, s)
		}
	}
	return out
}

// SearchStreamsByNSVCAGlob returns every stream whose NSVCA string
// matches a shell-style glob pattern.
func (idx *ModuleIndex) SearchStreamsByNSVCAGlob(pattern string) ([]types.ModuleStream, error) {
	var out []types.ModuleStream
	for _, name := range idx.GetModuleNames() {
		for _, s := range idx.modules[name].Streams() {
			nsvca, ok := s.StreamIdentity().NSVCA()
			if !ok {
				continue
			}
			matched, err := shared.MatchGlob(pattern, nsvca)
			if err != nil {
				return nil, err
			}
			if matched {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

// SearchRpms returns the NEVRA of every RPM artifact across every
// stream in the index matching a shell-style glob, grouped by package
// name and ordered newest-version-first within a name via
// core.RPMVersionComparator.
func (idx *ModuleIndex) SearchRpms(nevraGlob string) ([]string, error) {
	var out []string
	for _, name := range idx.GetModuleNames() {
		for _, s := range idx.modules[name].Streams() {
			for _, nevra := range s.RpmArtifacts().Sorted() {
				matched, err := shared.MatchGlob(nevraGlob, nevra)
				if err != nil {
					return nil, err
				}
				if matched {
					out = append(out, nevra)
				}
			}
		}
	}

	comparator := core.NewRPMVersionComparator()
	sort.SliceStable(out, func(i, j int) bool {
		nameI, versionReleaseI := splitNevraNameAndVersionRelease(out[i])
		nameJ, versionReleaseJ := splitNevraNameAndVersionRelease(out[j])
		if nameI != nameJ {
			return nameI < nameJ
		}
		if versionReleaseI != versionReleaseJ {
			return comparator.Less(versionReleaseJ, versionReleaseI)
		}
		return out[i] < out[j]
	})
	return out, nil
}

// splitNevraNameAndVersionRelease pulls the package name and the
// "version-release" substring out of a "name-epoch:version-release.arch"
// NEVRA string, for ordering purposes only.
func splitNevraNameAndVersionRelease(nevra string) (name, versionRelease string) {
	colon := strings.Index(nevra, ":")
	if colon < 0 {
		return nevra, ""
	}
	head := nevra[:colon]
	if dash := strings.LastIndex(head, "-"); dash >= 0 {
		name = head[:dash]
	} else {
		name = head
	}
	rest := nevra[colon+1:]
	if dot := strings.LastIndex(rest, "."); dot >= 0 {
		versionRelease = rest[:dot]
	} else {
		versionRelease = rest
	}
	return name, versionRelease
}

// UpdateFromYAML parses a multi-document YAML stream and merges every
// successfully parsed subdocument into the index. It never aborts on
// the first bad subdocument: the returned slice carries one diagnostic
// record per subdocument, success or failure.
func (idx *ModuleIndex) UpdateFromYAML(ctx context.Context, data []byte, strict bool) []adapters.SubdocumentResult {
	codec := adapters.NewStreamCodec(strict)
	results := codec.ParseAll(data)
	for i, r := range results {
		if r.Err != nil || r.Document == nil {
			continue
		}
		if err := idx.adopt(ctx, r.Document); err != nil {
			results[i].Err = err
		}
	}
	return results
}

func (idx *ModuleIndex) adopt(ctx context.Context, doc *adapters.ParsedDocument) error {
	switch doc.DocKind {
	case types.DocumentKindModulemd, types.DocumentKindModulemdStream:
		return idx.AddModuleStream(ctx, doc.Stream)
	case types.DocumentKindDefaults:
		return idx.AddDefaults(ctx, doc.Defaults)
	case types.DocumentKindTranslations:
		return idx.AddTranslation(ctx, doc.Translation)
	case types.DocumentKindObsoletes:
		return idx.AddObsoletes(ctx, doc.Obsoletes)
	case types.DocumentKindPackager:
		return idx.adoptPackager(ctx, doc.Packager)
	default:
		return core.NewError(types.ErrorYAMLProgramming, "parsed document carries an unrecognized kind")
	}
}

func (idx *ModuleIndex) adoptPackager(ctx context.Context, p *types.PackagerV3) error {
	target := idx.version
	if target < types.StreamVersionV2 {
		target = types.StreamVersionV2
	}
	if target == types.StreamVersionV2 {
		for _, s := range core.PackagerToStreamV2(p) {
			if err := idx.AddModuleStream(ctx, s); err != nil {
				return err
			}
		}
		return nil
	}
	for _, s := range core.PackagerToStreamV3(p) {
		if err := idx.AddModuleStream(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// DumpToYAML emits every document the index holds as one
// multi-document YAML stream, in module-name order and, within a
// module, defaults then obsoletes then translations then streams by
// NSVCA.
func (idx *ModuleIndex) DumpToYAML(strict bool) ([]byte, error) {
	codec := adapters.NewStreamCodec(strict)
	var docs []*adapters.ParsedDocument
	for _, name := range idx.GetModuleNames() {
		m := idx.modules[name]
		if m.defaults != nil {
			docs = append(docs, adapters.WrapDefaults(m.defaults))
		}
		for _, o := range m.Obsoletes() {
			docs = append(docs, adapters.WrapObsoletes(o))
		}
		for _, t := range m.Translations() {
			docs = append(docs, adapters.WrapTranslation(t))
		}
		for _, s := range m.Streams() {
			docs = append(docs, adapters.WrapStream(s))
		}
	}
	return codec.DumpAll(docs)
}

// WriteYAML dumps the index to an io.Writer, the file/writer-facing
// half of DumpToYAML.
func (idx *ModuleIndex) WriteYAML(w io.Writer, strict bool) error {
	data, err := idx.DumpToYAML(strict)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
