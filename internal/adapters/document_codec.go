package adapters

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"modulemd/internal/core"
	"modulemd/internal/ports"
	"modulemd/internal/shared"
	"modulemd/internal/types"
)

var _ ports.Document = (*ParsedDocument)(nil)

var defaultsKnownKeys = map[string]struct{}{
	"module": {}, "modified": {}, "stream": {}, "profiles": {}, "intents": {},
}

func parseProfileDefaultsMap(node *yaml.Node) (map[string]types.StringSet, error) {
	out := map[string]types.StringSet{}
	if node == nil {
		return out, nil
	}
	keys, fields, err := mappingFields(node)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		set, err := stringSet(fields[k])
		if err != nil {
			return nil, err
		}
		out[k] = set
	}
	return out, nil
}

func emitProfileDefaultsMap(m map[string]types.StringSet) *yaml.Node {
	if len(m) == 0 {
		return nil
	}
	out := newMappingNode()
	for _, stream := range shared.SortedKeys(m) {
		out.Content = append(out.Content, scalarNode(stream), flowStringSeqNode(m[stream].Sorted()))
	}
	return out
}

func parseDefaultsV1(fields map[string]*yaml.Node, keys []string, strict bool) (*types.DefaultsV1, error) {
	if err := checkUnknownKeys(strict, keys, defaultsKnownKeys); err != nil {
		return nil, err
	}
	moduleNode, ok := fields["module"]
	if !ok {
		return nil, core.NewError(types.ErrorYAMLMissingRequired, "defaults document missing module")
	}
	moduleName, err := scalarString(moduleNode)
	if err != nil {
		return nil, err
	}
	out := types.NewDefaultsV1(moduleName)
	if n, ok := fields["modified"]; ok {
		if out.Modified, err = scalarInt64(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["stream"]; ok {
		if out.DefaultStream, err = scalarString(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["profiles"]; ok {
		if out.ProfileDefaults, err = parseProfileDefaultsMap(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["intents"]; ok {
		ikeys, ifields, err := mappingFields(n)
		if err != nil {
			return nil, err
		}
		for _, intentName := range ikeys {
			ifkeys, iffields, err := mappingFields(ifields[intentName])
			if err != nil {
				return nil, err
			}
			if err := checkUnknownKeys(strict, ifkeys, map[string]struct{}{"stream": {}, "profiles": {}}); err != nil {
				return nil, err
			}
			if sn, ok := iffields["stream"]; ok {
				stream, err := scalarString(sn)
				if err != nil {
					return nil, err
				}
				out.SetIntentDefaultStream(intentName, stream)
			}
			if pn, ok := iffields["profiles"]; ok {
				defaults, err := parseProfileDefaultsMap(pn)
				if err != nil {
					return nil, err
				}
				entry := out.Intents[intentName]
				entry.ProfileDefaults = defaults
				out.Intents[intentName] = entry
			}
		}
	}
	return out, nil
}

func emitDefaultsV1(d *types.DefaultsV1) (*yaml.Node, error) {
	if err := core.ValidateDefaults(noopCtx(), d); err != nil {
		return nil, err
	}
	m := newMappingNode()
	putField(m, "module", scalarNode(d.ModuleName))
	if d.Modified != 0 {
		putField(m, "modified", intNode(d.Modified))
	}
	if d.DefaultStream != "" && !d.Poisoned {
		putField(m, "stream", scalarNode(d.DefaultStream))
	}
	putField(m, "profiles", emitProfileDefaultsMap(d.ProfileDefaults))
	if len(d.Intents) > 0 {
		intents := newMappingNode()
		for _, name := range shared.SortedKeys(d.Intents) {
			entry := d.Intents[name]
			im := newMappingNode()
			if entry.DefaultStream != "" && !entry.Poisoned {
				putField(im, "stream", scalarNode(entry.DefaultStream))
			}
			putField(im, "profiles", emitProfileDefaultsMap(entry.ProfileDefaults))
			intents.Content = append(intents.Content, scalarNode(name), im)
		}
		putField(m, "intents", intents)
	}
	return m, nil
}

var translationKnownKeys = map[string]struct{}{
	"module": {}, "stream": {}, "modified": {}, "translations": {},
}

func parseTranslation(fields map[string]*yaml.Node, keys []string, strict bool) (*types.Translation, error) {
	if err := checkUnknownKeys(strict, keys, translationKnownKeys); err != nil {
		return nil, err
	}
	moduleNode, ok := fields["module"]
	if !ok {
		return nil, core.NewError(types.ErrorYAMLMissingRequired, "translation document missing module")
	}
	streamNode, ok := fields["stream"]
	if !ok {
		return nil, core.NewError(types.ErrorYAMLMissingRequired, "translation document missing stream")
	}
	moduleName, err := scalarString(moduleNode)
	if err != nil {
		return nil, err
	}
	streamName, err := scalarString(streamNode)
	if err != nil {
		return nil, err
	}
	out := types.NewTranslation(moduleName, streamName)
	if n, ok := fields["modified"]; ok {
		if out.Modified, err = scalarInt64(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["translations"]; ok {
		tkeys, tfields, err := mappingFields(n)
		if err != nil {
			return nil, err
		}
		for _, locale := range tkeys {
			entry, err := parseTranslationEntry(locale, tfields[locale], strict)
			if err != nil {
				return nil, err
			}
			out.AddEntry(entry)
		}
	}
	return out, nil
}

func emitTranslation(t *types.Translation) (*yaml.Node, error) {
	if err := core.ValidateTranslation(noopCtx(), t); err != nil {
		return nil, err
	}
	m := newMappingNode()
	putField(m, "module", scalarNode(t.ModuleName))
	putField(m, "stream", scalarNode(t.ModuleStream))
	if t.Modified != 0 {
		putField(m, "modified", intNode(t.Modified))
	}
	if len(t.Entries) > 0 {
		translations := newMappingNode()
		for _, locale := range shared.SortedKeys(t.Entries) {
			translations.Content = append(translations.Content, scalarNode(locale), emitTranslationEntry(t.Entries[locale]))
		}
		putField(m, "translations", translations)
	}
	return m, nil
}

var obsoletesKnownKeys = map[string]struct{}{
	"module": {}, "stream": {}, "context": {}, "modified": {}, "reset": {}, "message": {}, "obsoleted_by": {},
}

func parseObsoletes(fields map[string]*yaml.Node, keys []string, strict bool) (*types.Obsoletes, error) {
	if err := checkUnknownKeys(strict, keys, obsoletesKnownKeys); err != nil {
		return nil, err
	}
	moduleNode, ok := fields["module"]
	if !ok {
		return nil, core.NewError(types.ErrorYAMLMissingRequired, "obsoletes document missing module")
	}
	streamNode, ok := fields["stream"]
	if !ok {
		return nil, core.NewError(types.ErrorYAMLMissingRequired, "obsoletes document missing stream")
	}
	moduleName, err := scalarString(moduleNode)
	if err != nil {
		return nil, err
	}
	streamName, err := scalarString(streamNode)
	if err != nil {
		return nil, err
	}
	out := types.NewObsoletes(moduleName, streamName, 0)
	if n, ok := fields["modified"]; ok {
		if out.Modified, err = scalarInt64(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["context"]; ok {
		if out.Context, err = scalarString(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["reset"]; ok {
		if out.Reset, err = scalarBool(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["message"]; ok {
		if out.MessageText, err = scalarString(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["obsoleted_by"]; ok {
		bkeys, bfields, err := mappingFields(n)
		if err != nil {
			return nil, err
		}
		if err := checkUnknownKeys(strict, bkeys, map[string]struct{}{"module": {}, "stream": {}}); err != nil {
			return nil, err
		}
		if bn, ok := bfields["module"]; ok {
			if out.EvictedByModule, err = scalarString(bn); err != nil {
				return nil, err
			}
		}
		if bn, ok := bfields["stream"]; ok {
			if out.EvictedByStream, err = scalarString(bn); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func emitObsoletes(o *types.Obsoletes) (*yaml.Node, error) {
	if err := core.ValidateObsoletes(noopCtx(), o); err != nil {
		return nil, err
	}
	m := newMappingNode()
	putField(m, "module", scalarNode(o.ModuleName))
	putField(m, "stream", scalarNode(o.ModuleStream))
	if o.Context != "" {
		putField(m, "context", scalarNode(o.Context))
	}
	if o.Modified != 0 {
		putField(m, "modified", intNode(o.Modified))
	}
	if o.Reset {
		putField(m, "reset", boolNode(true))
	}
	if o.MessageText != "" {
		putField(m, "message", scalarNode(o.MessageText))
	}
	if o.EvictedByModule != "" || o.EvictedByStream != "" {
		evictedBy := newMappingNode()
		if o.EvictedByModule != "" {
			putField(evictedBy, "module", scalarNode(o.EvictedByModule))
		}
		if o.EvictedByStream != "" {
			putField(evictedBy, "stream", scalarNode(o.EvictedByStream))
		}
		putField(m, "obsoleted_by", evictedBy)
	}
	return m, nil
}

var packagerKnownKeys = map[string]struct{}{
	"module": {}, "stream": {}, "summary": {}, "description": {}, "references": {},
	"license": {}, "profiles": {}, "components": {}, "buildconfigs": {}, "xmd": {},
}

func parseBuildConfig(node *yaml.Node, strict bool) (types.BuildConfig, error) {
	var cfg types.BuildConfig
	keys, fields, err := mappingFields(node)
	if err != nil {
		return cfg, err
	}
	known := map[string]struct{}{"context": {}, "platform": {}, "dependencies": {}, "buildopts": {}}
	if err := checkUnknownKeys(strict, keys, known); err != nil {
		return cfg, err
	}
	contextNode, ok := fields["context"]
	if !ok {
		return cfg, core.NewError(types.ErrorYAMLMissingRequired, "build config missing context")
	}
	platformNode, ok := fields["platform"]
	if !ok {
		return cfg, core.NewError(types.ErrorYAMLMissingRequired, "build config missing platform")
	}
	contextValue, err := scalarString(contextNode)
	if err != nil {
		return cfg, err
	}
	platformValue, err := scalarString(platformNode)
	if err != nil {
		return cfg, err
	}
	cfg = types.NewBuildConfig(contextValue, platformValue)
	if n, ok := fields["dependencies"]; ok {
		if cfg.Dependency, err = parseDependencies(n, strict); err != nil {
			return cfg, err
		}
	}
	if n, ok := fields["buildopts"]; ok {
		if cfg.Build, err = parseBuildopts(n, strict); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func emitBuildConfig(cfg types.BuildConfig) *yaml.Node {
	m := newMappingNode()
	putField(m, "context", scalarNode(cfg.Context))
	putField(m, "platform", scalarNode(cfg.Platform))
	if !cfg.Dependency.IsEmpty() {
		putField(m, "dependencies", emitDependencies(cfg.Dependency))
	}
	putField(m, "buildopts", emitBuildopts(cfg.Build))
	return m
}

func parsePackagerV3(fields map[string]*yaml.Node, keys []string, strict bool) (*types.PackagerV3, error) {
	if err := checkUnknownKeys(strict, keys, packagerKnownKeys); err != nil {
		return nil, err
	}
	moduleNode, ok := fields["module"]
	if !ok {
		return nil, core.NewError(types.ErrorYAMLMissingRequired, "packager document missing module")
	}
	streamNode, ok := fields["stream"]
	if !ok {
		return nil, core.NewError(types.ErrorYAMLMissingRequired, "packager document missing stream")
	}
	moduleName, err := scalarString(moduleNode)
	if err != nil {
		return nil, err
	}
	streamName, err := scalarString(streamNode)
	if err != nil {
		return nil, err
	}
	out := types.NewPackagerV3(moduleName, streamName)
	if n, ok := fields["summary"]; ok {
		if out.SummaryText, err = scalarString(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["description"]; ok {
		if out.DescriptionText, err = scalarString(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["references"]; ok {
		rkeys, rfields, err := mappingFields(n)
		if err != nil {
			return nil, err
		}
		known := map[string]struct{}{"community": {}, "documentation": {}, "tracker": {}}
		if err := checkUnknownKeys(strict, rkeys, known); err != nil {
			return nil, err
		}
		if rn, ok := rfields["community"]; ok {
			if out.Community, err = scalarString(rn); err != nil {
				return nil, err
			}
		}
		if rn, ok := rfields["documentation"]; ok {
			if out.Documentation, err = scalarString(rn); err != nil {
				return nil, err
			}
		}
		if rn, ok := rfields["tracker"]; ok {
			if out.Tracker, err = scalarString(rn); err != nil {
				return nil, err
			}
		}
	}
	if n, ok := fields["license"]; ok {
		lkeys, lfields, err := mappingFields(n)
		if err != nil {
			return nil, err
		}
		if err := checkUnknownKeys(strict, lkeys, map[string]struct{}{"module": {}}); err != nil {
			return nil, err
		}
		if ln, ok := lfields["module"]; ok {
			if out.ModuleLicenseSet, err = stringSet(ln); err != nil {
				return nil, err
			}
		}
	}
	if n, ok := fields["profiles"]; ok {
		if out.ProfileMap, err = parseProfiles(n, strict); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["components"]; ok {
		ckeys, cfields, err := mappingFields(n)
		if err != nil {
			return nil, err
		}
		if err := checkUnknownKeys(strict, ckeys, map[string]struct{}{"rpms": {}, "modules": {}}); err != nil {
			return nil, err
		}
		if cn, ok := cfields["rpms"]; ok {
			if out.RpmComponentMap, err = parseRpmComponents(cn, strict); err != nil {
				return nil, err
			}
		}
		if cn, ok := cfields["modules"]; ok {
			if out.ModuleComponentMap, err = parseModuleComponents(cn, strict); err != nil {
				return nil, err
			}
		}
	}
	if n, ok := fields["buildconfigs"]; ok {
		if n.Kind != yaml.SequenceNode {
			return nil, core.NewError(types.ErrorYAMLParse, "buildconfigs must be a sequence")
		}
		for _, item := range n.Content {
			cfg, err := parseBuildConfig(item, strict)
			if err != nil {
				return nil, err
			}
			out.AddBuildConfig(cfg)
		}
	}
	if n, ok := fields["xmd"]; ok {
		if out.Metadata, err = xmdFromNode(n); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func emitPackagerV3(p *types.PackagerV3) (*yaml.Node, error) {
	if err := core.ValidatePackager(noopCtx(), p); err != nil {
		return nil, err
	}
	m := newMappingNode()
	putField(m, "module", scalarNode(p.ModuleName))
	putField(m, "stream", scalarNode(p.StreamName))
	if p.SummaryText != "" {
		putField(m, "summary", scalarNode(p.SummaryText))
	}
	if p.DescriptionText != "" {
		putField(m, "description", scalarNode(p.DescriptionText))
	}
	if p.Community != "" || p.Documentation != "" || p.Tracker != "" {
		references := newMappingNode()
		if p.Community != "" {
			putField(references, "community", scalarNode(p.Community))
		}
		if p.Documentation != "" {
			putField(references, "documentation", scalarNode(p.Documentation))
		}
		if p.Tracker != "" {
			putField(references, "tracker", scalarNode(p.Tracker))
		}
		putField(m, "references", references)
	}
	if len(p.ModuleLicenseSet) > 0 {
		license := newMappingNode()
		putField(license, "module", flowStringSeqNode(p.ModuleLicenseSet.Sorted()))
		putField(m, "license", license)
	}
	putField(m, "profiles", emitProfiles(p.ProfileMap))
	if len(p.RpmComponentMap) > 0 || len(p.ModuleComponentMap) > 0 {
		components := newMappingNode()
		putField(components, "rpms", emitRpmComponents(p.RpmComponentMap))
		putField(components, "modules", emitModuleComponents(p.ModuleComponentMap))
		putField(m, "components", components)
	}
	if len(p.BuildConfigs) > 0 {
		items := make([]*yaml.Node, 0, len(p.BuildConfigs))
		for _, ctxKey := range shared.SortedKeys(p.BuildConfigs) {
			items = append(items, emitBuildConfig(p.BuildConfigs[ctxKey]))
		}
		putField(m, "buildconfigs", blockSeqNode(items...))
	}
	if !p.Metadata.IsEmpty() {
		putField(m, "xmd", xmdToNode(p.Metadata))
	}
	return m, nil
}

// ParsedDocument is the typed result of successfully parsing one
// subdocument, implementing ports.Document so callers can handle any
// document kind uniformly without a type switch.
type ParsedDocument struct {
	DocKind     types.DocumentKind
	Stream      types.ModuleStream
	Defaults    *types.DefaultsV1
	Translation *types.Translation
	Obsoletes   *types.Obsoletes
	Packager    *types.PackagerV3

	raw []byte
}

func (d *ParsedDocument) Kind() types.DocumentKind { return d.DocKind }
func (d *ParsedDocument) RawSource() []byte        { return d.raw }

func (d *ParsedDocument) Validate() error {
	switch d.DocKind {
	case types.DocumentKindModulemd, types.DocumentKindModulemdStream:
		return core.ValidateStream(noopCtx(), d.Stream)
	case types.DocumentKindDefaults:
		return core.ValidateDefaults(noopCtx(), d.Defaults)
	case types.DocumentKindTranslations:
		return core.ValidateTranslation(noopCtx(), d.Translation)
	case types.DocumentKindObsoletes:
		return core.ValidateObsoletes(noopCtx(), d.Obsoletes)
	case types.DocumentKindPackager:
		return core.ValidatePackager(noopCtx(), d.Packager)
	default:
		return core.NewError(types.ErrorYAMLProgramming, "parsed document carries an unrecognized kind")
	}
}

// SubdocumentResult is the per-subdocument diagnostic record: either a
// typed Document or an error, plus the raw YAML bytes that produced it
// either way.
type SubdocumentResult struct {
	Document *ParsedDocument
	Err      error
	Raw      []byte
}

// StreamCodec is the multi-document YAML parser/emitter. Strict
// controls whether unrecognized mapping keys are a hard UNKNOWN_ATTR
// error or silently skipped.
type StreamCodec struct {
	Strict bool
}

// NewStreamCodec constructs a codec in the given strictness mode.
func NewStreamCodec(strict bool) StreamCodec {
	return StreamCodec{Strict: strict}
}

// splitDocuments breaks a YAML stream into its "---"-delimited
// subdocuments, preserving each one's raw bytes so a syntax failure in
// one subdocument never costs the others their diagnostic record. It
// is a line-oriented split rather than a full YAML-aware one: every
// document in this format starts with a "---" line and, optionally,
// ends with a "..." line, so this is sufficient for the wire shape.
func splitDocuments(data []byte) [][]byte {
	lines := strings.Split(string(data), "\n")
	var docs [][]byte
	var current []string
	started := false
	flush := func() {
		if started {
			joined := strings.Join(current, "\n")
			if strings.TrimSpace(joined) != "" {
				docs = append(docs, []byte(joined))
			}
		}
		current = nil
	}
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r")
		switch trimmed {
		case "---":
			flush()
			started = true
			continue
		case "...":
			flush()
			started = false
			continue
		}
		if started {
			current = append(current, line)
		}
	}
	flush()
	return docs
}

// ParseAll parses every subdocument in a YAML stream, accumulating a
// diagnostic record per subdocument and never aborting on the first
// failure.
func (c StreamCodec) ParseAll(data []byte) []SubdocumentResult {
	var results []SubdocumentResult
	for _, raw := range splitDocuments(data) {
		doc, err := c.parseOne(raw)
		results = append(results, SubdocumentResult{Document: doc, Err: err, Raw: raw})
	}
	return results
}

func (c StreamCodec) parseOne(raw []byte) (*ParsedDocument, error) {
	var header yaml.Node
	if err := yaml.Unmarshal(raw, &header); err != nil {
		return nil, core.WrapError(types.ErrorYAMLUnparseable, "subdocument is not valid YAML", err)
	}
	root := &header
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	topKeys, topFields, err := mappingFields(root)
	if err != nil {
		return nil, core.WrapError(types.ErrorYAMLUnparseable, "subdocument top level must be a mapping", err)
	}
	if err := checkUnknownKeys(c.Strict, topKeys, map[string]struct{}{"document": {}, "version": {}, "data": {}}); err != nil {
		return nil, err
	}
	kindNode, ok := topFields["document"]
	if !ok {
		return nil, core.NewError(types.ErrorYAMLMissingRequired, "subdocument missing document header")
	}
	kindRaw, err := scalarString(kindNode)
	if err != nil {
		return nil, err
	}
	versionNode, ok := topFields["version"]
	if !ok {
		return nil, core.NewError(types.ErrorYAMLMissingRequired, "subdocument missing version header")
	}
	version, err := scalarUint64(versionNode, false)
	if err != nil {
		return nil, err
	}
	dataNode, ok := topFields["data"]
	if !ok {
		return nil, core.NewError(types.ErrorYAMLMissingRequired, "subdocument missing data section")
	}

	doc := &ParsedDocument{raw: append([]byte(nil), raw...)}

	switch types.DocumentKind(kindRaw) {
	case types.DocumentKindModulemd, types.DocumentKindModulemdStream:
		dataKeys, dataFields, err := mappingFields(dataNode)
		if err != nil {
			return nil, err
		}
		switch types.StreamVersion(version) {
		case types.StreamVersionV1:
			doc.Stream, err = parseModuleStreamV1(dataFields, dataKeys, c.Strict)
		case types.StreamVersionV2:
			doc.Stream, err = parseModuleStreamV2(dataFields, dataKeys, c.Strict)
		case types.StreamVersionV3:
			doc.Stream, err = parseModuleStreamV3(dataFields, dataKeys, c.Strict)
		default:
			err = core.NewError(types.ErrorYAMLParse, "unrecognized module stream version")
		}
		if err != nil {
			return nil, err
		}
		doc.DocKind = types.DocumentKindModulemdStream
	case types.DocumentKindDefaults:
		dataKeys, dataFields, err := mappingFields(dataNode)
		if err != nil {
			return nil, err
		}
		if doc.Defaults, err = parseDefaultsV1(dataFields, dataKeys, c.Strict); err != nil {
			return nil, err
		}
		doc.DocKind = types.DocumentKindDefaults
	case types.DocumentKindTranslations:
		dataKeys, dataFields, err := mappingFields(dataNode)
		if err != nil {
			return nil, err
		}
		if doc.Translation, err = parseTranslation(dataFields, dataKeys, c.Strict); err != nil {
			return nil, err
		}
		doc.DocKind = types.DocumentKindTranslations
	case types.DocumentKindObsoletes:
		dataKeys, dataFields, err := mappingFields(dataNode)
		if err != nil {
			return nil, err
		}
		if doc.Obsoletes, err = parseObsoletes(dataFields, dataKeys, c.Strict); err != nil {
			return nil, err
		}
		doc.DocKind = types.DocumentKindObsoletes
	case types.DocumentKindPackager:
		if types.PackagerVersion(version) < types.PackagerVersionV3 {
			return nil, core.NewError(types.ErrorYAMLParse, "modulemd-packager documents are only read at version 3; earlier versions are not supported")
		}
		dataKeys, dataFields, err := mappingFields(dataNode)
		if err != nil {
			return nil, err
		}
		if doc.Packager, err = parsePackagerV3(dataFields, dataKeys, c.Strict); err != nil {
			return nil, err
		}
		doc.DocKind = types.DocumentKindPackager
	default:
		return nil, core.NewError(types.ErrorYAMLParse, "unrecognized document kind: "+kindRaw)
	}
	return doc, nil
}

func marshalNode(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, core.WrapError(types.ErrorYAMLEmit, "failed to emit yaml", err)
	}
	if err := enc.Close(); err != nil {
		return nil, core.WrapError(types.ErrorYAMLEmit, "failed to flush yaml emitter", err)
	}
	return buf.Bytes(), nil
}

// EmitDocument renders one document as a "---"-prefixed,
// "..."-terminated YAML subdocument, validating first: validation
// failure produces no partial output.
func (c StreamCodec) EmitDocument(doc *ParsedDocument) ([]byte, error) {
	var (
		data    *yaml.Node
		version uint64
		err     error
	)
	switch doc.DocKind {
	case types.DocumentKindModulemdStream, types.DocumentKindModulemd:
		version = uint64(doc.Stream.StreamVersion())
		switch s := doc.Stream.(type) {
		case *types.ModuleStreamV1:
			data, err = emitModuleStreamV1(s)
		case *types.ModuleStreamV2:
			data, err = emitModuleStreamV2(s)
		case *types.ModuleStreamV3:
			data, err = emitModuleStreamV3(s)
		default:
			err = core.NewError(types.ErrorYAMLProgramming, "unrecognized module stream implementation")
		}
	case types.DocumentKindDefaults:
		version = uint64(types.DefaultsVersionV1)
		data, err = emitDefaultsV1(doc.Defaults)
	case types.DocumentKindTranslations:
		version = 1
		data, err = emitTranslation(doc.Translation)
	case types.DocumentKindObsoletes:
		version = 1
		data, err = emitObsoletes(doc.Obsoletes)
	case types.DocumentKindPackager:
		version = uint64(types.PackagerVersionV3)
		data, err = emitPackagerV3(doc.Packager)
	default:
		err = core.NewError(types.ErrorYAMLProgramming, "cannot emit a document of unrecognized kind")
	}
	if err != nil {
		return nil, err
	}

	header := newMappingNode()
	putField(header, "document", scalarNode(string(doc.DocKind)))
	putField(header, "version", uintNode(version))
	putField(header, "data", data)

	body, err := marshalNode(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+8)
	out = append(out, "---\n"...)
	out = append(out, body...)
	out = append(out, "...\n"...)
	return out, nil
}

// DumpAll renders a sequence of documents as one concatenated
// multi-document YAML stream, in the exact order given; ordering the
// documents themselves is the caller's (internal/app's) job — emission
// order matches the iteration order of the index.
func (c StreamCodec) DumpAll(docs []*ParsedDocument) ([]byte, error) {
	var buf bytes.Buffer
	for _, doc := range docs {
		chunk, err := c.EmitDocument(doc)
		if err != nil {
			return nil, err
		}
		buf.Write(chunk)
	}
	return buf.Bytes(), nil
}

// WrapStream builds a ParsedDocument for a module stream so it can be
// passed through EmitDocument/DumpAll alongside the other document
// kinds.
func WrapStream(stream types.ModuleStream) *ParsedDocument {
	return &ParsedDocument{DocKind: types.DocumentKindModulemdStream, Stream: stream}
}

// WrapDefaults builds a ParsedDocument wrapping a DefaultsV1 document.
func WrapDefaults(d *types.DefaultsV1) *ParsedDocument {
	return &ParsedDocument{DocKind: types.DocumentKindDefaults, Defaults: d}
}

// WrapTranslation builds a ParsedDocument wrapping a Translation document.
func WrapTranslation(t *types.Translation) *ParsedDocument {
	return &ParsedDocument{DocKind: types.DocumentKindTranslations, Translation: t}
}

// WrapObsoletes builds a ParsedDocument wrapping an Obsoletes document.
func WrapObsoletes(o *types.Obsoletes) *ParsedDocument {
	return &ParsedDocument{DocKind: types.DocumentKindObsoletes, Obsoletes: o}
}

// WrapPackager builds a ParsedDocument wrapping a PackagerV3 document.
func WrapPackager(p *types.PackagerV3) *ParsedDocument {
	return &ParsedDocument{DocKind: types.DocumentKindPackager, Packager: p}
}
