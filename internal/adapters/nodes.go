// Package adapters implements the YAML codec, subdocument diagnostics,
// compression-scheme detection, and the input-source boundary. It is
// the only package that imports gopkg.in/yaml.v3; internal/types and
// internal/core stay free of any codec dependency.
package adapters

import (
	"context"
	"strconv"

	"gopkg.in/yaml.v3"

	"modulemd/internal/core"
	"modulemd/internal/types"
)

// noopCtx is the context threaded into internal/core's assert-backed
// validation helpers when emitting, where the codec has no caller
// context of its own to propagate.
func noopCtx() context.Context { return context.Background() }

// mappingFields walks a YAML mapping node and returns its keys in
// document order alongside a key->value lookup, so strict-mode unknown
// key detection and canonical-order emission can both work off the
// same representation. In non-strict mode unknown keys are silently
// accepted: the caller already consumed the full subtree via
// mappingFields, so nesting-depth balance is preserved either way.
func mappingFields(node *yaml.Node) ([]string, map[string]*yaml.Node, error) {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, nil, core.NewError(types.ErrorYAMLParse, "expected a YAML mapping")
	}
	keys := make([]string, 0, len(node.Content)/2)
	fields := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		keys = append(keys, key)
		fields[key] = node.Content[i+1]
	}
	return keys, fields, nil
}

// checkUnknownKeys returns an UNKNOWN_ATTR error naming the first
// unrecognized key when strict is true.
func checkUnknownKeys(strict bool, keys []string, known map[string]struct{}) error {
	if !strict {
		return nil
	}
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			return core.NewError(types.ErrorYAMLUnknownAttribute, "unrecognized key: "+k)
		}
	}
	return nil
}

func scalarString(node *yaml.Node) (string, error) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return "", core.NewError(types.ErrorYAMLParse, "expected a scalar")
	}
	return node.Value, nil
}

func optionalScalarString(node *yaml.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	return scalarString(node)
}

func scalarUint64(node *yaml.Node, allowLegacyMax bool) (uint64, error) {
	raw, err := scalarString(node)
	if err != nil {
		return 0, err
	}
	value, _, err := core.ParseUint64Strict(raw, allowLegacyMax)
	return value, err
}

func scalarInt64(node *yaml.Node) (int64, error) {
	raw, err := scalarString(node)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, core.NewError(types.ErrorYAMLParse, "invalid signed integer scalar: "+raw)
	}
	return v, nil
}

func scalarBool(node *yaml.Node) (bool, error) {
	raw, err := scalarString(node)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, core.NewError(types.ErrorYAMLParse, "invalid boolean scalar: "+raw)
	}
	return v, nil
}

func stringSlice(node *yaml.Node) ([]string, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, core.NewError(types.ErrorYAMLParse, "expected a YAML sequence")
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		s, err := scalarString(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func stringSet(node *yaml.Node) (types.StringSet, error) {
	items, err := stringSlice(node)
	if err != nil {
		return nil, err
	}
	return types.NewStringSet(items...), nil
}

// --- emission ---

func scalarNode(value string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"}
	if core.NeedsQuoting(value) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func uintNode(v uint64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatUint(v, 10), Tag: "!!int"}
}

func intNode(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatInt(v, 10), Tag: "!!int"}
}

func boolNode(v bool) *yaml.Node {
	s := "false"
	if v {
		s = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s, Tag: "!!bool"}
}

// flowStringSeqNode renders a short string set/slice in flow style
// ("[a, b, c]") instead of one item per line.
func flowStringSeqNode(values []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, v := range values {
		n.Content = append(n.Content, scalarNode(v))
	}
	return n
}

func blockSeqNode(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

func newMappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// putField appends a key/value pair to a mapping node being built,
// skipping nil values so optional fields are simply omitted (matching
// the teacher's marshal-what-is-set idiom).
func putField(m *yaml.Node, key string, value *yaml.Node) {
	if value == nil {
		return
	}
	m.Content = append(m.Content, scalarNode(key), value)
}
