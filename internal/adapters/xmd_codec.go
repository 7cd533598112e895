package adapters

import (
	"gopkg.in/yaml.v3"

	"modulemd/internal/core"
	"modulemd/internal/types"
)

// xmdFromNode builds an XMDValue from an arbitrary YAML subtree handed
// to the parser under the "xmd:" key. Scalars are heuristically typed:
// a YAML null becomes the null variant, only the literal "TRUE"/"FALSE"
// become booleans, and everything else stays a string.
func xmdFromNode(node *yaml.Node) (types.XMDValue, error) {
	if node == nil {
		return types.NewXMDNull(), nil
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return types.NewXMDNull(), nil
		}
		if b, ok := core.IsHeuristicBool(node.Value); ok {
			return types.NewXMDBool(b), nil
		}
		return types.NewXMDString(node.Value), nil
	case yaml.SequenceNode:
		seq := make([]types.XMDValue, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := xmdFromNode(item)
			if err != nil {
				return types.XMDValue{}, err
			}
			seq = append(seq, v)
		}
		return types.NewXMDSeq(seq...), nil
	case yaml.MappingNode:
		out := types.NewXMDMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := scalarString(node.Content[i])
			if err != nil {
				return types.XMDValue{}, core.NewError(types.ErrorYAMLParse, "xmd map key must be a scalar")
			}
			value, err := xmdFromNode(node.Content[i+1])
			if err != nil {
				return types.XMDValue{}, err
			}
			out.Set(key, value)
		}
		return out, nil
	default:
		return types.XMDValue{}, core.NewError(types.ErrorYAMLParse, "unsupported xmd node kind")
	}
}

// xmdToNode renders an XMDValue back to YAML, sorting map keys
// lexicographically so round-trips are deterministic regardless of the
// insertion order the value tree was built in.
func xmdToNode(v types.XMDValue) *yaml.Node {
	switch v.Kind {
	case types.XMDNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case types.XMDBool:
		return boolNode(v.Bool)
	case types.XMDString:
		return scalarNode(v.Str)
	case types.XMDSeq:
		// An explicit typed marker ("[]" with the seq tag, no content)
		// disambiguates an empty sequence from other empty collections
		// on emit.
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(v.Seq) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, item := range v.Seq {
			n.Content = append(n.Content, xmdToNode(item))
		}
		return n
	case types.XMDMap:
		n := newMappingNode()
		for _, key := range v.SortedKeys() {
			value, _ := v.Get(key)
			n.Content = append(n.Content, scalarNode(key), xmdToNode(value))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
