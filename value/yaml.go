/*
File    : molcore/value/yaml.go
Package : value
*/
package value

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Encode renders v as a yaml.Node. Struct fields are encoded as an
// ordered sequence of {name, value} mappings rather than a YAML mapping,
// since a YAML mapping does not preserve key order the way spec.md §3
// requires (SPEC_FULL.md §A.3.1).
func Encode(v Value) (*yaml.Node, error) {
	switch n := v.(type) {
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil

	case Number:
		node := &yaml.Node{}
		if err := node.Encode(float64(n)); err != nil {
			return nil, err
		}
		return node, nil

	case String:
		node := &yaml.Node{}
		if err := node.Encode(string(n)); err != nil {
			return nil, err
		}
		return node, nil

	case *Array:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range n.Elements {
			child, err := Encode(el)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil

	case *Struct:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, f := range n.Fields() {
			valNode, err := Encode(f.Value)
			if err != nil {
				return nil, err
			}
			nameNode := &yaml.Node{}
			if err := nameNode.Encode(f.Name); err != nil {
				return nil, err
			}
			entry := &yaml.Node{
				Kind: yaml.MappingNode,
				Tag:  "!!map",
				Content: []*yaml.Node{
					{Kind: yaml.ScalarNode, Tag: "!!str", Value: "name"}, nameNode,
					{Kind: yaml.ScalarNode, Tag: "!!str", Value: "value"}, valNode,
				},
			}
			seq.Content = append(seq.Content, entry)
		}
		return seq, nil

	default:
		return nil, fmt.Errorf("value: cannot encode %T", v)
	}
}

// Decode parses a yaml.Node produced by Encode back into a Value. It
// distinguishes an encoded Array (a plain sequence of values) from an
// encoded Struct (a sequence of {name, value} mappings) by inspecting the
// first element's shape.
func Decode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return decodeScalar(node)

	case yaml.SequenceNode:
		if isFieldSequence(node) {
			return decodeStruct(node)
		}
		arr := &Array{Elements: make([]Value, 0, len(node.Content))}
		for _, child := range node.Content {
			v, err := Decode(child)
			if err != nil {
				return nil, err
			}
			arr.Elements = append(arr.Elements, v)
		}
		return arr, nil

	default:
		return nil, fmt.Errorf("value: unsupported yaml node kind %v", node.Kind)
	}
}

func decodeScalar(node *yaml.Node) (Value, error) {
	if node.Tag == "!!null" || node.Value == "" && node.Tag == "" {
		return Null{}, nil
	}
	switch node.Tag {
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return Number(f), nil
	case "!!str":
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, err
		}
		return String(s), nil
	default:
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, err
		}
		return String(s), nil
	}
}

func isFieldSequence(node *yaml.Node) bool {
	if len(node.Content) == 0 {
		return false
	}
	first := node.Content[0]
	if first.Kind != yaml.MappingNode || len(first.Content) != 4 {
		return false
	}
	return first.Content[0].Value == "name" && first.Content[2].Value == "value"
}

func decodeStruct(node *yaml.Node) (Value, error) {
	s := NewStruct()
	for _, entry := range node.Content {
		if entry.Kind != yaml.MappingNode || len(entry.Content) != 4 {
			return nil, fmt.Errorf("value: malformed struct field entry")
		}
		name := entry.Content[1].Value
		v, err := Decode(entry.Content[3])
		if err != nil {
			return nil, err
		}
		s.Set(name, v)
	}
	return s, nil
}
