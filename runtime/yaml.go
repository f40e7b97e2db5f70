/*
File    : molcore/runtime/yaml.go
Package : runtime
*/
package runtime

import (
	"github.com/akashmaji946/molcore/value"
	"gopkg.in/yaml.v3"
)

// namespaceOrder fixes the serialized order of a Context's four roots,
// independent of Go's randomized map iteration.
var namespaceOrder = []string{"temp", "variable", "context", "query"}

// MarshalYAML renders the Context as a mapping from namespace name to its
// encoded Struct root (SPEC_FULL.md §A.3.1), satisfying spec.md §6's "hosts
// may serialize and restore RuntimeContext using the value model."
func (c *Context) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, ns := range namespaceOrder {
		node, err := value.Encode(c.roots[ns])
		if err != nil {
			return nil, err
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ns}, node)
	}
	return root, nil
}

// UnmarshalYAML restores a Context previously produced by MarshalYAML.
func (c *Context) UnmarshalYAML(node *yaml.Node) error {
	if c.roots == nil {
		c.roots = map[string]*value.Struct{
			"temp":     value.NewStruct(),
			"variable": value.NewStruct(),
			"context":  value.NewStruct(),
			"query":    value.NewStruct(),
		}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		ns := node.Content[i].Value
		decoded, err := value.Decode(node.Content[i+1])
		if err != nil {
			return err
		}
		s, ok := decoded.(*value.Struct)
		if !ok {
			s = value.NewStruct()
		}
		c.roots[ns] = s
	}
	return nil
}
