package yamlconf

import (
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// nodeToCty translates a parsed YAML node into its cty equivalent. Mappings
// become objects, sequences become tuples, and scalars map onto cty's
// bool/number/string/null primitives according to their resolved YAML tag.
func nodeToCty(n *yaml.Node) (cty.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return cty.NilVal, fmt.Errorf("line %d: expected a single document", n.Line)
		}
		return nodeToCty(n.Content[0])

	case yaml.AliasNode:
		return nodeToCty(n.Alias)

	case yaml.ScalarNode:
		return scalarToCty(n)

	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(n.Content))
		for i, child := range n.Content {
			v, err := nodeToCty(child)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = v
		}
		return cty.TupleVal(elems), nil

	case yaml.MappingNode:
		if len(n.Content) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode || keyNode.Tag != "!!str" {
				return cty.NilVal, fmt.Errorf("line %d: mapping keys must be strings", keyNode.Line)
			}
			if _, dup := attrs[keyNode.Value]; dup {
				return cty.NilVal, fmt.Errorf("line %d: duplicate key %q", keyNode.Line, keyNode.Value)
			}
			v, err := nodeToCty(valNode)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[keyNode.Value] = v
		}
		return cty.ObjectVal(attrs), nil

	default:
		return cty.NilVal, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// scalarToCty converts a resolved YAML scalar. The node's tag, not its
// surface form, decides the type, so quoted "8" stays a string while bare 8
// becomes a number.
func scalarToCty(n *yaml.Node) (cty.Value, error) {
	switch n.Tag {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: invalid bool %q: %w", n.Line, n.Value, err)
		}
		return cty.BoolVal(b), nil
	case "!!int":
		// Base-prefixed forms like 0x1f resolve as !!int but are not valid
		// cty number syntax, so go through ParseInt first.
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return cty.NumberIntVal(i), nil
		}
		v, err := cty.ParseNumberVal(n.Value)
		if err != nil {
			return cty.NilVal, fmt.Errorf("line %d: invalid integer %q: %w", n.Line, n.Value, err)
		}
		return v, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: invalid float %q: %w", n.Line, n.Value, err)
		}
		return cty.NumberFloatVal(f), nil
	case "!!str":
		return cty.StringVal(n.Value), nil
	default:
		return cty.NilVal, fmt.Errorf("line %d: unsupported YAML scalar tag %s", n.Line, n.Tag)
	}
}
