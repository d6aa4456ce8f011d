package merge

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Op is the kind of mutation an override performs.
type Op int

const (
	// OpSet replaces an existing leaf.
	OpSet Op = iota
	// OpAdd inserts a leaf that must not already exist.
	OpAdd
	// OpDelete removes an existing leaf.
	OpDelete
)

// Override is one parsed command-line override.
type Override struct {
	Op    Op
	Path  []string
	Value cty.Value

	// Raw is the override argument as the user typed it, kept for error
	// messages.
	Raw string
}

// IsOverride reports whether a raw CLI argument looks like an override
// rather than a document name.
func IsOverride(arg string) bool {
	return strings.HasPrefix(arg, "~") || strings.Contains(arg, "=")
}

// Parse interprets a single override argument.
//
// The grammar follows the manifests' own scalar syntax: the value part is
// parsed as YAML, so `training.batch_size=8`, `optimizer.lr=1e-4`,
// `training.skip_nan=true`, `files.crop=[80,320]` and quoted strings all
// produce the value the same text would produce inside a manifest.
func Parse(raw string) (*Override, error) {
	arg := raw
	op := OpSet
	switch {
	case strings.HasPrefix(arg, "+"):
		op = OpAdd
		arg = arg[1:]
	case strings.HasPrefix(arg, "~"):
		op = OpDelete
		arg = arg[1:]
	}

	var keyPart, valPart string
	if op == OpDelete {
		if strings.Contains(arg, "=") {
			return nil, fmt.Errorf("invalid override %q: a delete override takes no value", raw)
		}
		keyPart = arg
	} else {
		eq := strings.Index(arg, "=")
		if eq < 0 {
			return nil, fmt.Errorf("invalid override %q: expected key=value", raw)
		}
		keyPart, valPart = arg[:eq], arg[eq+1:]
	}

	if keyPart == "" {
		return nil, fmt.Errorf("invalid override %q: empty key path", raw)
	}
	path := strings.Split(keyPart, ".")
	for _, seg := range path {
		if seg == "" {
			return nil, fmt.Errorf("invalid override %q: empty path segment", raw)
		}
	}

	o := &Override{Op: op, Path: path, Raw: raw}
	if op != OpDelete {
		var parsed any
		if err := yaml.Unmarshal([]byte(valPart), &parsed); err != nil {
			return nil, fmt.Errorf("invalid override %q: cannot parse value: %w", raw, err)
		}
		val, err := goToCty(parsed)
		if err != nil {
			return nil, fmt.Errorf("invalid override %q: %w", raw, err)
		}
		o.Value = val
	}
	return o, nil
}

// ParseAll parses a list of override arguments, failing on the first bad one.
func ParseAll(raws []string) ([]*Override, error) {
	overrides := make([]*Override, 0, len(raws))
	for _, raw := range raws {
		o, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, nil
}

// Apply applies the overrides to a resolved tree in order and returns the
// new tree. A plain set requires its leaf to exist, an add requires it to be
// absent, and a delete requires it to exist; these constraints catch typos
// in option paths before they silently create orphan keys.
func Apply(root cty.Value, overrides []*Override) (cty.Value, error) {
	out := root
	for _, o := range overrides {
		var err error
		out, err = applyOne(out, o.Path, o)
		if err != nil {
			return cty.NilVal, err
		}
	}
	return out, nil
}

func applyOne(node cty.Value, path []string, o *Override) (cty.Value, error) {
	if !isMapping(node) {
		return cty.NilVal, fmt.Errorf("override %q: %q is not a mapping", o.Raw, strings.Join(o.Path[:len(o.Path)-len(path)], "."))
	}

	attrs := make(map[string]cty.Value)
	if node.LengthInt() > 0 {
		attrs = node.AsValueMap()
	}
	key := path[0]
	child, exists := attrs[key]

	if len(path) == 1 {
		switch o.Op {
		case OpSet:
			if !exists {
				return cty.NilVal, fmt.Errorf("override %q: key %q not found (use +%s to add a new key)", o.Raw, strings.Join(o.Path, "."), strings.TrimPrefix(o.Raw, "+"))
			}
			attrs[key] = o.Value
		case OpAdd:
			if exists {
				return cty.NilVal, fmt.Errorf("override %q: key %q already exists (drop the + prefix to replace it)", o.Raw, strings.Join(o.Path, "."))
			}
			attrs[key] = o.Value
		case OpDelete:
			if !exists {
				return cty.NilVal, fmt.Errorf("override %q: key %q not found", o.Raw, strings.Join(o.Path, "."))
			}
			delete(attrs, key)
		}
	} else {
		if !exists {
			if o.Op != OpAdd {
				return cty.NilVal, fmt.Errorf("override %q: key %q not found", o.Raw, strings.Join(o.Path, "."))
			}
			child = cty.EmptyObjectVal
		}
		updated, err := applyOne(child, path[1:], o)
		if err != nil {
			return cty.NilVal, err
		}
		attrs[key] = updated
	}

	if len(attrs) == 0 {
		return cty.EmptyObjectVal, nil
	}
	return cty.ObjectVal(attrs), nil
}

// goToCty converts a value produced by the YAML scalar parser into its cty
// equivalent.
func goToCty(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(t), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case int64:
		return cty.NumberIntVal(t), nil
	case uint64:
		return cty.NumberUIntVal(t), nil
	case float64:
		return cty.NumberFloatVal(t), nil
	case string:
		return cty.StringVal(t), nil
	case []any:
		if len(t) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(t))
		for i, e := range t {
			ev, err := goToCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(t) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(t))
		for k, e := range t {
			ev, err := goToCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
	}
}
