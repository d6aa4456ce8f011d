package schema

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/lenslab/lensconf/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// tagName is the struct tag binding a field to its manifest key.
const tagName = "lens"

// Decode populates a group struct from its cty subtree using the `lens`
// field tags. Keys absent from the subtree keep whatever default the struct
// already carries; keys with no matching field are an error; explicit nulls
// reset the field to its default by being skipped.
func Decode(ctx context.Context, val cty.Value, target any) error {
	logger := ctxlog.FromContext(ctx)

	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	if structVal.Kind() != reflect.Struct {
		return fmt.Errorf("decode target must point to a struct, got %s", structVal.Kind())
	}

	if val.IsNull() || !(val.Type().IsObjectType() || val.Type().IsMapType()) {
		return fmt.Errorf("expected a mapping, got %s", val.Type().FriendlyName())
	}

	fields := taggedFields(structVal)

	attrs := map[string]cty.Value{}
	if val.LengthInt() > 0 {
		attrs = val.AsValueMap()
	}

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fieldVal, ok := fields[key]
		if !ok {
			return fmt.Errorf("unknown key %q (known keys: %s)", key, strings.Join(fieldNames(fields), ", "))
		}

		attrVal := attrs[key]
		if attrVal.IsNull() {
			logger.Debug("Null value leaves field at its default.", "key", key)
			continue
		}

		if fieldVal.Kind() == reflect.Struct {
			// Nested option sub-tree (e.g. reconstruction.pre_process).
			if err := Decode(ctx, attrVal, fieldVal.Addr().Interface()); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			continue
		}

		if err := decodeLeaf(attrVal, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
	}
	return nil
}

// decodeLeaf converts a cty leaf value into a Go scalar or slice, going
// through cty's conversion layer so numeric widening and tuple-to-list
// conversions behave the same as in the frontends.
func decodeLeaf(val cty.Value, goVal any) error {
	impliedType, err := gocty.ImpliedType(reflect.ValueOf(goVal).Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}

// taggedFields collects the settable, lens-tagged fields of a struct value.
func taggedFields(structVal reflect.Value) map[string]reflect.Value {
	fields := make(map[string]reflect.Value)
	structType := structVal.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}
		tag := strings.Split(field.Tag.Get(tagName), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		fields[tag] = fieldVal
	}
	return fields
}

func fieldNames(fields map[string]reflect.Value) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
