package merge

import (
	"github.com/zclconf/go-cty/cty"
)

// Values overlays the overlay tree onto the base tree and returns the
// combined value. Neither input is modified.
//
// When both values are mappings (cty objects or maps), their keys are
// unioned and shared keys recurse. In every other case the overlay value
// wins, including explicit nulls: a manifest that sets a key to null
// deliberately masks the inherited value.
func Values(base, overlay cty.Value) cty.Value {
	if overlay == cty.NilVal {
		return base
	}
	if base == cty.NilVal {
		return overlay
	}
	if !isMapping(base) || !isMapping(overlay) {
		return overlay
	}

	merged := make(map[string]cty.Value)
	for key, val := range base.AsValueMap() {
		merged[key] = val
	}
	for key, val := range overlay.AsValueMap() {
		if existing, ok := merged[key]; ok {
			merged[key] = Values(existing, val)
		} else {
			merged[key] = val
		}
	}
	if len(merged) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(merged)
}

// isMapping reports whether the value is a non-null object or map, i.e. a
// tree node that participates in recursive composition.
func isMapping(v cty.Value) bool {
	if v.IsNull() || !v.IsKnown() {
		return false
	}
	ty := v.Type()
	return ty.IsObjectType() || ty.IsMapType()
}
