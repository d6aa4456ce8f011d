package merge

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// TestValues_LeafOverride validates the core composition property: the
// overlay value wins for every leaf key it carries, and base keys it does
// not carry survive untouched.
func TestValues_LeafOverride(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	base := cty.ObjectVal(map[string]cty.Value{
		"batch_size": cty.NumberIntVal(8),
		"epoch":      cty.NumberIntVal(25),
	})
	overlay := cty.ObjectVal(map[string]cty.Value{
		"batch_size": cty.NumberIntVal(4),
	})

	// --- Act ---
	merged := Values(base, overlay)

	// --- Assert ---
	attrs := merged.AsValueMap()
	require.True(t, cty.NumberIntVal(4).RawEquals(attrs["batch_size"]), "overlay leaf must win")
	require.True(t, cty.NumberIntVal(25).RawEquals(attrs["epoch"]), "base leaf must survive")
}

// TestValues_NestedMappingsRecurse validates that nested mappings compose
// per leaf rather than being replaced wholesale.
func TestValues_NestedMappingsRecurse(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	base := cty.ObjectVal(map[string]cty.Value{
		"reconstruction": cty.ObjectVal(map[string]cty.Value{
			"method": cty.StringVal("unrolled_admm"),
			"unrolled_admm": cty.ObjectVal(map[string]cty.Value{
				"n_iter": cty.NumberIntVal(5),
				"tau":    cty.NumberFloatVal(2e-4),
			}),
		}),
	})
	overlay := cty.ObjectVal(map[string]cty.Value{
		"reconstruction": cty.ObjectVal(map[string]cty.Value{
			"unrolled_admm": cty.ObjectVal(map[string]cty.Value{
				"n_iter": cty.NumberIntVal(10),
			}),
		}),
	})

	// --- Act ---
	merged := Values(base, overlay)

	// --- Assert ---
	recon := merged.AsValueMap()["reconstruction"].AsValueMap()
	require.Equal(t, "unrolled_admm", recon["method"].AsString(), "untouched nested leaf must survive")
	admm := recon["unrolled_admm"].AsValueMap()
	require.True(t, cty.NumberIntVal(10).RawEquals(admm["n_iter"]), "overridden nested leaf must win")
	require.True(t, cty.NumberFloatVal(2e-4).RawEquals(admm["tau"]), "sibling nested leaf must survive")
}

// TestValues_ListsReplaceWholesale validates that sequences do not merge
// element-wise.
func TestValues_ListsReplaceWholesale(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	base := cty.ObjectVal(map[string]cty.Value{
		"metrics": cty.TupleVal([]cty.Value{cty.StringVal("MSE"), cty.StringVal("PSNR")}),
	})
	overlay := cty.ObjectVal(map[string]cty.Value{
		"metrics": cty.TupleVal([]cty.Value{cty.StringVal("LPIPS")}),
	})

	// --- Act ---
	merged := Values(base, overlay)

	// --- Assert ---
	metrics := merged.AsValueMap()["metrics"]
	require.Equal(t, 1, metrics.LengthInt(), "overlay list must replace the base list entirely")
}

// TestValues_NullMasksInheritedValue validates that an explicit null in the
// overlay deliberately masks the inherited value.
func TestValues_NullMasksInheritedValue(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	base := cty.ObjectVal(map[string]cty.Value{
		"trainable_mask": cty.ObjectVal(map[string]cty.Value{
			"mask_type": cty.StringVal("TrainablePSF"),
		}),
	})
	overlay := cty.ObjectVal(map[string]cty.Value{
		"trainable_mask": cty.NullVal(cty.DynamicPseudoType),
	})

	// --- Act ---
	merged := Values(base, overlay)

	// --- Assert ---
	require.True(t, merged.AsValueMap()["trainable_mask"].IsNull(), "null overlay must mask the inherited subtree")
}

// TestValues_ScalarReplacesMapping validates that a scalar overlay replaces
// an inherited mapping wholesale.
func TestValues_ScalarReplacesMapping(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	base := cty.ObjectVal(map[string]cty.Value{
		"crop": cty.ObjectVal(map[string]cty.Value{"top": cty.NumberIntVal(60)}),
	})
	overlay := cty.ObjectVal(map[string]cty.Value{
		"crop": cty.StringVal("disabled"),
	})

	// --- Act ---
	merged := Values(base, overlay)

	// --- Assert ---
	require.Equal(t, "disabled", merged.AsValueMap()["crop"].AsString())
}

// TestValues_EmptyInputs validates merging with empty or nil operands.
func TestValues_EmptyInputs(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	body := cty.ObjectVal(map[string]cty.Value{"epoch": cty.NumberIntVal(25)})

	// --- Act / Assert ---
	require.True(t, body.RawEquals(Values(cty.EmptyObjectVal, body)), "merging onto an empty base yields the overlay")
	require.True(t, body.RawEquals(Values(body, cty.EmptyObjectVal)), "merging an empty overlay keeps the base")
	require.True(t, body.RawEquals(Values(cty.NilVal, body)), "a nil base is treated as absent")
	require.True(t, body.RawEquals(Values(body, cty.NilVal)), "a nil overlay is treated as absent")
}
