package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// TestDecode_PopulatesTaggedFields validates basic decoding of scalars,
// slices, and type widening through the conversion layer.
func TestDecode_PopulatesTaggedFields(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	val := cty.ObjectVal(map[string]cty.Value{
		"dataset":       cty.StringVal("data/DiffuserCam"),
		"downsample":    cty.NumberIntVal(2),
		"vertical_crop": cty.TupleVal([]cty.Value{cty.NumberIntVal(60), cty.NumberIntVal(320)}),
		"input_snr":     cty.NumberIntVal(40),
	})
	target := newFiles()

	// --- Act ---
	err := Decode(context.Background(), val, target)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "data/DiffuserCam", target.Dataset)
	require.Equal(t, 2, target.Downsample)
	require.Equal(t, []int{60, 320}, target.VerticalCrop)
	require.Equal(t, 40.0, target.InputSNR, "integers widen into float fields")
}

// TestDecode_AbsentKeysKeepDefaults validates that keys missing from the
// subtree leave the constructor defaults untouched.
func TestDecode_AbsentKeysKeepDefaults(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	val := cty.ObjectVal(map[string]cty.Value{
		"epoch": cty.NumberIntVal(50),
	})
	target := newTraining()

	// --- Act ---
	err := Decode(context.Background(), val, target)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 50, target.Epoch)
	require.Equal(t, 8, target.BatchSize, "untouched field keeps its default")
	require.True(t, target.SkipNaN)
}

// TestDecode_NullLeavesDefault validates that an explicit null is a no-op.
func TestDecode_NullLeavesDefault(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	val := cty.ObjectVal(map[string]cty.Value{
		"batch_size": cty.NullVal(cty.Number),
	})
	target := newTraining()

	// --- Act ---
	err := Decode(context.Background(), val, target)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 8, target.BatchSize)
}

// TestDecode_NestedStruct validates recursion into sub-trees like
// reconstruction.pre_process.
func TestDecode_NestedStruct(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	val := cty.ObjectVal(map[string]cty.Value{
		"method": cty.StringVal("unrolled_admm"),
		"pre_process": cty.ObjectVal(map[string]cty.Value{
			"network": cty.StringVal("UnetRes"),
			"depth":   cty.NumberIntVal(2),
		}),
		"unrolled_admm": cty.ObjectVal(map[string]cty.Value{
			"n_iter": cty.NumberIntVal(10),
		}),
	})
	target := newReconstruction()

	// --- Act ---
	err := Decode(context.Background(), val, target)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "UnetRes", target.PreProcess.Network)
	require.Equal(t, 2, target.PreProcess.Depth)
	require.Equal(t, 10, target.UnrolledADMM.NIter)
	require.Equal(t, 2e-4, target.UnrolledADMM.Tau, "untouched nested field keeps its default")
}

// TestDecode_UnknownKey validates that a mistyped key is reported with the
// known keys.
func TestDecode_UnknownKey(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	val := cty.ObjectVal(map[string]cty.Value{
		"bach_size": cty.NumberIntVal(4),
	})

	// --- Act ---
	err := Decode(context.Background(), val, newTraining())

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown key "bach_size"`)
	require.Contains(t, err.Error(), "batch_size")
}

// TestDecode_TypeMismatch validates the error for an unconvertible value.
func TestDecode_TypeMismatch(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	val := cty.ObjectVal(map[string]cty.Value{
		"batch_size": cty.StringVal("lots"),
	})

	// --- Act ---
	err := Decode(context.Background(), val, newTraining())

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), `"batch_size"`)
}

// TestDecode_NotAMapping validates that a scalar subtree is rejected.
func TestDecode_NotAMapping(t *testing.T) {
	t.Parallel()
	err := Decode(context.Background(), cty.StringVal("nope"), newTraining())
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected a mapping")
}

// TestDecode_BadTarget validates the guard on the target argument.
func TestDecode_BadTarget(t *testing.T) {
	t.Parallel()
	err := Decode(context.Background(), cty.EmptyObjectVal, Training{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-nil pointer")
}
