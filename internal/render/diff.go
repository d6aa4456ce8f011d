package render

import (
	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"
)

// Diff reports the structural difference between two effective
// configurations in go-cmp's notation, with a as the reference. An empty
// string means the trees are equal.
func Diff(a, b cty.Value) (string, error) {
	nativeA, err := ToNative(a)
	if err != nil {
		return "", err
	}
	nativeB, err := ToNative(b)
	if err != nil {
		return "", err
	}
	return cmp.Diff(nativeA, nativeB), nil
}
