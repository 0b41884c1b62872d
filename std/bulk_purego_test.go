//go:build purego

package std

import "testing"

func TestDefaultTransformerIsScalar(t *testing.T) {
	if name := DefaultTransformer().Name(); name != "scalar" {
		t.Fatalf("default transformer %q, want scalar", name)
	}
}
