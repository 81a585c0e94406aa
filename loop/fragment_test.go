package loop

import (
	"reflect"
	"testing"

	"zappem.net/pub/cam/region/shape"
)

func TestNormalizeSplit(t *testing.T) {
	edges := []shape.Edge{
		shape.Line(shape.Vector{X: 0, Y: 0, Z: 1}, shape.Vector{X: 1, Y: 0, Z: 1}),
		shape.Line(shape.Vector{X: 1, Y: 0, Z: 1}, shape.Vector{X: 1, Y: 0, Z: 3}),
		shape.Line(shape.Vector{X: 1, Y: 0, Z: 3}, shape.Vector{X: 0, Y: 0, Z: 3}),
	}
	horiz, other := Normalize(edges, DefaultPrecision)
	if len(horiz) != 2 {
		t.Errorf("horizontal fragments: got=%d, want=2", len(horiz))
	}
	if len(other) != 1 {
		t.Errorf("other fragments: got=%d, want=1", len(other))
	}
	if len(horiz)+len(other) != len(edges) {
		t.Errorf("fragment count: got=%d, want=%d", len(horiz)+len(other), len(edges))
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	edges := []shape.Edge{
		shape.Line(shape.Vector{X: 3, Y: 1, Z: 0}, shape.Vector{X: 0, Y: 0, Z: 0}),
		shape.Line(shape.Vector{X: 0, Y: 0, Z: 0}, shape.Vector{X: 1, Y: 2, Z: 0}),
		shape.Line(shape.Vector{X: 1, Y: 2, Z: 0}, shape.Vector{X: 3, Y: 1, Z: 0}),
	}
	a, _ := Normalize(edges, DefaultPrecision)
	b, _ := Normalize(edges, DefaultPrecision)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("normalization not deterministic: %v vs %v", a, b)
	}
	for i := 1; i < len(a); i++ {
		if a[i-1].Start > a[i].Start {
			t.Errorf("pool not sorted at %d: %q > %q", i, a[i-1].Start, a[i].Start)
		}
	}
}

func TestQuantizedKeys(t *testing.T) {
	// Endpoints within half the quantization step share a key.
	a := shape.Line(shape.Vector{X: 0, Y: 0, Z: 0}, shape.Vector{X: 1.00002, Y: 0, Z: 0})
	b := shape.Line(shape.Vector{X: 0.99998, Y: 0, Z: 0}, shape.Vector{X: 1, Y: 1, Z: 0})
	horiz, _ := Normalize([]shape.Edge{a, b}, DefaultPrecision)
	if len(horiz) != 2 {
		t.Fatalf("fragment count: got=%d, want=2", len(horiz))
	}
	if !Connected(horiz[0], horiz[1]) {
		t.Errorf("near-coincident endpoints not connected: %v vs %v", horiz[0], horiz[1])
	}
}

func TestConnectedIgnoresDirection(t *testing.T) {
	f := Fragment{Start: "x0_y0_z0", End: "x10000_y0_z0"}
	vs := []struct {
		g    Fragment
		want bool
	}{
		{Fragment{Start: "x10000_y0_z0", End: "x10000_y10000_z0"}, true},
		{Fragment{Start: "x10000_y10000_z0", End: "x10000_y0_z0"}, true},
		{Fragment{Start: "x0_y0_z0", End: "x0_y10000_z0"}, true},
		{Fragment{Start: "x20000_y0_z0", End: "x30000_y0_z0"}, false},
	}
	for i, v := range vs {
		if got := Connected(f, v.g); got != v.want {
			t.Errorf("test %d: connected: got=%v, want=%v", i, got, v.want)
		}
	}
}
