package loop

import (
	"fmt"
	"testing"

	"zappem.net/pub/cam/region/shape"
)

func v(x, y, z float64) shape.Vector {
	return shape.Vector{X: x, Y: y, Z: z}
}

// scrambledSquare returns the four sides of a unit square in shuffled
// order with one side reversed.
func scrambledSquare() []shape.Edge {
	return []shape.Edge{
		shape.Line(v(1, 1, 0), v(0, 1, 0)),
		shape.Line(v(0, 0, 0), v(1, 0, 0)),
		shape.Line(v(0, 1, 0), v(0, 0, 0)),
		shape.Line(v(1, 1, 0), v(1, 0, 0)), // reversed
	}
}

func TestAssembleSquare(t *testing.T) {
	horiz, other := Normalize(scrambledSquare(), DefaultPrecision)
	if len(other) != 0 {
		t.Fatalf("non-horizontal fragments: got=%d, want=0", len(other))
	}
	r := Assemble(horiz, false)
	if len(r.Closed) != 1 || len(r.Open) != 0 || len(r.Extra) != 0 {
		t.Fatalf("buckets: closed=%d open=%d extra=%d, want 1/0/0",
			len(r.Closed), len(r.Open), len(r.Extra))
	}
	loop := r.Closed[0]
	if len(loop) != 4 {
		t.Fatalf("loop length: got=%d, want=4", len(loop))
	}
	for i := 1; i < len(loop); i++ {
		if !Connected(loop[i-1], loop[i]) {
			t.Errorf("fragments %d and %d not connected", i-1, i)
		}
	}
	if !Connected(loop[0], loop[len(loop)-1]) {
		t.Error("loop endpoints not connected")
	}
}

func TestAssembleTwoFragmentCycle(t *testing.T) {
	// Two edges joining the same pair of endpoints close a loop; two
	// edges sharing only one endpoint do not.
	cycle := []Fragment{
		{Start: "x0_y0_z0", End: "x10000_y0_z0", Source: 0},
		{Start: "x0_y0_z0", End: "x10000_y0_z0", Source: 1},
	}
	r := Assemble(cycle, true)
	if len(r.Closed) != 1 || len(r.Open) != 0 {
		t.Errorf("two-fragment cycle: closed=%d open=%d, want 1/0", len(r.Closed), len(r.Open))
	}

	bent := []Fragment{
		{Start: "x0_y0_z0", End: "x10000_y0_z0", Source: 0},
		{Start: "x10000_y0_z0", End: "x10000_y10000_z0", Source: 1},
	}
	r = Assemble(bent, true)
	if len(r.Closed) != 0 || len(r.Open) != 1 {
		t.Errorf("two-fragment chain: closed=%d open=%d, want 0/1", len(r.Closed), len(r.Open))
	}
}

func TestAssembleSingleton(t *testing.T) {
	pool := []Fragment{{Start: "x0_y0_z0", End: "x10000_y0_z0"}}
	r := Assemble(pool, true)
	if len(r.Closed) != 0 || len(r.Open) != 0 || len(r.Extra) != 1 {
		t.Errorf("singleton: closed=%d open=%d extra=%d, want 0/0/1",
			len(r.Closed), len(r.Open), len(r.Extra))
	}
}

func TestAssembleConservation(t *testing.T) {
	edges := append(scrambledSquare(),
		// An open three-edge chain.
		shape.Line(v(5, 0, 0), v(6, 0, 0)),
		shape.Line(v(6, 0, 0), v(6, 1, 0)),
		shape.Line(v(6, 1, 0), v(7, 1, 0)),
		// A stray edge connected to nothing.
		shape.Line(v(10, 10, 0), v(11, 10, 0)),
	)
	horiz, other := Normalize(edges, DefaultPrecision)
	pool := append(horiz, other...)
	r := Assemble(pool, true)

	seen := make(map[int]int)
	for _, loop := range r.Closed {
		for _, f := range loop {
			seen[f.Source]++
		}
	}
	for _, chain := range r.Open {
		for _, f := range chain {
			seen[f.Source]++
		}
	}
	for _, f := range r.Extra {
		seen[f.Source]++
	}
	if len(seen) != len(edges) {
		t.Errorf("sources seen: got=%d, want=%d", len(seen), len(edges))
	}
	for src, n := range seen {
		if n != 1 {
			t.Errorf("source %d appeared %d times", src, n)
		}
	}
	if len(r.Closed) != 1 || len(r.Open) != 1 || len(r.Extra) != 1 {
		t.Errorf("buckets: closed=%d open=%d extra=%d, want 1/1/1",
			len(r.Closed), len(r.Open), len(r.Extra))
	}
}

func TestAssemblePassCapConserves(t *testing.T) {
	// Enough mutually disconnected fragments to trip the pass cap.
	// Even when assembly gives up, every fragment must surface in a
	// bucket.
	var pool []Fragment
	for i := 0; i < 60; i++ {
		pool = append(pool, Fragment{
			Start:  Key(fmt.Sprintf("x%d_y0_z0", 2*i*10000)),
			End:    Key(fmt.Sprintf("x%d_y0_z0", (2*i+1)*10000)),
			Source: i,
		})
	}
	r := Assemble(pool, true)
	if len(r.Closed) != 0 || len(r.Open) != 0 {
		t.Errorf("buckets: closed=%d open=%d, want 0/0", len(r.Closed), len(r.Open))
	}
	if len(r.Extra) != len(pool) {
		t.Errorf("extra fragments: got=%d, want=%d", len(r.Extra), len(pool))
	}
}

func TestFindSquareWithStray(t *testing.T) {
	edges := append(scrambledSquare(),
		shape.Line(v(10, 10, 0), v(11, 10, 0)))
	found := Find(edges, DefaultPrecision)
	if len(found.Closed) != 1 {
		t.Fatalf("closed wires: got=%d, want=1", len(found.Closed))
	}
	w := found.Closed[0]
	if !w.IsClosed() {
		t.Error("returned wire is not closed")
	}
	if len(w.Edges) != 4 {
		t.Errorf("wire edges: got=%d, want=4", len(w.Edges))
	}
	if len(found.Open) != 0 {
		t.Errorf("open wires: got=%d, want=0", len(found.Open))
	}
	if len(found.Extra) != 1 {
		t.Errorf("extra edges: got=%d, want=1", len(found.Extra))
	}
}

func TestFindOpenChainRecycled(t *testing.T) {
	// Horizontal edges that fail to close are recycled into the second
	// assembly round where open wires are acceptable.
	edges := []shape.Edge{
		shape.Line(v(0, 0, 0), v(1, 0, 0)),
		shape.Line(v(1, 0, 0), v(1, 1, 0)),
		shape.Line(v(1, 1, 0), v(2, 1, 0)),
	}
	found := Find(edges, DefaultPrecision)
	if len(found.Closed) != 0 {
		t.Fatalf("closed wires: got=%d, want=0", len(found.Closed))
	}
	if len(found.Open) != 1 {
		t.Fatalf("open wires: got=%d, want=1", len(found.Open))
	}
	if len(found.Open[0].Edges) != 3 {
		t.Errorf("open wire edges: got=%d, want=3", len(found.Open[0].Edges))
	}
	if found.Open[0].IsClosed() {
		t.Error("open wire reported closed")
	}
	if len(found.Extra) != 0 {
		t.Errorf("extra edges: got=%d, want=0", len(found.Extra))
	}
}

func TestFindVerticalLoop(t *testing.T) {
	// A diamond standing in the XZ plane: every edge changes Z, so all
	// four land in the non-horizontal pool yet still close into a loop.
	edges := []shape.Edge{
		shape.Line(v(0, 0, 0), v(1, 0, 1)),
		shape.Line(v(1, 0, 1), v(2, 0, 0)),
		shape.Line(v(2, 0, 0), v(1, 0, -1)),
		shape.Line(v(1, 0, -1), v(0, 0, 0)),
	}
	found := Find(edges, DefaultPrecision)
	if len(found.Closed) != 1 {
		t.Fatalf("closed wires: got=%d, want=1", len(found.Closed))
	}
	if len(found.Open) != 0 || len(found.Extra) != 0 {
		t.Errorf("leftovers: open=%d extra=%d, want 0/0", len(found.Open), len(found.Extra))
	}
}
