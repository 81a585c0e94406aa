package loop

import (
	"log"

	"zappem.net/pub/cam/region/shape"
)

// Found is the edge-level outcome of a full two-stage assembly run.
type Found struct {
	// Closed holds one stitched wire per recovered closed loop.
	Closed []shape.Wire
	// Open holds connected but non-cyclic wires (partial contours).
	Open []shape.Wire
	// Extra holds edges that never connected to anything, in input
	// order. The caller decides whether leftovers are fatal.
	Extra []shape.Edge
}

// pick maps a fragment chain back to the caller's edges.
func pick(edges []shape.Edge, frags []Fragment) []shape.Edge {
	out := make([]shape.Edge, len(frags))
	for i, f := range frags {
		out[i] = edges[f.Source]
	}
	return out
}

// Find reconstructs loops from an unordered edge collection. The
// horizontal fragments (common cutting plane) are assembled first;
// everything that fails to cycle there is recycled into the pool of
// remaining fragments for a second run that also keeps open wires.
// Ordered chains are handed to the stitcher for conversion into
// topological wires.
func Find(edges []shape.Edge, precision int) Found {
	horizontal, other := Normalize(edges, precision)

	primary := Assemble(horizontal, false)
	pool := append(other, primary.Extra...)
	sortPool(pool)
	secondary := Assemble(pool, true)

	var found Found
	for _, frags := range append(primary.Closed, secondary.Closed...) {
		w, err := shape.SortEdges(pick(edges, frags))
		if err != nil {
			log.Printf("discarding unstitchable loop: %v", err)
			found.Extra = append(found.Extra, pick(edges, frags)...)
			continue
		}
		found.Closed = append(found.Closed, w)
	}
	for _, frags := range secondary.Open {
		w, err := shape.SortEdges(pick(edges, frags))
		if err != nil {
			log.Printf("discarding unstitchable wire: %v", err)
			found.Extra = append(found.Extra, pick(edges, frags)...)
			continue
		}
		found.Open = append(found.Open, w)
	}
	for _, f := range secondary.Extra {
		found.Extra = append(found.Extra, edges[f.Source])
	}
	return found
}
