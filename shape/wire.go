package shape

import (
	"fmt"

	"github.com/jbeda/geom"
)

// Wire is an ordered run of edges where each edge's last point
// coincides with the next edge's first point.
type Wire struct {
	Edges []Edge
}

// stitch grows a single connected wire from an unordered edge set. It
// seeds the wire with the first edge and then repeatedly attaches any
// remaining edge that touches either open end, flipping edges as
// required so the run stays head-to-tail. Edges that never touch the
// grown wire are returned as leftover.
func stitch(edges []Edge) (Wire, []Edge) {
	if len(edges) == 0 {
		return Wire{}, nil
	}
	chain := []Edge{edges[0]}
	pool := append([]Edge{}, edges[1:]...)
	head := chain[0].First()
	tail := chain[0].Last()
	for {
		attached := false
		for i := 0; i < len(pool); i++ {
			e := pool[i]
			switch {
			case Coincident(e.First(), tail):
				chain = append(chain, e)
				tail = e.Last()
			case Coincident(e.Last(), tail):
				chain = append(chain, e.Reversed())
				tail = e.First()
			case Coincident(e.Last(), head):
				chain = append([]Edge{e}, chain...)
				head = e.First()
			case Coincident(e.First(), head):
				chain = append([]Edge{e.Reversed()}, chain...)
				head = e.Last()
			default:
				continue
			}
			pool = append(pool[:i], pool[i+1:]...)
			attached = true
			i--
		}
		if !attached {
			break
		}
	}
	return Wire{Edges: chain}, pool
}

// SortEdges accepts an unordered but connected edge set and returns a
// single topological wire with every edge oriented so consecutive
// edges meet head-to-tail. It fails if the set is not fully connected.
func SortEdges(edges []Edge) (Wire, error) {
	if len(edges) == 0 {
		return Wire{}, fmt.Errorf("no edges to sort")
	}
	w, left := stitch(edges)
	if len(left) != 0 {
		return Wire{}, fmt.Errorf("edge set is disconnected: %d of %d edges unreachable", len(left), len(edges))
	}
	return w, nil
}

// FindWires partitions an arbitrary edge set into connected groups and
// stitches each group into a wire.
func FindWires(edges []Edge) []Wire {
	var wires []Wire
	pool := append([]Edge{}, edges...)
	for len(pool) > 0 {
		var w Wire
		w, pool = stitch(pool)
		wires = append(wires, w)
	}
	return wires
}

// First returns the wire's first point.
func (w Wire) First() Vector {
	return w.Edges[0].First()
}

// Last returns the wire's last point.
func (w Wire) Last() Vector {
	return w.Edges[len(w.Edges)-1].Last()
}

// IsClosed reports whether the wire's two open ends coincide.
func (w Wire) IsClosed() bool {
	if len(w.Edges) == 0 {
		return false
	}
	return Coincident(w.First(), w.Last()) && w.Length() > Zeroish
}

// Length returns the total arc length of the wire.
func (w Wire) Length() float64 {
	var sum float64
	for _, e := range w.Edges {
		sum += e.Length()
	}
	return sum
}

// Points returns the wire's polyline, with coincident joint points
// collapsed.
func (w Wire) Points() []Vector {
	var pts []Vector
	for _, e := range w.Edges {
		for _, p := range e.pts {
			if len(pts) > 0 && Coincident(pts[len(pts)-1], p) {
				continue
			}
			pts = append(pts, p)
		}
	}
	return pts
}

// Ring projects the wire onto the working plane as a vertex ring. For
// a closed wire the duplicated closing point is dropped.
func (w Wire) Ring() []geom.Coord {
	pts := w.Points()
	if len(pts) > 1 && Coincident(pts[0], pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	ring := make([]geom.Coord, len(pts))
	for i, p := range pts {
		ring[i] = p.XY()
	}
	return ring
}

// Reversed returns the wire traversed in the opposite direction.
func (w Wire) Reversed() Wire {
	r := make([]Edge, len(w.Edges))
	for i, e := range w.Edges {
		r[len(w.Edges)-1-i] = e.Reversed()
	}
	return Wire{Edges: r}
}

// Translated returns the wire moved by d.
func (w Wire) Translated(d Vector) Wire {
	r := make([]Edge, len(w.Edges))
	for i, e := range w.Edges {
		r[i] = e.Translated(d)
	}
	return Wire{Edges: r}
}

// Flattened projects the wire onto the Z=0 plane.
func (w Wire) Flattened() Wire {
	r := make([]Edge, len(w.Edges))
	for i, e := range w.Edges {
		r[i] = e.Flattened()
	}
	return Wire{Edges: r}
}

// ZSpan returns the wire's vertical extent.
func (w Wire) ZSpan() (min, max float64) {
	first := true
	for _, e := range w.Edges {
		for _, p := range e.pts {
			if first || p.Z < min {
				min = p.Z
			}
			if first || p.Z > max {
				max = p.Z
			}
			first = false
		}
	}
	return min, max
}

// Bounds returns the wire's bounding box on the working plane.
func (w Wire) Bounds() geom.Rect {
	pts := w.Points()
	r := geom.Rect{Min: pts[0].XY(), Max: pts[0].XY()}
	for _, p := range pts[1:] {
		r.ExpandToContainCoord(p.XY())
	}
	return r
}

// Clockwise reports whether a closed wire winds clockwise, by the
// shoelace formula (negative signed area means clockwise with y up).
func (w Wire) Clockwise() bool {
	return signedArea(w.Ring()) < 0
}

// Oriented returns the wire wound in the requested direction.
func (w Wire) Oriented(clockwise bool) Wire {
	if w.Clockwise() == clockwise {
		return w
	}
	return w.Reversed()
}
