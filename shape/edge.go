package shape

import "fmt"

// Edge is one curve fragment, already discretized to a polyline of two
// or more points. A straight line is the two-point case; arcs and
// splines arrive as denser runs. Edges are treated as immutable: the
// mutating operations return copies.
type Edge struct {
	pts []Vector
}

// Line builds a straight edge between two points.
func Line(a, b Vector) Edge {
	return Edge{pts: []Vector{a, b}}
}

// Polyline builds an edge from a run of consecutive points.
func Polyline(pts ...Vector) (Edge, error) {
	if len(pts) < 2 {
		return Edge{}, fmt.Errorf("edge requires 2 or more points: got=%d", len(pts))
	}
	return Edge{pts: append([]Vector{}, pts...)}, nil
}

// First returns the edge's first endpoint.
func (e Edge) First() Vector {
	return e.pts[0]
}

// Last returns the edge's last endpoint.
func (e Edge) Last() Vector {
	return e.pts[len(e.pts)-1]
}

// Points returns a copy of the edge's polyline.
func (e Edge) Points() []Vector {
	return append([]Vector{}, e.pts...)
}

// Length returns the polyline arc length.
func (e Edge) Length() float64 {
	var sum float64
	for i := 1; i < len(e.pts); i++ {
		sum += e.pts[i-1].DistanceTo(e.pts[i])
	}
	return sum
}

// Midpoint returns the point at half the arc length along the edge.
// For a degenerate (zero length) edge it returns the first endpoint.
func (e Edge) Midpoint() Vector {
	half := e.Length() / 2
	if half < Zeroish {
		return e.pts[0]
	}
	var run float64
	for i := 1; i < len(e.pts); i++ {
		d := e.pts[i-1].DistanceTo(e.pts[i])
		if run+d >= half {
			t := (half - run) / d
			return e.pts[i-1].Plus(e.pts[i].Minus(e.pts[i-1]).Times(t))
		}
		run += d
	}
	return e.pts[len(e.pts)-1]
}

// Reversed returns the edge traversed in the opposite direction.
func (e Edge) Reversed() Edge {
	r := make([]Vector, len(e.pts))
	for i, p := range e.pts {
		r[len(e.pts)-1-i] = p
	}
	return Edge{pts: r}
}

// Translated returns the edge moved by d.
func (e Edge) Translated(d Vector) Edge {
	r := make([]Vector, len(e.pts))
	for i, p := range e.pts {
		r[i] = p.Plus(d)
	}
	return Edge{pts: r}
}

// Flattened projects the edge onto the Z=0 plane. This is the parallel
// projection of the polyline along the Z axis, so a vertical segment
// collapses to a (possibly zero length) planar one.
func (e Edge) Flattened() Edge {
	r := make([]Vector, len(e.pts))
	for i, p := range e.pts {
		r[i] = Vector{X: p.X, Y: p.Y}
	}
	return Edge{pts: r}
}
