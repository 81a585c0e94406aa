// Package shape is the geometry layer under the loop assembler and the
// region combiner. Curves are realized as discretized polylines: an
// Edge is a run of 3D points, a Wire is a connected run of edges, and a
// Face is a closed outer wire plus zero or more hole wires. Planar
// (XY) math is done on geom.Coord rings; the Z coordinate survives
// through edges and wires so that non-horizontal geometry can be
// flattened onto the working plane before any ring operation.
//
// The conventions for this package are x increases to the right, and
// y increases up the page. This convention gives meaning to clockwise
// and counter-clockwise.
package shape

import (
	"math"

	"github.com/jbeda/geom"
)

// Zeroish is defined to merge points and avoid rounding error
// problems. Anything closer than this is treated as coincident (a
// convenience default for values representing millimeters).
var Zeroish = 1e-6

// Vector holds a 3d coordinate value.
type Vector struct {
	X, Y, Z float64
}

// Plus returns the sum of two vectors.
func (v Vector) Plus(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Minus returns the difference of two vectors.
func (v Vector) Minus(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Times scales the vector by s.
func (v Vector) Times(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// DistanceTo returns the euclidean distance between two points.
func (v Vector) DistanceTo(o Vector) float64 {
	dx, dy, dz := o.X-v.X, o.Y-v.Y, o.Z-v.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// XY projects the point onto the working plane.
func (v Vector) XY() geom.Coord {
	return geom.Coord{X: v.X, Y: v.Y}
}

// Coincident recognizes when two points are close enough to merge.
func Coincident(a, b Vector) bool {
	return math.Abs(a.X-b.X) < Zeroish &&
		math.Abs(a.Y-b.Y) < Zeroish &&
		math.Abs(a.Z-b.Z) < Zeroish
}
