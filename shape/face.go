package shape

import (
	"fmt"
	"log"
	"math"

	"github.com/jbeda/geom"
)

// Face is a planar region bounded by one closed outer wire, with zero
// or more closed hole wires strictly nested inside it.
type Face struct {
	Outer Wire
	Holes []Wire
}

// MakeFace builds a face from a closed wire.
func MakeFace(w Wire) (Face, error) {
	if !w.IsClosed() {
		return Face{}, fmt.Errorf("cannot build a face from an open wire (%d edges)", len(w.Edges))
	}
	return Face{Outer: w}, nil
}

// IsEmpty reports whether the face bounds no area.
func (f Face) IsEmpty() bool {
	return len(f.Outer.Edges) == 0
}

// Area returns the area of the face: the outer boundary's area less
// the area of every hole.
func (f Face) Area() float64 {
	if f.IsEmpty() {
		return 0
	}
	area := math.Abs(signedArea(f.Outer.Ring()))
	for _, h := range f.Holes {
		area -= math.Abs(signedArea(h.Ring()))
	}
	return area
}

// Bounds returns the face's bounding box on the working plane.
func (f Face) Bounds() geom.Rect {
	return f.Outer.Bounds()
}

// ContainsPoint reports whether p lies within the face (inside the
// outer boundary and outside every hole).
func (f Face) ContainsPoint(p geom.Coord) bool {
	if f.IsEmpty() || !ringContains(f.Outer.Ring(), p) {
		return false
	}
	for _, h := range f.Holes {
		if ringContains(h.Ring(), p) {
			return false
		}
	}
	return true
}

// CenterOfMass returns the area-weighted centroid of the face.
func (f Face) CenterOfMass() geom.Coord {
	cx, cy, sa := ringCentroid(f.Outer.Ring())
	weight := math.Abs(sa)
	sumX, sumY := cx*weight, cy*weight
	for _, h := range f.Holes {
		hx, hy, ha := ringCentroid(h.Ring())
		hw := math.Abs(ha)
		sumX -= hx * hw
		sumY -= hy * hw
		weight -= hw
	}
	if weight < Zeroish {
		return f.Outer.Ring()[0]
	}
	return geom.Coord{X: sumX / weight, Y: sumY / weight}
}

// ringCentroid returns the centroid and signed area of a ring.
func ringCentroid(ring []geom.Coord) (cx, cy, area float64) {
	n := len(ring)
	if n < 3 {
		return ring[0].X, ring[0].Y, 0
	}
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		area += cross
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	area /= 2
	if math.Abs(area) < Zeroish {
		return ring[0].X, ring[0].Y, 0
	}
	cx /= 6 * area
	cy /= 6 * area
	return cx, cy, area
}

// ccwRing returns the wire's ring wound counter-clockwise.
func ccwRing(w Wire) []geom.Coord {
	ring := w.Ring()
	if signedArea(ring) < 0 {
		rev := make([]geom.Coord, len(ring))
		for i, p := range ring {
			rev[len(ring)-1-i] = p
		}
		ring = rev
	}
	return ring
}

// ringWire builds a closed single-edge wire from a planar ring.
func ringWire(ring []geom.Coord) Wire {
	pts := make([]Vector, 0, len(ring)+1)
	for _, p := range ring {
		pts = append(pts, Vector{X: p.X, Y: p.Y})
	}
	pts = append(pts, pts[0])
	return Wire{Edges: []Edge{{pts: pts}}}
}

// Cut returns the boolean difference of f minus o. The area contract
// is what callers rely on: when o is disjoint from f the result keeps
// f's area exactly; when o nests inside f the area strictly shrinks
// and o becomes a hole; when f nests inside o the result is empty.
//
// Rings that properly cross are beyond this kernel's polyline booleans
// and are reported and left uncut.
func (f Face) Cut(o Face) Face {
	if f.IsEmpty() || o.IsEmpty() {
		return f
	}
	if !rectsOverlap(f.Bounds(), o.Bounds()) {
		return f
	}
	r1, r2 := ccwRing(f.Outer), ccwRing(o.Outer)
	if _, _, crossed := fuseRings(r1, r2); crossed {
		log.Printf("cut of partially overlapping faces is unsupported; returning face uncut")
		return f
	}
	if ringContains(r2, r1[0]) {
		// f is swallowed entirely.
		return Face{}
	}
	if !ringContains(r1, r2[0]) {
		return f
	}
	// o nests inside f. If it nests inside one of f's existing holes
	// it removes nothing.
	for _, h := range f.Holes {
		if ringContains(h.Ring(), r2[0]) {
			return f
		}
	}
	cut := Face{Outer: f.Outer, Holes: append(append([]Wire{}, f.Holes...), o.Outer)}
	return cut
}

// Fuse merges two faces whose outer boundaries properly cross into one
// face, carrying both faces' holes plus any interior voids created by
// the merge. The second return value is false when the boundaries do
// not cross and no merge is performed.
func (f Face) Fuse(o Face) (Face, bool) {
	if f.IsEmpty() || o.IsEmpty() {
		return f, false
	}
	union, voids, ok := fuseRings(ccwRing(f.Outer), ccwRing(o.Outer))
	if !ok {
		return f, false
	}
	fused := Face{Outer: ringWire(union)}
	fused.Holes = append(fused.Holes, f.Holes...)
	fused.Holes = append(fused.Holes, o.Holes...)
	for _, v := range voids {
		fused.Holes = append(fused.Holes, ringWire(v))
	}
	return fused, true
}
