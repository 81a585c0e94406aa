package shape

import (
	"log"
	"math"

	"github.com/jbeda/geom"
)

// Planar ring math. A ring is the vertex loop of a closed wire on the
// working plane, with an implicit segment joining the last vertex back
// to the first. Rings passed to the walk functions are expected to be
// counter-clockwise.

// minMax sorts two numbers to be in ascending order.
func minMax(a, b float64) (float64, float64) {
	if a <= b {
		return a, b
	}
	return b, a
}

// segBounds determines the bounding box of the segment (a->b).
func segBounds(a, b geom.Coord) (c0, c1 geom.Coord) {
	c0.X, c1.X = minMax(a.X, b.X)
	c0.Y, c1.Y = minMax(a.Y, b.Y)
	return
}

// matchCoord recognizes when a is close enough to any of the points b...
func matchCoord(a geom.Coord, b ...geom.Coord) bool {
	for _, c := range b {
		if math.Abs(a.X-c.X) < Zeroish && math.Abs(a.Y-c.Y) < Zeroish {
			return true
		}
	}
	return false
}

// isLeft determines if point a is left of the line segment (b->c).
func isLeft(a, b, c geom.Coord) (left bool) {
	if (a.Y <= b.Y) == (a.Y <= c.Y) {
		return // a is fully above or below (b->c)
	}
	if b.X > a.X && c.X > a.X {
		left = true
		return
	}
	if math.Max(b.X, c.X) <= a.X {
		return
	}
	// a is horizontally within X range of (b->c).
	// compare a.Y to the y value of the line at x = a.X.
	if y := b.Y + (c.Y-b.Y)/(c.X-b.X)*(a.X-b.X); math.Abs(a.Y-y) > Zeroish {
		left = (y < a.Y) == (b.Y < c.Y)
	}
	return
}

// segmentHit determines if two segments (a->b) and (c->d) intersect
// and returns the point at which they do. It also evaluates the
// leftness of a to (c->d) and of c to (a->b).
func segmentHit(a, b, c, d geom.Coord) (hit bool, left, hold bool, at geom.Coord) {
	dABX, dABY := (b.X - a.X), (b.Y - a.Y)
	dCDX, dCDY := (d.X - c.X), (d.Y - c.Y)
	bbAB0, bbAB1 := segBounds(a, b)
	bbCD0, bbCD1 := segBounds(c, d)
	left = isLeft(a, c, d)
	hold = isLeft(c, a, b)
	// Do segment bounding boxes not come close to overlapping?
	if (bbAB0.X > bbCD1.X && math.Abs(bbAB0.X-bbCD1.X) > Zeroish) ||
		(bbAB1.X < bbCD0.X && math.Abs(bbAB1.X-bbCD0.X) > Zeroish) ||
		(bbAB0.Y > bbCD1.Y && math.Abs(bbAB0.Y-bbCD0.Y) > Zeroish) ||
		(bbAB1.Y < bbCD0.Y && math.Abs(bbAB1.Y-bbCD0.Y) > Zeroish) {
		return
	}
	// Overlapping bounding box.
	bb0 := geom.Coord{X: math.Max(bbAB0.X, bbCD0.X), Y: math.Max(bbAB0.Y, bbCD0.Y)}
	bb1 := geom.Coord{X: math.Min(bbAB1.X, bbCD1.X), Y: math.Min(bbAB1.Y, bbCD1.Y)}
	if r := dABX*dCDY - dABY*dCDX; math.Abs(r) > Zeroish {
		if math.Abs(dABX) < Zeroish {
			at.X = a.X
			mCD := dCDY / dCDX
			cCD := d.Y - mCD*d.X
			at.Y = cCD + mCD*a.X
		} else if math.Abs(dCDX) < Zeroish {
			at.X = d.X
			mAB := dABY / dABX
			cAB := a.Y - mAB*a.X
			at.Y = cAB + mAB*d.X
		} else {
			mAB := dABY / dABX
			mCD := dCDY / dCDX
			cAB := a.Y - mAB*a.X
			cCD := d.Y - mCD*d.X
			at.X = -(cAB - cCD) / (mAB - mCD)
			at.Y = cAB + mAB*at.X
		}
	} else if colinear := (a.Y-d.Y)*dABX - (a.X-d.X)*dABY; math.Abs(colinear) > Zeroish {
		return // parallel but not co-linear.
	} else {
		if a == c {
			// ignore segments starting from the same place.
			return
		}
		if hit = matchCoord(a, d); hit {
			at = d
			return
		}
		if hit = matchCoord(c, b); hit {
			at = c
			return
		}
		if hit = matchCoord(b, d); hit {
			at = d
			return
		}
		log.Printf("TODO unhandled co-linear segments: %v->%v vs %v->%v", a, b, c, d)
		return
	}
	hit = !(bb0.X > at.X || bb1.X < at.X || bb0.Y > at.Y || bb1.Y < at.Y)
	return
}

// signedArea computes the shoelace area of a ring. Positive for
// counter-clockwise rings (y up).
func signedArea(ring []geom.Coord) float64 {
	var area float64
	n := len(ring)
	if n < 3 {
		return 0
	}
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// ringContains reports whether p lies inside the ring, by crossing
// count with a ray running right from p.
func ringContains(ring []geom.Coord, p geom.Coord) bool {
	in := false
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			if x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X); x > p.X {
				in = !in
			}
		}
	}
	return in
}

// ringBounds returns the ring's bounding box.
func ringBounds(ring []geom.Coord) geom.Rect {
	r := geom.Rect{Min: ring[0], Max: ring[0]}
	for _, p := range ring[1:] {
		r.ExpandToContainCoord(p)
	}
	return r
}

// rectsOverlap reports whether two bounding boxes come within Zeroish
// of each other.
func rectsOverlap(a, b geom.Rect) bool {
	return a.Min.X <= b.Max.X+Zeroish && b.Min.X <= a.Max.X+Zeroish &&
		a.Min.Y <= b.Max.Y+Zeroish && b.Min.Y <= a.Max.Y+Zeroish
}

// rotateToHull rotates the ring so the leftmost (then lowest) vertex
// comes first. The walk in fuseRings needs to start from a point that
// is guaranteed to be on the outer hull.
func rotateToHull(ring []geom.Coord) []geom.Coord {
	zPt := 0
	for i, v := range ring {
		if v.X < ring[zPt].X || (v.X == ring[zPt].X && v.Y < ring[zPt].Y) {
			zPt = i
		}
	}
	out := append([]geom.Coord{}, ring[zPt:]...)
	return append(out, ring[:zPt]...)
}

// insertAt splices point e into the ring after index i.
func insertAt(ring []geom.Coord, i int, e geom.Coord) []geom.Coord {
	tmp := append([]geom.Coord{e}, ring[i:]...)
	return append(ring[:i:i], tmp...)
}

// fuseRings computes the union of two counter-clockwise rings whose
// boundaries properly cross. Crossing points are spliced into both
// rings and the combined perimeter is walked, switching rings at each
// crossing. Ring sections left out of the perimeter with three or more
// points are interior voids created by the merge, returned as holes.
//
// When the boundaries do not properly cross (disjoint, nested, or
// touching only at shared vertices or along shared edges) no union is
// formed and ok is false.
func fuseRings(a, b []geom.Coord) (union []geom.Coord, holes [][]geom.Coord, ok bool) {
	if !rectsOverlap(ringBounds(a), ringBounds(b)) {
		return nil, nil, false
	}
	p1 := rotateToHull(append([]geom.Coord{}, a...))
	p2 := rotateToHull(append([]geom.Coord{}, b...))
	// The walk starts on the ring holding the global hull point.
	if p2[0].X < p1[0].X || (p2[0].X == p1[0].X && p2[0].Y < p1[0].Y) {
		p1, p2 = p2, p1
	}

	// Splice every crossing point into both rings.
	hits := make(map[geom.Coord]bool)
	spliced := false
	for i := 0; i < len(p1); i++ {
		pa := p1[i]
		pb := p1[(i+1)%len(p1)]
		for j := 0; j < len(p2); j++ {
			pc := p2[j]
			pd := p2[(j+1)%len(p2)]
			hit, _, _, e := segmentHit(pa, pb, pc, pd)
			if !hit {
				continue
			}
			hits[e] = true
			if !matchCoord(e, pc, pd) {
				p2 = insertAt(p2, j+1, e)
				// possible the next crossing is "before" this hit.
				j--
				spliced = true
			}
			if !matchCoord(e, pa, pb) {
				p1 = insertAt(p1, i+1, e)
				pb = e
				spliced = true
			}
		}
	}
	if !spliced {
		// Only vertex or edge touches: not a proper crossing.
		return nil, nil, false
	}

	// Walk the perimeter. Initially we step around p2 until we find
	// the crossing point of interest, and then increment j instead to
	// find subsequent crossing points in p2.
	src1, src2 := p1, p2
	var extra1, extra2 []geom.Coord
	var offset1, offset2 int
	lockedOn := false
	steps := 0
	limit := 4 * (len(p1) + len(p2))
	for i, j := 0, 0; i < len(src1); {
		if steps++; steps > limit {
			log.Printf("ring union walk failed to close: %d+%d vertices", len(p1), len(p2))
			return nil, nil, false
		}
		pt1 := src1[(offset1+i)%len(src1)]
		if hits[pt1] {
			cmp := src2[(offset2+j)%len(src2)]
			if cmp != pt1 {
				if lockedOn {
					extra2 = append(extra2, cmp)
					j++
				} else {
					offset2++
				}
				continue
			}
			if !lockedOn {
				lockedOn = true
			}
			i++
			src1, src2 = src2, src1
			i, j = j, i
			offset1, offset2 = offset2, offset1
			extra1, extra2 = extra2, extra1
		}
		i++
		union = append(union, pt1)
	}

	// Ring sections that fell out of the perimeter bound interior
	// voids between the two shapes.
	for _, extra := range [][]geom.Coord{extra1, extra2} {
		for since, i := -1, 0; i < len(extra); i++ {
			if !hits[extra[i]] {
				continue
			}
			if since < 0 {
				since = i
				continue
			}
			if i+1-since > 2 {
				holes = append(holes, append([]geom.Coord{}, extra[since:i+1]...))
			}
			since = -1
		}
	}
	return union, holes, true
}
