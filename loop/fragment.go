// Package loop reconstructs connected, correctly-ordered closed loops
// and open wires from unordered, arbitrarily-oriented edge fragments.
// Edge endpoints are quantized into comparable text keys so that
// adjacency between fragments is a constant-time key check rather than
// an epsilon-distance scan.
package loop

import (
	"fmt"
	"math"
	"sort"

	"zappem.net/pub/cam/region/shape"
)

// DefaultPrecision is the endpoint quantization used when callers have
// no opinion: four decimal digits, matching typical CAD tessellation
// noise for millimeter geometry.
const DefaultPrecision = 4

// Key is the quantized identity of one curve endpoint. Two fragments
// connect when any endpoint key of one equals any endpoint key of the
// other; nothing else about a key is meaningful.
type Key string

// Fragment is one input edge reduced to a comparable form: its two
// endpoint keys and the index of the edge it came from. Start and End
// carry no direction meaning; an edge can be traversed either way.
type Fragment struct {
	Start, End Key
	Source     int
}

// Connected reports whether two fragments share an endpoint key, in
// any of the four possible pairings.
func Connected(a, b Fragment) bool {
	if a.Start == b.Start || a.End == b.Start {
		return true
	}
	if a.Start == b.End || a.End == b.End {
		return true
	}
	return false
}

// quantize rounds v to precision decimal digits and scales it to an
// integer, so that formatted keys compare exactly.
func quantize(v float64, precision int) int64 {
	factor := math.Pow(10, float64(precision))
	return int64(math.Round(v * factor))
}

// keyXYZ formats a horizontal-pool key; same-plane fragments group by
// position.
func keyXYZ(x, y, z int64) Key {
	return Key(fmt.Sprintf("x%d_y%d_z%d", x, y, z))
}

// keyZXY formats an other-pool key; 3D fragments group by height band
// first.
func keyZXY(x, y, z int64) Key {
	return Key(fmt.Sprintf("z%d_x%d_y%d", z, x, y))
}

// Normalize reduces raw edges to two fragment pools: fragments whose
// endpoints share a Z value (the common cutting plane) and everything
// else. Both pools come back sorted by start key, with the original
// edge index breaking ties, so pool contents and order depend only on
// the input geometry. Duplicate edges are preserved; duplicates are
// resolved downstream.
func Normalize(edges []shape.Edge, precision int) (horizontal, other []Fragment) {
	for i, e := range edges {
		v0, v1 := e.First(), e.Last()
		x0, y0, z0 := quantize(v0.X, precision), quantize(v0.Y, precision), quantize(v0.Z, precision)
		x1, y1, z1 := quantize(v1.X, precision), quantize(v1.Y, precision), quantize(v1.Z, precision)
		if z0 == z1 {
			horizontal = append(horizontal, Fragment{
				Start:  keyXYZ(x0, y0, z0),
				End:    keyXYZ(x1, y1, z1),
				Source: i,
			})
		} else {
			other = append(other, Fragment{
				Start:  keyZXY(x0, y0, z0),
				End:    keyZXY(x1, y1, z1),
				Source: i,
			})
		}
	}
	sortPool(horizontal)
	sortPool(other)
	return horizontal, other
}

// sortPool orders a fragment pool by start key, tie-breaking on the
// source index so the order is stable across runs.
func sortPool(pool []Fragment) {
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Start != pool[j].Start {
			return pool[i].Start < pool[j].Start
		}
		return pool[i].Source < pool[j].Source
	})
}
