// Package region combines closed loops contributed by several source
// faces into the minimal set of machinable regions: outer boundaries
// plus the hole boundaries nested inside them. Internal seams between
// adjacent input faces are cancelled, 3D boundaries are flattened onto
// the working plane, and nesting is resolved with boolean-cut area
// comparison rather than coordinate containment, which is unreliable
// at shared boundaries of floating point curves.
package region

import (
	"fmt"
	"log"
	"math"
	"sort"

	"zappem.net/pub/cam/region/loop"
	"zappem.net/pub/cam/region/shape"
)

// Config carries the tunable tolerances for one combination run. It is
// passed explicitly; nothing in this package keeps state between
// calls.
type Config struct {
	// Precision is the decimal-digit quantization used for endpoint
	// and edge identity keys.
	Precision int
	// AreaTol decides when two areas compare equal in the nesting
	// tests. It trades false-positive nesting against missed nesting
	// on geometry with small overlaps from tessellation noise.
	AreaTol float64
}

// DefaultConfig returns the tolerances suitable for millimeter
// geometry from typical CAD tessellation.
func DefaultConfig() Config {
	return Config{Precision: 4, AreaTol: 1e-4}
}

// roughly reports whether two values compare equal within tol.
func roughly(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Region is one machinable area: an outer silhouette and the hole
// boundaries strictly nested inside it.
type Region struct {
	Outer shape.Wire
	Holes []shape.Wire
}

// Face returns the region as a geometry-kernel face.
func (r Region) Face() shape.Face {
	return shape.Face{Outer: r.Outer, Holes: r.Holes}
}

// Area returns the region's area, holes excluded.
func (r Region) Area() float64 {
	return r.Face().Area()
}

// SeparateFaceWires splits input faces into a pool of outer boundary
// wires and a pool of already-known hole wires.
func SeparateFaceWires(faces []shape.Face) (outer, inner []shape.Wire) {
	for _, f := range faces {
		outer = append(outer, f.Outer)
		inner = append(inner, f.Holes...)
	}
	return outer, inner
}

// FlattenWires projects closed wires onto the Z=0 working plane so
// that the 2D adjacency and duplicate tests downstream are valid.
// Open wires are skipped.
func FlattenWires(wires []shape.Wire) []shape.Wire {
	var flattened []shape.Wire
	for _, w := range wires {
		if !w.IsClosed() {
			continue
		}
		flattened = append(flattened, w.Flattened())
	}
	return flattened
}

// pointText quantizes a point into a comparable text form.
func pointText(p shape.Vector, precision int) string {
	factor := math.Pow(10, float64(precision))
	return fmt.Sprintf("x%d_y%d_z%d",
		int64(math.Round(p.X*factor)),
		int64(math.Round(p.Y*factor)),
		int64(math.Round(p.Z*factor)))
}

// xyMinVertex orders an edge's endpoints by x then y, giving a
// traversal-independent canonical endpoint.
func xyMinVertex(e shape.Edge) (shape.Vector, shape.Vector) {
	v0, v1 := e.First(), e.Last()
	if v0.X < v1.X {
		return v0, v1
	}
	if v0.X > v1.X {
		return v1, v0
	}
	if v0.Y <= v1.Y {
		return v0, v1
	}
	return v1, v0
}

// edgeKey builds the canonical identity of an edge from its minimum
// endpoint and its midpoint. Including the midpoint distinguishes a
// long edge from two collinear half-edges that share the same outer
// endpoints.
func edgeKey(e shape.Edge, precision int) string {
	minV, _ := xyMinVertex(e)
	return pointText(minV, precision) + pointText(e.Midpoint(), precision)
}

// MergeAdjacentWires removes internal seams from a set of wires: every
// edge contributed identically by two wires (the common wall between
// adjacent regions) is removed -- both copies, since a shared internal
// edge must vanish from the merged boundary entirely -- and the
// surviving edges are reassembled into wires by connectivity.
func MergeAdjacentWires(cfg Config, wires []shape.Wire) []shape.Wire {
	type keyed struct {
		key  string
		edge shape.Edge
	}
	var all []keyed
	for _, w := range wires {
		for _, e := range w.Edges {
			all = append(all, keyed{edgeKey(e, cfg.Precision), e})
		}
	}
	if len(all) == 0 {
		return nil
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].key < all[j].key })

	var unique []keyed
	for _, t := range all {
		if len(unique) > 0 && unique[len(unique)-1].key == t.key {
			// duplicate: an internal seam, cancel both copies
			unique = unique[:len(unique)-1]
			continue
		}
		unique = append(unique, t)
	}

	edges := make([]shape.Edge, len(unique))
	for i, t := range unique {
		edges[i] = t.edge
	}
	found := loop.Find(edges, cfg.Precision)
	if len(found.Extra) > 0 {
		log.Printf("merge left %d edges unconnected; excluding them", len(found.Extra))
	}
	return append(found.Closed, found.Open...)
}

// fuseWireAreas merges regions whose boundaries properly overlap.
// Open wires among the input are decomposed and re-stitched; only the
// ones that close survive. Closed wires become faces and faces with
// crossing boundaries are fused pairwise until stable.
func fuseWireAreas(cfg Config, wires []shape.Wire) []shape.Wire {
	var openEdges []shape.Edge
	var closed []shape.Wire
	for _, w := range wires {
		if w.IsClosed() {
			closed = append(closed, w)
		} else {
			openEdges = append(openEdges, w.Edges...)
		}
	}
	if len(openEdges) > 0 {
		for _, w := range shape.FindWires(openEdges) {
			if w.IsClosed() {
				closed = append(closed, w)
			} else {
				log.Printf("excluding wire that cannot be closed (%d edges)", len(w.Edges))
			}
		}
	}

	var faces []shape.Face
	for _, w := range closed {
		f, err := shape.MakeFace(w)
		if err != nil {
			log.Printf("excluding region: %v", err)
			continue
		}
		faces = append(faces, f)
	}
	for {
		merged := false
		for i := 0; i < len(faces) && !merged; i++ {
			for j := i + 1; j < len(faces); j++ {
				if fused, ok := faces[i].Fuse(faces[j]); ok {
					faces[i] = fused
					faces = append(faces[:j], faces[j+1:]...)
					merged = true
					break
				}
			}
		}
		if !merged {
			break
		}
	}

	var out []shape.Wire
	for _, f := range faces {
		out = append(out, f.Outer)
		out = append(out, f.Holes...)
	}
	return out
}

// ConsolidateAreas resolves nesting among closed wires. Faces are
// sorted largest first and the smallest remaining face is tested
// against every larger one by cutting it out and comparing areas: an
// unchanged area means disjoint, a reduced area means nested. A nested
// face becomes a hole of its container when saveHoles is set and is
// discarded otherwise. The outer boundaries and the accumulated hole
// boundaries are returned as separate face pools.
func ConsolidateAreas(cfg Config, wires []shape.Wire, saveHoles bool) (outer, inner []shape.Face) {
	type sized struct {
		face shape.Face
		area float64
	}
	var tups []sized
	for _, w := range wires {
		f, err := shape.MakeFace(w)
		if err != nil {
			log.Printf("excluding region: %v", err)
			continue
		}
		tups = append(tups, sized{f, f.Area()})
	}
	sort.SliceStable(tups, func(i, j int) bool { return tups[i].area > tups[j].area })

	var kept []sized
	for len(tups) > 0 {
		small := tups[len(tups)-1]
		tups = tups[:len(tups)-1]
		nested := false
		for i := range tups {
			big := tups[i]
			cut := big.face.Cut(small.face)
			if roughly(cut.Area(), big.area, cfg.AreaTol) {
				// small not inside this one
				continue
			}
			nested = true
			if saveHoles {
				tups[i] = sized{cut, cut.Area()}
			}
			break
		}
		if !nested {
			kept = append(kept, small)
		}
	}

	for _, t := range kept {
		outer = append(outer, shape.Face{Outer: t.face.Outer})
		for _, h := range t.face.Holes {
			inner = append(inner, shape.Face{Outer: h})
		}
	}
	return outer, inner
}

// wireText builds the identity of a closed wire from its face's center
// of mass, its length and its area.
func wireText(w shape.Wire) string {
	f := shape.Face{Outer: w}
	com := f.CenterOfMass()
	return pointText(shape.Vector{X: com.X, Y: com.Y}, 6) +
		fmt.Sprintf("_%d_%d", int64(w.Length()*10000), int64(f.Area()*100))
}

// removeSelectedInternals checks whether any inner wires are identical
// to selected outer wires and removes both when true: a face selected
// that is itself the hole boundary of a neighboring larger face must
// cancel out rather than appear twice.
func removeSelectedInternals(outerWires, innerWires []shape.Wire) (outers, inners []shape.Wire) {
	type detail struct {
		text  string
		w     shape.Wire
		inner bool
	}
	var data []detail
	for _, w := range outerWires {
		data = append(data, detail{wireText(w), w, false})
	}
	for _, w := range innerWires {
		data = append(data, detail{wireText(w), w, true})
	}
	sort.SliceStable(data, func(i, j int) bool { return data[i].text < data[j].text })

	var unique []detail
	for _, d := range data {
		if len(unique) > 0 && unique[len(unique)-1].text == d.text {
			// selected duplicate: cancel both
			unique = unique[:len(unique)-1]
			continue
		}
		unique = append(unique, d)
	}
	for _, d := range unique {
		if d.inner {
			inners = append(inners, d.w)
		} else {
			outers = append(outers, d.w)
		}
	}
	return outers, inners
}

// IdentifyRegions reduces a set of face shapes to their minimal outer
// regions and hole regions: separate outer from hole wires, flatten,
// cancel self-selected holes, fuse overlapping areas, remove adjacent
// seams, and consolidate nesting -- twice, since consolidation can
// itself expose new adjacency. saveExistingHoles preserves holes the
// input faces already carried; saveMergedHoles keeps holes created by
// the merger of the selected faces.
//
// The returned pools are both empty when the selection fully
// self-cancels or no wire survives; callers must treat that as
// "nothing to machine", not as an error.
func IdentifyRegions(cfg Config, faces []shape.Face, saveExistingHoles, saveMergedHoles bool) (outer, inner []shape.Face) {
	outersRaw, innersRaw := SeparateFaceWires(faces)
	if len(outersRaw) == 0 {
		log.Printf("no outer wires in selection")
		return nil, nil
	}

	flatOuters := FlattenWires(outersRaw)

	var internal []shape.Face
	if len(innersRaw) > 0 {
		flatInners := FlattenWires(innersRaw)
		var rawInners []shape.Wire
		flatOuters, rawInners = removeSelectedInternals(flatOuters, flatInners)
		if saveExistingHoles {
			for _, w := range rawInners {
				f, err := shape.MakeFace(w)
				if err != nil {
					log.Printf("excluding hole: %v", err)
					continue
				}
				internal = append(internal, f)
			}
		}
	}

	fused := fuseWireAreas(cfg, flatOuters)
	if len(fused) == 0 {
		log.Printf("no fused flat outer wires")
		return nil, nil
	}

	merged := MergeAdjacentWires(cfg, fused)
	outs, ins := ConsolidateAreas(cfg, merged, saveMergedHoles)
	internal = append(internal, ins...)

	// A second round: consolidation can leave outer boundaries that
	// are themselves adjacent or overlapping.
	var outerWires []shape.Wire
	for _, f := range outs {
		outerWires = append(outerWires, f.Outer)
	}
	merged = MergeAdjacentWires(cfg, fuseWireAreas(cfg, outerWires))
	outs, ins = ConsolidateAreas(cfg, merged, saveMergedHoles)
	internal = append(internal, ins...)

	return outs, internal
}

// CombineRegions runs the full combination and cuts every hole out of
// the outer region containing it, producing the final hole-aware
// machinable regions. It returns nil when nothing machinable remains
// (for example a fully self-cancelling selection).
func CombineRegions(cfg Config, faces []shape.Face, saveExistingHoles, saveMergedHoles bool) []Region {
	if len(faces) == 0 {
		return nil
	}
	outs, ins := IdentifyRegions(cfg, faces, saveExistingHoles, saveMergedHoles)
	if len(outs) == 0 {
		return nil
	}

	regions := make([]Region, len(outs))
	acc := append([]shape.Face{}, outs...)
	for i, f := range outs {
		regions[i] = Region{Outer: f.Outer}
	}
	for _, in := range ins {
		claimed := false
		for i := range acc {
			cut := acc[i].Cut(in)
			if roughly(cut.Area(), acc[i].Area(), cfg.AreaTol) {
				continue
			}
			acc[i] = cut
			regions[i].Holes = append(regions[i].Holes, in.Outer)
			claimed = true
			break
		}
		if !claimed {
			log.Printf("hole region contained by no outer region; dropped")
		}
	}
	return regions
}
