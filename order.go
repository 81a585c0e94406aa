package region

import "sort"

// Order sorts regions into machining order by outer area: inside-out
// (smallest first, the usual pocket-clearing order) or outside-in
// (largest first, for profiling toward the center). Ties break on the
// center of mass, x then y, so the order is deterministic.
func Order(regions []Region, insideOut bool) {
	sort.SliceStable(regions, func(i, j int) bool {
		ai, aj := regions[i].Area(), regions[j].Area()
		if ai != aj {
			if insideOut {
				return ai < aj
			}
			return ai > aj
		}
		ci, cj := regions[i].Face().CenterOfMass(), regions[j].Face().CenterOfMass()
		if ci.X != cj.X {
			return ci.X < cj.X
		}
		return ci.Y < cj.Y
	})
}

// Orient normalizes the traversal direction of every region's
// boundaries: outer wires wound clockwise when clockwise is true
// (counter-clockwise otherwise), and hole wires wound opposite to
// their outer, so downstream path generators see a consistent
// material-side convention.
func Orient(regions []Region, clockwise bool) {
	for i := range regions {
		regions[i].Outer = regions[i].Outer.Oriented(clockwise)
		for j := range regions[i].Holes {
			regions[i].Holes[j] = regions[i].Holes[j].Oriented(!clockwise)
		}
	}
}
