package loop

import "log"

// maxPasses bounds the outer pass loop. Malformed input (cyclically
// ambiguous adjacency) stops here with partial results rather than
// spinning; CAM geometry comes from user-supplied CAD data and partial
// results are still useful to the caller.
const maxPasses = 100

// Result partitions an input pool: every fragment of the pool ends up
// in exactly one closed loop, one open wire, or the extras.
type Result struct {
	// Closed holds chains whose ends meet, in physical connection
	// order: consecutive fragments share an endpoint key, as do the
	// first and last.
	Closed [][]Fragment
	// Open holds connected chains that do not cycle.
	Open [][]Fragment
	// Extra holds fragments that never connected to anything.
	Extra []Fragment
}

// chain is the in-progress loop being grown during one assembly run.
// Fragments attach at either end; every internal join is already fully
// connected, so only the two end fragments need checking against a
// candidate.
type chain struct {
	frags []Fragment
}

// attach connects f to the chain if it shares an endpoint key with the
// chain's last fragment (append) or first fragment (prepend). The last
// end is tried first; the first candidate to match, in pool order,
// wins. A fragment matching both ends is accepted as a normal
// connection at the last end.
func (c *chain) attach(f Fragment) bool {
	if Connected(c.frags[len(c.frags)-1], f) {
		c.frags = append(c.frags, f)
		return true
	}
	if Connected(c.frags[0], f) {
		c.frags = append([]Fragment{f}, c.frags...)
		return true
	}
	return false
}

// sharesBothEndpoints reports whether two fragments have both endpoint
// keys in common, i.e. together they bound a two-fragment cycle.
func sharesBothEndpoints(a, b Fragment) bool {
	if a.Start == a.End {
		return false
	}
	start := a.Start == b.Start || a.Start == b.End
	end := a.End == b.Start || a.End == b.End
	return start && end
}

// closed reports whether the chain cycles. Adjacent fragments always
// share one key, so a two-fragment chain only cycles when both keys
// are shared; longer chains cycle when the two end fragments connect.
func (c *chain) closed() bool {
	switch n := len(c.frags); n {
	case 1:
		return c.frags[0].Start == c.frags[0].End
	case 2:
		return sharesBothEndpoints(c.frags[0], c.frags[1])
	default:
		return Connected(c.frags[0], c.frags[n-1])
	}
}

// finalize classifies an exhausted chain. In the primary run
// (allowOpen false) a cycle needs more than one fragment; anything
// else goes to the extras for recycling into the secondary pool. In
// the secondary run a single self-connecting fragment counts as a
// cycle, multi-fragment non-cycles are kept as open wires, and lone
// fragments are extras.
func (r *Result) finalize(c *chain, allowOpen bool) {
	n := len(c.frags)
	minClosed := 2
	if allowOpen {
		minClosed = 1
	}
	if n >= minClosed && c.closed() {
		r.Closed = append(r.Closed, c.frags)
		return
	}
	if allowOpen && n > 1 {
		r.Open = append(r.Open, c.frags)
		return
	}
	r.Extra = append(r.Extra, c.frags...)
}

// Assemble partitions a fragment pool into closed loops, open wires
// and leftover fragments by iterative nearest-neighbor growth. A chain
// is seeded from the front of the pool and grown one full pass at a
// time; after two consecutive passes in which nothing attaches, the
// chain is finalized and a fresh one is seeded from whatever remains.
//
// Fragments are conserved: every pool entry appears in exactly one of
// the result's three buckets, including when the pass cap aborts the
// run early.
func Assemble(pool []Fragment, allowOpen bool) Result {
	var res Result
	if len(pool) == 0 {
		return res
	}
	pool = append([]Fragment{}, pool...)
	c := &chain{frags: []Fragment{pool[0]}}
	pool = pool[1:]
	clean := false
	for passes := 1; ; passes++ {
		if passes > maxPasses {
			log.Printf("loop assembly aborted after %d passes with %d fragments unresolved", maxPasses, len(c.frags)+len(pool))
			res.Extra = append(res.Extra, c.frags...)
			res.Extra = append(res.Extra, pool...)
			return res
		}
		unused := pool[:0]
		connected := false
		for _, f := range pool {
			if c.attach(f) {
				connected = true
			} else {
				unused = append(unused, f)
			}
		}
		pool = unused
		if connected {
			clean = false
			continue
		}
		if !clean {
			clean = true
			continue
		}
		// Two clean passes: nothing else will attach to this chain.
		res.finalize(c, allowOpen)
		if len(pool) == 0 {
			return res
		}
		c = &chain{frags: []Fragment{pool[0]}}
		pool = pool[1:]
		clean = false
	}
}
