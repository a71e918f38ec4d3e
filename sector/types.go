// Package sector decomposes each refined-graph node's link graph into
// sectors: connected components representing locally coherent "sheets"
// of the 2-complex around the node, plus the exposure bookkeeping that
// lets the burn-front scheduler know when a sector's boundary has been
// reached.
package sector

import "github.com/ibujah/eroth/burntime"

// Sector is a connected component of a node's link graph, represented as
// an arc of positions into the node's Neigh slice.
type Sector struct {
	// Arc is the ordered traversal of the sector: a simple path for an
	// open sector, or a cycle for a closed one (Closed is then true and
	// Arc's last element is adjacent, in the link, to its first).
	Arc    []int
	Closed bool

	burned   bool
	primeArc int // valid iff primeSet
	primeSet bool
	time     burntime.BurnTime

	// unexposed[e] holds the ids of other sectors sharing arc endpoint e
	// (0 = Arc[0], 1 = Arc[len-1]) that are not yet burned. The sector is
	// exposed once either side empties.
	unexposed [2]map[int]struct{}
}

// IsExposed reports whether at least one of the sector's two arc
// endpoints has no other unburned sector attached.
func (s *Sector) IsExposed() bool {
	return len(s.unexposed[0]) == 0 || len(s.unexposed[1]) == 0
}

// IsBurned reports whether the sector has been burned.
func (s *Sector) IsBurned() bool {
	return s.burned
}

// Time returns the sector's current burn time.
func (s *Sector) Time() burntime.BurnTime {
	return s.time
}

// SetTime records a new (decreasing) finite burn time for the sector.
func (s *Sector) SetTime(t float32) {
	s.time = burntime.Finite(t)
}

// PrimeArc returns the arc position that currently determines the
// sector's time, and whether one has been set.
func (s *Sector) PrimeArc() (int, bool) {
	return s.primeArc, s.primeSet
}

// SetPrimeArc records the arc position that determined the sector's
// current time.
func (s *Sector) SetPrimeArc(pos int) {
	s.primeArc = pos
	s.primeSet = true
}

// ArcPosition returns the position of numNeigh within the sector's arc,
// and whether it occurs there.
func (s *Sector) ArcPosition(numNeigh int) (int, bool) {
	for i, v := range s.Arc {
		if v == numNeigh {
			return i, true
		}
	}
	return 0, false
}

// burn marks the sector burned and clears its unexposed sets. The
// exposure cascade to sibling sectors is done by Decomp.BurnSector.
func (s *Sector) burn() {
	s.burned = true
	s.unexposed[0] = nil
	s.unexposed[1] = nil
}

// exposeNeigh removes ind from both of the sector's unexposed sets,
// called when sector ind has just burned.
func (s *Sector) exposeNeigh(ind int) {
	delete(s.unexposed[0], ind)
	delete(s.unexposed[1], ind)
}
