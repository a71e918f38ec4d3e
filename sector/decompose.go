package sector

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ibujah/eroth/burngraph"
)

// ErrNoExtremity indicates the sector labeling admits no arc endpoint
// for a sector that should have one. This cannot happen on a valid
// manifold link graph; it signals a corrupted input complex.
var ErrNoExtremity = errors.New("sector: no extremity found for sector")

const unset = -1

// Decomp is the sector decomposition of one refined-graph node: its
// labeled link-edges, its reified sectors, and its boundary/singular
// classification.
type Decomp struct {
	// EdgeSector[i] parallels node.NeighAdj[i]: the sector id assigned to
	// each link-edge incident to neighbor position i.
	EdgeSector [][]int
	Sectors    []Sector
	Boundary   bool
	Singular   bool
}

// Decompose partitions node's link graph into sectors, normalizing
// node.NeighAdj (sort + dedup) in place first. It fails with
// ErrNoExtremity when a sector has no locatable arc endpoint, which
// only a corrupted link graph can produce.
func Decompose(node *burngraph.Node) (*Decomp, error) {
	d := &Decomp{EdgeSector: make([][]int, len(node.NeighAdj))}

	bound, sing := false, false
	for i := range node.NeighAdj {
		sort.Ints(node.NeighAdj[i])
		node.NeighAdj[i] = dedupInts(node.NeighAdj[i])

		d.EdgeSector[i] = make([]int, len(node.NeighAdj[i]))
		for j := range d.EdgeSector[i] {
			d.EdgeSector[i][j] = unset
		}
		switch len(node.NeighAdj[i]) {
		case 1:
			bound = true
		default:
			if len(node.NeighAdj[i]) >= 3 {
				sing = true
			}
		}
	}
	d.Boundary = bound && !sing
	d.Singular = sing

	numSector, oneClosed := detectSectors(node.NeighAdj, d.EdgeSector)

	if oneClosed {
		arc, _ := followSector(node.NeighAdj, d.EdgeSector, 0, 0)
		d.Sectors = []Sector{{
			Arc:    arc,
			Closed: true,
			unexposed: [2]map[int]struct{}{
				{0: {}}, {0: {}},
			},
		}}
		return d, nil
	}

	for currSec := 0; currSec < numSector; currSec++ {
		extremity, err := findExtremity(d.EdgeSector, currSec)
		if err != nil {
			return nil, err
		}
		arc, closed := followSector(node.NeighAdj, d.EdgeSector, extremity, currSec)

		beg := endpointUnexposed(d.EdgeSector[arc[0]], currSec, closed)
		end := endpointUnexposed(d.EdgeSector[arc[len(arc)-1]], currSec, closed)

		d.Sectors = append(d.Sectors, Sector{
			Arc:       arc,
			Closed:    closed,
			unexposed: [2]map[int]struct{}{beg, end},
		})
	}

	return d, nil
}

func dedupInts(xs []int) []int {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, v := range xs[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// detectSectors flood-fills sector labels over the link graph starting
// from every non-degree-2 link-node, returning the number of sectors
// found and whether the link is a single closed cycle (no junction/
// boundary node at all).
func detectSectors(neighAdj, edgeSector [][]int) (numSector int, oneClosed bool) {
	for i := range edgeSector {
		if len(edgeSector[i]) == 2 {
			continue
		}
		for j := range edgeSector[i] {
			if edgeSector[i][j] != unset {
				continue
			}
			edgeSector[i][j] = numSector
			prevInd := i
			currInd := neighAdj[i][j]
			for {
				if len(edgeSector[currInd]) != 2 {
					for k := range neighAdj[currInd] {
						if neighAdj[currInd][k] == prevInd {
							edgeSector[currInd][k] = numSector
						}
					}
					break
				}
				for k := range edgeSector[currInd] {
					edgeSector[currInd][k] = numSector
				}
				for k := range neighAdj[currInd] {
					if neighAdj[currInd][k] != prevInd {
						prevInd = currInd
						currInd = neighAdj[currInd][k]
						break
					}
				}
			}
			numSector++
		}
	}

	if numSector == 0 && len(edgeSector) > 0 {
		for i := range edgeSector {
			for j := range edgeSector[i] {
				edgeSector[i][j] = 0
			}
		}
		return 1, true
	}

	return numSector, false
}

// followSector walks the link graph from firstVert along link-edges
// labeled currSec, producing the ordered arc. closed is true if the walk
// returns to firstVert.
func followSector(neighAdj, edgeSector [][]int, firstVert, currSec int) (arc []int, closed bool) {
	arc = []int{firstVert}
	currentPosition := firstVert
	lastPosition := firstVert
	reachedExtremity := false

	for !reachedExtremity {
		reachedExtremity = true
		for j := range edgeSector[currentPosition] {
			if edgeSector[currentPosition][j] == currSec && neighAdj[currentPosition][j] != lastPosition {
				lastPosition = currentPosition
				currentPosition = neighAdj[currentPosition][j]
				if currentPosition != firstVert {
					reachedExtremity = false
				} else {
					closed = true
				}
				break
			}
		}
		if !reachedExtremity {
			arc = append(arc, currentPosition)
		}
	}
	return arc, closed
}

// findExtremity locates the link-node where sector currSec is the
// natural arc endpoint: the first node where it occurs exactly once, or,
// failing that (a closed sector with no true endpoint), any non-
// degree-2 node carrying it. A sector whose label appears nowhere it
// should is an invariant violation, never recovered silently.
func findExtremity(edgeSector [][]int, currSec int) (int, error) {
	for i, list := range edgeSector {
		if countOccurrences(list, currSec) == 1 {
			return i, nil
		}
	}
	for i, list := range edgeSector {
		if len(list) != 2 && countOccurrences(list, currSec) != 0 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w %d", ErrNoExtremity, currSec)
}

func countOccurrences(xs []int, v int) int {
	n := 0
	for _, x := range xs {
		if x == v {
			n++
		}
	}
	return n
}

// endpointUnexposed collects the other sector ids present at a sector's
// arc endpoint, used to seed its sec_neigh_unexposed set. currSec itself
// is excluded unless the sector is closed (a closed sector is seeded
// with its own id so it starts out non-exposed).
func endpointUnexposed(labels []int, currSec int, closed bool) map[int]struct{} {
	out := make(map[int]struct{})
	for _, s := range labels {
		if s == currSec && !closed {
			continue
		}
		out[s] = struct{}{}
	}
	return out
}

// AttachedSectors returns the (sorted, deduplicated) sector ids attached
// to link position numNeigh.
func (d *Decomp) AttachedSectors(numNeigh int) []int {
	seen := make(map[int]struct{})
	for _, s := range d.EdgeSector[numNeigh] {
		seen[s] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// BurnSector marks sector ind burned and cascades exposure to sibling
// sectors that become exposed as a result. Burning an already-burned
// sector is a no-op scan.
func (d *Decomp) BurnSector(ind int) {
	d.Sectors[ind].burn()
	stack := []int{ind}
	for len(stack) > 0 {
		indExp := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for j := range d.Sectors {
			if d.Sectors[j].IsExposed() {
				continue
			}
			d.Sectors[j].exposeNeigh(indExp)
			if d.Sectors[j].IsExposed() {
				stack = append(stack, j)
			}
		}
	}
}

// ExposedSectors returns the indices of sectors that are exposed and not
// yet burned.
func (d *Decomp) ExposedSectors() []int {
	var out []int
	for i, s := range d.Sectors {
		if s.IsExposed() && !s.IsBurned() {
			out = append(out, i)
		}
	}
	return out
}

// UnburnedSectors returns the indices of sectors not yet burned.
func (d *Decomp) UnburnedSectors() []int {
	var out []int
	for i, s := range d.Sectors {
		if !s.IsBurned() {
			out = append(out, i)
		}
	}
	return out
}
