// Package burngraph builds the refined propagation graph consumed by the
// sector decomposer and the burn-front scheduler: it subdivides long
// skeleton edges and expands each triangular face into a link-adjacency
// pattern among its boundary subdivisions.
//
// A Graph is built once from a skeleton.Skeleton and is then immutable
// except for NeighAdj, which the sector package sorts and deduplicates
// in place as the first step of decomposition.
package burngraph

import "github.com/ibujah/eroth/skeleton"

// Node is one vertex of the refined graph: either an original skeleton
// vertex or a point inserted by edge subdivision.
type Node struct {
	Pos skeleton.Vec3
	Rad float32

	// Neigh holds the distinct neighbor node indices contributed by face
	// expansion, in first-seen order.
	Neigh []int

	// NeighAdj[i] holds, for Neigh[i], the positions (into Neigh) of the
	// other neighbors that share an incident face with this node through
	// neighbor i, i.e. the node's link graph as an adjacency list. Built
	// incrementally by AddCoupleNeigh; unsorted and possibly containing
	// duplicates until the sector package normalizes it.
	NeighAdj [][]int
}

// Graph is the refined propagation graph: all original skeleton vertices
// followed by the subdivision points inserted on long edges.
type Graph struct {
	Nodes []Node
}

// IndexOfNeigh returns the position of neighbor ind within n.Neigh, or
// false if ind is not a neighbor.
func (n *Node) IndexOfNeigh(ind int) (int, bool) {
	for i, v := range n.Neigh {
		if v == ind {
			return i, true
		}
	}
	return 0, false
}

// AddCoupleNeigh records that, in some face's link at this node, ind1 and
// ind2 are adjacent: it inserts both into Neigh if new and links their
// positions symmetrically in NeighAdj.
func (n *Node) AddCoupleNeigh(ind1, ind2 int) {
	p1 := n.neighPos(ind1)
	p2 := n.neighPos(ind2)
	n.NeighAdj[p1] = append(n.NeighAdj[p1], p2)
	n.NeighAdj[p2] = append(n.NeighAdj[p2], p1)
}

// neighPos returns the position of neighbor ind in n.Neigh, appending it
// (with an empty NeighAdj slot) if not already present.
func (n *Node) neighPos(ind int) int {
	if p, ok := n.IndexOfNeigh(ind); ok {
		return p
	}
	n.Neigh = append(n.Neigh, ind)
	n.NeighAdj = append(n.NeighAdj, nil)
	return len(n.Neigh) - 1
}
