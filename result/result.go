// Package result builds the two outputs of an erosion-thickness run: the
// per-vertex ET values attached back onto the input Skeleton, and the
// erosion-path tree (one node per refined-graph node, one edge per
// recovered predecessor arc).
package result

import (
	"github.com/ibujah/eroth/burngraph"
	"github.com/ibujah/eroth/scheduler"
	"github.com/ibujah/eroth/skeleton"
	"github.com/ibujah/eroth/skeleton/ply"
)

// ErosionPath is the predecessor tree recovered from a scheduler run: one
// node per refined-graph node carrying its position and final burn time,
// and one edge per node that has a prime neighbor.
type ErosionPath struct {
	Nodes []ply.ErosionNode
	Edges [][2]int
}

// Build computes ET for every original skeleton vertex (attaching it as
// the "erosion_thickness" vertex property and deriving vertex color from
// it), and constructs the erosion-path tree over every node of g.
//
// res must be the scheduler.Result produced by running res.Decomp/States
// over g (same node count and ordering). skel must be the Skeleton g was
// built from: only its first skel.VertexCount() nodes of g correspond to
// skeleton vertices; the rest are subdivision points.
func Build(skel *skeleton.Skeleton, g *burngraph.Graph, res *scheduler.Result) (*ErosionPath, error) {
	btMax := maxFiniteTime(res.States)

	radii := skel.Radii()
	etMax := float32(0)
	et := make([]float32, skel.VertexCount())
	for i := range et {
		if t, ok := res.States[i].Time.Value(); ok {
			et[i] = t - radii[i]
			if et[i] > etMax {
				etMax = et[i]
			}
		}
	}
	for i := range et {
		if _, ok := res.States[i].Time.Value(); !ok {
			et[i] = etMax
		}
	}

	if err := skel.SetVertexProperty("erosion_thickness", et); err != nil {
		return nil, err
	}
	if err := skel.SetVertexColorFromProperty("erosion_thickness"); err != nil {
		return nil, err
	}

	path := buildErosionPath(g, res, btMax)
	return path, nil
}

// maxFiniteTime returns the largest finite burn time across all states,
// or 0 if none is finite.
func maxFiniteTime(states []scheduler.NodeState) float32 {
	var max float32
	for _, s := range states {
		if t, ok := s.Time.Value(); ok && t > max {
			max = t
		}
	}
	return max
}

// buildErosionPath emits one node per refined-graph node (substituting
// btMax for any node whose time never became finite) and one edge per
// recovered predecessor arc.
func buildErosionPath(g *burngraph.Graph, res *scheduler.Result, btMax float32) *ErosionPath {
	path := &ErosionPath{
		Nodes: make([]ply.ErosionNode, len(g.Nodes)),
	}

	for i, n := range g.Nodes {
		t := btMax
		if v, ok := res.States[i].Time.Value(); ok {
			t = v
		}
		path.Nodes[i] = ply.ErosionNode{Pos: n.Pos, Time: t}

		if pred, ok := primeNeighbor(g, res, i); ok {
			path.Edges = append(path.Edges, [2]int{i, pred})
		}
	}

	return path
}

// primeNeighbor recovers node i's predecessor in the erosion path: the
// neighbor that determined its current prime sector's arrival time.
func primeNeighbor(g *burngraph.Graph, res *scheduler.Result, i int) (int, bool) {
	st := res.States[i]
	if !st.HasPrimeSector {
		return 0, false
	}
	sec := res.Decomp[i].Sectors[st.PrimeSector]
	arcPos, ok := sec.PrimeArc()
	if !ok {
		return 0, false
	}
	numNeigh := sec.Arc[arcPos]
	return g.Nodes[i].Neigh[numNeigh], true
}
