package burngraph

import "fmt"

// CheckSymmetry verifies that every neighbor relation is reciprocal: if
// node i lists node n as a neighbor, n must list i back. The sector
// decomposition and the scheduler both assume this invariant, so callers
// run it once after Build rather than re-checking during propagation.
func (g *Graph) CheckSymmetry() error {
	for i := range g.Nodes {
		for _, n := range g.Nodes[i].Neigh {
			if _, ok := g.Nodes[n].IndexOfNeigh(i); !ok {
				return fmt.Errorf("burngraph: node %d lists %d as a neighbor, but not vice versa", i, n)
			}
		}
	}
	return nil
}
