package burngraph

import (
	"math"

	"github.com/ibujah/eroth/skeleton"
)

// Build constructs the refined graph from skel: every skeleton vertex
// becomes a Node, long edges are subdivided into equi-spaced interior
// points (capped by WithDistMax/WithSubdivMax), and each triangular face
// expands into link-adjacency entries among its boundary subdivisions.
func Build(skel *skeleton.Skeleton, opts ...Option) *Graph {
	cfg := resolveOptions(opts...)
	g := &Graph{}

	g.buildSubdivVertices(skel)
	chains := g.subdivideEdges(skel, cfg.DistMax, cfg.SubdivMax)
	g.buildSubdivFaces(skel, chains)

	return g
}

// buildSubdivVertices copies every skeleton vertex into the graph as a
// Node, before any subdivision point is appended.
func (g *Graph) buildSubdivVertices(skel *skeleton.Skeleton) {
	radii := skel.Radii()
	for i, pos := range skel.Vertices() {
		g.Nodes = append(g.Nodes, Node{Pos: pos, Rad: radii[i]})
	}
}

// subdivideEdges inserts interior subdivision nodes on every skeleton
// edge and returns, per edge index, the ordered chain of node indices
// from one endpoint to the other (including both endpoints).
//
// A zero-length edge gets no interior points and degrades to the plain
// two-endpoint chain, so coincident endpoints never divide by zero.
func (g *Graph) subdivideEdges(skel *skeleton.Skeleton, distMax float32, subdivMax int) [][]int {
	chains := make([][]int, skel.EdgeCount())

	for i := 0; i < skel.EdgeCount(); i++ {
		edge, _ := skel.Edge(i)
		v1, v2 := edge[0], edge[1]

		p1, r1, _ := skel.Vertex(v1)
		p2, r2, _ := skel.Vertex(v2)
		length := vecNorm(p1.Sub(p2))

		n := int(math.Floor(float64(length / distMax)))
		if n > subdivMax {
			n = subdivMax
		}

		chain := make([]int, 0, n+1)
		chain = append(chain, v1)
		for j := 1; j < n; j++ {
			prop := float32(j) / float32(n)
			pos := skeleton.Lerp(p1, p2, prop)
			rad := skeleton.UnknownRadius
			if r1 >= 0 && r2 >= 0 {
				rad = (1-prop)*r1 + prop*r2
			}
			ind := len(g.Nodes)
			g.Nodes = append(g.Nodes, Node{Pos: pos, Rad: rad})
			chain = append(chain, ind)
		}
		chain = append(chain, v2)
		chains[i] = chain
	}

	return chains
}

func vecNorm(v skeleton.Vec3) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// buildSubdivFaces expands every triangular face's three edge chains
// into link-adjacency entries on each spanned node.
func (g *Graph) buildSubdivFaces(skel *skeleton.Skeleton, chains [][]int) {
	for i := 0; i < skel.FaceCount(); i++ {
		face, _ := skel.Face(i)
		s1, s2, s3 := orientChains(chains, face[0], face[1], face[2])

		if len(s1) == 2 && len(s2) == 2 && len(s3) == 2 {
			v1, v2, v3 := s1[0], s2[0], s3[0]
			g.Nodes[v1].AddCoupleNeigh(v2, v3)
			g.Nodes[v2].AddCoupleNeigh(v3, v1)
			g.Nodes[v3].AddCoupleNeigh(v1, v2)
			continue
		}

		g.expandSubdividedCorner(s1, s2, s3)
		g.expandSubdividedCorner(s2, s3, s1)
		g.expandSubdividedCorner(s3, s1, s2)
	}
}

// orientChains picks and orients the three chains of a face so that
// end(s1) == start(s2), end(s2) == start(s3) and end(s3) == start(s1): s1 is the
// edge1 chain as stored; s2 is whichever of edge2/edge3's chains shares
// s1's last node (reversed if needed); s3 is whichever of edge2/edge3's
// chains shares s1's first node (reversed if needed).
func orientChains(chains [][]int, e1, e2, e3 int) (s1, s2, s3 []int) {
	s1 = chains[e1]

	switch {
	case chains[e2][0] == s1[len(s1)-1]:
		s2 = chains[e2]
	case chains[e2][len(chains[e2])-1] == s1[len(s1)-1]:
		s2 = reversedChain(chains[e2])
	case chains[e3][0] == s1[len(s1)-1]:
		s2 = chains[e3]
	default:
		s2 = reversedChain(chains[e3])
	}

	switch {
	case chains[e2][len(chains[e2])-1] == s1[0]:
		s3 = chains[e2]
	case chains[e2][0] == s1[0]:
		s3 = reversedChain(chains[e2])
	case chains[e3][len(chains[e3])-1] == s1[0]:
		s3 = chains[e3]
	default:
		s3 = reversedChain(chains[e3])
	}

	return s1, s2, s3
}

func reversedChain(c []int) []int {
	out := make([]int, len(c))
	for i, v := range c {
		out[len(c)-1-i] = v
	}
	return out
}

// expandSubdividedCorner runs the chain-first link-expansion procedure
// with s1 treated as the "current" chain: every interior node of s1
// links to its cyclic neighbors across s2 and s3, and the corner s1[0]
// links across both s2 and s3's interiors. buildSubdivFaces applies it
// once per cyclic permutation of a face's three chains.
func (g *Graph) expandSubdividedCorner(s1, s2, s3 []int) {
	for i := 1; i < len(s1)-1; i++ {
		v1 := s1[i]

		// Cyclic order around v1's link: next node on s1, then all of s2
		// after its shared first node, then the interior of s3 (excluding
		// both extremities), then the previous node on s1.
		var ring []int
		ring = append(ring, s1[i+1])
		ring = append(ring, s2[1:]...)
		if len(s3) > 2 {
			ring = append(ring, s3[1:len(s3)-1]...)
		}
		ring = append(ring, s1[i-1])

		v2 := ring[0]
		for _, v3 := range ring[1:] {
			g.Nodes[v1].AddCoupleNeigh(v2, v3)
			v2 = v3
		}
	}

	v1 := s1[0]
	if len(s2) == 2 {
		g.Nodes[v1].AddCoupleNeigh(s1[1], s3[len(s3)-2])
		return
	}

	g.Nodes[v1].AddCoupleNeigh(s1[1], s2[1])
	for i := 1; i < len(s2)-2; i++ {
		g.Nodes[v1].AddCoupleNeigh(s2[i], s2[i+1])
	}
	g.Nodes[v1].AddCoupleNeigh(s2[len(s2)-2], s3[len(s3)-2])
}
