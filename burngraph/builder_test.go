package burngraph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibujah/eroth/burngraph"
	"github.com/ibujah/eroth/skeleton"
)

// buildTriangle returns a single-triangle skeleton with the given radii.
func buildTriangle(t *testing.T, r0, r1, r2 float32) *skeleton.Skeleton {
	t.Helper()
	skel := skeleton.New()
	v0 := skel.AddVertex(skeleton.Vec3{0, 0, 0}, r0)
	v1 := skel.AddVertex(skeleton.Vec3{1, 0, 0}, r1)
	v2 := skel.AddVertex(skeleton.Vec3{0.5, float32(math.Sqrt(3)) / 2, 0}, r2)
	e0 := skel.AddEdge(v0, v1)
	e1 := skel.AddEdge(v1, v2)
	e2 := skel.AddEdge(v2, v0)
	_, err := skel.AddFace(e0, e1, e2)
	require.NoError(t, err)
	return skel
}

func TestBuildSingleTriangleNoSubdivision(t *testing.T) {
	skel := buildTriangle(t, 0.1, 0.1, 0.1)
	g := burngraph.Build(skel, burngraph.WithDistMax(10))

	require.Len(t, g.Nodes, 3)
	for i := range g.Nodes {
		assert.Len(t, g.Nodes[i].Neigh, 2, "corner %d should link to the other two corners", i)
	}
	require.NoError(t, g.CheckSymmetry())
}

func TestBuildSubdividesLongEdge(t *testing.T) {
	skel := skeleton.New()
	v0 := skel.AddVertex(skeleton.Vec3{0, 0, 0}, 0.1)
	v1 := skel.AddVertex(skeleton.Vec3{1, 0, 0}, 0.3)
	skel.AddEdge(v0, v1)

	g := burngraph.Build(skel, burngraph.WithDistMax(0.25), burngraph.WithSubdivMax(4))

	// length 1.0 / dist_max 0.25 = 4 subdivisions -> 3 interior nodes.
	// The two original vertices come first, then the interior points.
	require.Len(t, g.Nodes, 5)
	for i, want := range []float32{0, 1, 0.25, 0.5, 0.75} {
		assert.InDelta(t, want, g.Nodes[i].Pos[0], 1e-6)
	}
	assert.InDelta(t, 0.2, g.Nodes[3].Rad, 1e-6)
}

func TestBuildSubdivisionCappedBySubdivMax(t *testing.T) {
	skel := skeleton.New()
	v0 := skel.AddVertex(skeleton.Vec3{0, 0, 0}, 0.1)
	v1 := skel.AddVertex(skeleton.Vec3{1, 0, 0}, 0.1)
	skel.AddEdge(v0, v1)

	g := burngraph.Build(skel, burngraph.WithDistMax(0.3), burngraph.WithSubdivMax(2))
	// length/dist_max = floor(1/0.3) = 3, capped to subdiv_max=2 -> 1 interior node.
	assert.Len(t, g.Nodes, 3)
}

func TestBuildUnknownRadiusPropagates(t *testing.T) {
	skel := skeleton.New()
	v0 := skel.AddVertex(skeleton.Vec3{0, 0, 0}, 0.1)
	v1 := skel.AddVertex(skeleton.Vec3{1, 0, 0}, skeleton.UnknownRadius)
	skel.AddEdge(v0, v1)

	g := burngraph.Build(skel, burngraph.WithDistMax(0.5), burngraph.WithSubdivMax(4))
	for _, n := range g.Nodes[1:] {
		assert.Equal(t, skeleton.UnknownRadius, n.Rad)
	}
}

func TestBuildTwoTriangleRhombusSharesEdge(t *testing.T) {
	skel := skeleton.New()
	v0 := skel.AddVertex(skeleton.Vec3{0, 0, 0}, 0)
	v1 := skel.AddVertex(skeleton.Vec3{1, 0, 0}, skeleton.UnknownRadius)
	v2 := skel.AddVertex(skeleton.Vec3{0.5, 1, 0}, skeleton.UnknownRadius)
	v3 := skel.AddVertex(skeleton.Vec3{1.5, 1, 0}, 0)

	e01 := skel.AddEdge(v0, v1)
	e12 := skel.AddEdge(v1, v2)
	e20 := skel.AddEdge(v2, v0)
	_, err := skel.AddFace(e01, e12, e20)
	require.NoError(t, err)

	e13 := skel.AddEdge(v1, v3)
	e32 := skel.AddEdge(v3, v2)
	_, err = skel.AddFace(e12, e32, e13)
	require.NoError(t, err)

	g := burngraph.Build(skel, burngraph.WithDistMax(10))
	require.NoError(t, g.CheckSymmetry())
	// v1 and v2 are shared by both faces, so each sees 3 distinct neighbors.
	assert.Len(t, g.Nodes[1].Neigh, 3)
	assert.Len(t, g.Nodes[2].Neigh, 3)
}
