package scheduler_test

import (
	"math"
	"testing"

	"github.com/ibujah/eroth/burngraph"
	"github.com/ibujah/eroth/scheduler"
	"github.com/ibujah/eroth/sector"
	"github.com/ibujah/eroth/skeleton"
)

// buildTriangle constructs the refined-graph link topology for a single,
// unsubdivided triangular face on nodes 0,1,2: the same three-line
// corner pattern burngraph.Build applies when every edge chain has
// length 2.
func buildTriangle(pos [3]skeleton.Vec3, rad [3]float32) *burngraph.Graph {
	g := &burngraph.Graph{Nodes: make([]burngraph.Node, 3)}
	for i := range g.Nodes {
		g.Nodes[i].Pos = pos[i]
		g.Nodes[i].Rad = rad[i]
	}
	g.Nodes[0].AddCoupleNeigh(1, 2)
	g.Nodes[1].AddCoupleNeigh(2, 0)
	g.Nodes[2].AddCoupleNeigh(0, 1)
	return g
}

func decomposeAll(t *testing.T, g *burngraph.Graph) []*sector.Decomp {
	t.Helper()
	out := make([]*sector.Decomp, len(g.Nodes))
	for i := range g.Nodes {
		d, err := sector.Decompose(&g.Nodes[i])
		if err != nil {
			t.Fatalf("Decompose(node %d) returned unexpected error: %v", i, err)
		}
		out[i] = d
	}
	return out
}

// finiteTime fails the test unless state i carries a finite time, and
// returns it.
func finiteTime(t *testing.T, res *scheduler.Result, i int) float32 {
	t.Helper()
	v, ok := res.States[i].Time.Value()
	if !ok {
		t.Fatalf("node %d time = Infinity, want finite", i)
	}
	return v
}

func approxEq(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestRunSingleTriangleAllSeededBurnsAtOwnRadius(t *testing.T) {
	g := buildTriangle(
		[3]skeleton.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[3]float32{0.1, 0.1, 0.1},
	)
	res := scheduler.Run(g, decomposeAll(t, g))

	if len(res.States) != 3 {
		t.Fatalf("got %d states, want 3", len(res.States))
	}
	for i := range res.States {
		if !res.States[i].Burned {
			t.Errorf("node %d should be burned", i)
		}
		if v := finiteTime(t, res, i); !approxEq(v, 0.1, 1e-6) {
			t.Errorf("node %d time = %g, want 0.1", i, v)
		}
	}
}

func TestRunSingleTriangleOneCornerSeeded(t *testing.T) {
	// v0=(0,0,0) seeded; v1=(1,0,0), v2=(0,1,0) unknown radius, both at
	// unit distance from v0.
	g := buildTriangle(
		[3]skeleton.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[3]float32{0.1, skeleton.UnknownRadius, skeleton.UnknownRadius},
	)
	res := scheduler.Run(g, decomposeAll(t, g))

	if !res.States[0].Burned {
		t.Fatalf("seed should burn")
	}
	if v := finiteTime(t, res, 0); !approxEq(v, 0.1, 1e-6) {
		t.Errorf("seed time = %g, want 0.1", v)
	}

	for _, i := range []int{1, 2} {
		if !res.States[i].Burned {
			t.Errorf("node %d should burn", i)
		}
		if v := finiteTime(t, res, i); !approxEq(v, 0.1+1.0, 1e-5) {
			t.Errorf("node %d time = %g, want %g", i, v, 0.1+1.0)
		}
	}
}

func TestRunRhombusPropagatesShortestPath(t *testing.T) {
	// A diamond split by the shared edge (1,2) between triangles (0,1,2)
	// and (3,1,2); only the bottom corner 0 is seeded.
	pos := [4]skeleton.Vec3{
		{0, -1, 0}, // 0: bottom corner, seeded
		{1, 0, 0},  // 1: right, shared-edge endpoint
		{-1, 0, 0}, // 2: left, shared-edge endpoint
		{0, 1, 0},  // 3: top corner, reached only via 1 or 2
	}
	g := &burngraph.Graph{Nodes: make([]burngraph.Node, 4)}
	for i := range g.Nodes {
		g.Nodes[i].Pos = pos[i]
		g.Nodes[i].Rad = skeleton.UnknownRadius
	}
	g.Nodes[0].Rad = 0

	// Triangle (0,1,2).
	g.Nodes[0].AddCoupleNeigh(1, 2)
	g.Nodes[1].AddCoupleNeigh(2, 0)
	g.Nodes[2].AddCoupleNeigh(0, 1)
	// Triangle (3,1,2), sharing edge (1,2).
	g.Nodes[3].AddCoupleNeigh(1, 2)
	g.Nodes[1].AddCoupleNeigh(2, 3)
	g.Nodes[2].AddCoupleNeigh(3, 1)

	res := scheduler.Run(g, decomposeAll(t, g))

	dist01 := vecDist(pos[0], pos[1])
	dist02 := vecDist(pos[0], pos[2])

	if v := finiteTime(t, res, 1); !approxEq(v, dist01, 1e-5) {
		t.Errorf("node 1 time = %g, want %g", v, dist01)
	}
	if v := finiteTime(t, res, 2); !approxEq(v, dist02, 1e-5) {
		t.Errorf("node 2 time = %g, want %g", v, dist02)
	}

	// node 3 is only link-reachable through 1 or 2, so its time is the
	// shortest of the two two-hop paths.
	viaOne := dist01 + vecDist(pos[1], pos[3])
	viaTwo := dist02 + vecDist(pos[2], pos[3])
	want := viaOne
	if viaTwo < want {
		want = viaTwo
	}
	if v := finiteTime(t, res, 3); !approxEq(v, want, 1e-5) {
		t.Errorf("node 3 time = %g, want %g", v, want)
	}
	if !res.States[3].Burned {
		t.Errorf("node 3 should burn")
	}
}

func TestRunClosedFanCenterBurnsAtBoundaryPlusRadius(t *testing.T) {
	// A 4-triangle fan around a center node, each ring node at unit
	// distance and seeded with radius 1: the center is surrounded by a
	// single closed sector and only finalizes once its one sector is
	// explicitly burned via its prime sector.
	pos := [5]skeleton.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{-1, 0, 0},
		{0, -1, 0},
	}
	g := &burngraph.Graph{Nodes: make([]burngraph.Node, 5)}
	for i := range g.Nodes {
		g.Nodes[i].Pos = pos[i]
		g.Nodes[i].Rad = skeleton.UnknownRadius
	}
	for i := 1; i <= 4; i++ {
		g.Nodes[i].Rad = 1.0
	}

	triangles := [4][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 1}}
	for _, tri := range triangles {
		v1, v2, v3 := tri[0], tri[1], tri[2]
		g.Nodes[v1].AddCoupleNeigh(v2, v3)
		g.Nodes[v2].AddCoupleNeigh(v3, v1)
		g.Nodes[v3].AddCoupleNeigh(v1, v2)
	}

	res := scheduler.Run(g, decomposeAll(t, g))

	for i := 1; i <= 4; i++ {
		if !res.States[i].Burned {
			t.Errorf("ring node %d should burn", i)
		}
		if v := finiteTime(t, res, i); !approxEq(v, 1.0, 1e-6) {
			t.Errorf("ring node %d time = %g, want 1", i, v)
		}
	}

	if !res.States[0].Burned {
		t.Fatalf("center should finalize once its single closed sector burns")
	}
	if v := finiteTime(t, res, 0); !approxEq(v, 2.0, 1e-5) {
		t.Errorf("center time = %g, want 2", v)
	}
}

func TestRunNonManifoldRidgeTerminatesWithMonotoneTimes(t *testing.T) {
	// Three triangles sharing the edge (0,1): nodes 0 and 1 see a
	// degree-3 link node each, so both are singular. The run must still
	// terminate and every burned node must carry a finite time no smaller
	// than the seed radius.
	pos := [5]skeleton.Vec3{
		{0, 0, 0}, // 0: ridge endpoint
		{1, 0, 0}, // 1: ridge endpoint
		{0.5, 1, 0},
		{0.5, -1, 0},
		{0.5, 0, 1},
	}
	g := &burngraph.Graph{Nodes: make([]burngraph.Node, 5)}
	for i := range g.Nodes {
		g.Nodes[i].Pos = pos[i]
		g.Nodes[i].Rad = skeleton.UnknownRadius
	}
	for _, i := range []int{2, 3, 4} {
		g.Nodes[i].Rad = 0.5
	}

	for _, tri := range [3][3]int{{0, 1, 2}, {0, 1, 3}, {0, 1, 4}} {
		v1, v2, v3 := tri[0], tri[1], tri[2]
		g.Nodes[v1].AddCoupleNeigh(v2, v3)
		g.Nodes[v2].AddCoupleNeigh(v3, v1)
		g.Nodes[v3].AddCoupleNeigh(v1, v2)
	}

	decomp := decomposeAll(t, g)
	if !decomp[0].Singular || !decomp[1].Singular {
		t.Fatalf("ridge endpoints should classify as singular")
	}

	res := scheduler.Run(g, decomp)

	for i := range res.States {
		if !res.States[i].Burned {
			continue
		}
		if v := finiteTime(t, res, i); v < 0.5 {
			t.Errorf("node %d time = %g, below seed radius 0.5", i, v)
		}
	}
	for _, i := range []int{2, 3, 4} {
		if !res.States[i].Burned {
			t.Errorf("seed %d should burn", i)
		}
		if v := finiteTime(t, res, i); !approxEq(v, 0.5, 1e-6) {
			t.Errorf("seed %d time = %g, want 0.5", i, v)
		}
	}
}

func vecDist(a, b skeleton.Vec3) float32 {
	d := a.Sub(b)
	return float32(math.Sqrt(float64(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])))
}
