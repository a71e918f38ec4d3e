package scheduler

import (
	"container/heap"
	"math"

	"github.com/ibujah/eroth/burngraph"
	"github.com/ibujah/eroth/burntime"
	"github.com/ibujah/eroth/sector"
)

// NodeState is the scheduler's mutable algorithm state for one node,
// separate from the node's static geometry (burngraph.Node) and its
// static link-graph decomposition (sector.Decomp).
type NodeState struct {
	Time           burntime.BurnTime
	Burned         bool
	PrimeSector    int
	HasPrimeSector bool
}

// Result is the outcome of a scheduler run: per-node burn state, and the
// (now-mutated) sector decompositions carrying each sector's final time
// and prime_arc.
type Result struct {
	States []NodeState
	Decomp []*sector.Decomp
}

// Run seeds every node with a known radius (radius ≥ 0) and advances the
// burn-front until the active set is empty.
//
// decomp must have one entry per node in g.Nodes, already produced by
// sector.Decompose; Run mutates each Decomp's sectors in place (burn
// state, time, prime arc) as the front advances.
func Run(g *burngraph.Graph, decomp []*sector.Decomp, opts ...Option) *Result {
	cfg := resolveOptions(opts...)

	r := &runner{
		g:      g,
		decomp: decomp,
		states: make([]NodeState, len(g.Nodes)),
	}
	if cfg.Logger != nil {
		r.log = cfg.Logger
	}
	r.init()
	r.process()

	return &Result{States: r.states, Decomp: r.decomp}
}

type runner struct {
	g      *burngraph.Graph
	decomp []*sector.Decomp
	states []NodeState
	pq     nodePQ
	seq    int
	log    interface{ Printf(string, ...interface{}) }
}

func (r *runner) init() {
	for i := range r.states {
		r.states[i].Time = burntime.Infinity
		r.states[i].PrimeSector = -1
	}
	heap.Init(&r.pq)
	for i, n := range r.g.Nodes {
		if n.Rad >= 0 {
			r.states[i].Time = burntime.Finite(n.Rad)
			r.push(i, burntime.Finite(n.Rad))
		}
	}
}

func (r *runner) push(node int, t burntime.BurnTime) {
	r.seq++
	heap.Push(&r.pq, &item{node: node, time: t, seq: r.seq})
}

func (r *runner) process() {
	step := 0
	for r.pq.Len() > 0 {
		it := heap.Pop(&r.pq).(*item)
		if !it.time.IsFinite() {
			continue
		}
		v := it.node
		if r.states[v].Burned {
			continue
		}

		var vTime float32
		if r.g.Nodes[v].Rad >= 0 {
			vTime = r.g.Nodes[v].Rad
		} else if t, ok := r.states[v].Time.Value(); ok {
			vTime = t
		} else {
			continue
		}

		step++
		if r.log != nil {
			r.log.Printf("step %d: queue=%d, node=%d, time=%g", step, r.pq.Len(), v, vTime)
		}

		d := r.decomp[v]
		if r.states[v].HasPrimeSector {
			d.BurnSector(r.states[v].PrimeSector)
		}
		for _, s := range d.ExposedSectors() {
			d.BurnSector(s)
			d.Sectors[s].SetTime(vTime)
		}

		unburned := d.UnburnedSectors()
		if len(unburned) == 0 {
			r.burnAndRelax(v, vTime)
			continue
		}

		sMin, tMin, anyFinite := argMinSectorTime(d, unburned)
		if anyFinite {
			r.states[v].HasPrimeSector = true
			r.states[v].PrimeSector = sMin
			r.states[v].Time = burntime.Finite(tMin)
			r.push(v, burntime.Finite(tMin))
		} else {
			r.states[v].HasPrimeSector = false
			r.states[v].Time = burntime.Infinity
		}
	}
}

// argMinSectorTime returns the unburned sector with the smallest time,
// its finite time value, and whether any unburned sector has a finite
// time at all.
func argMinSectorTime(d *sector.Decomp, unburned []int) (sMin int, tMin float32, ok bool) {
	best := burntime.Infinity
	seen := false
	for _, s := range unburned {
		t := d.Sectors[s].Time()
		if !seen || t.LessEq(best) {
			best, sMin, seen = t, s, true
		}
	}
	if v, finite := best.Value(); finite {
		return sMin, v, true
	}
	return 0, 0, false
}

// burnAndRelax finalizes v's time, marks it burned, and relaxes every
// link-neighbor that is not itself burned or seeded. Only sectors whose
// arc contains v's position in the neighbor's link are candidates.
func (r *runner) burnAndRelax(v int, vTime float32) {
	r.states[v].Burned = true

	for _, u := range r.g.Nodes[v].Neigh {
		if r.states[u].Burned || r.g.Nodes[u].Rad >= 0 {
			continue
		}

		numNeighV, ok := r.g.Nodes[u].IndexOfNeigh(v)
		if !ok {
			continue
		}
		du := r.decomp[u]
		arcNorm := vecNorm(r.g.Nodes[v].Pos.Sub(r.g.Nodes[u].Pos))

		for _, t := range du.AttachedSectors(numNeighV) {
			if du.Sectors[t].IsBurned() {
				continue
			}
			h := arcNorm + vTime
			cand := burntime.Finite(h)
			if !cand.LessEq(du.Sectors[t].Time()) {
				continue
			}
			du.Sectors[t].SetTime(h)
			if pos, ok := du.Sectors[t].ArcPosition(numNeighV); ok {
				du.Sectors[t].SetPrimeArc(pos)
			}
			if cand.LessEq(r.states[u].Time) {
				r.states[u].Time = cand
				r.states[u].HasPrimeSector = true
				r.states[u].PrimeSector = t
				r.push(u, cand)
			}
		}
	}
}

func vecNorm(v [3]float32) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}
