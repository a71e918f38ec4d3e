package scheduler

import "github.com/ibujah/eroth/burntime"

// item is one entry in the lazy priority queue: a candidate arrival time
// for a node, plus a monotonic sequence number that breaks ties between
// equal times deterministically.
type item struct {
	node int
	time burntime.BurnTime
	seq  int
}

// nodePQ is a min-heap of *item ordered by time then seq, with lazy
// decrease-key: relaxation pushes a fresh entry instead of mutating one
// in place, and stale entries are discarded at extraction once the node
// is burned.
type nodePQ []*item

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	af, bf := a.time.IsFinite(), b.time.IsFinite()
	if af != bf {
		return af
	}
	if af {
		av, _ := a.time.Value()
		bv, _ := b.time.Value()
		if av != bv {
			return av < bv
		}
	}
	return a.seq < b.seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*item)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
