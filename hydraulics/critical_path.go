// Package hydraulics: producer-rooted shortest-path losses.
// A float-weight Dijkstra over the flow-direction-corrected view. On a tree
// every node has a unique path, but Dijkstra keeps the routine correct for
// any directed view and stays O((V+E) log V) with a lazy-decrease-key heap.

package hydraulics

import (
	"container/heap"
	"math"

	"github.com/fjernvarme/dhgrid/core"
)

// shortestLosses returns, per node index, the minimum accumulated weight of
// a directed path from source, following d's corrected directions. weight is
// pipe-indexed and must be non-negative (pressure losses are). Unreachable
// nodes hold +Inf.
func shortestLosses(d *core.Directed, source int, weight []float64) []float64 {
	n := d.Topology().NodeCount()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[source] = 0

	visited := make([]bool, n)
	pq := lossPQ{{node: source, dist: 0}}
	heap.Init(&pq)

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(lossItem)
		u := item.node
		if visited[u] {
			continue // stale heap entry
		}
		visited[u] = true

		for _, j := range d.Outgoing(u) {
			v := d.Downstream(j)
			if cand := dist[u] + weight[j]; cand < dist[v] {
				dist[v] = cand
				heap.Push(&pq, lossItem{node: v, dist: cand})
			}
		}
	}

	return dist
}

// lossItem pairs a node with its tentative distance for the heap.
type lossItem struct {
	node int
	dist float64
}

// lossPQ is a min-heap of lossItem ordered by dist ascending.
type lossPQ []lossItem

func (pq lossPQ) Len() int            { return len(pq) }
func (pq lossPQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq lossPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *lossPQ) Push(x interface{}) { *pq = append(*pq, x.(lossItem)) }
func (pq *lossPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
