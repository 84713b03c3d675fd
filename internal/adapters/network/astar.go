package network

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/justzen0/random-walker/internal/domain"
)

// searchNode represents a node in the A* open set.
type searchNode struct {
	id     domain.NodeID
	g      float64 // cost from source
	f      float64 // g + heuristic
	parent *searchNode
	index  int // index in the heap
}

// priorityQueue implements heap.Interface ordered by f.
type priorityQueue []*searchNode

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool { return pq[i].f < pq[j].f }

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*pq)
	*pq = append(*pq, n)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pq = old[:n-1]
	return node
}

// ShortestPath computes the shortest path by edge length using A*.
//
// The heuristic is the haversine distance to the target scaled by the
// smallest length/straight-line ratio seen in the graph, so it never
// overestimates and the first time the target is popped its cost is optimal.
func (g *Graph) ShortestPath(source, target domain.NodeID) (domain.PathLeg, error) {
	if _, ok := g.nodes[source]; !ok {
		return domain.PathLeg{}, fmt.Errorf("shortest path: source %d: %w", source, domain.ErrNodeNotFound)
	}
	targetPoint, ok := g.nodes[target]
	if !ok {
		return domain.PathLeg{}, fmt.Errorf("shortest path: target %d: %w", target, domain.ErrNodeNotFound)
	}

	if source == target {
		return domain.PathLeg{Nodes: []domain.NodeID{source}}, nil
	}

	h := func(id domain.NodeID) float64 {
		return g.heuristicScale * domain.HaversineMeters(g.nodes[id], targetPoint)
	}

	open := &priorityQueue{}
	heap.Init(open)

	start := &searchNode{id: source, f: h(source)}
	heap.Push(open, start)

	openByID := map[domain.NodeID]*searchNode{source: start}
	closed := make(map[domain.NodeID]bool)

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		delete(openByID, current.id)

		if current.id == target {
			return domain.PathLeg{Nodes: reconstruct(current), LengthMeters: current.g}, nil
		}
		closed[current.id] = true

		for _, e := range g.edges[current.id] {
			if closed[e.To] {
				continue
			}

			tentative := current.g + e.Length
			neighbor, exists := openByID[e.To]
			if !exists {
				neighbor = &searchNode{id: e.To, g: tentative, parent: current}
				neighbor.f = tentative + h(e.To)
				heap.Push(open, neighbor)
				openByID[e.To] = neighbor
			} else if tentative < neighbor.g {
				neighbor.f += tentative - neighbor.g
				neighbor.g = tentative
				neighbor.parent = current
				heap.Fix(open, neighbor.index)
			}
		}
	}

	return domain.PathLeg{}, fmt.Errorf("shortest path %d->%d: %w", source, target, domain.ErrNoPath)
}

func reconstruct(end *searchNode) []domain.NodeID {
	var path []domain.NodeID
	for n := end; n != nil; n = n.parent {
		path = append(path, n.id)
	}
	slices.Reverse(path)
	return path
}
