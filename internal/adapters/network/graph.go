package network

import (
	"fmt"
	"math"

	"github.com/justzen0/random-walker/internal/domain"
)

// Graph is an in-memory pedestrian network implementing ports.RoadNetwork.
// It is immutable once built and safe for concurrent readers.
type Graph struct {
	name  string
	nodes map[domain.NodeID]domain.GeoPoint
	edges map[domain.NodeID][]Edge
	index *SpatialIndex

	edgeCount int
	// Lower bound of edge length / straight-line distance, scales the A* heuristic.
	heuristicScale float64
}

// Edge represents a connection to a neighbor with its length in meters.
type Edge struct {
	To     domain.NodeID
	Length float64
}

// New builds a graph from a network snapshot.
//
// Edges are undirected. Parallel edges collapse to the shortest one and
// self-loops are dropped since they never lie on a shortest path.
func New(snapshot *domain.Network) (*Graph, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("build network graph: snapshot is nil")
	}

	g := &Graph{
		name:           snapshot.Name,
		nodes:          make(map[domain.NodeID]domain.GeoPoint, len(snapshot.Nodes)),
		edges:          make(map[domain.NodeID][]Edge, len(snapshot.Nodes)),
		heuristicScale: 1,
	}

	for _, n := range snapshot.Nodes {
		p := n.Point()
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("build network graph: node %d: %w", n.ID, err)
		}
		g.nodes[n.ID] = p
	}

	for i, e := range snapshot.Edges {
		from, ok := g.nodes[e.From]
		if !ok {
			return nil, fmt.Errorf("build network graph: edge #%d: from %d: %w", i, e.From, domain.ErrNodeNotFound)
		}
		to, ok := g.nodes[e.To]
		if !ok {
			return nil, fmt.Errorf("build network graph: edge #%d: to %d: %w", i, e.To, domain.ErrNodeNotFound)
		}
		if e.LengthMeters < 0 || math.IsNaN(e.LengthMeters) {
			return nil, fmt.Errorf("build network graph: edge #%d: negative length %v", i, e.LengthMeters)
		}
		if e.From == e.To {
			continue
		}

		if straight := domain.HaversineMeters(from, to); straight > 0 {
			g.heuristicScale = math.Min(g.heuristicScale, e.LengthMeters/straight)
		}

		if g.addEdge(e.From, e.To, e.LengthMeters) {
			g.edgeCount++
		}
		g.addEdge(e.To, e.From, e.LengthMeters)
	}

	g.index = NewSpatialIndex(g.nodes)

	return g, nil
}

// addEdge inserts u->v or shortens an existing one. Reports whether the edge is new.
func (g *Graph) addEdge(u, v domain.NodeID, length float64) bool {
	adj := g.edges[u]
	for i := range adj {
		if adj[i].To == v {
			adj[i].Length = math.Min(adj[i].Length, length)
			return false
		}
	}
	g.edges[u] = append(adj, Edge{To: v, Length: length})
	return true
}

// Name returns the name of the snapshot the graph was built from.
func (g *Graph) Name() string { return g.name }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// NodeCoordinate returns the coordinates of a node.
func (g *Graph) NodeCoordinate(id domain.NodeID) (domain.GeoPoint, error) {
	p, ok := g.nodes[id]
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("node coordinate %d: %w", id, domain.ErrNodeNotFound)
	}
	return p, nil
}

// NearestNode returns the node closest to p and the distance to it in meters.
func (g *Graph) NearestNode(p domain.GeoPoint) (domain.NodeID, float64, error) {
	if len(g.nodes) == 0 {
		return 0, 0, domain.ErrEmptyNetwork
	}
	id, dist, ok := g.index.Nearest(p)
	if !ok {
		return 0, 0, domain.ErrEmptyNetwork
	}
	return id, dist, nil
}

// EdgeLength returns the length of the edge between adjacent nodes u and v.
func (g *Graph) EdgeLength(u, v domain.NodeID) (float64, error) {
	for _, e := range g.edges[u] {
		if e.To == v {
			return e.Length, nil
		}
	}
	return 0, fmt.Errorf("edge length %d->%d: %w", u, v, domain.ErrEdgeNotFound)
}
