package ports

import "github.com/justzen0/random-walker/internal/domain"

// Read-only capabilities of a road network the loop builder depends on.
// Implementations must not mutate the network while queries run.
type RoadNetwork interface {
	// Return the node closest to p and its distance from p in meters.
	// Fails with domain.ErrEmptyNetwork when there are no nodes.
	NearestNode(p domain.GeoPoint) (domain.NodeID, float64, error)

	// Return the coordinates of a node.
	NodeCoordinate(id domain.NodeID) (domain.GeoPoint, error)

	// Return the shortest path weighted by edge length.
	// Fails with domain.ErrNoPath when target is unreachable from source.
	ShortestPath(source, target domain.NodeID) (domain.PathLeg, error)

	// Return the length in meters of the edge between adjacent nodes u and v.
	// Fails with domain.ErrEdgeNotFound when they are not adjacent.
	EdgeLength(u, v domain.NodeID) (float64, error)
}
