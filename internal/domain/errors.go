package domain

import "errors"

var (
	// ErrInvalidInput marks caller mistakes detected before any work starts.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoPath is returned by shortest-path queries when the target is unreachable.
	ErrNoPath = errors.New("no path between nodes")
	// ErrNodeNotFound is returned when a node id is not part of the network.
	ErrNodeNotFound = errors.New("node not found")
	// ErrEdgeNotFound is returned when two nodes are not adjacent.
	ErrEdgeNotFound = errors.New("edge not found")
	// ErrEmptyNetwork is returned by lookups on a network without nodes.
	ErrEmptyNetwork = errors.New("road network is empty")
	// ErrStartTooFar means the requested start point snaps to a node outside the loaded area.
	ErrStartTooFar = errors.New("start point is too far from the road network")
	// ErrCacheMiss is returned by network caches that hold no entry for a key.
	ErrCacheMiss = errors.New("cache miss")
	// ErrWalkNotFound is returned by the walk repository for unknown ids.
	ErrWalkNotFound = errors.New("walk not found")
)
