package domain

import (
	"fmt"
	"time"
)

// Opaque identifier of a node in the road network. Equality only.
type NodeID int64

// A shortest path between two nodes and its length in meters.
// Consecutive nodes are adjacent in the network; this is guaranteed by the
// path oracle and not re-verified here.
type PathLeg struct {
	Nodes        []NodeID
	LengthMeters float64
}

// Source returns the first node of the leg.
func (l PathLeg) Source() NodeID { return l.Nodes[0] }

// Target returns the last node of the leg.
func (l PathLeg) Target() NodeID { return l.Nodes[len(l.Nodes)-1] }

// Represents a closed walking route start->B->C->start.
//
// Nodes is the concatenation of the three legs with each shared endpoint kept
// once, so Nodes[0] == Nodes[len(Nodes)-1] == Start. LengthMeters is the sum of
// the edge lengths along Nodes; LegsLengthMeters is the sum reported by the
// path oracle for the three legs and is kept for diagnostics only.
type Loop struct {
	Start            NodeID
	Waypoints        [2]NodeID
	Nodes            []NodeID
	LengthMeters     float64
	LegsLengthMeters float64
}

// JoinLegs concatenates legs, dropping the final node of every leg except the last.
func JoinLegs(legs ...PathLeg) ([]NodeID, error) {
	size := 1
	for i, leg := range legs {
		if len(leg.Nodes) == 0 {
			return nil, fmt.Errorf("join legs: leg %d is empty", i)
		}
		if i > 0 && legs[i-1].Target() != leg.Source() {
			return nil, fmt.Errorf("join legs: leg %d starts at %d, previous leg ends at %d", i, leg.Source(), legs[i-1].Target())
		}
		size += len(leg.Nodes) - 1
	}

	nodes := make([]NodeID, 0, size)
	for i, leg := range legs {
		if i == len(legs)-1 {
			nodes = append(nodes, leg.Nodes...)
			break
		}
		nodes = append(nodes, leg.Nodes[:len(leg.Nodes)-1]...)
	}

	return nodes, nil
}

// A suggested walk as handed to output renderers and stored in walk history.
type Walk struct {
	ID           int64
	CreatedAt    time.Time
	Start        GeoPoint
	TargetKm     float64
	Tolerance    float64
	LengthMeters float64
	Attempts     int
	Path         []GeoPoint
	Waypoints    []GeoPoint
	MapsURL      string
}

// LengthKm returns the walk length in kilometers.
func (w *Walk) LengthKm() float64 { return w.LengthMeters / 1000 }
