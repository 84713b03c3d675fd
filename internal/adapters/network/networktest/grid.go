// Package networktest builds synthetic road networks for tests.
package networktest

import (
	"math"

	"github.com/justzen0/random-walker/internal/domain"
)

// Grid returns a rows x cols lattice of nodes spaced spacingMeters apart,
// centered on center. Node ids are row*cols + col + 1; edges connect
// horizontal and vertical neighbors and carry their haversine length.
func Grid(center domain.GeoPoint, rows, cols int, spacingMeters float64) *domain.Network {
	dLat := spacingMeters / (domain.EarthRadiusKm * 1000) * 180 / math.Pi
	dLon := dLat / math.Cos(center.Lat*math.Pi/180)

	originLat := center.Lat - dLat*float64(rows-1)/2
	originLon := center.Lon - dLon*float64(cols-1)/2

	n := &domain.Network{Name: "grid", Center: center}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			n.Nodes = append(n.Nodes, domain.NetworkNode{
				ID:  GridID(cols, r, c),
				Lat: originLat + dLat*float64(r),
				Lon: originLon + dLon*float64(c),
			})
		}
	}

	point := func(r, c int) domain.GeoPoint { return n.Nodes[r*cols+c].Point() }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				n.Edges = append(n.Edges, domain.NetworkEdge{
					From:         GridID(cols, r, c),
					To:           GridID(cols, r, c+1),
					LengthMeters: domain.HaversineMeters(point(r, c), point(r, c+1)),
				})
			}
			if r+1 < rows {
				n.Edges = append(n.Edges, domain.NetworkEdge{
					From:         GridID(cols, r, c),
					To:           GridID(cols, r+1, c),
					LengthMeters: domain.HaversineMeters(point(r, c), point(r+1, c)),
				})
			}
		}
	}

	return n
}

// GridID returns the id Grid assigns to the node at (row, col).
func GridID(cols, row, col int) domain.NodeID {
	return domain.NodeID(row*cols + col + 1)
}
