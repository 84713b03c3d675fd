package network

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/justzen0/random-walker/internal/domain"
)

// Candidates pulled from the R-tree before refining by great-circle distance.
const nearestCandidates = 8

// nodeEntry wraps a network node for R-tree storage.
type nodeEntry struct {
	id    domain.NodeID
	point domain.GeoPoint
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.rect
}

// SpatialIndex answers nearest-node queries.
//
// Nodes are stored in an equirectangular projection around the mean latitude,
// which keeps planar distances proportional to ground distances at walking
// scale. The planar nearest candidates are then ranked by haversine distance.
type SpatialIndex struct {
	tree   *rtreego.Rtree
	cosLat float64
}

// NewSpatialIndex creates a new spatial index over the given nodes.
func NewSpatialIndex(nodes map[domain.NodeID]domain.GeoPoint) *SpatialIndex {
	var sumLat float64
	for _, p := range nodes {
		sumLat += p.Lat
	}
	cosLat := 1.0
	if len(nodes) > 0 {
		cosLat = math.Cos(sumLat / float64(len(nodes)) * math.Pi / 180)
	}

	si := &SpatialIndex{cosLat: cosLat}

	entries := make([]rtreego.Spatial, 0, len(nodes))
	for id, p := range nodes {
		entries = append(entries, &nodeEntry{
			id:    id,
			point: p,
			rect:  si.project(p).ToRect(1e-9),
		})
	}
	si.tree = rtreego.NewTree(2, 25, 50, entries...) // 2D, min 25, max 50 entries per node

	return si
}

func (si *SpatialIndex) project(p domain.GeoPoint) rtreego.Point {
	return rtreego.Point{p.Lon * si.cosLat, p.Lat}
}

// Nearest returns the node closest to p and its distance in meters.
func (si *SpatialIndex) Nearest(p domain.GeoPoint) (domain.NodeID, float64, bool) {
	if si.tree.Size() == 0 {
		return 0, 0, false
	}

	var (
		best     domain.NodeID
		bestDist = math.Inf(1)
		found    bool
	)
	for _, item := range si.tree.NearestNeighbors(nearestCandidates, si.project(p)) {
		entry, ok := item.(*nodeEntry)
		if !ok || entry == nil {
			continue
		}
		d := domain.HaversineMeters(p, entry.point)
		// Ties go to the smaller id so lookups are deterministic.
		if d < bestDist || (d == bestDist && entry.id < best) {
			best, bestDist, found = entry.id, d, true
		}
	}

	return best, bestDist, found
}
