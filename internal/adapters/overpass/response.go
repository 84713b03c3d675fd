package overpass

import (
	"errors"

	"github.com/justzen0/random-walker/internal/domain"
)

type response struct {
	Remark   string    `json:"remark,omitempty"`
	Elements []element `json:"elements"`
}

type element struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat,omitempty"`
	Lon   float64           `json:"lon,omitempty"`
	Nodes []int64           `json:"nodes,omitempty"`
	Tags  map[string]string `json:"tags,omitempty"`
}

// toNetwork keeps the walkable ways and the nodes they reference.
// Every pair of consecutive way nodes becomes an edge measured with haversine.
func (r *response) toNetwork() (*domain.Network, error) {
	coords := make(map[int64]domain.GeoPoint)
	for _, el := range r.Elements {
		if el.Type == "node" {
			coords[el.ID] = domain.GeoPoint{Lat: el.Lat, Lon: el.Lon}
		}
	}

	network := &domain.Network{}
	used := make(map[int64]bool)

	for _, el := range r.Elements {
		if el.Type != "way" || !walkable(el.Tags) {
			continue
		}
		for i := 1; i < len(el.Nodes); i++ {
			from, to := el.Nodes[i-1], el.Nodes[i]
			a, okA := coords[from]
			b, okB := coords[to]
			// ways clipped by the bounding box reference nodes outside it
			if !okA || !okB || from == to {
				continue
			}
			network.Edges = append(network.Edges, domain.NetworkEdge{
				From:         domain.NodeID(from),
				To:           domain.NodeID(to),
				LengthMeters: domain.HaversineMeters(a, b),
			})
			used[from] = true
			used[to] = true
		}
	}

	if len(network.Edges) == 0 {
		return nil, errors.New("response has no walkable ways")
	}

	// element order keeps node order stable across runs
	for _, el := range r.Elements {
		if el.Type == "node" && used[el.ID] {
			network.Nodes = append(network.Nodes, domain.NetworkNode{ID: domain.NodeID(el.ID), Lat: el.Lat, Lon: el.Lon})
			used[el.ID] = false
		}
	}

	return network, nil
}
