package domain

// Serializable snapshot of a pedestrian road network for one area.
// Snapshots are what network sources produce and network caches persist;
// routing happens on an adapter built from a snapshot.
type Network struct {
	Name     string        `json:"name"`
	Center   GeoPoint      `json:"center"`
	RadiusKm float64       `json:"radius_km"`
	Nodes    []NetworkNode `json:"nodes"`
	Edges    []NetworkEdge `json:"edges"`
}

type NetworkNode struct {
	ID  NodeID  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point returns the node coordinates.
func (n NetworkNode) Point() GeoPoint { return GeoPoint{Lat: n.Lat, Lon: n.Lon} }

// Undirected pedestrian edge with its length in meters.
type NetworkEdge struct {
	From         NodeID  `json:"from"`
	To           NodeID  `json:"to"`
	LengthMeters float64 `json:"length_m"`
}

// Area identifies the region a network is downloaded for.
type Area struct {
	Name     string
	Center   GeoPoint
	RadiusKm float64
}
