package dto

import "time"

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WalkRequest fields are optional; missing ones take the server defaults.
type WalkRequest struct {
	Start       *Point  `json:"start"`
	TargetKm    float64 `json:"target_km"`
	Tolerance   float64 `json:"tolerance"`
	MaxAttempts int     `json:"max_attempts"`
	Seed        *uint64 `json:"seed"`
}

type WalkResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Start     Point     `json:"start"`
	TargetKm  float64   `json:"target_km"`
	Tolerance float64   `json:"tolerance"`
	LengthM   float64   `json:"length_m"`
	LengthKm  float64   `json:"length_km"`
	Attempts  int       `json:"attempts"`
	Seed      *uint64   `json:"seed,omitempty"`
	MapsURL   string    `json:"maps_url"`
	Waypoints []Point   `json:"waypoints"`
	Path      []Point   `json:"path,omitempty"`
}

type ListWalkResponse struct {
	Walks []WalkResponse `json:"walks"`
}

// NoWalkResponse is returned when every attempt was rejected.
type NoWalkResponse struct {
	Error      string         `json:"error"`
	Attempts   int            `json:"attempts"`
	Rejections map[string]int `json:"rejections"`
	Seed       uint64         `json:"seed"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Area   string `json:"area,omitempty"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
}
