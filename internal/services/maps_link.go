package services

import (
	"strings"

	"github.com/justzen0/random-walker/internal/domain"
)

// MapsDirectionsBaseURL accepts up to 25 stops; 23 keeps room for
// start and end when the link is edited by hand.
const (
	MapsDirectionsBaseURL = "https://www.google.com/maps/dir/"
	DefaultMaxWaypoints   = 23
)

// MapsDirectionsURL builds a Google Maps directions link through points in order.
func MapsDirectionsURL(points []domain.GeoPoint) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = p.String()
	}
	return MapsDirectionsBaseURL + strings.Join(parts, "/")
}
