package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Mean earth radius used by the sampler and all haversine distances.
const EarthRadiusKm = 6371.0

// Immutable geographic coordinates in degrees (WGS84, spherical approximation).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate reports whether the point lies within the legal latitude/longitude ranges.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return fmt.Errorf("%w: coordinates must be finite, got (%v, %v)", ErrInvalidInput, p.Lat, p.Lon)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidInput, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidInput, p.Lon)
	}
	return nil
}

// Normalize wraps longitude into [-180, 180] and clamps latitude to [-90, 90].
func (p GeoPoint) Normalize() GeoPoint {
	lon := math.Mod(p.Lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	lon -= 180
	// keep +180 instead of folding it onto -180
	if lon == -180 && p.Lon > 0 {
		lon = 180
	}

	return GeoPoint{
		Lat: math.Max(-90, math.Min(90, p.Lat)),
		Lon: lon,
	}
}

// String formats the point as "lat,lon", the form map links expect.
func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}

// HaversineMeters returns the great-circle distance between two points in meters.
func HaversineMeters(a, b GeoPoint) float64 {
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * 1000 * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
