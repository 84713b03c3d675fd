package services

import (
	"fmt"
	"math"

	"github.com/justzen0/random-walker/internal/domain"
)

// Source of uniform draws in [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	Float64() float64
}

// SamplePointInDisk draws a point uniformly by area from the spherical disk of
// radiusKm around center.
//
// The distance is radiusKm*sqrt(U1); without the square root samples would
// cluster around the center. The bearing is 2*pi*U2. The point is projected
// with the forward geodesic on a sphere of domain.EarthRadiusKm.
func SamplePointInDisk(rng RandSource, center domain.GeoPoint, radiusKm float64) (domain.GeoPoint, error) {
	if err := center.Validate(); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("sample point: center: %w", err)
	}
	if radiusKm < 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return domain.GeoPoint{}, fmt.Errorf("sample point: %w: radius must be a finite value >= 0, got %v", domain.ErrInvalidInput, radiusKm)
	}
	if radiusKm == 0 {
		return center, nil
	}

	r := radiusKm * math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()

	delta := r / domain.EarthRadiusKm
	lat := center.Lat * math.Pi / 180
	lon := center.Lon * math.Pi / 180

	newLat := math.Asin(math.Sin(lat)*math.Cos(delta) + math.Cos(lat)*math.Sin(delta)*math.Cos(theta))
	newLon := lon + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat),
		math.Cos(delta)-math.Sin(lat)*math.Sin(newLat),
	)

	p := domain.GeoPoint{Lat: newLat * 180 / math.Pi, Lon: newLon * 180 / math.Pi}
	return p.Normalize(), nil
}
