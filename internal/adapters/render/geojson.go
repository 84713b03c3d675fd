package render

import (
	"fmt"
	"io"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON builds a FeatureCollection with the full path as a LineString and
// one Point per map waypoint.
func GeoJSON(walk *domain.Walk) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, len(walk.Path))
	for i, p := range walk.Path {
		line[i] = toPoint(p)
	}
	route := geojson.NewFeature(line)
	route.Properties["kind"] = "route"
	route.Properties["length_m"] = walk.LengthMeters
	route.Properties["target_km"] = walk.TargetKm
	route.Properties["tolerance"] = walk.Tolerance
	route.Properties["maps_url"] = walk.MapsURL
	if walk.ID != 0 {
		route.ID = walk.ID
	}
	fc.Append(route)

	for i, p := range walk.Waypoints {
		wp := geojson.NewFeature(toPoint(p))
		wp.Properties["kind"] = "waypoint"
		wp.Properties["index"] = i
		fc.Append(wp)
	}

	return fc
}

// WriteGeoJSON encodes the walk as GeoJSON.
func WriteGeoJSON(w io.Writer, walk *domain.Walk) error {
	data, err := GeoJSON(walk).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode walk geojson: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write walk geojson: %w", err)
	}
	return nil
}

// SaveGeoJSON writes the GeoJSON export to path.
func SaveGeoJSON(path string, walk *domain.Walk) error {
	return saveFile(path, func(w io.Writer) error { return WriteGeoJSON(w, walk) })
}

func toPoint(p domain.GeoPoint) orb.Point { return orb.Point{p.Lon, p.Lat} }
