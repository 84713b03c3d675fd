package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWalk() *domain.Walk {
	path := []domain.GeoPoint{
		{Lat: 22.53106, Lon: 88.400831},
		{Lat: 22.532, Lon: 88.4008},
		{Lat: 22.532, Lon: 88.4018},
		{Lat: 22.53106, Lon: 88.400831},
	}
	return &domain.Walk{
		ID:           7,
		Start:        path[0],
		TargetKm:     4,
		Tolerance:    0.15,
		LengthMeters: 3987.4,
		Attempts:     2,
		Path:         path,
		Waypoints:    []domain.GeoPoint{path[0], path[2], path[3]},
		MapsURL:      "https://www.google.com/maps/dir/22.53106,88.400831/22.532,88.4018/22.53106,88.400831",
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleWalk()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "--- Your Random Walk for Google Maps (3.99 km) ---\n"))

	linkAt := strings.Index(out, "Option 1")
	listAt := strings.Index(out, "Option 2")
	require.Positive(t, linkAt)
	require.Greater(t, listAt, linkAt)

	assert.Contains(t, out[linkAt:listAt], sampleWalk().MapsURL)
	assert.True(t, strings.HasSuffix(out,
		"22.53106,88.400831\n22.532,88.4008\n22.532,88.4018\n22.53106,88.400831\n"))
}

func TestSaveText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "my_random_walk.txt")
	require.NoError(t, SaveText(path, sampleWalk()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Option 2: Full Coordinate List")
}

func TestGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, sampleWalk()))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)

	route := fc.Features[0]
	line, ok := route.Geometry.(orb.LineString)
	require.True(t, ok, "route geometry is %T", route.Geometry)
	require.Len(t, line, 4)
	assert.Equal(t, orb.Point{88.400831, 22.53106}, line[0])

	assert.Equal(t, "route", route.Properties.MustString("kind"))
	assert.InDelta(t, 3987.4, route.Properties.MustFloat64("length_m"), 1e-9)
	assert.InDelta(t, 4, route.Properties.MustFloat64("target_km"), 1e-9)
	assert.InDelta(t, 0.15, route.Properties.MustFloat64("tolerance"), 1e-9)

	for _, f := range fc.Features[1:] {
		_, ok := f.Geometry.(orb.Point)
		assert.True(t, ok)
		assert.Equal(t, "waypoint", f.Properties.MustString("kind"))
	}
}
