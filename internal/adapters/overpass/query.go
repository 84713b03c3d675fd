package overpass

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Highway values that are never walkable, or not yet (or no longer) built.
const excludedHighways = "abandoned|bus_guideway|construction|cycleway|motor|no|planned|platform|proposed|raceway|razed|trunk"

var excludedHighwayRe = regexp.MustCompile(excludedHighways)

// BuildQuery returns an Overpass QL query for walkable ways inside the box
// enclosing the circle of radiusKm around center, with their nodes.
func BuildQuery(center domain.GeoPoint, radiusKm float64) string {
	bound := geo.NewBoundAroundPoint(orb.Point{center.Lon, center.Lat}, radiusKm*1000)

	bbox := fmt.Sprintf("%s,%s,%s,%s",
		coord(bound.Bottom()), coord(bound.Left()), coord(bound.Top()), coord(bound.Right()))

	return fmt.Sprintf(`[out:json][timeout:180];
(
  way["highway"]["area"!~"yes"]["highway"!~"%s"]["foot"!~"no"]["service"!~"private"]["access"!~"private"](%s);
);
(._;>;);
out body;`, excludedHighways, bbox)
}

func coord(v float64) string { return strconv.FormatFloat(v, 'f', 7, 64) }

// walkable repeats the server-side filter so responses from mirrors that
// ignore parts of the query still yield a pedestrian network.
func walkable(tags map[string]string) bool {
	highway, ok := tags["highway"]
	if !ok || excludedHighwayRe.MatchString(highway) {
		return false
	}
	return tags["area"] != "yes" &&
		tags["foot"] != "no" &&
		tags["service"] != "private" &&
		tags["access"] != "private"
}
