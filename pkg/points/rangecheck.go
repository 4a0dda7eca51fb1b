package points

import "github.com/matzehuels/flightmesh/pkg/geo"

// WithinRange reports whether (lat, lng) lies no farther than maxRangeKm
// from base. A position exactly on the boundary is accepted.
func WithinRange(base Point, lat, lng, maxRangeKm float64) bool {
	return geo.DistanceKm(base.Lat, base.Lng, lat, lng) <= maxRangeKm
}
