package points

import "github.com/matzehuels/flightmesh/pkg/geo"

const (
	// BaseName is the name carried by the point at position 0.
	BaseName = "UAV BASE"

	// BaseColor is the color forced onto the base point.
	BaseColor = "blue"

	// DefaultMaxRangeKm is the one-way flight radius of the drone.
	DefaultMaxRangeKm = 7.5
)

// DefaultPalette is the set of marker colors destinations are drawn from.
var DefaultPalette = []string{"gold", "red", "green", "orange", "yellow", "violet", "grey", "black"}

// Point is a named map position owned by a [Store].
type Point struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Color string  `json:"color"`
}

// IsBase reports whether p carries the base role.
func (p Point) IsBase() bool {
	return p.Name == BaseName
}

// Coordinate returns the position of p.
func (p Point) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: p.Lat, Lng: p.Lng}
}

// Seed is a point without identity, used to bulk-load a store.
// An empty Color lets the store pick one from its palette.
type Seed struct {
	Lat   float64
	Lng   float64
	Color string
}

// LetterName returns the destination name for the i-th destination
// (0-based): "A" for 0, "Z" for 25, and "A" again for 26.
func LetterName(i int) string {
	if i < 0 {
		return ""
	}
	return string(rune('A' + i%26))
}
