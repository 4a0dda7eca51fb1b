package points

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/geo"
)

// Store is the ordered collection of points.
type Store struct {
	points     []Point
	nextID     int
	maxRangeKm float64
	baseColor  string
	palette    []string
	pick       func(palette []string) string
}

// Option configures a [Store].
type Option func(*Store)

// WithMaxRange sets the maximum distance in kilometers a destination may be
// from the base. Non-positive values are ignored.
func WithMaxRange(km float64) Option {
	return func(s *Store) {
		if km > 0 {
			s.maxRangeKm = km
		}
	}
}

// WithPalette sets the colors destinations are drawn from.
// An empty palette is ignored.
func WithPalette(colors []string) Option {
	return func(s *Store) {
		if len(colors) > 0 {
			s.palette = slices.Clone(colors)
		}
	}
}

// WithBaseColor overrides the color forced onto the base point.
func WithBaseColor(color string) Option {
	return func(s *Store) {
		if color != "" {
			s.baseColor = color
		}
	}
}

// WithColorPicker replaces the random palette pick. Tests use it to make
// colors deterministic.
func WithColorPicker(pick func(palette []string) string) Option {
	return func(s *Store) {
		if pick != nil {
			s.pick = pick
		}
	}
}

// NewStore creates an empty store. Without options the range is
// [DefaultMaxRangeKm], the base color is [BaseColor] and destinations get a
// random color from [DefaultPalette].
func NewStore(opts ...Option) *Store {
	s := &Store{
		maxRangeKm: DefaultMaxRangeKm,
		baseColor:  BaseColor,
		palette:    DefaultPalette,
		pick:       randomColor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func randomColor(palette []string) string {
	return palette[rand.IntN(len(palette))]
}

// MaxRangeKm returns the configured maximum range.
func (s *Store) MaxRangeKm() float64 { return s.maxRangeKm }

// Len returns the number of points.
func (s *Store) Len() int { return len(s.points) }

// List returns a copy of the points in collection order.
func (s *Store) List() []Point {
	return slices.Clone(s.points)
}

// Base returns the base point, if any.
func (s *Store) Base() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[0], true
}

// Get returns the point with the given id.
func (s *Store) Get(id int) (Point, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.points[i], true
	}
	return Point{}, false
}

// IndexOf returns the position of the point with the given id, or -1.
func (s *Store) IndexOf(id int) int {
	return s.indexOf(id)
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.points, func(p Point) bool { return p.ID == id })
}

// Add appends a point at (lat, lng).
//
// The first point becomes the base and is never range-checked. Any later
// point must lie within range of the current base; otherwise Add returns an
// OUT_OF_RANGE error wrapping an [errors.RangeError] and the store is left
// unchanged.
func (s *Store) Add(lat, lng float64) (Point, error) {
	if len(s.points) == 0 {
		p := Point{ID: s.nextID, Name: BaseName, Lat: lat, Lng: lng, Color: s.baseColor}
		s.nextID++
		s.points = append(s.points, p)
		return p, nil
	}

	base := s.points[0]
	if !WithinRange(base, lat, lng, s.maxRangeKm) {
		return Point{}, s.rangeError("add", s.nextID, base, lat, lng, lat, lng)
	}

	p := Point{
		ID:    s.nextID,
		Name:  LetterName(len(s.points) - 1),
		Lat:   lat,
		Lng:   lng,
		Color: s.pick(s.palette),
	}
	s.nextID++
	s.points = append(s.points, p)
	return p, nil
}

// Move updates the position of the point with the given id.
//
// The base moves unconditionally. A destination is range-checked against the
// current base; on rejection its position is unchanged and Move returns the
// point as it stands (its last valid position) together with an OUT_OF_RANGE
// error.
func (s *Store) Move(id int, lat, lng float64) (Point, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Point{}, errors.New(errors.ErrCodeNotFound, "point %d not found", id)
	}

	p := s.points[i]
	if i > 0 && !WithinRange(s.points[0], lat, lng, s.maxRangeKm) {
		return p, s.rangeError("move", id, s.points[0], lat, lng, p.Lat, p.Lng)
	}

	s.points[i].Lat = lat
	s.points[i].Lng = lng
	return s.points[i], nil
}

// Remove deletes the point with the given id and returns it.
func (s *Store) Remove(id int) (Point, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Point{}, errors.New(errors.ErrCodeNotFound, "point %d not found", id)
	}
	return s.removeAt(i), nil
}

// RemoveAt deletes the point at position index and returns it.
func (s *Store) RemoveAt(index int) (Point, error) {
	if index < 0 || index >= len(s.points) {
		return Point{}, errors.New(errors.ErrCodeNotFound, "no point at index %d (have %d)", index, len(s.points))
	}
	return s.removeAt(index), nil
}

func (s *Store) removeAt(i int) Point {
	removed := s.points[i]
	s.points = slices.Delete(s.points, i, i+1)
	if len(s.points) > 0 && i == 0 {
		s.points[0].Name = BaseName
		s.points[0].Color = s.baseColor
	}
	s.rename()
	return removed
}

// rename restores contiguous destination names after a removal.
func (s *Store) rename() {
	for i := 1; i < len(s.points); i++ {
		s.points[i].Name = LetterName(i - 1)
	}
}

// Clear empties the store. The id counter keeps running.
func (s *Store) Clear() {
	s.points = nil
}

// Replace swaps the whole point set for seeds, treating seeds[0] as the base.
//
// Every destination is checked against the base before anything changes, so
// a seed list that breaks the range rule leaves the store untouched. Fresh
// ids are assigned and names are derived from position; colors are kept
// except on the base, which always gets the base color.
func (s *Store) Replace(seeds []Seed) error {
	if len(seeds) > 0 {
		base := Point{Lat: seeds[0].Lat, Lng: seeds[0].Lng}
		for i, sd := range seeds[1:] {
			if !WithinRange(base, sd.Lat, sd.Lng, s.maxRangeKm) {
				op := fmt.Sprintf("seed %d (%s)", i+1, LetterName(i))
				return s.rangeError(op, s.nextID+i+1, base, sd.Lat, sd.Lng, sd.Lat, sd.Lng)
			}
		}
	}

	pts := make([]Point, len(seeds))
	for i, sd := range seeds {
		p := Point{ID: s.nextID + i, Lat: sd.Lat, Lng: sd.Lng, Color: sd.Color}
		if i == 0 {
			p.Name = BaseName
			p.Color = s.baseColor
		} else {
			p.Name = LetterName(i - 1)
			if p.Color == "" {
				p.Color = s.pick(s.palette)
			}
		}
		pts[i] = p
	}
	s.nextID += len(seeds)
	s.points = pts
	return nil
}

func (s *Store) rangeError(op string, id int, base Point, lat, lng, lastLat, lastLng float64) error {
	re := &errors.RangeError{
		ID:         id,
		DistanceKm: geo.DistanceKm(base.Lat, base.Lng, lat, lng),
		MaxRangeKm: s.maxRangeKm,
		LastLat:    lastLat,
		LastLng:    lastLng,
	}
	return errors.Wrap(errors.ErrCodeOutOfRange, re, "%s rejected: %.2f km from base (max %.2f km)", op, re.DistanceKm, re.MaxRangeKm)
}
