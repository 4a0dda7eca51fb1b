package points

import (
	"strings"
	"testing"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/geo"
)

const (
	baseLat = 50.035
	baseLng = 22.001
)

func firstColor(palette []string) string { return palette[0] }

func newTestStore(opts ...Option) *Store {
	return NewStore(append([]Option{WithColorPicker(firstColor)}, opts...)...)
}

// seedStore adds the base plus n destinations spread inside the default range.
func seedStore(t *testing.T, s *Store, n int) {
	t.Helper()
	if _, err := s.Add(baseLat, baseLng); err != nil {
		t.Fatalf("Add(base) error: %v", err)
	}
	for i := 0; i < n; i++ {
		lat := baseLat + 0.001*float64(i+1)
		if _, err := s.Add(lat, baseLng); err != nil {
			t.Fatalf("Add(%d) error: %v", i, err)
		}
	}
}

func checkNames(t *testing.T, s *Store) {
	t.Helper()
	for i, p := range s.List() {
		want := BaseName
		if i > 0 {
			want = LetterName(i - 1)
		}
		if p.Name != want {
			t.Errorf("points[%d].Name = %q, want %q", i, p.Name, want)
		}
	}
}

func TestLetterName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "A"},
		{27, "B"},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := LetterName(tt.index); got != tt.want {
			t.Errorf("LetterName(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestAddFirstPointIsBase(t *testing.T) {
	s := newTestStore(WithMaxRange(1))
	// Far away from anything, but the first point is never range-checked.
	p, err := s.Add(-33.86, 151.2)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if !p.IsBase() {
		t.Errorf("Name = %q, want %q", p.Name, BaseName)
	}
	if p.Color != BaseColor {
		t.Errorf("Color = %q, want %q", p.Color, BaseColor)
	}
	if p.ID != 0 {
		t.Errorf("ID = %d, want 0", p.ID)
	}
}

func TestAddScenario(t *testing.T) {
	s := newTestStore()

	if _, err := s.Add(baseLat, baseLng); err != nil {
		t.Fatalf("Add(base) error: %v", err)
	}

	a, err := s.Add(50.06, 22.05)
	if err != nil {
		t.Fatalf("Add(A) error: %v", err)
	}
	if a.Name != "A" {
		t.Errorf("Name = %q, want A", a.Name)
	}
	if a.Color != DefaultPalette[0] {
		t.Errorf("Color = %q, want %q", a.Color, DefaultPalette[0])
	}
	if d := geo.DistanceKm(baseLat, baseLng, a.Lat, a.Lng); d < 4 || d > 5 {
		t.Errorf("distance to A = %v, want about 4.5 km", d)
	}

	_, err = s.Add(50.30, 22.50)
	if !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Fatalf("Add(far) error = %v, want OUT_OF_RANGE", err)
	}
	re, ok := errors.AsRange(err)
	if !ok {
		t.Fatal("Add(far) error does not carry a RangeError")
	}
	if re.DistanceKm <= re.MaxRangeKm {
		t.Errorf("RangeError distance %v should exceed max %v", re.DistanceKm, re.MaxRangeKm)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	if _, err := s.Remove(a.ID); err != nil {
		t.Fatalf("Remove(A) error: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestAddRangeBoundary(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 0)

	// 50.1 N is about 7.23 km north of the base: inside the default 7.5 km.
	if _, err := s.Add(50.1, baseLng); err != nil {
		t.Errorf("Add(7.2 km) error = %v, want nil", err)
	}

	tight := newTestStore(WithMaxRange(7.0))
	seedStore(t, tight, 0)
	if _, err := tight.Add(50.1, baseLng); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("Add(7.2 km) with 7 km range error = %v, want OUT_OF_RANGE", err)
	}
}

func TestRangeErrorMessage(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 1)

	tests := []struct {
		name string
		run  func() error
		want string
	}{
		{
			name: "add",
			run:  func() error { _, err := s.Add(50.30, 22.50); return err },
			want: "add rejected: ",
		},
		{
			name: "move",
			run:  func() error { _, err := s.Move(1, 50.30, 22.50); return err },
			want: "move rejected: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := errors.UserMessage(tt.run())
			if !strings.HasPrefix(msg, tt.want) || !strings.HasSuffix(msg, "km from base (max 7.50 km)") {
				t.Errorf("UserMessage() = %q, want %q with distance and max range", msg, tt.want)
			}
		})
	}
}

func TestAddRejectedDoesNotConsumeID(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 0)

	if _, err := s.Add(60, 30); err == nil {
		t.Fatal("Add(far) error = nil, want OUT_OF_RANGE")
	}
	p, err := s.Add(50.04, baseLng)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("ID = %d, want 1", p.ID)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		lat, lng  float64
		wantCode  errors.Code
		wantMoved bool
	}{
		{"destination within range", 1, 50.05, 22.02, "", true},
		{"destination out of range", 1, 50.30, 22.50, errors.ErrCodeOutOfRange, false},
		{"base anywhere", 0, 51.0, 23.0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			seedStore(t, s, 2)
			before := s.List()[tt.index]

			got, err := s.Move(before.ID, tt.lat, tt.lng)
			if errors.GetCode(err) != tt.wantCode {
				t.Fatalf("Move() error = %v, want code %q", err, tt.wantCode)
			}

			after, _ := s.Get(before.ID)
			if tt.wantMoved {
				if after.Lat != tt.lat || after.Lng != tt.lng {
					t.Errorf("position = (%v, %v), want (%v, %v)", after.Lat, after.Lng, tt.lat, tt.lng)
				}
			} else {
				if after != before {
					t.Errorf("point changed on rejected move: %+v -> %+v", before, after)
				}
				if got.Lat != before.Lat || got.Lng != before.Lng {
					t.Errorf("returned position = (%v, %v), want last valid (%v, %v)", got.Lat, got.Lng, before.Lat, before.Lng)
				}
				re, ok := errors.AsRange(err)
				if !ok || re.LastLat != before.Lat || re.LastLng != before.Lng {
					t.Errorf("RangeError = %+v, want last position (%v, %v)", re, before.Lat, before.Lng)
				}
			}
			if after.Name != before.Name || after.Color != before.Color || after.ID != before.ID {
				t.Errorf("identity changed: %+v -> %+v", before, after)
			}
		})
	}
}

func TestMoveUsesCurrentBase(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 1)
	base, _ := s.Base()
	a := s.List()[1]

	// Shift the base 0.2 degrees north; a target near the new base is now valid
	// even though it is about 22 km from where the base started.
	if _, err := s.Move(base.ID, baseLat+0.2, baseLng); err != nil {
		t.Fatalf("Move(base) error: %v", err)
	}
	if _, err := s.Move(a.ID, baseLat+0.21, baseLng); err != nil {
		t.Errorf("Move(A) near new base error = %v, want nil", err)
	}
}

func TestMoveNotFound(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 1)
	if _, err := s.Move(99, 0, 0); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Move(99) error = %v, want NOT_FOUND", err)
	}
}

func TestRemoveRenames(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 4) // base, A, B, C, D

	b := s.List()[2]
	removed, err := s.Remove(b.ID)
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if removed.ID != b.ID {
		t.Errorf("removed ID = %d, want %d", removed.ID, b.ID)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	checkNames(t, s)
	if got := s.List()[2].ID; got != b.ID+1 {
		t.Errorf("points[2].ID = %d, want %d (ids are not renumbered)", got, b.ID+1)
	}
}

func TestRemoveBasePromotes(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 3)
	base, _ := s.Base()
	next := s.List()[1]

	if _, err := s.Remove(base.ID); err != nil {
		t.Fatalf("Remove(base) error: %v", err)
	}
	got, _ := s.Base()
	if got.ID != next.ID {
		t.Errorf("new base ID = %d, want %d", got.ID, next.ID)
	}
	if got.Name != BaseName || got.Color != BaseColor {
		t.Errorf("new base = %+v, want name %q color %q", got, BaseName, BaseColor)
	}
	checkNames(t, s)
}

func TestRemoveLastPoint(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 0)
	base, _ := s.Base()
	if _, err := s.Remove(base.ID); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if _, ok := s.Base(); ok {
		t.Error("Base() ok = true on empty store")
	}
}

func TestRemoveAt(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 2)

	if _, err := s.RemoveAt(5); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("RemoveAt(5) error = %v, want NOT_FOUND", err)
	}
	if _, err := s.RemoveAt(-1); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("RemoveAt(-1) error = %v, want NOT_FOUND", err)
	}

	p, err := s.RemoveAt(1)
	if err != nil {
		t.Fatalf("RemoveAt(1) error: %v", err)
	}
	if p.Name != "A" {
		t.Errorf("removed Name = %q, want A", p.Name)
	}
	checkNames(t, s)
}

func TestRemoveNotFound(t *testing.T) {
	s := newTestStore()
	if _, err := s.Remove(3); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Remove(3) error = %v, want NOT_FOUND", err)
	}
}

func TestNamingWrapsAfterZ(t *testing.T) {
	s := newTestStore(WithMaxRange(50))
	seedStore(t, s, 28)

	pts := s.List()
	if pts[26].Name != "Z" {
		t.Errorf("26th destination = %q, want Z", pts[26].Name)
	}
	if pts[27].Name != "A" || pts[28].Name != "B" {
		t.Errorf("wrap = %q, %q, want A, B", pts[27].Name, pts[28].Name)
	}
}

func TestNamingInvariantAfterMixedOps(t *testing.T) {
	s := newTestStore(WithMaxRange(50))
	seedStore(t, s, 10)

	ops := []int{3, 0, 7, 1, 1}
	for _, idx := range ops {
		if _, err := s.RemoveAt(idx); err != nil {
			t.Fatalf("RemoveAt(%d) error: %v", idx, err)
		}
		checkNames(t, s)
		if _, err := s.Add(baseLat+0.01, baseLng+0.01); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
		checkNames(t, s)
	}
}

func TestIDsNeverReused(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 2)
	seen := map[int]bool{}
	for _, p := range s.List() {
		seen[p.ID] = true
	}
	s.Clear()
	seedStore(t, s, 2)
	for _, p := range s.List() {
		if seen[p.ID] {
			t.Errorf("id %d reused after Clear", p.ID)
		}
	}
}

func TestListIsCopy(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 1)
	pts := s.List()
	pts[0].Name = "mutated"
	if base, _ := s.Base(); base.Name != BaseName {
		t.Errorf("store mutated through List(): %q", base.Name)
	}
}

func TestReplace(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 1)

	seeds := []Seed{
		{Lat: baseLat, Lng: baseLng, Color: "red"},
		{Lat: 50.06, Lng: 22.05, Color: "violet"},
		{Lat: 50.04, Lng: 22.00},
	}
	if err := s.Replace(seeds); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	pts := s.List()
	if len(pts) != 3 {
		t.Fatalf("Len() = %d, want 3", len(pts))
	}
	if pts[0].Color != BaseColor {
		t.Errorf("base color = %q, want %q", pts[0].Color, BaseColor)
	}
	if pts[1].Color != "violet" {
		t.Errorf("points[1].Color = %q, want violet", pts[1].Color)
	}
	if pts[2].Color != DefaultPalette[0] {
		t.Errorf("points[2].Color = %q, want picked %q", pts[2].Color, DefaultPalette[0])
	}
	if pts[0].ID < 2 {
		t.Errorf("points[0].ID = %d, want fresh id >= 2", pts[0].ID)
	}
	checkNames(t, s)
}

func TestReplaceOutOfRangeLeavesStore(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 2)
	before := s.List()

	err := s.Replace([]Seed{
		{Lat: baseLat, Lng: baseLng},
		{Lat: 50.30, Lng: 22.50},
	})
	if !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Fatalf("Replace() error = %v, want OUT_OF_RANGE", err)
	}

	after := s.List()
	if len(after) != len(before) {
		t.Fatalf("Len() = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("points[%d] = %+v, want %+v", i, after[i], before[i])
		}
	}
}

func TestReplaceEmpty(t *testing.T) {
	s := newTestStore()
	seedStore(t, s, 2)
	if err := s.Replace(nil); err != nil {
		t.Fatalf("Replace(nil) error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestOptions(t *testing.T) {
	s := NewStore(
		WithMaxRange(-1),
		WithPalette([]string{"pink"}),
		WithBaseColor("navy"),
	)
	if s.MaxRangeKm() != DefaultMaxRangeKm {
		t.Errorf("MaxRangeKm() = %v, want default %v", s.MaxRangeKm(), DefaultMaxRangeKm)
	}
	seedStore(t, s, 1)
	pts := s.List()
	if pts[0].Color != "navy" {
		t.Errorf("base color = %q, want navy", pts[0].Color)
	}
	if pts[1].Color != "pink" {
		t.Errorf("destination color = %q, want pink", pts[1].Color)
	}
}

func TestWithinRange(t *testing.T) {
	base := Point{Lat: baseLat, Lng: baseLng}
	if !WithinRange(base, baseLat, baseLng, 0) {
		t.Error("WithinRange(same point, 0) = false, want true")
	}
	if WithinRange(base, 50.30, 22.50, DefaultMaxRangeKm) {
		t.Error("WithinRange(46 km) = true, want false")
	}
}
