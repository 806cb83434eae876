package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Shape kinds
const (
	Circle  = "circle"
	Polygon = "polygon"
)

// circleSegments is the fixed vertex count used to approximate circular
// outlines. 64 segments keeps the chord error below 0.2% of the radius.
const circleSegments = 64

// UnitSpec describes a single photosensor shape in its own local frame,
// centred at the origin in canonical orientation. Size is the radius for
// circles and the inradius (flat-to-flat half-width) for regular polygons,
// so tangent circles and flat-to-flat polygons pack at the same pitch.
type UnitSpec struct {
	Kind  string
	Size  float64
	Sides int // polygon only, >= 3
}

func (u UnitSpec) validate() error {
	if u.Size <= 0 {
		return fmt.Errorf("unit size %g must be positive: %w", u.Size, ErrInvalidParameter)
	}
	switch u.Kind {
	case Circle:
	case Polygon:
		if u.Sides < 3 {
			return fmt.Errorf("polygon needs at least 3 sides, got %d: %w", u.Sides, ErrInvalidParameter)
		}
	default:
		return fmt.Errorf("unknown shape kind %q: %w", u.Kind, ErrInvalidParameter)
	}
	return nil
}

// Outline returns the unit boundary as a counter-clockwise polyline; the
// boundary closes from the last vertex back to the first. Circles are
// sampled at circleSegments vertices starting from angle 0. Polygons use
// their exact vertices, vertex k at angle pi/n + 2*pi*k/n, which puts a
// flat side at the bottom of a square (n=4) so it comes out axis-aligned.
func (u UnitSpec) Outline() ([]r2.Vec, error) {
	if err := u.validate(); err != nil {
		return nil, err
	}
	n := circleSegments
	radius := u.Size
	offset := 0.0
	if u.Kind == Polygon {
		n = u.Sides
		radius = u.Size / math.Cos(math.Pi/float64(n))
		offset = math.Pi / float64(n)
	}
	pts := make([]r2.Vec, n)
	for k := 0; k < n; k++ {
		theta := offset + 2*math.Pi*float64(k)/float64(n)
		pts[k] = r2.Vec{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return pts, nil
}

// BoundingRadius returns the radius of the smallest origin-centred circle
// enclosing the unit: the radius itself for circles, the circumradius for
// polygons. Array generators use it to derive the minimum non-overlapping
// pitch.
func (u UnitSpec) BoundingRadius() (float64, error) {
	if err := u.validate(); err != nil {
		return 0, err
	}
	if u.Kind == Polygon {
		return u.Size / math.Cos(math.Pi/float64(u.Sides)), nil
	}
	return u.Size, nil
}

// Area returns the enclosed area of the unit shape.
func (u UnitSpec) Area() (float64, error) {
	if err := u.validate(); err != nil {
		return 0, err
	}
	if u.Kind == Polygon {
		n := float64(u.Sides)
		return n * u.Size * u.Size * math.Tan(math.Pi/n), nil
	}
	return math.Pi * u.Size * u.Size, nil
}
