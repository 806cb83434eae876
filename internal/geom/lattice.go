package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Lattice kinds
const (
	Rectangular = "rect"
	Hexagonal   = "hex"
)

// LatticeSpec describes a regular arrangement of unit centres. Pitch is the
// centre-to-centre spacing between adjacent units. Rectangular lattices are
// sized by Rows x Cols; hexagonal lattices by total Count.
type LatticeSpec struct {
	Kind     string
	Pitch    float64
	Rows     int
	Cols     int
	Count    int
	Centered bool // rectangular only: shift the grid centroid to the origin
}

// hexRingDirs is the axial-coordinate step sequence that walks a hexagonal
// ring counter-clockwise starting from its eastern vertex.
var hexRingDirs = [6][2]int{{-1, 1}, {-1, 0}, {0, -1}, {1, -1}, {1, 0}, {0, 1}}

func (l LatticeSpec) validate() error {
	if l.Pitch <= 0 {
		return fmt.Errorf("pitch %g must be positive: %w", l.Pitch, ErrInvalidParameter)
	}
	switch l.Kind {
	case Rectangular:
		if l.Rows <= 0 || l.Cols <= 0 {
			return fmt.Errorf("rectangular lattice needs positive rows and cols, got %dx%d: %w",
				l.Rows, l.Cols, ErrInvalidParameter)
		}
	case Hexagonal:
		if l.Count <= 0 {
			return fmt.Errorf("hexagonal lattice needs a positive unit count, got %d: %w",
				l.Count, ErrInvalidParameter)
		}
	default:
		return fmt.Errorf("unknown lattice kind %q: %w", l.Kind, ErrInvalidParameter)
	}
	return nil
}

// GenerateCenters computes the ordered unit centres for the lattice.
//
// Rectangular lattices are generated row-major: (col*pitch, row*pitch) for
// row in [0, Rows), col in [0, Cols). With Centered set, the whole grid is
// shifted so its centroid sits at the origin.
//
// Hexagonal lattices are generated ring by ring around a central unit
// (ring 0). Ring r holds 6r units; the walk starts due east of the centre
// at distance r*pitch and proceeds counter-clockwise, stopping mid-ring
// once Count units have been produced. The walk runs on integer axial
// coordinates and converts to cartesian at the end, so centres are exact
// and regeneration is bit-identical.
func GenerateCenters(l LatticeSpec) (*ArrayLayout, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	var centers []r2.Vec
	switch l.Kind {
	case Rectangular:
		centers = rectCenters(l)
	case Hexagonal:
		centers = hexCenters(l)
	}
	return &ArrayLayout{Spec: l, Centers: centers}, nil
}

func rectCenters(l LatticeSpec) []r2.Vec {
	var shift r2.Vec
	if l.Centered {
		shift = r2.Vec{
			X: float64(l.Cols-1) / 2 * l.Pitch,
			Y: float64(l.Rows-1) / 2 * l.Pitch,
		}
	}
	centers := make([]r2.Vec, 0, l.Rows*l.Cols)
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			centers = append(centers, r2.Vec{
				X: float64(col)*l.Pitch - shift.X,
				Y: float64(row)*l.Pitch - shift.Y,
			})
		}
	}
	return centers
}

func hexCenters(l LatticeSpec) []r2.Vec {
	centers := make([]r2.Vec, 0, l.Count)
	centers = append(centers, r2.Vec{})
	for ring := 1; len(centers) < l.Count; ring++ {
		q, r := ring, 0
		for _, d := range hexRingDirs {
			for step := 0; step < ring && len(centers) < l.Count; step++ {
				centers = append(centers, axialToCartesian(q, r, l.Pitch))
				q += d[0]
				r += d[1]
			}
		}
	}
	return centers
}

// axialToCartesian maps axial hex coordinates (q, r) to the array frame
// with a pointy-top basis: neighbours along q sit due east at one pitch.
func axialToCartesian(q, r int, pitch float64) r2.Vec {
	return r2.Vec{
		X: pitch * (float64(q) + float64(r)/2),
		Y: pitch * float64(r) * math.Sqrt(3) / 2,
	}
}
