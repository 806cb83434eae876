package geom

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r2"
)

// ArrayLayout is the ordered set of unit centres generated from a
// LatticeSpec. The order is the generation order (row-major or ring walk)
// and is part of the export contract: downstream consumers index units by
// their position in this sequence.
type ArrayLayout struct {
	Spec    LatticeSpec
	Centers []r2.Vec
}

// PlacedUnit is one unit outline translated to its centre in the array
// frame. It is produced on demand for rendering and export and never
// mutated afterwards.
type PlacedUnit struct {
	Index   int
	Center  r2.Vec
	Outline []r2.Vec
}

// UnitRecord is one row of the tabular layout export.
type UnitRecord struct {
	Index int
	X, Y  float64
}

// NumUnits returns the number of unit centres in the layout.
func (a *ArrayLayout) NumUnits() int { return len(a.Centers) }

// Place translates the unit outline to every centre in the layout,
// preserving layout order. All placed outlines are congruent: translation
// only, no per-unit scaling or rotation.
func (a *ArrayLayout) Place(u UnitSpec) ([]PlacedUnit, error) {
	outline, err := u.Outline()
	if err != nil {
		return nil, err
	}
	units := make([]PlacedUnit, len(a.Centers))
	for i, c := range a.Centers {
		pts := make([]r2.Vec, len(outline))
		for j, p := range outline {
			pts[j] = r2.Add(p, c)
		}
		units[i] = PlacedUnit{Index: i, Center: c, Outline: pts}
	}
	return units, nil
}

// Table flattens the layout into one record per unit, in layout order.
func (a *ArrayLayout) Table() []UnitRecord {
	records := make([]UnitRecord, len(a.Centers))
	for i, c := range a.Centers {
		records[i] = UnitRecord{Index: i, X: c.X, Y: c.Y}
	}
	return records
}

// WriteCSV writes the layout table as delimited text, one unit per row in
// layout order, with a commented header line.
func (a *ArrayLayout) WriteCSV(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "# index, x, y"); err != nil {
		return err
	}
	for _, rec := range a.Table() {
		if _, err := fmt.Fprintf(w, "%d, %.3f, %.3f\n", rec.Index, rec.X, rec.Y); err != nil {
			return err
		}
	}
	return nil
}

// CropToCircle returns a new layout keeping only the centres within radius
// of the origin, in the original generation order. Units are renumbered so
// indices stay contiguous in the cropped layout.
func (a *ArrayLayout) CropToCircle(radius float64) (*ArrayLayout, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("crop radius %g must be positive: %w", radius, ErrInvalidParameter)
	}
	kept := make([]r2.Vec, 0, len(a.Centers))
	for _, c := range a.Centers {
		if r2.Norm(c) <= radius {
			kept = append(kept, c)
		}
	}
	return &ArrayLayout{Spec: a.Spec, Centers: kept}, nil
}
