package pmt

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/banshee-data/pmtarray/internal/geom"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		wantType string
		wantErr  bool
	}{
		{"circular catalogue model", "R11410", Circular, false},
		{"square catalogue model", "R12699", Square, false},
		{"unknown model", "R9999", "", true},
		{"empty name", "", "", true},
		{"case sensitive", "r11410", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Lookup(tt.model)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownModel) {
					t.Errorf("Lookup(%q) error = %v, want ErrUnknownModel", tt.model, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tt.model, err)
			}
			if m.Type != tt.wantType {
				t.Errorf("Lookup(%q).Type = %q, want %q", tt.model, m.Type, tt.wantType)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("catalogue model %q fails validation: %v", tt.model, err)
			}
		})
	}
}

func TestDerivedAreasR11410(t *testing.T) {
	m, err := Lookup("R11410")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	wantTotal := math.Pi * 38 * 38
	wantActive := math.Pi * 32 * 32
	if !scalar.EqualWithinAbs(m.TotalArea(), wantTotal, 1e-9) {
		t.Errorf("TotalArea() = %g, want %g", m.TotalArea(), wantTotal)
	}
	if !scalar.EqualWithinAbs(m.ActiveArea(), wantActive, 1e-9) {
		t.Errorf("ActiveArea() = %g, want %g", m.ActiveArea(), wantActive)
	}
	if !scalar.EqualWithinAbs(m.ActiveAreaFraction(), wantActive/wantTotal, 1e-12) {
		t.Errorf("ActiveAreaFraction() = %g, want %g", m.ActiveAreaFraction(), wantActive/wantTotal)
	}
	if !scalar.EqualWithinAbs(m.MinPitch(2), 76+2.6+2, 1e-12) {
		t.Errorf("MinPitch(2) = %g, want %g", m.MinPitch(2), 76+2.6+2.0)
	}
}

func TestDerivedAreasR12699(t *testing.T) {
	m, err := Lookup("R12699")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	// Envelope pads the package by the tolerance on both sides.
	if !scalar.EqualWithinAbs(m.EnvelopeWidth(), 56.6, 1e-12) {
		t.Errorf("EnvelopeWidth() = %g, want 56.6", m.EnvelopeWidth())
	}
	if !scalar.EqualWithinAbs(m.TotalArea(), 56.6*56.6, 1e-9) {
		t.Errorf("TotalArea() = %g, want %g", m.TotalArea(), 56.6*56.6)
	}
	if !scalar.EqualWithinAbs(m.ActiveArea(), 48.5*48.5, 1e-9) {
		t.Errorf("ActiveArea() = %g, want %g", m.ActiveArea(), 48.5*48.5)
	}
}

func TestUnitSpecMapping(t *testing.T) {
	circular, _ := Lookup("R11410")
	square, _ := Lookup("R12699")

	if spec := circular.UnitSpec(); spec.Kind != geom.Circle || spec.Size != 38 {
		t.Errorf("circular UnitSpec() = %+v, want circle of radius 38", spec)
	}
	if spec := square.UnitSpec(); spec.Kind != geom.Polygon || spec.Sides != 4 || spec.Size != 28.3 {
		t.Errorf("square UnitSpec() = %+v, want polygon-4 of inradius 28.3", spec)
	}
	if spec := circular.ActiveUnitSpec(); spec.Kind != geom.Circle || spec.Size != 32 {
		t.Errorf("circular ActiveUnitSpec() = %+v, want circle of radius 32", spec)
	}
}

func TestActiveCentre(t *testing.T) {
	circular, _ := Lookup("R11410")
	square, _ := Lookup("R12699")

	if c := circular.ActiveCentre(); c.X != 0 || c.Y != 0 {
		t.Errorf("circular ActiveCentre() = (%g, %g), want origin", c.X, c.Y)
	}
	if c := square.ActiveCentre(); c.X != 0 || c.Y != 0 {
		t.Errorf("centred square ActiveCentre() = (%g, %g), want origin", c.X, c.Y)
	}

	asym := Model{
		Name: "asymmetric window", Type: Square,
		Width: 56, Height: 56, WidthTolerance: 0.3, HeightTolerance: 0.3,
		WidthActive: 48.5, HeightActive: 48.5,
		ActiveCornerX: 2, ActiveCornerY: 5,
		QE: 0.3,
	}
	if err := asym.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	c := asym.ActiveCentre()
	// Corner offset plus half the window, measured from the envelope
	// half-width: 2 + 24.25 - 28.3 and 5 + 24.25 - 28.3.
	if !scalar.EqualWithinAbs(c.X, -2.05, 1e-12) || !scalar.EqualWithinAbs(c.Y, 0.95, 1e-12) {
		t.Errorf("ActiveCentre() = (%g, %g), want (-2.05, 0.95)", c.X, c.Y)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		model Model
	}{
		{"unknown type", Model{Name: "x", Type: "hex", QE: 0.3}},
		{"missing circular dims", Model{Name: "x", Type: Circular, QE: 0.3}},
		{"active larger than packaging", Model{
			Name: "x", Type: Circular, DiameterPackaging: 50, ActiveDiameter: 60, QE: 0.3,
		}},
		{"missing square dims", Model{Name: "x", Type: Square, Width: 56, QE: 0.3}},
		{"QE above one", Model{
			Name: "x", Type: Circular, DiameterPackaging: 76, ActiveDiameter: 64, QE: 1.5,
		}},
		{"negative active corner", Model{
			Name: "x", Type: Square, Width: 56, Height: 56,
			WidthActive: 48.5, HeightActive: 48.5, ActiveCornerX: -1, QE: 0.3,
		}},
		{"active window outside envelope", Model{
			Name: "x", Type: Square, Width: 56, Height: 56,
			WidthActive: 48.5, HeightActive: 48.5, ActiveCornerX: 10, QE: 0.3,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.model.Validate(); !errors.Is(err, geom.ErrInvalidParameter) {
				t.Errorf("Validate() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestLoadModelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	doc := `name: prototype 4" PMT
type: circular
diameter_packaging: 101.6
active_diameter: 90
diameter_tolerance: 1.5
qe: 0.3
active_area_correction: 0.95
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	m, err := LoadModelFile(path)
	if err != nil {
		t.Fatalf("LoadModelFile() error: %v", err)
	}
	if m.Type != Circular || m.DiameterPackaging != 101.6 {
		t.Errorf("LoadModelFile() = %+v, want circular 101.6mm model", m)
	}
	wantActive := math.Pi * 45 * 45 * 0.95
	if !scalar.EqualWithinAbs(m.ActiveArea(), wantActive, 1e-9) {
		t.Errorf("ActiveArea() = %g, want %g", m.ActiveArea(), wantActive)
	}
}

func TestLoadModelFileSquareOffsets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.yaml")
	doc := `name: prototype square PMT
type: square
width: 56
height: 56
width_tolerance: 0.3
height_tolerance: 0.3
width_active: 48.5
height_active: 48.5
active_corner_x: 1.2
active_corner_y: 3.4
qe: 0.31
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	m, err := LoadModelFile(path)
	if err != nil {
		t.Fatalf("LoadModelFile() error: %v", err)
	}
	c := m.ActiveCentre()
	if !scalar.EqualWithinAbs(c.X, 1.2+24.25-28.3, 1e-12) ||
		!scalar.EqualWithinAbs(c.Y, 3.4+24.25-28.3, 1e-12) {
		t.Errorf("ActiveCentre() = (%g, %g), want (%g, %g)", c.X, c.Y, 1.2+24.25-28.3, 3.4+24.25-28.3)
	}
}

func TestLoadModelFileErrors(t *testing.T) {
	if _, err := LoadModelFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadModelFile() on missing file returned nil error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("name: incomplete\ntype: circular\nqe: 0.3\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadModelFile(bad); !errors.Is(err, geom.ErrInvalidParameter) {
		t.Errorf("LoadModelFile() on incomplete model error = %v, want ErrInvalidParameter", err)
	}
}

func TestCoverage(t *testing.T) {
	m, err := Lookup("R11410")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	layout, err := geom.GenerateCenters(geom.LatticeSpec{
		Kind: geom.Hexagonal, Pitch: m.MinPitch(0), Count: 7,
	})
	if err != nil {
		t.Fatalf("GenerateCenters() error: %v", err)
	}

	stats, err := Coverage(layout, m, 250)
	if err != nil {
		t.Fatalf("Coverage() error: %v", err)
	}
	if stats.NumUnits != 7 {
		t.Errorf("NumUnits = %d, want 7", stats.NumUnits)
	}
	if !scalar.EqualWithinAbs(stats.ArrayArea, math.Pi*125*125, 1e-6) {
		t.Errorf("ArrayArea = %g, want %g", stats.ArrayArea, math.Pi*125*125)
	}
	if !scalar.EqualWithinAbs(stats.ActivePMTArea, 7*m.ActiveArea(), 1e-6) {
		t.Errorf("ActivePMTArea = %g, want %g", stats.ActivePMTArea, 7*m.ActiveArea())
	}
	if stats.CoverageFraction <= 0 || stats.CoverageFraction >= 1 {
		t.Errorf("CoverageFraction = %g, want within (0, 1)", stats.CoverageFraction)
	}

	if _, err := Coverage(layout, m, 0); !errors.Is(err, geom.ErrInvalidParameter) {
		t.Errorf("Coverage() with zero diameter error = %v, want ErrInvalidParameter", err)
	}
}
