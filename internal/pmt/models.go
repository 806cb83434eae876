// Package pmt holds the photosensor model catalogue: per-model packaging
// and active-area geometry, and the derived areas used for array coverage
// statistics. All dimensions are millimetres.
package pmt

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/pmtarray/internal/geom"
)

// ErrUnknownModel reports a model name missing from the catalogue.
var ErrUnknownModel = errors.New("unknown PMT model")

// Model type constants
const (
	Circular = "circular"
	Square   = "square"
)

// Model describes one photomultiplier model. Circular models carry the
// Diameter* fields, square models the Width*/Height* fields. The yaml tags
// match the custom-model file format accepted by LoadModelFile.
type Model struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Circular models
	DiameterPackaging float64 `yaml:"diameter_packaging,omitempty"`
	ActiveDiameter    float64 `yaml:"active_diameter,omitempty"`
	DiameterTolerance float64 `yaml:"diameter_tolerance,omitempty"`

	// Square models
	Width           float64 `yaml:"width,omitempty"`
	Height          float64 `yaml:"height,omitempty"`
	WidthTolerance  float64 `yaml:"width_tolerance,omitempty"`
	HeightTolerance float64 `yaml:"height_tolerance,omitempty"`
	WidthActive     float64 `yaml:"width_active,omitempty"`
	HeightActive    float64 `yaml:"height_active,omitempty"`

	// Square models: offset of the active window's lower-left corner from
	// the envelope's lower-left corner. Zero means the window is centred,
	// which is what the built-in catalogue models use.
	ActiveCornerX float64 `yaml:"active_corner_x,omitempty"`
	ActiveCornerY float64 `yaml:"active_corner_y,omitempty"`

	QE                   float64 `yaml:"qe"`
	ActiveAreaCorrection float64 `yaml:"active_area_correction"`
}

// models is the built-in catalogue. R11410 is the 3" circular PMT used as
// the standard photosensor in dark-matter detectors; R12699 is the 2"
// square flat-panel PMT. Dimensions follow the Hamamatsu datasheets.
var models = map[string]Model{
	"R11410": {
		Name:                 `R11410, 3" PMT by Hamamatsu`,
		Type:                 Circular,
		DiameterPackaging:    76,
		ActiveDiameter:       64,
		DiameterTolerance:    2.6,
		QE:                   0.34,
		ActiveAreaCorrection: 1,
	},
	"R12699": {
		Name:                 `R12699, 2" square PMT by Hamamatsu`,
		Type:                 Square,
		Width:                56,
		Height:               56,
		WidthTolerance:       0.3,
		HeightTolerance:      0.3,
		WidthActive:          48.5,
		HeightActive:         48.5,
		QE:                   0.33,
		ActiveAreaCorrection: 1,
	},
}

// Lookup returns the named built-in model.
func Lookup(name string) (Model, error) {
	m, ok := models[name]
	if !ok {
		return Model{}, fmt.Errorf("model %q not in catalogue (valid models: %s): %w",
			name, ValidModelsString(), ErrUnknownModel)
	}
	return m, nil
}

// ValidModelsString returns a comma-separated list of catalogue names for
// error messages.
func ValidModelsString() string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Validate checks the model parameters are physical.
func (m Model) Validate() error {
	switch m.Type {
	case Circular:
		if m.DiameterPackaging <= 0 || m.ActiveDiameter <= 0 {
			return fmt.Errorf("circular model %q needs positive packaging and active diameters: %w",
				m.Name, geom.ErrInvalidParameter)
		}
		if m.ActiveDiameter > m.DiameterPackaging {
			return fmt.Errorf("circular model %q active diameter %g exceeds packaging %g: %w",
				m.Name, m.ActiveDiameter, m.DiameterPackaging, geom.ErrInvalidParameter)
		}
	case Square:
		if m.Width <= 0 || m.Height <= 0 || m.WidthActive <= 0 || m.HeightActive <= 0 {
			return fmt.Errorf("square model %q needs positive package and active dimensions: %w",
				m.Name, geom.ErrInvalidParameter)
		}
		if m.ActiveCornerX < 0 || m.ActiveCornerY < 0 {
			return fmt.Errorf("square model %q active corner offsets must not be negative: %w",
				m.Name, geom.ErrInvalidParameter)
		}
		if (m.ActiveCornerX > 0 && m.ActiveCornerX+m.WidthActive > m.EnvelopeWidth()) ||
			(m.ActiveCornerY > 0 && m.ActiveCornerY+m.HeightActive > m.EnvelopeHeight()) {
			return fmt.Errorf("square model %q active window does not fit the envelope: %w",
				m.Name, geom.ErrInvalidParameter)
		}
	default:
		return fmt.Errorf("model %q has unknown type %q: %w", m.Name, m.Type, geom.ErrInvalidParameter)
	}
	if m.QE < 0 || m.QE > 1 {
		return fmt.Errorf("model %q QE %g outside [0, 1]: %w", m.Name, m.QE, geom.ErrInvalidParameter)
	}
	return nil
}

// EnvelopeWidth is the footprint a unit claims along x: the package size
// padded by manufacturing tolerance.
func (m Model) EnvelopeWidth() float64 {
	if m.Type == Square {
		return m.Width + 2*m.WidthTolerance
	}
	return m.DiameterPackaging + m.DiameterTolerance
}

// EnvelopeHeight is the footprint a unit claims along y.
func (m Model) EnvelopeHeight() float64 {
	if m.Type == Square {
		return m.Height + 2*m.HeightTolerance
	}
	return m.DiameterPackaging + m.DiameterTolerance
}

// TotalArea is the packaging area of one unit.
func (m Model) TotalArea() float64 {
	if m.Type == Square {
		return m.EnvelopeWidth() * m.EnvelopeHeight()
	}
	r := m.DiameterPackaging / 2
	return math.Pi * r * r
}

// ActiveArea is the photosensitive area of one unit, after the model's
// active-area correction.
func (m Model) ActiveArea() float64 {
	corr := m.ActiveAreaCorrection
	if corr == 0 {
		corr = 1
	}
	if m.Type == Square {
		return m.WidthActive * m.HeightActive * corr
	}
	r := m.ActiveDiameter / 2
	return math.Pi * r * r * corr
}

// ActiveAreaFraction is the active share of the packaging area.
func (m Model) ActiveAreaFraction() float64 {
	return m.ActiveArea() / m.TotalArea()
}

// UnitSpec maps the model packaging to the layout shape used for placement
// and rendering: circular models become circles of the packaging radius,
// square models an axis-aligned polygon-4 of the envelope half-width.
func (m Model) UnitSpec() geom.UnitSpec {
	if m.Type == Square {
		return geom.UnitSpec{Kind: geom.Polygon, Sides: 4, Size: m.EnvelopeWidth() / 2}
	}
	return geom.UnitSpec{Kind: geom.Circle, Size: m.DiameterPackaging / 2}
}

// ActiveUnitSpec maps the model's photosensitive window to a layout shape.
func (m Model) ActiveUnitSpec() geom.UnitSpec {
	if m.Type == Square {
		return geom.UnitSpec{Kind: geom.Polygon, Sides: 4, Size: math.Min(m.WidthActive, m.HeightActive) / 2}
	}
	return geom.UnitSpec{Kind: geom.Circle, Size: m.ActiveDiameter / 2}
}

// ActiveCentre returns the centre of the photosensitive window in the
// unit's centred frame. Circular models and centred square windows sit at
// the origin; square models with explicit corner offsets shift accordingly.
func (m Model) ActiveCentre() r2.Vec {
	if m.Type != Square || (m.ActiveCornerX == 0 && m.ActiveCornerY == 0) {
		return r2.Vec{}
	}
	return r2.Vec{
		X: m.ActiveCornerX + m.WidthActive/2 - m.EnvelopeWidth()/2,
		Y: m.ActiveCornerY + m.HeightActive/2 - m.EnvelopeHeight()/2,
	}
}

// MinPitch returns the smallest centre-to-centre spacing at which adjacent
// units of this model cannot touch, with intraDistance of extra clearance.
func (m Model) MinPitch(intraDistance float64) float64 {
	return math.Max(m.EnvelopeWidth(), m.EnvelopeHeight()) + intraDistance
}
