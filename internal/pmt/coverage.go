package pmt

import (
	"fmt"
	"math"

	"github.com/banshee-data/pmtarray/internal/geom"
)

// CoverageStats summarises how much of a circular array surface the placed
// units occupy. Areas are square millimetres.
type CoverageStats struct {
	NumUnits         int
	ArrayArea        float64
	TotalPMTArea     float64
	ActivePMTArea    float64
	CoverageFraction float64 // active PMT area over array area
}

// Coverage computes packing statistics for a layout of the given model on
// a circular array surface of arrayDiameter.
func Coverage(layout *geom.ArrayLayout, m Model, arrayDiameter float64) (CoverageStats, error) {
	if arrayDiameter <= 0 {
		return CoverageStats{}, fmt.Errorf("array diameter %g must be positive: %w",
			arrayDiameter, geom.ErrInvalidParameter)
	}
	if err := m.Validate(); err != nil {
		return CoverageStats{}, err
	}
	n := layout.NumUnits()
	r := arrayDiameter / 2
	stats := CoverageStats{
		NumUnits:      n,
		ArrayArea:     math.Pi * r * r,
		TotalPMTArea:  float64(n) * m.TotalArea(),
		ActivePMTArea: float64(n) * m.ActiveArea(),
	}
	stats.CoverageFraction = stats.ActivePMTArea / stats.ArrayArea
	return stats, nil
}
