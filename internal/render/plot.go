// Package render draws photosensor layouts for inspection: raster/vector
// plots via gonum/plot and interactive HTML scatter views via go-echarts.
// It consumes placed-unit geometry from the geom package and holds no
// state of its own; all styling is passed explicitly.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/pmtarray/internal/geom"
	"github.com/banshee-data/pmtarray/internal/pmt"
)

// Style configures array plots. The zero value draws plain black outlines
// with no fill, labels or boundary.
type Style struct {
	Title          string
	LineWidth      vg.Length
	LineColor      color.Color
	FillColor      color.Color
	ShowLabels     bool
	BoundaryRadius float64 // draw the array boundary circle when > 0
}

// DefaultStyle returns the style used by the CLI tools.
func DefaultStyle() Style {
	return Style{
		LineWidth: vg.Points(1),
		LineColor: color.Black,
		FillColor: color.Gray{Y: 230},
	}
}

// PlotArray renders every placed unit outline to path. The output format
// follows the file extension (.png, .svg, .pdf). Axis ranges are padded
// and symmetric so the array is not distorted on the square canvas.
func PlotArray(units []geom.PlacedUnit, style Style, path string) error {
	if len(units) == 0 {
		return fmt.Errorf("no units to plot")
	}

	p := plot.New()
	p.Title.Text = style.Title
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	lineWidth := style.LineWidth
	if lineWidth == 0 {
		lineWidth = vg.Points(1)
	}
	lineColor := style.LineColor
	if lineColor == nil {
		lineColor = color.Black
	}

	for _, u := range units {
		poly, err := plotter.NewPolygon(outlineXYs(u.Outline))
		if err != nil {
			return fmt.Errorf("unit %d outline: %w", u.Index, err)
		}
		poly.LineStyle.Width = lineWidth
		poly.LineStyle.Color = lineColor
		poly.Color = style.FillColor
		p.Add(poly)
	}

	if style.ShowLabels {
		xys := make(plotter.XYs, len(units))
		labels := make([]string, len(units))
		for i, u := range units {
			xys[i] = plotter.XY{X: u.Center.X, Y: u.Center.Y}
			labels[i] = fmt.Sprintf("%d", u.Index)
		}
		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return fmt.Errorf("unit labels: %w", err)
		}
		p.Add(lbl)
	}

	if style.BoundaryRadius > 0 {
		boundary, err := plotter.NewLine(circleXYs(style.BoundaryRadius))
		if err != nil {
			return fmt.Errorf("boundary circle: %w", err)
		}
		boundary.LineStyle.Width = lineWidth
		boundary.LineStyle.Color = lineColor
		boundary.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(boundary)
	}

	setSymmetricRange(p, units, style.BoundaryRadius)
	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}

// PlotUnit renders one model's packaging and active-area outlines with
// centre markers and a legend, the single-unit inspection view.
func PlotUnit(m pmt.Model, path string) error {
	if err := m.Validate(); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = m.Name
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	pkgOutline, err := m.UnitSpec().Outline()
	if err != nil {
		return fmt.Errorf("packaging outline: %w", err)
	}
	pkgPoly, err := plotter.NewPolygon(outlineXYs(pkgOutline))
	if err != nil {
		return err
	}
	pkgPoly.LineStyle.Width = vg.Points(1)
	pkgPoly.Color = color.Gray{Y: 220}
	p.Add(pkgPoly)
	p.Legend.Add("packaging", pkgPoly)

	activeOutline, err := m.ActiveUnitSpec().Outline()
	if err != nil {
		return fmt.Errorf("active outline: %w", err)
	}
	activeCentre := m.ActiveCentre()
	for i, pt := range activeOutline {
		activeOutline[i] = r2.Add(pt, activeCentre)
	}
	activePoly, err := plotter.NewPolygon(outlineXYs(activeOutline))
	if err != nil {
		return err
	}
	activePoly.LineStyle.Width = vg.Points(1)
	activePoly.Color = color.Gray{Y: 120}
	p.Add(activePoly)
	p.Legend.Add("active area", activePoly)

	geomCentre, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 0}})
	if err != nil {
		return err
	}
	geomCentre.GlyphStyle = draw.GlyphStyle{
		Color:  color.RGBA{G: 150, A: 255},
		Radius: vg.Points(4),
		Shape:  draw.RingGlyph{},
	}
	p.Add(geomCentre)
	p.Legend.Add("geometric centre", geomCentre)

	activeMark, err := plotter.NewScatter(plotter.XYs{{X: activeCentre.X, Y: activeCentre.Y}})
	if err != nil {
		return err
	}
	activeMark.GlyphStyle = draw.GlyphStyle{
		Color:  color.RGBA{R: 200, A: 255},
		Radius: vg.Points(4),
		Shape:  draw.CrossGlyph{},
	}
	p.Add(activeMark)
	p.Legend.Add("active centre", activeMark)
	p.Legend.Top = true

	rb, err := m.UnitSpec().BoundingRadius()
	if err != nil {
		return err
	}
	pad := 1.2 * rb
	p.X.Min, p.X.Max = -pad, pad
	p.Y.Min, p.Y.Max = -pad, pad

	return p.Save(5*vg.Inch, 5*vg.Inch, path)
}

func outlineXYs(pts []r2.Vec) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

// circleXYs samples a closed origin-centred circle for boundary lines.
func circleXYs(radius float64) plotter.XYs {
	const segments = 128
	xys := make(plotter.XYs, segments+1)
	for k := 0; k <= segments; k++ {
		theta := 2 * math.Pi * float64(k) / segments
		xys[k] = plotter.XY{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return xys
}

// setSymmetricRange pads the data extent by 5% and applies the same span
// to both axes so the square canvas preserves the aspect ratio.
func setSymmetricRange(p *plot.Plot, units []geom.PlacedUnit, boundaryRadius float64) {
	minX, maxX := -boundaryRadius, boundaryRadius
	minY, maxY := -boundaryRadius, boundaryRadius
	for _, u := range units {
		for _, pt := range u.Outline {
			minX = math.Min(minX, pt.X)
			maxX = math.Max(maxX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	span := math.Max(maxX-minX, maxY-minY) * 1.05
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	p.X.Min, p.X.Max = cx-span/2, cx+span/2
	p.Y.Min, p.Y.Max = cy-span/2, cy+span/2
}
