package render

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/pmtarray/internal/geom"
)

// WriteCentersHTML writes an interactive scatter view of the layout unit
// centres to path. Tooltips carry the unit index, so the page doubles as a
// quick index-to-position lookup.
func WriteCentersHTML(layout *geom.ArrayLayout, title, path string) error {
	if layout.NumUnits() == 0 {
		return fmt.Errorf("no centres to plot")
	}

	data := make([]opts.ScatterData, 0, layout.NumUnits())
	extent := 0.0
	for _, rec := range layout.Table() {
		data = append(data, opts.ScatterData{
			Name:  fmt.Sprintf("unit %d", rec.Index),
			Value: []interface{}{rec.X, rec.Y, rec.Index},
		})
		extent = math.Max(extent, math.Max(math.Abs(rec.X), math.Abs(rec.Y)))
	}
	pad := extent + layout.Spec.Pitch

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title, Width: "900px", Height: "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("units=%d pitch=%gmm lattice=%s", layout.NumUnits(), layout.Spec.Pitch, layout.Spec.Kind),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "x (mm)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "y (mm)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("centres", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html output: %w", err)
	}
	defer f.Close()
	return scatter.Render(f)
}
