// Command pmtarray computes the 2D layout of a photomultiplier array and
// writes the requested outputs: a centre-coordinate table (CSV or SQLite),
// a rendered plot, or an interactive HTML view. Invalid parameters exit
// non-zero before any output is produced.
package main

import (
	"flag"
	"log"
	"math"
	"os"

	"github.com/banshee-data/pmtarray/internal/geom"
	"github.com/banshee-data/pmtarray/internal/layoutdb"
	"github.com/banshee-data/pmtarray/internal/pmt"
	"github.com/banshee-data/pmtarray/internal/render"
)

var (
	modelName = flag.String("model", "", "Built-in PMT model (R11410, R12699)")
	modelFile = flag.String("model-file", "", "YAML file with custom PMT model parameters")
	shape     = flag.String("shape", "", "Custom unit shape (circle|polygon) when no model is given")
	size      = flag.Float64("size", 0, "Custom unit characteristic size in mm (radius or inradius)")
	sides     = flag.Int("sides", 4, "Custom polygon side count")
	lattice   = flag.String("lattice", "hex", "Lattice kind (rect|hex)")
	pitch     = flag.Float64("pitch", 0, "Centre-to-centre pitch in mm (default: derived from the model)")
	intra     = flag.Float64("intra", 0, "Extra clearance between units in mm (used when deriving pitch)")
	rows      = flag.Int("rows", 0, "Row count (rect lattice)")
	cols      = flag.Int("cols", 0, "Column count (rect lattice)")
	count     = flag.Int("count", 0, "Total unit count (hex lattice; default: filled from -diameter)")
	diameter  = flag.Float64("diameter", 0, "Array diameter in mm; crops the layout to the array boundary")
	centered  = flag.Bool("centered", false, "Centre the rectangular grid on the origin")
	csvOut    = flag.String("csv", "", "Write the centre table to this CSV file")
	plotOut   = flag.String("plot", "", "Render the array to this image file (.png/.svg/.pdf)")
	htmlOut   = flag.String("html", "", "Write an interactive centre view to this HTML file")
	dbOut     = flag.String("db", "", "Export the layout to this SQLite file")
	labels    = flag.Bool("labels", false, "Draw unit indices on the plot")
	verbose   = flag.Bool("verbose", false, "Print layout properties")
)

func main() {
	flag.Parse()

	unitSpec, model, haveModel, unitLabel := resolveUnit()

	effPitch := *pitch
	if effPitch <= 0 {
		if !haveModel {
			log.Fatal("either -pitch or a PMT model is required")
		}
		effPitch = model.MinPitch(*intra)
	}

	boundingRadius, err := unitSpec.BoundingRadius()
	if err != nil {
		log.Fatalf("invalid unit: %v", err)
	}

	layout := generateLayout(effPitch, boundingRadius)

	if *verbose {
		log.Printf("layout: %d units, lattice=%s, pitch=%.3fmm, unit=%s", layout.NumUnits(), layout.Spec.Kind, effPitch, unitLabel)
		if haveModel && *diameter > 0 {
			stats, err := pmt.Coverage(layout, model, *diameter)
			if err != nil {
				log.Fatalf("failed to compute coverage: %v", err)
			}
			log.Printf("coverage: array area %.1fmm2, active PMT area %.1fmm2, fraction %.3f",
				stats.ArrayArea, stats.ActivePMTArea, stats.CoverageFraction)
		}
	}

	wroteOutput := false

	if *csvOut != "" {
		f, err := os.Create(*csvOut)
		if err != nil {
			log.Fatalf("failed to create CSV output: %v", err)
		}
		if err := layout.WriteCSV(f); err != nil {
			f.Close()
			log.Fatalf("failed to write CSV: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("failed to close CSV output: %v", err)
		}
		wroteOutput = true
	}

	if *plotOut != "" {
		units, err := layout.Place(unitSpec)
		if err != nil {
			log.Fatalf("failed to place units: %v", err)
		}
		style := render.DefaultStyle()
		style.Title = unitLabel
		style.ShowLabels = *labels
		if *diameter > 0 {
			style.BoundaryRadius = *diameter / 2
		}
		if err := render.PlotArray(units, style, *plotOut); err != nil {
			log.Fatalf("failed to render array: %v", err)
		}
		wroteOutput = true
	}

	if *htmlOut != "" {
		if err := render.WriteCentersHTML(layout, unitLabel, *htmlOut); err != nil {
			log.Fatalf("failed to write HTML view: %v", err)
		}
		wroteOutput = true
	}

	if *dbOut != "" {
		db, err := layoutdb.NewDB(*dbOut)
		if err != nil {
			log.Fatalf("failed to open layout database: %v", err)
		}
		id, err := db.RecordLayout(unitLabel, layout)
		if err != nil {
			db.Close()
			log.Fatalf("failed to record layout: %v", err)
		}
		if err := db.Close(); err != nil {
			log.Fatalf("failed to close layout database: %v", err)
		}
		if *verbose {
			log.Printf("recorded layout %s in %s", id, *dbOut)
		}
		wroteOutput = true
	}

	// With no output flags the centre table goes to stdout.
	if !wroteOutput {
		if err := layout.WriteCSV(os.Stdout); err != nil {
			log.Fatalf("failed to write table: %v", err)
		}
	}
}

// resolveUnit picks the unit geometry from -model-file, -model or the
// custom -shape flags, in that priority order.
func resolveUnit() (geom.UnitSpec, pmt.Model, bool, string) {
	switch {
	case *modelFile != "":
		m, err := pmt.LoadModelFile(*modelFile)
		if err != nil {
			log.Fatalf("failed to load model file: %v", err)
		}
		return m.UnitSpec(), m, true, m.Name
	case *modelName != "":
		m, err := pmt.Lookup(*modelName)
		if err != nil {
			log.Fatalf("failed to look up model: %v", err)
		}
		return m.UnitSpec(), m, true, *modelName
	case *shape != "":
		spec := geom.UnitSpec{Kind: *shape, Size: *size, Sides: *sides}
		if _, err := spec.BoundingRadius(); err != nil {
			log.Fatalf("invalid custom unit: %v", err)
		}
		return spec, pmt.Model{}, false, *shape
	default:
		log.Fatal("a PMT model (-model, -model-file) or custom shape (-shape, -size) is required")
		panic("unreachable")
	}
}

// generateLayout builds the lattice from the flags. For hex lattices with
// no explicit -count, the unit count is derived from -diameter: enough
// complete rings to cover the array, cropped back to the boundary.
func generateLayout(effPitch, boundingRadius float64) *geom.ArrayLayout {
	spec := geom.LatticeSpec{
		Kind:     *lattice,
		Pitch:    effPitch,
		Rows:     *rows,
		Cols:     *cols,
		Count:    *count,
		Centered: *centered,
	}

	if spec.Kind == geom.Hexagonal && spec.Count <= 0 {
		if *diameter <= 0 {
			log.Fatal("hex lattice needs -count or -diameter")
		}
		// The nearest units of ring r sit at r*pitch*sqrt(3)/2 from the
		// centre, so this many rings covers every unit the crop can keep.
		ringCount := int((*diameter/2)/(effPitch*math.Sqrt(3)/2)) + 1
		spec.Count = 1 + 3*ringCount*(ringCount+1)
	}

	layout, err := geom.GenerateCenters(spec)
	if err != nil {
		log.Fatalf("failed to generate centres: %v", err)
	}

	if *diameter > 0 {
		cropRadius := *diameter/2 - boundingRadius
		if cropRadius <= 0 {
			log.Fatalf("array diameter %.1fmm cannot fit a unit of bounding radius %.1fmm", *diameter, boundingRadius)
		}
		layout, err = layout.CropToCircle(cropRadius)
		if err != nil {
			log.Fatalf("failed to crop layout: %v", err)
		}
		if layout.NumUnits() == 0 {
			log.Fatalf("no units fit inside a %.1fmm array at pitch %.3fmm", *diameter, effPitch)
		}
	}

	return layout
}
