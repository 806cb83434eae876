// Command pmtunit inspects a single PMT model: it prints the model's
// geometric properties and optionally renders the packaging and
// active-area outlines to an image file.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/banshee-data/pmtarray/internal/pmt"
	"github.com/banshee-data/pmtarray/internal/render"
)

var (
	modelName = flag.String("model", "", "Built-in PMT model (R11410, R12699)")
	modelFile = flag.String("model-file", "", "YAML file with custom PMT model parameters")
	plotOut   = flag.String("plot", "", "Render the unit to this image file (.png/.svg/.pdf)")
	verbose   = flag.Bool("verbose", false, "Print progress messages")
)

func main() {
	flag.Parse()

	var m pmt.Model
	var err error
	switch {
	case *modelFile != "":
		m, err = pmt.LoadModelFile(*modelFile)
	case *modelName != "":
		m, err = pmt.Lookup(*modelName)
	default:
		log.Fatalf("a PMT model is required (-model or -model-file); valid models: %s", pmt.ValidModelsString())
	}
	if err != nil {
		log.Fatalf("failed to load model: %v", err)
	}

	printProperties(m)

	if *plotOut != "" {
		if *verbose {
			log.Printf("rendering %s to %s", m.Name, *plotOut)
		}
		if err := render.PlotUnit(m, *plotOut); err != nil {
			log.Fatalf("failed to render unit: %v", err)
		}
	}
}

func printProperties(m pmt.Model) {
	spec := m.UnitSpec()
	rb, err := spec.BoundingRadius()
	if err != nil {
		log.Fatalf("invalid model geometry: %v", err)
	}

	fmt.Printf("model:                %s\n", m.Name)
	fmt.Printf("type:                 %s\n", m.Type)
	fmt.Printf("envelope:             %.1f x %.1f mm\n", m.EnvelopeWidth(), m.EnvelopeHeight())
	fmt.Printf("bounding radius:      %.2f mm\n", rb)
	fmt.Printf("total area:           %.1f mm2\n", m.TotalArea())
	fmt.Printf("active area:          %.1f mm2\n", m.ActiveArea())
	fmt.Printf("active area fraction: %.3f\n", m.ActiveAreaFraction())
	fmt.Printf("quantum efficiency:   %.2f\n", m.QE)
	fmt.Printf("min pitch:            %.2f mm\n", m.MinPitch(0))
}
