package main

import (
	"flag"
	"fmt"
	"os"

	"gonum.org/v1/plot/vg"

	"github.com/fbg-xyz/go-fbg/plotter"
	"github.com/fbg-xyz/go-fbg/results"
)

func plotCmd(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	output := fs.String("output", "", "Output image file (.png/.svg/.pdf, required)")
	title := fs.String("title", "", "Plot title")
	width := fs.Float64("width", 8, "Plot width in inches")
	height := fs.Float64("height", 4, "Plot height in inches")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fbg plot <results.json> [options]

Render the undeformed and deformed reflectance spectra from results.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  fbg plot results.json --output spectrum.png
  fbg plot results.json --output spectrum.svg --title "Bridge strain test"
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("results file required")
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output required")
	}

	res, err := results.ReadJSON(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read results: %w", err)
	}

	opts := plotter.DefaultOptions()
	opts.Width = vg.Length(*width) * vg.Inch
	opts.Height = vg.Length(*height) * vg.Inch
	if *title != "" {
		opts.Title = *title
	}

	if err := plotter.SaveSpectra(res, *output, opts); err != nil {
		return err
	}
	fmt.Printf("Plot written to %s\n", *output)
	return nil
}
