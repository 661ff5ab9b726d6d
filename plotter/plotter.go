// Package plotter renders reflectance spectra for the visualization surface.
package plotter

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fbg-xyz/go-fbg/results"
)

// Options control the rendered chart.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions returns an 8x4 inch chart.
func DefaultOptions() Options {
	return Options{
		Title:  "FBG array reflectance",
		Width:  8 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

var (
	deformedColor   = color.RGBA{R: 0xd6, G: 0x28, B: 0x28, A: 0xff}
	undeformedColor = color.RGBA{B: 0xb4, G: 0x50, A: 0xff}
)

// SaveSpectra renders the run's reflectance series against the wavelength
// grid and saves them to filename. The format follows the file extension
// (.png, .svg, .pdf); missing extensions default to PNG.
func SaveSpectra(r *results.Results, filename string, opts Options) error {
	if r.Spectra == nil {
		return fmt.Errorf("results contain no spectra (status %s)", r.Metadata.Status)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Wavelength [nm]"
	p.Y.Label.Text = "Reflectance"
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = true

	if r.Spectra.Undeformed != nil {
		line, err := newLine(r.Spectra.Wavelengths, r.Spectra.Undeformed, undeformedColor)
		if err != nil {
			return err
		}
		p.Add(line)
		p.Legend.Add("undeformed", line)
	}

	line, err := newLine(r.Spectra.Wavelengths, r.Spectra.Deformed, deformedColor)
	if err != nil {
		return err
	}
	p.Add(line)
	p.Legend.Add("deformed", line)

	if !strings.Contains(filepath.Base(filename), ".") {
		filename += ".png"
	}
	if err := p.Save(opts.Width, opts.Height, filename); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

func newLine(xs, ys []float64, c color.RGBA) (*plotter.Line, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("series length %d does not match grid length %d", len(ys), len(xs))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("line plotter: %w", err)
	}
	line.Color = c
	return line, nil
}
