// Package grating computes FBG reflectance spectra with the transfer-matrix
// method: each grating is a cascade of uniform sub-segments described by
// 2x2 complex matrices, and the array is the cascade of its gratings joined
// by free-propagation phase.
package grating

import (
	"fmt"
	"math"

	"github.com/fbg-xyz/go-fbg/fiber"
)

// Grid is the ordered wavelength grid for one run, in nm. Immutable once
// built; spectra are parallel slices over it.
type Grid []float64

// NewGrid builds the grid from minBandwidth to maxBandwidth inclusive,
// spaced by resolution. Its length is floor((max-min)/resolution)+1.
func NewGrid(minBandwidth, maxBandwidth, resolution float64) (Grid, error) {
	for name, v := range map[string]float64{
		"minBandwidth": minBandwidth,
		"maxBandwidth": maxBandwidth,
		"resolution":   resolution,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s is not finite", fiber.ErrInvalidParameter, name)
		}
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("%w: resolution must be positive, got %g", fiber.ErrInvalidParameter, resolution)
	}
	if maxBandwidth <= minBandwidth {
		return nil, fmt.Errorf("%w: band [%g, %g] nm is empty", fiber.ErrInvalidParameter, minBandwidth, maxBandwidth)
	}

	// The small bias absorbs float error when the band is an exact multiple
	// of the resolution.
	n := int(math.Floor((maxBandwidth-minBandwidth)/resolution+1e-9)) + 1
	grid := make(Grid, n)
	for i := range grid {
		grid[i] = minBandwidth + float64(i)*resolution
	}
	return grid, nil
}

// Resolution returns the grid spacing in nm.
func (g Grid) Resolution() float64 {
	if len(g) < 2 {
		return 0
	}
	return g[1] - g[0]
}

// Nearest returns the index of the grid sample closest to wavelength wl,
// clamped to the grid.
func (g Grid) Nearest(wl float64) int {
	if len(g) == 0 {
		return 0
	}
	res := g.Resolution()
	if res == 0 {
		return 0
	}
	i := int(math.Round((wl - g[0]) / res))
	if i < 0 {
		return 0
	}
	if i >= len(g) {
		return len(g) - 1
	}
	return i
}
