package osa

import (
	"math"

	"github.com/fbg-xyz/go-fbg/fiber"
	"github.com/fbg-xyz/go-fbg/grating"
)

// DetectionThreshold is the minimum intensity reflectance a local maximum
// must reach to count as a sensor's peak. Below it the sensor's summary is
// reported as undetected (NaN shift and width).
const DetectionThreshold = 0.01

// PeakSummary describes one sensor's reflectance peak in the deformed
// spectrum.
type PeakSummary struct {
	// Sensor is the 1-based index in the array layout.
	Sensor int
	// Original is the unperturbed Bragg wavelength in nm.
	Original float64
	// Detected is false when no peak exceeded the detectability threshold
	// inside the search window; Peak, Shift and Width are then NaN.
	Detected bool
	// Peak is the wavelength of maximum reflectance, nm.
	Peak float64
	// Reflectance is the intensity reflectance at the peak.
	Reflectance float64
	// Shift is Peak minus Original, nm.
	Shift float64
	// Width is the full width at half maximum, nm, measured by linear
	// interpolation between the grid samples straddling each half-max
	// crossing.
	Width float64
}

// extractPeaks searches the spectrum around each sensor's original
// wavelength. Each sensor's window spans to the midpoints toward its
// neighbors' original wavelengths (band edges for the outermost sensors), so
// windows never overlap.
func extractPeaks(grid grating.Grid, reflectance []float64, layout fiber.ArrayLayout) []PeakSummary {
	summaries := make([]PeakSummary, layout.Count)
	for i := 0; i < layout.Count; i++ {
		original := layout.OriginalWavelengths[i]
		lo, hi := searchWindow(grid, layout.OriginalWavelengths, i)
		summaries[i] = summarizePeak(grid, reflectance, i+1, original, lo, hi)
	}
	return summaries
}

// searchWindow returns the inclusive grid index range for sensor i. The
// midpoint sample belongs to the upper neighbor, so adjacent windows share
// no index.
func searchWindow(grid grating.Grid, originals []float64, i int) (lo, hi int) {
	lo, hi = 0, len(grid)-1
	if i > 0 {
		mid := (originals[i-1] + originals[i]) / 2
		lo = grid.Nearest(mid)
	}
	if i < len(originals)-1 {
		mid := (originals[i] + originals[i+1]) / 2
		hi = grid.Nearest(mid) - 1
		if hi < lo {
			hi = lo
		}
	}
	return lo, hi
}

func summarizePeak(grid grating.Grid, reflectance []float64, sensor int, original float64, lo, hi int) PeakSummary {
	peakIdx := lo
	for j := lo; j <= hi; j++ {
		if reflectance[j] > reflectance[peakIdx] {
			peakIdx = j
		}
	}
	peak := reflectance[peakIdx]
	if peak < DetectionThreshold {
		nan := math.NaN()
		return PeakSummary{Sensor: sensor, Original: original, Peak: nan, Shift: nan, Width: nan}
	}

	left := halfMaxCrossing(grid, reflectance, peakIdx, lo, -1)
	right := halfMaxCrossing(grid, reflectance, peakIdx, hi, +1)

	return PeakSummary{
		Sensor:      sensor,
		Original:    original,
		Detected:    true,
		Peak:        grid[peakIdx],
		Reflectance: peak,
		Shift:       grid[peakIdx] - original,
		Width:       right - left,
	}
}

// halfMaxCrossing walks from the peak toward limit in steps of dir until the
// reflectance drops below half the peak value, then interpolates the exact
// crossing wavelength between the straddling samples. If the window edge is
// reached first, the edge wavelength is returned.
func halfMaxCrossing(grid grating.Grid, reflectance []float64, peakIdx, limit, dir int) float64 {
	half := reflectance[peakIdx] / 2
	for j := peakIdx; j != limit; j += dir {
		next := j + dir
		if reflectance[next] < half {
			// Linear interpolation between grid[j] and grid[next].
			span := grid[next] - grid[j]
			frac := (reflectance[j] - half) / (reflectance[j] - reflectance[next])
			return grid[j] + frac*span
		}
	}
	return grid[limit]
}
