package grating

import (
	"runtime"
	"sync"

	"github.com/fbg-xyz/go-fbg/bragg"
	"github.com/fbg-xyz/go-fbg/fiber"
)

// Engine evaluates reflectance spectra for sensor arrays. The per-wavelength
// matrix cascades are independent, so the grid is split across workers.
type Engine struct {
	Params fiber.Parameters
	// Workers bounds the parallel evaluation. Zero means GOMAXPROCS.
	Workers int
}

// NewEngine returns an engine using all available compute units.
func NewEngine(params fiber.Parameters) *Engine {
	return &Engine{Params: params}
}

// ArraySpectrum computes the composite intensity reflectance of the whole
// array over the grid: per-sensor segment cascades joined by inter-sensor
// free propagation. Stress-split sensors are evaluated once per polarization
// mode and the intensities averaged.
func (e *Engine) ArraySpectrum(grid Grid, sensors []bragg.SensorProfile) []float64 {
	split := hasSplit(sensors)
	return e.mapGrid(grid, func(wl float64) float64 {
		if !split {
			return e.cascade(wl, sensors, 0).reflectance()
		}
		rx := e.cascade(wl, sensors, +1).reflectance()
		ry := e.cascade(wl, sensors, -1).reflectance()
		return (rx + ry) / 2
	})
}

// SensorSpectrum computes the reflectance of a single sensor in isolation.
func (e *Engine) SensorSpectrum(grid Grid, sensor bragg.SensorProfile) []float64 {
	return e.ArraySpectrum(grid, []bragg.SensorProfile{sensor})
}

// cascade multiplies the transfer matrices of every segment of every sensor
// in physical order, with free propagation over the gaps. pol selects the
// polarization mode (+1 fast axis, -1 slow axis, 0 unsplit).
func (e *Engine) cascade(wl float64, sensors []bragg.SensorProfile, pol float64) matrix2 {
	neff := e.Params.InitialRefractiveIndex
	dn := e.Params.MeanChangeRefractiveIndex
	vis := e.Params.FringeVisibility

	total := identity2
	prevEnd := -1.0
	for _, s := range sensors {
		if prevEnd >= 0 {
			total = total.mul(propagationMatrix(wl, neff, s.Position-prevEnd))
		}
		dz := s.Length / float64(len(s.Wavelengths))
		for k, braggWl := range s.Wavelengths {
			if pol != 0 && s.IndexSplit[k] != 0 {
				// The birefringence moves the local Bragg condition apart
				// for the two polarization modes.
				braggWl *= 1 + pol*s.IndexSplit[k]/(2*neff)
			}
			total = total.mul(segmentMatrix(wl, braggWl, neff, dn, vis, dz))
		}
		prevEnd = s.Position + s.Length
	}
	return total
}

// mapGrid evaluates fn at every grid sample, fanning the work out across
// workers. Results land by index, so ordering is preserved and the output is
// identical to a sequential evaluation.
func (e *Engine) mapGrid(grid Grid, fn func(wl float64) float64) []float64 {
	out := make([]float64, len(grid))
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(grid) {
		workers = len(grid)
	}
	if workers <= 1 {
		for i, wl := range grid {
			out[i] = fn(wl)
		}
		return out
	}

	var wg sync.WaitGroup
	chunk := (len(grid) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(grid) {
			hi = len(grid)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = fn(grid[i])
			}
		}(lo, hi)
	}
	wg.Wait()
	return out
}

func hasSplit(sensors []bragg.SensorProfile) bool {
	for _, s := range sensors {
		for _, dn := range s.IndexSplit {
			if dn != 0 {
				return true
			}
		}
	}
	return false
}
