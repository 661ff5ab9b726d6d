package fiber

import (
	"fmt"
	"math"
)

// ArrayLayout describes the virtual FBG array: how many sensors, where they
// sit along the fiber, and the Bragg wavelength each was written at.
// Positions and lengths are in mm, wavelengths in nm.
type ArrayLayout struct {
	// Count is the number of sensors, N >= 1.
	Count int `json:"count"`

	// Length is the grating length L of every sensor, in mm.
	Length float64 `json:"length"`

	// Tolerance is the minimum extra center-to-center clearance between
	// consecutive sensors on top of the grating length, in mm.
	Tolerance float64 `json:"tolerance"`

	// Positions are the sensor start positions from the fiber origin,
	// strictly increasing.
	Positions []float64 `json:"positions"`

	// OriginalWavelengths are the unperturbed Bragg wavelengths, one per
	// sensor, each inside the simulated band.
	OriginalWavelengths []float64 `json:"originalWavelengths"`
}

// DefaultLayout returns the three-sensor demonstration array used by the
// original instrument configuration.
func DefaultLayout() ArrayLayout {
	return ArrayLayout{
		Count:               3,
		Length:              10.0,
		Tolerance:           0.01,
		Positions:           []float64{22, 50, 70},
		OriginalWavelengths: []float64{1500, 1525, 1550},
	}
}

// Span returns the longitudinal interval [start, end] covered by the
// gratings, in mm.
func (a ArrayLayout) Span() (start, end float64) {
	if len(a.Positions) == 0 {
		return 0, 0
	}
	return a.Positions[0], a.Positions[len(a.Positions)-1] + a.Length
}

// Validate checks counts, ordering, spacing and wavelength placement against
// the simulated band [minBandwidth, maxBandwidth] (nm). All layout problems
// are detected here, before any spectrum is computed.
func (a ArrayLayout) Validate(minBandwidth, maxBandwidth float64) error {
	if a.Count < 1 {
		return fmt.Errorf("%w: sensor count must be at least 1, got %d", ErrInvalidParameter, a.Count)
	}
	if a.Length <= 0 || math.IsNaN(a.Length) {
		return fmt.Errorf("%w: grating length must be positive, got %g", ErrInvalidParameter, a.Length)
	}
	if a.Tolerance <= 0 || math.IsNaN(a.Tolerance) {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidParameter, a.Tolerance)
	}
	if len(a.Positions) != a.Count {
		return fmt.Errorf("%w: sensors count (%d) and positions count (%d) should be equal",
			ErrDataRange, a.Count, len(a.Positions))
	}
	if len(a.OriginalWavelengths) != a.Count {
		return fmt.Errorf("%w: sensors count (%d) and original wavelengths count (%d) should be equal",
			ErrDataRange, a.Count, len(a.OriginalWavelengths))
	}
	for i := 1; i < a.Count; i++ {
		gap := a.Positions[i] - a.Positions[i-1]
		if gap <= 0 {
			return fmt.Errorf("%w: positions must be strictly increasing (sensor %d at %g mm after %g mm)",
				ErrLayoutViolation, i+1, a.Positions[i], a.Positions[i-1])
		}
		if gap < a.Length+a.Tolerance {
			return fmt.Errorf("%w: sensors %d and %d are %g mm apart, need at least %g mm (length %g + tolerance %g)",
				ErrLayoutViolation, i, i+1, gap, a.Length+a.Tolerance, a.Length, a.Tolerance)
		}
	}
	for i, wl := range a.OriginalWavelengths {
		if wl < minBandwidth || wl > maxBandwidth {
			return fmt.Errorf("%w: sensor %d wavelength %g nm outside band [%g, %g] nm",
				ErrWavelengthRange, i+1, wl, minBandwidth, maxBandwidth)
		}
	}
	return nil
}
