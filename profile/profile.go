package profile

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/fbg-xyz/go-fbg/fiber"
)

// Profile is the built local-condition function over the fiber's longitudinal
// axis. It is immutable once built.
type Profile struct {
	mode   Mode
	data   Dataset
	strain func(x float64) float64
	stress func(x float64) float64
}

// New builds a Profile from a dataset and a mode selection. The dataset may
// be empty unless a mode that interpolates from it is selected.
func New(data Dataset, mode Mode) (*Profile, error) {
	p := &Profile{mode: mode, data: data}

	switch mode.Strain {
	case StrainNone:
		p.strain = func(float64) float64 { return 0 }
	case StrainUniform:
		eps := mode.UniformStrain
		p.strain = func(float64) float64 { return eps }
	case StrainNonUniform:
		fn, err := interpolator(data, func(s Sample) float64 { return s.Strain })
		if err != nil {
			return nil, fmt.Errorf("%w: non-uniform strain: %v", fiber.ErrDataRange, err)
		}
		p.strain = fn
	default:
		return nil, fmt.Errorf("%w: unknown strain type %d", fiber.ErrInvalidParameter, mode.Strain)
	}

	switch mode.Stress {
	case StressNone:
		p.stress = func(float64) float64 { return 0 }
	case StressIncluded:
		fn, err := interpolator(data, func(s Sample) float64 { return s.Stress })
		if err != nil {
			return nil, fmt.Errorf("%w: included stress: %v", fiber.ErrDataRange, err)
		}
		p.stress = fn
	default:
		return nil, fmt.Errorf("%w: unknown stress type %d", fiber.ErrInvalidParameter, mode.Stress)
	}

	return p, nil
}

// interpolator builds a piecewise-linear function of position from one sample
// field. Positions outside the dataset clamp to the nearest endpoint.
func interpolator(data Dataset, field func(Sample) float64) (func(x float64) float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	if len(data) == 1 {
		v := field(data[0])
		return func(float64) float64 { return v }, nil
	}

	xs := make([]float64, len(data))
	ys := make([]float64, len(data))
	for i, s := range data {
		xs[i] = s.Position
		ys[i] = field(s)
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, err
	}
	lo, hi := xs[0], xs[len(xs)-1]
	return func(x float64) float64 {
		if x < lo {
			x = lo
		} else if x > hi {
			x = hi
		}
		return pl.Predict(x)
	}, nil
}

// Mode returns the mode the profile was built with.
func (p *Profile) Mode() Mode { return p.mode }

// Dataset returns the raw samples the profile interpolates from.
func (p *Profile) Dataset() Dataset { return p.data }

// Strain evaluates the local longitudinal strain at position x (mm).
func (p *Profile) Strain(x float64) float64 { return p.strain(x) }

// Stress evaluates the local transverse stress at position x (mm), in Pa.
func (p *Profile) Stress(x float64) float64 { return p.stress(x) }

// LocalCondition evaluates both fields at once.
func (p *Profile) LocalCondition(x float64) (strain, stress float64) {
	return p.strain(x), p.stress(x)
}

// CheckCoverage verifies that every interpolating mode has data under each
// sensor span. Spans are [start, start+length] intervals in mm.
func (p *Profile) CheckCoverage(layout fiber.ArrayLayout) error {
	needsData := p.mode.Strain == StrainNonUniform || p.mode.Stress == StressIncluded
	if !needsData {
		return nil
	}
	for i, pos := range layout.Positions {
		if !p.data.Covers(pos, pos+layout.Length) {
			min, max := p.data.Range()
			return fmt.Errorf("%w: sensor %d span [%g, %g] mm outside dataset coverage [%g, %g] mm",
				fiber.ErrDataRange, i+1, pos, pos+layout.Length, min, max)
		}
	}
	return nil
}
