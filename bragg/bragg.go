// Package bragg computes, per sensor, the local Bragg-wavelength profile
// along the grating length under the selected strain, stress and temperature
// conditions. A non-uniform condition yields a chirped profile; uniform
// conditions reduce to a flat profile with a single constant shift.
package bragg

import (
	"github.com/fbg-xyz/go-fbg/fiber"
	"github.com/fbg-xyz/go-fbg/profile"
)

// Segments is the fixed sub-sampling of each grating: the piecewise-uniform
// approximation uses this many equal segments spanning the grating length.
const Segments = 20

// SensorProfile is the local Bragg-wavelength profile of a single sensor:
// parallel sequences over the grating's segment midpoints.
type SensorProfile struct {
	// Sensor is the 1-based index in the array layout.
	Sensor int
	// Original is the unperturbed Bragg wavelength in nm.
	Original float64
	// Position is the sensor's start position in mm.
	Position float64
	// Length is the grating length in mm.
	Length float64
	// Positions are the segment midpoints in mm.
	Positions []float64
	// Wavelengths are the instantaneous Bragg wavelengths at the midpoints,
	// in nm.
	Wavelengths []float64
	// IndexSplit is the stress-induced birefringence (index difference
	// between polarization modes) at the midpoints. All zero without
	// transverse stress.
	IndexSplit []float64
}

// Deformed evaluates the local condition at every segment midpoint of every
// sensor and converts it to instantaneous Bragg wavelengths:
//
//	dLambda/lambda = (1-pe)*eps(x) + xi*dT + alpha*dT*(1-pe)
//
// Temperature terms vanish when no emulation is requested (dT = 0).
func Deformed(params fiber.Parameters, layout fiber.ArrayLayout, prof *profile.Profile) []SensorProfile {
	sensitivity := params.StrainSensitivity()
	dT := params.DeltaT()
	thermal := params.ThermoOptic*dT + params.ExpansionCoefficient()*dT*sensitivity
	biref := params.BirefringenceFactor()

	profiles := make([]SensorProfile, layout.Count)
	for i := 0; i < layout.Count; i++ {
		sp := flatProfile(i, layout)
		dz := layout.Length / Segments
		for k := 0; k < Segments; k++ {
			x := layout.Positions[i] + (float64(k)+0.5)*dz
			eps, sigma := prof.LocalCondition(x)
			frac := sensitivity*eps + thermal
			sp.Positions[k] = x
			sp.Wavelengths[k] = sp.Original * (1 + frac)
			sp.IndexSplit[k] = biref * sigma
		}
		profiles[i] = sp
	}
	return profiles
}

// Undeformed returns flat profiles pinned to each sensor's original
// wavelength: the ambient-only configuration.
func Undeformed(layout fiber.ArrayLayout) []SensorProfile {
	profiles := make([]SensorProfile, layout.Count)
	for i := 0; i < layout.Count; i++ {
		sp := flatProfile(i, layout)
		dz := layout.Length / Segments
		for k := 0; k < Segments; k++ {
			sp.Positions[k] = layout.Positions[i] + (float64(k)+0.5)*dz
			sp.Wavelengths[k] = sp.Original
		}
		profiles[i] = sp
	}
	return profiles
}

func flatProfile(i int, layout fiber.ArrayLayout) SensorProfile {
	return SensorProfile{
		Sensor:      i + 1,
		Original:    layout.OriginalWavelengths[i],
		Position:    layout.Positions[i],
		Length:      layout.Length,
		Positions:   make([]float64, Segments),
		Wavelengths: make([]float64, Segments),
		IndexSplit:  make([]float64, Segments),
	}
}
