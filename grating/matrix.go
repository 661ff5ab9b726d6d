package grating

import (
	"math"
	"math/cmplx"
)

// mmPerNm converts lengths given in mm into the nm scale the coupled-mode
// parameters are expressed in.
const mmPerNm = 1e6

// matrix2 is a 2x2 complex transfer matrix relating forward/backward wave
// amplitudes: [[a, b], [c, d]].
type matrix2 struct {
	a, b, c, d complex128
}

var identity2 = matrix2{a: 1, d: 1}

// mul returns m*n, the cascade of m followed by n along the fiber.
func (m matrix2) mul(n matrix2) matrix2 {
	return matrix2{
		a: m.a*n.a + m.b*n.c,
		b: m.a*n.b + m.b*n.d,
		c: m.c*n.a + m.d*n.c,
		d: m.c*n.b + m.d*n.d,
	}
}

// reflectance reads the intensity reflectance off the cascaded matrix.
func (m matrix2) reflectance() float64 {
	if m.a == 0 {
		return 0
	}
	r := cmplx.Abs(m.c / m.a)
	return r * r
}

// segmentMatrix builds the coupled-mode transfer matrix of one uniform
// grating segment.
//
//	wl      vacuum wavelength, nm
//	braggWl local Bragg wavelength of the segment, nm
//	neff    effective refractive index
//	dn      mean index modulation
//	vis     fringe visibility
//	dz      segment length, mm
func segmentMatrix(wl, braggWl, neff, dn, vis, dz float64) matrix2 {
	// The DC self-coupling raises the mean index seen by the mode to
	// neff+dn. The grating period is written against the raised index, so
	// the reflection maximum (sigma = 0) sits exactly at braggWl.
	design := braggWl / (1 + dn/neff)

	detuning := 2 * math.Pi * neff * (1/wl - 1/design)
	sigma := detuning + 2*math.Pi*dn/wl // DC self-coupling
	kappa := math.Pi * vis * dn / wl    // AC coupling
	length := dz * mmPerNm

	gammaSq := complex(kappa*kappa-sigma*sigma, 0)
	gamma := cmplx.Sqrt(gammaSq)

	if cmplx.Abs(gamma)*length < 1e-12 {
		// Degenerate kappa = |sigma| segment: sinh(g*z)/g -> z.
		return matrix2{
			a: complex(1, -sigma*length),
			b: complex(0, -kappa*length),
			c: complex(0, kappa*length),
			d: complex(1, sigma*length),
		}
	}

	gz := gamma * complex(length, 0)
	cosh := cmplx.Cosh(gz)
	sinhOverGamma := cmplx.Sinh(gz) / gamma

	return matrix2{
		a: cosh - 1i*complex(sigma, 0)*sinhOverGamma,
		b: -1i * complex(kappa, 0) * sinhOverGamma,
		c: 1i * complex(kappa, 0) * sinhOverGamma,
		d: cosh + 1i*complex(sigma, 0)*sinhOverGamma,
	}
}

// propagationMatrix is the free-fiber phase advance over distance d (mm)
// between gratings. Pure phase: it contributes no reflectance.
func propagationMatrix(wl, neff, d float64) matrix2 {
	if d <= 0 {
		return identity2
	}
	beta := 2 * math.Pi * neff / wl
	phase := beta * d * mmPerNm
	return matrix2{
		a: cmplx.Exp(complex(0, -phase)),
		d: cmplx.Exp(complex(0, phase)),
	}
}
