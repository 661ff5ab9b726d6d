package fiber

import "errors"

// Error kinds for eager validation. Every failure reported by the simulator
// wraps exactly one of these, so callers can classify with errors.Is while
// still receiving a descriptive message.
var (
	// ErrInvalidParameter is returned when a physical constant is malformed
	// or out of range (non-finite value, E <= 0, visibility outside [0,1]...).
	ErrInvalidParameter = errors.New("fiber: invalid parameter")

	// ErrDataRange is returned when the loaded dataset does not cover the
	// span required by the sensor array, or when the sensor count does not
	// match the positions or wavelengths count.
	ErrDataRange = errors.New("fiber: data range")

	// ErrLayoutViolation is returned when two sensors sit closer than the
	// grating length plus the center-to-center tolerance.
	ErrLayoutViolation = errors.New("fiber: layout violation")

	// ErrWavelengthRange is returned when a sensor's original wavelength
	// falls outside the simulated band.
	ErrWavelengthRange = errors.New("fiber: wavelength range")

	// ErrFileAccess is returned when the dataset path cannot be read.
	ErrFileAccess = errors.New("fiber: file access")
)
