// Package profile turns a measured (position, strain, stress) dataset and a
// mode selection into a continuous local-condition function along the fiber.
package profile

// StrainType selects how longitudinal strain varies along the fiber.
type StrainType int

const (
	// StrainNone applies no strain anywhere.
	StrainNone StrainType = iota
	// StrainUniform applies one scalar strain to the whole fiber, ignoring
	// the dataset.
	StrainUniform
	// StrainNonUniform interpolates strain linearly between dataset samples.
	StrainNonUniform
)

func (s StrainType) String() string {
	switch s {
	case StrainNone:
		return "none"
	case StrainUniform:
		return "uniform"
	case StrainNonUniform:
		return "non-uniform"
	}
	return "unknown"
}

// StressType selects whether transverse stress is included.
type StressType int

const (
	// StressNone applies no transverse stress.
	StressNone StressType = iota
	// StressIncluded interpolates transverse stress from the dataset.
	StressIncluded
)

func (s StressType) String() string {
	if s == StressIncluded {
		return "included"
	}
	return "none"
}

// Mode is the full perturbation selection for one run.
type Mode struct {
	Strain StrainType `json:"strain"`
	// UniformStrain is the scalar strain applied when Strain is
	// StrainUniform.
	UniformStrain float64    `json:"uniformStrain,omitempty"`
	Stress        StressType `json:"stress"`
}

// Sample is one measured row: longitudinal position x in mm, dimensionless
// strain, transverse stress in Pa.
type Sample struct {
	Position float64 `json:"position"`
	Strain   float64 `json:"strain"`
	Stress   float64 `json:"stress"`
}

// Dataset is an ordered-by-position sequence of samples.
type Dataset []Sample

// Range returns the positions covered by the dataset.
func (d Dataset) Range() (min, max float64) {
	if len(d) == 0 {
		return 0, 0
	}
	return d[0].Position, d[len(d)-1].Position
}

// Covers reports whether the interval [start, end] intersects the dataset's
// covered positions at all.
func (d Dataset) Covers(start, end float64) bool {
	if len(d) == 0 {
		return false
	}
	min, max := d.Range()
	return end >= min && start <= max
}
