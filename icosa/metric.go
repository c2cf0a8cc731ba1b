package icosa

import (
	"math"
)

// MaxIteration is the deepest iteration the metrics report. Past it the
// spacing of lattice points drops below float64 resolution on the sphere.
const MaxIteration = 52

// Metric is a measure of lattice cells that shrinks by a fixed factor with
// every iteration: by 2 for lengths, by 4 for areas.
type Metric struct {
	Deriv float64
	dim   int
}

type LengthMetric struct {
	Metric
}

type AreaMetric struct {
	Metric
}

func NewLengthMetric(deriv float64) LengthMetric { return LengthMetric{Metric{deriv, 1}} }
func NewAreaMetric(deriv float64) AreaMetric     { return AreaMetric{Metric{deriv, 2}} }

// Value returns the measure at the given iteration on the unit sphere.
func (m Metric) Value(iteration int) float64 {
	return math.Ldexp(m.Deriv, -m.dim*iteration)
}

// MinIteration returns the first iteration at which the measure is at most
// value, or MaxIteration if there is none.
func (m Metric) MinIteration(value float64) int {
	if value <= 0 {
		return MaxIteration
	}
	// Frexp gives a fraction in [0.5, 1); rounding the exponent up is the
	// same as taking the ceiling of log2(Deriv/value).
	_, it := math.Frexp(value / m.Deriv)
	return max(0, min(MaxIteration, -((it-1)>>uint(m.dim-1))))
}

var (
	// EdgeChord is the straight-line length of a lattice edge, measured on
	// the faces before projection. At iteration 0 it is the edge of the
	// icosahedron inscribed in the unit sphere, 4/sqrt(10+2√5) or 1.051.
	EdgeChord = NewLengthMetric(4 / math.Sqrt(10+2*math.Sqrt(5)))

	// EdgeSpan is the nominal angular length of a lattice edge in radians,
	// atan(2) or 1.107 at iteration 0.
	EdgeSpan = NewLengthMetric(math.Atan(2))

	// AvgArea is the mean spherical area of a lattice triangle, 4π/20 or
	// 0.628 at iteration 0.
	AvgArea = NewAreaMetric(4 * math.Pi / 20)
)

// IterationsForEdgeLength returns how many iterations are needed before the
// lattice edges on a sphere of the given radius are no longer than length.
func IterationsForEdgeLength(length, radius float64) int {
	return EdgeChord.MinIteration(length / radius)
}
