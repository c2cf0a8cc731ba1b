// Package scalar holds the small numeric helpers shared by the lattice
// packages: snapping away float noise, splitting a displacement along two
// basis vectors, and the zigzag fold used by the r/θ correction.
package scalar

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r3"
	gscalar "gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Epsilon is the tolerance used for all "equal up to float noise" checks on
// the unit sphere.
const Epsilon = 1e-9

// ErrInvalidVectorDecomposition is returned when a displacement cannot be
// written as a combination of the two basis vectors with both coefficients
// in [0, 1]. It usually means the point is not on the assumed face.
var ErrInvalidVectorDecomposition = errors.New("invalid vector decomposition")

// snapMargin is how close, as a fraction of Epsilon, the remainder of x
// modulo Epsilon must be to 0 or Epsilon before x is rounded.
const snapMargin = 1e-4

// Snap removes float representation noise from x. The value is first
// scaled by powers of two into [1, ∞) so that dyadic fractions keep all of
// their significant digits; if what remains below Epsilon is within a tiny
// margin of 0 or Epsilon, x is rounded to 9 decimal places, otherwise it is
// returned unchanged.
func Snap(x float64) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if x < 0 {
		return -Snap(-x)
	}
	if math.Mod(x, Epsilon) == 0 {
		return x
	}
	exp := 0
	for x < 1 {
		x *= 2
		exp++
	}
	rem := math.Mod(x, Epsilon) / Epsilon
	if rem > 1-snapMargin || rem < snapMargin {
		x = gscalar.Round(x, 9)
	}
	return math.Ldexp(x, -exp)
}

// Near reports whether x and y are within Epsilon of each other.
func Near(x, y float64) bool {
	return gscalar.EqualWithinAbs(x, y, Epsilon)
}

// Decompose solves v = a1*v1 + a2*v2. The system is solved in the least
// squares sense and the residual must vanish to within Epsilon in every
// component. Coefficients within Epsilon of the interval [0, 1] are clamped
// into it; anything further out is ErrInvalidVectorDecomposition.
func Decompose(v, v1, v2 r3.Vector) (a1, a2 float64, err error) {
	a := mat.NewDense(3, 2, []float64{
		v1.X, v2.X,
		v1.Y, v2.Y,
		v1.Z, v2.Z,
	})
	b := mat.NewVecDense(3, []float64{v.X, v.Y, v.Z})
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return 0, 0, errors.Mark(
			errors.Wrapf(err, "decomposing %v along %v and %v", v, v1, v2),
			ErrInvalidVectorDecomposition)
	}
	a1, a2 = x.AtVec(0), x.AtVec(1)

	residual := v.Sub(v1.Mul(a1).Add(v2.Mul(a2)))
	if math.Abs(residual.X) > Epsilon || math.Abs(residual.Y) > Epsilon || math.Abs(residual.Z) > Epsilon {
		return 0, 0, errors.Mark(
			errors.Newf("%v is not in the plane of %v and %v (residual %v)", v, v1, v2, residual),
			ErrInvalidVectorDecomposition)
	}

	a1, ok1 := clampUnit(a1)
	a2, ok2 := clampUnit(a2)
	if !ok1 || !ok2 {
		return 0, 0, errors.Mark(
			errors.Newf("coefficients (%v, %v) of %v along %v and %v are outside [0, 1]", a1, a2, v, v1, v2),
			ErrInvalidVectorDecomposition)
	}
	return a1, a2, nil
}

func clampUnit(x float64) (float64, bool) {
	switch {
	case x >= 0 && x <= 1:
		return x, true
	case x < 0 && x > -Epsilon:
		return 0, true
	case x > 1 && x < 1+Epsilon:
		return 1, true
	}
	return x, false
}

// Mod returns x modulo m with the sign of m, so Mod(-1, 3) == 2.
func Mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}

// Zigzag folds x ≥ 0 into [0, a] with a triangle wave: it rises on even
// periods and falls on odd ones, so every period is reflected onto the
// first.
func Zigzag(x, a float64) float64 {
	n := math.Floor(x / a)
	r := x - n*a
	if math.Mod(n, 2) != 0 {
		return a - r
	}
	return r
}

// ZigzagInverse unfolds y ∈ [0, a] back into period n. For any x,
// ZigzagInverse(Zigzag(x, a), a, floor(x/a)) == x up to rounding.
func ZigzagInverse(y, a float64, n int) float64 {
	base := float64(n) * a
	if n%2 != 0 {
		return base + a - y
	}
	return base + y
}
