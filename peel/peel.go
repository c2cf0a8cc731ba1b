// Package peel converts between point codes and peel coordinates, and
// places peel coordinates on the faces of the icosahedron.
//
// The peel of a ring starting point is the parallelogram formed by its up
// and down faces, sheared into a unit square with the starting point at
// (0, 0). The l axis runs along the edge in the L direction and the d axis
// along the edge in the D direction. Each peel owns the half-open square
// [0, 1)²; its far edges belong to the neighboring peels.
package peel

import (
	"fmt"
	"math/big"

	"github.com/Kuhron/icosalattice/icosa"
	"github.com/Kuhron/icosalattice/pointcode"
	"github.com/cockroachdb/errors"
)

// ErrPrecisionExceeded is returned by ToCode when a coordinate is not on
// the lattice of the requested iteration and rounding was not allowed.
var ErrPrecisionExceeded = errors.New("peel coordinate needs more iterations than allowed")

// Coordinate is the raw peel coordinate of a point: the binary fractions
// spelled out by its code's digits.
type Coordinate struct {
	Start byte
	L, D  float64
}

// Adjusted is a peel coordinate after distortion correction. It is the
// coordinate that is placed on the face plane.
type Adjusted Coordinate

func (c Coordinate) String() string {
	return fmt.Sprintf("%c(%v, %v)", c.Start, c.L, c.D)
}

func (a Adjusted) String() string {
	return "adjusted " + Coordinate(a).String()
}

// FromCode decodes code into its raw peel coordinate. Digit i, counting
// from 1, contributes 2⁻ⁱ to l, to d, to both or to neither.
func FromCode(code pointcode.Code) (Coordinate, error) {
	p, err := pointcode.PositionOf(code)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{
		Start: p.Start,
		L:     ratio(p.L, p.Iteration),
		D:     ratio(p.D, p.Iteration),
	}, nil
}

func ratio(n *big.Int, iteration int) float64 {
	f, _ := new(big.Float).SetMantExp(new(big.Float).SetInt(n), -iteration).Float64()
	return f
}

// ToCode encodes c as a code of at most maxIterations digits. When c is
// not on that iteration's lattice, round picks the nearest lattice point
// with ties to even; otherwise ErrPrecisionExceeded is returned. A
// coordinate of 1, or one that rounds up to 1, is carried into the
// neighboring peel.
func ToCode(c Coordinate, maxIterations int, round bool) (pointcode.Code, error) {
	if !icosa.IsStartingLetter(c.Start) {
		return "", errors.Mark(errors.Newf("unknown starting point %q", c.Start), pointcode.ErrInvalidPointCode)
	}
	if maxIterations < 0 {
		return "", errors.Newf("negative iteration limit %d", maxIterations)
	}
	if !(c.L >= 0 && c.L <= 1 && c.D >= 0 && c.D <= 1) {
		return "", errors.Newf("%v is outside the peel", c)
	}
	if icosa.IsPole(c.Start) && (c.L != 0 || c.D != 0) {
		return "", errors.Newf("%v is off the pole", c)
	}

	l, err := quantize(c.L, maxIterations, round)
	if err != nil {
		return "", errors.Wrapf(err, "%v", c)
	}
	d, err := quantize(c.D, maxIterations, round)
	if err != nil {
		return "", errors.Wrapf(err, "%v", c)
	}
	return pointcode.Position{Start: c.Start, L: l, D: d, Iteration: maxIterations}.Code()
}

// quantize returns x·2ⁿ as an integer.
func quantize(x float64, n int, round bool) (*big.Int, error) {
	scaled := new(big.Float).SetMantExp(new(big.Float).SetFloat64(x), n)
	whole, acc := scaled.Int(nil)
	if acc == big.Exact {
		return whole, nil
	}
	if !round {
		return nil, errors.Wrapf(ErrPrecisionExceeded, "%v at iteration %d", x, n)
	}
	frac := new(big.Float).Sub(scaled, new(big.Float).SetInt(whole))
	switch frac.Cmp(big.NewFloat(0.5)) {
	case 1:
		whole.Add(whole, big.NewInt(1))
	case 0:
		if whole.Bit(0) == 1 {
			whole.Add(whole, big.NewInt(1))
		}
	}
	return whole, nil
}
