package conversion

import (
	"github.com/Kuhron/icosalattice/distortion"
	"github.com/Kuhron/icosalattice/icosa"
	"github.com/Kuhron/icosalattice/peel"
	"github.com/Kuhron/icosalattice/pointcode"
	"github.com/Kuhron/icosalattice/scalar"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s2"
)

// planeGridding places a point by moving its raw peel coordinate with
// adjust, putting the result on the face plane, and projecting it out to
// the sphere. A nil adjust leaves the raw coordinate as it is. unadjust
// must invert adjust.
type planeGridding struct {
	method   Method
	adjust   func(l, d float64) (float64, float64, error)
	unadjust func(l, d float64) (float64, float64, error)
}

func (g planeGridding) Method() Method { return g.method }

func (g planeGridding) PointCodeToXYZ(code pointcode.Code) (s2.Point, error) {
	c, err := peel.FromCode(code)
	if err != nil {
		return s2.Point{}, err
	}
	if c.L == 0 && c.D == 0 {
		return icosa.MustStarting(c.Start).Point, nil
	}
	a := peel.Adjusted(c)
	if g.adjust != nil {
		if a.L, a.D, err = g.adjust(c.L, c.D); err != nil {
			return s2.Point{}, errors.Wrapf(err, "%s", code)
		}
	}
	return peel.XYZ(a)
}

func (g planeGridding) XYZToPointCode(p s2.Point, maxIterations int) (pointcode.Code, error) {
	if err := checkIterations(maxIterations); err != nil {
		return "", err
	}
	p, err := checkUnit(p)
	if err != nil {
		return "", err
	}
	a, err := peel.FromXYZ(p)
	if err != nil {
		return "", err
	}
	c := peel.Coordinate(a)
	if g.unadjust != nil && (a.L != 0 || a.D != 0) {
		if c.L, c.D, err = g.unadjust(a.L, a.D); err != nil {
			return "", errors.Wrapf(err, "%v", a)
		}
	}
	c.L, c.D = clampUnit(scalar.Snap(c.L)), clampUnit(scalar.Snap(c.D))
	return peel.ToCode(c, maxIterations, true)
}

// clampUnit pulls values within Epsilon outside [0, 1] back into it.
func clampUnit(x float64) float64 {
	switch {
	case x < 0 && x > -scalar.Epsilon:
		return 0
	case x > 1 && x < 1+scalar.Epsilon:
		return 1
	}
	return x
}

// correctGridding warps the two in-face components of (l, d) separately.
// On the up face these are the L and DL steps and on the down face the DL
// and D steps, since the third direction leaves the face.
func correctGridding(l, d float64) (float64, float64, error) {
	return splitFaces(l, d, distortion.LPProportion)
}

func uncorrectGridding(l, d float64) (float64, float64, error) {
	return splitFaces(l, d, distortion.ThetaProportion)
}

func splitFaces(l, d float64, f func(float64) float64) (float64, float64, error) {
	up := func() (float64, float64) {
		dl, rest := f(d), f(l-d)
		return rest + dl, dl
	}
	down := func() (float64, float64) {
		dl, rest := f(l), f(d-l)
		return dl, rest + dl
	}
	switch {
	case l > d:
		l2, d2 := up()
		return l2, d2, nil
	case d > l:
		l2, d2 := down()
		return l2, d2, nil
	}
	l0, d0 := up()
	l1, d1 := down()
	if !scalar.Near(l0, l1) || !scalar.Near(d0, d1) {
		return 0, 0, errors.AssertionFailedf("(%v, %v): up face gives (%v, %v), down face gives (%v, %v)", l, d, l0, d0, l1, d1)
	}
	return (l0 + l1) / 2, (d0 + d1) / 2, nil
}
