// Package conversion converts between point codes and points on the unit
// sphere. Several methods are available that place the lattice slightly
// differently; each is a Converter.
package conversion

import (
	"fmt"
	"math"
	"strings"

	"github.com/Kuhron/icosalattice/pointcode"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s2"
)

var (
	// ErrUnknownMethod is returned for a method name that is not one of
	// the known methods.
	ErrUnknownMethod = errors.New("unknown conversion method")
	// ErrNotOnSphere is returned for an input point that is not a unit
	// vector.
	ErrNotOnSphere = errors.New("point is not on the unit sphere")
)

// unitTolerance is how far from 1 the norm of an input point may be.
const unitTolerance = 1e-6

// Method selects how lattice points are placed on the sphere.
type Method int

const (
	// Ancestry places every point at the normalized midpoint of its two
	// parents.
	Ancestry Method = iota
	// UncorrectedPlaneGridding spaces points evenly on the face planes and
	// projects them out to the sphere.
	UncorrectedPlaneGridding
	// CorrectedPlaneGridding spaces points along each face direction so
	// that their projections are evenly spaced in angle.
	CorrectedPlaneGridding
	// RThetaAdjustment warps points in polar coordinates about each face's
	// centroid.
	RThetaAdjustment
)

var methodNames = []string{
	Ancestry:                 "ancestry",
	UncorrectedPlaneGridding: "uncorrected-plane-gridding",
	CorrectedPlaneGridding:   "corrected-plane-gridding",
	RThetaAdjustment:         "r-theta-adjustment",
}

// Methods returns every method.
func Methods() []Method {
	return []Method{Ancestry, UncorrectedPlaneGridding, CorrectedPlaneGridding, RThetaAdjustment}
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod looks up a method by name. Underscores and hyphens are
// interchangeable and case is ignored.
func ParseMethod(name string) (Method, error) {
	norm := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	for i, n := range methodNames {
		if n == norm {
			return Method(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownMethod, "%q", name)
}

// Converter converts between point codes and points on the unit sphere.
type Converter interface {
	Method() Method
	// PointCodeToXYZ returns the point on the sphere of code.
	PointCodeToXYZ(code pointcode.Code) (s2.Point, error)
	// XYZToPointCode returns the code of the lattice point nearest to p,
	// using at most maxIterations digits.
	XYZToPointCode(p s2.Point, maxIterations int) (pointcode.Code, error)
}

// Converter returns a new converter for m. Each ancestry converter owns
// its own cache.
func (m Method) Converter() (Converter, error) {
	switch m {
	case Ancestry:
		return newAncestry(), nil
	case UncorrectedPlaneGridding:
		return planeGridding{method: m}, nil
	case CorrectedPlaneGridding:
		return planeGridding{method: m, adjust: correctGridding, unadjust: uncorrectGridding}, nil
	case RThetaAdjustment:
		return planeGridding{method: m, adjust: adjustRTheta, unadjust: unadjustRTheta}, nil
	}
	return nil, errors.Wrapf(ErrUnknownMethod, "%d", int(m))
}

// NewConverter returns a converter for the named method.
func NewConverter(name string) (Converter, error) {
	m, err := ParseMethod(name)
	if err != nil {
		return nil, err
	}
	return m.Converter()
}

// checkUnit normalizes p, which must already be a unit vector to within
// unitTolerance.
func checkUnit(p s2.Point) (s2.Point, error) {
	n := p.Norm()
	if math.IsNaN(n) || math.Abs(n-1) > unitTolerance {
		return s2.Point{}, errors.Wrapf(ErrNotOnSphere, "%v has norm %v", p, n)
	}
	return s2.Point{Vector: p.Normalize()}, nil
}

func checkIterations(maxIterations int) error {
	if maxIterations < 0 {
		return errors.Newf("negative iteration limit %d", maxIterations)
	}
	return nil
}
