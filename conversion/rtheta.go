package conversion

import (
	"math"

	"github.com/Kuhron/icosalattice/distortion"
	"github.com/Kuhron/icosalattice/scalar"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// The r/θ adjustment works on the up face laid flat with its centroid at
// the origin: C at the lower right, A at the top and K at the lower left.
// The down face is handled by reflecting it onto the up face across their
// shared edge, which swaps l and d.
var (
	// Positions of the peel's origin C and its unit l and d steps.
	xC, yC float64
	stepL  [2]float64
	stepD  [2]float64
	toLD   *mat.Dense
)

var (
	rhoMin = distortion.B / 3
	rhoMax = 2 * distortion.B / 3
	jMax   = distortion.W / 2
	wedge  = math.Pi / 3
	phi    = (1 + math.Sqrt(5)) / 2
)

func init() {
	h := math.Sqrt(3) / 2 * distortion.W
	xA, yA := 0.0, 2.0/3*h
	xC, yC = distortion.W/2, -1.0/3*h
	xL, yL := 0.0, -4.0/3*h
	stepL = [2]float64{xA - xC, yA - yC}
	stepD = [2]float64{xL - xC, yL - yC}

	m := mat.NewDense(2, 2, []float64{
		stepL[0], stepD[0],
		stepL[1], stepD[1],
	})
	toLD = new(mat.Dense)
	if err := toLD.Inverse(m); err != nil {
		panic(errors.AssertionFailedf("r/θ basis is singular: %v", err))
	}
}

// lq stretches a fraction of the half edge so that points along the edge
// are evenly spaced in angle. It fixes 0 and 1.
func lq(x float64) float64 {
	return phi * math.Tan(x*distortion.Alpha/2)
}

func lqInverse(y float64) float64 {
	return 2 / distortion.Alpha * math.Atan(y/phi)
}

// thetaWarp maps an angle in the first wedge, measured at the centroid
// from the middle of the CA edge, to its adjusted angle.
func thetaWarp(theta float64) float64 {
	j := rhoMin * math.Tan(theta)
	return math.Atan(jMax * lq(j/jMax) / rhoMin)
}

func thetaUnwarp(theta float64) float64 {
	j := rhoMin * math.Tan(theta)
	return math.Atan(jMax * lqInverse(j/jMax) / rhoMin)
}

// rhoWarp maps a distance from the centroid on the face plane to the
// distance at which the same fraction of Gamma is seen from the sphere's
// center.
func rhoWarp(rho float64) float64 {
	return distortion.G * math.Tan(distortion.Gamma*rho/rhoMax)
}

func rhoUnwarp(r float64) float64 {
	return rhoMax / distortion.Gamma * math.Atan(r/distortion.G)
}

// rhoEdge is the distance from the centroid to the face's edge at angle
// theta from the middle of the edge.
func rhoEdge(theta float64) float64 {
	return rhoMin / math.Cos(theta)
}

func adjustRTheta(l, d float64) (float64, float64, error) {
	return reflected(l, d, func(rho, theta float64) (float64, float64) {
		theta2 := thetaWarp(theta)
		return rhoWarp(rho) * rhoEdge(theta2) / rhoWarp(rhoEdge(theta)), theta2
	})
}

func unadjustRTheta(l, d float64) (float64, float64, error) {
	return reflected(l, d, func(rho, theta float64) (float64, float64) {
		theta0 := thetaUnwarp(theta)
		return rhoUnwarp(rho * rhoWarp(rhoEdge(theta0)) / rhoEdge(theta)), theta0
	})
}

// reflected applies f in polar coordinates about the up face's centroid.
// The angle passed to f is folded into the first wedge, [0, π/3], and
// unfolded again afterward.
func reflected(l, d float64, f func(rho, theta float64) (float64, float64)) (float64, float64, error) {
	flip := d > l
	if flip {
		l, d = d, l
	}
	x := xC + l*stepL[0] + d*stepD[0]
	y := yC + l*stepL[1] + d*stepD[1]
	rho := math.Hypot(x, y)
	fromAC := math.Atan2(y, x) - math.Pi/6
	theta := scalar.Zigzag(scalar.Mod(fromAC, 2*math.Pi), wedge)

	rho2, theta2 := f(rho, theta)
	if rho2 < -scalar.Epsilon || rho2 > rhoMax+scalar.Epsilon {
		return 0, 0, errors.AssertionFailedf("(%v, %v): radius %v is off the face", l, d, rho2)
	}
	angle := scalar.ZigzagInverse(theta2, wedge, int(math.Floor(fromAC/wedge))) + math.Pi/6

	v := mat.NewVecDense(2, []float64{rho2*math.Cos(angle) - xC, rho2*math.Sin(angle) - yC})
	var ld mat.VecDense
	ld.MulVec(toLD, v)
	l2, d2 := scalar.Snap(ld.AtVec(0)), scalar.Snap(ld.AtVec(1))
	if flip {
		l2, d2 = d2, l2
	}
	return l2, d2, nil
}
