package distortion

import (
	"fmt"
	"math"

	"github.com/Kuhron/icosalattice/scalar"
	"github.com/cockroachdb/errors"
)

// Orientation tells which face of a peel a triangle coordinate is on.
type Orientation int

const (
	Up Orientation = iota
	Down
)

func (o Orientation) String() string {
	if o == Up {
		return "up"
	}
	return "down"
}

// Locus tells where on its face a triangle coordinate lies.
type Locus int

const (
	Interior Locus = iota
	// OnEdge is the diagonal shared by the peel's two faces.
	OnEdge
	// The vertex loci are named for the coordinate that vanishes there. On
	// an up face these are the peel's L corner, its origin and its DL
	// corner; on a down face they are the D corner, the DL corner and the
	// origin.
	OnVertexA
	OnVertexC
	OnVertexK
)

func (l Locus) String() string {
	switch l {
	case Interior:
		return "interior"
	case OnEdge:
		return "edge"
	case OnVertexA:
		return "vertex a"
	case OnVertexC:
		return "vertex c"
	case OnVertexK:
		return "vertex k"
	}
	return fmt.Sprintf("Locus(%d)", int(l))
}

// Triangle is a peel coordinate written as distances along the three edges
// of its face. Each of A, C and K is the distance from a vertex to the line
// through the point parallel to the opposite edge, in units of the edge
// length, so |A|+|C|+|K| = 2. The values are negative on down faces.
type Triangle struct {
	A, C, K     float64
	Orientation Orientation
	Locus       Locus
}

func (t Triangle) String() string {
	return fmt.Sprintf("%v %v (%v, %v, %v)", t.Orientation, t.Locus, t.A, t.C, t.K)
}

// TriangleFromLD converts a peel coordinate (l, d) in [0, 1]² to triangle
// coordinates. Points on the shared diagonal use their up face values.
func TriangleFromLD(l, d float64) Triangle {
	var t Triangle
	if l >= d {
		t = Triangle{C: l, K: 1 - d, Orientation: Up}
		t.A = 2 - t.C - t.K
	} else {
		k, c := d, 1-l
		a := 2 - c - k
		t = Triangle{A: -a, C: -c, K: -k, Orientation: Down}
	}
	t.Locus = locus(l, d)
	return t
}

func locus(l, d float64) Locus {
	switch {
	case l == 0 && d == 0:
		return OnVertexC
	case l == 1 && d == 0:
		return OnVertexA
	case l == 1 && d == 1:
		return OnVertexK
	case l == 0 && d == 1:
		// The down face's a vertex.
		return OnVertexA
	case l == d:
		return OnEdge
	}
	return Interior
}

// LD converts t back to a peel coordinate.
func (t Triangle) LD() (l, d float64) {
	if t.Orientation == Up {
		return t.C, 1 - t.K
	}
	return 1 - math.Abs(t.C), math.Abs(t.K)
}

// Distort warps a peel coordinate by applying LPProportion to each of its
// three triangle coordinates. The warped values no longer sum to 2, so
// they are rescaled to do so before converting back; this keeps the
// result on the face but is only an approximation of a consistent warp.
func Distort(l, d float64) (float64, float64, error) {
	return warp(l, d, LPProportion)
}

// Undistort is Distort with the inverse warp. It inverts Distort only up
// to the approximation introduced by rescaling.
func Undistort(l, d float64) (float64, float64, error) {
	return warp(l, d, ThetaProportion)
}

func warp(l, d float64, f func(float64) float64) (float64, float64, error) {
	t := TriangleFromLD(l, d)
	a, c, k := f(math.Abs(t.A)), f(math.Abs(t.C)), f(math.Abs(t.K))
	r := 2 / (a + c + k)
	a, c, k = a*r, c*r, k*r
	if t.Orientation == Down {
		a, c, k = -a, -c, -k
	}
	l2, d2 := Triangle{A: a, C: c, K: k, Orientation: t.Orientation}.LD()
	l2, err := clampNonNegative(l2)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "l of (%v, %v)", l, d)
	}
	d2, err = clampNonNegative(d2)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "d of (%v, %v)", l, d)
	}
	return l2, d2, nil
}

func clampNonNegative(x float64) (float64, error) {
	if x >= 0 {
		return x, nil
	}
	if x > -scalar.Epsilon {
		return 0, nil
	}
	return 0, errors.Wrapf(scalar.ErrInvalidVectorDecomposition, "%v is negative", x)
}
