package peel

import (
	"math"

	"github.com/Kuhron/icosalattice/icosa"
	"github.com/Kuhron/icosalattice/scalar"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// XYZ places a on its peel's face plane and projects it out to the unit
// sphere. Points with l > d are on the up face and points with d > l on
// the down face. Points on the diagonal are placed from both faces, which
// must agree.
func XYZ(a Adjusted) (s2.Point, error) {
	sp, ok := icosa.Starting(a.Start)
	if !ok {
		return s2.Point{}, errors.Newf("unknown starting point %q", a.Start)
	}
	if a.L == 0 && a.D == 0 {
		return sp.Point, nil
	}
	if icosa.IsPole(a.Start) {
		return s2.Point{}, errors.Newf("%v is off the pole", a)
	}
	if !(a.L >= -scalar.Epsilon && a.L <= 1+scalar.Epsilon && a.D >= -scalar.Epsilon && a.D <= 1+scalar.Epsilon) {
		return s2.Point{}, errors.Newf("%v is outside the peel", a)
	}

	up, down, _ := icosa.PeelFaces(a.Start)
	var v r3.Vector
	switch {
	case a.L > a.D:
		v = onUpFace(up, a.L, a.D)
	case a.D > a.L:
		v = onDownFace(down, a.L, a.D)
	default:
		v1, v2 := onUpFace(up, a.L, a.D), onDownFace(down, a.L, a.D)
		if v1.Sub(v2).Norm() > scalar.Epsilon {
			return s2.Point{}, errors.AssertionFailedf("%v: up face gives %v, down face gives %v", a, v1, v2)
		}
		v = v1.Add(v2).Mul(0.5)
	}
	return s2.Point{Vector: v.Normalize()}, nil
}

func onUpFace(f icosa.Face, l, d float64) r3.Vector {
	v0, v1, v2 := f.Vertices[0].Vector, f.Vertices[1].Vector, f.Vertices[2].Vector
	return v0.Add(v1.Sub(v0).Mul(l - d)).Add(v2.Sub(v0).Mul(d))
}

func onDownFace(f icosa.Face, l, d float64) r3.Vector {
	v0, v2, v3 := f.Vertices[0].Vector, f.Vertices[1].Vector, f.Vertices[2].Vector
	return v0.Add(v2.Sub(v0).Mul(l)).Add(v3.Sub(v0).Mul(d - l))
}

// FromXYZ finds the peel coordinate of a point on the unit sphere. The
// faces nearest to p decide which peel owns it: a point on one face is in
// that face's peel, a point on an edge is in the peel of the edge's
// starting point, and a vertex is at the origin of its own peel.
func FromXYZ(p s2.Point) (Adjusted, error) {
	if math.Abs(p.Norm()-1) > scalar.Epsilon {
		return Adjusted{}, errors.AssertionFailedf("%v is not a unit vector", p)
	}
	faces := icosa.NearestFaces(p)
	var a Adjusted
	switch len(faces) {
	case 1:
		l, d, err := onFace(p, faces[0])
		if err != nil {
			return Adjusted{}, err
		}
		a = Adjusted{Start: faces[0].Start, L: l, D: d}

	case 2:
		common := icosa.CommonVertices(faces)
		if len(common) != 2 {
			return Adjusted{}, errors.AssertionFailedf("faces %s and %s share %d vertices", faces[0].Name, faces[1].Name, len(common))
		}
		e, ok := icosa.EdgeBetween(common[0], common[1])
		if !ok {
			return Adjusted{}, errors.AssertionFailedf("no edge between %c and %c", common[0], common[1])
		}
		if e.Dir == icosa.DL {
			l0, d0, err := onFace(p, faces[0])
			if err != nil {
				return Adjusted{}, err
			}
			l1, d1, err := onFace(p, faces[1])
			if err != nil {
				return Adjusted{}, err
			}
			if !scalar.Near(l0, l1) || !scalar.Near(d0, d1) {
				return Adjusted{}, errors.AssertionFailedf("%v: faces %s and %s disagree: (%v, %v) vs (%v, %v)",
					p, faces[0].Name, faces[1].Name, l0, d0, l1, d1)
			}
			a = Adjusted{Start: e.From, L: (l0 + l1) / 2, D: (d0 + d1) / 2}
			break
		}
		f := faces[0]
		if f.Start != e.From {
			f = faces[1]
		}
		l, d, err := onFace(p, f)
		if err != nil {
			return Adjusted{}, err
		}
		a = Adjusted{Start: e.From, L: l, D: d}

	case 5:
		common := icosa.CommonVertices(faces)
		if len(common) != 1 {
			return Adjusted{}, errors.AssertionFailedf("%d faces share %d vertices", len(faces), len(common))
		}
		return Adjusted{Start: common[0]}, nil

	default:
		return Adjusted{}, errors.AssertionFailedf("%v is nearest to %d faces", p, len(faces))
	}

	a.L, a.D = scalar.Snap(a.L), scalar.Snap(a.D)
	return a, nil
}

// onFace projects p onto the plane of f and returns its peel coordinate
// on f's peel.
func onFace(p s2.Point, f icosa.Face) (l, d float64, err error) {
	proj, ok := f.Project(p.Vector)
	if !ok {
		return 0, 0, errors.Mark(errors.Newf("%v does not project onto face %s", p, f.Name), scalar.ErrInvalidVectorDecomposition)
	}
	v0, v1, v2 := f.Vertices[0].Vector, f.Vertices[1].Vector, f.Vertices[2].Vector
	a1, a2, err := scalar.Decompose(proj.Sub(v0), v1.Sub(v0), v2.Sub(v0))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "face %s", f.Name)
	}
	if f.Orientation == icosa.Up {
		return a1 + a2, a2, nil
	}
	return a1, a1 + a2, nil
}
