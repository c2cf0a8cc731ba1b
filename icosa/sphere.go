package icosa

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// ChordToArc converts a straight-line distance between two points on the
// unit sphere into the great circle angle between them.
func ChordToArc(chord float64) s1.Angle {
	return s1.Angle(2 * math.Asin(math.Min(1, chord/2)))
}

// ArcToChord is the inverse of ChordToArc.
func ArcToChord(a s1.Angle) float64 {
	return 2 * math.Sin(float64(a)/2)
}

// Distance returns the great circle distance between a and b on a sphere of
// the given radius.
func Distance(a, b s2.Point, radius float64) float64 {
	return radius * float64(a.Distance(b))
}

// TriangleAngles returns the interior angles at a, b and c of the spherical
// triangle abc, using the spherical law of cosines.
func TriangleAngles(a, b, c s2.Point) [3]s1.Angle {
	// Side lengths opposite each vertex.
	sa := float64(b.Distance(c))
	sb := float64(a.Distance(c))
	sc := float64(a.Distance(b))
	return [3]s1.Angle{
		cornerAngle(sa, sb, sc),
		cornerAngle(sb, sa, sc),
		cornerAngle(sc, sa, sb),
	}
}

// cornerAngle returns the angle opposite side x in a spherical triangle with
// sides x, y and z.
func cornerAngle(x, y, z float64) s1.Angle {
	cos := (math.Cos(x) - math.Cos(y)*math.Cos(z)) / (math.Sin(y) * math.Sin(z))
	return s1.Angle(math.Acos(math.Max(-1, math.Min(1, cos))))
}

// TriangleArea returns the area of the spherical triangle abc on a sphere of
// the given radius, from its spherical excess.
func TriangleArea(a, b, c s2.Point, radius float64) float64 {
	angles := TriangleAngles(a, b, c)
	excess := float64(angles[0]+angles[1]+angles[2]) - math.Pi
	return excess * radius * radius
}
