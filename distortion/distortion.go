// Package distortion relates positions on a flat icosahedron face to
// angles seen from the center of the sphere.
//
// Points spaced evenly along a face edge are not spaced evenly once they
// are projected out to the sphere: they bunch up toward the edge's
// middle. The functions here measure that bowing so the conversion
// methods can place points on the face plane where their projections
// come out evenly spaced.
package distortion

import "math"

var (
	// Alpha is the angle at the sphere's center between two neighboring
	// starting points.
	Alpha = math.Atan(2)
	// H is the distance from the sphere's center to the middle of a face
	// edge.
	H = math.Cos(Alpha / 2)
	// W is the length of a face edge.
	W = 2 * math.Sin(Alpha/2)
	// B is the distance from a face vertex to the middle of the opposite
	// edge.
	B = math.Sqrt(3) / 2 * W
	// G is the distance from the sphere's center to a face centroid.
	G = math.Sqrt(1 - (B*B-H*H+1)*(B*B-H*H+1)/(4*B*B))
	// Gamma is the angle at the sphere's center between a face centroid
	// and one of the face's vertices.
	Gamma = math.Acos(G)
)

// X returns the distance along a face edge, from the edge's middle, of
// the projection of the point at angle theta from the edge's first
// vertex.
func X(theta float64) float64 {
	return H * math.Tan(Alpha/2-theta)
}

// ThetaFromX inverts X.
func ThetaFromX(x float64) float64 {
	return Alpha/2 - math.Atan2(x, H)
}

// LP returns the distance along a face edge, from its first vertex, of the
// projection of the point at angle theta from that vertex.
func LP(theta float64) float64 {
	return W/2 - X(theta)
}

// ThetaFromLP inverts LP.
func ThetaFromLP(lp float64) float64 {
	return ThetaFromX(W/2 - lp)
}

// LPProportion maps a fraction a of the angle along an edge to the
// fraction of the edge's length where that angle's ray meets it. It fixes
// 0, 1/2 and 1.
func LPProportion(a float64) float64 {
	return LP(a*Alpha) / W
}

// ThetaProportion inverts LPProportion.
func ThetaProportion(a float64) float64 {
	return ThetaFromLP(a*W) / Alpha
}
