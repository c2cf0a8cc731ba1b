package icosa

import (
	"github.com/golang/geo/s2"
)

// Edge is one of the thirty edges of the icosahedron, named from the ring
// starting point whose peel owns it and the child direction it leaves in.
type Edge struct {
	From byte
	Dir  Direction
	To   byte
}

var edges = buildEdges()

func buildEdges() []Edge {
	var edges []Edge
	for _, s := range []byte("CDEFGHIJKL") {
		for i, to := range directional[s] {
			edges = append(edges, Edge{From: s, Dir: ChildDirections[i], To: to})
		}
	}
	return edges
}

// Edges returns all thirty edges.
func Edges() []Edge {
	return append([]Edge(nil), edges...)
}

// EdgeBetween returns the edge joining a and b in either order.
func EdgeBetween(a, b byte) (Edge, bool) {
	for _, e := range edges {
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			return e, true
		}
	}
	return Edge{}, false
}

func (e Edge) String() string { return string([]byte{e.From, e.To}) }

// Midpoint returns the point of the edge's great circle arc halfway between
// its ends.
func (e Edge) Midpoint() s2.Point {
	a := MustStarting(e.From).Point.Vector
	b := MustStarting(e.To).Point.Vector
	return s2.Point{Vector: a.Add(b).Normalize()}
}

// Faces returns the two faces on either side of e.
func (e Edge) Faces() []Face {
	return FacesContaining(e.From, e.To)
}
