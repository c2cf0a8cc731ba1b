package icosa

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// Orientation tells which half of a peel a face is. On an up face the L
// corner is a real vertex; on a down face the D corner is.
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

// Face is one of the twenty triangles of the icosahedron. Every face
// belongs to the peel of a ring starting point. Its name lists the four
// corners of that peel's parallelogram, [start, L, DL, D], with X standing
// in for the corner the face does not touch.
type Face struct {
	Name        string
	Start       byte
	Orientation Orientation

	// Vertices are the three real corners in peel order: start, L, DL for
	// up faces and start, DL, D for down faces.
	Vertices [3]s2.Point
	Normal   r3.Vector
	Offset   float64
	Centroid r3.Vector
}

var faces = buildFaces()

func buildFaces() []Face {
	var faces []Face
	for _, s := range []byte("CDEFGHIJKL") {
		row := directional[s]
		faces = append(faces,
			newFace(s, Up, string([]byte{s, row[0], row[1], 'X'})),
			newFace(s, Down, string([]byte{s, 'X', row[1], row[2]})))
	}
	return faces
}

func newFace(start byte, o Orientation, name string) Face {
	f := Face{Name: name, Start: start, Orientation: o}
	n := 0
	for i := 0; i < 4; i++ {
		if name[i] == 'X' {
			continue
		}
		f.Vertices[n] = MustStarting(name[i]).Point
		n++
	}
	v0, v1, v2 := f.Vertices[0].Vector, f.Vertices[1].Vector, f.Vertices[2].Vector
	f.Normal = v1.Sub(v0).Cross(v2.Sub(v0))
	f.Offset = f.Normal.Dot(v0)
	f.Centroid = v0.Add(v1).Add(v2).Mul(1.0 / 3)
	return f
}

// Faces returns the twenty faces, up and down face of each peel in turn.
func Faces() []Face {
	return append([]Face(nil), faces...)
}

// FaceByName looks up a face such as "CAKX".
func FaceByName(name string) (Face, bool) {
	for _, f := range faces {
		if f.Name == name {
			return f, true
		}
	}
	return Face{}, false
}

// PeelFaces returns the up and down face of the peel of a ring starting
// point.
func PeelFaces(start byte) (up, down Face, ok bool) {
	for i := 0; i+1 < len(faces); i += 2 {
		if faces[i].Start == start {
			return faces[i], faces[i+1], true
		}
	}
	return Face{}, Face{}, false
}

// Corner returns the letter at corner i (0 through 3) of the face's name.
func (f Face) Corner(i int) byte { return f.Name[i] }

// Letters returns the three real vertices of the face.
func (f Face) Letters() []byte {
	var out []byte
	for i := 0; i < 4; i++ {
		if f.Name[i] != 'X' {
			out = append(out, f.Name[i])
		}
	}
	return out
}

// Contains reports whether letter is a vertex of f.
func (f Face) Contains(letter byte) bool {
	for i := 0; i < 4; i++ {
		if f.Name[i] == letter && letter != 'X' {
			return true
		}
	}
	return false
}

// Ratio returns the factor t such that t*p lies on the plane of f. It is
// negative or infinite when the ray through p never meets the plane on the
// near side.
func (f Face) Ratio(p r3.Vector) float64 {
	return f.Offset / f.Normal.Dot(p)
}

// Project moves p along its ray from the origin onto the plane of f.
func (f Face) Project(p r3.Vector) (r3.Vector, bool) {
	t := f.Ratio(p)
	if t <= 0 || math.IsInf(t, 0) || math.IsNaN(t) {
		return r3.Vector{}, false
	}
	return p.Mul(t), true
}

// FacesContaining returns every face having all of the given letters as
// vertices.
func FacesContaining(letters ...byte) []Face {
	var out []Face
outer:
	for _, f := range faces {
		for _, c := range letters {
			if !f.Contains(c) {
				continue outer
			}
		}
		out = append(out, f)
	}
	return out
}

// NearestFaces returns the faces whose centroid is closest to p. Ties within
// 1e-9 are all returned, so a point on an edge gets two faces and a starting
// point gets five.
func NearestFaces(p s2.Point) []Face {
	const tol = 1e-9
	dist := make([]float64, len(faces))
	best := math.Inf(1)
	for i, f := range faces {
		dist[i] = p.Vector.Sub(f.Centroid).Norm()
		if dist[i] < best {
			best = dist[i]
		}
	}
	var out []Face
	for i, f := range faces {
		if dist[i]-best <= tol {
			out = append(out, f)
		}
	}
	return out
}

// CommonVertices returns the letters shared by every face, sorted.
func CommonVertices(fs []Face) []byte {
	if len(fs) == 0 {
		return nil
	}
	var out []byte
	for _, c := range fs[0].Letters() {
		shared := true
		for _, f := range fs[1:] {
			if !f.Contains(c) {
				shared = false
				break
			}
		}
		if shared {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
