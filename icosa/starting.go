// Package icosa holds the fixed geometry of the icosahedron the lattice is
// built on: the twelve starting points, the twenty faces with their planes,
// the thirty edges, and a few measurements on the unit sphere.
package icosa

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Letters names the starting points in index order. A and B are the north
// and south poles; C through L alternate between the northern and southern
// rings, 36 degrees of longitude apart.
const Letters = "ABCDEFGHIJKL"

// RingLatitude is the latitude of the northern ring, atan(1/2).
var RingLatitude = s1.Angle(math.Atan(0.5))

// StartingPoint is one of the twelve vertices of the icosahedron.
type StartingPoint struct {
	Letter byte
	Index  int
	LatLng s2.LatLng
	Point  s2.Point
}

var (
	startingPoints = buildStartingPoints()

	// directional holds, for each ring letter, the starting point reached
	// in the L, DL and D directions.
	directional = map[byte][3]byte{
		'C': {'A', 'K', 'L'},
		'D': {'C', 'L', 'B'},
		'E': {'A', 'C', 'D'},
		'F': {'E', 'D', 'B'},
		'G': {'A', 'E', 'F'},
		'H': {'G', 'F', 'B'},
		'I': {'A', 'G', 'H'},
		'J': {'I', 'H', 'B'},
		'K': {'A', 'I', 'J'},
		'L': {'K', 'J', 'B'},
	}

	northRing = [5]byte{'C', 'E', 'G', 'I', 'K'}
	southRing = [5]byte{'D', 'F', 'H', 'J', 'L'}
)

func buildStartingPoints() [12]StartingPoint {
	var pts [12]StartingPoint
	pts[0] = StartingPoint{
		Letter: 'A',
		Index:  0,
		LatLng: s2.LatLngFromDegrees(90, 0),
		Point:  s2.Point{Vector: r3.Vector{X: 0, Y: 0, Z: 1}},
	}
	pts[1] = StartingPoint{
		Letter: 'B',
		Index:  1,
		LatLng: s2.LatLngFromDegrees(-90, 0),
		Point:  s2.Point{Vector: r3.Vector{X: 0, Y: 0, Z: -1}},
	}
	for i := 2; i < 12; i++ {
		lat := RingLatitude
		if i%2 == 1 {
			lat = -lat
		}
		lon := s1.Angle(float64(i-2)*36) * s1.Degree
		if lon > 180*s1.Degree {
			lon -= 360 * s1.Degree
		}
		ll := s2.LatLng{Lat: lat, Lng: lon}
		pts[i] = StartingPoint{
			Letter: Letters[i],
			Index:  i,
			LatLng: ll,
			Point:  s2.PointFromLatLng(ll),
		}
	}
	return pts
}

// StartingPoints returns the twelve starting points in index order.
func StartingPoints() []StartingPoint {
	return append([]StartingPoint(nil), startingPoints[:]...)
}

// Starting returns the starting point with the given letter.
func Starting(letter byte) (StartingPoint, bool) {
	i := IndexOf(letter)
	if i < 0 {
		return StartingPoint{}, false
	}
	return startingPoints[i], true
}

// MustStarting is like Starting but panics on an unknown letter. It is
// meant for building constant tables.
func MustStarting(letter byte) StartingPoint {
	sp, ok := Starting(letter)
	if !ok {
		panic("unknown starting point " + string(letter))
	}
	return sp
}

// IndexOf returns the index of letter in Letters, or -1.
func IndexOf(letter byte) int {
	if letter < 'A' || letter > 'L' {
		return -1
	}
	return int(letter - 'A')
}

func IsStartingLetter(letter byte) bool { return IndexOf(letter) >= 0 }
func IsPole(letter byte) bool           { return letter == 'A' || letter == 'B' }

// IsNorth reports whether letter is on the northern ring.
func IsNorth(letter byte) bool {
	i := IndexOf(letter)
	return i >= 2 && i%2 == 0
}

// RingIndex returns k such that letter is the k-th point of its ring,
// counting eastward from C (north) or D (south).
func RingIndex(letter byte) int {
	return (IndexOf(letter) - 2) / 2
}

// NorthRing returns the k-th point of the northern ring, k taken mod 5.
func NorthRing(k int) byte { return northRing[((k%5)+5)%5] }

// SouthRing returns the k-th point of the southern ring, k taken mod 5.
func SouthRing(k int) byte { return southRing[((k%5)+5)%5] }

// PoleRing returns the five neighbors of a pole in counterclockwise order
// as seen from outside the sphere.
func PoleRing(pole byte) []byte {
	switch pole {
	case 'A':
		return []byte{'C', 'E', 'G', 'I', 'K'}
	case 'B':
		return []byte{'H', 'F', 'D', 'L', 'J'}
	}
	return nil
}

// Neighbor returns the starting point one edge away from letter in the
// child direction dir (L, DL or D). Poles have no child directions.
func Neighbor(letter byte, dir Direction) (byte, bool) {
	row, ok := directional[letter]
	if !ok || dir < L || dir > D {
		return 0, false
	}
	return row[dir-1], true
}
