package icosa

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Direction is one of the six lattice directions around a point, as drawn
// on a peel: L, DL and D are the child directions and R, UR and U are
// their opposites.
type Direction int

const (
	L  Direction = 1
	DL Direction = 2
	D  Direction = 3
	R  Direction = -1
	UR Direction = -2
	U  Direction = -3
)

// Directions lists the six directions in counterclockwise order as they
// appear around a point in the interior of a peel.
var Directions = [6]Direction{L, DL, D, R, UR, U}

// ChildDirections are the directions a point code digit can encode.
var ChildDirections = [3]Direction{L, DL, D}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d != 0 && d >= -3 && d <= 3
}

func (d Direction) Opposite() Direction { return -d }

// Vector returns the displacement of one step in direction d, in units of
// the peel's l and d axes.
func (d Direction) Vector() (dl, dd int) {
	switch d {
	case L:
		return 1, 0
	case DL:
		return 1, 1
	case D:
		return 0, 1
	case R:
		return -1, 0
	case UR:
		return -1, -1
	case U:
		return 0, -1
	}
	panic(fmt.Sprintf("invalid direction %d", int(d)))
}

func (d Direction) index() int {
	for i, x := range Directions {
		if x == d {
			return i
		}
	}
	panic(fmt.Sprintf("invalid direction %d", int(d)))
}

// Rotate returns the direction n sixths of a turn counterclockwise from d.
func (d Direction) Rotate(n int) Direction {
	i := ((d.index()+n)%6 + 6) % 6
	return Directions[i]
}

func (d Direction) String() string {
	switch d {
	case L:
		return "L"
	case DL:
		return "DL"
	case D:
		return "D"
	case R:
		return "R"
	case UR:
		return "UR"
	case U:
		return "U"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection reads a direction name such as "DL". Names are case
// insensitive.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, errors.Newf("unknown direction %q", s)
}
