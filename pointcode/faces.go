package pointcode

import (
	"strings"

	"github.com/Kuhron/icosalattice/icosa"
	"github.com/cockroachdb/errors"
)

// FacesOf returns the faces a point lies on: five for a starting point, two
// for a point on an icosahedron edge and one for any other point.
func FacesOf(code Code) ([]icosa.Face, error) {
	if err := Validate(code); err != nil {
		return nil, err
	}
	start := code.Start()
	tail := strings.ReplaceAll(string(code[1:]), "0", "")
	if tail == "" {
		return icosa.FacesContaining(start), nil
	}

	// A tail of one repeated digit stays on the edge leaving start in that
	// digit's direction.
	if strings.Count(tail, tail[:1]) == len(tail) {
		other, ok := icosa.Neighbor(start, Direction(tail[0]-'0'))
		if !ok {
			return nil, errors.AssertionFailedf("%s: no starting point beyond %c", code, start)
		}
		return icosa.FacesContaining(start, other), nil
	}

	up, down, ok := icosa.PeelFaces(start)
	if !ok {
		return nil, errors.AssertionFailedf("%s: no peel at %c", code, start)
	}
	switch tail[strings.IndexFunc(tail, func(r rune) bool { return r != '2' })] {
	case '1':
		return []icosa.Face{up}, nil
	default:
		return []icosa.Face{down}, nil
	}
}
