package pointcode

import (
	"strings"

	"github.com/Kuhron/icosalattice/icosa"
	"github.com/cockroachdb/errors"
)

// Neighbors returns the neighbors of code in each direction that has one,
// at the iteration code is written at. Poles have no directions, so their
// map is empty; use OrderedNeighbors for them.
func Neighbors(code Code) (map[Direction]Code, error) {
	out := make(map[Direction]Code, 6)
	for _, dir := range icosa.Directions {
		q, err := AddDirection(code, dir)
		if errors.Is(err, ErrDegenerateNeighbor) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[dir] = q
	}
	return out, nil
}

// OrderedNeighbors returns the neighbors of code counterclockwise: five for
// the twelve starting points at any iteration, six for every other point.
func OrderedNeighbors(code Code) ([]Code, error) {
	if err := Validate(code); err != nil {
		return nil, err
	}
	if code.IsPole() {
		return poleNeighbors(code), nil
	}
	var out []Code
	for _, dir := range icosa.Directions {
		q, err := AddDirection(code, dir)
		if errors.Is(err, ErrDegenerateNeighbor) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	want := 6
	if len(code.Strip()) == 1 {
		want = 5
	}
	if len(out) != want {
		return nil, errors.AssertionFailedf("%s has %d neighbors, want %d: %v", code, len(out), want, out)
	}
	return out, nil
}

// poleNeighbors is the closed form around a pole: the k-th neighbor of A at
// iteration n is the ring point moved n times in the L direction, and of B
// moved n times in the D direction.
func poleNeighbors(code Code) []Code {
	digit := "1"
	if code.Start() == 'B' {
		digit = "3"
	}
	tail := Code(strings.Repeat(digit, code.Iteration()))
	var out []Code
	for _, c := range icosa.PoleRing(code.Start()) {
		out = append(out, Code(c)+tail)
	}
	return out
}

// Path walks from one point in a straight line through the lattice,
// starting in direction dir, until it reaches to. Across the seams around
// the poles the direction label turns with the lattice so the walk stays
// straight. Both ends are included. The walk is made at the larger of the
// two codes' iterations.
func Path(from, to Code, dir Direction) ([]Code, error) {
	if err := Validate(to); err != nil {
		return nil, err
	}
	n := max(from.Iteration(), to.Iteration())
	cur, err := Pad(from, n)
	if err != nil {
		return nil, err
	}
	target := to.Strip()
	path := []Code{from.Strip()}
	seen := map[Code]bool{from.Strip(): true}
	for path[len(path)-1] != target {
		next, back, err := Step(cur, dir)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "walking %v from %s toward %s", dir, from, to), ErrUnreachable)
		}
		if seen[next] {
			return nil, errors.Wrapf(ErrUnreachable, "walking %v from %s came back to %s before %s", dir, from, next, to)
		}
		seen[next] = true
		path = append(path, next)
		if back != 0 {
			dir = back.Opposite()
		}
		if cur, err = Pad(next, n); err != nil {
			return nil, err
		}
	}
	return path, nil
}
