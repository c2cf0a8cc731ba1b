// Package pointcode implements arithmetic on point codes, the hierarchical
// addresses of lattice points. A code is a starting point letter A-L
// followed by one digit per iteration: 0 for "stay", and 1, 2, 3 for a step
// in the L, DL or D direction at that iteration's scale.
package pointcode

import (
	"math"
	"math/rand"
	"strings"

	"github.com/Kuhron/icosalattice/icosa"
	"github.com/cockroachdb/errors"
)

// Code is a point code such as "C1302". Codes with trailing zeros denote
// the same point as their stripped form.
type Code string

// Direction re-exports icosa.Direction so callers of this package rarely
// need both imports.
type Direction = icosa.Direction

const (
	L  = icosa.L
	DL = icosa.DL
	D  = icosa.D
	R  = icosa.R
	UR = icosa.UR
	U  = icosa.U
)

// Validate checks that code is a starting point letter followed by digits
// 0-3, and that a pole's tail is all zeros.
func Validate(code Code) error {
	if len(code) == 0 {
		return errors.Mark(errors.New("empty point code"), ErrInvalidPointCode)
	}
	if !icosa.IsStartingLetter(code[0]) {
		return errors.Mark(errors.Newf("%q: unknown starting point %q", string(code), code[0]), ErrInvalidPointCode)
	}
	pole := icosa.IsPole(code[0])
	for i := 1; i < len(code); i++ {
		c := code[i]
		if c < '0' || c > '3' {
			return errors.Mark(errors.Newf("%q: invalid digit %q at %d", string(code), c, i), ErrInvalidPointCode)
		}
		if pole && c != '0' {
			return errors.Mark(errors.Newf("%q: a pole cannot move", string(code)), ErrInvalidPointCode)
		}
	}
	return nil
}

// Parse validates s and returns its canonical, stripped code.
func Parse(s string) (Code, error) {
	c := Code(s)
	if err := Validate(c); err != nil {
		return "", err
	}
	return c.Strip(), nil
}

// MustParse is like Parse but panics on error. It is meant for constants
// and tests.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Code) String() string { return string(c) }

// Start returns the starting point letter.
func (c Code) Start() byte { return c[0] }

func (c Code) IsPole() bool { return icosa.IsPole(c[0]) }

// Iteration is the depth the code is written at, counting trailing zeros.
func (c Code) Iteration() int { return len(c) - 1 }

// IterationBorn is the first iteration at which the point exists.
func (c Code) IterationBorn() int { return len(c.Strip()) - 1 }

// Strip removes trailing zeros.
func (c Code) Strip() Code {
	return Code(strings.TrimRight(string(c), "0"))
}

// Pad writes c at the given iteration by appending zeros. It fails if the
// point is born after that iteration.
func Pad(c Code, iterations int) (Code, error) {
	s := c.Strip()
	if s.Iteration() > iterations {
		return "", errors.Newf("%s is born at iteration %d, after %d", c, s.Iteration(), iterations)
	}
	return s + Code(strings.Repeat("0", iterations-s.Iteration())), nil
}

// Parent returns the point that c was born from by stepping in the
// direction of its last nonzero digit.
func Parent(c Code) (Code, error) {
	if err := Validate(c); err != nil {
		return "", err
	}
	s := c.Strip()
	if len(s) == 1 {
		return "", errors.Wrapf(ErrNoParent, "%s", c)
	}
	return s[:len(s)-1].Strip(), nil
}

// ChildIndex returns the direction c was born in from its parent.
func ChildIndex(c Code) (Direction, error) {
	if err := Validate(c); err != nil {
		return 0, err
	}
	s := c.Strip()
	if len(s) == 1 {
		return 0, errors.Wrapf(ErrNoParent, "%s", c)
	}
	return Direction(s[len(s)-1] - '0'), nil
}

// DirectionalParent returns c's other parent: the point one step further
// along the direction c was born in. The point c is the midpoint of its
// parent and its directional parent.
func DirectionalParent(c Code) (Code, error) {
	dir, err := ChildIndex(c)
	if err != nil {
		return "", err
	}
	return AddDirection(c.Strip(), dir)
}

// Children returns the three points born from c at the iteration after the
// one c is written at. Poles have no children.
func Children(c Code) ([]Code, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	if c.IsPole() {
		return nil, nil
	}
	return []Code{c + "1", c + "2", c + "3"}, nil
}

// Descendants returns every point at the given iteration whose code begins
// with ancestor, stripped. Poles have only themselves.
func Descendants(ancestor Code, iterations int) ([]Code, error) {
	if err := Validate(ancestor); err != nil {
		return nil, err
	}
	if ancestor.IsPole() {
		return []Code{ancestor.Strip()}, nil
	}
	if ancestor.Iteration() > iterations {
		return nil, errors.Newf("%s is already at iteration %d, after %d", ancestor, ancestor.Iteration(), iterations)
	}
	codes := []Code{ancestor}
	for i := ancestor.Iteration(); i < iterations; i++ {
		next := make([]Code, 0, 4*len(codes))
		for _, c := range codes {
			for _, x := range "0123" {
				next = append(next, c+Code(x))
			}
		}
		codes = next
	}
	for i := range codes {
		codes[i] = codes[i].Strip()
	}
	return codes, nil
}

// All returns every lattice point at the given iteration, in starting point
// order.
func All(iterations int) []Code {
	var out []Code
	for _, sp := range icosa.StartingPoints() {
		codes, _ := Descendants(Code(sp.Letter), iterations)
		out = append(out, codes...)
	}
	return out
}

// Random returns a random point whose birth iteration is drawn uniformly
// from [minIterations, maxIterations].
func Random(rng *rand.Rand, minIterations, maxIterations int) Code {
	n := minIterations + rng.Intn(maxIterations-minIterations+1)
	if n == 0 {
		return Code(icosa.Letters[rng.Intn(12)])
	}
	b := []byte{icosa.Letters[2+rng.Intn(10)]}
	for i := 1; i < n; i++ {
		b = append(b, byte('0'+rng.Intn(4)))
	}
	b = append(b, byte('1'+rng.Intn(3)))
	return Code(b)
}

// PointCount is the number of lattice points at the given iteration,
// 2 + 10·4ⁿ. It overflows past iteration 29.
func PointCount(iterations int) int64 {
	return 2 + 10*(int64(1)<<(2*uint(iterations)))
}

// IterationsForPointCount inverts PointCount. The result is fractional
// when n is not an exact count.
func IterationsForPointCount(n int64) float64 {
	return math.Log(float64(n-2)/10) / math.Log(4)
}

// digitBits maps a digit to its (l, d) bit pair.
func digitBits(c byte) (l, d uint) {
	switch c {
	case '1':
		return 1, 0
	case '2':
		return 1, 1
	case '3':
		return 0, 1
	}
	return 0, 0
}

func digitOf(l, d uint) byte {
	switch {
	case l == 1 && d == 0:
		return '1'
	case l == 1 && d == 1:
		return '2'
	case l == 0 && d == 1:
		return '3'
	}
	return '0'
}
