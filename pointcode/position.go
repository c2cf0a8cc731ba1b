package pointcode

import (
	"fmt"
	"math/big"

	"github.com/Kuhron/icosalattice/icosa"
	"github.com/cockroachdb/errors"
)

// maxSeamCrossings bounds how many peels a position may be carried through
// before it must settle. A single step crosses at most two.
const maxSeamCrossings = 8

// Position is a lattice point in the integer frame of a peel: the point is
// L/2ⁿ of the way along the peel's L edge and D/2ⁿ along its D edge, where n
// is Iteration. Positions decoded from codes lie in the half-open square
// [0, 2ⁿ)²; positions built by arithmetic may fall outside it and are
// carried into the peel that owns them by Code.
type Position struct {
	Start     byte
	L, D      *big.Int
	Iteration int
}

// PositionOf decodes code at the iteration it is written at.
func PositionOf(code Code) (Position, error) {
	if err := Validate(code); err != nil {
		return Position{}, err
	}
	p := Position{Start: code[0], L: new(big.Int), D: new(big.Int), Iteration: code.Iteration()}
	for i := 1; i < len(code); i++ {
		lb, db := digitBits(code[i])
		p.L.Lsh(p.L, 1)
		p.D.Lsh(p.D, 1)
		if lb == 1 {
			p.L.SetBit(p.L, 0, 1)
		}
		if db == 1 {
			p.D.SetBit(p.D, 0, 1)
		}
	}
	return p, nil
}

func (p Position) String() string {
	return fmt.Sprintf("%c(%s, %s)/2^%d", p.Start, p.L, p.D, p.Iteration)
}

// Code carries p into its owning peel and returns its stripped code.
func (p Position) Code() (Code, error) {
	q, _, err := p.normalize()
	if err != nil {
		return "", err
	}
	return q.encode(), nil
}

func (p Position) encode() Code {
	if icosa.IsPole(p.Start) {
		return Code(p.Start)
	}
	b := make([]byte, 1, p.Iteration+1)
	b[0] = p.Start
	for i := p.Iteration - 1; i >= 0; i-- {
		b = append(b, digitOf(p.L.Bit(i), p.D.Bit(i)))
	}
	return Code(b).Strip()
}

func (p Position) atOrigin() bool {
	return p.L.Sign() == 0 && p.D.Sign() == 0
}

// normalize carries p across peel seams until it lies in the half-open
// square of some peel, or on a pole. It also returns the number of sixth
// turns counterclockwise that direction labels rotate by on the way: seams
// between the two rings of one hemisphere are crossed by a rotation of the
// frame, all others by a translation.
func (p Position) normalize() (Position, int, error) {
	n := new(big.Int).Lsh(big.NewInt(1), uint(p.Iteration))
	start := p.Start
	l, d := new(big.Int).Set(p.L), new(big.Int).Set(p.D)
	if icosa.IsPole(start) {
		if l.Sign() != 0 || d.Sign() != 0 {
			return Position{}, 0, errors.AssertionFailedf("position %v is off a pole", p)
		}
		return Position{Start: start, L: l, D: d, Iteration: p.Iteration}, 0, nil
	}

	shift := 0
	for i := 0; i < maxSeamCrossings; i++ {
		k := icosa.RingIndex(start)
		if icosa.IsNorth(start) {
			switch {
			case l.Cmp(n) == 0 && d.Sign() == 0:
				return Position{Start: 'A', L: new(big.Int), D: new(big.Int), Iteration: p.Iteration}, shift, nil
			case l.Sign() < 0:
				start = icosa.SouthRing(k)
				l.Add(l, n)
			case d.Sign() < 0:
				start = icosa.NorthRing(k + 1)
				l, d = new(big.Int).Add(d, n), new(big.Int).Add(new(big.Int).Sub(d, l), n)
				shift--
			case d.Cmp(n) >= 0:
				start = icosa.SouthRing(k - 1)
				d.Sub(d, n)
			case l.Cmp(n) >= 0:
				start = icosa.NorthRing(k - 1)
				l, d = new(big.Int).Sub(l, d), new(big.Int).Sub(l, n)
				shift++
			default:
				return Position{Start: start, L: l, D: d, Iteration: p.Iteration}, shift, nil
			}
		} else {
			switch {
			case l.Sign() == 0 && d.Cmp(n) == 0:
				return Position{Start: 'B', L: new(big.Int), D: new(big.Int), Iteration: p.Iteration}, shift, nil
			case l.Sign() < 0 && d.Sign() < 0:
				start = icosa.SouthRing(k + 1)
				l.Add(l, n)
				d.Add(d, n)
			case l.Sign() < 0:
				start = icosa.SouthRing(k + 1)
				l, d = new(big.Int).Add(new(big.Int).Sub(l, d), n), new(big.Int).Add(l, n)
				shift++
			case d.Sign() < 0:
				start = icosa.NorthRing(k + 1)
				d.Add(d, n)
			case l.Cmp(n) >= 0:
				start = icosa.NorthRing(k)
				l.Sub(l, n)
			case d.Cmp(n) >= 0:
				start = icosa.SouthRing(k - 1)
				l, d = new(big.Int).Sub(d, n), new(big.Int).Sub(d, l)
				shift--
			default:
				return Position{Start: start, L: l, D: d, Iteration: p.Iteration}, shift, nil
			}
		}
	}
	return Position{}, 0, errors.AssertionFailedf("position %v did not settle after %d seam crossings", p, maxSeamCrossings)
}

// AddDirection returns the neighbor one step from code in direction dir, at
// the iteration code is written at. The result is stripped.
//
// Stepping back along dir.Opposite() returns to code everywhere except
// across the seams around the poles, where direction labels turn by a
// sixth. Use the back direction from Step to return there.
func AddDirection(code Code, dir Direction) (Code, error) {
	q, _, err := Step(code, dir)
	return q, err
}

// Step is like AddDirection but also returns the direction leading from
// the neighbor back to code. It is dir.Opposite() except across the seams
// around the poles, where the lattice turns by a sixth. Back is zero when
// the neighbor is a pole.
func Step(code Code, dir Direction) (neighbor Code, back Direction, err error) {
	if !dir.Valid() {
		return "", 0, errors.Newf("invalid direction %d", int(dir))
	}
	p, err := PositionOf(code)
	if err != nil {
		return "", 0, err
	}
	if icosa.IsPole(p.Start) {
		return "", 0, errors.Wrapf(ErrDegenerateNeighbor, "%s %v", code, dir)
	}
	// Five faces meet at a starting point, so one direction is missing:
	// U at the northern ring and R at the southern ring.
	if p.atOrigin() {
		missing := R
		if icosa.IsNorth(p.Start) {
			missing = U
		}
		if dir == missing {
			return "", 0, errors.Wrapf(ErrDegenerateNeighbor, "%s %v", code, dir)
		}
	}

	dl, dd := dir.Vector()
	q := Position{
		Start:     p.Start,
		L:         p.L.Add(p.L, big.NewInt(int64(dl))),
		D:         p.D.Add(p.D, big.NewInt(int64(dd))),
		Iteration: p.Iteration,
	}
	q, shift, err := q.normalize()
	if err != nil {
		return "", 0, err
	}
	if icosa.IsPole(q.Start) {
		return q.encode(), 0, nil
	}
	return q.encode(), dir.Rotate(shift).Opposite(), nil
}
