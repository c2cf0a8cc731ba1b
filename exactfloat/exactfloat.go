// Package exactfloat implements binary floating point numbers with an
// unbounded mantissa, i.e. values of the form m·2^e where m is a big integer.
// Sums, differences and products are exact; rounding only happens when a
// value is converted back to a float64 or explicitly rounded to an integer.
//
// Only finite values are represented. The zero value is 0.
package exactfloat

import (
	"math"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
)

const doubleMantissaBits = 53

type roundingMode int

const (
	roundTiesToEven roundingMode = iota
	roundTowardZero
	roundAwayFromZero
	roundTowardNegative
)

// ErrNotDyadic is returned by Parse when the decimal value has no finite
// binary expansion.
var ErrNotDyadic = errors.New("value is not a dyadic rational")

// ExactFloat is an immutable value sign·bn·2^bnExp. After canonicalize, bn
// is either zero or odd.
type ExactFloat struct {
	sign  int
	bnExp int
	bn    *big.Int
}

// NewExactFloat returns the exact value of v, which must be finite.
func NewExactFloat(v float64) ExactFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(errors.AssertionFailedf("exactfloat: %v is not finite", v))
	}
	f := ExactFloat{sign: 1, bn: new(big.Int)}
	if math.Signbit(v) {
		f.sign = -1
	}
	frac, exp := math.Frexp(math.Abs(v))
	f.bn.SetUint64(uint64(math.Ldexp(frac, doubleMantissaBits)))
	f.bnExp = exp - doubleMantissaBits
	f.canonicalize()
	return f
}

// FromBigInt returns n as an ExactFloat.
func FromBigInt(n *big.Int) ExactFloat {
	f := ExactFloat{sign: 1, bn: new(big.Int).Abs(n)}
	if n.Sign() < 0 {
		f.sign = -1
	}
	f.canonicalize()
	return f
}

// Parse reads a decimal string such as "7.75" or "-0.125". The value must
// have a finite binary expansion.
func Parse(s string) (ExactFloat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return ExactFloat{}, errors.Newf("exactfloat: cannot parse %q", s)
	}
	den := r.Denom()
	shift := den.TrailingZeroBits()
	if new(big.Int).Rsh(den, shift).Cmp(big.NewInt(1)) != 0 {
		return ExactFloat{}, errors.Wrapf(ErrNotDyadic, "%q", s)
	}
	return FromBigInt(r.Num()).Ldexp(-int(shift)), nil
}

func (f *ExactFloat) canonicalize() {
	if f.bn.Sign() == 0 {
		f.sign = 1
		f.bnExp = 0
		return
	}
	if shift := f.bn.TrailingZeroBits(); shift > 0 {
		f.bn.Rsh(f.bn, shift)
		f.bnExp += int(shift)
	}
}

// Sgn returns -1, 0 or +1 according to the sign of f.
func (f ExactFloat) Sgn() int {
	if f.bn == nil || f.bn.Sign() == 0 {
		return 0
	}
	return f.sign
}

// Prec returns the number of significant bits of f.
func (f ExactFloat) Prec() int {
	if f.bn == nil {
		return 0
	}
	return f.bn.BitLen()
}

// Int returns f as a big integer when f is an integer.
func (f ExactFloat) Int() (*big.Int, bool) {
	if f.Sgn() == 0 {
		return new(big.Int), true
	}
	if f.bnExp < 0 {
		return nil, false
	}
	n := new(big.Int).Lsh(f.bn, uint(f.bnExp))
	if f.sign < 0 {
		n.Neg(n)
	}
	return n, true
}

func (f ExactFloat) withSign(sign int) ExactFloat {
	r := f
	r.sign = sign
	return r
}

// Ldexp returns f·2^exp.
func (f ExactFloat) Ldexp(exp int) ExactFloat {
	if f.Sgn() == 0 {
		return ExactFloat{}
	}
	r := f
	r.bnExp += exp
	return r
}

func (f ExactFloat) Add(b ExactFloat) ExactFloat {
	return signedSum(f.sign, f, b.sign, b)
}

func (f ExactFloat) Sub(b ExactFloat) ExactFloat {
	return signedSum(f.sign, f, -b.sign, b)
}

func signedSum(aSign int, a ExactFloat, bSign int, b ExactFloat) ExactFloat {
	if a.Sgn() == 0 {
		if b.Sgn() == 0 {
			return ExactFloat{}
		}
		return b.withSign(bSign)
	}
	if b.Sgn() == 0 {
		return a.withSign(aSign)
	}
	// Swap the numbers if necessary so that "a" has the larger bnExp, then
	// shift it so that both share b's exponent.
	if a.bnExp < b.bnExp {
		aSign, bSign = bSign, aSign
		a, b = b, a
	}
	am := new(big.Int).Lsh(a.bn, uint(a.bnExp-b.bnExp))
	r := ExactFloat{bnExp: b.bnExp, bn: new(big.Int)}
	if aSign == bSign {
		r.bn.Add(am, b.bn)
		r.sign = aSign
	} else {
		r.bn.Sub(am, b.bn)
		if r.bn.Sign() < 0 {
			// The magnitude of "b" was larger.
			r.sign = bSign
			r.bn.Neg(r.bn)
		} else {
			r.sign = aSign
		}
	}
	r.canonicalize()
	return r
}

// Cmp returns -1, 0 or +1 as f is less than, equal to or greater than b.
func (f ExactFloat) Cmp(b ExactFloat) int {
	return f.Sub(b).Sgn()
}

func (f ExactFloat) Eq(b ExactFloat) bool { return f.Cmp(b) == 0 }

// Floor returns the largest integer not greater than f.
func (f ExactFloat) Floor() ExactFloat {
	return f.roundToPowerOf2(0, roundTowardNegative)
}

// ToDouble returns the float64 nearest to f, with ties to even.
func (f ExactFloat) ToDouble() float64 {
	if f.Prec() <= doubleMantissaBits {
		return f.toDoubleHelper()
	}
	return f.roundToMaxPrec(doubleMantissaBits, roundTiesToEven).toDoubleHelper()
}

func (f ExactFloat) toDoubleHelper() float64 {
	if f.Sgn() == 0 {
		return 0
	}
	return float64(f.sign) * math.Ldexp(float64(f.bn.Uint64()), f.bnExp)
}

func (f ExactFloat) roundToMaxPrec(maxPrec int, mode roundingMode) ExactFloat {
	shift := f.Prec() - maxPrec
	if shift <= 0 {
		return f
	}
	// If the value rounds up to a power of 2 the high bit moves up by one,
	// but canonicalize then strips at least one zero bit, so the result
	// still has at most maxPrec bits.
	return f.roundToPowerOf2(f.bnExp+shift, mode)
}

// roundToPowerOf2 rounds f to a multiple of 2^bitExp.
func (f ExactFloat) roundToPowerOf2(bitExp int, mode roundingMode) ExactFloat {
	shift := bitExp - f.bnExp
	if shift <= 0 || f.Sgn() == 0 {
		return f
	}
	if mode == roundTowardNegative {
		if f.sign > 0 {
			mode = roundTowardZero
		} else {
			mode = roundAwayFromZero
		}
	}

	// Rounding right-shifts the mantissa by "shift" and then possibly
	// increments it, depending on the mode and the discarded bits.
	lowZeros := int(f.bn.TrailingZeroBits())
	increment := false
	switch mode {
	case roundAwayFromZero:
		// Unless all discarded bits are zero.
		increment = lowZeros < shift
	case roundTiesToEven:
		// With "w/xyz" the lowest kept bit and the discarded bits:
		//   ./0.*    -> fraction < 1/2, keep
		//   0/10*    -> fraction = 1/2 and kept part even, keep
		//   1/10*    -> fraction = 1/2 and kept part odd, increment
		//   ./1.*1.* -> fraction > 1/2, increment
		increment = f.bn.Bit(shift-1) != 0 && (f.bn.Bit(shift) != 0 || lowZeros < shift-1)
	}
	r := ExactFloat{
		sign:  f.sign,
		bnExp: f.bnExp + shift,
		bn:    new(big.Int).Rsh(f.bn, uint(shift)),
	}
	if increment {
		r.bn.Add(r.bn, big.NewInt(1))
	}
	r.canonicalize()
	return r
}

// String returns the exact decimal expansion of f. Every dyadic rational
// has a finite one.
func (f ExactFloat) String() string {
	if f.Sgn() == 0 {
		return "0"
	}
	var s string
	if f.bnExp >= 0 {
		s = new(big.Int).Lsh(f.bn, uint(f.bnExp)).String()
	} else {
		// bn·2^e == bn·5^-e·10^e, so the digits of bn·5^-e with the
		// decimal point -e places from the right.
		n := -f.bnExp
		pow := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(n)), nil)
		digits := new(big.Int).Mul(f.bn, pow).String()
		if len(digits) <= n {
			digits = strings.Repeat("0", n-len(digits)+1) + digits
		}
		s = digits[:len(digits)-n] + "." + digits[len(digits)-n:]
	}
	if f.sign < 0 {
		s = "-" + s
	}
	return s
}
