package pointcode

import (
	"math"
	"math/big"

	"github.com/Kuhron/icosalattice/exactfloat"
	"github.com/Kuhron/icosalattice/icosa"
	"github.com/cockroachdb/errors"
)

// maxFloatDigits bounds the tail digits EncodeExact writes and DecodeExact
// reads.
const maxFloatDigits = 128

// Base-4 value of each digit, and back. The value is 2·l + d of the
// digit's bits.
var (
	digitValue = [4]int64{0, 2, 3, 1}
	valueDigit = [4]byte{'0', '3', '1', '2'}
)

// EncodeExact maps a code to a number whose integer part is the index of
// its starting point and whose base-4 fraction holds the tail.
func EncodeExact(code Code) (exactfloat.ExactFloat, error) {
	if err := Validate(code); err != nil {
		return exactfloat.ExactFloat{}, err
	}
	s := code.Strip()
	if len(s)-1 > maxFloatDigits {
		return exactfloat.ExactFloat{}, errors.Wrapf(ErrInvalidFloatEncoding, "%s has more than %d digits", code, maxFloatDigits)
	}
	m := big.NewInt(int64(icosa.IndexOf(s.Start())))
	for i := 1; i < len(s); i++ {
		m.Lsh(m, 2)
		m.Add(m, big.NewInt(digitValue[s[i]-'0']))
	}
	return exactfloat.FromBigInt(m).Ldexp(-2 * (len(s) - 1)), nil
}

// DecodeExact inverts EncodeExact. The result is stripped.
func DecodeExact(x exactfloat.ExactFloat) (Code, error) {
	if x.Sgn() < 0 {
		return "", errors.Wrapf(ErrInvalidFloatEncoding, "%v is negative", x)
	}
	whole := x.Floor()
	n, _ := whole.Int()
	if !n.IsInt64() || n.Int64() >= int64(len(icosa.Letters)) {
		return "", errors.Wrapf(ErrInvalidFloatEncoding, "%v has no starting point", x)
	}
	b := []byte{icosa.Letters[n.Int64()]}
	rem := x.Sub(whole)
	for i := 0; rem.Sgn() != 0; i++ {
		if i == maxFloatDigits {
			return "", errors.Wrapf(ErrInvalidFloatEncoding, "%v needs more than %d digits", x, maxFloatDigits)
		}
		rem = rem.Ldexp(2)
		v := rem.Floor()
		k, _ := v.Int()
		b = append(b, valueDigit[k.Int64()])
		rem = rem.Sub(v)
	}
	c := Code(b)
	if err := Validate(c); err != nil {
		return "", errors.Mark(err, ErrInvalidFloatEncoding)
	}
	return c.Strip(), nil
}

// EncodeFloat is EncodeExact rounded to a float64. Codes too long to fit
// in a float64 exactly are rejected.
func EncodeFloat(code Code) (float64, error) {
	x, err := EncodeExact(code)
	if err != nil {
		return 0, err
	}
	f := x.ToDouble()
	if !exactfloat.NewExactFloat(f).Eq(x) {
		return 0, errors.Wrapf(ErrInvalidFloatEncoding, "%s does not fit in a float64", code)
	}
	return f, nil
}

// DecodeFloat inverts EncodeFloat.
func DecodeFloat(x float64) (Code, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "", errors.Wrapf(ErrInvalidFloatEncoding, "%v", x)
	}
	return DecodeExact(exactfloat.NewExactFloat(x))
}
