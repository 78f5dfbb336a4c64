package rational

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/govalues/decimal"
)

// pow10 holds the powers of ten that fit into int64.
var pow10 = [...]int64{
	1,
	10,
	100,
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
	10_000_000_000,
	100_000_000_000,
	1_000_000_000_000,
	10_000_000_000_000,
	100_000_000_000_000,
	1_000_000_000_000_000,
	10_000_000_000_000_000,
	100_000_000_000_000_000,
	1_000_000_000_000_000_000,
}

// Float64 returns the nearest binary floating-point number to num / den.
// See also constructor [NewFromFloat64].
//
// This conversion may lose data, as float64 cannot represent most fractions
// exactly.
func (r Rational) Float64() float64 {
	return float64(r.num) / float64(r.Denom())
}

// NewFromFloat64 converts a float to the rational that is exactly equal to it.
// Every finite float64 is a fraction with a power of two in its denominator,
// so no rounding takes place.
// See also method [Rational.Float64].
//
// NewFromFloat64 returns an error if:
//   - the float is a special value (NaN or Inf);
//   - the numerator or the denominator of the result does not fit into int64.
func NewFromFloat64(f float64) (Rational, error) {
	r, err := newFromFloat64(f)
	if err != nil {
		return Rational{}, fmt.Errorf("converting float %v: %w", f, err)
	}
	return r, nil
}

func newFromFloat64(f float64) (Rational, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rational{}, fmt.Errorf("special value %v", f)
	}
	if f == 0 {
		return Rational{}, nil
	}

	// f = frac * 2^exp, where |frac| is in [0.5, 1)
	frac, exp := math.Frexp(f)
	neg := frac < 0
	if neg {
		frac = -frac
	}

	// Mantissa as an integer in [2^52, 2^53) without trailing zeros
	mant := int64(frac * (1 << 53))
	exp -= 53
	tz := bits.TrailingZeros64(uint64(mant))
	mant >>= tz
	exp += tz

	den := int64(1)
	switch {
	case exp >= 0:
		if bits.Len64(uint64(mant))+exp > 63 {
			return Rational{}, fmt.Errorf("numerator: %w", errOverflow)
		}
		mant <<= exp
	case exp <= -63:
		return Rational{}, fmt.Errorf("denominator: %w", errOverflow)
	default:
		den <<= -exp
	}
	if neg {
		mant = -mant
	}

	// An odd mantissa and a power of two are always coprime.
	return newRationalUnsafe(mant, den), nil
}

// Decimal returns the (possibly rounded) decimal representation of num / den.
// The quotient is rounded to [decimal.MaxPrec] significant digits using
// rounding half to even.
// See also constructor [NewFromDecimal].
func (r Rational) Decimal() (decimal.Decimal, error) {
	d, err := r.decimal()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to decimal: %w", r, err)
	}
	return d, nil
}

func (r Rational) decimal() (decimal.Decimal, error) {
	num, err := decimal.New(r.num, 0)
	if err != nil {
		return decimal.Decimal{}, err
	}
	den, err := decimal.New(r.Denom(), 0)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return num.Quo(den)
}

// NewFromDecimal converts a decimal to the rational that is exactly equal to it,
// that is coef / 10^scale reduced to lowest terms.
// Trailing zeros are removed before the conversion.
// See also method [Rational.Decimal].
//
// NewFromDecimal returns an error if the coefficient or 10^scale of the decimal
// do not fit into int64.
func NewFromDecimal(d decimal.Decimal) (Rational, error) {
	r, err := newFromDecimal(d)
	if err != nil {
		return Rational{}, fmt.Errorf("converting decimal %v: %w", d, err)
	}
	return r, nil
}

func newFromDecimal(d decimal.Decimal) (Rational, error) {
	d = d.Trim(0)
	coef, scale := d.Coef(), d.Scale()
	if coef > math.MaxInt64 {
		return Rational{}, fmt.Errorf("numerator: %w", errOverflow)
	}
	if scale >= len(pow10) {
		return Rational{}, fmt.Errorf("denominator: %w", errOverflow)
	}
	num := int64(coef) //nolint:gosec
	if d.IsNeg() {
		num = -num
	}
	return reduce(num, pow10[scale]), nil
}
