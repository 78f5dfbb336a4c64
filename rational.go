package rational

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrDivisionByZero is returned when a rational is constructed with a zero
	// denominator or divided by zero.
	ErrDivisionByZero = errors.New("division by zero")
	errInvalidFormat  = errors.New("invalid rational format")
	errOverflow       = errors.New("rational overflow")
)

// Rational type represents an exact signed fraction.
// Its zero value corresponds to "0/1".
// Rational is designed to be safe for concurrent use by multiple goroutines.
//
// A Rational is always kept in lowest terms with a positive denominator,
// so the sign of the fraction is carried by the numerator alone.
// Two values can therefore be compared with the == and != operators.
type Rational struct {
	num int64 // numerator, carries the sign
	den int64 // denominator minus one, never negative
}

// newRationalUnsafe creates a new rational without reducing it.
// Use it only if you are absolutely sure that num and den are coprime
// and den is positive.
func newRationalUnsafe(num, den int64) Rational {
	return Rational{num: num, den: den - 1}
}

// newRationalSafe creates a new rational and reduces it to lowest terms.
// Moving the sign of a negative denominator fails when the reduced numerator
// or denominator is [math.MinInt64], because its negation wraps.
func newRationalSafe(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, ErrDivisionByZero
	}
	r := reduce(num, den)
	if r.Denom() < 0 {
		return Rational{}, fmt.Errorf("denominator: %w", errOverflow)
	}
	if den < 0 && r.num == math.MinInt64 {
		return Rational{}, fmt.Errorf("numerator: %w", errOverflow)
	}
	return r, nil
}

// reduce divides num and den by their greatest common divisor and moves
// the sign to the numerator.
// The denominator must not be zero.
func reduce(num, den int64) Rational {
	d := gcd(num, den)
	if d == 0 {
		// Only reachable after a wrapped product, see [Rational.Mul].
		d = 1
	}
	num /= d
	den /= d
	if den < 0 {
		num, den = -num, -den
	}
	return newRationalUnsafe(num, den)
}

// gcd returns the greatest common divisor of |m| and |n|, gcd(0, n) = |n|.
func gcd(m, n int64) int64 {
	for n != 0 {
		m, n = n, m%n
	}
	return abs(m)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// New returns a rational equal to num / den reduced to lowest terms.
// The sign of the result is moved to the numerator:
//
//	New(-18, -12) = 3/2
//	New(4, -6)    = -2/3
//
// New returns an error if:
//   - the denominator is 0, the error is [ErrDivisionByZero];
//   - the denominator is negative and the reduced numerator or denominator
//     is [math.MinInt64], so the sign cannot be moved without overflow.
func New(num, den int64) (Rational, error) {
	r, err := newRationalSafe(num, den)
	if err != nil {
		return Rational{}, fmt.Errorf("creating [%v/%v]: %w", num, den, err)
	}
	return r, nil
}

// MustNew is like [New] but panics if the rational cannot be constructed.
// It simplifies safe initialization of global variables holding rationals.
func MustNew(num, den int64) Rational {
	r, err := New(num, den)
	if err != nil {
		panic(fmt.Sprintf("New(%v, %v) failed: %v", num, den, err))
	}
	return r
}

// NewFromInt64 returns a rational equal to the integer n, that is n/1.
func NewFromInt64(n int64) Rational {
	return newRationalUnsafe(n, 1)
}

// Parse converts a string to a rational.
// The input string must be in one of the following formats:
//
//	3/4
//	-3/4
//	6/-8
//	12
//
// The result does not have to be written in lowest terms, it is reduced
// the same way as [New] does.
//
// Parse returns an error if:
//   - the string is not in one of the formats above;
//   - the numerator or the denominator does not fit into int64;
//   - the denominator is 0;
//   - the fraction cannot be normalized in int64, see [New].
func Parse(s string) (Rational, error) {
	r, err := parse(s)
	if err != nil {
		return Rational{}, fmt.Errorf("parsing rational %q: %w", s, err)
	}
	return r, nil
}

func parse(s string) (Rational, error) {
	numText, denText, found := strings.Cut(s, "/")
	num, err := parseInt(numText)
	if err != nil {
		return Rational{}, fmt.Errorf("numerator: %w", err)
	}
	if !found {
		return NewFromInt64(num), nil
	}
	den, err := parseInt(denText)
	if err != nil {
		return Rational{}, fmt.Errorf("denominator: %w", err)
	}
	return newRationalSafe(num, den)
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return n, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, errOverflow
	}
	return 0, errInvalidFormat
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding rationals.
func MustParse(s string) Rational {
	r, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return r
}

// Num returns the numerator of the rational.
// It carries the sign of the rational and is coprime with [Rational.Denom].
func (r Rational) Num() int64 {
	return r.num
}

// Denom returns the denominator of the rational.
// It is always positive and coprime with [Rational.Num].
func (r Rational) Denom() int64 {
	return r.den + 1
}

// Sign returns:
//
//	-1 if r < 0
//	 0 if r = 0
//	+1 if r > 0
func (r Rational) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	}
	return 0
}

// IsNeg returns:
//
//	true  if r < 0
//	false otherwise
func (r Rational) IsNeg() bool {
	return r.num < 0
}

// IsPos returns:
//
//	true  if r > 0
//	false otherwise
func (r Rational) IsPos() bool {
	return r.num > 0
}

// IsZero returns:
//
//	true  if r = 0
//	false otherwise
func (r Rational) IsZero() bool {
	return r.num == 0
}

// IsOne returns:
//
//	true  if r = -1 or r = 1
//	false otherwise
func (r Rational) IsOne() bool {
	return r.IsInt() && (r.num == 1 || r.num == -1)
}

// IsInt returns true if the denominator is 1.
func (r Rational) IsInt() bool {
	return r.Denom() == 1
}

// neg reports whether the fraction is negative.
// It reads the fields generically and does not rely on the denominator
// being positive.
func (r Rational) neg() bool {
	return (r.num < 0) != (r.Denom() < 0)
}

// Abs returns the absolute value of the rational.
func (r Rational) Abs() Rational {
	return newRationalUnsafe(abs(r.num), r.Denom())
}

// Neg returns a rational with the opposite sign.
func (r Rational) Neg() Rational {
	return newRationalUnsafe(-r.num, r.Denom())
}

// Inv returns the reciprocal of the rational, 1/r.
//
// Inv returns [ErrDivisionByZero] if r is 0, and an overflow error
// if the numerator of r is [math.MinInt64].
func (r Rational) Inv() (Rational, error) {
	q, err := newRationalSafe(r.Denom(), r.num)
	if err != nil {
		return Rational{}, fmt.Errorf("inverting [%v]: %w", r, err)
	}
	return q, nil
}

// Add returns the sum of rationals r and s.
//
// The cross products are computed in int64 and are not checked for overflow.
// The result is exact only while r.Num()*s.Denom(), r.Denom()*s.Num() and
// r.Denom()*s.Denom() fit into int64.
func (r Rational) Add(s Rational) Rational {
	num := r.num*s.Denom() + r.Denom()*s.num
	den := r.Denom() * s.Denom()
	return reduce(num, den)
}

// Sub returns the difference between rationals r and s.
// It is subject to the same overflow limitation as [Rational.Add].
func (r Rational) Sub(s Rational) Rational {
	num := r.num*s.Denom() - r.Denom()*s.num
	den := r.Denom() * s.Denom()
	return reduce(num, den)
}

// Mul returns the product of rationals r and s.
//
// The products are computed in int64 and are not checked for overflow.
// A denominator product that wraps around to 0 yields an invalid rational.
func (r Rational) Mul(s Rational) Rational {
	num := r.num * s.num
	den := r.Denom() * s.Denom()
	return reduce(num, den)
}

// Quo returns the quotient of rationals r and s.
// It is subject to the same overflow limitation as [Rational.Mul].
//
// Quo returns [ErrDivisionByZero] if the divisor is 0.
func (r Rational) Quo(s Rational) (Rational, error) {
	q, err := r.quo(s)
	if err != nil {
		return Rational{}, fmt.Errorf("computing [%v / %v]: %w", r, s, err)
	}
	return q, nil
}

func (r Rational) quo(s Rational) (Rational, error) {
	if s.num == 0 {
		return Rational{}, ErrDivisionByZero
	}
	num := r.num * s.Denom()
	den := r.Denom() * s.num
	return reduce(num, den), nil
}

// Inc returns r + 1.
// Adding the denominator to the numerator keeps the fraction in lowest terms,
// because gcd(n + d, d) = gcd(n, d).
func (r Rational) Inc() Rational {
	return newRationalUnsafe(r.num+r.Denom(), r.Denom())
}

// Dec returns r - 1.
// See also method [Rational.Inc].
func (r Rational) Dec() Rational {
	return newRationalUnsafe(r.num-r.Denom(), r.Denom())
}

// cross returns |r.num * s.den| and |r.den * s.num|.
// Equal signs of r and s make the pair sufficient for comparing them.
func (r Rational) cross(s Rational) (int64, int64) {
	return abs(r.num * s.Denom()), abs(r.Denom() * s.num)
}

// Equal returns true if rationals r and s represent the same fraction.
// The cross products are not checked for overflow.
func (r Rational) Equal(s Rational) bool {
	if r.neg() != s.neg() {
		return false
	}
	x, y := r.cross(s)
	return x == y
}

// NotEqual is the negation of [Rational.Equal].
func (r Rational) NotEqual(s Rational) bool {
	return !r.Equal(s)
}

// Less returns true if r < s.
// The cross products are not checked for overflow.
func (r Rational) Less(s Rational) bool {
	rneg, sneg := r.neg(), s.neg()
	if rneg != sneg {
		return rneg
	}
	x, y := r.cross(s)
	if rneg {
		return x > y
	}
	return x < y
}

// LessEq returns true if r <= s.
func (r Rational) LessEq(s Rational) bool {
	return !r.Greater(s)
}

// Greater returns true if r > s.
func (r Rational) Greater(s Rational) bool {
	return s.Less(r)
}

// GreaterEq returns true if r >= s.
func (r Rational) GreaterEq(s Rational) bool {
	return !r.Less(s)
}

// Cmp compares rationals and returns:
//
//	-1 if r < s
//	 0 if r = s
//	+1 if r > s
//
// See also method [Rational.CmpAbs].
func (r Rational) Cmp(s Rational) int {
	switch {
	case r.Less(s):
		return -1
	case r.Equal(s):
		return 0
	}
	return 1
}

// CmpAbs compares absolute values of rationals and returns:
//
//	-1 if |r| < |s|
//	 0 if |r| = |s|
//	+1 if |r| > |s|
//
// See also method [Rational.Cmp].
func (r Rational) CmpAbs(s Rational) int {
	return r.Abs().Cmp(s.Abs())
}

// Min returns the smaller rational.
// See also method [Rational.Cmp].
func (r Rational) Min(s Rational) Rational {
	if r.LessEq(s) {
		return r
	}
	return s
}

// Max returns the larger rational.
// See also method [Rational.Cmp].
func (r Rational) Max(s Rational) Rational {
	if r.GreaterEq(s) {
		return r
	}
	return s
}

// Clamp compares rationals and returns:
//
//	min if r < min
//	max if r > max
//	  r otherwise
//
// Clamp returns an error if min is greater than max.
func (r Rational) Clamp(min, max Rational) (Rational, error) {
	switch {
	case min.Greater(max):
		return Rational{}, fmt.Errorf("clamping %v: invalid range [%v, %v]", r, min, max)
	case r.Less(min):
		return min, nil
	case r.Greater(max):
		return max, nil
	}
	return r, nil
}

// String implements the [fmt.Stringer] interface and returns the canonical
// representation "num/den" of a rational.
// The denominator is always present and positive, so integers are written
// as "n/1".
// See also method [Rational.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r Rational) String() string {
	var buf [41]byte
	return string(r.append(buf[:0]))
}

func (r Rational) append(text []byte) []byte {
	text = strconv.AppendInt(text, r.num, 10)
	text = append(text, '/')
	return strconv.AppendInt(text, r.Denom(), 10)
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example | Description                |
//	| ------ | ------- | -------------------------- |
//	| %s, %v | -5/3    | Canonical form             |
//	| %q     | "-5/3"  | Quoted canonical form      |
//	| %f     | -1.667  | Decimal approximation      |
//
// The '-' format flag can be used with all verbs.
// The %f verb is delegated to [decimal.Decimal.Format], see [Rational.Decimal],
// so its flags and precision follow the decimal package.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (r Rational) Format(state fmt.State, verb rune) {
	if verb == 'f' || verb == 'F' {
		d, err := r.Decimal()
		if err == nil {
			d.Format(state, verb)
			return
		}
	}

	var tmp [41]byte
	text := r.append(tmp[:0])

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + len(text) + tquote
	lspaces, tspaces := 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, 0, width)

	// Leading spaces
	for range lspaces {
		buf = append(buf, ' ')
	}

	// Opening quote
	for range lquote {
		buf = append(buf, '"')
	}

	// Fraction
	buf = append(buf, text...)

	// Closing quote
	for range tquote {
		buf = append(buf, '"')
	}

	// Trailing spaces
	for range tspaces {
		buf = append(buf, ' ')
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(rational.Rational="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}
