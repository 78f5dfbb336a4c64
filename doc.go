/*
Package rational implements exact rational numbers with fixed-width parts.
A [Rational] is a signed fraction stored as an int64 numerator and an int64
denominator, always kept in lowest terms.

# Features

  - Immutable rational values, ensuring safe usage across multiple goroutines
  - Canonical representation, so equal fractions are equal Go values
  - Arithmetic and comparison operations that never leave a value unreduced
  - Conversions to and from [decimal.Decimal], float64 and strings
  - Text, JSON, binary, BSON, SQL and msgpack encodings

# Representation

A Rational consists of a numerator and a denominator that satisfy the
following invariants after every operation:

  - the denominator is positive, so the sign is carried by the numerator;
  - the numerator and the denominator are coprime;
  - zero is always represented as 0/1.

The denominator is stored biased by one, which makes the zero value of the
type a valid rational equal to 0/1.
The canonical text form is "num/den", for example "-5/3" or "-9/1".

# Operations

The package provides arithmetic operations Add, Sub, Mul, Quo, Inc, Dec,
Abs, Neg and Inv, and comparison operations Equal, Less, LessEq, Greater,
GreaterEq and Cmp.
Compound assignment is expressed by rebinding the result:

	r = r.Add(s)
	r = r.Inc()

# Overflow

The numerator and the denominator are plain int64 values, and the cross
products used by arithmetic and comparison are computed in int64 as well.
They are not checked for overflow: results are exact only while every
intermediate product fits into int64, otherwise they wrap around silently.
For example, adding fractions with denominators above 2^32 can overflow even
if the sum itself is representable.
Negating or taking the absolute value of a rational with numerator
[math.MinInt64] also wraps.

Construction, parsing and decoding are checked instead. Moving the sign off
a negative denominator negates both parts, which cannot be done when one of
them is [math.MinInt64] after reduction, as in 1/-9223372036854775808.
[New], [Parse], [Rational.Inv] and the decoders return an overflow error
for such input rather than a rational with a negative denominator.

# Errors

Two operations can fail with [ErrDivisionByZero]: construction with a zero
denominator, and division by a zero rational.
Parsing, conversions and decoding return errors for malformed or
out-of-range input.
The Must* constructors panic instead of returning an error.
*/
package rational
