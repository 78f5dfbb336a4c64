// Package series computes exact partial sums of classic convergent series.
package series

import (
	"errors"
	"fmt"

	"github.com/govalues/rational"
)

const (
	// MaxEulerOrder is the largest order of [Euler] whose partial sums and
	// intermediate products fit into int64.
	MaxEulerOrder = 13
	// MaxZenoOrder is the largest order of [Zeno] whose partial sums and
	// intermediate products fit into int64.
	MaxZenoOrder = 31
)

// ErrOrderRange is returned when a partial sum would overflow int64 or is empty.
var ErrOrderRange = errors.New("order out of range")

// Euler returns the partial sums of 1/0! + 1/1! + ... + 1/k! for
// k = 0..order, converging to Euler's number e.
func Euler(order int) ([]rational.Rational, error) {
	if order < 0 || order > MaxEulerOrder {
		return nil, fmt.Errorf("computing euler series of order %d: %w", order, ErrOrderRange)
	}
	sums := make([]rational.Rational, 0, order+1)
	sum := rational.NewFromInt64(1)
	term := rational.NewFromInt64(1)
	sums = append(sums, sum)
	for k := 1; k <= order; k++ {
		term = term.Mul(rational.MustNew(1, int64(k)))
		sum = sum.Add(term)
		sums = append(sums, sum)
	}
	return sums, nil
}

// Zeno returns the partial sums of 1/2 + 1/4 + ... + 1/2^k for
// k = 1..order, converging to 1.
func Zeno(order int) ([]rational.Rational, error) {
	if order < 1 || order > MaxZenoOrder {
		return nil, fmt.Errorf("computing zeno series of order %d: %w", order, ErrOrderRange)
	}
	half := rational.MustNew(1, 2)
	sums := make([]rational.Rational, 0, order)
	var sum rational.Rational
	term := rational.NewFromInt64(1)
	for k := 1; k <= order; k++ {
		term = term.Mul(half)
		sum = sum.Add(term)
		sums = append(sums, sum)
	}
	return sums, nil
}
