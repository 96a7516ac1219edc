// Package fxnum holds the reference computations that integer series results
// are checked against: a coarse 7 decimal fixed-point pow on robaho/fixed and a
// high precision decimal pow on shopspring/decimal.
package fxnum

import (
	"errors"

	"github.com/robaho/fixed"
)

// series lengths for FixedLn and FixedExp
const seriesTerms = 32

var (
	zero = fixed.ZERO
	one  = fixed.NewI(1, 0)
	two  = fixed.NewI(2, 0)

	// integers[n] == n
	integers = func() []fixed.Fixed {
		d := make([]fixed.Fixed, 2*seriesTerms+1)
		for n := range d {
			d[n] = fixed.NewI(int64(n), 0)
		}
		return d
	}()

	ErrNonPositive = errors.New("fxnum: input must be > 0")
	ErrZeroDivisor = errors.New("fxnum: zero divisor")
)

// FixedLn returns ln(v) for v > 0 from
// ln(v) = 2·(t + t^3/3 + t^5/5 + ...), t = (v-1)/(v+1).
func FixedLn(v fixed.Fixed) (fixed.Fixed, error) {
	if v.Cmp(zero) <= 0 {
		return zero, ErrNonPositive
	}
	t := v.Sub(one).Div(v.Add(one))
	t2 := t.Mul(t)

	sum, odd := t, t
	for k := 1; k < seriesTerms; k++ {
		odd = odd.Mul(t2)
		sum = sum.Add(odd.Div(integers[2*k+1]))
	}
	return sum.Mul(two), nil
}

// FixedExp returns e^v evaluated in Horner form,
// 1 + v/1·(1 + v/2·(1 + ... (1 + v/N))).
func FixedExp(v fixed.Fixed) fixed.Fixed {
	s := one
	for n := seriesTerms; n > 0; n-- {
		s = one.Add(v.Div(integers[n]).Mul(s))
	}
	return s
}

// FixedPow returns base^exponent as exp(exponent·ln(base)).
func FixedPow(base, exponent fixed.Fixed) (fixed.Fixed, error) {
	ln, err := FixedLn(base)
	if err != nil {
		return zero, err
	}
	return FixedExp(ln.Mul(exponent)), nil
}

// Approx returns (1+1/x)^(a/b) to 7 decimal places.
func Approx(x, a, b int64) (fixed.Fixed, error) {
	if x == 0 || b == 0 {
		return zero, ErrZeroDivisor
	}
	base := one.Add(one.Div(fixed.NewI(x, 0)))
	exponent := fixed.NewI(a, 0).Div(fixed.NewI(b, 0))
	return FixedPow(base, exponent)
}
