package binomial

import (
	"github.com/beatoz/fxseries/libs/checked"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
)

// EvaluateLiteral sums the series building every term from scratch:
//
//	term(n) = k·a·Π_{j=1}^{n-1}(j·b − a) / Π_{j=1}^{n}(j·b·x)
//
// It costs O(precision²) multiplications and serves as the exact oracle for
// the recurrence. Its results equal NumeratorDenominatorSeparate whenever
// both succeed.
func EvaluateLiteral(p Params) (*uint256.Int, xerrors.XError) {
	if xerr := p.Validate(); xerr != nil {
		return nil, xerr
	}

	acc := newAccumulator(uint256.NewInt(0))
	for n := uint64(0); n < p.Precision; n++ {
		term, xerr := literalTerm(p, n)
		if xerr != nil {
			return nil, xerr.Wrapf("term %d", n)
		}
		if xerr := acc.fold(n, term); xerr != nil {
			return nil, xerr.Wrapf("term %d", n)
		}
	}
	return acc.Total(), nil
}

// literalTerm returns the magnitude of the series term at position n.
func literalTerm(p Params, n uint64) (*uint256.Int, xerrors.XError) {
	if n == 0 {
		return p.K.Clone(), nil
	}
	bx, xerr := checked.Mul(p.B, p.X)
	if xerr != nil {
		return nil, xerr
	}
	num, xerr := checked.Mul(p.K, p.A)
	if xerr != nil {
		return nil, xerr
	}
	den := bx.Clone()
	for j := uint64(1); j < n; j++ {
		jb, xerr := checked.Mul(uint256.NewInt(j), p.B)
		if xerr != nil {
			return nil, xerr
		}
		// a ≤ b keeps j·b − a non-negative.
		coef, xerr := checked.Sub(jb, p.A)
		if xerr != nil {
			return nil, xerr
		}
		if num, xerr = checked.Mul(num, coef); xerr != nil {
			return nil, xerr
		}
		jbx, xerr := checked.Mul(uint256.NewInt(j+1), bx)
		if xerr != nil {
			return nil, xerr
		}
		if den, xerr = checked.Mul(den, jbx); xerr != nil {
			return nil, xerr
		}
	}
	return checked.Div(num, den)
}
