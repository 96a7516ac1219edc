// Package binomial evaluates the truncated Maclaurin binomial series
//
//	k·(1+1/x)^(a/b) ≈ Σ_{n<precision} k·C(a/b, n)·x^-n
//
// in 256-bit unsigned integer arithmetic. Terms are produced by an O(precision)
// recurrence instead of recomputing powers and factorials, and every
// overflow or division by zero aborts the whole evaluation.
package binomial

import (
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
)

// specialLimit is the largest precision answered by the closed forms.
const specialLimit = 3

// Result is the outcome of one successful evaluation.
type Result struct {
	Value     *uint256.Int
	LastTerm  *uint256.Int
	Precision uint64
	Ordering  Ordering
}

// Evaluate returns k·(1+1/x)^(a/b) truncated to precision terms.
func Evaluate(k, x, a, b *uint256.Int, precision uint64, ordering Ordering) (*uint256.Int, xerrors.XError) {
	ret, xerr := EvaluateParams(Params{K: k, X: x, A: a, B: b, Precision: precision}, ordering)
	if xerr != nil {
		return nil, xerr
	}
	return ret.Value, nil
}

// EvaluateParams is Evaluate on a Params value. It also reports the last term
// folded into the sum.
func EvaluateParams(p Params, ordering Ordering) (*Result, xerrors.XError) {
	if !ordering.Valid() {
		return nil, xerrors.ErrInvalidOrdering.Wrapf("%d", uint8(ordering))
	}
	if xerr := p.Validate(); xerr != nil {
		return nil, xerr
	}

	if p.Precision <= specialLimit {
		total, last, xerr := evalSpecial(p)
		if xerr != nil {
			return nil, xerr
		}
		return &Result{Value: total, LastTerm: last, Precision: p.Precision, Ordering: ordering}, nil
	}

	bx, seed, xerr := secondPartial(p.K, p.X, p.A, p.B)
	if xerr != nil {
		return nil, xerr
	}
	r, xerr := newRecurrence(p.K, p.A, p.B, bx, p.Precision, ordering)
	if xerr != nil {
		return nil, xerr
	}
	acc := newAccumulator(seed)
	if xerr := acc.fold(r.Position(), r.Term()); xerr != nil {
		return nil, xerr
	}
	for r.Next() {
		if xerr := acc.fold(r.Position(), r.Term()); xerr != nil {
			return nil, xerr.Wrapf("term %d", r.Index())
		}
	}
	if xerr := r.Err(); xerr != nil {
		return nil, xerr
	}

	return &Result{
		Value:     acc.Total(),
		LastTerm:  r.Term().Clone(),
		Precision: p.Precision,
		Ordering:  ordering,
	}, nil
}

// MustEvaluate is Evaluate for values known to be in range.
func MustEvaluate(k, x, a, b, precision uint64, ordering Ordering) *uint256.Int {
	p := NewParams(k, x, a, b, precision)
	v, xerr := Evaluate(p.K, p.X, p.A, p.B, p.Precision, ordering)
	if xerr != nil {
		panic(xerr)
	}
	return v
}
