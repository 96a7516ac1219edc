package binomial

import (
	"github.com/beatoz/fxseries/types/xerrors"
)

// MaxPrecision returns the largest precision, not above limit, for which the
// evaluation of p with the given ordering completes without overflow.
//
// Evaluating precision n+1 performs every operation of precision n plus the
// next step, so the boundary is found in one pass of the recurrence.
func MaxPrecision(p Params, ordering Ordering, limit uint64) (uint64, xerrors.XError) {
	if !ordering.Valid() {
		return 0, xerrors.ErrInvalidOrdering.Wrapf("%d", uint8(ordering))
	}
	if xerr := p.Validate(); xerr != nil {
		return 0, xerr
	}

	for n := uint64(1); n <= min(limit, specialLimit); n++ {
		if _, _, xerr := evalSpecial(p.WithPrecision(n)); xerr != nil {
			if xerr.Contains(xerrors.ErrOverflow) {
				return n - 1, nil
			}
			return 0, xerr
		}
	}
	if limit <= specialLimit {
		return limit, nil
	}

	bx, seed, xerr := secondPartial(p.K, p.X, p.A, p.B)
	if xerr != nil {
		return 0, xerr
	}
	r, xerr := newRecurrence(p.K, p.A, p.B, bx, limit, ordering)
	if xerr != nil {
		return 0, xerr
	}
	acc := newAccumulator(seed)
	if xerr := acc.fold(r.Position(), r.Term()); xerr != nil {
		return 0, xerr
	}
	for r.Next() {
		if xerr := acc.fold(r.Position(), r.Term()); xerr != nil {
			if xerr.Contains(xerrors.ErrOverflow) {
				return r.Index() - 1, nil
			}
			return 0, xerr
		}
	}
	if xerr := r.Err(); xerr != nil {
		if xerr.Contains(xerrors.ErrOverflow) {
			// the failed step was the one towards precision Index()+1
			return r.Index(), nil
		}
		return 0, xerr
	}
	return limit, nil
}
