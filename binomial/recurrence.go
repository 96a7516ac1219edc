package binomial

import (
	"github.com/beatoz/fxseries/libs/checked"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
)

// recurrence derives each series term from the previous one.
//
// The factor converting term n-1 into term n (n >= 3) is
// ((n-1)·b − a) / (n·b·x), so its numerator grows by b and its denominator by
// b·x per step. The sequence is finite and can not be restarted.
type recurrence struct {
	ordering Ordering
	b, bx    *uint256.Int

	fn, fd   *uint256.Int // factor numerator and denominator
	num, den *uint256.Int // undivided products, NumeratorDenominatorSeparate only
	term     *uint256.Int

	// i counts evaluated precision: after Next returns true the series holds
	// i terms and Term is the one at position i-1.
	i, last uint64
	err     xerrors.XError
}

// newRecurrence prepares the engine positioned at precision 3, with the third
// term already formed.
func newRecurrence(k, a, b, bx *uint256.Int, precision uint64, ordering Ordering) (*recurrence, xerrors.XError) {
	fn, fd, num, den, term, xerr := thirdTerm(k, a, b, bx)
	if xerr != nil {
		return nil, xerr
	}
	r := &recurrence{
		ordering: ordering,
		b:        b,
		bx:       bx,
		fn:       fn,
		fd:       fd,
		term:     term,
		i:        3,
		last:     precision,
	}
	if ordering == NumeratorDenominatorSeparate {
		r.num, r.den = num, den
	}
	return r, nil
}

// Next advances to the following term. It returns false once the requested
// precision is reached or an arithmetic error occurred.
func (r *recurrence) Next() bool {
	if r.err != nil || r.i >= r.last {
		return false
	}
	if r.ordering == FusedDivideThenMultiply && r.term.IsZero() && r.skipZeroTail() {
		return true
	}

	var xerr xerrors.XError
	if r.fn, xerr = checked.Add(r.fn, r.b); xerr != nil {
		return r.fail(xerr)
	}
	if r.fd, xerr = checked.Add(r.fd, r.bx); xerr != nil {
		return r.fail(xerr)
	}

	switch r.ordering {
	case NumeratorDenominatorSeparate:
		if r.num, xerr = checked.Mul(r.num, r.fn); xerr != nil {
			return r.fail(xerr)
		}
		if r.den, xerr = checked.Mul(r.den, r.fd); xerr != nil {
			return r.fail(xerr)
		}
		if r.term, xerr = checked.Div(r.num, r.den); xerr != nil {
			return r.fail(xerr)
		}
	default:
		if r.term, xerr = checked.MulDiv(r.term, r.fn, r.fd); xerr != nil {
			return r.fail(xerr)
		}
	}

	r.i++
	return true
}

// skipZeroTail moves a fused sequence whose term reached zero straight to the
// requested precision. Every later term is zero, so only the factor
// increments remain. It reports false, leaving r untouched, when those would
// overflow and the steps have to be taken one by one.
func (r *recurrence) skipZeroTail() bool {
	rest := uint256.NewInt(r.last - r.i)
	fdStep, xerr := checked.Mul(rest, r.bx)
	if xerr != nil {
		return false
	}
	fd, xerr := checked.Add(r.fd, fdStep)
	if xerr != nil {
		return false
	}
	// fn <= fd and b <= bx, so neither can overflow here
	fn := new(uint256.Int).Add(r.fn, new(uint256.Int).Mul(rest, r.b))

	r.fn, r.fd = fn, fd
	r.i = r.last
	return true
}

func (r *recurrence) fail(xerr xerrors.XError) bool {
	r.err = xerr.Wrapf("term %d", r.i)
	return false
}

// Index returns the number of terms covered so far.
func (r *recurrence) Index() uint64 {
	return r.i
}

// Position returns the series position of the current term.
func (r *recurrence) Position() uint64 {
	return r.i - 1
}

func (r *recurrence) Term() *uint256.Int {
	return r.term
}

func (r *recurrence) Err() xerrors.XError {
	return r.err
}
