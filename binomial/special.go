package binomial

import (
	"github.com/beatoz/fxseries/libs/checked"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
)

// secondPartial returns b·x and the two-term partial sum k + k·a/(b·x).
func secondPartial(k, x, a, b *uint256.Int) (bx, total *uint256.Int, xerr xerrors.XError) {
	if bx, xerr = checked.Mul(b, x); xerr != nil {
		return nil, nil, xerr
	}
	ka, xerr := checked.Mul(k, a)
	if xerr != nil {
		return nil, nil, xerr
	}
	second, xerr := checked.Div(ka, bx)
	if xerr != nil {
		return nil, nil, xerr
	}
	if total, xerr = checked.Add(k, second); xerr != nil {
		return nil, nil, xerr
	}
	return bx, total, nil
}

// thirdTerm builds the magnitude of the third series term from scratch:
// k·a·(b−a) / (b·x · 2·b·x). The factor pair and the undivided products are
// returned so that the recurrence can continue from them.
func thirdTerm(k, a, b, bx *uint256.Int) (fn, fd, num, den, term *uint256.Int, xerr xerrors.XError) {
	if fn, xerr = checked.Sub(b, a); xerr != nil {
		return
	}
	if fd, xerr = checked.Add(bx, bx); xerr != nil {
		return
	}
	if num, xerr = checked.Mul3(k, a, fn); xerr != nil {
		return
	}
	if den, xerr = checked.Mul(bx, fd); xerr != nil {
		return
	}
	term, xerr = checked.Div(num, den)
	return
}

// evalSpecial returns the closed-form partial sum for precision 0 to 3.
// p must already be validated.
func evalSpecial(p Params) (total, last *uint256.Int, xerr xerrors.XError) {
	switch p.Precision {
	case 0:
		return uint256.NewInt(0), uint256.NewInt(0), nil
	case 1:
		return p.K.Clone(), p.K.Clone(), nil
	}

	bx, total, xerr := secondPartial(p.K, p.X, p.A, p.B)
	if xerr != nil {
		return nil, nil, xerr
	}
	if p.Precision == 2 {
		return total, new(uint256.Int).Sub(total, p.K), nil
	}

	_, _, _, _, term, xerr := thirdTerm(p.K, p.A, p.B, bx)
	if xerr != nil {
		return nil, nil, xerr
	}
	if total, xerr = checked.Sub(total, term); xerr != nil {
		return nil, nil, xerr
	}
	return total, term, nil
}
