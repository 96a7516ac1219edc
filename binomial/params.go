package binomial

import (
	"fmt"

	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
)

// Params holds the inputs of one evaluation of k·(1+1/x)^(a/b)
// truncated to Precision terms.
type Params struct {
	K         *uint256.Int
	X         *uint256.Int
	A         *uint256.Int
	B         *uint256.Int
	Precision uint64
}

// NewParams builds Params from machine-word operands.
func NewParams(k, x, a, b, precision uint64) Params {
	return Params{
		K:         uint256.NewInt(k),
		X:         uint256.NewInt(x),
		A:         uint256.NewInt(a),
		B:         uint256.NewInt(b),
		Precision: precision,
	}
}

// WithPrecision returns a copy of p sharing the same operands.
func (p Params) WithPrecision(precision uint64) Params {
	p.Precision = precision
	return p
}

// Validate checks the preconditions shared by every evaluation variant.
// Division by zero is reported before the exponent check.
func (p Params) Validate() xerrors.XError {
	if p.K == nil || p.X == nil || p.A == nil || p.B == nil {
		return xerrors.ErrInvalidParams.Wrapf("missing operand")
	}
	if p.B.IsZero() {
		return xerrors.ErrDivisionByZero.Wrapf("b is zero")
	}
	if p.X.IsZero() {
		return xerrors.ErrDivisionByZero.Wrapf("x is zero")
	}
	if p.A.Gt(p.B) {
		return xerrors.ErrInvalidExponent.Wrapf("a(%v) > b(%v)", p.A.Dec(), p.B.Dec())
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("k=%v x=%v a=%v b=%v precision=%v", dec(p.K), dec(p.X), dec(p.A), dec(p.B), p.Precision)
}

func dec(v *uint256.Int) string {
	if v == nil {
		return "<nil>"
	}
	return v.Dec()
}
