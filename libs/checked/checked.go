// Package checked provides 256-bit unsigned arithmetic that reports overflow
// and division by zero as errors instead of wrapping around.
package checked

import (
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
)

// Add returns x + y.
func Add(x, y *uint256.Int) (*uint256.Int, xerrors.XError) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, xerrors.ErrOverflow.Wrapf("%v + %v", x.Dec(), y.Dec())
	}
	return z, nil
}

// Sub returns x - y. A negative result is an overflow of the unsigned width.
func Sub(x, y *uint256.Int) (*uint256.Int, xerrors.XError) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, xerrors.ErrOverflow.Wrapf("%v - %v", x.Dec(), y.Dec())
	}
	return z, nil
}

// Mul returns x * y.
func Mul(x, y *uint256.Int) (*uint256.Int, xerrors.XError) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, xerrors.ErrOverflow.Wrapf("%v * %v", x.Dec(), y.Dec())
	}
	return z, nil
}

// Div returns the floor of x / y.
func Div(x, y *uint256.Int) (*uint256.Int, xerrors.XError) {
	if y.IsZero() {
		return nil, xerrors.ErrDivisionByZero.Wrapf("%v / 0", x.Dec())
	}
	return new(uint256.Int).Div(x, y), nil
}

// MulDiv returns floor(x * y / d). The product must fit in 256 bits.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, xerrors.XError) {
	if d.IsZero() {
		return nil, xerrors.ErrDivisionByZero.Wrapf("(%v * %v) / 0", x.Dec(), y.Dec())
	}
	p, xerr := Mul(x, y)
	if xerr != nil {
		return nil, xerr
	}
	return p.Div(p, d), nil
}

// Mul3 returns x * y * z.
func Mul3(x, y, z *uint256.Int) (*uint256.Int, xerrors.XError) {
	p, xerr := Mul(x, y)
	if xerr != nil {
		return nil, xerr
	}
	return Mul(p, z)
}
