package types

import (
	"strings"

	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
)

const (
	// DefaultScaleDigits makes k = 10^18, the usual 18 decimal fixed-point unit.
	DefaultScaleDigits uint8 = 18

	// 10^77 is the largest power of ten below 2^256.
	MaxScaleDigits uint8 = 77
)

var ten = uint256.NewInt(10)

// Scale returns 10^digits.
func Scale(digits uint8) (*uint256.Int, xerrors.XError) {
	if digits > MaxScaleDigits {
		return nil, xerrors.ErrInvalidParams.Wrapf("scale digits %d exceed %d", digits, MaxScaleDigits)
	}
	return new(uint256.Int).Exp(ten, uint256.NewInt(uint64(digits))), nil
}

func MustScale(digits uint8) *uint256.Int {
	s, xerr := Scale(digits)
	if xerr != nil {
		panic(xerr)
	}
	return s
}

// FromScaledRem splits v into its integer part and remainder with respect to scale.
func FromScaledRem(v, scale *uint256.Int) (*uint256.Int, *uint256.Int) {
	r := new(uint256.Int)
	q, r := new(uint256.Int).DivMod(v, scale, r)
	return q, r
}

// FormattedString renders v scaled by 10^digits with all fraction digits.
func FormattedString(v *uint256.Int, digits uint8) string {
	scale, xerr := Scale(digits)
	if xerr != nil || digits == 0 {
		return v.Dec()
	}
	q, r := FromScaledRem(v, scale)
	frac := r.Dec()
	return q.Dec() + "." + strings.Repeat("0", int(digits)-len(frac)) + frac
}
