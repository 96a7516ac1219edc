package fxnum

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/beatoz/fxseries/types"
	"github.com/holiman/uint256"
	"github.com/robaho/fixed"
	"github.com/shopspring/decimal"
)

// fixedScaleDigits is the number of decimal places of robaho/fixed.
const fixedScaleDigits = 7

// ReferencePrecision is the number of decimal places carried by Reference.
const ReferencePrecision = int32(40)

// Reference returns k·((x+1)/x)^(a/b) computed as exp((a/b)·ln((x+1)/x)) in
// decimal arithmetic, truncated to an integer.
func Reference(k, x, a, b *uint256.Int) (decimal.Decimal, error) {
	if x.IsZero() || b.IsZero() {
		return decimal.Zero, ErrZeroDivisor
	}
	decX := toDecimal(x)
	base := decX.Add(decimal.New(1, 0)).DivRound(decX, ReferencePrecision)
	exponent := toDecimal(a).DivRound(toDecimal(b), ReferencePrecision)

	ln, err := base.Ln(ReferencePrecision)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reference ln: %w", err)
	}
	pow, err := ln.Mul(exponent).ExpTaylor(ReferencePrecision)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reference exp: %w", err)
	}
	return pow.Mul(toDecimal(k)).Truncate(0), nil
}

// LeadingDigits returns the number of leading decimal digits v shares with ref.
func LeadingDigits(v *uint256.Int, ref decimal.Decimal) int {
	vs, rs := v.Dec(), ref.Truncate(0).String()
	if len(vs) != len(rs) {
		return 0
	}
	n := 0
	for n < len(vs) && vs[n] == rs[n] {
		n++
	}
	return n
}

// LeadingDigitsMatch reports whether the first n digits of v and ref agree.
func LeadingDigitsMatch(v *uint256.Int, ref decimal.Decimal, n int) bool {
	return LeadingDigits(v, ref) >= n
}

// ScaledFixed converts a fixed value into an integer scaled by k, so that it
// can be compared with a series result.
func ScaledFixed(f fixed.Fixed, k *uint256.Int) (decimal.Decimal, error) {
	d, err := FixedToDecimal(f)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Mul(toDecimal(k)).Truncate(0), nil
}

// FixedToDecimal converts robaho/fixed.Fixed to decimal.Decimal through its
// raw int64 representation.
func FixedToDecimal(f fixed.Fixed) (decimal.Decimal, error) {
	if f.IsNaN() {
		return decimal.Decimal{}, fmt.Errorf("cannot convert NaN fixed.Fixed to decimal.Decimal")
	}

	// MarshalBinary writes the raw value as a varint.
	buf, err := f.MarshalBinary()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to marshal fixed.Fixed to binary: %w", err)
	}
	raw, _ := binary.Varint(buf)
	return decimal.New(raw, -fixedScaleDigits), nil
}

// FormatScaled renders v as a decimal fraction of k when k is a power of ten,
// e.g. 1320111004140914335 with k = 10^18 -> "1.320111004140914335".
// Any other k yields the plain integer.
func FormatScaled(v, k *uint256.Int) string {
	digits, ok := powerOfTen(k)
	if !ok {
		return v.Dec()
	}
	return types.FormattedString(v, uint8(digits))
}

func powerOfTen(k *uint256.Int) (int, bool) {
	s := k.Dec()
	if s[0] != '1' || strings.Trim(s[1:], "0") != "" {
		return 0, false
	}
	return len(s) - 1, true
}

func toDecimal(v *uint256.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v.ToBig(), 0)
}
