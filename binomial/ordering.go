package binomial

import (
	"strings"

	"github.com/beatoz/fxseries/types/xerrors"
)

// Ordering selects how a factor is folded into the running term.
type Ordering uint8

const (
	// NumeratorDenominatorSeparate keeps the numerator and denominator
	// products apart and divides them once per term. Every term equals the
	// literal series term exactly, but the products run out of headroom early.
	NumeratorDenominatorSeparate Ordering = iota + 1
	// FusedDivideThenMultiply divides the running term by the factor
	// denominator before the next multiplication. Operands stay small, at the
	// cost of a few units of truncation error.
	FusedDivideThenMultiply
)

// DefaultOrdering is the ordering used when none is configured.
const DefaultOrdering = FusedDivideThenMultiply

// OrderingEpsilon bounds |A - B| in units of the last digit with
// k = 10^18, up to the overflow boundary of A. The largest divergence seen over
// 16-bit a, b is 8 units for x = 1, 7 for x = 2 and 6 for x = 3; it vanishes
// for x >= 100.
const OrderingEpsilon = 10

// Valid reports whether o is one of the two supported orderings.
func (o Ordering) Valid() bool {
	return o == NumeratorDenominatorSeparate || o == FusedDivideThenMultiply
}

func (o Ordering) String() string {
	switch o {
	case NumeratorDenominatorSeparate:
		return "separate"
	case FusedDivideThenMultiply:
		return "fused"
	default:
		return "unknown"
	}
}

// Label returns the short name used in reports.
func (o Ordering) Label() string {
	switch o {
	case NumeratorDenominatorSeparate:
		return "A"
	case FusedDivideThenMultiply:
		return "B"
	default:
		return "?"
	}
}

// ParseOrdering accepts A, B or their long names, case-insensitively.
// An empty string selects DefaultOrdering.
func ParseOrdering(s string) (Ordering, xerrors.XError) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "separate", "numerator-denominator-separate":
		return NumeratorDenominatorSeparate, nil
	case "b", "fused", "fused-divide-then-multiply", "":
		return FusedDivideThenMultiply, nil
	default:
		return 0, xerrors.ErrInvalidOrdering.Wrapf("%q", s)
	}
}

func (o Ordering) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, xerrors.ErrInvalidOrdering.Wrapf("%d", uint8(o))
	}
	return []byte(o.String()), nil
}

func (o *Ordering) UnmarshalText(text []byte) error {
	v, xerr := ParseOrdering(string(text))
	if xerr != nil {
		return xerr
	}
	*o = v
	return nil
}
