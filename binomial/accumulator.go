package binomial

import (
	"github.com/beatoz/fxseries/libs/checked"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
)

// accumulator is the running partial sum of one evaluation.
type accumulator struct {
	total *uint256.Int
}

func newAccumulator(seed *uint256.Int) *accumulator {
	return &accumulator{total: seed.Clone()}
}

// negative reports whether the series term at position n is subtracted.
// For 0 < a/b < 1 the first two terms are positive and the signs alternate
// from the third term on: even positions are subtracted.
func negative(n uint64) bool {
	return n >= 2 && n%2 == 0
}

// fold adds or subtracts the term at series position n.
func (acc *accumulator) fold(n uint64, term *uint256.Int) xerrors.XError {
	var (
		total *uint256.Int
		xerr  xerrors.XError
	)
	if negative(n) {
		total, xerr = checked.Sub(acc.total, term)
	} else {
		total, xerr = checked.Add(acc.total, term)
	}
	if xerr != nil {
		return xerr
	}
	acc.total = total
	return nil
}

func (acc *accumulator) Total() *uint256.Int {
	return acc.total
}
