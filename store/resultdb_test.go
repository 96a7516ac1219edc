package store

import (
	"testing"

	"github.com/beatoz/fxseries/binomial"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const scale = uint64(1_000_000_000_000_000_000)

func TestEvaluateCaches(t *testing.T) {
	rdb := NewMemResultDB()
	defer rdb.Close()

	p := binomial.NewParams(scale, 2, 250, 365, 21)
	ret, xerr := rdb.Evaluate(p, binomial.FusedDivideThenMultiply)
	require.NoError(t, xerr)
	require.Equal(t, "1320111004140914335", ret.Value.Dec())

	lookups, hits := rdb.Stats()
	require.Equal(t, uint64(1), lookups)
	require.Equal(t, uint64(0), hits)

	cached, xerr := rdb.Evaluate(p, binomial.FusedDivideThenMultiply)
	require.NoError(t, xerr)
	require.Equal(t, ret.Value.Dec(), cached.Value.Dec())
	require.Equal(t, ret.LastTerm.Dec(), cached.LastTerm.Dec())
	require.Equal(t, binomial.FusedDivideThenMultiply, cached.Ordering)

	lookups, hits = rdb.Stats()
	require.Equal(t, uint64(2), lookups)
	require.Equal(t, uint64(1), hits)

	// the ordering is part of the key
	_, ok := rdb.Get(p, binomial.NumeratorDenominatorSeparate)
	require.False(t, ok)

	n, err := rdb.Len()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestEvaluateDoesNotCacheFailures(t *testing.T) {
	rdb := NewMemResultDB()
	defer rdb.Close()

	p := binomial.NewParams(scale, 2, 250, 365, 21)
	_, xerr := rdb.Evaluate(p, binomial.NumeratorDenominatorSeparate)
	require.True(t, xerr.Contains(xerrors.ErrOverflow))

	_, xerr = rdb.Evaluate(binomial.NewParams(scale, 0, 1, 2, 5), binomial.FusedDivideThenMultiply)
	require.Equal(t, xerrors.ErrCodeDivisionByZero, xerr.Code())

	n, err := rdb.Len()
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestWideArgumentsKey(t *testing.T) {
	rdb := NewMemResultDB()
	defer rdb.Close()

	// x does not fit the 16 bit slot of the packed word
	p := binomial.Params{
		K:         uint256.NewInt(scale),
		X:         uint256.NewInt(1_000_000),
		A:         uint256.NewInt(1),
		B:         uint256.NewInt(2),
		Precision: 8,
	}
	ret, xerr := rdb.Evaluate(p, binomial.FusedDivideThenMultiply)
	require.NoError(t, xerr)
	got, ok := rdb.Get(p, binomial.FusedDivideThenMultiply)
	require.True(t, ok)
	require.Equal(t, ret.Value.Dec(), got.Value.Dec())

	key, xerr := resultKey(p, binomial.FusedDivideThenMultiply)
	require.NoError(t, xerr)
	require.Equal(t, prefixArgs, key[:2])
	require.Len(t, key, 2+160+1)
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	rdb, err := OpenResultDB("results", dir)
	require.NoError(t, err)
	p := binomial.NewParams(scale, 3, 2, 3, 12)
	want, xerr := rdb.Evaluate(p, binomial.NumeratorDenominatorSeparate)
	require.NoError(t, xerr)
	require.NoError(t, rdb.Close())

	rdb, err = OpenResultDB("results", dir)
	require.NoError(t, err)
	defer rdb.Close()

	got, ok := rdb.Get(p, binomial.NumeratorDenominatorSeparate)
	require.True(t, ok)
	require.Equal(t, want.Value.Dec(), got.Value.Dec())

	lookups, hits := rdb.Stats()
	require.Equal(t, uint64(2), lookups)
	require.Equal(t, uint64(1), hits)
}
