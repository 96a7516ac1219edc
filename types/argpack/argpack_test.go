package argpack

import (
	"testing"
	"testing/quick"

	"github.com/beatoz/fxseries/binomial"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var scale = uint256.NewInt(1_000_000_000_000_000_000)

func TestEncode_Layout(t *testing.T) {
	word, xerr := Encode(scale, 2, 250, 365, 21)
	require.NoError(t, xerr)
	require.Equal(t, "0xde0b6b3a7640000000200fa016d0015", word.Hex())

	args := Decode(word)
	require.Equal(t, scale.Dec(), args.K.Dec())
	require.Equal(t, uint16(2), args.X)
	require.Equal(t, uint16(250), args.A)
	require.Equal(t, uint16(365), args.B)
	require.Equal(t, uint16(21), args.Precision)
}

func TestRoundTrip(t *testing.T) {
	f := func(kHi, kLo uint64, x, a, b, precision uint16) bool {
		k := new(uint256.Int).Lsh(uint256.NewInt(kHi), 64)
		k.Or(k, uint256.NewInt(kLo))
		word, xerr := Encode(k, x, a, b, precision)
		if xerr != nil {
			return false
		}
		want := &Args{K: k, X: x, A: a, B: b, Precision: precision}
		return Decode(word).Equal(want)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestRoundTrip_Bounds(t *testing.T) {
	maxK := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
	cases := []*Args{
		{K: uint256.NewInt(0)},
		{K: maxK, X: 0xFFFF, A: 0xFFFF, B: 0xFFFF, Precision: 0xFFFF},
		{K: uint256.NewInt(1), X: 1, A: 0, B: 0xFFFF, Precision: 0},
	}
	for _, c := range cases {
		word, xerr := Encode(c.K, c.X, c.A, c.B, c.Precision)
		require.NoError(t, xerr)
		require.True(t, Decode(word).Equal(c))
		require.LessOrEqual(t, word.BitLen(), 192)
	}
}

func TestEncode_OutOfRange(t *testing.T) {
	k := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	_, xerr := Encode(k, 1, 1, 1, 1)
	require.True(t, xerr.Contains(xerrors.ErrInvalidParams))

	p := binomial.NewParams(1, 1<<16, 1, 2, 3)
	_, xerr = EncodeParams(p)
	require.True(t, xerr.Contains(xerrors.ErrFieldOutOfRange))

	p = binomial.NewParams(1, 1, 1, 2, 1<<16)
	_, xerr = EncodeParams(p)
	require.True(t, xerr.Contains(xerrors.ErrFieldOutOfRange))
	require.False(t, xerr.Contains(xerrors.ErrMalformedWord))

	_, xerr = EncodeParams(binomial.Params{})
	require.True(t, xerr.Contains(xerrors.ErrInvalidParams))
}

func TestDecode_IgnoresHighBits(t *testing.T) {
	word, xerr := Encode(scale, 2, 250, 365, 21)
	require.NoError(t, xerr)
	dirty := new(uint256.Int).Or(word, new(uint256.Int).Lsh(uint256.NewInt(0xABCD), 200))

	require.True(t, Decode(dirty).Equal(Decode(word)))

	_, xerr = Strict(dirty)
	require.True(t, xerr.Contains(xerrors.ErrMalformedWord))
	require.False(t, xerr.Contains(xerrors.ErrFieldOutOfRange))
	args, xerr := Strict(word)
	require.NoError(t, xerr)
	require.Equal(t, uint16(21), args.Precision)
}

func TestArgs_Evaluate(t *testing.T) {
	word, xerr := EncodeParams(binomial.NewParams(1_000_000_000_000_000_000, 2, 250, 365, 21))
	require.NoError(t, xerr)

	ret, xerr := binomial.EvaluateParams(Decode(word).Params(), binomial.FusedDivideThenMultiply)
	require.NoError(t, xerr)
	require.Equal(t, "1320111004140914335", ret.Value.Dec())
}
