package argpack

import (
	"testing"

	"github.com/beatoz/fxseries/binomial"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

func TestCalldata_Packed(t *testing.T) {
	word, xerr := Encode(scale, 2, 250, 365, 21)
	require.NoError(t, xerr)

	bz, xerr := PackCalldata(word)
	require.NoError(t, xerr)
	require.Len(t, bz, 32)
	require.Equal(t, "0x000000000000000000000000000000000de0b6b3a7640000000200fa016d0015", hexutil.Encode(bz))

	back, xerr := UnpackCalldata(bz)
	require.NoError(t, xerr)
	require.True(t, back.Eq(word))

	_, xerr = UnpackCalldata(bz[:31])
	require.True(t, xerr.Contains(xerrors.ErrInvalidParams))
}

func TestCalldata_Unpacked(t *testing.T) {
	p := binomial.NewParams(1_000_000_000_000_000_000, 2, 250, 365, 21)
	bz, xerr := PackArgsCalldata(p)
	require.NoError(t, xerr)
	require.Len(t, bz, 5*32)

	back, xerr := UnpackArgsCalldata(bz)
	require.NoError(t, xerr)
	require.Equal(t, p.String(), back.String())

	_, xerr = PackArgsCalldata(binomial.Params{})
	require.True(t, xerr.Contains(xerrors.ErrInvalidParams))
}
