package argpack

import (
	"math/big"

	"github.com/beatoz/fxseries/binomial"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/holiman/uint256"
)

var (
	uint256Type, _ = abi.NewType("uint256", "", nil)

	// packedArgs is the calling convention taking the single packed word.
	packedArgs = abi.Arguments{
		{Name: "packed", Type: uint256Type},
	}
	// unpackedArgs takes k, x, a, b and precision as separate words.
	unpackedArgs = abi.Arguments{
		{Name: "k", Type: uint256Type},
		{Name: "x", Type: uint256Type},
		{Name: "a", Type: uint256Type},
		{Name: "b", Type: uint256Type},
		{Name: "precision", Type: uint256Type},
	}
)

// PackCalldata ABI-encodes the packed word as the only call argument.
func PackCalldata(word *uint256.Int) ([]byte, xerrors.XError) {
	bz, err := packedArgs.Pack(word.ToBig())
	if err != nil {
		return nil, xerrors.ErrInvalidParams.Wrap(err)
	}
	return bz, nil
}

// UnpackCalldata decodes calldata produced by PackCalldata.
func UnpackCalldata(data []byte) (*uint256.Int, xerrors.XError) {
	vals, err := packedArgs.Unpack(data)
	if err != nil {
		return nil, xerrors.ErrMalformedInput.Wrap(err)
	}
	return toUint256(vals[0])
}

// PackArgsCalldata ABI-encodes the unpacked five-argument form.
func PackArgsCalldata(p binomial.Params) ([]byte, xerrors.XError) {
	if p.K == nil || p.X == nil || p.A == nil || p.B == nil {
		return nil, xerrors.ErrInvalidParams.Wrapf("missing operand")
	}
	bz, err := unpackedArgs.Pack(
		p.K.ToBig(),
		p.X.ToBig(),
		p.A.ToBig(),
		p.B.ToBig(),
		new(big.Int).SetUint64(p.Precision),
	)
	if err != nil {
		return nil, xerrors.ErrInvalidParams.Wrap(err)
	}
	return bz, nil
}

// UnpackArgsCalldata decodes calldata produced by PackArgsCalldata.
func UnpackArgsCalldata(data []byte) (binomial.Params, xerrors.XError) {
	vals, err := unpackedArgs.Unpack(data)
	if err != nil {
		return binomial.Params{}, xerrors.ErrMalformedInput.Wrap(err)
	}
	ints := make([]*uint256.Int, len(vals))
	for i, v := range vals {
		n, xerr := toUint256(v)
		if xerr != nil {
			return binomial.Params{}, xerr
		}
		ints[i] = n
	}
	if !ints[4].IsUint64() {
		return binomial.Params{}, xerrors.ErrFieldOutOfRange.Wrapf("precision=%v", ints[4].Dec())
	}
	return binomial.Params{
		K:         ints[0],
		X:         ints[1],
		A:         ints[2],
		B:         ints[3],
		Precision: ints[4].Uint64(),
	}, nil
}

func toUint256(v interface{}) (*uint256.Int, xerrors.XError) {
	b, ok := v.(*big.Int)
	if !ok {
		return nil, xerrors.ErrMalformedInput.Wrapf("unexpected abi value %T", v)
	}
	n, overflow := uint256.FromBig(b)
	if overflow {
		return nil, xerrors.ErrFieldOutOfRange.Wrapf("%v", b)
	}
	return n, nil
}
