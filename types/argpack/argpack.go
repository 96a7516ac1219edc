// Package argpack packs the five evaluation arguments into one 256-bit word.
//
// Layout, least significant bits first:
//
//	[0,16)    precision
//	[16,32)   b
//	[32,48)   a
//	[48,64)   x
//	[64,192)  k
//	[192,256) unused
package argpack

import (
	"github.com/beatoz/fxseries/binomial"
	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
)

const (
	precisionShift = 0
	bShift         = 16
	aShift         = 32
	xShift         = 48
	kShift         = 64

	smallBits = 16
	kBits     = 128
)

var (
	mask16  = uint256.NewInt(0xFFFF)
	mask128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), kBits), uint256.NewInt(1))
)

// Args are the unpacked fields of a word.
type Args struct {
	K         *uint256.Int
	X         uint16
	A         uint16
	B         uint16
	Precision uint16
}

// Params converts the fields into evaluation parameters.
func (args *Args) Params() binomial.Params {
	return binomial.Params{
		K:         args.K.Clone(),
		X:         uint256.NewInt(uint64(args.X)),
		A:         uint256.NewInt(uint64(args.A)),
		B:         uint256.NewInt(uint64(args.B)),
		Precision: uint64(args.Precision),
	}
}

func (args *Args) Equal(o *Args) bool {
	return args.K.Eq(o.K) && args.X == o.X && args.A == o.A && args.B == o.B && args.Precision == o.Precision
}

// Encode packs the arguments with k in the most significant field.
func Encode(k *uint256.Int, x, a, b, precision uint16) (*uint256.Int, xerrors.XError) {
	if k.BitLen() > kBits {
		return nil, xerrors.ErrFieldOutOfRange.Wrapf("k has %d bits, at most %d allowed", k.BitLen(), kBits)
	}
	word := new(uint256.Int).Lsh(k, kShift)
	word.Or(word, new(uint256.Int).Lsh(uint256.NewInt(uint64(x)), xShift))
	word.Or(word, new(uint256.Int).Lsh(uint256.NewInt(uint64(a)), aShift))
	word.Or(word, new(uint256.Int).Lsh(uint256.NewInt(uint64(b)), bShift))
	word.Or(word, uint256.NewInt(uint64(precision)))
	return word, nil
}

// EncodeParams packs p, rejecting any field wider than its slot.
func EncodeParams(p binomial.Params) (*uint256.Int, xerrors.XError) {
	if p.K == nil || p.X == nil || p.A == nil || p.B == nil {
		return nil, xerrors.ErrFieldOutOfRange.Wrapf("missing operand")
	}
	fields := []struct {
		name string
		v    *uint256.Int
	}{
		{"x", p.X},
		{"a", p.A},
		{"b", p.B},
		{"precision", uint256.NewInt(p.Precision)},
	}
	for _, f := range fields {
		if f.v.BitLen() > smallBits {
			return nil, xerrors.ErrFieldOutOfRange.Wrapf("%s=%v exceeds %d bits", f.name, f.v.Dec(), smallBits)
		}
	}
	return Encode(p.K, uint16(p.X.Uint64()), uint16(p.A.Uint64()), uint16(p.B.Uint64()), uint16(p.Precision))
}

// Decode extracts the fields by shifting and masking. The unused high bits
// are ignored.
func Decode(word *uint256.Int) *Args {
	field := func(shift uint) uint16 {
		v := new(uint256.Int).Rsh(word, shift)
		return uint16(v.And(v, mask16).Uint64())
	}
	k := new(uint256.Int).Rsh(word, kShift)
	return &Args{
		K:         k.And(k, mask128),
		X:         field(xShift),
		A:         field(aShift),
		B:         field(bShift),
		Precision: field(precisionShift),
	}
}

// Strict is Decode that additionally rejects words with unused bits set.
func Strict(word *uint256.Int) (*Args, xerrors.XError) {
	if word.BitLen() > kShift+kBits {
		return nil, xerrors.ErrMalformedWord.Wrapf("bits above %d are set", kShift+kBits)
	}
	return Decode(word), nil
}
