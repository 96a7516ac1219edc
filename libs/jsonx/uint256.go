package jsonx

import (
	"unsafe"

	"github.com/beatoz/fxseries/types"
	"github.com/holiman/uint256"
	jsoniter "github.com/json-iterator/go"
)

const uint256TypeName = "uint256.Int"

func registerUint256() {
	jsoniter.RegisterTypeEncoderFunc(uint256TypeName, encodeUint256, isEmptyUint256)
	jsoniter.RegisterTypeDecoderFunc(uint256TypeName, decodeUint256)
}

func isEmptyUint256(ptr unsafe.Pointer) bool {
	return (*uint256.Int)(ptr).IsZero()
}

func encodeUint256(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*uint256.Int)(ptr).Dec())
}

// decodeUint256 accepts a decimal string, a 0x-prefixed hex string or a bare
// JSON number.
func decodeUint256(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	var s string
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		s = iter.ReadString()
	case jsoniter.NumberValue:
		s = iter.ReadNumber().String()
	default:
		iter.ReportError("decode uint256", "expected string or number")
		return
	}

	v, xerr := types.NumberFrom(s)
	if xerr != nil {
		iter.ReportError("decode uint256", xerr.Error())
		return
	}
	(*uint256.Int)(ptr).Set(v)
}
