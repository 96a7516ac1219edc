package jsonx

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

type amounts struct {
	Value *uint256.Int `json:"value"`
	Term  *uint256.Int `json:"term,omitempty"`
	Name  string       `json:"name"`
}

func TestMarshalUint256(t *testing.T) {
	v := &amounts{
		Value: uint256.MustFromDecimal("1320111004140914335"),
		Name:  "b",
	}
	bz, err := Marshal(v)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"value\": \"1320111004140914335\",\n  \"name\": \"b\"\n}", string(bz))

	back := &amounts{}
	require.NoError(t, Unmarshal(bz, back))
	require.Equal(t, v.Value.Dec(), back.Value.Dec())
	require.Nil(t, back.Term)
}

func TestUnmarshalUint256(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`{"value":"1000000000000000000"}`, "1000000000000000000"},
		{`{"value":1000000000000000000}`, "1000000000000000000"},
		{`{"value":"0x0de0b6b3a7640000"}`, "1000000000000000000"},
		{`{"value":"0x00"}`, "0"},
	}
	for _, c := range cases {
		v := &amounts{}
		require.NoError(t, Unmarshal([]byte(c.src), v), c.src)
		require.Equal(t, c.want, v.Value.Dec(), c.src)
	}

	require.Error(t, Unmarshal([]byte(`{"value":"-1"}`), &amounts{}))
	require.Error(t, Unmarshal([]byte(`{"value":true}`), &amounts{}))
}

func TestUnmarshalUint256Malformed(t *testing.T) {
	for _, src := range []string{
		`{"value":"0x"}`,
		`{"value":"forty-two"}`,
		`{"value":"1e18"}`,
		`{"value":"115792089237316195423570985008687907853269984665640564039457584007913129639936"}`,
	} {
		require.Error(t, Unmarshal([]byte(src), &amounts{}), src)
	}

	v := &amounts{}
	require.NoError(t, Unmarshal([]byte(`{"value":" 0X2A "}`), v))
	require.Equal(t, uint64(42), v.Value.Uint64())
}
