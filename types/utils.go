package types

import (
	"strings"

	"github.com/beatoz/fxseries/types/xerrors"
	"github.com/holiman/uint256"
)

var (
	digitTab [256]byte
	hexTab   [256]byte
)

func init() {
	for c := byte('0'); c <= '9'; c++ {
		digitTab[c] = 1
		hexTab[c] = 1
	}
	for c := byte('a'); c <= 'f'; c++ {
		hexTab[c] = 1
	}
	for c := byte('A'); c <= 'F'; c++ {
		hexTab[c] = 1
	}
}

// IsHexString reports whether s is "0x" followed by at least one hex digit.
// Unlike byte strings, an odd number of digits is allowed.
func IsHexString(s string) bool {
	if len(s) < 3 || !(strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		return false
	}
	for i := 2; i < len(s); i++ {
		if hexTab[s[i]] == 0 {
			return false
		}
	}
	return true
}

// IsNumericString returns true if s contains only digits [0-9].
// An empty string returns false.
func IsNumericString(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if digitTab[s[i]] == 0 {
			return false
		}
	}
	return true
}

// NumberFrom parses a decimal or 0x-prefixed hex string into a 256-bit integer.
func NumberFrom(s string) (*uint256.Int, xerrors.XError) {
	s = strings.TrimSpace(s)
	switch {
	case IsHexString(s):
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" {
			return uint256.NewInt(0), nil
		}
		v, err := uint256.FromHex("0x" + digits)
		if err != nil {
			return nil, xerrors.ErrInvalidParams.Wrapf("%q: %v", s, err)
		}
		return v, nil
	case IsNumericString(s):
		v, err := uint256.FromDecimal(s)
		if err != nil {
			return nil, xerrors.ErrInvalidParams.Wrapf("%q: %v", s, err)
		}
		return v, nil
	default:
		return nil, xerrors.ErrInvalidParams.Wrapf("not a number: %q", s)
	}
}
