// Package hexutil parses and renders the chain's hex-string wire values: inputs
// accept an optional "0x" prefix, outputs are always emitted lowercase with it.
// The actual alphabet/length validation and canonical rendering are delegated
// to go-ethereum's own hexutil package; this package only adapts its
// strict, prefix-required contract to this chain's more permissive one.
package hexutil

import (
	"errors"
	"strings"

	gethhexutil "github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrInvalidHex is returned when an input string is not well-formed hex: odd
// length, non-hex characters, or (depending on the call site) wrong decoded
// byte length.
var ErrInvalidHex = errors.New("hexutil: invalid hex string")

// Decode accepts both "0x"-prefixed and unprefixed, even-length, hex-alphabet
// input and returns the decoded bytes. Anything else is ErrInvalidHex.
//
// go-ethereum's hexutil.Decode requires the "0x" prefix and rejects the
// empty string outright, while this chain's wire fields are routinely given
// without the prefix (and some are legitimately empty). Decode normalizes
// both cases before handing the real hex-alphabet and length validation to
// go-ethereum's decoder.
func Decode(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	if s == "0x" || s == "0X" {
		return []byte{}, nil
	}
	b, err := gethhexutil.Decode(s)
	if err != nil {
		return nil, ErrInvalidHex
	}
	return b, nil
}

// DecodeFixed decodes s and requires the result be exactly n bytes long.
func DecodeFixed(s string, n int) ([]byte, error) {
	b, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, ErrInvalidHex
	}
	return b, nil
}

// Encode renders b as the canonical lowercase, "0x"-prefixed hex string.
func Encode(b []byte) string {
	return gethhexutil.Encode(b)
}

// Canonicalize re-renders a hex string in canonical form (lowercase, "0x"
// prefixed), failing if the input was not well-formed hex.
func Canonicalize(s string) (string, error) {
	b, err := Decode(s)
	if err != nil {
		return "", err
	}
	return Encode(b), nil
}
