// Package address implements the bidirectional, checksummed mapping between the
// chain's human-readable "zltc_" address and the underlying 20-byte raw address
// (§4.1), plus the derivation of a raw address from a public key (§3).
package address

import (
	"errors"

	"github.com/btcsuite/btcutil/base58"

	"github.com/zlc-labs/lattice-go/curve"
	"github.com/zlc-labs/lattice-go/hexutil"
)

// Size is the length in bytes of a raw address.
const Size = 20

// versionByte is the fixed version prefix for zltc addresses (§3).
const versionByte = 0x01

// prefix is the human-readable zltc address marker.
const prefix = "zltc_"

// ErrInvalidAddress is returned for any zltc string that fails to decode,
// Base58-parse, or checksum-validate.
var ErrInvalidAddress = errors.New("address: invalid zltc address")

// Raw is a 20-byte address, computed fresh from a public key or parsed from a
// zltc string; it carries no identity beyond its bytes.
type Raw [Size]byte

// FromPublicKey derives the raw 20-byte address from an uncompressed public key
// under the given curve: let P be the last 64 bytes of the uncompressed key
// (the 0x04 prefix is stripped if present), raw = the last 20 bytes of
// hash(curve, P).
func FromPublicKey(c curve.Curve, pub []byte) (Raw, error) {
	p := pub
	if len(p) == 65 && p[0] == 0x04 {
		p = p[1:]
	}
	if len(p) != 64 {
		return Raw{}, errors.New("address: public key must be 64 bytes (uncompressed, no prefix) or 65 with 0x04 prefix")
	}
	digest := curve.Hash(c, p)
	var raw Raw
	copy(raw[:], digest[len(digest)-Size:])
	return raw, nil
}

// ToZltc renders raw as "zltc_" + Base58(0x01 || raw || checksum4), where
// checksum4 is the first 4 bytes of SHA256(SHA256(0x01 || raw)). Double-SHA-256
// is used unconditionally for the checksum, regardless of curve.
func (r Raw) ToZltc() string {
	payload := make([]byte, 0, 1+Size)
	payload = append(payload, versionByte)
	payload = append(payload, r[:]...)
	checksum := curve.DoubleSHA256(payload)
	full := append(payload, checksum[:4]...)
	return prefix + base58.Encode(full)
}

// Hex renders raw as a 0x-prefixed 20-byte hex string, for wire compatibility
// with Ethereum-style layouts.
func (r Raw) Hex() string {
	return hexutil.Encode(r[:])
}

// IsZero reports whether r is the all-zero address (used for the linker field
// on transactions that name no recipient contract).
func (r Raw) IsZero() bool {
	return r == Raw{}
}

// FromZltc parses a "zltc_..." string back to its raw 20 bytes, validating the
// version byte and checksum. Failure yields ErrInvalidAddress.
func FromZltc(s string) (Raw, error) {
	if len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return Raw{}, ErrInvalidAddress
	}
	decoded := base58.Decode(s[len(prefix):])
	if len(decoded) != 1+Size+4 {
		return Raw{}, ErrInvalidAddress
	}
	if decoded[0] != versionByte {
		return Raw{}, ErrInvalidAddress
	}
	payload := decoded[:1+Size]
	wantChecksum := curve.DoubleSHA256(payload)
	gotChecksum := decoded[1+Size:]
	for i := 0; i < 4; i++ {
		if gotChecksum[i] != wantChecksum[i] {
			return Raw{}, ErrInvalidAddress
		}
	}
	var raw Raw
	copy(raw[:], payload[1:])
	return raw, nil
}

// FromHex parses a raw 20-byte hex string (0x-optional) into a Raw address.
func FromHex(s string) (Raw, error) {
	b, err := hexutil.DecodeFixed(s, Size)
	if err != nil {
		return Raw{}, ErrInvalidAddress
	}
	var raw Raw
	copy(raw[:], b)
	return raw, nil
}

// FromText accepts either zltc or raw hex form and canonicalizes to Raw,
// matching the ABI codec's "address" argument conversion rule (§4.6).
func FromText(s string) (Raw, error) {
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return FromZltc(s)
	}
	return FromHex(s)
}
