// Package hdwallet implements BIP-32-style hardened/normal child derivation
// from a 64-byte seed and a derivation path, generalized across both of the
// chain's curve families (§4.4).
package hdwallet

import (
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"math/big"

	"github.com/zlc-labs/lattice-go/curve"
)

// ErrInvalidChildNumber is returned when an HMAC output's left half is >= the
// curve order, or reduces the child secret to zero — both vanishingly rare
// and, per BIP-32, handled by the caller skipping to the next index; this
// core surfaces the failure rather than silently retrying, since retry
// policy is the caller's decision.
var ErrInvalidChildNumber = errors.New("hdwallet: invalid child number")

// ExtendedKey is {secret key, 32-byte chain code} (§3).
type ExtendedKey struct {
	Secret    *big.Int
	ChainCode [32]byte
}

// masterSeedKey is the fixed HMAC key used to derive the master node from the
// seed, per BIP-32.
var masterSeedKey = []byte("Bitcoin seed")

// Derive walks seed (64 bytes, produced externally from mnemonic+passphrase)
// through path under the given curve and returns the resulting extended
// private key.
func Derive(seed []byte, path []Segment, c curve.Curve) (*ExtendedKey, error) {
	if len(seed) != 64 {
		return nil, errors.New("hdwallet: seed must be 64 bytes")
	}
	if !c.Valid() {
		return nil, errors.New("hdwallet: invalid curve")
	}

	master := hmacSHA512(masterSeedKey, seed)
	il, ir := master[:32], master[32:]

	n := c.Order()
	secret := new(big.Int).SetBytes(il)
	secret.Mod(secret, n)
	var chainCode [32]byte
	copy(chainCode[:], ir)

	key := &ExtendedKey{Secret: secret, ChainCode: chainCode}
	for _, seg := range path {
		var err error
		key, err = deriveChild(key, seg, c)
		if err != nil {
			return nil, err
		}
	}
	return key, nil
}

// deriveChild computes one BIP-32 step, adapted to the given curve's order
// and compressed public-key encoding.
func deriveChild(parent *ExtendedKey, seg Segment, c curve.Curve) (*ExtendedKey, error) {
	n := c.Order()
	ec := c.EC()

	var data []byte
	if seg.Hardened {
		data = make([]byte, 0, 1+32+4)
		data = append(data, 0x00)
		data = append(data, leftPad32(parent.Secret.Bytes())...)
	} else {
		x, y := ec.ScalarBaseMult(leftPad32(parent.Secret.Bytes()))
		compressed := elliptic.MarshalCompressed(ec, x, y)
		data = make([]byte, 0, len(compressed)+4)
		data = append(data, compressed...)
	}
	data = append(data, indexBytes(seg.ChildNumber())...)

	i := hmacSHA512(parent.ChainCode[:], data)
	il, ir := i[:32], i[32:]

	ilNum := new(big.Int).SetBytes(il)
	if ilNum.Cmp(n) >= 0 {
		return nil, ErrInvalidChildNumber
	}
	childSecret := new(big.Int).Add(ilNum, parent.Secret)
	childSecret.Mod(childSecret, n)
	if childSecret.Sign() == 0 {
		return nil, ErrInvalidChildNumber
	}

	var chainCode [32]byte
	copy(chainCode[:], ir)
	return &ExtendedKey{Secret: childSecret, ChainCode: chainCode}, nil
}

func hmacSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

func indexBytes(index uint32) []byte {
	return []byte{byte(index >> 24), byte(index >> 16), byte(index >> 8), byte(index)}
}

func leftPad32(b []byte) []byte {
	out := make([]byte, 32)
	if len(b) >= 32 {
		copy(out, b[len(b)-32:])
		return out
	}
	copy(out[32-len(b):], b)
	return out
}
