// Package curve defines the two elliptic-curve families the chain supports and
// dispatches curve-keyed operations (order, elliptic.Curve, digest algorithm) to them.
package curve

import (
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tjfoc/gmsm/sm2"
	"github.com/tjfoc/gmsm/sm3"
)

// Curve tags the elliptic-curve family a cryptographic operation is parameterized on.
// Mixing curves within a single operation is never valid; every constructor below
// takes a Curve explicitly rather than relying on a package-level default.
type Curve uint8

const (
	// International is the secp256k1-family curve, hashed with SHA-256.
	International Curve = iota
	// National is the sm2p256v1-family curve, hashed with SM3.
	National
)

func (c Curve) String() string {
	switch c {
	case International:
		return "international"
	case National:
		return "national"
	default:
		return fmt.Sprintf("curve(%d)", uint8(c))
	}
}

// Valid reports whether c is one of the two defined variants.
func (c Curve) Valid() bool {
	return c == International || c == National
}

// EC returns the stdlib-compatible elliptic curve backing c. Both go-ethereum's
// S256() and gmsm's P256Sm2() implement crypto/elliptic.Curve, which lets HD
// derivation and point encoding in this module stay curve-generic.
func (c Curve) EC() elliptic.Curve {
	switch c {
	case International:
		return crypto.S256()
	case National:
		return sm2.P256Sm2()
	default:
		panic("curve: EC called with invalid curve tag " + c.String())
	}
}

// Order returns the order n of the curve's base point.
func (c Curve) Order() *big.Int {
	return c.EC().Params().N
}

// Hash computes the curve-keyed digest used everywhere a "hash(curve, bytes)"
// call is specified: SHA-256 for International, SM3 for National. Every hashing
// call-site in the core — transaction hashing, keystore MAC, code-hash — goes
// through this function.
func Hash(c Curve, data []byte) [32]byte {
	switch c {
	case International:
		return sha256.Sum256(data)
	case National:
		var out [32]byte
		copy(out[:], sm3.Sm3Sum(data))
		return out
	default:
		panic("curve: Hash called with invalid curve tag " + c.String())
	}
}

// DoubleSHA256 is SHA-256 applied twice, used unconditionally (for both curves)
// when computing the address checksum (§4.1).
func DoubleSHA256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}
