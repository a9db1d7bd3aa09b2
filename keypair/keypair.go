// Package keypair implements curve-parameterized keypair generation, secret
// derivation, signing, verification, and address derivation (§4.3).
package keypair

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/zlc-labs/lattice-go/address"
	"github.com/zlc-labs/lattice-go/curve"
)

// ErrInvalidSecret is returned when a secret scalar is zero or not less than
// the curve order.
var ErrInvalidSecret = errors.New("keypair: secret out of range [1, n-1]")

// KeyPair is {public key (65 bytes, uncompressed, 0x04 prefix), secret key
// (big-unsigned integer, 1 <= secret < curve order), curve}.
type KeyPair struct {
	Curve  curve.Curve
	Public []byte // 65 bytes: 0x04 || X(32) || Y(32)
	secret *big.Int
}

// New generates a cryptographically random secret in [1, n-1] and derives the
// matching uncompressed public key.
func New(c curve.Curve) (*KeyPair, error) {
	if !c.Valid() {
		return nil, errors.New("keypair: invalid curve")
	}
	n := c.Order()
	for {
		k, err := rand.Int(rand.Reader, n)
		if err != nil {
			return nil, err
		}
		if k.Sign() == 0 {
			continue
		}
		return FromSecret(leftPad32(k.Bytes()), c)
	}
}

// FromSecret builds a KeyPair from a big-endian secret scalar. It fails with
// ErrInvalidSecret if the scalar is 0 or >= the curve order n.
func FromSecret(secret []byte, c curve.Curve) (*KeyPair, error) {
	if !c.Valid() {
		return nil, errors.New("keypair: invalid curve")
	}
	d := new(big.Int).SetBytes(secret)
	n := c.Order()
	if d.Sign() == 0 || d.Cmp(n) >= 0 {
		return nil, ErrInvalidSecret
	}
	ec := c.EC()
	x, y := ec.ScalarBaseMult(leftPad32(d.Bytes()))
	pub := make([]byte, 65)
	pub[0] = 0x04
	copy(pub[1:33], leftPad32(x.Bytes()))
	copy(pub[33:65], leftPad32(y.Bytes()))
	return &KeyPair{Curve: c, Public: pub, secret: d}, nil
}

// SecretBytes returns a copy of the secret scalar, left-padded to 32 bytes.
// Callers that no longer need the value should call Destroy to zero the
// KeyPair's own copy; the returned copy is the caller's responsibility.
func (kp *KeyPair) SecretBytes() []byte {
	return leftPad32(kp.secret.Bytes())
}

// Destroy zeroes the in-memory secret. The KeyPair must not be used after
// calling Destroy.
func (kp *KeyPair) Destroy() {
	if kp.secret != nil {
		kp.secret.SetInt64(0)
	}
}

// Address derives the 20-byte raw address from the public key (§4.1).
func (kp *KeyPair) Address() address.Raw {
	raw, err := address.FromPublicKey(kp.Curve, kp.Public)
	if err != nil {
		// Public is always well-formed (produced by ScalarBaseMult above), so
		// this would indicate an invariant violation, not caller error.
		panic("keypair: invariant violated deriving address: " + err.Error())
	}
	return raw
}

// ZltcAddress is a convenience for Address().ToZltc().
func (kp *KeyPair) ZltcAddress() string {
	return kp.Address().ToZltc()
}

// Sign produces the curve-specific signature over a 32-byte pre-hashed digest,
// rendered as a lowercase 0x-prefixed hex string (§4.3).
func (kp *KeyPair) Sign(digest [32]byte) (string, error) {
	switch kp.Curve {
	case curve.International:
		return signInternational(kp.secret, digest)
	case curve.National:
		return signNational(kp.secret, kp.Public, digest)
	default:
		return "", errors.New("keypair: invalid curve")
	}
}

// Verify checks a hex signature against a 32-byte digest and an uncompressed
// public key, under the given curve.
func Verify(c curve.Curve, digest [32]byte, signatureHex string, pub []byte) (bool, error) {
	switch c {
	case curve.International:
		return verifyInternational(digest, signatureHex, pub)
	case curve.National:
		return verifyNational(digest, signatureHex, pub)
	default:
		return false, errors.New("keypair: invalid curve")
	}
}

// leftPad32 left-pads b with zero bytes to a 32-byte big-endian field,
// trimming from the left if b is (unexpectedly) longer.
func leftPad32(b []byte) []byte {
	out := make([]byte, 32)
	if len(b) >= 32 {
		copy(out, b[len(b)-32:])
		return out
	}
	copy(out[32-len(b):], b)
	return out
}
