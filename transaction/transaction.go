// Package transaction implements the transaction model, its canonical RLP
// encoding, and the build→encode→hash→sign pipeline (§4.7).
package transaction

import (
	"errors"
	"math/big"

	"github.com/zlc-labs/lattice-go/address"
	"github.com/zlc-labs/lattice-go/curve"
	"github.com/zlc-labs/lattice-go/keypair"
)

// DefaultDifficultyBits is the difficulty the source defaults to, even
// though proof-of-work itself defaults to disabled (§9).
const DefaultDifficultyBits = 12

// ErrCurveMismatch is returned when a signing KeyPair's curve does not match
// the transaction's curve.
var ErrCurveMismatch = errors.New("transaction: keypair curve does not match transaction curve")

// ErrProofOfWorkExhausted is returned if a 32-bit nonce search exhausts its
// space without meeting the difficulty threshold — astronomically unlikely
// at the default 12-bit difficulty, but checked rather than looping forever.
var ErrProofOfWorkExhausted = errors.New("transaction: proof-of-work nonce search exhausted")

var zeroHash32 [32]byte

// Transaction holds the fields of one account-chain block, in canonical
// order (§3, §4.7). CodeHash is populated as a side effect of encoding, not
// set directly by callers.
type Transaction struct {
	Height     uint64
	Type       TxType
	ParentHash [32]byte
	Hub        [][32]byte
	DaemonHash [32]byte
	CodeHash   [32]byte
	Owner      address.Raw
	Linker     address.Raw
	Amount     *big.Int
	Joule      *big.Int
	Code       []byte
	Payload    []byte
	Timestamp  uint64
	ChainID    uint64
	Version    TxVersion

	EnablePoW      bool
	DifficultyBits uint32
	Nonce          uint32

	Curve     curve.Curve
	Signature string
}

// New builds an empty Transaction for c with proof-of-work disabled and the
// latest protocol version, ready for the caller to fill in the remaining
// fields before signing.
func New(c curve.Curve) *Transaction {
	return &Transaction{
		Curve:          c,
		Version:        VersionLatest,
		DifficultyBits: DefaultDifficultyBits,
	}
}

// Sign runs the full pipeline: solve proof-of-work if enabled, build the
// signing encoding, hash it under the transaction's curve, and sign. The
// resulting signature is stored on the transaction and also returned.
func (tx *Transaction) Sign(kp *keypair.KeyPair) (string, error) {
	if kp.Curve != tx.Curve {
		return "", ErrCurveMismatch
	}
	if tx.EnablePoW {
		if err := tx.solveProofOfWork(); err != nil {
			return "", err
		}
	}
	enc, err := tx.canonicalEncoding(tx.EnablePoW, true)
	if err != nil {
		return "", err
	}
	h := curve.Hash(tx.Curve, enc)
	sigHex, err := kp.Sign(h)
	if err != nil {
		return "", err
	}
	tx.Signature = sigHex
	return sigHex, nil
}

// Hash returns hash(curve, signing_encoding) without signing — useful for
// callers that want the digest a signature would be produced over.
func (tx *Transaction) Hash() ([32]byte, error) {
	enc, err := tx.canonicalEncoding(tx.EnablePoW, true)
	if err != nil {
		return [32]byte{}, err
	}
	return curve.Hash(tx.Curve, enc), nil
}
