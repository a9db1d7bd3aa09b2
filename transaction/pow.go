package transaction

import (
	"math"
	"math/big"

	"github.com/zlc-labs/lattice-go/curve"
)

// solveProofOfWork iterates Nonce from 1 upward, building the use_pow=true
// encoding for each candidate, until the resulting hash (as a big-endian
// unsigned integer) is <= 2^(256-DifficultyBits) (§4.7).
func (tx *Transaction) solveProofOfWork() error {
	threshold := new(big.Int).Lsh(big.NewInt(1), uint(256-tx.DifficultyBits))

	for nonce := uint32(1); ; nonce++ {
		tx.Nonce = nonce
		enc, err := tx.canonicalEncoding(true, false)
		if err != nil {
			return err
		}
		h := curve.Hash(tx.Curve, enc)
		if new(big.Int).SetBytes(h[:]).Cmp(threshold) <= 0 {
			return nil
		}
		if nonce == math.MaxUint32 {
			return ErrProofOfWorkExhausted
		}
	}
}
