package transaction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/zlc-labs/lattice-go/curve"
)

// canonicalEncoding renders the RLP list per §4.7. usePow controls whether
// fields 11/12 (difficulty, proof_of_work) carry real values or encode
// empty; includeSigningPlaceholders appends the two trailing empty fields
// the signing digest is computed over.
//
// CodeHash is recomputed here as a side effect: hash(curve, code) if Code is
// present, otherwise the zero hash, per §4.7's "populated by this encoding
// pass" rule.
func (tx *Transaction) canonicalEncoding(usePow bool, includeSigningPlaceholders bool) ([]byte, error) {
	codeHash := zeroHash32
	if len(tx.Code) > 0 {
		codeHash = curve.Hash(tx.Curve, tx.Code)
	}
	tx.CodeHash = codeHash

	hub := make([][]byte, len(tx.Hub))
	for i, h := range tx.Hub {
		hub[i] = h[:]
	}

	var difficultyBytes, powBytes []byte
	if usePow {
		difficultyBytes = big.NewInt(int64(tx.DifficultyBits)).Bytes()
		powBytes = big.NewInt(int64(tx.Nonce)).Bytes()
	}

	items := []interface{}{
		new(big.Int).SetUint64(tx.Height),
		uint8(tx.Type),
		tx.ParentHash[:],
		hub,
		tx.DaemonHash[:],
		codeHash[:],
		tx.Owner[:],
		tx.Linker[:],
		nonNilBigInt(tx.Amount),
		nonNilBigInt(tx.Joule),
		difficultyBytes,
		powBytes,
		nonNilBytes(tx.Payload),
		new(big.Int).SetUint64(tx.Timestamp),
		new(big.Int).SetUint64(tx.ChainID),
	}
	if includeSigningPlaceholders {
		items = append(items, []byte{}, []byte{})
	}

	return rlp.EncodeToBytes(items)
}

func nonNilBigInt(n *big.Int) *big.Int {
	if n == nil {
		return new(big.Int)
	}
	return n
}

func nonNilBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
