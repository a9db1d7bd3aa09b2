package transaction

import (
	"fmt"
	"math/big"

	"github.com/zlc-labs/lattice-go/hexutil"
)

// WirePayload is the submission-body shape the server expects (§6): the
// same fields as Transaction, renamed to the server's casing and rendered as
// strings/hex.
type WirePayload struct {
	Number      uint64   `json:"number"`
	ParentHash  string   `json:"parentHash"`
	DaemonHash  string   `json:"daemonHash"`
	Timestamp   uint64   `json:"timestamp"`
	Owner       string   `json:"owner"`
	Linker      string   `json:"linker"`
	Type        string   `json:"type"`
	Hub         []string `json:"hub"`
	Code        string   `json:"code"`
	CodeHash    string   `json:"codeHash"`
	Payload     string   `json:"payload"`
	Amount      string   `json:"amount"`
	Joule       string   `json:"joule"`
	Sign        string   `json:"sign"`
	ProofOfWork string   `json:"proofOfWork"`
	Version     uint16   `json:"version"`
	Difficulty  uint32   `json:"difficulty"`
}

// WirePayload renders tx for submission. It requires CodeHash to already be
// populated (i.e. Sign or Hash has run) and Signature to be set.
func (tx *Transaction) WirePayload() (*WirePayload, error) {
	if !tx.Type.Valid() {
		return nil, fmt.Errorf("transaction: invalid tx type %d", tx.Type)
	}
	if tx.Signature == "" {
		return nil, fmt.Errorf("transaction: cannot render wire payload before signing")
	}

	hub := make([]string, len(tx.Hub))
	for i, h := range tx.Hub {
		hub[i] = hexutil.Encode(h[:])
	}

	proofOfWork := "0x"
	if tx.EnablePoW {
		proofOfWork = hexutil.Encode(big.NewInt(int64(tx.Nonce)).Bytes())
	}

	code := "0x"
	if len(tx.Code) > 0 {
		code = hexutil.Encode(tx.Code)
	}
	payload := "0x"
	if len(tx.Payload) > 0 {
		payload = hexutil.Encode(tx.Payload)
	}

	return &WirePayload{
		Number:      tx.Height,
		ParentHash:  hexutil.Encode(tx.ParentHash[:]),
		DaemonHash:  hexutil.Encode(tx.DaemonHash[:]),
		Timestamp:   tx.Timestamp,
		Owner:       tx.Owner.ToZltc(),
		Linker:      tx.Linker.ToZltc(),
		Type:        tx.Type.String(),
		Hub:         hub,
		Code:        code,
		CodeHash:    hexutil.Encode(tx.CodeHash[:]),
		Payload:     payload,
		Amount:      bigOrZero(tx.Amount).String(),
		Joule:       bigOrZero(tx.Joule).String(),
		Sign:        tx.Signature,
		ProofOfWork: proofOfWork,
		Version:     uint16(tx.Version),
		Difficulty:  tx.DifficultyBits,
	}, nil
}

func bigOrZero(n *big.Int) *big.Int {
	if n == nil {
		return new(big.Int)
	}
	return n
}
