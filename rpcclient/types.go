package rpcclient

import "github.com/zlc-labs/lattice-go/hexutil"

// LatestBlock is the account-chain tip plus the daemon reference the next
// transaction will use (§3).
type LatestBlock struct {
	Height     uint64 `json:"height"`
	Hash       string `json:"hash"`
	DaemonHash string `json:"daemonHash"`
}

// DaemonBlock is the latest block of the shared consensus chain.
type DaemonBlock struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}

// Event is one decoded log entry attached to a Receipt (§6).
type Event struct {
	Address      string   `json:"address"`
	Topics       []string `json:"topics"`
	Data         string   `json:"data"`
	LogIndex     uint64   `json:"logIndex"`
	DBlockNumber uint64   `json:"dblockNumber"`
	Removed      bool     `json:"removed"`
	DataHex      string   `json:"dataHex"`
}

// DataBytes decodes the event's data field.
func (e Event) DataBytes() ([]byte, error) {
	return hexutil.Decode(e.Data)
}

// Receipt is the outcome of a submitted or pre-executed transaction (§6).
type Receipt struct {
	ContractAddress string  `json:"contractAddress"`
	ContractRet     string  `json:"contractRet"`
	DBlockHash      string  `json:"dblockHash"`
	DBlockNumber    uint64  `json:"dblockNumber"`
	JouleUsed       uint64  `json:"jouleUsed"`
	ReceiptIndex    uint64  `json:"receiptIndex"`
	Success         bool    `json:"success"`
	TBlockHash      string  `json:"tblockHash"`
	ConfirmTime     *uint64 `json:"confirmTime,omitempty"`
	Version         uint16  `json:"version"`
	Events          []Event `json:"events,omitempty"`
}
