// Package client is the facade (§2, §6): it wires rpcclient, account, and
// transaction together into the two data flows the source exposes —
// submit (serialized, cached, chain-advancing) and pre-execute (one-shot,
// zero-state, no serialization).
package client

import (
	"context"
	"math/big"

	"github.com/zlc-labs/lattice-go/account"
	"github.com/zlc-labs/lattice-go/address"
	"github.com/zlc-labs/lattice-go/keypair"
	"github.com/zlc-labs/lattice-go/rpcclient"
	"github.com/zlc-labs/lattice-go/transaction"
)

// Client is the SDK's single entry point: dial once, then Submit or
// PreExecute repeatedly across any number of accounts.
type Client struct {
	rpc        *rpcclient.Client
	serializer *account.Serializer
	cfg        Config
	chainID    uint64
}

// New dials endpoint and returns a Client configured by opts over
// DefaultConfig (§6).
func New(endpoint string, chainID uint64, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	rc, err := rpcclient.Dial(endpoint, chainID)
	if err != nil {
		return nil, err
	}
	return &Client{
		rpc:        rc,
		serializer: account.NewSerializer(rc, cfg.EnableCache, cfg.CacheIdleTTL, cfg.DaemonHashTTL),
		cfg:        cfg,
		chainID:    chainID,
	}, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.rpc.Close()
}

// TxType aliases transaction.TxType so callers need only import this
// package for the common submit/pre-execute path.
type TxType = transaction.TxType

// The seven account-chain block kinds (§3), re-exported for convenience.
const (
	Genesis  = transaction.Genesis
	Create   = transaction.Create
	Send     = transaction.Send
	Receive  = transaction.Receive
	Contract = transaction.Contract
	Execute  = transaction.Execute
	Update   = transaction.Update
)

// TxRequest is the caller-supplied content of one account-chain transaction;
// everything chain-state-dependent (height, parent hash, daemon hash) is
// filled in by Submit or PreExecute.
type TxRequest struct {
	Type    transaction.TxType
	Linker  address.Raw
	Amount  *big.Int
	Joule   *big.Int
	Code    []byte
	Payload []byte
	Hub     [][32]byte
}

func (c *Client) newTx(req TxRequest, kp *keypair.KeyPair) *transaction.Transaction {
	tx := transaction.New(kp.Curve)
	tx.Type = req.Type
	tx.Linker = req.Linker
	tx.Amount = req.Amount
	tx.Joule = req.Joule
	tx.Code = req.Code
	tx.Payload = req.Payload
	tx.Hub = req.Hub
	tx.Owner = kp.Address()
	tx.ChainID = c.chainID
	tx.EnablePoW = c.cfg.EnablePoW
	tx.DifficultyBits = c.cfg.DifficultyBits
	return tx
}

// Submit builds, signs, and sends req as kp's next account-chain transaction
// (§2's first data-flow): the tip is resolved under the account's
// serializer, guaranteeing strict per-account ordering even under
// concurrent callers. timestamp is the caller-supplied Unix second the
// transaction records — the facade does not read the system clock.
func (c *Client) Submit(ctx context.Context, kp *keypair.KeyPair, req TxRequest, timestamp uint64) (string, error) {
	owner := kp.ZltcAddress()
	return c.serializer.Submit(ctx, c.chainID, owner, kp, func(tip account.Tip) (*transaction.Transaction, error) {
		tx := c.newTx(req, kp)
		tx.Height = tip.Height
		tx.ParentHash = tip.Hash
		tx.DaemonHash = tip.DaemonHash
		tx.Timestamp = timestamp
		return tx, nil
	})
}

// PreExecute assembles req as a zero-state transaction — zero height, zero
// parent hash, zero daemon hash (§2's second data-flow) — signs it, and
// submits it to the pre-execute endpoint, which evaluates it without
// advancing any chain. It bypasses the serializer entirely: no ordering
// guarantee is needed or given, since nothing is persisted.
func (c *Client) PreExecute(ctx context.Context, kp *keypair.KeyPair, req TxRequest, timestamp uint64) (*rpcclient.Receipt, error) {
	tx := c.newTx(req, kp)
	tx.Timestamp = timestamp
	if _, err := tx.Sign(kp); err != nil {
		return nil, err
	}
	payload, err := tx.WirePayload()
	if err != nil {
		return nil, err
	}
	return c.rpc.PreExecute(ctx, payload)
}

// GetReceipt retrieves a previously submitted or pre-executed transaction's
// receipt by hash.
func (c *Client) GetReceipt(ctx context.Context, hash string) (*rpcclient.Receipt, error) {
	return c.rpc.GetReceipt(ctx, hash)
}

// CurrentTip returns the confirmed (not pending) tip for address, bypassing
// the serializer's cache — a read-only query, not part of the build path.
func (c *Client) CurrentTip(ctx context.Context, zltcAddress string) (*rpcclient.LatestBlock, error) {
	return c.rpc.CurrentTip(ctx, zltcAddress)
}

// CurrentDaemonBlock returns the latest block of the shared consensus chain.
func (c *Client) CurrentDaemonBlock(ctx context.Context) (*rpcclient.DaemonBlock, error) {
	return c.rpc.CurrentDaemonBlock(ctx)
}

// SubscribeWS opens an opaque WebSocket subscription to one of
// "monitorData", "newTBlock", or "newDBlock" (§6). wsEndpoint is the
// ws(s):// URL; it is independent of the HTTP endpoint dialed by New, since
// the source exposes the two over separate listeners.
func SubscribeWS(wsEndpoint, channel string) (*rpcclient.Subscription, error) {
	return rpcclient.SubscribeWS(wsEndpoint, channel)
}
