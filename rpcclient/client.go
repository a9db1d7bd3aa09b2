// Package rpcclient implements the JSON-RPC-over-HTTP contract (§4.8) plus
// opaque WebSocket subscribe framing, wrapping go-ethereum's generic rpc
// client rather than its typed eth-namespace helpers, since this chain's
// method names and subscription channels don't follow the eth_* convention.
package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// DefaultConnectTimeout is the per-request timeout applied to each call when
// the caller does not supply a context with its own deadline (§5).
const DefaultConnectTimeout = 10 * time.Second

// RpcError wraps a server-returned {code, message} pair verbatim (§7).
type RpcError struct {
	Code    int
	Message string
}

func (e *RpcError) Error() string {
	return fmt.Sprintf("rpcclient: server error %d: %s", e.Code, e.Message)
}

// ErrTimeout is returned when a call exceeds its deadline (§5's RpcTimeout).
var ErrTimeout = errors.New("rpcclient: request timed out")

// Client is a JSON-RPC-over-HTTP connection carrying a fixed ChainID header
// (§4.8), omitted when zero.
type Client struct {
	rpc     *gethrpc.Client
	chainID uint64
}

// Dial connects to endpoint and, if chainID is non-zero, attaches a ChainID
// header to every subsequent request.
func Dial(endpoint string, chainID uint64) (*Client, error) {
	rc, err := gethrpc.DialHTTP(endpoint)
	if err != nil {
		return nil, err
	}
	c := &Client{rpc: rc, chainID: chainID}
	if chainID != 0 {
		rc.SetHeader("ChainID", strconv.FormatUint(chainID, 10))
	}
	return c, nil
}

// Close releases the underlying HTTP transport.
func (c *Client) Close() {
	c.rpc.Close()
}

func (c *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultConnectTimeout)
		defer cancel()
	}
	err := c.rpc.CallContext(ctx, result, method, args...)
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	if rpcErr, ok := err.(gethrpc.Error); ok {
		return &RpcError{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
	}
	return err
}

// CurrentDaemonBlock calls latc_getCurrentDBlock.
func (c *Client) CurrentDaemonBlock(ctx context.Context) (*DaemonBlock, error) {
	var out DaemonBlock
	if err := c.call(ctx, &out, "latc_getCurrentDBlock"); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentTip calls latc_getCurrentTBDB(address).
func (c *Client) CurrentTip(ctx context.Context, zltcAddress string) (*LatestBlock, error) {
	var out LatestBlock
	if err := c.call(ctx, &out, "latc_getCurrentTBDB", zltcAddress); err != nil {
		return nil, err
	}
	return &out, nil
}

// PendingTip calls latc_getPendingTBDB(address), the tip inclusive of
// pending account-chain extensions — the serializer's normal path (§9).
func (c *Client) PendingTip(ctx context.Context, zltcAddress string) (*LatestBlock, error) {
	var out LatestBlock
	if err := c.call(ctx, &out, "latc_getPendingTBDB", zltcAddress); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendRawTransaction calls wallet_sendRawTBlock(raw_tx) and returns the
// on-chain transaction hash.
func (c *Client) SendRawTransaction(ctx context.Context, raw interface{}) (string, error) {
	var hash string
	if err := c.call(ctx, &hash, "wallet_sendRawTBlock", raw); err != nil {
		return "", err
	}
	return hash, nil
}

// PreExecute calls wallet_preExecuteContract(raw_tx), returning a receipt
// without submitting the transaction.
func (c *Client) PreExecute(ctx context.Context, raw interface{}) (*Receipt, error) {
	var out Receipt
	if err := c.call(ctx, &out, "wallet_preExecuteContract", raw); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReceipt calls latc_getReceipt(hash).
func (c *Client) GetReceipt(ctx context.Context, hash string) (*Receipt, error) {
	var out Receipt
	if err := c.call(ctx, &out, "latc_getReceipt", hash); err != nil {
		return nil, err
	}
	return &out, nil
}
