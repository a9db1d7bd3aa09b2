package client

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zlc-labs/lattice-go/curve"
	"github.com/zlc-labs/lattice-go/hexutil"
	"github.com/zlc-labs/lattice-go/keypair"
	"github.com/zlc-labs/lattice-go/rpcclient"
)

func newFacadeServer(t *testing.T, onSend func(raw json.RawMessage)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int               `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		resp := map[string]interface{}{"id": req.ID, "jsonrpc": "2.0"}

		switch req.Method {
		case "latc_getPendingTBDB":
			resp["result"] = rpcclient.LatestBlock{
				Height:     0,
				Hash:       hexutil.Encode(make([]byte, 32)),
				DaemonHash: hexutil.Encode(make([]byte, 32)),
			}
		case "latc_getCurrentDBlock":
			resp["result"] = rpcclient.DaemonBlock{Hash: hexutil.Encode(make([]byte, 32)), Height: 1}
		case "wallet_sendRawTBlock":
			if onSend != nil {
				onSend(req.Params[0])
			}
			hash := [32]byte{0xaa}
			resp["result"] = hexutil.Encode(hash[:])
		case "wallet_preExecuteContract":
			if onSend != nil {
				onSend(req.Params[0])
			}
			resp["result"] = rpcclient.Receipt{Success: true, ContractRet: "0x"}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestSubmitSendsSignedTransaction(t *testing.T) {
	var gotRaw json.RawMessage
	srv := newFacadeServer(t, func(raw json.RawMessage) { gotRaw = raw })
	defer srv.Close()

	c, err := New(srv.URL, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	kp, err := keypair.New(curve.International)
	if err != nil {
		t.Fatalf("New keypair: %v", err)
	}

	hash, err := c.Submit(context.Background(), kp, TxRequest{
		Type:   Send,
		Amount: big.NewInt(100),
		Joule:  big.NewInt(0),
	}, 1700000000)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if hash == "" {
		t.Fatal("Submit returned empty hash")
	}

	var body struct {
		ParentHash string `json:"parentHash"`
		Number     uint64 `json:"number"`
		Sign       string `json:"sign"`
	}
	if err := json.Unmarshal(gotRaw, &body); err != nil {
		t.Fatalf("decode submitted body: %v", err)
	}
	if body.Number != 0 {
		t.Errorf("Number = %d, want 0", body.Number)
	}
	if body.Sign == "" {
		t.Error("submitted body has no signature")
	}
}

func TestPreExecuteUsesZeroState(t *testing.T) {
	var gotRaw json.RawMessage
	srv := newFacadeServer(t, func(raw json.RawMessage) { gotRaw = raw })
	defer srv.Close()

	c, err := New(srv.URL, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	kp, err := keypair.New(curve.International)
	if err != nil {
		t.Fatalf("New keypair: %v", err)
	}

	receipt, err := c.PreExecute(context.Background(), kp, TxRequest{
		Type:    Execute,
		Payload: []byte{0x01, 0x02},
	}, 1700000000)
	if err != nil {
		t.Fatalf("PreExecute: %v", err)
	}
	if !receipt.Success {
		t.Error("receipt.Success = false, want true")
	}

	var body struct {
		ParentHash string `json:"parentHash"`
		DaemonHash string `json:"daemonHash"`
		Number     uint64 `json:"number"`
	}
	if err := json.Unmarshal(gotRaw, &body); err != nil {
		t.Fatalf("decode pre-executed body: %v", err)
	}
	zero := hexutil.Encode(make([]byte, 32))
	if body.ParentHash != zero {
		t.Errorf("ParentHash = %s, want zero hash", body.ParentHash)
	}
	if body.DaemonHash != zero {
		t.Errorf("DaemonHash = %s, want zero hash", body.DaemonHash)
	}
	if body.Number != 0 {
		t.Errorf("Number = %d, want 0", body.Number)
	}
}

func TestWithCacheFalseSkipsCaching(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int    `json:"id"`
			Method string `json:"method"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		resp := map[string]interface{}{"id": req.ID, "jsonrpc": "2.0"}
		switch req.Method {
		case "latc_getPendingTBDB":
			calls++
			resp["result"] = rpcclient.LatestBlock{
				Hash:       hexutil.Encode(make([]byte, 32)),
				DaemonHash: hexutil.Encode(make([]byte, 32)),
			}
		case "latc_getCurrentDBlock":
			resp["result"] = rpcclient.DaemonBlock{Hash: hexutil.Encode(make([]byte, 32))}
		case "wallet_sendRawTBlock":
			var h [32]byte
			resp["result"] = hexutil.Encode(h[:])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := New(srv.URL, 1, WithCache(false))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	kp, err := keypair.New(curve.International)
	if err != nil {
		t.Fatalf("New keypair: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := c.Submit(context.Background(), kp, TxRequest{Type: Send, Amount: big.NewInt(1), Joule: big.NewInt(0)}, 1700000000); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}
	if calls != 3 {
		t.Errorf("latc_getPendingTBDB called %d times, want 3 (cache disabled)", calls)
	}
}
