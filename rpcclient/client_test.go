package rpcclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type jsonrpcRequest struct {
	ID     int               `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func newTestServer(t *testing.T, handle func(method string) (result interface{}, rpcErr *struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
})) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req jsonrpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		result, rpcErr := handle(req.Method)
		resp := map[string]interface{}{
			"id":      req.ID,
			"jsonrpc": "2.0",
		}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
}

func TestCurrentDaemonBlock(t *testing.T) {
	srv := newTestServer(t, func(method string) (interface{}, *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}) {
		if method != "latc_getCurrentDBlock" {
			t.Fatalf("unexpected method %q", method)
		}
		return DaemonBlock{Hash: "0xabc", Height: 42}, nil
	})
	defer srv.Close()

	c, err := Dial(srv.URL, 7)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	block, err := c.CurrentDaemonBlock(context.Background())
	if err != nil {
		t.Fatalf("CurrentDaemonBlock: %v", err)
	}
	if block.Height != 42 || block.Hash != "0xabc" {
		t.Fatalf("CurrentDaemonBlock = %+v, unexpected", block)
	}
}

func TestServerErrorSurfaced(t *testing.T) {
	srv := newTestServer(t, func(method string) (interface{}, *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}) {
		return nil, &struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}{Code: -32000, Message: "boom"}
	})
	defer srv.Close()

	c, err := Dial(srv.URL, 0)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	_, err = c.CurrentDaemonBlock(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	rpcErr, ok := err.(*RpcError)
	if !ok {
		t.Fatalf("error type = %T, want *RpcError", err)
	}
	if rpcErr.Code != -32000 {
		t.Fatalf("Code = %d, want -32000", rpcErr.Code)
	}
}

func TestSendRawTransaction(t *testing.T) {
	srv := newTestServer(t, func(method string) (interface{}, *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}) {
		if method != "wallet_sendRawTBlock" {
			t.Fatalf("unexpected method %q", method)
		}
		return "0xdeadbeef", nil
	})
	defer srv.Close()

	c, err := Dial(srv.URL, 0)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	hash, err := c.SendRawTransaction(context.Background(), map[string]string{"owner": "zltc_x"})
	if err != nil {
		t.Fatalf("SendRawTransaction: %v", err)
	}
	if hash != "0xdeadbeef" {
		t.Fatalf("hash = %q, want 0xdeadbeef", hash)
	}
}
