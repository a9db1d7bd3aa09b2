package account

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/zlc-labs/lattice-go/curve"
	"github.com/zlc-labs/lattice-go/hexutil"
	"github.com/zlc-labs/lattice-go/keypair"
	"github.com/zlc-labs/lattice-go/rpcclient"
	"github.com/zlc-labs/lattice-go/transaction"
)

type chainState struct {
	mu     sync.Mutex
	height uint64
	hash   [32]byte
	seq    int
}

// newChainServer emulates just enough of the RPC surface (§4.8) to drive the
// serializer's ordering guarantee (§8 invariant 9): each submitted
// transaction's parentHash must equal the hash this server returned for the
// immediately preceding one.
func newChainServer(t *testing.T, state *chainState) *httptest.Server {
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
			state.mu.Lock()
			resp["result"] = rpcclient.LatestBlock{
				Height:     state.height,
				Hash:       hexutil.Encode(state.hash[:]),
				DaemonHash: hexutil.Encode(state.hash[:]),
			}
			state.mu.Unlock()

		case "latc_getCurrentDBlock":
			resp["result"] = rpcclient.DaemonBlock{Hash: hexutil.Encode(make([]byte, 32)), Height: 1}

		case "wallet_sendRawTBlock":
			var body struct {
				ParentHash string `json:"parentHash"`
			}
			if err := json.Unmarshal(req.Params[0], &body); err != nil {
				t.Fatalf("decode raw tx: %v", err)
			}
			state.mu.Lock()
			wantParent := hexutil.Encode(state.hash[:])
			if body.ParentHash != wantParent {
				state.mu.Unlock()
				t.Errorf("submission out of order: parentHash = %s, want %s", body.ParentHash, wantParent)
				resp["error"] = map[string]interface{}{"code": -32000, "message": "bad parent hash"}
				break
			}
			state.seq++
			next := sha256.Sum256([]byte(fmt.Sprintf("block-%d", state.seq)))
			state.hash = next
			state.height++
			state.mu.Unlock()
			resp["result"] = hexutil.Encode(next[:])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestSubmitOrdersTransactionsPerAccount(t *testing.T) {
	state := &chainState{}
	srv := newChainServer(t, state)
	defer srv.Close()

	rpc, err := rpcclient.Dial(srv.URL, 0)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer rpc.Close()

	s := NewSerializer(rpc, true, 5*time.Minute, 10*time.Second)

	kp, err := keypair.New(curve.International)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	owner := kp.ZltcAddress()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Submit(context.Background(), 1, owner, kp, func(tip Tip) (*transaction.Transaction, error) {
				tx := transaction.New(curve.International)
				tx.Height = tip.Height
				tx.ParentHash = tip.Hash
				tx.DaemonHash = tip.DaemonHash
				tx.Type = transaction.Send
				tx.Owner = kp.Address()
				tx.Timestamp = 1700000000
				tx.ChainID = 1
				return tx, nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	if state.height != n {
		t.Fatalf("final height = %d, want %d", state.height, n)
	}
}
