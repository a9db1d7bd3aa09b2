package account

import (
	"context"
	"time"

	"github.com/zlc-labs/lattice-go/hexutil"
	"github.com/zlc-labs/lattice-go/keypair"
	"github.com/zlc-labs/lattice-go/rpcclient"
	"github.com/zlc-labs/lattice-go/transaction"
)

// BuildFn assembles an unsigned transaction against the account's current
// tip. It must not sign — Submit signs after the tip is resolved, inside the
// account's exclusive section.
type BuildFn func(tip Tip) (*transaction.Transaction, error)

// Serializer is the per-account concurrency core (§4.9): it guarantees
// that, for a given (chain-id, account-address), transactions are built,
// signed, and submitted in strict sequence.
type Serializer struct {
	locks        *lockTable
	tips         *TipCache
	daemonTTL    *DaemonHashTable
	rpc          *rpcclient.Client
	cacheEnabled bool
}

// NewSerializer builds a Serializer over rpc, with the given tip-cache idle
// eviction window and per-chain daemon-hash TTL. cacheEnabled mirrors the
// facade's enable_cache option (§6): when false, every tip resolution goes
// straight to the RPC and successful submissions do not seed the cache. The
// per-chain daemon-hash table is used whether or not cacheEnabled is set.
func NewSerializer(rpc *rpcclient.Client, cacheEnabled bool, cacheIdleTTL, daemonHashTTL time.Duration) *Serializer {
	return &Serializer{
		locks:        newLockTable(),
		tips:         NewTipCache(cacheIdleTTL),
		daemonTTL:    NewDaemonHashTable(daemonHashTTL),
		rpc:          rpc,
		cacheEnabled: cacheEnabled,
	}
}

// Submit runs one exclusive build→sign→submit cycle for (chainID,
// ownerZltc): acquire the account mutex, resolve the tip (cache or RPC),
// invoke build, sign with kp, submit, and on success advance the cache
// (§2's data-flow, §4.9's state machine). The mutex is held for the entire
// span and released via defer regardless of outcome.
func (s *Serializer) Submit(ctx context.Context, chainID uint64, ownerZltc string, kp *keypair.KeyPair, build BuildFn) (string, error) {
	key := Key{ChainID: chainID, Address: ownerZltc}
	mu := s.locks.obtain(key)
	mu.Lock()
	defer mu.Unlock()

	tip, err := s.resolveTip(ctx, chainID, ownerZltc, key)
	if err != nil {
		return "", err
	}

	tx, err := build(tip)
	if err != nil {
		return "", err
	}

	if _, err := tx.Sign(kp); err != nil {
		return "", err
	}
	payload, err := tx.WirePayload()
	if err != nil {
		return "", err
	}

	hash, err := s.rpc.SendRawTransaction(ctx, payload)
	if err != nil {
		// Failed: do not advance the cache; evict so the next attempt
		// refetches from the RPC instead of risking a wedged cache.
		if s.cacheEnabled {
			s.tips.Invalidate(key)
		}
		return "", err
	}
	if !s.cacheEnabled {
		return hash, nil
	}

	hashBytes, err := hexutil.DecodeFixed(hash, 32)
	if err != nil {
		// The server returned a hash we can't parse as 32 bytes; the
		// submission itself succeeded, so surface the hash but evict the
		// cached tip rather than guess.
		s.tips.Invalidate(key)
		return hash, nil
	}
	var newHash [32]byte
	copy(newHash[:], hashBytes)
	s.tips.Advance(key, newHash)

	return hash, nil
}

// resolveTip returns the account's current tip, consulting the RPC on a
// cache miss and refreshing the chain's daemon-hash if its TTL has expired
// (§4.9 points 2-3).
func (s *Serializer) resolveTip(ctx context.Context, chainID uint64, ownerZltc string, key Key) (Tip, error) {
	var tip Tip
	var ok bool
	if s.cacheEnabled {
		tip, ok = s.tips.Get(key)
	}
	if !ok {
		lb, err := s.rpc.PendingTip(ctx, ownerZltc)
		if err != nil {
			return Tip{}, err
		}
		var h, dh [32]byte
		hb, err := hexutil.DecodeFixed(lb.Hash, 32)
		if err != nil {
			return Tip{}, err
		}
		copy(h[:], hb)
		dhb, err := hexutil.DecodeFixed(lb.DaemonHash, 32)
		if err != nil {
			return Tip{}, err
		}
		copy(dh[:], dhb)
		tip = Tip{Height: lb.Height, Hash: h, DaemonHash: dh}
		if s.cacheEnabled {
			s.tips.Set(key, tip)
		}
	}

	if dh, ok := s.daemonTTL.Get(chainID); ok {
		tip.DaemonHash = dh
		return tip, nil
	}

	db, err := s.rpc.CurrentDaemonBlock(ctx)
	if err != nil {
		return Tip{}, err
	}
	dhb, err := hexutil.DecodeFixed(db.Hash, 32)
	if err != nil {
		return Tip{}, err
	}
	var dh [32]byte
	copy(dh[:], dhb)
	tip.DaemonHash = dh
	s.daemonTTL.Set(chainID, dh)
	if s.cacheEnabled {
		s.tips.Set(key, tip)
	}
	return tip, nil
}
