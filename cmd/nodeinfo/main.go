// Command nodeinfo dials a node and prints the current daemon block and, if
// an address is given, that account's confirmed tip.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/zlc-labs/lattice-go/rpcclient"
)

func main() {
	endpoint := flag.String("endpoint", "http://127.0.0.1:8545", "JSON-RPC HTTP endpoint")
	chainID := flag.Uint64("chain-id", 0, "chain id (0 omits the ChainID header)")
	address := flag.String("address", "", "zltc address to report the confirmed tip for")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Parse()

	c, err := rpcclient.Dial(*endpoint, *chainID)
	if err != nil {
		log.Fatalf("dial %s: %v", *endpoint, err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := c.CurrentDaemonBlock(ctx)
	if err != nil {
		log.Fatalf("latc_getCurrentDBlock: %v", err)
	}
	log.Printf("daemon block: height=%d hash=%s", db.Height, db.Hash)

	if *address == "" {
		return
	}
	tip, err := c.CurrentTip(ctx, *address)
	if err != nil {
		log.Fatalf("latc_getCurrentTBDB: %v", err)
	}
	log.Printf("account tip: height=%d hash=%s daemonHash=%s", tip.Height, tip.Hash, tip.DaemonHash)
}
