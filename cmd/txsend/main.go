// Command txsend loads a keystore file, builds a send transaction to a
// linker address, and submits it through the facade.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"log"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/zlc-labs/lattice-go/address"
	"github.com/zlc-labs/lattice-go/client"
	"github.com/zlc-labs/lattice-go/keystore"
)

func main() {
	endpoint := flag.String("endpoint", "http://127.0.0.1:8545", "JSON-RPC HTTP endpoint")
	chainID := flag.Uint64("chain-id", 1, "chain id")
	keystorePath := flag.String("keystore", "", "keystore file for the sending account")
	pass := flag.String("pass", "", "keystore passphrase")
	to := flag.String("to", "", "recipient zltc address")
	amount := flag.String("amount", "0", "amount, as a base-10 integer string")
	payloadHex := flag.String("payload", "", "optional 0x-prefixed payload bytes")
	pow := flag.Bool("pow", false, "enable proof-of-work on the submitted transaction")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	flag.Parse()

	if *keystorePath == "" || *pass == "" || *to == "" {
		log.Fatal("-keystore, -pass, and -to are required")
	}

	data, err := os.ReadFile(*keystorePath)
	if err != nil {
		log.Fatalf("read %s: %v", *keystorePath, err)
	}
	var fk keystore.FileKey
	if err := json.Unmarshal(data, &fk); err != nil {
		log.Fatalf("parse %s: %v", *keystorePath, err)
	}
	kp, err := keystore.Decrypt(&fk, *pass)
	if err != nil {
		log.Fatalf("decrypt keystore: %v", err)
	}

	linker, err := address.FromZltc(*to)
	if err != nil {
		log.Fatalf("parse -to: %v", err)
	}
	amt, ok := new(big.Int).SetString(*amount, 10)
	if !ok {
		log.Fatalf("invalid -amount %q", *amount)
	}
	var payload []byte
	if *payloadHex != "" {
		payload, err = hex.DecodeString(strings.TrimPrefix(*payloadHex, "0x"))
		if err != nil {
			log.Fatalf("invalid -payload: %v", err)
		}
	}

	c, err := client.New(*endpoint, *chainID, client.WithPoW(*pow))
	if err != nil {
		log.Fatalf("dial %s: %v", *endpoint, err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	hash, err := c.Submit(ctx, kp, client.TxRequest{
		Type:    client.Send,
		Linker:  linker,
		Amount:  amt,
		Joule:   big.NewInt(0),
		Payload: payload,
	}, uint64(time.Now().Unix()))
	if err != nil {
		log.Fatalf("submit: %v", err)
	}
	log.Printf("submitted: %s", hash)
}
