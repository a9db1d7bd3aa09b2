// Command keygen generates a new keypair on either curve and prints its
// secret, public key, and zltc address. With -out it also writes an
// encrypted keystore file instead of printing the raw secret.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/zlc-labs/lattice-go/curve"
	"github.com/zlc-labs/lattice-go/keypair"
	"github.com/zlc-labs/lattice-go/keystore"
)

func main() {
	national := flag.Bool("national", false, "use the national (sm2p256v1/SM3) curve instead of international (secp256k1/SHA-256)")
	out := flag.String("out", "", "write an encrypted keystore file here instead of printing the secret")
	pass := flag.String("pass", "", "keystore passphrase (required with -out)")
	flag.Parse()

	c := curve.International
	if *national {
		c = curve.National
	}

	kp, err := keypair.New(c)
	if err != nil {
		log.Fatalf("generate key: %v", err)
	}

	fmt.Printf("curve:   %s\n", c)
	fmt.Printf("address: %s\n", kp.ZltcAddress())
	fmt.Printf("pubkey:  0x%s\n", hex.EncodeToString(kp.Public))

	if *out == "" {
		fmt.Printf("secret:  0x%s\n", hex.EncodeToString(kp.SecretBytes()))
		return
	}
	if *pass == "" {
		log.Fatal("-pass is required with -out")
	}

	fk, err := keystore.Encrypt(kp.SecretBytes(), *pass, c)
	if err != nil {
		log.Fatalf("encrypt keystore: %v", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fk); err != nil {
		log.Fatalf("write keystore: %v", err)
	}
	fmt.Printf("keystore written to %s\n", *out)
}
