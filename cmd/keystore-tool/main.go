// Command keystore-tool encrypts a hex secret into a keystore file, or
// decrypts one back to its hex secret, given a passphrase.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/zlc-labs/lattice-go/curve"
	"github.com/zlc-labs/lattice-go/keystore"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: keystore-tool <encrypt|decrypt> [flags]")
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "encrypt":
		runEncrypt(args)
	case "decrypt":
		runDecrypt(args)
	default:
		log.Fatalf("unknown subcommand %q (want encrypt or decrypt)", cmd)
	}
}

func runEncrypt(args []string) {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	secretHex := fs.String("secret", "", "hex-encoded secret scalar (0x-optional)")
	pass := fs.String("pass", "", "keystore passphrase")
	national := fs.Bool("national", false, "use the national curve instead of international")
	out := fs.String("out", "keystore.json", "output file path")
	fs.Parse(args)

	if *secretHex == "" || *pass == "" {
		log.Fatal("-secret and -pass are required")
	}
	secret, err := hex.DecodeString(strings.TrimPrefix(*secretHex, "0x"))
	if err != nil {
		log.Fatalf("decode -secret: %v", err)
	}

	c := curve.International
	if *national {
		c = curve.National
	}

	fk, err := keystore.Encrypt(secret, *pass, c)
	if err != nil {
		log.Fatalf("encrypt: %v", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fk); err != nil {
		log.Fatalf("write: %v", err)
	}
	fmt.Printf("wrote %s for address %s\n", *out, fk.Address)
}

func runDecrypt(args []string) {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	in := fs.String("in", "keystore.json", "keystore file path")
	pass := fs.String("pass", "", "keystore passphrase")
	fs.Parse(args)

	if *pass == "" {
		log.Fatal("-pass is required")
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}
	var fk keystore.FileKey
	if err := json.Unmarshal(data, &fk); err != nil {
		log.Fatalf("parse %s: %v", *in, err)
	}
	kp, err := keystore.Decrypt(&fk, *pass)
	if err != nil {
		log.Fatalf("decrypt: %v", err)
	}
	fmt.Printf("address: %s\n", kp.ZltcAddress())
	fmt.Printf("secret:  0x%s\n", hex.EncodeToString(kp.SecretBytes()))
}
