// Package keystore implements password-encrypted storage of a secret key
// (§4.5): scrypt key derivation, AES-128-CTR encryption, and a curve-keyed
// MAC, mirroring the shape (if not the exact field names) of go-ethereum's
// own keystore format.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"

	"github.com/zlc-labs/lattice-go/curve"
	"github.com/zlc-labs/lattice-go/keypair"
)

// ErrWrongPassphrase is returned when the recomputed MAC does not match the
// stored one.
var ErrWrongPassphrase = errors.New("keystore: wrong passphrase or corrupt keystore")

// ErrUnsupported is returned for a KDF or cipher the decoder does not
// recognize.
var ErrUnsupported = errors.New("keystore: unsupported kdf or cipher")

const (
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptDKLen  = 32
	saltLen      = 32
	ivLen        = 16
	cipherName   = "aes-128-ctr"
	kdfName      = "scrypt"
)

// CipherParams holds the AES parameters block.
type CipherParams struct {
	Algorithm string `json:"algorithm"`
	IV        string `json:"iv"`
}

// KDFParams holds the scrypt parameters block.
type KDFParams struct {
	KDF   string `json:"kdf"`
	DKLen int    `json:"dklen"`
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
	Salt  string `json:"salt"`
}

// FileKey is the persisted, password-encrypted secret key record (§3, §4.5).
type FileKey struct {
	UUID       string       `json:"uuid"`
	Address    string       `json:"address"`
	Cipher     CipherParams `json:"cipher"`
	KDFParams  KDFParams    `json:"kdfparams"`
	CipherText string       `json:"ciphertext"`
	MAC        string       `json:"mac"`
	IsGM       bool         `json:"isGM"`
}

// Encrypt derives a key from passphrase via scrypt, encrypts secret under
// AES-128-CTR, and binds a curve-keyed MAC over mac_key||cipher_text (§4.5).
func Encrypt(secret []byte, passphrase string, c curve.Curve) (*FileKey, error) {
	kp, err := keypair.FromSecret(secret, c)
	if err != nil {
		return nil, err
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	iv := make([]byte, ivLen)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}

	dk, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, scryptDKLen)
	if err != nil {
		return nil, err
	}
	aesKey, macKey := dk[:16], dk[16:]

	cipherText, err := aesCTR(aesKey, iv, secret)
	if err != nil {
		return nil, err
	}

	mac := computeMAC(c, macKey, cipherText)

	return &FileKey{
		UUID:    uuid.NewString(),
		Address: kp.ZltcAddress(),
		Cipher: CipherParams{
			Algorithm: cipherName,
			IV:        hex.EncodeToString(iv),
		},
		KDFParams: KDFParams{
			KDF:   kdfName,
			DKLen: scryptDKLen,
			N:     scryptN,
			R:     scryptR,
			P:     scryptP,
			Salt:  hex.EncodeToString(salt),
		},
		CipherText: hex.EncodeToString(cipherText),
		MAC:        hex.EncodeToString(mac),
		IsGM:       c == curve.National,
	}, nil
}

// Decrypt re-derives dk from the stored KDF params, recomputes the MAC, and
// (on match) decrypts the secret key and rebuilds a KeyPair. IsGM selects the
// curve end-to-end (§4.5).
func Decrypt(fk *FileKey, passphrase string) (*keypair.KeyPair, error) {
	if fk.KDFParams.KDF != kdfName {
		return nil, ErrUnsupported
	}
	if fk.Cipher.Algorithm != cipherName {
		return nil, ErrUnsupported
	}

	salt, err := hex.DecodeString(fk.KDFParams.Salt)
	if err != nil {
		return nil, ErrUnsupported
	}
	iv, err := hex.DecodeString(fk.Cipher.IV)
	if err != nil {
		return nil, ErrUnsupported
	}
	cipherText, err := hex.DecodeString(fk.CipherText)
	if err != nil {
		return nil, ErrUnsupported
	}
	wantMAC, err := hex.DecodeString(fk.MAC)
	if err != nil {
		return nil, ErrUnsupported
	}

	dk, err := scrypt.Key([]byte(passphrase), salt, fk.KDFParams.N, fk.KDFParams.R, fk.KDFParams.P, fk.KDFParams.DKLen)
	if err != nil {
		return nil, err
	}
	aesKey, macKey := dk[:16], dk[16:]

	c := curve.International
	if fk.IsGM {
		c = curve.National
	}

	gotMAC := computeMAC(c, macKey, cipherText)
	if subtle.ConstantTimeCompare(gotMAC, wantMAC) != 1 {
		return nil, ErrWrongPassphrase
	}

	secret, err := aesCTR(aesKey, iv, cipherText)
	if err != nil {
		return nil, err
	}
	return keypair.FromSecret(secret, c)
}

// computeMAC hashes mac_key||cipher_text under the curve's hash function —
// SHA-256 for International, SM3 for National (§4.5).
func computeMAC(c curve.Curve, macKey, cipherText []byte) []byte {
	buf := make([]byte, 0, len(macKey)+len(cipherText))
	buf = append(buf, macKey...)
	buf = append(buf, cipherText...)
	digest := curve.Hash(c, buf)
	return digest[:]
}

// aesCTR runs AES-128-CTR over in, symmetric for encrypt and decrypt.
func aesCTR(key, iv, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, in)
	return out, nil
}
