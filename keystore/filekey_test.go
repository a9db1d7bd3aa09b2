package keystore

import (
	"bytes"
	"testing"

	"github.com/zlc-labs/lattice-go/curve"
	"github.com/zlc-labs/lattice-go/keypair"
)

// TestEncryptDecryptRoundTrip checks spec §8 invariant 7.
func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, c := range []curve.Curve{curve.International, curve.National} {
		t.Run(c.String(), func(t *testing.T) {
			kp, err := keypair.New(c)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			secret := kp.SecretBytes()

			fk, err := Encrypt(secret, "correct horse battery staple", c)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			if fk.IsGM != (c == curve.National) {
				t.Fatalf("IsGM = %v, want %v", fk.IsGM, c == curve.National)
			}
			if fk.Address != kp.ZltcAddress() {
				t.Fatalf("Address = %s, want %s", fk.Address, kp.ZltcAddress())
			}

			recovered, err := Decrypt(fk, "correct horse battery staple")
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if !bytes.Equal(recovered.SecretBytes(), secret) {
				t.Fatal("Decrypt did not recover the original secret")
			}
			if recovered.Curve != c {
				t.Fatalf("Decrypt recovered curve %v, want %v", recovered.Curve, c)
			}
		})
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	kp, err := keypair.New(curve.International)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fk, err := Encrypt(kp.SecretBytes(), "right-password", curve.International)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := Decrypt(fk, "wrong-password"); err != ErrWrongPassphrase {
		t.Fatalf("Decrypt with wrong passphrase = %v, want ErrWrongPassphrase", err)
	}
}

func TestDecryptRejectsUnsupportedKDF(t *testing.T) {
	kp, err := keypair.New(curve.National)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fk, err := Encrypt(kp.SecretBytes(), "pw", curve.National)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	fk.KDFParams.KDF = "pbkdf2"
	if _, err := Decrypt(fk, "pw"); err != ErrUnsupported {
		t.Fatalf("Decrypt with bad kdf = %v, want ErrUnsupported", err)
	}
}
