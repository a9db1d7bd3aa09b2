package keypair

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/zlc-labs/lattice-go/curve"
	"github.com/zlc-labs/lattice-go/hexutil"
)

func mustDecodeDigest(t *testing.T, s string) [32]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		t.Fatalf("bad digest fixture %q: %v", s, err)
	}
	var out [32]byte
	copy(out[:], b)
	return out
}

// TestSecretToAddressS2 checks spec §8 scenario S2.
func TestSecretToAddressS2(t *testing.T) {
	secretHex := "72ffdd7245e0ad7cffd533ad99f54048bf3fa6358e071fba8c2d7783d992d997"
	wantZltc := "zltc_jF4U7umzNpiE8uU35RCBp9f2qf53H5CZZ"

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	kp, err := FromSecret(secret, curve.National)
	if err != nil {
		t.Fatalf("FromSecret: %v", err)
	}
	if got := kp.ZltcAddress(); got != wantZltc {
		t.Fatalf("ZltcAddress() = %q, want %q", got, wantZltc)
	}
}

func TestNewAndSignVerifyRoundTrip(t *testing.T) {
	for _, c := range []curve.Curve{curve.International, curve.National} {
		t.Run(c.String(), func(t *testing.T) {
			kp, err := New(c)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			digest := curve.Hash(c, []byte("round trip message"))
			sigHex, err := kp.Sign(digest)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			ok, err := Verify(c, digest, sigHex, kp.Public)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if !ok {
				t.Fatal("Verify returned false for a freshly produced signature")
			}

			tampered := curve.Hash(c, []byte("different message"))
			ok, err = Verify(c, tampered, sigHex, kp.Public)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if ok {
				t.Fatal("Verify returned true for a mismatched digest")
			}
		})
	}
}

// TestSignInternationalS6 checks spec §8 scenario S6.
func TestSignInternationalS6(t *testing.T) {
	secretHex := "c842e1ef9ece7e992a4021423a58d6e89c751881e43fd7dbebe70f932ad493e2"
	digestHex := "790dcb1e43ac151998f8c2e59e0959072f9d476d19fb6f98d7a4e59ea5f8e59e"

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	kp, err := FromSecret(secret, curve.International)
	if err != nil {
		t.Fatalf("FromSecret: %v", err)
	}
	digest := mustDecodeDigest(t, digestHex)

	sigHex, err := kp.Sign(digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !strings.HasSuffix(sigHex, "1b") {
		t.Fatalf("Sign() = %s, want suffix 1b (recovery byte 27)", sigHex)
	}
	sig, err := hexutil.Decode(sigHex)
	if err != nil || len(sig) != 65 {
		t.Fatalf("Sign() produced malformed signature: %v", err)
	}
	if sig[64] < 27 || sig[64] > 28 {
		t.Fatalf("recovery byte = %d, want 27 or 28", sig[64])
	}

	ok, err := Verify(curve.International, digest, sigHex, kp.Public)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("Verify failed for S6 fixture")
	}
}

func TestFromSecretRejectsOutOfRange(t *testing.T) {
	zero := make([]byte, 32)
	if _, err := FromSecret(zero, curve.International); err != ErrInvalidSecret {
		t.Fatalf("FromSecret(0) = %v, want ErrInvalidSecret", err)
	}
	n := curve.International.Order()
	if _, err := FromSecret(n.Bytes(), curve.International); err != ErrInvalidSecret {
		t.Fatalf("FromSecret(n) = %v, want ErrInvalidSecret", err)
	}
}
