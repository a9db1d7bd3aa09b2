package keypair

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/zlc-labs/lattice-go/hexutil"
)

// signInternational computes a deterministic-or-randomized ECDSA signature
// over digest using go-ethereum's secp256k1 signer, then re-renders the
// trailing recovery byte in the chain's +27 convention instead of
// go-ethereum's raw {0,1}: r || s || (recovery_id + 27), 65 bytes total.
func signInternational(secret *big.Int, digest [32]byte) (string, error) {
	priv := new(ecdsa.PrivateKey)
	priv.PublicKey.Curve = gethcrypto.S256()
	priv.D = secret
	priv.PublicKey.X, priv.PublicKey.Y = priv.PublicKey.Curve.ScalarBaseMult(leftPad32(secret.Bytes()))

	sig, err := gethcrypto.Sign(digest[:], priv)
	if err != nil {
		return "", err
	}
	if len(sig) != 65 {
		return "", errors.New("keypair: unexpected international signature length")
	}
	out := make([]byte, 65)
	copy(out, sig)
	out[64] = sig[64] + 27
	return hexutil.Encode(out), nil
}

// verifyInternational mirrors signInternational: it drops the trailing
// recovery byte and checks the (r, s) pair against the public key.
func verifyInternational(digest [32]byte, signatureHex string, pub []byte) (bool, error) {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return false, err
	}
	if len(sig) != 65 {
		return false, errors.New("keypair: international signature must be 65 bytes")
	}
	rs := sig[:64]
	return gethcrypto.VerifySignature(pub, digest[:], rs), nil
}
