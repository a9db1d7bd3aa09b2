package keypair

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/tjfoc/gmsm/sm2"
	"github.com/tjfoc/gmsm/sm3"

	"github.com/zlc-labs/lattice-go/hexutil"
)

// userID is the fixed 16-byte user identifier "1234567812345678" the chain
// uses for SM2's ZA domain-separation value (§4.3).
var userID = []byte("1234567812345678")

// za computes ZA = SM3(ENTLA || ID || a || b || Gx || Gy || Px || Py) per
// GB/T 32918.2, where a, b, Gx, Gy come from the curve's domain parameters and
// Px, Py are the signer's public key point.
func za(pubX, pubY *big.Int) []byte {
	params := sm2.P256Sm2().Params()
	entla := uint16(len(userID) * 8)

	buf := make([]byte, 0, 2+len(userID)+32*6)
	entlaBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(entlaBytes, entla)
	buf = append(buf, entlaBytes...)
	buf = append(buf, userID...)
	buf = append(buf, leftPad32(new(big.Int).Sub(params.P, big.NewInt(3)).Bytes())...) // a = p-3 for sm2p256v1
	buf = append(buf, leftPad32(params.B.Bytes())...)
	buf = append(buf, leftPad32(params.Gx.Bytes())...)
	buf = append(buf, leftPad32(params.Gy.Bytes())...)
	buf = append(buf, leftPad32(pubX.Bytes())...)
	buf = append(buf, leftPad32(pubY.Bytes())...)
	return sm3.Sm3Sum(buf)
}

// digestE computes e = SM3(ZA || message) — the domain-prefixed digest that
// is both signed and (for the national wire format) carried alongside the
// signature. verifyNational recomputes it rather than reading the carried
// copy.
func digestE(pubX, pubY *big.Int, message []byte) []byte {
	buf := append(za(pubX, pubY), message...)
	return sm3.Sm3Sum(buf)
}

// signNational computes an SM2 signature (GB/T 32918.2) over e = SM3(ZA ||
// message) and renders it as r || s || 0x01 || e, 97 bytes total. The
// trailing marker byte distinguishes the national wire format from the
// international one; the 32 bytes after it carry e itself.
func signNational(secret *big.Int, pub []byte, message [32]byte) (string, error) {
	if len(pub) != 65 {
		return "", errors.New("keypair: national public key must be 65 bytes")
	}
	pubX := new(big.Int).SetBytes(pub[1:33])
	pubY := new(big.Int).SetBytes(pub[33:65])
	ec := sm2.P256Sm2()
	n := ec.Params().N

	e := new(big.Int).SetBytes(digestE(pubX, pubY, message[:]))

	var r, s *big.Int
	for {
		k, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", err
		}
		if k.Sign() == 0 {
			continue
		}
		x1, _ := ec.ScalarBaseMult(leftPad32(k.Bytes()))

		r = new(big.Int).Add(e, x1)
		r.Mod(r, n)
		if r.Sign() == 0 {
			continue
		}
		if new(big.Int).Add(r, k).Cmp(n) == 0 {
			continue
		}

		// s = ((1+d)^-1 * (k - r*d)) mod n
		one := big.NewInt(1)
		dPlus1 := new(big.Int).Add(secret, one)
		dPlus1Inv := new(big.Int).ModInverse(dPlus1, n)
		if dPlus1Inv == nil {
			return "", errors.New("keypair: (1+d) not invertible mod n")
		}
		rd := new(big.Int).Mul(r, secret)
		kMinusRd := new(big.Int).Sub(k, rd)
		s = new(big.Int).Mul(dPlus1Inv, kMinusRd)
		s.Mod(s, n)
		if s.Sign() == 0 {
			continue
		}
		break
	}

	out := make([]byte, 0, 97)
	out = append(out, leftPad32(r.Bytes())...)
	out = append(out, leftPad32(s.Bytes())...)
	out = append(out, 0x01)
	out = append(out, leftPad32(e.Bytes())...)
	return hexutil.Encode(out), nil
}

// verifyNational recomputes t = (r+s) mod n and (x1', y1') = s*G + t*Pub, then
// checks R = (e + x1') mod n against the signature's r.
func verifyNational(message [32]byte, signatureHex string, pub []byte) (bool, error) {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return false, err
	}
	if len(sig) != 97 {
		return false, errors.New("keypair: national signature must be 97 bytes")
	}
	if sig[64] != 0x01 {
		return false, errors.New("keypair: national signature missing format marker")
	}
	if len(pub) != 65 {
		return false, errors.New("keypair: national public key must be 65 bytes")
	}

	r := new(big.Int).SetBytes(sig[0:32])
	s := new(big.Int).SetBytes(sig[32:64])
	// The trailing 32 bytes carry e as computed by the signer; recomputing it
	// here from ZA + message, rather than trusting the wire value, is what
	// makes Verify an actual check rather than a format echo (see spec §9's
	// open question about whether the server treats this field as
	// informational only — the client-side verifier here always recomputes).
	pubX := new(big.Int).SetBytes(pub[1:33])
	pubY := new(big.Int).SetBytes(pub[33:65])
	e := new(big.Int).SetBytes(digestE(pubX, pubY, message[:]))

	ec := sm2.P256Sm2()
	n := ec.Params().N
	if r.Sign() <= 0 || r.Cmp(n) >= 0 || s.Sign() <= 0 || s.Cmp(n) >= 0 {
		return false, nil
	}

	t := new(big.Int).Add(r, s)
	t.Mod(t, n)
	if t.Sign() == 0 {
		return false, nil
	}

	x1, y1 := ec.ScalarBaseMult(leftPad32(s.Bytes()))
	x2, y2 := ec.ScalarMult(pubX, pubY, leftPad32(t.Bytes()))
	x, _ := ec.Add(x1, y1, x2, y2)

	gotR := new(big.Int).Add(e, x)
	gotR.Mod(gotR, n)
	return gotR.Cmp(r) == 0, nil
}
