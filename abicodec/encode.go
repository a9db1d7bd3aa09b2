package abicodec

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// methodEntry is the subset of a JSON ABI entry this codec needs: name and
// input parameter list. The codec's own shape introspection (below) still
// drives the head/tail encoder, since that walk needs per-argument
// tuple/array structure the encoder already has its own representation for;
// the abi.JSON result parsed in Encode supplies the one piece of this that must come from
// go-ethereum's own canonicalization: the 4-byte selector.
type methodEntry struct {
	Type   string     `json:"type"`
	Name   string     `json:"name"`
	Inputs []paramDef `json:"inputs"`
}

// Encode locates funcName's input list in abiJSON, converts args against it,
// and returns the 4-byte selector followed by the head+tail encoding (§4.6).
//
// The ABI document is parsed twice: once through go-ethereum's own
// abi.JSON, whose Method.ID is the authoritative 4-byte Keccak-256 selector
// (the same value the teacher's geth-08-abigen/geth-09-events lessons read
// off generated bindings), and once into this package's own paramDef shape,
// which the head/tail walk below needs in a form it can recurse over
// directly. Reusing abi.JSON's ABI.Methods lookup for selector and function
// existence means a typo'd function name fails the same way go-ethereum
// itself would fail it, rather than by this package's own independent name
// matching going out of sync with go-ethereum's.
func Encode(abiJSON string, funcName string, args []AbiValue) ([]byte, error) {
	parsed, err := gethabi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("abicodec: parse ABI: %w", err)
	}
	gethMethod, ok := parsed.Methods[funcName]
	if !ok {
		return nil, fmt.Errorf("abicodec: function %q not found in ABI", funcName)
	}
	selector := append([]byte(nil), gethMethod.ID...)

	var entries []methodEntry
	if err := json.Unmarshal([]byte(abiJSON), &entries); err != nil {
		return nil, fmt.Errorf("abicodec: parse ABI: %w", err)
	}
	var method *methodEntry
	for i := range entries {
		if entries[i].Type != "" && entries[i].Type != "function" {
			continue
		}
		if entries[i].Name == funcName {
			method = &entries[i]
			break
		}
	}
	if method == nil {
		return nil, fmt.Errorf("abicodec: function %q not found in ABI", funcName)
	}
	if len(args) != len(method.Inputs) {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrInvalidArgument, funcName, len(method.Inputs), len(args))
	}

	values := make([]typedValue, len(method.Inputs))
	for i, in := range method.Inputs {
		t, err := parseType(in.Type, in.Components)
		if err != nil {
			return nil, err
		}
		tv, err := convertValue(t, args[i])
		if err != nil {
			return nil, err
		}
		values[i] = tv
	}

	body, err := encodeTuple(values)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 4+len(body))
	out = append(out, selector...)
	out = append(out, body...)
	return out, nil
}

// encodeTuple implements the standard head+tail algorithm for a sequence of
// already-validated values: static elements inline in the head, dynamic
// elements referenced by a 32-byte offset with their content appended to the
// tail. The same routine serves the outer argument list, nested static and
// dynamic tuples, and fixed/dynamic arrays (called with a materialized
// element list) uniformly.
func encodeTuple(values []typedValue) ([]byte, error) {
	heads := make([][]byte, len(values))
	tails := make([][]byte, len(values))
	headSize := 0
	for i, v := range values {
		b, err := encodeValue(v)
		if err != nil {
			return nil, err
		}
		if v.t.isDynamic() {
			tails[i] = b
			headSize += 32
		} else {
			heads[i] = b
			headSize += len(b)
		}
	}

	var out []byte
	tailOffset := headSize
	for i, v := range values {
		if v.t.isDynamic() {
			out = append(out, encodeUintWord(big.NewInt(int64(tailOffset)))...)
			tailOffset += len(tails[i])
		} else {
			out = append(out, heads[i]...)
		}
	}
	for _, t := range tails {
		out = append(out, t...)
	}
	return out, nil
}

// encodeValue renders one typedValue: for a static type, the inline head
// bytes; for a dynamic type, the complete self-contained tail bytes.
func encodeValue(v typedValue) ([]byte, error) {
	switch v.t.kind {
	case tkBool:
		if v.b {
			return encodeUintWord(big.NewInt(1)), nil
		}
		return encodeUintWord(big.NewInt(0)), nil
	case tkAddress:
		return encodeUintWord(new(big.Int).SetBytes(v.bz)), nil
	case tkFixedBytes:
		return rightPad32(v.bz), nil
	case tkUint:
		return encodeUintWord(v.i), nil
	case tkInt:
		return encodeIntWord(v.i), nil
	case tkString:
		return encodeDynamicBytes(v.bz), nil
	case tkBytes:
		return encodeDynamicBytes(v.bz), nil
	case tkArray:
		body, err := encodeTuple(v.elems)
		if err != nil {
			return nil, err
		}
		if v.t.arrayLen < 0 {
			out := encodeUintWord(big.NewInt(int64(len(v.elems))))
			return append(out, body...), nil
		}
		return body, nil
	case tkTuple:
		return encodeTuple(v.elems)
	default:
		return nil, fmt.Errorf("abicodec: cannot encode unresolved value")
	}
}

// encodeUintWord renders n as an unsigned 32-byte big-endian word.
func encodeUintWord(n *big.Int) []byte {
	out := make([]byte, 32)
	n.FillBytes(out)
	return out
}

// encodeIntWord renders n (which may be negative) as a two's-complement
// 32-byte big-endian word, per the Solidity ABI's fixed-width int encoding.
func encodeIntWord(n *big.Int) []byte {
	if n.Sign() >= 0 {
		return encodeUintWord(n)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	twos := new(big.Int).Add(mod, n)
	return encodeUintWord(twos)
}

// rightPad32 left-aligns b, padding with trailing zero bytes to a 32-byte
// word — the byte-sequence (as opposed to numeric) alignment rule.
func rightPad32(b []byte) []byte {
	out := make([]byte, ((len(b)+31)/32)*32)
	if len(out) == 0 {
		out = make([]byte, 32)
	}
	copy(out, b)
	return out
}

// encodeDynamicBytes renders a length-prefixed, right-padded byte string:
// the standard "bytes"/"string" dynamic encoding.
func encodeDynamicBytes(b []byte) []byte {
	out := encodeUintWord(big.NewInt(int64(len(b))))
	return append(out, rightPad32(b)...)
}
