package abicodec

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/zlc-labs/lattice-go/address"
	"github.com/zlc-labs/lattice-go/hexutil"
)

// ErrInvalidArgument is returned when an AbiValue does not match the shape
// or range its target Solidity type requires.
var ErrInvalidArgument = errors.New("abicodec: invalid argument")

// paramDef mirrors one entry of a JSON ABI "inputs"/"outputs" array.
type paramDef struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Components []paramDef `json:"components"`
}

type typeKind int

const (
	tkBool typeKind = iota
	tkString
	tkAddress
	tkFixedBytes
	tkBytes
	tkUint
	tkInt
	tkArray
	tkTuple
)

// resolvedType is a parsed Solidity type, recursively describing arrays and
// tuples, carrying enough shape information to both validate an AbiValue and
// render the canonical signature fragment for selector computation.
type resolvedType struct {
	kind       typeKind
	bits       int // for uint/int
	byteLen    int // for bytesN
	elem       *resolvedType
	arrayLen   int // -1 for a dynamic array
	fields     []resolvedType
	typeString string
}

func (t resolvedType) isDynamic() bool {
	switch t.kind {
	case tkString, tkBytes:
		return true
	case tkArray:
		if t.arrayLen < 0 {
			return true
		}
		return t.elem.isDynamic()
	case tkTuple:
		for _, f := range t.fields {
			if f.isDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// parseType parses a Solidity type string (e.g. "uint256", "bytes32[]",
// "tuple", "tuple[3]") together with its ABI-JSON component list (only
// meaningful for tuple types) into a resolvedType.
func parseType(s string, components []paramDef) (resolvedType, error) {
	if strings.HasSuffix(s, "]") {
		idx := strings.LastIndex(s, "[")
		if idx < 0 {
			return resolvedType{}, fmt.Errorf("abicodec: malformed type %q", s)
		}
		inner := s[:idx]
		lenStr := s[idx+1 : len(s)-1]
		elemType, err := parseType(inner, components)
		if err != nil {
			return resolvedType{}, err
		}
		if lenStr == "" {
			return resolvedType{kind: tkArray, elem: &elemType, arrayLen: -1, typeString: elemType.typeString + "[]"}, nil
		}
		n, err := strconv.Atoi(lenStr)
		if err != nil || n < 0 {
			return resolvedType{}, fmt.Errorf("abicodec: malformed array length in %q", s)
		}
		return resolvedType{kind: tkArray, elem: &elemType, arrayLen: n, typeString: fmt.Sprintf("%s[%d]", elemType.typeString, n)}, nil
	}

	switch {
	case s == "tuple":
		fields := make([]resolvedType, len(components))
		parts := make([]string, len(components))
		for i, c := range components {
			ft, err := parseType(c.Type, c.Components)
			if err != nil {
				return resolvedType{}, err
			}
			fields[i] = ft
			parts[i] = ft.typeString
		}
		return resolvedType{kind: tkTuple, fields: fields, typeString: "(" + strings.Join(parts, ",") + ")"}, nil
	case s == "bool":
		return resolvedType{kind: tkBool, typeString: "bool"}, nil
	case s == "string":
		return resolvedType{kind: tkString, typeString: "string"}, nil
	case s == "address":
		return resolvedType{kind: tkAddress, typeString: "address"}, nil
	case s == "bytes":
		return resolvedType{kind: tkBytes, typeString: "bytes"}, nil
	case strings.HasPrefix(s, "bytes"):
		n, err := strconv.Atoi(s[len("bytes"):])
		if err != nil || n < 1 || n > 32 {
			return resolvedType{}, fmt.Errorf("abicodec: malformed fixed-bytes type %q", s)
		}
		return resolvedType{kind: tkFixedBytes, byteLen: n, typeString: s}, nil
	case strings.HasPrefix(s, "uint"):
		bits, err := parseBitWidth(s[len("uint"):])
		if err != nil {
			return resolvedType{}, err
		}
		return resolvedType{kind: tkUint, bits: bits, typeString: fmt.Sprintf("uint%d", bits)}, nil
	case strings.HasPrefix(s, "int"):
		bits, err := parseBitWidth(s[len("int"):])
		if err != nil {
			return resolvedType{}, err
		}
		return resolvedType{kind: tkInt, bits: bits, typeString: fmt.Sprintf("int%d", bits)}, nil
	default:
		return resolvedType{}, fmt.Errorf("abicodec: unsupported type %q", s)
	}
}

func parseBitWidth(suffix string) (int, error) {
	if suffix == "" {
		return 256, nil
	}
	bits, err := strconv.Atoi(suffix)
	if err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
		return 0, fmt.Errorf("abicodec: malformed integer bit width %q", suffix)
	}
	return bits, nil
}

// typedValue is the validated, parsed counterpart of an AbiValue against a
// specific resolvedType: leaves hold a concrete Go value, composites hold
// child typedValues.
type typedValue struct {
	t     resolvedType
	b     bool
	bz    []byte   // address raw-20, fixed/dynamic bytes, or string bytes
	i     *big.Int // uint/int
	elems []typedValue
}

// convertValue walks v against t, producing a typedValue or failing with
// ErrInvalidArgument (§4.6).
func convertValue(t resolvedType, v AbiValue) (typedValue, error) {
	switch t.kind {
	case tkBool:
		switch strings.ToLower(v.Text) {
		case "true":
			return typedValue{t: t, b: true}, nil
		case "false":
			return typedValue{t: t, b: false}, nil
		default:
			return typedValue{}, fmt.Errorf("%w: %q is not a bool", ErrInvalidArgument, v.Text)
		}
	case tkString:
		return typedValue{t: t, bz: []byte(v.Text)}, nil
	case tkAddress:
		raw, err := address.FromText(v.Text)
		if err != nil {
			return typedValue{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return typedValue{t: t, bz: raw[:]}, nil
	case tkFixedBytes:
		b, err := hexutil.DecodeFixed(v.Text, t.byteLen)
		if err != nil {
			return typedValue{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return typedValue{t: t, bz: b}, nil
	case tkBytes:
		b, err := hexutil.Decode(v.Text)
		if err != nil {
			return typedValue{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return typedValue{t: t, bz: b}, nil
	case tkUint, tkInt:
		n, err := parseBigInt(v.Text)
		if err != nil {
			return typedValue{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		if err := checkRange(t, n); err != nil {
			return typedValue{}, err
		}
		return typedValue{t: t, i: n}, nil
	case tkArray:
		if t.arrayLen >= 0 && len(v.Elements) != t.arrayLen {
			return typedValue{}, fmt.Errorf("%w: array expects %d elements, got %d", ErrInvalidArgument, t.arrayLen, len(v.Elements))
		}
		elems := make([]typedValue, len(v.Elements))
		for i, e := range v.Elements {
			tv, err := convertValue(*t.elem, e)
			if err != nil {
				return typedValue{}, err
			}
			elems[i] = tv
		}
		return typedValue{t: t, elems: elems}, nil
	case tkTuple:
		if len(v.Elements) != len(t.fields) {
			return typedValue{}, fmt.Errorf("%w: tuple expects %d components, got %d", ErrInvalidArgument, len(t.fields), len(v.Elements))
		}
		elems := make([]typedValue, len(v.Elements))
		for i, e := range v.Elements {
			tv, err := convertValue(t.fields[i], e)
			if err != nil {
				return typedValue{}, err
			}
			elems[i] = tv
		}
		return typedValue{t: t, elems: elems}, nil
	default:
		return typedValue{}, fmt.Errorf("abicodec: unresolved type kind")
	}
}

// parseBigInt accepts a decimal or 0x-prefixed hex text representation.
func parseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var n *big.Int
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		var ok bool
		n, ok = new(big.Int).SetString(s[2:], 16)
		if !ok {
			return nil, fmt.Errorf("malformed hex integer %q", s)
		}
	} else {
		var ok bool
		n, ok = new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("malformed decimal integer %q", s)
		}
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

func checkRange(t resolvedType, n *big.Int) error {
	if t.kind == tkUint {
		if n.Sign() < 0 {
			return fmt.Errorf("%w: uint%d cannot be negative", ErrInvalidArgument, t.bits)
		}
		max := new(big.Int).Lsh(big.NewInt(1), uint(t.bits))
		if n.Cmp(max) >= 0 {
			return fmt.Errorf("%w: value overflows uint%d", ErrInvalidArgument, t.bits)
		}
		return nil
	}
	max := new(big.Int).Lsh(big.NewInt(1), uint(t.bits-1))
	min := new(big.Int).Neg(max)
	if n.Cmp(min) < 0 || n.Cmp(max) >= 0 {
		return fmt.Errorf("%w: value overflows int%d", ErrInvalidArgument, t.bits)
	}
	return nil
}
