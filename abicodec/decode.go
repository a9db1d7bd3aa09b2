package abicodec

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/zlc-labs/lattice-go/address"
)

// eventEntry is the subset of a JSON ABI entry needed to decode event data.
type eventEntry struct {
	Type   string       `json:"type"`
	Name   string       `json:"name"`
	Inputs []eventInput `json:"inputs"`
}

// eventInput is one event parameter together with its indexed flag.
type eventInput struct {
	paramDef
	Indexed bool `json:"indexed"`
}

// DecodeEventData decodes the non-indexed portion of a log's data field
// against eventName's non-indexed inputs, returning one rendered value per
// such field in declaration order: decimal for integers, "true"/"false" for
// bool, the zltc form for addresses, and 0x-hex for fixed bytes. Indexed
// fields are skipped. It is a convenience for callers that want
// to interpret a receipt's events themselves rather than trust a
// pre-decoded server response (§4.6 edge cases; not used internally).
//
// eventName's existence is checked against go-ethereum's own abi.JSON
// parse of abiJSON (ABI.Events), the same lookup the teacher's
// geth-09-events lesson uses to find a log's matching definition, before
// this package's own paramDef walk decodes the non-indexed words.
func DecodeEventData(abiJSON string, eventName string, data []byte) ([]string, error) {
	parsed, err := gethabi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("abicodec: parse ABI: %w", err)
	}
	if _, ok := parsed.Events[eventName]; !ok {
		return nil, fmt.Errorf("abicodec: event %q not found in ABI", eventName)
	}

	var entries []eventEntry
	if err := json.Unmarshal([]byte(abiJSON), &entries); err != nil {
		return nil, fmt.Errorf("abicodec: parse ABI: %w", err)
	}
	var event *eventEntry
	for i := range entries {
		if entries[i].Type == "event" && entries[i].Name == eventName {
			event = &entries[i]
			break
		}
	}
	if event == nil {
		return nil, fmt.Errorf("abicodec: event %q not found in ABI", eventName)
	}

	out := make([]string, 0, len(event.Inputs))
	offset := 0
	for _, in := range event.Inputs {
		if in.Indexed {
			continue
		}
		t, err := parseType(in.Type, in.Components)
		if err != nil {
			return nil, err
		}
		if t.isDynamic() {
			return nil, fmt.Errorf("abicodec: DecodeEventData does not support dynamic field %q", in.Name)
		}
		if offset+32 > len(data) {
			return nil, fmt.Errorf("abicodec: event data too short for field %q", in.Name)
		}
		word := data[offset : offset+32]
		offset += 32
		rendered, err := renderWord(t, word)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

func renderWord(t resolvedType, word []byte) (string, error) {
	switch t.kind {
	case tkBool:
		return fmt.Sprintf("%v", new(big.Int).SetBytes(word).Sign() != 0), nil
	case tkAddress:
		var raw address.Raw
		copy(raw[:], word[12:])
		return raw.ToZltc(), nil
	case tkFixedBytes:
		return fmt.Sprintf("0x%x", word[:t.byteLen]), nil
	case tkUint:
		return new(big.Int).SetBytes(word).String(), nil
	case tkInt:
		n := new(big.Int).SetBytes(word)
		if word[0]&0x80 != 0 {
			mod := new(big.Int).Lsh(big.NewInt(1), 256)
			n.Sub(n, mod)
		}
		return n.String(), nil
	default:
		return "", fmt.Errorf("abicodec: unsupported field kind for decode")
	}
}
