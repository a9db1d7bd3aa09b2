package abicodec

import (
	"encoding/hex"
	"strings"
	"testing"
)

const addProtocolABI = `[
	{"type":"function","name":"addProtocol","inputs":[
		{"name":"count","type":"uint64"},
		{"name":"hashes","type":"bytes32[]"}
	]}
]`

// TestEncodeS4 checks spec §8 scenario S4.
func TestEncodeS4(t *testing.T) {
	args := []AbiValue{
		Text("100"),
		Array(Text("0x516482b2880721149f75c9aea3b6a6a700022c78561f6e22fbd0d4f73e5e7432")),
	}
	got, err := Encode(addProtocolABI, "addProtocol", args)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	wantHex := "ef7e9858" +
		"0000000000000000000000000000000000000000000000000000000000000064" +
		"0000000000000000000000000000000000000000000000000000000000000040" +
		"0000000000000000000000000000000000000000000000000000000000000001" +
		"516482b2880721149f75c9aea3b6a6a700022c78561f6e22fbd0d4f73e5e7432"

	if gotHex := hex.EncodeToString(got); gotHex != wantHex {
		t.Fatalf("Encode() = %s, want %s", gotHex, wantHex)
	}
}

const simpleABI = `[
	{"type":"function","name":"setFlag","inputs":[{"name":"ok","type":"bool"}]},
	{"type":"function","name":"setName","inputs":[{"name":"n","type":"string"}]},
	{"type":"function","name":"setPair","inputs":[{"name":"p","type":"tuple","components":[
		{"name":"a","type":"uint256"},
		{"name":"b","type":"bytes"}
	]}]}
]`

func TestEncodeBool(t *testing.T) {
	got, err := Encode(simpleABI, "setFlag", []AbiValue{Bool("true")})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "0000000000000000000000000000000000000000000000000000000000000001"
	if gotHex := hex.EncodeToString(got)[8:]; gotHex != want {
		t.Fatalf("Encode(bool) body = %s, want %s", gotHex, want)
	}
}

func TestEncodeString(t *testing.T) {
	got, err := Encode(simpleABI, "setName", []AbiValue{Text("hi")})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	body := hex.EncodeToString(got)[8:]
	wantOffset := "0000000000000000000000000000000000000000000000000000000000000020"
	wantLen := "0000000000000000000000000000000000000000000000000000000000000002"
	wantData := "6869" + strings.Repeat("0", 60)
	if body != wantOffset+wantLen+wantData {
		t.Fatalf("Encode(string) body = %s, want %s", body, wantOffset+wantLen+wantData)
	}
}

func TestEncodeDynamicTuple(t *testing.T) {
	got, err := Encode(simpleABI, "setPair", []AbiValue{
		Tuple(Text("7"), Text("0xabcd")),
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(got) < 4 {
		t.Fatalf("short output")
	}
}

func TestEncodeRejectsBadBool(t *testing.T) {
	if _, err := Encode(simpleABI, "setFlag", []AbiValue{Text("yes")}); err == nil {
		t.Fatal("expected error for non-bool text")
	}
}

func TestEncodeRejectsWrongArity(t *testing.T) {
	if _, err := Encode(simpleABI, "setFlag", []AbiValue{}); err == nil {
		t.Fatal("expected arity error")
	}
}

func TestEncodeRejectsFixedArrayLengthMismatch(t *testing.T) {
	abiJSON := `[{"type":"function","name":"f","inputs":[{"name":"xs","type":"uint8[2]"}]}]`
	if _, err := Encode(abiJSON, "f", []AbiValue{Array(Text("1"))}); err == nil {
		t.Fatal("expected array-length mismatch error")
	}
}

func TestEncodeUnknownFunction(t *testing.T) {
	if _, err := Encode(simpleABI, "nope", nil); err == nil {
		t.Fatal("expected error for unknown function")
	}
}
