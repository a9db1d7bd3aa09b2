// Package abicodec implements the contract-calling wire format: a weakly
// typed argument tree in, the standard Solidity head+tail encoding out,
// selected and selectored per a JSON ABI definition (§4.6).
package abicodec

// Kind tags the shape of an AbiValue.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindText    // string, or the textual encoding of address/bytesN/bytes/uintM/intM
	KindArray
	KindTuple
)

// AbiValue is the weakly typed argument tree the caller builds: leaves carry
// a text form to be parsed against the target Solidity type, composites carry
// child values (§4.6).
type AbiValue struct {
	Kind     Kind
	Text     string
	Elements []AbiValue
}

// Bool wraps the text forms "true"/"false" (case-insensitive).
func Bool(text string) AbiValue { return AbiValue{Kind: KindBool, Text: text} }

// Text wraps any leaf value given as text: string, address (zltc or hex),
// bytesN/bytes (hex), or uintM/intM (decimal or 0x-hex).
func Text(text string) AbiValue { return AbiValue{Kind: KindText, Text: text} }

// Array wraps a sequence of elements for a T[] or T[N] parameter.
func Array(elements ...AbiValue) AbiValue { return AbiValue{Kind: KindArray, Elements: elements} }

// Tuple wraps a sequence of elements matching a tuple's component list.
func Tuple(elements ...AbiValue) AbiValue { return AbiValue{Kind: KindTuple, Elements: elements} }
