package hdwallet

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned for a derivation path string that does not match
// "m/a'/b/c'/...".
var ErrInvalidPath = errors.New("hdwallet: invalid derivation path")

// hardenedOffset is added to an index to mark it hardened (bit 31 set), per
// BIP-32.
const hardenedOffset = uint32(0x80000000)

// Segment is a single derivation-path step: a 31-bit index plus a hardened
// flag.
type Segment struct {
	Index    uint32
	Hardened bool
}

// ChildNumber returns the BIP-32 wire index for this segment: Index with bit
// 31 set when Hardened.
func (s Segment) ChildNumber() uint32 {
	if s.Hardened {
		return s.Index | hardenedOffset
	}
	return s.Index
}

// ParsePath parses the canonical text form "m/a'/b/c'/…" (trailing ' marks
// hardened) into a sequence of segments.
func ParsePath(path string) ([]Segment, error) {
	fields := strings.Split(strings.TrimSpace(path), "/")
	if len(fields) == 0 || fields[0] != "m" {
		return nil, ErrInvalidPath
	}
	segments := make([]Segment, 0, len(fields)-1)
	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, ErrInvalidPath
		}
		hardened := strings.HasSuffix(f, "'")
		numStr := f
		if hardened {
			numStr = strings.TrimSuffix(f, "'")
		}
		n, err := strconv.ParseUint(numStr, 10, 32)
		if err != nil {
			return nil, ErrInvalidPath
		}
		if n >= uint64(hardenedOffset) {
			return nil, ErrInvalidPath
		}
		segments = append(segments, Segment{Index: uint32(n), Hardened: hardened})
	}
	return segments, nil
}
