package codec

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Bytes is an identity codec for []byte values. Encode/Decode return the
// input unchanged. The CLI uses it for binary stdin and stdout.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// Hex renders bytes as lowercase hexadecimal text. Decode ignores
// surrounding whitespace, so input with a trailing newline is accepted.
type Hex struct{}

func (Hex) Encode(b []byte) ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

func (Hex) Decode(b []byte) ([]byte, error) {
	b = bytes.TrimSpace(b)
	out := make([]byte, hex.DecodedLen(len(b)))
	if _, err := hex.Decode(out, b); err != nil {
		return nil, fmt.Errorf("hex: %w", err)
	}
	return out, nil
}
