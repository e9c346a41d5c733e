package compact

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

var (
	// Buffer is an optional byte buffer: an unsigned length followed by the bytes.
	// A nil or empty slice encodes as a single 0 and decodes as nil.
	Buffer Codec[[]byte] = bufferCodec{}

	// String is a UTF-8 string with the same layout as Buffer. Decode rejects
	// invalid UTF-8.
	String Codec[string] = stringCodec{}

	// Raw is an unframed run of bytes. Decode consumes everything up to End,
	// so it only makes sense as the last value of a message.
	Raw Codec[[]byte] = rawCodec{}

	Fixed32 Codec[[32]byte] = fixed32Codec{}
	Fixed64 Codec[[64]byte] = fixed64Codec{}
)

type bufferCodec struct{}

func (bufferCodec) PreEncode(s *State, v []byte) {
	s.End += uintSize(uint64(len(v))) + len(v)
}

func (bufferCodec) Encode(s *State, v []byte) error { return encodePrefixed(s, v) }

func (bufferCodec) Decode(s *State) ([]byte, error) {
	b, err := decodePrefixed(s)
	if err != nil || len(b) == 0 {
		return nil, err
	}
	return bytes.Clone(b), nil
}

type stringCodec struct{}

func (stringCodec) PreEncode(s *State, v string) {
	s.End += uintSize(uint64(len(v))) + len(v)
}

func (stringCodec) Encode(s *State, v string) error { return encodePrefixed(s, v) }

func (stringCodec) Decode(s *State) (string, error) {
	start := s.Start
	b, err := decodePrefixed(s)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		s.Start = start
		return "", decodeErr(KindInvalidUTF8, "string of %d bytes at offset %d", len(b), start)
	}
	return string(b), nil
}

// encodePrefixed writes the length header and the payload behind a single
// bounds check, so a short buffer leaves Start untouched.
func encodePrefixed[B []byte | string](s *State, v B) error {
	dst, err := s.take(PhaseEncode, uintSize(uint64(len(v)))+len(v))
	if err != nil {
		return err
	}
	s.Start -= len(dst)
	if err := encodeUint(s, uint64(len(v))); err != nil {
		return err
	}
	s.Start += copy(dst[len(dst)-len(v):], v)
	return nil
}

// decodePrefixed reads a length-prefixed run and returns a view of it.
func decodePrefixed(s *State) ([]byte, error) {
	start := s.Start
	n, err := decodeUint(s, u64Marker)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if n > uint64(s.Remaining()) {
		s.Start = start
		return nil, decodeErr(KindBufferTooSmall, "length %d at offset %d exceeds the %d bytes remaining", n, start, s.Remaining())
	}
	return s.take(PhaseDecode, int(n))
}

type rawCodec struct{}

func (rawCodec) PreEncode(s *State, v []byte) { s.End += len(v) }

func (rawCodec) Encode(s *State, v []byte) error { return s.Write(v) }

func (rawCodec) Decode(s *State) ([]byte, error) {
	b, err := s.take(PhaseDecode, s.Remaining())
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

// Fixed returns a codec for blocks of exactly n bytes with no length prefix.
// Encode rejects values of any other length. Fixed panics if n is negative.
func Fixed(n int) Codec[[]byte] {
	if n < 0 {
		panic(fmt.Sprintf("compact: negative fixed block length %d", n))
	}
	return fixedCodec{n: n}
}

type fixedCodec struct{ n int }

func (c fixedCodec) PreEncode(s *State, _ []byte) { s.End += c.n }

func (c fixedCodec) Encode(s *State, v []byte) error {
	if len(v) != c.n {
		return encodeErr(KindTypeMismatch, "fixed block of %d bytes, got %d", c.n, len(v))
	}
	return s.Write(v)
}

func (c fixedCodec) Decode(s *State) ([]byte, error) {
	b, err := s.take(PhaseDecode, c.n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

type fixed32Codec struct{}

func (fixed32Codec) PreEncode(s *State, _ [32]byte) { s.End += 32 }

func (fixed32Codec) Encode(s *State, v [32]byte) error { return s.Write(v[:]) }

func (fixed32Codec) Decode(s *State) (v [32]byte, err error) {
	b, err := s.take(PhaseDecode, len(v))
	if err != nil {
		return v, err
	}
	copy(v[:], b)
	return v, nil
}

type fixed64Codec struct{}

func (fixed64Codec) PreEncode(s *State, _ [64]byte) { s.End += 64 }

func (fixed64Codec) Encode(s *State, v [64]byte) error { return s.Write(v[:]) }

func (fixed64Codec) Decode(s *State) (v [64]byte, err error) {
	b, err := s.take(PhaseDecode, len(v))
	if err != nil {
		return v, err
	}
	copy(v[:], b)
	return v, nil
}
