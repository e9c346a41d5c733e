package compact

import (
	"encoding/binary"
	"math"
)

// Unsigned integer header. Values up to maxLiteral are stored as a single byte;
// anything larger is a marker followed by a little-endian payload.
const (
	maxLiteral = 0xFC
	u16Marker  = 0xFD
	u32Marker  = 0xFE
	u64Marker  = 0xFF
)

type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Unsigned integer codecs. Each picks the narrowest representation of the value.
// The fixed-width decoders reject markers wider than their type can carry and
// payloads that overflow it; Uint accepts every marker.
var (
	Uint8  Codec[uint8]  = uintCodec[uint8]{name: "uint8", widest: u16Marker}
	Uint16 Codec[uint16] = uintCodec[uint16]{name: "uint16", widest: u16Marker}
	Uint32 Codec[uint32] = uintCodec[uint32]{name: "uint32", widest: u32Marker}
	Uint64 Codec[uint64] = uintCodec[uint64]{name: "uint64", widest: u64Marker}
	Uint   Codec[uint]   = uintCodec[uint]{name: "uint", widest: u64Marker}
)

type uintCodec[T unsigned] struct {
	name   string
	widest byte
}

func (uintCodec[T]) PreEncode(s *State, v T) { s.End += uintSize(uint64(v)) }

func (uintCodec[T]) Encode(s *State, v T) error { return encodeUint(s, uint64(v)) }

func (c uintCodec[T]) Decode(s *State) (T, error) {
	start := s.Start
	u, err := decodeUint(s, c.widest)
	if err != nil {
		return 0, err
	}
	if uint64(T(u)) != u {
		s.Start = start
		return 0, decodeErr(KindTypeMismatch, "value %d overflows %s", u, c.name)
	}
	return T(u), nil
}

func uintSize(v uint64) int {
	switch {
	case v <= maxLiteral:
		return 1
	case v <= math.MaxUint16:
		return 3
	case v <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

func encodeUint(s *State, v uint64) error {
	b, err := s.take(PhaseEncode, uintSize(v))
	if err != nil {
		return err
	}
	switch len(b) {
	case 1:
		b[0] = byte(v)
	case 3:
		b[0] = u16Marker
		binary.LittleEndian.PutUint16(b[1:], uint16(v))
	case 5:
		b[0] = u32Marker
		binary.LittleEndian.PutUint32(b[1:], uint32(v))
	default:
		b[0] = u64Marker
		binary.LittleEndian.PutUint64(b[1:], v)
	}
	return nil
}

// decodeUint reads one unsigned integer whose marker is at most widest.
// Start only moves on success.
func decodeUint(s *State, widest byte) (uint64, error) {
	first, err := s.PeekUint8()
	if err != nil {
		return 0, err
	}
	if first > widest {
		return 0, decodeErr(KindTypeMismatch, "marker 0x%02X at offset %d is wider than 0x%02X", first, s.Start, widest)
	}
	switch first {
	case u16Marker:
		b, err := s.take(PhaseDecode, 3)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(b[1:])), nil
	case u32Marker:
		b, err := s.take(PhaseDecode, 5)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(b[1:])), nil
	case u64Marker:
		b, err := s.take(PhaseDecode, 9)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(b[1:]), nil
	default:
		s.Start++
		return uint64(first), nil
	}
}
