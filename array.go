package compact

import "encoding/binary"

// MaxArrayDecodeSize is the largest element count a sequence decoder accepts.
// Larger counts fail with ArrayTooLarge before any element is read.
const MaxArrayDecodeSize = 0x100000

// Array returns a codec for homogeneous sequences: an unsigned count followed
// by each element encoded with elem.
func Array[T any](elem Codec[T]) Codec[[]T] { return arrayCodec[T]{elem: elem} }

// Uint32Array stores an unsigned count followed by raw 4-byte little-endian
// words, bypassing the variable-width integer rule.
var Uint32Array Codec[[]uint32] = uint32ArrayCodec{}

type arrayCodec[T any] struct{ elem Codec[T] }

func (c arrayCodec[T]) PreEncode(s *State, v []T) {
	s.End += uintSize(uint64(len(v)))
	for _, e := range v {
		c.elem.PreEncode(s, e)
	}
}

func (c arrayCodec[T]) Encode(s *State, v []T) error {
	start := s.Start
	if err := encodeUint(s, uint64(len(v))); err != nil {
		return err
	}
	for _, e := range v {
		if err := c.elem.Encode(s, e); err != nil {
			s.Start = start
			return err
		}
	}
	return nil
}

func (c arrayCodec[T]) Decode(s *State) ([]T, error) {
	start := s.Start
	n, err := decodeCount(s)
	if err != nil {
		return nil, err
	}
	// every element takes at least one byte except zero-width fixed blocks,
	// so the remaining length bounds the up-front allocation.
	out := make([]T, 0, min(n, s.Remaining()))
	for i := 0; i < n; i++ {
		e, err := c.elem.Decode(s)
		if err != nil {
			s.Start = start
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

type uint32ArrayCodec struct{}

func (uint32ArrayCodec) PreEncode(s *State, v []uint32) {
	s.End += uintSize(uint64(len(v))) + 4*len(v)
}

func (uint32ArrayCodec) Encode(s *State, v []uint32) error {
	start := s.Start
	if err := encodeUint(s, uint64(len(v))); err != nil {
		return err
	}
	b, err := s.take(PhaseEncode, 4*len(v))
	if err != nil {
		s.Start = start
		return err
	}
	for i, w := range v {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return nil
}

func (uint32ArrayCodec) Decode(s *State) ([]uint32, error) {
	start := s.Start
	n, err := decodeCount(s)
	if err != nil {
		return nil, err
	}
	b, err := s.take(PhaseDecode, 4*n)
	if err != nil {
		s.Start = start
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return out, nil
}

// decodeCount reads a sequence length and enforces MaxArrayDecodeSize.
func decodeCount(s *State) (int, error) {
	start := s.Start
	n, err := decodeUint(s, u64Marker)
	if err != nil {
		return 0, err
	}
	if n > MaxArrayDecodeSize {
		s.Start = start
		return 0, decodeErr(KindArrayTooLarge, "count %d exceeds the maximum of %d", n, MaxArrayDecodeSize)
	}
	return int(n), nil
}
