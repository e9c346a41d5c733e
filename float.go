package compact

import (
	"encoding/binary"
	"math"
)

// Float codecs store the raw little-endian IEEE-754 bits, no header.
var (
	Float32 Codec[float32] = float32Codec{}
	Float64 Codec[float64] = float64Codec{}
)

type float32Codec struct{}

func (float32Codec) PreEncode(s *State, _ float32) { s.End += 4 }

func (float32Codec) Encode(s *State, v float32) error {
	b, err := s.take(PhaseEncode, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return nil
}

func (float32Codec) Decode(s *State) (float32, error) {
	b, err := s.take(PhaseDecode, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

type float64Codec struct{}

func (float64Codec) PreEncode(s *State, _ float64) { s.End += 8 }

func (float64Codec) Encode(s *State, v float64) error {
	b, err := s.take(PhaseEncode, 8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	return nil
}

func (float64Codec) Decode(s *State) (float64, error) {
	b, err := s.take(PhaseDecode, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}
