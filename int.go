package compact

type signed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Signed integer codecs. Values are zigzag mapped and then stored with the
// unsigned rules of the same width.
var (
	Int8  Codec[int8]  = intCodec[int8]{name: "int8", widest: u16Marker}
	Int16 Codec[int16] = intCodec[int16]{name: "int16", widest: u16Marker}
	Int32 Codec[int32] = intCodec[int32]{name: "int32", widest: u32Marker}
	Int64 Codec[int64] = intCodec[int64]{name: "int64", widest: u64Marker}
	Int   Codec[int]   = intCodec[int]{name: "int", widest: u64Marker}
)

type intCodec[T signed] struct {
	name   string
	widest byte
}

func (intCodec[T]) PreEncode(s *State, v T) { s.End += uintSize(ZigZagEncode(int64(v))) }

func (intCodec[T]) Encode(s *State, v T) error { return encodeUint(s, ZigZagEncode(int64(v))) }

func (c intCodec[T]) Decode(s *State) (T, error) {
	start := s.Start
	u, err := decodeUint(s, c.widest)
	if err != nil {
		return 0, err
	}
	v := ZigZagDecode(u)
	if int64(T(v)) != v {
		s.Start = start
		return 0, decodeErr(KindTypeMismatch, "value %d overflows %s", v, c.name)
	}
	return T(v), nil
}
