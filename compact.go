package compact

// Codec encodes and decodes values of type T against a State.
//
// PreEncode must grow s.End by exactly the number of bytes Encode writes for
// the same value. Decode advances s.Start by the same amount. Codecs are
// stateless and safe to share between goroutines; States are not.
type Codec[T any] interface {
	PreEncode(s *State, v T)
	Encode(s *State, v T) error
	Decode(s *State) (T, error)
}

// Encode sizes, allocates and fills a buffer holding the single value v.
func Encode[T any](c Codec[T], v T) ([]byte, error) {
	s := NewState()
	c.PreEncode(s, v)
	s.Alloc()
	if err := c.Encode(s, v); err != nil {
		return nil, err
	}
	return s.Buffer(), nil
}

// Decode reads one value from the beginning of b. Bytes after the value are
// ignored.
func Decode[T any](c Codec[T], b []byte) (T, error) {
	return c.Decode(FromBuffer(b))
}
