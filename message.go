package compact

import "fmt"

// Message is implemented by composite types that lay out their own fields.
// PreEncode, Encode and Decode must visit the fields in the same order with
// the same codecs.
//
//	type point struct{ X, Y int32 }
//
//	func (p *point) PreEncode(s *compact.State) {
//		compact.Int32.PreEncode(s, p.X)
//		compact.Int32.PreEncode(s, p.Y)
//	}
type Message interface {
	PreEncode(s *State)
	Encode(s *State) error
	Decode(s *State) error
}

// Marshal runs the sizing pass, allocates, and runs the fill pass for m.
func Marshal(m Message) ([]byte, error) {
	s := NewState()
	m.PreEncode(s)
	s.Alloc()
	if err := m.Encode(s); err != nil {
		return nil, err
	}
	if s.Start != s.End {
		return nil, fmt.Errorf("compact: %T sized %d bytes but encoded %d", m, s.End, s.Start)
	}
	return s.Buffer(), nil
}

// Unmarshal decodes b into m. The whole input must be consumed.
func Unmarshal(b []byte, m Message) error {
	s := FromBuffer(b)
	if err := m.Decode(s); err != nil {
		return err
	}
	if rest := s.End - s.Start; rest > 0 {
		return fmt.Errorf("%w: %d left at offset %d", ErrTrailingBytes, rest, s.Start)
	}
	return nil
}
