package compact

// Bool is a single byte. Decode treats 1 as true and every other byte as false.
var Bool Codec[bool] = boolCodec{}

type boolCodec struct{}

func (boolCodec) PreEncode(s *State, _ bool) { s.End++ }

func (boolCodec) Encode(s *State, v bool) error {
	b, err := s.take(PhaseEncode, 1)
	if err != nil {
		return err
	}
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
	return nil
}

func (boolCodec) Decode(s *State) (bool, error) {
	b, err := s.take(PhaseDecode, 1)
	if err != nil {
		return false, err
	}
	return b[0] == 1, nil
}
