package compact

// State is the cursor shared by every codec: an optional owned buffer plus the
// offsets of one encode or decode pass.
//
// Encoding is two passes over the same values in the same order:
//
//	s := compact.NewState()
//	compact.Uint16.PreEncode(s, 4200) // sizing: grows s.End
//	s.Alloc()
//	err := compact.Uint16.Encode(s, 4200) // fill: advances s.Start
//
// A State is not safe for concurrent use.
type State struct {
	// Start is where the next Encode writes or the next Decode reads.
	Start int
	// End is the allocation boundary. PreEncode grows it during sizing.
	End int

	buf []byte
}

func NewState() *State { return &State{} }

// FromBuffer returns a State positioned at the beginning of b, ready to decode.
// b is not copied.
func FromBuffer(b []byte) *State {
	if b == nil {
		b = []byte{}
	}
	return &State{End: len(b), buf: b}
}

// Alloc allocates a zeroed buffer of exactly End bytes. Start is left alone.
func (s *State) Alloc() {
	s.buf = make([]byte, s.End)
}

// Dealloc rewinds both offsets and drops the buffer so the State can size the
// next message.
func (s *State) Dealloc() {
	s.Start, s.End, s.buf = 0, 0, nil
}

// Buffer returns the underlying buffer, nil before Alloc.
func (s *State) Buffer() []byte { return s.buf }

// Remaining returns how many bytes lie between Start and the end of the usable
// buffer. The usable end is End, clipped to the buffer length.
func (s *State) Remaining() int {
	end := s.End
	if len(s.buf) < end {
		end = len(s.buf)
	}
	if end < s.Start {
		return 0
	}
	return end - s.Start
}

// Write copies b at Start and advances past it.
func (s *State) Write(b []byte) error {
	dst, err := s.take(PhaseEncode, len(b))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// ReadNext returns a view of the next n bytes and advances past them.
// The view aliases the State's buffer.
func (s *State) ReadNext(n int) ([]byte, error) {
	return s.take(PhaseDecode, n)
}

// PeekUint8 returns the byte at Start without advancing.
func (s *State) PeekUint8() (byte, error) {
	if err := s.check(PhaseDecode, 1); err != nil {
		return 0, err
	}
	return s.buf[s.Start], nil
}

func (s *State) check(p Phase, n int) error {
	if s.buf == nil {
		return newErr(p, KindNoBuffer, "state has no buffer, call Alloc first")
	}
	if s.Start < 0 || s.Start > min(s.End, len(s.buf)) {
		return newErr(p, KindBufferTooSmall, "offset %d is outside the buffer of %d bytes", s.Start, min(s.End, len(s.buf)))
	}
	if n < 0 || s.Remaining() < n {
		return newErr(p, KindBufferTooSmall, "need %d bytes at offset %d, %d remaining", n, s.Start, s.Remaining())
	}
	return nil
}

// take hands out the next n bytes and advances Start. On error Start is unchanged.
func (s *State) take(p Phase, n int) ([]byte, error) {
	if err := s.check(p, n); err != nil {
		return nil, err
	}
	b := s.buf[s.Start : s.Start+n : s.Start+n]
	s.Start += n
	return b, nil
}
