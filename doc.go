// Package compact implements a self-describing compact binary encoding that is
// wire compatible with the compact-encoding family of libraries.
//
// Every value is written in two passes over a State. The sizing pass calls
// PreEncode for each value, growing State.End; Alloc then materializes the
// buffer and the fill pass calls Encode for the same values in the same order.
// Decoding walks the buffer with Decode in that order again.
//
// Layout:
//
//	unsigned   1, 3, 5 or 9 bytes: literal (0..0xFC) or 0xFD/0xFE/0xFF + LE payload
//	signed     zigzag mapped, then unsigned
//	bool       1 byte
//	float      4 or 8 raw LE bytes
//	buffer     unsigned length + bytes (0 means absent)
//	string     unsigned length + UTF-8 bytes
//	array      unsigned count + elements
//	fixed      N raw bytes
//	raw        remaining bytes, no prefix
//
// Example:
//
//	s := compact.NewState()
//	compact.Uint8.PreEncode(s, 42)
//	compact.String.PreEncode(s, "hi")
//	s.Alloc()
//	_ = compact.Uint8.Encode(s, 42)
//	_ = compact.String.Encode(s, "hi")
//	wire := s.Buffer() // [42 2 'h' 'i']
package compact
