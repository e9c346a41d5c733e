package compact

import (
	"errors"
	"fmt"
	"strings"
)

// Phase tells whether an error was raised while encoding or decoding.
type Phase string

const (
	PhaseEncode Phase = "encode"
	PhaseDecode Phase = "decode"
)

// Kind categorizes an error.
//
// Encoding only ever fails with NoBuffer, BufferTooSmall or TypeNotSupported.
// TypeMismatch, InvalidUTF8 and ArrayTooLarge are decode-side kinds, except for
// fixed-length and layout coercion checks which report TypeMismatch on encode.
type Kind string

const (
	KindNoBuffer         Kind = "no_buffer"
	KindBufferTooSmall   Kind = "buffer_too_small"
	KindTypeNotSupported Kind = "type_not_supported"
	KindTypeMismatch     Kind = "type_mismatch"
	KindInvalidUTF8      Kind = "invalid_utf8"
	KindArrayTooLarge    Kind = "array_too_large"
)

// Error is returned by every State method and codec.
type Error struct {
	Phase  Phase
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("compact: ")
	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is matches on Kind. A target without a Phase matches both phases.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Phase == "" || t.Phase == e.Phase)
}

// Sentinels for errors.Is. They match errors of the same kind from either phase;
// use EncodeError or DecodeError to match a single phase.
var (
	ErrNoBuffer         = &Error{Kind: KindNoBuffer}
	ErrBufferTooSmall   = &Error{Kind: KindBufferTooSmall}
	ErrTypeNotSupported = &Error{Kind: KindTypeNotSupported}
	ErrTypeMismatch     = &Error{Kind: KindTypeMismatch}
	ErrInvalidUTF8      = &Error{Kind: KindInvalidUTF8}
	ErrArrayTooLarge    = &Error{Kind: KindArrayTooLarge}
)

// ErrTrailingBytes is returned by Unmarshal when the message did not consume
// the whole input.
var ErrTrailingBytes = errors.New("compact: trailing bytes after message")

func EncodeError(k Kind) *Error { return &Error{Phase: PhaseEncode, Kind: k} }
func DecodeError(k Kind) *Error { return &Error{Phase: PhaseDecode, Kind: k} }

func newErr(p Phase, k Kind, format string, args ...any) *Error {
	return &Error{Phase: p, Kind: k, Detail: fmt.Sprintf(format, args...)}
}

func encodeErr(k Kind, format string, args ...any) *Error {
	return newErr(PhaseEncode, k, format, args...)
}

func decodeErr(k Kind, format string, args ...any) *Error {
	return newErr(PhaseDecode, k, format, args...)
}
