package compact

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesKindAndPhase(t *testing.T) {
	err := decodeErr(KindTypeMismatch, "marker 0x%02X", 0xFF)

	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatal("sentinel without phase should match")
	}
	if !errors.Is(err, DecodeError(KindTypeMismatch)) {
		t.Fatal("same phase should match")
	}
	if errors.Is(err, EncodeError(KindTypeMismatch)) {
		t.Fatal("other phase must not match")
	}
	if errors.Is(err, ErrBufferTooSmall) {
		t.Fatal("other kind must not match")
	}

	wrapped := fmt.Errorf("field 3: %w", err)
	if !errors.Is(wrapped, ErrTypeMismatch) {
		t.Fatal("wrapped error should match")
	}
	var ce *Error
	if !errors.As(wrapped, &ce) || ce.Kind != KindTypeMismatch {
		t.Fatalf("errors.As: got %v", ce)
	}
}

func TestErrorString(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{encodeErr(KindNoBuffer, "call Alloc"), "compact: [encode] no_buffer: call Alloc"},
		{DecodeError(KindArrayTooLarge), "compact: [decode] array_too_large"},
		{ErrInvalidUTF8, "compact: invalid_utf8"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("got %q want %q", got, tc.want)
		}
	}
}
