package codec

import (
	"errors"
	"fmt"
)

// ErrPayloadTooLarge is returned by Decode when the input exceeds the
// configured maximum.
var ErrPayloadTooLarge = errors.New("codec: payload too large")

// Limit wraps another codec to enforce a maximum allowed payload size
// at Decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
type Limit[V any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec[V]
	// MaxDecode is the maximum permitted length (in bytes) of the incoming
	// payload for Decode. If payload length exceeds MaxDecode, Decode returns
	// an error without invoking Inner.
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c Limit[V]) Decode(b []byte) (V, error) {
	if err := checkLimit(len(b), c.MaxDecode); err != nil {
		var zero V
		return zero, err
	}
	return c.Inner.Decode(b)
}

func checkLimit(n, limit int) error {
	if limit > 0 && n > limit {
		return fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, n, limit)
	}
	return nil
}
