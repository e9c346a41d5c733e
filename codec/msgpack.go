package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Integers are written in their smallest msgpack form and decoded into
// interfaces at that wire width. Binary values decode as []byte.
type Msgpack[V any] struct{}

var _ Codec[[]any] = Msgpack[[]any]{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.NewDecoder(bytes.NewReader(b)).Decode(&v)
	return v, err
}
