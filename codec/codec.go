// Package codec adapts compact messages and layouts to a byte-level Codec
// interface, next to the interchange formats the compact CLI reads and writes.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
