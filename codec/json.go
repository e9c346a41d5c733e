package codec

import jsoniter "github.com/json-iterator/go"

// json decodes numbers into interfaces as json.Number so 64-bit integers survive
// the round trip.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// JSON is a Codec backed by json-iterator. The zero value is ready to use.
// Byte slices are written as base64 strings, as encoding/json does.
type JSON[V any] struct{}

var _ Codec[[]any] = JSON[[]any]{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
