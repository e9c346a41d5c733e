package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *structpb.ListValue { return &structpb.ListValue{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}

// ProtoList carries a value list as a google.protobuf.ListValue.
// Numbers come back as float64 and byte slices as base64 strings, both of
// which a layout accepts again on encode. Integers above 2^53 lose precision.
type ProtoList struct{}

var _ Codec[[]any] = ProtoList{}

var listValue = NewProtobuf(func() *structpb.ListValue { return &structpb.ListValue{} })

func (ProtoList) Encode(vals []any) ([]byte, error) {
	norm, err := normalize(vals)
	if err != nil {
		return nil, err
	}
	l, err := structpb.NewList(norm.([]any))
	if err != nil {
		return nil, err
	}
	return listValue.Encode(l)
}

func (ProtoList) Decode(b []byte) ([]any, error) {
	l, err := listValue.Decode(b)
	if err != nil {
		return nil, err
	}
	return l.AsSlice(), nil
}

// normalize widens the value types structpb does not accept.
func normalize(v any) (any, error) {
	switch x := v.(type) {
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case uint8:
		return uint64(x), nil
	case uint16:
		return uint64(x), nil
	case float32:
		return float64(x), nil
	case []uint32:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			n, err := normalize(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case nil, bool, int, int32, int64, uint, uint32, uint64, float64, string, []byte, map[string]any:
		return x, nil
	}
	return nil, fmt.Errorf("protobuf: unsupported value %T", v)
}
