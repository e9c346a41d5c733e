package layout

import (
	"slices"

	"github.com/unkn0wn-root/compact"
)

// Kind names one wire type.
type Kind uint8

const (
	Invalid Kind = iota
	Bool
	Uint8
	Uint16
	Uint32
	Uint64
	Uint
	Int8
	Int16
	Int32
	Int64
	Int
	Float32
	Float64
	Buffer
	String
	Raw
	Fixed32
	Fixed64
	Uint32Array
)

var kindNames = [...]string{
	Invalid:     "invalid",
	Bool:        "bool",
	Uint8:       "u8",
	Uint16:      "u16",
	Uint32:      "u32",
	Uint64:      "u64",
	Uint:        "uint",
	Int8:        "i8",
	Int16:       "i16",
	Int32:       "i32",
	Int64:       "i64",
	Int:         "int",
	Float32:     "f32",
	Float64:     "f64",
	Buffer:      "buffer",
	String:      "string",
	Raw:         "raw",
	Fixed32:     "fixed32",
	Fixed64:     "fixed64",
	Uint32Array: "u32array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

func kindByName(name string) Kind {
	if i := slices.Index(kindNames[:], name); i > 0 {
		return Kind(i)
	}
	return Invalid
}

// handler is the type-erased form of a compact.Codec. Values are coerced
// before sizing, so PreEncode reports coercion failures.
type handler struct {
	preEncode func(s *compact.State, v any) error
	encode    func(s *compact.State, v any) error
	decode    func(s *compact.State) (any, error)
}

// table holds the scalar and array handler for every kind. Arrays of Raw
// and of Uint32Array are not representable and stay zero.
var table [len(kindNames)]struct{ one, many handler }

func init() {
	register(Bool, compact.Bool, toBool, identity[bool])
	register(Uint8, compact.Uint8, toUint[uint8], identity[uint8])
	register(Uint16, compact.Uint16, toUint[uint16], identity[uint16])
	register(Uint32, compact.Uint32, toUint[uint32], identity[uint32])
	register(Uint64, compact.Uint64, toUint[uint64], identity[uint64])
	register(Uint, compact.Uint, toUint[uint], identity[uint])
	register(Int8, compact.Int8, toInt[int8], identity[int8])
	register(Int16, compact.Int16, toInt[int16], identity[int16])
	register(Int32, compact.Int32, toInt[int32], identity[int32])
	register(Int64, compact.Int64, toInt[int64], identity[int64])
	register(Int, compact.Int, toInt[int], identity[int])
	register(Float32, compact.Float32, toFloat[float32], identity[float32])
	register(Float64, compact.Float64, toFloat[float64], identity[float64])
	register(Buffer, compact.Buffer, toBytes, identity[[]byte])
	register(String, compact.String, toString, identity[string])
	register(Fixed32, compact.Fixed32, toArray32, func(v [32]byte) any { return v[:] })
	register(Fixed64, compact.Fixed64, toArray64, func(v [64]byte) any { return v[:] })

	table[Raw].one = scalar(compact.Raw, toBytes, identity[[]byte])
	table[Uint32Array].one = scalar(compact.Uint32Array, toSlice(toUint[uint32]), func(v []uint32) any {
		return anySlice(v, identity[uint32])
	})
}

func register[T any](k Kind, c compact.Codec[T], coerce func(any) (T, error), out func(T) any) {
	table[k].one = scalar(c, coerce, out)
	table[k].many = scalar(compact.Array(c), toSlice(coerce), func(v []T) any {
		return anySlice(v, out)
	})
}

func scalar[T any](c compact.Codec[T], coerce func(any) (T, error), out func(T) any) handler {
	return handler{
		preEncode: func(s *compact.State, v any) error {
			t, err := coerce(v)
			if err != nil {
				return err
			}
			c.PreEncode(s, t)
			return nil
		},
		encode: func(s *compact.State, v any) error {
			t, err := coerce(v)
			if err != nil {
				return err
			}
			return c.Encode(s, t)
		},
		decode: func(s *compact.State) (any, error) {
			t, err := c.Decode(s)
			if err != nil {
				return nil, err
			}
			return out(t), nil
		},
	}
}

func identity[T any](v T) any { return v }

func anySlice[T any](v []T, out func(T) any) []any {
	res := make([]any, len(v))
	for i, e := range v {
		res[i] = out(e)
	}
	return res
}
