package layout

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/unkn0wn-root/compact"
)

// number is satisfied by encoding/json.Number and jsoniter.Number.
type number interface {
	String() string
	Float64() (float64, error)
	Int64() (int64, error)
}

func mismatch(format string, args ...any) error {
	return &compact.Error{
		Phase:  compact.PhaseEncode,
		Kind:   compact.KindTypeMismatch,
		Detail: fmt.Sprintf(format, args...),
	}
}

type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

type signed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

func toUint[T unsigned](v any) (T, error) {
	var u uint64
	switch x := v.(type) {
	case uint8:
		u = uint64(x)
	case uint16:
		u = uint64(x)
	case uint32:
		u = uint64(x)
	case uint64:
		u = x
	case uint:
		u = uint64(x)
	case int8, int16, int32, int64, int:
		i, _ := toInt[int64](x)
		if i < 0 {
			return 0, mismatch("negative value %d for %T", i, T(0))
		}
		u = uint64(i)
	case float32:
		return toUint[T](float64(x))
	case float64:
		if x < 0 || x != math.Trunc(x) || x >= 1<<64 {
			return 0, mismatch("%v is not a %T", x, T(0))
		}
		u = uint64(x)
	case number:
		n, err := strconv.ParseUint(x.String(), 10, 64)
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil {
				return 0, mismatch("%q is not a %T", x.String(), T(0))
			}
			return toUint[T](f)
		}
		u = n
	default:
		return 0, mismatch("%T is not a %T", v, T(0))
	}
	if uint64(T(u)) != u {
		return 0, mismatch("%d overflows %T", u, T(0))
	}
	return T(u), nil
}

func toInt[T signed](v any) (T, error) {
	var i int64
	switch x := v.(type) {
	case int8:
		i = int64(x)
	case int16:
		i = int64(x)
	case int32:
		i = int64(x)
	case int64:
		i = x
	case int:
		i = int64(x)
	case uint8, uint16, uint32, uint64, uint:
		u, _ := toUint[uint64](x)
		if u > math.MaxInt64 {
			return 0, mismatch("%d overflows %T", u, T(0))
		}
		i = int64(u)
	case float32:
		return toInt[T](float64(x))
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, mismatch("%v is not a %T", x, T(0))
		}
		i = int64(x)
	case number:
		n, err := strconv.ParseInt(x.String(), 10, 64)
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil {
				return 0, mismatch("%q is not a %T", x.String(), T(0))
			}
			return toInt[T](f)
		}
		i = n
	default:
		return 0, mismatch("%T is not a %T", v, T(0))
	}
	if int64(T(i)) != i {
		return 0, mismatch("%d overflows %T", i, T(0))
	}
	return T(i), nil
}

func toFloat[T ~float32 | ~float64](v any) (T, error) {
	switch x := v.(type) {
	case float32:
		return T(x), nil
	case float64:
		return T(x), nil
	case int8, int16, int32, int64, int:
		i, _ := toInt[int64](x)
		return T(i), nil
	case uint8, uint16, uint32, uint64, uint:
		u, _ := toUint[uint64](x)
		return T(u), nil
	case number:
		f, err := x.Float64()
		if err != nil {
			return 0, mismatch("%q is not a %T", x.String(), T(0))
		}
		return T(f), nil
	}
	return 0, mismatch("%T is not a %T", v, T(0))
}

func toBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch("%T is not a bool", v)
	}
	return b, nil
}

func toString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		if !utf8.Valid(x) {
			return "", mismatch("%d bytes are not valid UTF-8", len(x))
		}
		return string(x), nil
	}
	return "", mismatch("%T is not a string", v)
}

// toBytes accepts raw bytes, standard base64 text and lists of byte values.
// nil is the absent buffer.
func toBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return x, nil
	case string:
		b, err := base64.StdEncoding.DecodeString(x)
		if err != nil {
			return nil, mismatch("bytes are not base64: %v", err)
		}
		return b, nil
	case []any:
		return toSlice(toUint[uint8])(x)
	}
	return nil, mismatch("%T is not a byte buffer", v)
}

func toArray32(v any) (out [32]byte, err error) {
	err = toArray(v, out[:])
	return out, err
}

func toArray64(v any) (out [64]byte, err error) {
	err = toArray(v, out[:])
	return out, err
}

func toArray(v any, dst []byte) error {
	b, err := toBytes(v)
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return mismatch("fixed block of %d bytes, got %d", len(dst), len(b))
	}
	copy(dst, b)
	return nil
}

// toSlice lifts an element coercion to lists. Typed slices other than []any
// are accepted as-is when their element type already matches.
func toSlice[T any](elem func(any) (T, error)) func(any) ([]T, error) {
	return func(v any) ([]T, error) {
		switch x := v.(type) {
		case nil:
			return nil, nil
		case []T:
			return x, nil
		case []any:
			out := make([]T, len(x))
			for i, e := range x {
				t, err := elem(e)
				if err != nil {
					return nil, fmt.Errorf("element %d: %w", i, err)
				}
				out[i] = t
			}
			return out, nil
		}
		return nil, mismatch("%T is not a list", v)
	}
}
