// Package layout maps wire type names to compact codecs so that messages can
// be encoded and decoded without generated Go types. A Layout is the ordered
// list of field types both sides agree on out of band; the bytes themselves
// carry no type information.
//
//	l, err := layout.Parse("u16,string,array:i32")
//	b, err := l.Marshal([]any{4200, "hi", []any{-1, 2}})
//	vals, err := l.Unmarshal(b) // [4200 "hi" [-1 2]] as uint16, string, []any
package layout

import (
	"fmt"
	"strings"

	"github.com/unkn0wn-root/compact"
)

const arrayPrefix = "array:"

// Type is one field of a Layout: a Kind, or a sequence of that Kind.
type Type struct {
	Kind  Kind
	Array bool
}

func (t Type) String() string {
	if t.Array {
		return arrayPrefix + t.Kind.String()
	}
	return t.Kind.String()
}

func (t Type) handler() handler {
	if t.Array {
		return table[t.Kind].many
	}
	return table[t.Kind].one
}

// Layout is an ordered list of field types.
type Layout []Type

// Parse reads a comma separated list of type names such as
// "u8,string,array:f64". Unknown names fail with an encode-phase
// TypeNotSupported error. Raw may only appear last.
func Parse(def string) (Layout, error) {
	if strings.TrimSpace(def) == "" {
		return nil, unsupported("empty layout")
	}
	parts := strings.Split(def, ",")
	l := make(Layout, 0, len(parts))
	for i, p := range parts {
		t, err := parseType(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if t.Kind == Raw && i != len(parts)-1 {
			return nil, unsupported("raw must be the last field, found at %d", i)
		}
		l = append(l, t)
	}
	return l, nil
}

// MustParse is like Parse but panics on error.
func MustParse(def string) Layout {
	l, err := Parse(def)
	if err != nil {
		panic(err)
	}
	return l
}

func parseType(name string) (Type, error) {
	elem, isArray := strings.CutPrefix(name, arrayPrefix)
	t := Type{Kind: kindByName(elem), Array: isArray}
	if t.Kind == Invalid || t.handler().decode == nil {
		return Type{}, unsupported("unknown type %q", name)
	}
	return t, nil
}

func unsupported(format string, args ...any) error {
	return &compact.Error{
		Phase:  compact.PhaseEncode,
		Kind:   compact.KindTypeNotSupported,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (l Layout) String() string {
	names := make([]string, len(l))
	for i, t := range l {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}

func (l Layout) check(vals []any) error {
	if len(vals) != len(l) {
		return mismatch("layout %q has %d fields, got %d values", l, len(l), len(vals))
	}
	return nil
}

// PreEncode runs the sizing pass for vals, growing s.End.
func (l Layout) PreEncode(s *compact.State, vals []any) error {
	if err := l.check(vals); err != nil {
		return err
	}
	for i, t := range l {
		if err := t.handler().preEncode(s, vals[i]); err != nil {
			return fieldErr(i, t, err)
		}
	}
	return nil
}

// Encode runs the fill pass for vals. On error Start is restored.
func (l Layout) Encode(s *compact.State, vals []any) error {
	if err := l.check(vals); err != nil {
		return err
	}
	start := s.Start
	for i, t := range l {
		if err := t.handler().encode(s, vals[i]); err != nil {
			s.Start = start
			return fieldErr(i, t, err)
		}
	}
	return nil
}

// Decode reads one value per field. Integers decode to their exact Go type,
// fixed blocks and buffers to []byte, arrays to []any.
func (l Layout) Decode(s *compact.State) ([]any, error) {
	start := s.Start
	out := make([]any, len(l))
	for i, t := range l {
		v, err := t.handler().decode(s)
		if err != nil {
			s.Start = start
			return nil, fieldErr(i, t, err)
		}
		out[i] = v
	}
	return out, nil
}

// Size returns the encoded length of vals.
func (l Layout) Size(vals []any) (int, error) {
	s := compact.NewState()
	if err := l.PreEncode(s, vals); err != nil {
		return 0, err
	}
	return s.End, nil
}

func (l Layout) Marshal(vals []any) ([]byte, error) {
	s := compact.NewState()
	if err := l.PreEncode(s, vals); err != nil {
		return nil, err
	}
	s.Alloc()
	if err := l.Encode(s, vals); err != nil {
		return nil, err
	}
	return s.Buffer(), nil
}

// Unmarshal decodes b. The whole input must be consumed.
func (l Layout) Unmarshal(b []byte) ([]any, error) {
	s := compact.FromBuffer(b)
	vals, err := l.Decode(s)
	if err != nil {
		return nil, err
	}
	if rest := s.End - s.Start; rest > 0 {
		return nil, fmt.Errorf("%w: %d left at offset %d", compact.ErrTrailingBytes, rest, s.Start)
	}
	return vals, nil
}

func fieldErr(i int, t Type, err error) error {
	return fmt.Errorf("field %d (%s): %w", i, t, err)
}
