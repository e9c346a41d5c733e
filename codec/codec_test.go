package codec

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/unkn0wn-root/compact"
	"github.com/unkn0wn-root/compact/layout"
)

type point struct{ X, Y int32 }

func (p *point) PreEncode(s *compact.State) {
	compact.Int32.PreEncode(s, p.X)
	compact.Int32.PreEncode(s, p.Y)
}

func (p *point) Encode(s *compact.State) error {
	if err := compact.Int32.Encode(s, p.X); err != nil {
		return err
	}
	return compact.Int32.Encode(s, p.Y)
}

func (p *point) Decode(s *compact.State) (err error) {
	if p.X, err = compact.Int32.Decode(s); err != nil {
		return err
	}
	p.Y, err = compact.Int32.Decode(s)
	return err
}

func newPoint() *point { return &point{} }

type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) Debug(msg string, _ compact.Fields) { l.add(msg) }
func (l *recordingLogger) Info(msg string, _ compact.Fields)  { l.add(msg) }
func (l *recordingLogger) Warn(msg string, _ compact.Fields)  { l.add(msg) }
func (l *recordingLogger) Error(msg string, _ compact.Fields) { l.add(msg) }

func (l *recordingLogger) add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.msgs)
}

func TestCompactRoundTrip(t *testing.T) {
	c := NewCompact(newPoint, Options{})
	b, err := c.Encode(&point{X: -1, Y: 300})
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{1, 0xFD, 0x58, 0x02}; !bytes.Equal(b, want) {
		t.Fatalf("got %x want %x", b, want)
	}
	p, err := c.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if *p != (point{X: -1, Y: 300}) {
		t.Fatalf("got %+v", *p)
	}
}

func TestCompactTrailingBytes(t *testing.T) {
	log := &recordingLogger{}
	strict := NewCompact(newPoint, Options{Logger: log})
	if _, err := strict.Decode([]byte{2, 4, 9}); !errors.Is(err, compact.ErrTrailingBytes) {
		t.Fatalf("got %v, want ErrTrailingBytes", err)
	}
	if log.count() != 1 {
		t.Fatalf("expected one log line, got %d", log.count())
	}

	loose := NewCompact(newPoint, Options{AllowTrailing: true})
	p, err := loose.Decode([]byte{2, 4, 9})
	if err != nil {
		t.Fatal(err)
	}
	if *p != (point{X: 1, Y: 2}) {
		t.Fatalf("got %+v", *p)
	}
}

func TestCompactDecodeFailureIsLogged(t *testing.T) {
	log := &recordingLogger{}
	c := NewCompact(newPoint, Options{Logger: log})
	_, err := c.Decode([]byte{2})
	if !errors.Is(err, compact.DecodeError(compact.KindBufferTooSmall)) {
		t.Fatalf("got %v", err)
	}
	if log.count() != 1 {
		t.Fatalf("expected one log line, got %d", log.count())
	}
}

func TestCompactMaxDecode(t *testing.T) {
	c := NewCompact(newPoint, Options{MaxDecode: 2})
	if _, err := c.Decode([]byte{2, 4, 9}); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("got %v", err)
	}

	unlimited := NewCompact(newPoint, Options{MaxDecode: -1, AllowTrailing: true})
	big := make([]byte, DefaultMaxDecode+1)
	if _, err := unlimited.Decode(big); err != nil {
		t.Fatalf("negative MaxDecode should disable the check: %v", err)
	}
	if _, err := NewCompact(newPoint, Options{AllowTrailing: true}).Decode(big); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("default limit: got %v", err)
	}
}

func TestLayoutCodec(t *testing.T) {
	c := NewLayout(layout.MustParse("u8,string,array:i16"), Options{})
	b, err := c.Encode([]any{0xFD, "hi", []any{-1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xFD, 0xFD, 0x00, 2, 'h', 'i', 2, 1, 4}
	if !bytes.Equal(b, want) {
		t.Fatalf("got %x want %x", b, want)
	}
	if n, err := c.Size([]any{0xFD, "hi", []any{-1, 2}}); err != nil || n != len(want) {
		t.Fatalf("Size = %d, %v", n, err)
	}

	vals, err := c.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(vals, []any{uint8(0xFD), "hi", []any{int16(-1), int16(2)}}) {
		t.Fatalf("got %#v", vals)
	}

	if _, err := c.Decode(append(b, 0)); !errors.Is(err, compact.ErrTrailingBytes) {
		t.Fatalf("got %v", err)
	}
}

func TestLimit(t *testing.T) {
	c := Limit[[]byte]{Inner: Bytes{}, MaxDecode: 3}
	if _, err := c.Decode([]byte("abcd")); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("got %v", err)
	}
	got, err := c.Decode([]byte("abc"))
	if err != nil || string(got) != "abc" {
		t.Fatalf("got %q, %v", got, err)
	}

	off := Limit[[]byte]{Inner: Bytes{}}
	if _, err := off.Decode(make([]byte, 1<<10)); err != nil {
		t.Fatalf("zero MaxDecode should disable the check: %v", err)
	}
}

func TestHex(t *testing.T) {
	b, err := Hex{}.Encode([]byte{0xFD, 0x68, 0x10})
	if err != nil || string(b) != "fd6810" {
		t.Fatalf("got %q, %v", b, err)
	}
	got, err := Hex{}.Decode([]byte(" FD6810\n"))
	if err != nil || !bytes.Equal(got, []byte{0xFD, 0x68, 0x10}) {
		t.Fatalf("got %x, %v", got, err)
	}
	if _, err := (Hex{}).Decode([]byte("zz")); err == nil {
		t.Fatal("expected error")
	}
}

func TestInterchangeFeedsLayout(t *testing.T) {
	l := layout.MustParse("u64,i32,f64,buffer,string,array:u16")
	in := []any{uint64(math.MaxUint64), int32(-7), 2.5, []byte{1, 2, 3}, "ok", []any{uint16(1), uint16(300)}}
	wire, err := l.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	formats := map[string]Codec[[]any]{
		"json":    JSON[[]any]{},
		"cbor":    MustCBOR[[]any](true),
		"msgpack": Msgpack[[]any]{},
	}
	for name, f := range formats {
		text, err := f.Encode(in)
		if err != nil {
			t.Fatalf("%s encode: %v", name, err)
		}
		back, err := f.Decode(text)
		if err != nil {
			t.Fatalf("%s decode: %v", name, err)
		}
		again, err := l.Marshal(back)
		if err != nil {
			t.Fatalf("%s: layout rejected %#v: %v", name, back, err)
		}
		if !bytes.Equal(again, wire) {
			t.Fatalf("%s: got %x want %x", name, again, wire)
		}
	}
}

func TestMsgpackKeepsBinary(t *testing.T) {
	l := layout.MustParse("buffer,fixed32,array:buffer,raw")
	block := bytes.Repeat([]byte{7}, 32)
	in := []any{[]byte{1, 2, 3}, block, []any{[]byte{4}, nil}, []byte("tail")}
	wire, err := l.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	vals, err := l.Unmarshal(wire)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Msgpack[[]any]{}.Encode(vals)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Msgpack[[]any]{}.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := back[0].([]byte); !ok || !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("buffer decoded as %#v", back[0])
	}

	again, err := l.Marshal(back)
	if err != nil {
		t.Fatalf("layout rejected %#v: %v", back, err)
	}
	if !bytes.Equal(again, wire) {
		t.Fatalf("got %x want %x", again, wire)
	}
}

func TestProtoList(t *testing.T) {
	l := layout.MustParse("u8,i16,f32,buffer,string,bool,u32array,array:i8")
	in := []any{uint8(7), int16(-300), float32(1.5), []byte{9}, "x", true, []uint32{4}, []any{int8(-1)}}
	b, err := ProtoList{}.Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ProtoList{}.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	want := []any{7.0, -300.0, 1.5, "CQ==", "x", true, []any{4.0}, []any{-1.0}}
	if !reflect.DeepEqual(back, want) {
		t.Fatalf("got %#v", back)
	}

	wire, _ := l.Marshal(in)
	again, err := l.Marshal(back)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(again, wire) {
		t.Fatalf("got %x want %x", again, wire)
	}

	if _, err := (ProtoList{}).Encode([]any{struct{}{}}); err == nil {
		t.Fatal("expected error for unsupported value")
	}
}
