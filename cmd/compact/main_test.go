package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/unkn0wn-root/compact"
	"github.com/unkn0wn-root/compact/codec"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestEncodeHex(t *testing.T) {
	out, _, err := runCLI(t, `[4200, "hi"]`, "encode", "-l", "u16,string", "--hex")
	if err != nil {
		t.Fatal(err)
	}
	if out != "fd6810026869\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEncodeBinary(t *testing.T) {
	out, _, err := runCLI(t, `[true, -1]`, "encode", "--layout=bool,i8")
	if err != nil {
		t.Fatal(err)
	}
	if out != "\x01\x01" {
		t.Fatalf("got %q", out)
	}
}

func TestDecodeHex(t *testing.T) {
	out, _, err := runCLI(t, "fd6810026869\n", "decode", "-l", "u16,string", "--hex")
	if err != nil {
		t.Fatal(err)
	}
	if out != "[4200,\"hi\"]\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRoundTripFormats(t *testing.T) {
	const fields = "u32,string,array:i16,buffer,fixed32"
	block := bytes.Repeat([]byte{0xAB}, 32)
	wire := "\x07\x01x\x02\x03\x06" + "\x03\x01\x02\x03" + string(block)

	for _, format := range []string{"json", "cbor", "msgpack", "proto"} {
		values, err := formatCodec(format)
		if err != nil {
			t.Fatal(err)
		}
		in, err := values.Encode([]any{uint64(7), "x", []any{int64(-2), int64(3)}, []byte{1, 2, 3}, block})
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		got, _, err := runCLI(t, string(in), "encode", "-l", fields, "-f", format)
		if err != nil {
			t.Fatalf("%s encode: %v", format, err)
		}
		if got != wire {
			t.Fatalf("%s: got %q want %q", format, got, wire)
		}

		rendered, _, err := runCLI(t, wire, "decode", "-l", fields, "-f", format)
		if err != nil {
			t.Fatalf("%s decode: %v", format, err)
		}
		again, _, err := runCLI(t, rendered, "encode", "-l", fields, "-f", format)
		if err != nil {
			t.Fatalf("%s re-encode of %q: %v", format, rendered, err)
		}
		if again != wire {
			t.Fatalf("%s: decode then encode gave %q want %q", format, again, wire)
		}
	}
}

func TestSize(t *testing.T) {
	out, _, err := runCLI(t, `[253, "abc"]`, "size", "-l", "u8,string")
	if err != nil {
		t.Fatal(err)
	}
	if out != "7\n" {
		t.Fatalf("got %q", out)
	}
}

func TestLoggersAndVerbose(t *testing.T) {
	for _, backend := range []string{"zap", "logrus", "slog"} {
		_, stderr, err := runCLI(t, "05", "decode", "-l", "u8", "--hex", "--logger", backend, "-v")
		if err != nil {
			t.Fatalf("%s: %v", backend, err)
		}
		if !strings.Contains(stderr, "decoded") {
			t.Fatalf("%s: missing log line in %q", backend, stderr)
		}

		_, stderr, err = runCLI(t, "05", "decode", "-l", "u8", "--hex", "--logger", backend)
		if err != nil || stderr != "" {
			t.Fatalf("%s quiet: err=%v stderr=%q", backend, err, stderr)
		}
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		want  error
	}{
		{"unknown type", `[1]`, []string{"encode", "-l", "u128"}, compact.ErrTypeNotSupported},
		{"out of range", `[256]`, []string{"encode", "-l", "u8"}, compact.EncodeError(compact.KindTypeMismatch)},
		{"truncated", "02ff", []string{"decode", "-l", "string", "--hex"}, compact.ErrBufferTooSmall},
		{"trailing", "0101", []string{"decode", "-l", "u8", "--hex"}, compact.ErrTrailingBytes},
		{"too large", "010101", []string{"decode", "-l", "raw", "--hex", "--max-size", "2"}, codec.ErrPayloadTooLarge},
		{"no command", "", nil, errUsage},
	}
	for _, tc := range cases {
		_, _, err := runCLI(t, tc.stdin, tc.args...)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	for _, args := range [][]string{
		{"bogus"},
		{"encode"},
		{"encode", "-l", "u8", "-f", "yaml"},
		{"encode", "-l", "u8", "--logger", "stdout"},
		{"encode", "-l", "u8", "extra"},
	} {
		if _, _, err := runCLI(t, `[1]`, args...); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}
