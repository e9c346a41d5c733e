// compact encodes, decodes and sizes compact-encoded messages from the
// command line. Values are exchanged as a JSON (or CBOR, msgpack, protobuf
// ListValue) list whose order matches the layout.
//
//	echo '[4200, "hi"]' | compact encode -l u16,string --hex
//	fd6810026869
//	echo fd6810026869 | compact decode -l u16,string --hex
//	[4200,"hi"]
package main

import (
	"errors"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/compact"
	"github.com/unkn0wn-root/compact/codec"
	"github.com/unkn0wn-root/compact/layout"
	logrusadapter "github.com/unkn0wn-root/compact/log/logrus"
	slogadapter "github.com/unkn0wn-root/compact/log/slog"
	zapadapter "github.com/unkn0wn-root/compact/log/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage: compact <encode|decode|size> -l <layout> [flags]")

type options struct {
	layout  string
	format  string
	hex     bool
	maxSize int
	logger  string
	verbose bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printHelp(stderr)
		return errUsage
	}
	cmd := args[0]
	switch cmd {
	case "help", "-h", "--help":
		printHelp(stdout)
		return nil
	case "encode", "decode", "size":
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	var o options
	flagSet := pflag.NewFlagSet("compact "+cmd, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&o.layout, "layout", "l", "", "comma separated field types, e.g. u8,string,array:i32")
	flagSet.StringVarP(&o.format, "format", "f", "json", "value list format: json, cbor, msgpack or proto")
	flagSet.BoolVar(&o.hex, "hex", false, "read or write compact bytes as hex text")
	flagSet.IntVar(&o.maxSize, "max-size", codec.DefaultMaxDecode, "largest compact input decode accepts, negative disables")
	flagSet.StringVar(&o.logger, "logger", "zap", "log backend: zap, logrus or slog")
	flagSet.BoolVarP(&o.verbose, "verbose", "v", false, "log at debug level")
	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if o.layout == "" {
		return errors.New("--layout is required")
	}

	l, err := layout.Parse(o.layout)
	if err != nil {
		return err
	}
	values, err := formatCodec(o.format)
	if err != nil {
		return err
	}
	log, flush, err := newLogger(o.logger, o.verbose, stderr)
	if err != nil {
		return err
	}
	defer flush()

	var framing codec.Codec[[]byte] = codec.Bytes{}
	if o.hex {
		framing = codec.Hex{}
	}
	c := codec.NewLayout(l, codec.Options{Logger: log, MaxDecode: o.maxSize})

	in, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	switch cmd {
	case "encode":
		vals, err := values.Decode(in)
		if err != nil {
			return fmt.Errorf("parse %s values: %w", o.format, err)
		}
		b, err := c.Encode(vals)
		if err != nil {
			return err
		}
		log.Info("encoded", compact.Fields{"layout": l.String(), "size": len(b)})
		return write(stdout, framing, b, o.hex)

	case "decode":
		b, err := framing.Decode(in)
		if err != nil {
			return err
		}
		vals, err := c.Decode(b)
		if err != nil {
			return err
		}
		out, err := values.Encode(vals)
		if err != nil {
			return fmt.Errorf("render %s values: %w", o.format, err)
		}
		log.Info("decoded", compact.Fields{"layout": l.String(), "size": len(b)})
		_, err = stdout.Write(out)
		if err == nil && o.format == "json" {
			_, err = io.WriteString(stdout, "\n")
		}
		return err

	default:
		vals, err := values.Decode(in)
		if err != nil {
			return fmt.Errorf("parse %s values: %w", o.format, err)
		}
		n, err := c.Size(vals)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, n)
		return err
	}
}

func write(w io.Writer, framing codec.Codec[[]byte], b []byte, text bool) error {
	out, err := framing.Encode(b)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	if text {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func formatCodec(name string) (codec.Codec[[]any], error) {
	switch name {
	case "json":
		return codec.JSON[[]any]{}, nil
	case "cbor":
		c, err := codec.NewCBOR[[]any](true)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "msgpack":
		return codec.Msgpack[[]any]{}, nil
	case "proto":
		return codec.ProtoList{}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want json, cbor, msgpack or proto)", name)
}

// newLogger writes to w at Warn, or at Debug when verbose.
func newLogger(backend string, verbose bool, w io.Writer) (compact.Logger, func(), error) {
	switch backend {
	case "zap":
		level := zapcore.WarnLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(w), level)
		zl := zap.New(core)
		return zapadapter.ZapLogger{L: zl}, func() { _ = zl.Sync() }, nil
	case "logrus":
		lg := logrus.New()
		lg.SetOutput(w)
		lg.SetLevel(logrus.WarnLevel)
		if verbose {
			lg.SetLevel(logrus.DebugLevel)
		}
		return logrusadapter.LogrusLogger{E: logrus.NewEntry(lg)}, func() {}, nil
	case "slog":
		level := stdslog.LevelWarn
		if verbose {
			level = stdslog.LevelDebug
		}
		h := stdslog.NewTextHandler(w, &stdslog.HandlerOptions{Level: level})
		return slogadapter.Logger{L: stdslog.New(h)}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown logger %q (want zap, logrus or slog)", backend)
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `compact encodes value lists with the compact binary encoding.

Usage:
  compact encode -l <layout> [-f json|cbor|msgpack|proto] [--hex]   values on stdin, bytes on stdout
  compact decode -l <layout> [-f json|cbor|msgpack|proto] [--hex]   bytes on stdin, values on stdout
  compact size   -l <layout> [-f json|cbor|msgpack|proto]           encoded length of the values

Types:
  bool u8 u16 u32 u64 uint i8 i16 i32 i64 int f32 f64
  buffer string raw fixed32 fixed64 u32array array:<type>

Run "compact <command> --help" for flags.
`)
}
