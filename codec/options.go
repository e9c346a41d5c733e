package codec

import "github.com/unkn0wn-root/compact"

// DefaultMaxDecode bounds Decode input when Options.MaxDecode is zero.
const DefaultMaxDecode = 16 << 20

// Options configures Compact and Layout codecs. The zero value is usable.
type Options struct {
	// Logger receives decode failures at Debug. Defaults to compact.NopLogger.
	Logger compact.Logger
	// MaxDecode is the largest payload Decode accepts. Zero means
	// DefaultMaxDecode, a negative value disables the check.
	MaxDecode int
	// AllowTrailing accepts input that continues after the decoded value.
	AllowTrailing bool
}

func (o Options) withDefaults() Options {
	o.Logger = coalesce[compact.Logger](o.Logger, compact.NopLogger{})
	o.MaxDecode = coalesce(o.MaxDecode, DefaultMaxDecode)
	return o
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
