package codec

import (
	"github.com/unkn0wn-root/compact"
	"github.com/unkn0wn-root/compact/layout"
)

// Layout is a Codec for dynamic value lists described by a layout.Layout.
type Layout struct {
	l    layout.Layout
	opts Options
}

var _ Codec[[]any] = Layout{}

func NewLayout(l layout.Layout, opts Options) Layout {
	return Layout{l: l, opts: opts.withDefaults()}
}

func (c Layout) Encode(vals []any) ([]byte, error) { return c.l.Marshal(vals) }

func (c Layout) Decode(b []byte) ([]any, error) {
	if err := checkLimit(len(b), c.opts.MaxDecode); err != nil {
		return nil, err
	}
	s := compact.FromBuffer(b)
	vals, err := c.l.Decode(s)
	if err != nil {
		c.opts.Logger.Debug("layout decode failed", compact.Fields{
			"layout": c.l.String(), "size": len(b), "err": err,
		})
		return nil, err
	}
	if err := trailing(s, c.opts); err != nil {
		return nil, err
	}
	return vals, nil
}

// Size returns the encoded length of vals without encoding them.
func (c Layout) Size(vals []any) (int, error) { return c.l.Size(vals) }
