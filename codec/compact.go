package codec

import (
	"fmt"

	"github.com/unkn0wn-root/compact"
)

// Compact is a Codec for application types implementing compact.Message.
// Construct with NewCompact; the zero value is NOT ready to use.
type Compact[V compact.Message] struct {
	new  func() V // constructor for an empty message (e.g., func() *Peer { return &Peer{} })
	opts Options
}

var _ Codec[compact.Message] = Compact[compact.Message]{}

func NewCompact[V compact.Message](ctor func() V, opts Options) Compact[V] {
	return Compact[V]{new: ctor, opts: opts.withDefaults()}
}

func (c Compact[V]) Encode(v V) ([]byte, error) {
	return compact.Marshal(v)
}

func (c Compact[V]) Decode(b []byte) (V, error) {
	m := c.new()
	if err := checkLimit(len(b), c.opts.MaxDecode); err != nil {
		return m, err
	}
	s := compact.FromBuffer(b)
	if err := m.Decode(s); err != nil {
		c.opts.Logger.Debug("compact decode failed", compact.Fields{
			"type": fmt.Sprintf("%T", m), "size": len(b), "offset": s.Start, "err": err,
		})
		return m, err
	}
	return m, trailing(s, c.opts)
}

// trailing reports bytes left after a decode unless the options allow them.
func trailing(s *compact.State, opts Options) error {
	rest := s.End - s.Start
	if rest <= 0 {
		return nil
	}
	if opts.AllowTrailing {
		opts.Logger.Debug("ignoring trailing bytes", compact.Fields{"offset": s.Start, "rest": rest})
		return nil
	}
	opts.Logger.Debug("trailing bytes after message", compact.Fields{"offset": s.Start, "rest": rest})
	return fmt.Errorf("%w: %d left at offset %d", compact.ErrTrailingBytes, rest, s.Start)
}
