package textmark

// Codec hides payloads in text with a fixed set of options.
type Codec struct {
	terminate bool
}

type Option func(*Codec)

// WithTerminator controls whether End follows the data marks. Default is true.
// Without it, a decoder reads every mark to the end of the text.
func WithTerminator(on bool) Option {
	return func(c *Codec) {
		c.terminate = on
	}
}

func New(opts ...Option) *Codec {
	c := &Codec{terminate: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) Encode(cover string, payload []byte) string {
	return encode(cover, payload, c.terminate)
}

func (c *Codec) Decode(stego string) []byte {
	return Decode(stego)
}
