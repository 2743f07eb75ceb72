package pixel

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yyyoichi/stego_zero/internal/bitconv"
	"github.com/yyyoichi/stego_zero/internal/capacity"
	"github.com/yyyoichi/stego_zero/internal/ecc"
	"github.com/yyyoichi/stego_zero/internal/header"
	"github.com/yyyoichi/stego_zero/internal/lsb"
)

var (
	ErrInsufficientCapacity = errors.New("payload exceeds carrier capacity")
	ErrNoPayloadFound       = errors.New("no payload found")
	ErrDelimiterInPayload   = errors.New("payload contains the NUL delimiter")
)

// Options tunes how payload bits are laid into the samples.
type Options struct {
	// ECC protects the embedded bit stream. Nil means ecc.None.
	ECC ecc.Codec
	// Workers bounds the goroutines used for packing large buffers.
	Workers int
}

// Codec returns the configured ECC, defaulting to ecc.None.
func (o Options) Codec() ecc.Codec {
	if o.ECC == nil {
		return ecc.None{}
	}
	return o.ECC
}

// Offset returns the first payload sample.
func Offset(reserveHeader bool) int {
	if reserveHeader {
		return header.Size
	}
	return 0
}

// Embed packs payload into samples, after the header region when reserveHeader is set.
// The header itself is written by the header package. Samples are left untouched on error.
func Embed(samples []uint8, payload []byte, reserveHeader bool, opts Options) error {
	code := opts.Codec()
	reserved := Offset(reserveHeader)
	if need := code.EncodedLen(len(payload) * 8); !capacity.FitsBits(need, len(samples), reserved) {
		return fmt.Errorf("%w: need %d bits, have %d", ErrInsufficientCapacity, need, capacity.AvailableBits(len(samples), reserved))
	}
	bits := code.Encode(bitconv.BytesToBools(payload))
	if err := lsb.Pack(samples, reserved, bits, opts.Workers); err != nil {
		return fmt.Errorf("%w: %w", ErrInsufficientCapacity, err)
	}
	return nil
}

// EmbedDelimited packs payload followed by a NUL byte from the first sample.
func EmbedDelimited(samples []uint8, payload []byte, opts Options) error {
	if i := bytes.IndexByte(payload, 0); i >= 0 {
		return fmt.Errorf("%w: at byte %d", ErrDelimiterInPayload, i)
	}
	framed := make([]byte, len(payload)+1)
	copy(framed, payload)
	return Embed(samples, framed, false, opts)
}

// Extract reads every remaining sample as payload bytes.
// The end of the payload is implied by its own encoding, so trailing carrier bytes are returned too.
func Extract(samples []uint8, reserveHeader bool, opts Options) []byte {
	offset := Offset(reserveHeader)
	bits := lsb.Unpack(samples, len(samples)-offset, offset, opts.Workers)
	return bitconv.BoolsToBytes(opts.Codec().Decode(bits))
}

// ExtractDelimited reads payload bytes up to the first NUL byte.
func ExtractDelimited(samples []uint8, opts Options) ([]byte, error) {
	data := Extract(samples, false, opts)
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return nil, ErrNoPayloadFound
	}
	return data[:i:i], nil
}
