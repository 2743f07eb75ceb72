package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	ErrNotCompressed = errors.New("no zstd frame")
)

// DefaultLevel favours size over speed since every byte costs 8 carrier samples.
const DefaultLevel = 19

var encoders sync.Map // zstd.EncoderLevel -> *sync.Pool

func encoderPool(level zstd.EncoderLevel) *sync.Pool {
	if p, ok := encoders.Load(level); ok {
		return p.(*sync.Pool)
	}
	p, _ := encoders.LoadOrStore(level, &sync.Pool{
		New: func() any {
			enc, err := zstd.NewWriter(
				nil,
				zstd.WithEncoderConcurrency(1),
				zstd.WithEncoderLevel(level),
				zstd.WithEncoderCRC(true),
				zstd.WithLowerEncoderMem(true),
			)
			if err != nil {
				panic(err)
			}
			return enc
		},
	})
	return p.(*sync.Pool)
}

// Compress encodes data as a single zstd frame that records its content size.
// level follows the zstd command line scale (1-22).
func Compress(data []byte, level int) []byte {
	pool := encoderPool(zstd.EncoderLevelFromZstd(level))
	enc := pool.Get().(*zstd.Encoder)
	defer pool.Put(enc)
	return enc.EncodeAll(data, nil)
}

// Decompress decodes the first zstd frame of data and ignores whatever follows it.
// maxSize bounds the declared content size so that noise cannot request huge buffers.
func Decompress(data []byte, maxSize int) ([]byte, error) {
	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotCompressed, err)
	}
	if h.Skippable || !h.HasFCS || h.FrameContentSize == 0 {
		return nil, fmt.Errorf("%w: unsupported frame header", ErrNotCompressed)
	}
	if h.FrameContentSize > uint64(maxSize) {
		return nil, fmt.Errorf("%w: content size %d exceeds %d", ErrNotCompressed, h.FrameContentSize, maxSize)
	}

	dec, err := zstd.NewReader(
		bytes.NewReader(data),
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(uint64(maxSize)),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	defer dec.Close()

	// Carrier samples after the frame are noise, so read exactly the declared content
	// and leave the following bytes unparsed. The frame checksum is verified with the last block.
	// The buffer grows with the decoded blocks, not with the size the frame claims.
	var out bytes.Buffer
	n, err := io.Copy(&out, io.LimitReader(dec, int64(h.FrameContentSize)))
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	if uint64(n) != h.FrameContentSize {
		return nil, fmt.Errorf("zstd decode: %w: %d of %d bytes", io.ErrUnexpectedEOF, n, h.FrameContentSize)
	}
	return out.Bytes(), nil
}
