package stego

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"

	"github.com/yyyoichi/stego_zero/internal/compress"
	"github.com/yyyoichi/stego_zero/internal/ecc"
	"github.com/yyyoichi/stego_zero/internal/header"
	"github.com/yyyoichi/stego_zero/internal/packager"
	"github.com/yyyoichi/stego_zero/internal/pixel"
	"github.com/yyyoichi/stego_zero/internal/raster"
	"github.com/yyyoichi/stego_zero/textmark"
)

var (
	ErrInsufficientCapacity = pixel.ErrInsufficientCapacity
	ErrDimensionOverflow    = header.ErrDimensionOverflow
	ErrHeaderCorrupted      = header.ErrCorrupted
	ErrNoPayloadFound       = pixel.ErrNoPayloadFound
	ErrMalformedPayload     = packager.ErrMalformedPayload
	ErrDelimiterInPayload   = pixel.ErrDelimiterInPayload
	ErrInvalidOption        = errors.New("invalid option")
)

// Samples is a flat RGB sample buffer with the alpha channel kept aside.
type Samples = raster.Buffer

// Result describes the secret image of an image-in-image container.
type Result = packager.Result

type (
	Format = raster.Format
	Kernel = raster.Kernel
)

const (
	BMP = raster.BMP
	PNG = raster.PNG
	QOI = raster.QOI

	CatmullRom      = raster.CatmullRom
	BiLinear        = raster.BiLinear
	ApproxBiLinear  = raster.ApproxBiLinear
	NearestNeighbor = raster.NearestNeighbor
)

// HideText is a convenience function that creates a Stego instance and calls its HideText method.
func HideText(cover string, payload []byte, opts ...Option) (string, error) {
	s, err := New(opts...)
	if err != nil {
		return "", err
	}
	return s.HideText(cover, payload), nil
}

// RevealText is a convenience function that creates a Stego instance and calls its RevealText method.
func RevealText(stego string) ([]byte, error) {
	s, _ := New()
	return s.RevealText(stego)
}

// HideInImage is a convenience function that creates a Stego instance and calls its HideInImage method.
func HideInImage(ctx context.Context, cover image.Image, payload []byte, opts ...Option) (*image.NRGBA, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.HideInImage(ctx, cover, payload)
}

// RevealFromImage is a convenience function that creates a Stego instance and calls its RevealFromImage method.
func RevealFromImage(ctx context.Context, stego image.Image, opts ...Option) ([]byte, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.RevealFromImage(ctx, stego)
}

// HideImage is a convenience function that creates a Stego instance and calls its HideImage method.
func HideImage(ctx context.Context, cover, secret image.Image, opts ...Option) (*image.NRGBA, Result, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, Result{}, err
	}
	return s.HideImage(ctx, cover, secret)
}

// RevealImage is a convenience function that creates a Stego instance and calls its RevealImage method.
func RevealImage(ctx context.Context, stego image.Image, opts ...Option) (image.Image, Result, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, Result{}, err
	}
	return s.RevealImage(ctx, stego)
}

type Stego struct {
	terminate bool
	format    raster.Format
	kernel    raster.Kernel
	level     int
	ecc       ecc.Codec
	workers   int
	retries   int
}

// New initializes a codec. Without options it terminates text payloads,
// serializes secret images as BMP, resamples with Catmull-Rom, compresses at
// zstd level 19, embeds without error correction and packs on every CPU.
func New(opts ...Option) (*Stego, error) {
	s := &Stego{
		terminate: true,
		format:    raster.BMP,
		kernel:    raster.CatmullRom,
		level:     compress.DefaultLevel,
		ecc:       ecc.None{},
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// HideText appends payload to cover as zero-width marks.
func (s *Stego) HideText(cover string, payload []byte) string {
	return textmark.New(textmark.WithTerminator(s.terminate)).Encode(cover, payload)
}

// RevealText reads the zero-width marks of stego.
// Text without a whole byte of marks reports ErrNoPayloadFound.
func (s *Stego) RevealText(stego string) ([]byte, error) {
	payload := textmark.Decode(stego)
	if len(payload) == 0 {
		return nil, ErrNoPayloadFound
	}
	return payload, nil
}

// HideInImage embeds payload followed by a NUL byte in the sample LSBs of a copy of cover.
func (s *Stego) HideInImage(ctx context.Context, cover image.Image, payload []byte) (*image.NRGBA, error) {
	return s.hideInSamples(ctx, raster.FromImage(cover), payload)
}

// RevealFromImage reads a payload embedded by HideInImage.
func (s *Stego) RevealFromImage(ctx context.Context, stego image.Image) ([]byte, error) {
	return s.revealFromSamples(ctx, raster.FromImage(stego))
}

// HideImage embeds secret, shrunk to fit when needed, in a copy of cover.
//
// Process:
//  1. Shrinks the secret to the cover's pixel budget, keeping its aspect ratio.
//  2. Serializes it losslessly and compresses it with zstd.
//  3. Writes a 40-bit header with the secret's size and a checksum.
//  4. Embeds the compressed raster after the header.
//
// Returns ErrInsufficientCapacity if the compressed secret does not fit.
func (s *Stego) HideImage(ctx context.Context, cover, secret image.Image) (*image.NRGBA, Result, error) {
	return s.hideImageInSamples(ctx, raster.FromImage(cover), secret)
}

// RevealImage recovers a secret image embedded by HideImage.
func (s *Stego) RevealImage(ctx context.Context, stego image.Image) (image.Image, Result, error) {
	return packager.Unpack(ctx, raster.FromImage(stego), s.packagerOptions())
}

// buf is owned by the caller of these helpers and is modified in place.
func (s *Stego) hideInSamples(ctx context.Context, buf *Samples, payload []byte) (*image.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := pixel.EmbedDelimited(buf.Pix, payload, s.pixelOptions()); err != nil {
		return nil, err
	}
	return buf.Image(), nil
}

func (s *Stego) revealFromSamples(ctx context.Context, buf *Samples) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := pixel.ExtractDelimited(buf.Pix, s.pixelOptions())
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrNoPayloadFound)
	}
	return payload, nil
}

func (s *Stego) hideImageInSamples(ctx context.Context, buf *Samples, secret image.Image) (*image.NRGBA, Result, error) {
	res, err := packager.Pack(ctx, buf, secret, s.packagerOptions())
	if err != nil {
		return nil, res, err
	}
	return buf.Image(), res, nil
}

func (s *Stego) pixelOptions() pixel.Options {
	return pixel.Options{ECC: s.ecc, Workers: s.workers}
}

func (s *Stego) packagerOptions() packager.Options {
	return packager.Options{
		Format:  s.format,
		Kernel:  s.kernel,
		Level:   s.level,
		Retries: s.retries,
		Pixel:   s.pixelOptions(),
	}
}
