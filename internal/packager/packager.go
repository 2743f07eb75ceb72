package packager

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/yyyoichi/stego_zero/internal/capacity"
	"github.com/yyyoichi/stego_zero/internal/compress"
	"github.com/yyyoichi/stego_zero/internal/header"
	"github.com/yyyoichi/stego_zero/internal/pixel"
	"github.com/yyyoichi/stego_zero/internal/raster"
)

var (
	ErrMalformedPayload = errors.New("payload is not a valid raster")
)

// Options controls the image-in-image pipeline.
type Options struct {
	Format raster.Format
	Kernel raster.Kernel
	// Level is the zstd level (1-22).
	Level int
	// Retries shrinks the pixel budget by 3/4 and tries again when the compressed
	// secret does not fit. Zero fails on the first miss.
	Retries int
	Pixel   pixel.Options
}

// Result describes an embedded or recovered secret image.
type Result struct {
	Width, Height int
	// SourceWidth and SourceHeight are the secret's size before resampling.
	// They are zero on the decode path.
	SourceWidth, SourceHeight int
	// Serialized is the size of the lossless raster before compression.
	Serialized int
	// Compressed is the number of payload bytes after the header.
	Compressed int
	Format     string
}

// Pack embeds secret into cover.Pix, resizing it to the cover's budget.
// cover is modified in place only when every check has passed.
//
// Process:
//  1. Derives the pixel budget from the cover capacity.
//  2. Resamples the secret keeping its aspect ratio.
//  3. Serializes the result losslessly.
//  4. Compresses the serialized bytes with zstd.
//  5. Checks that the compressed bytes fit after the header.
//  6. Writes the header with the resampled size.
//  7. Embeds the compressed bytes after the header.
func Pack(ctx context.Context, cover *raster.Buffer, secret image.Image, opts Options) (Result, error) {
	var (
		res      Result
		sb       = secret.Bounds()
		samples  = cover.Len()
		budget   = capacity.MaxSecretPixels(samples, header.Size)
		code     = opts.Pixel
		payload  []byte
		fitError error
	)
	res.SourceWidth, res.SourceHeight = sb.Dx(), sb.Dy()
	res.Format = opts.Format.String()

	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		w, h := capacity.PlanResize(sb.Dx(), sb.Dy(), budget)
		if w == 0 || h == 0 {
			return Result{}, fmt.Errorf("%w: no room for a %dx%d image in %d samples", pixel.ErrInsufficientCapacity, sb.Dx(), sb.Dy(), samples)
		}
		if err := header.Encode(make([]uint8, header.Size), w, h); err != nil {
			return Result{}, err
		}
		resized, err := raster.Resample(secret, w, h, opts.Kernel)
		if err != nil {
			return Result{}, err
		}
		serialized, err := raster.Encode(resized, opts.Format)
		if err != nil {
			return Result{}, err
		}
		compressed := compress.Compress(serialized, opts.Level)

		res.Width, res.Height = w, h
		res.Serialized, res.Compressed = len(serialized), len(compressed)
		need := code.Codec().EncodedLen(len(compressed) * 8)
		if capacity.FitsBits(need, samples, header.Size) {
			payload = compressed
			break
		}
		fitError = fmt.Errorf("%w: %dx%d secret needs %d bits, have %d", pixel.ErrInsufficientCapacity, w, h, need, capacity.AvailableBits(samples, header.Size))
		budget = budget * 3 / 4
	}
	if payload == nil {
		return res, fitError
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Both writes below were checked above, so the cover is never left half written.
	if err := pixel.Embed(cover.Pix, payload, true, code); err != nil {
		return res, err
	}
	if err := header.Encode(cover.Pix, res.Width, res.Height); err != nil {
		return res, err
	}
	return res, nil
}

// Unpack recovers a secret image embedded by Pack.
//
// Process:
//  1. Decodes and verifies the header.
//  2. Extracts every sample after the header as bytes.
//  3. Decompresses the first zstd frame, ignoring trailing carrier bytes.
//  4. Deserializes the raster.
//  5. Resamples to the header size if the raster disagrees with it.
func Unpack(ctx context.Context, stego *raster.Buffer, opts Options) (image.Image, Result, error) {
	var res Result
	if stego.Len() < header.Size {
		return nil, res, fmt.Errorf("%w: %d samples cannot hold a header", pixel.ErrNoPayloadFound, stego.Len())
	}
	w, h, err := header.Decode(stego.Pix)
	if err != nil {
		return nil, res, err
	}
	if w == 0 || h == 0 {
		return nil, res, fmt.Errorf("%w: empty %dx%d header", pixel.ErrNoPayloadFound, w, h)
	}
	// Pack never plans a secret larger than the cover budget
	if budget := capacity.MaxSecretPixels(stego.Len(), header.Size); w*h > budget {
		return nil, res, fmt.Errorf("%w: %dx%d header exceeds the %d pixel budget", pixel.ErrNoPayloadFound, w, h, budget)
	}
	res.Width, res.Height = w, h
	if err := ctx.Err(); err != nil {
		return nil, res, err
	}

	data := pixel.Extract(stego.Pix, true, opts.Pixel)
	serialized, err := compress.Decompress(data, maxSerialized(w, h))
	if err != nil {
		return nil, res, fmt.Errorf("%w: %w", pixel.ErrNoPayloadFound, err)
	}
	res.Compressed = len(data)
	res.Serialized = len(serialized)
	if err := ctx.Err(); err != nil {
		return nil, res, err
	}

	img, format, err := raster.Decode(serialized)
	if err != nil {
		return nil, res, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	res.Format = format
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		img, err = raster.Resample(img, w, h, opts.Kernel)
		if err != nil {
			return nil, res, err
		}
	}
	return img, res, nil
}

// maxSerialized bounds the size of any lossless encoding of a w x h image.
func maxSerialized(w, h int) int {
	// 4 bytes per pixel covers BMP row padding, PNG filter bytes and QOI literals,
	// plus generous room for headers and chunk framing.
	return w*h*5 + 1<<16
}
