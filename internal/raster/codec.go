package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

var (
	ErrUnknownFormat = errors.New("unknown raster format")
	ErrUnknownKernel = errors.New("unknown resampling kernel")
)

// Format is a lossless serialization of a secret image.
type Format int

const (
	// BMP stores uncompressed 24-bit rows and leaves all redundancy to the compressor.
	BMP Format = iota
	PNG
	QOI
)

func (f Format) String() string {
	switch f {
	case BMP:
		return "bmp"
	case PNG:
		return "png"
	case QOI:
		return "qoi"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a name such as "bmp" to a Format.
func ParseFormat(name string) (Format, error) {
	for _, f := range []Format{BMP, PNG, QOI} {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Kernel selects the interpolator used when a secret image is shrunk.
type Kernel int

const (
	CatmullRom Kernel = iota
	BiLinear
	ApproxBiLinear
	NearestNeighbor
)

var kernels = map[Kernel]struct {
	name   string
	interp draw.Interpolator
}{
	CatmullRom:      {"catmullrom", draw.CatmullRom},
	BiLinear:        {"bilinear", draw.BiLinear},
	ApproxBiLinear:  {"approxbilinear", draw.ApproxBiLinear},
	NearestNeighbor: {"nearest", draw.NearestNeighbor},
}

func (k Kernel) String() string {
	if v, ok := kernels[k]; ok {
		return v.name
	}
	return fmt.Sprintf("Kernel(%d)", int(k))
}

// ParseKernel maps a name such as "catmullrom" to a Kernel.
func ParseKernel(name string) (Kernel, error) {
	for k, v := range kernels {
		if v.name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
}

// Resample scales src to width x height into an *image.RGBA anchored at the origin.
// src is copied as is when it already has that size.
func Resample(src image.Image, width, height int, kernel Kernel) (*image.RGBA, error) {
	k, ok := kernels[kernel]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKernel, int(kernel))
	}
	dist := image.NewRGBA(image.Rect(0, 0, width, height))
	if sr := src.Bounds(); sr.Dx() == width && sr.Dy() == height {
		draw.Draw(dist, dist.Bounds(), src, sr.Min, draw.Src)
		return dist, nil
	}
	k.interp.Scale(dist, dist.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dist, nil
}

// Encode serializes img losslessly in the given format.
func Encode(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case BMP:
		err = bmp.Encode(&buf, img)
	case PNG:
		enc := png.Encoder{CompressionLevel: png.NoCompression}
		err = enc.Encode(&buf, img)
	case QOI:
		err = qoi.Encode(&buf, img)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Decode parses a serialized image of any registered format.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}
