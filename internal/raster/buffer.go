package raster

import (
	"image"
	"image/color"
)

// Channels is the number of samples per pixel; alpha never carries payload.
const Channels = 3

// Buffer is an RGB sample buffer in row-major, channel-interleaved order.
type Buffer struct {
	Rect          image.Rectangle
	Width, Height int
	Channels      int

	// R, G, B, R, G, B, ...
	Pix []uint8
	// one sample per pixel, restored verbatim by Image
	Alpha []uint8
}

// FromImage copies src into a new Buffer.
func FromImage(src image.Image) *Buffer {
	var b Buffer
	b.Rect = src.Bounds()
	b.Width, b.Height = b.Rect.Dx(), b.Rect.Dy()
	b.Channels = Channels
	area := b.Width * b.Height
	b.Pix = make([]uint8, area*Channels)
	b.Alpha = make([]uint8, area)

	idx := 0
	if n, ok := src.(*image.NRGBA); ok {
		for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
			row := n.Pix[n.PixOffset(b.Rect.Min.X, y):]
			for x := range b.Width {
				copy(b.Pix[idx*Channels:idx*Channels+Channels], row[x*4:x*4+3])
				b.Alpha[idx] = row[x*4+3]
				idx++
			}
		}
		return &b
	}
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
		for x := b.Rect.Min.X; x < b.Rect.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			b.Pix[idx*Channels] = c.R
			b.Pix[idx*Channels+1] = c.G
			b.Pix[idx*Channels+2] = c.B
			b.Alpha[idx] = c.A
			idx++
		}
	}
	return &b
}

// Clone returns a deep copy so that the original carrier is never aliased.
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.Pix = append([]uint8(nil), b.Pix...)
	c.Alpha = append([]uint8(nil), b.Alpha...)
	return &c
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	return len(b.Pix)
}

// Image builds an NRGBA image, which stores the samples without premultiplication.
func (b *Buffer) Image() *image.NRGBA {
	dist := image.NewNRGBA(b.Rect)
	idx := 0
	for y := range b.Height {
		row := dist.Pix[y*dist.Stride:]
		for x := range b.Width {
			copy(row[x*4:x*4+3], b.Pix[idx*Channels:idx*Channels+Channels])
			row[x*4+3] = 0xFF
			if idx < len(b.Alpha) {
				row[x*4+3] = b.Alpha[idx]
			}
			idx++
		}
	}
	return dist
}
