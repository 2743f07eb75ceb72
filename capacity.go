package stego

import (
	"image"
	"sort"

	"github.com/yyyoichi/stego_zero/internal/capacity"
	"github.com/yyyoichi/stego_zero/internal/ecc"
	"github.com/yyyoichi/stego_zero/internal/header"
)

// CapacityReport lists what a cover can carry with the codec's options.
type CapacityReport struct {
	Width, Height int
	Samples       int
	// TextBytes is the longest payload HideInImage accepts.
	TextBytes int
	// ImageBytes is the largest compressed raster HideImage accepts.
	ImageBytes int
	// MaxSecretPixels is the pixel budget HideImage shrinks a secret to.
	MaxSecretPixels int
}

// Capacity reports the capacity of cover.
func (s *Stego) Capacity(cover image.Image) CapacityReport {
	b := cover.Bounds()
	return s.capacity(b.Dx(), b.Dy())
}

func (s *Stego) capacity(width, height int) CapacityReport {
	n := width * height * 3
	return CapacityReport{
		Width:           width,
		Height:          height,
		Samples:         n,
		TextBytes:       max(maxBytes(s.ecc, capacity.AvailableBits(n, 0))-1, 0),
		ImageBytes:      maxBytes(s.ecc, capacity.AvailableBits(n, header.Size)),
		MaxSecretPixels: capacity.MaxSecretPixels(n, header.Size),
	}
}

// maxBytes returns the largest byte count whose encoded bits fit in bits.
func maxBytes(code ecc.Codec, bits int) int {
	return sort.Search(bits/8+1, func(n int) bool {
		return code.EncodedLen(n*8) > bits
	}) - 1
}
