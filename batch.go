package stego

import (
	"context"
	"image"

	"github.com/yyyoichi/stego_zero/internal/packager"
	"github.com/yyyoichi/stego_zero/internal/raster"
)

// Batch converts one image to samples once and reuses them for several
// hide or reveal operations.
type Batch struct {
	original *Samples
}

// NewBatch creates a new Batch instance from img.
func NewBatch(img image.Image) *Batch {
	return &Batch{original: raster.FromImage(img)}
}

// HideInImage embeds payload into a copy of the cached cover with specified options.
func (b *Batch) HideInImage(ctx context.Context, payload []byte, opts ...Option) (*image.NRGBA, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.hideInSamples(ctx, b.original.Clone(), payload)
}

// HideImage embeds secret into a copy of the cached cover with specified options.
func (b *Batch) HideImage(ctx context.Context, secret image.Image, opts ...Option) (*image.NRGBA, Result, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, Result{}, err
	}
	return s.hideImageInSamples(ctx, b.original.Clone(), secret)
}

// RevealFromImage reads a delimited payload from the cached image with specified options.
func (b *Batch) RevealFromImage(ctx context.Context, opts ...Option) ([]byte, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	// extraction only reads the samples
	return s.revealFromSamples(ctx, b.original)
}

// RevealImage recovers a secret image from the cached image with specified options.
func (b *Batch) RevealImage(ctx context.Context, opts ...Option) (image.Image, Result, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, Result{}, err
	}
	return packager.Unpack(ctx, b.original, s.packagerOptions())
}

// Capacity reports the capacity of the cached image with specified options.
func (b *Batch) Capacity(opts ...Option) (CapacityReport, error) {
	s, err := New(opts...)
	if err != nil {
		return CapacityReport{}, err
	}
	return s.capacity(b.original.Width, b.original.Height), nil
}
