package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), uint8((x + y) * 255 / (w + h)), 255})
		}
	}
	return img
}

func TestBuffer(t *testing.T) {
	t.Run("row-major interleaved", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		img.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 255})
		img.SetNRGBA(1, 0, color.NRGBA{4, 5, 6, 128})
		img.SetNRGBA(0, 1, color.NRGBA{7, 8, 9, 0})
		img.SetNRGBA(1, 1, color.NRGBA{10, 11, 12, 255})

		b := FromImage(img)
		assert.Equal(t, 2, b.Width)
		assert.Equal(t, 2, b.Height)
		assert.Equal(t, Channels, b.Channels)
		assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, b.Pix)
		assert.Equal(t, []uint8{255, 128, 0, 255}, b.Alpha)
		assert.Equal(t, img.Pix, b.Image().Pix)
	})

	t.Run("generic image", func(t *testing.T) {
		img := gradient(7, 5)
		b := FromImage(img)
		assert.Equal(t, 7*5*3, b.Len())
		out := b.Image()
		for y := 0; y < 5; y++ {
			for x := 0; x < 7; x++ {
				assert.Equal(t, img.RGBAAt(x, y), color.RGBAModel.Convert(out.At(x, y)))
			}
		}
	})

	t.Run("offset bounds", func(t *testing.T) {
		img := gradient(10, 10).SubImage(image.Rect(2, 3, 6, 8)).(*image.RGBA)
		b := FromImage(img)
		assert.Equal(t, 4, b.Width)
		assert.Equal(t, 5, b.Height)
		out := b.Image()
		assert.Equal(t, img.Bounds(), out.Bounds())
		assert.Equal(t, img.RGBAAt(2, 3), color.RGBAModel.Convert(out.At(2, 3)))
	})

	t.Run("clone does not alias", func(t *testing.T) {
		b := FromImage(gradient(3, 3))
		c := b.Clone()
		c.Pix[0] ^= 1
		c.Alpha[0] = 7
		assert.NotEqual(t, b.Pix[0], c.Pix[0])
		assert.Equal(t, uint8(255), b.Alpha[0])
	})
}

func TestEncodeDecode(t *testing.T) {
	src := gradient(16, 9)
	for _, f := range []Format{BMP, PNG, QOI} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Encode(src, f)
			require.NoError(t, err)
			img, name, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, f.String(), name)
			assert.Equal(t, src.Bounds(), img.Bounds())
			for y := 0; y < 9; y++ {
				for x := 0; x < 16; x++ {
					assert.Equal(t, src.RGBAAt(x, y), color.RGBAModel.Convert(img.At(x, y)))
				}
			}
		})
	}

	_, err := Encode(src, Format(99))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	_, _, err = Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	for _, f := range []Format{BMP, PNG, QOI} {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("gif")
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	for _, k := range []Kernel{CatmullRom, BiLinear, ApproxBiLinear, NearestNeighbor} {
		got, err := ParseKernel(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err = ParseKernel("lanczos")
	assert.True(t, errors.Is(err, ErrUnknownKernel))
}

func TestResample(t *testing.T) {
	src := gradient(40, 20)
	for _, k := range []Kernel{CatmullRom, BiLinear, ApproxBiLinear, NearestNeighbor} {
		t.Run(k.String(), func(t *testing.T) {
			img, err := Resample(src, 20, 10, k)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
		})
	}

	same, err := Resample(src, 40, 20, CatmullRom)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, same.Pix)

	_, err = Resample(src, 1, 1, Kernel(42))
	assert.True(t, errors.Is(err, ErrUnknownKernel))
}
