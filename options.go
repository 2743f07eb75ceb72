package stego

import (
	"fmt"

	"github.com/yyyoichi/stego_zero/internal/ecc"
	"github.com/yyyoichi/stego_zero/internal/raster"
)

type Option func(*Stego) error

// WithTerminator controls whether HideText ends the marks with the End mark.
// Without it, RevealText reads every mark up to the end of the text,
// so text appended later must not contain marks.
func WithTerminator(on bool) Option {
	return func(s *Stego) error {
		s.terminate = on
		return nil
	}
}

// WithFormat selects the lossless serialization of secret images.
// BMP leaves all redundancy to the compressor and usually packs smallest.
// RevealImage detects the format by itself.
func WithFormat(f Format) Option {
	return func(s *Stego) error {
		if _, err := raster.ParseFormat(f.String()); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
		s.format = f
		return nil
	}
}

// WithKernel selects the interpolator used to shrink secret images.
func WithKernel(k Kernel) Option {
	return func(s *Stego) error {
		if _, err := raster.ParseKernel(k.String()); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
		s.kernel = k
		return nil
	}
}

// WithCompressionLevel sets the zstd level, from 1 (fastest) to 22 (smallest).
func WithCompressionLevel(level int) Option {
	return func(s *Stego) error {
		if level < 1 || level > 22 {
			return fmt.Errorf("%w: compression level %d", ErrInvalidOption, level)
		}
		s.level = level
		return nil
	}
}

// WithGolay protects the embedded bits with the Golay(24,12) code.
// It doubles the bits used and corrects up to 3 flipped bits per 24.
// Both sides must use it.
func WithGolay() Option {
	return func(s *Stego) error {
		s.ecc = ecc.Golay{}
		return nil
	}
}

// WithWorkers bounds the goroutines used to pack and unpack large carriers.
func WithWorkers(n int) Option {
	return func(s *Stego) error {
		if n < 1 {
			return fmt.Errorf("%w: workers %d", ErrInvalidOption, n)
		}
		s.workers = n
		return nil
	}
}

// WithRetries lets HideImage shrink the secret further, by 3/4 of its pixel budget
// per retry, when the compressed raster does not fit the first time.
func WithRetries(n int) Option {
	return func(s *Stego) error {
		if n < 0 {
			return fmt.Errorf("%w: retries %d", ErrInvalidOption, n)
		}
		s.retries = n
		return nil
	}
}
