package header

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/yyyoichi/stego_zero/internal/bitconv"
	"github.com/yyyoichi/stego_zero/internal/lsb"
)

const (
	// Size is the number of samples the header occupies, one bit per sample.
	Size = 5 * 8
)

var (
	ErrDimensionOverflow = errors.New("dimension does not fit in 16 bits")
	ErrCorrupted         = errors.New("header checksum mismatch")
)

// Encode writes width and height into samples[0:40].
//
// Layout, MSB-first per byte:
//
//	width(2 bytes, big-endian) + height(2 bytes, big-endian) + checksum(1 byte)
func Encode(samples []uint8, width, height int) error {
	if width < 0 || width > math.MaxUint16 {
		return fmt.Errorf("%w: width %d", ErrDimensionOverflow, width)
	}
	if height < 0 || height > math.MaxUint16 {
		return fmt.Errorf("%w: height %d", ErrDimensionOverflow, height)
	}
	var raw [5]byte
	binary.BigEndian.PutUint16(raw[0:2], uint16(width))
	binary.BigEndian.PutUint16(raw[2:4], uint16(height))
	raw[4] = Checksum([4]byte(raw[:4]))
	return lsb.Pack(samples, 0, bitconv.BytesToBools(raw[:]), 1)
}

// Decode reads the header from samples[0:40] and verifies its checksum.
func Decode(samples []uint8) (width, height int, err error) {
	if len(samples) < Size {
		return 0, 0, fmt.Errorf("%w: %d samples", ErrCorrupted, len(samples))
	}
	raw := bitconv.BoolsToBytes(lsb.Unpack(samples, Size, 0, 1))
	if got, want := raw[4], Checksum([4]byte(raw[:4])); got != want {
		return 0, 0, fmt.Errorf("%w: got %#02x, want %#02x", ErrCorrupted, got, want)
	}
	width = int(binary.BigEndian.Uint16(raw[0:2]))
	height = int(binary.BigEndian.Uint16(raw[2:4]))
	return width, height, nil
}

// Checksum is the sum of the dimension bytes mod 256.
func Checksum(dims [4]byte) byte {
	var sum byte
	for _, b := range dims {
		sum += b
	}
	return sum
}
