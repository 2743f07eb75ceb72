package lsb

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpack(t *testing.T) {
	test := []struct {
		name    string
		samples int
		offset  int
		bits    int
		workers int
	}{
		{"small", 16, 0, 16, 1},
		{"offset", 64, 40, 24, 1},
		{"partial", 100, 3, 50, 4},
		{"parallel", 4 * minChunk, 40, 3*minChunk + 7, 4},
		{"empty", 8, 8, 0, 1},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			rd := rand.New(rand.NewSource(1))
			samples := make([]uint8, tt.samples)
			for i := range samples {
				samples[i] = uint8(rd.Intn(256))
			}
			orig := append([]uint8(nil), samples...)
			bits := make([]bool, tt.bits)
			for i := range bits {
				bits[i] = rd.Intn(2) == 1
			}

			require.NoError(t, Pack(samples, tt.offset, bits, tt.workers))
			assert.Equal(t, bits, Unpack(samples, tt.bits, tt.offset, tt.workers))
			for i := range samples {
				// only the low bit may change
				assert.Equal(t, orig[i]&0xFE, samples[i]&0xFE)
				if i < tt.offset || i >= tt.offset+tt.bits {
					assert.Equal(t, orig[i], samples[i])
				}
			}
		})
	}
}

func TestPackCapacityExceeded(t *testing.T) {
	samples := []uint8{0xFF, 0xFF, 0xFF, 0xFF}
	err := Pack(samples, 2, []bool{false, false, false}, 1)
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, []uint8{0xFF, 0xFF, 0xFF, 0xFF}, samples, "no partial write")

	err = Pack(samples, -1, []bool{false}, 1)
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
}

func TestUnpackClamps(t *testing.T) {
	samples := []uint8{1, 0, 3, 2}
	assert.Equal(t, []bool{true, false}, Unpack(samples, 10, 2, 1))
	assert.Empty(t, Unpack(samples, 4, 10, 1))
	assert.Empty(t, Unpack(samples, -1, 0, 1))
	assert.Equal(t, []bool{true, false, true, false}, Unpack(samples, 4, -3, 1))
}
