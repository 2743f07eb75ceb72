package ecc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yyyoichi/stego_zero/internal/bitconv"
)

func TestCodec(t *testing.T) {
	test := []struct {
		name  string
		codec Codec
	}{
		{"none", None{}},
		{"golay", Golay{}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			for _, src := range [][]byte{[]byte("TEST_MARK"), []byte("a"), {0x00, 0xff, 0x10}} {
				data := bitconv.BytesToBools(src)
				encoded := tt.codec.Encode(data)
				assert.Len(t, encoded, tt.codec.EncodedLen(len(data)))

				decoded := tt.codec.Decode(encoded)
				assert.GreaterOrEqual(t, len(decoded), len(data))
				assert.Equal(t, src, bitconv.BoolsToBytes(decoded)[:len(src)])
			}
		})
	}
}

func TestGolayCorrectsFlips(t *testing.T) {
	src := []byte("hello, golay")
	encoded := Golay{}.Encode(bitconv.BytesToBools(src))
	// up to 3 errors per 24-bit block
	for block := 0; block+golayBlock <= len(encoded); block += golayBlock {
		encoded[block] = !encoded[block]
		encoded[block+5] = !encoded[block+5]
		encoded[block+17] = !encoded[block+17]
	}
	decoded := Golay{}.Decode(encoded)
	assert.Equal(t, src, bitconv.BoolsToBytes(decoded)[:len(src)])
}

func TestGolayDecodeIgnoresPartialBlock(t *testing.T) {
	encoded := Golay{}.Encode(bitconv.BytesToBools([]byte("ab")))
	withNoise := append(append([]bool(nil), encoded...), true, false, true)
	assert.Equal(t, Golay{}.Decode(encoded), Golay{}.Decode(withNoise))
	assert.Empty(t, Golay{}.Decode(make([]bool, golayBlock-1)))
}
