package lsbstat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/stego_zero/internal/lsb"
)

func evenCover(n int, seed int64) []uint8 {
	rd := rand.New(rand.NewSource(seed))
	samples := make([]uint8, n)
	for i := range samples {
		samples[i] = uint8(rd.Intn(128)) * 2
	}
	return samples
}

func TestAnalyze(t *testing.T) {
	samples := evenCover(80000, 1)

	clean := Analyze(samples, 1)
	assert.Equal(t, 80000, clean.Samples)
	assert.Equal(t, 0, clean.Ones)
	assert.Zero(t, clean.OnesRatio)
	assert.Zero(t, clean.Entropy)
	assert.Less(t, clean.Embedding, 1e-6)

	rd := rand.New(rand.NewSource(2))
	bits := make([]bool, len(samples))
	for i := range bits {
		bits[i] = rd.Intn(2) == 1
	}
	require.NoError(t, lsb.Pack(samples, 0, bits, 4))

	stego := Analyze(samples, 4)
	assert.InDelta(t, 0.5, stego.OnesRatio, 0.02)
	assert.Greater(t, stego.Entropy, 7.9)
	assert.LessOrEqual(t, stego.Entropy, 8.0)
	assert.Less(t, stego.ChiSquare, clean.ChiSquare)
	assert.Greater(t, stego.Embedding, clean.Embedding)
}

func TestAnalyzeEmpty(t *testing.T) {
	assert.Equal(t, Report{}, Analyze(nil, 1))
}

func TestAnalyzeSinglePair(t *testing.T) {
	r := Analyze([]uint8{4, 5, 4, 5}, 1)
	assert.Equal(t, 2, r.Ones)
	assert.Equal(t, 0.5, r.OnesRatio)
	assert.Zero(t, r.ChiSquare)
	assert.Zero(t, r.Embedding)
}

func TestWindows(t *testing.T) {
	samples := evenCover(1000, 3)
	rs := Windows(samples, 300, 1)
	require.Len(t, rs, 4)
	assert.Equal(t, 300, rs[0].Samples)
	assert.Equal(t, 100, rs[3].Samples)

	assert.Nil(t, Windows(samples, 0, 1))
}
