package lsbstat

import (
	"math"

	"github.com/yyyoichi/stego_zero/internal/bitconv"
	"github.com/yyyoichi/stego_zero/internal/lsb"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Report summarizes the least significant bit plane of a sample buffer.
type Report struct {
	Samples int
	Ones    int
	// OnesRatio is Ones / Samples, 0.5 for a plane of fair coin flips.
	OnesRatio float64
	// Entropy of the LSB plane read as bytes, in bits per byte (max 8).
	Entropy float64
	// ChiSquare is the pairs-of-values statistic over the sample histogram.
	ChiSquare float64
	// Embedding is the probability, from ChiSquare, that the plane carries
	// sequentially embedded data. Close to 1 means the pairs are equalized.
	Embedding float64
}

// Analyze computes a Report over samples.
func Analyze(samples []uint8, workers int) Report {
	r := Report{Samples: len(samples)}
	if len(samples) == 0 {
		return r
	}

	bits := lsb.Unpack(samples, len(samples), 0, workers)
	for _, b := range bits {
		if b {
			r.Ones++
		}
	}
	r.OnesRatio = float64(r.Ones) / float64(r.Samples)
	r.Entropy = byteEntropy(bitconv.BoolsToBytes(bits))
	r.ChiSquare, r.Embedding = pairsOfValues(samples)
	return r
}

// Windows analyzes consecutive windows of size samples from the start of the buffer.
// The last window may be shorter.
func Windows(samples []uint8, size, workers int) []Report {
	if size <= 0 {
		return nil
	}
	var out []Report
	for i := 0; i < len(samples); i += size {
		out = append(out, Analyze(samples[i:min(i+size, len(samples))], workers))
	}
	return out
}

func byteEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	var hist [256]float64
	for _, b := range data {
		hist[b]++
	}
	p := make([]float64, 0, len(hist))
	for _, c := range hist {
		if c > 0 {
			p = append(p, c/float64(len(data)))
		}
	}
	// stat.Entropy is in nats
	return stat.Entropy(p) / math.Ln2
}

// pairsOfValues runs the chi-square test on the histogram pairs (2k, 2k+1).
// LSB replacement with random bits pulls the counts of each pair together.
func pairsOfValues(samples []uint8) (chi, p float64) {
	var hist [256]float64
	for _, s := range samples {
		hist[s]++
	}
	var obs, exp []float64
	for k := 0; k < 256; k += 2 {
		e := (hist[k] + hist[k+1]) / 2
		if e == 0 {
			continue
		}
		obs = append(obs, hist[k])
		exp = append(exp, e)
	}
	if len(obs) < 2 {
		return 0, 0
	}
	chi = stat.ChiSquare(obs, exp)
	dist := distuv.ChiSquared{K: float64(len(obs) - 1)}
	return chi, dist.Survival(chi)
}
