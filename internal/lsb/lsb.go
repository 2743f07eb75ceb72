package lsb

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrCapacityExceeded = errors.New("bits exceed sample capacity")
)

// minChunk is the smallest range handed to a single goroutine.
const minChunk = 1 << 15

// Pack writes bits into the least significant bit of samples starting at offset.
// Nothing is written when the bits do not fit.
func Pack(samples []uint8, offset int, bits []bool, workers int) error {
	if offset < 0 || offset+len(bits) > len(samples) {
		return fmt.Errorf("%w: offset %d + bits %d > samples %d", ErrCapacityExceeded, offset, len(bits), len(samples))
	}
	dst := samples[offset : offset+len(bits)]
	split(len(bits), workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if bits[i] {
				dst[i] = dst[i]&0xFE | 1
			} else {
				dst[i] &= 0xFE
			}
		}
	})
	return nil
}

// Unpack reads up to count least significant bits starting at offset.
// Reads past the end of samples are clamped, so the result may be shorter than count.
func Unpack(samples []uint8, count, offset int, workers int) []bool {
	if offset < 0 {
		offset = 0
	}
	if offset > len(samples) {
		offset = len(samples)
	}
	if count < 0 {
		count = 0
	}
	if rest := len(samples) - offset; count > rest {
		count = rest
	}
	src := samples[offset : offset+count]
	bits := make([]bool, count)
	split(count, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			bits[i] = src[i]&1 == 1
		}
	})
	return bits
}

// split runs fn over contiguous, disjoint ranges of [0, n).
func split(n, workers int, fn func(lo, hi int)) {
	if chunks := n / minChunk; workers > chunks {
		workers = chunks
	}
	if workers <= 1 {
		fn(0, n)
		return
	}
	size := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
