package textmark

import (
	"strings"

	"github.com/yyyoichi/stego_zero/internal/bitconv"
	"golang.org/x/text/runes"
)

// The zero-width alphabet. The mapping is part of the wire format.
const (
	Zero rune = '\u200b' // ZERO WIDTH SPACE
	One  rune = '\u200d' // ZERO WIDTH JOINER
	End  rune = '\u200c' // ZERO WIDTH NON-JOINER
)

var bits = runes.Predicate(func(r rune) bool { return r == Zero || r == One })

// markLen is the UTF-8 length shared by Zero, One and End.
const markLen = 3

// run locates the payload marks in stego. Joiners and non-joiners inside the
// cover, as in emoji sequences or Persian script, are not part of it.
//
// The payload is the first run of at least eight data marks closed by End.
// Failing that, a trailing End closes the run just before it, which may be empty.
// A closed run keeps whole bytes counted back from End, so cover marks that touch
// it stay with the cover. Without End, the payload is the run of data marks that ends stego.
// lo and hi bound the data marks; end also covers the End that follows.
func run(stego string) (lo, hi, end int, ok bool) {
	first := -1
	for i, r := range stego {
		switch {
		case bits.Contains(r):
			if first < 0 {
				first = i
			}
		case r == End && first >= 0 && i-first >= 8*markLen:
			return closed(first, i), i, i + markLen, true
		default:
			first = -1
		}
	}

	end = len(stego)
	hi = end
	if strings.HasSuffix(stego, string(End)) {
		hi -= markLen
		lo = closed(len(strings.TrimRightFunc(stego[:hi], bits.Contains)), hi)
		return lo, hi, end, true
	}
	lo = len(strings.TrimRightFunc(stego, bits.Contains))
	return lo, hi, end, lo < hi
}

// closed moves lo forward so that lo..hi spans whole bytes of marks.
func closed(lo, hi int) int {
	return hi - (hi-lo)/(8*markLen)*8*markLen
}

// Encode appends payload to cover as zero-width marks followed by End.
func Encode(cover string, payload []byte) string {
	return encode(cover, payload, true)
}

// Decode reads the payload marks of stego and returns the whole bytes they spell.
// Text without a payload yields an empty payload.
func Decode(stego string) []byte {
	lo, hi, _, _ := run(stego)
	bools := make([]bool, 0, (hi-lo)/markLen)
	for _, r := range stego[lo:hi] {
		bools = append(bools, r == One)
	}
	return bitconv.BoolsToBytes(bools)
}

// Visible removes the payload marks from stego, leaving the text a reader sees.
// Zero-width characters of the cover stay in place.
func Visible(stego string) string {
	lo, _, end, ok := run(stego)
	if !ok {
		return stego
	}
	return stego[:lo] + stego[end:]
}

// Count returns the number of payload data marks in stego.
func Count(stego string) int {
	lo, hi, _, _ := run(stego)
	return (hi - lo) / markLen
}

func encode(cover string, payload []byte, terminate bool) string {
	var b strings.Builder
	// each mark is 3 bytes of UTF-8
	b.Grow(len(cover) + (len(payload)*8+1)*3)
	b.WriteString(cover)
	for _, bit := range bitconv.BytesToBools(payload) {
		if bit {
			b.WriteRune(One)
		} else {
			b.WriteRune(Zero)
		}
	}
	if terminate {
		b.WriteRune(End)
	}
	return b.String()
}
