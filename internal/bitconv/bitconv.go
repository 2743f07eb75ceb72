package bitconv

// BytesToBools expands b into bits, most significant bit first.
func BytesToBools(b []byte) []bool {
	bits := make([]bool, 0, len(b)*8)
	for _, bb := range b {
		for i := 7; i >= 0; i-- {
			bits = append(bits, ((bb>>uint(i))&1) == 1)
		}
	}
	return bits
}

// BoolsToBytes packs bits into bytes, most significant bit first.
// A trailing group shorter than 8 bits is dropped rather than zero padded.
func BoolsToBytes(bits []bool) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		out[i] = BoolsToByte(bits[i*8 : i*8+8])
	}
	return out
}

// BoolsToByte packs the first 8 bits of bits into one byte.
func BoolsToByte(bits []bool) byte {
	var v byte
	for j := 0; j < 8 && j < len(bits); j++ {
		if bits[j] {
			v |= 1 << uint(7-j)
		}
	}
	return v
}
